package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueTableAlias(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want bool
	}{
		{"duplicate alias", "select a.id from customers a join orders a on a.customer_id = a.id;", true},
		{"unique aliases", "select c.id from customers c join orders o on o.customer_id = c.id;", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := runRule(t, tt.sql, "AL04")
			if tt.want {
				assert.NotEmpty(t, violations)
			} else {
				assert.Empty(t, violations)
			}
		})
	}
}

func TestUnusedTableAlias(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want bool
	}{
		{"alias never referenced", "select id, name from customers c;", true},
		{"alias referenced", "select c.id, c.name from customers c;", false},
		{"no alias", "select id, name from customers;", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := runRule(t, tt.sql, "AL05")
			if tt.want {
				assert.NotEmpty(t, violations)
			} else {
				assert.Empty(t, violations)
			}
		})
	}
}

func TestSelfAlias(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want bool
	}{
		{"self alias", "select * from customers as customers;", true},
		{"meaningful alias", "select * from customers as c;", false},
		{"no alias", "select * from customers;", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := runRule(t, tt.sql, "AL09")
			if tt.want {
				assert.NotEmpty(t, violations)
			} else {
				assert.Empty(t, violations)
			}
		})
	}
}
