package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNullComparison(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want bool
	}{
		{"equals null", "select * from orders where shipped_date = null;", true},
		{"not equals null", "select * from orders where shipped_date != null;", true},
		{"is null", "select * from orders where shipped_date is null;", false},
		{"no null comparison", "select * from orders where shipped_date = '2020-01-01';", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := runRule(t, tt.sql, "CV05")
			if tt.want {
				assert.NotEmpty(t, violations)
			} else {
				assert.Empty(t, violations)
			}
		})
	}
}

func TestPreferLeftJoin(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want bool
	}{
		{"right join", "select * from orders o right join customers c on c.id = o.customer_id;", true},
		{"left join", "select * from customers c left join orders o on o.customer_id = c.id;", false},
		{"inner join", "select * from customers c join orders o on o.customer_id = c.id;", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := runRule(t, tt.sql, "CV08")
			if tt.want {
				assert.NotEmpty(t, violations)
			} else {
				assert.Empty(t, violations)
			}
		})
	}
}

func TestBlockedWords(t *testing.T) {
	violations := runRule(t, "select truncate(amount) from orders;", "CV09")
	assert.NotEmpty(t, violations)

	violations = runRule(t, "select round(amount) from orders;", "CV09")
	assert.Empty(t, violations)
}
