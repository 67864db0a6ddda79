package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistinctWithGroupBy(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want bool
	}{
		{"distinct with group by", "select distinct name from users group by name;", true},
		{"distinct without group by", "select distinct name from users;", false},
		{"group by without distinct", "select name from users group by name;", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := runRule(t, tt.sql, "AM01")
			if tt.want {
				assert.NotEmpty(t, violations)
			} else {
				assert.Empty(t, violations)
			}
		})
	}
}

func TestImplicitCrossJoin(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want bool
	}{
		{"comma join", "select * from a, b;", true},
		{"explicit join", "select * from a join b on a.id = b.id;", false},
		{"single table", "select * from a;", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := runRule(t, tt.sql, "AM05")
			if tt.want {
				assert.NotEmpty(t, violations)
			} else {
				assert.Empty(t, violations)
			}
		})
	}
}
