package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElseNull(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want bool
	}{
		{
			"redundant else null",
			"select case status when 'active' then 1 else null end from users;",
			true,
		},
		{
			"meaningful else",
			"select case status when 'active' then 1 else 0 end from users;",
			false,
		},
		{
			"no else",
			"select case status when 'active' then 1 end from users;",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := runRule(t, tt.sql, "ST01")
			if tt.want {
				assert.NotEmpty(t, violations)
			} else {
				assert.Empty(t, violations)
			}
		})
	}
}

func TestDistinctVsGroupBy(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want bool
	}{
		{"plain distinct columns", "select distinct department, location from employees;", true},
		{"distinct with group by", "select distinct department from employees group by department;", false},
		{"distinct with aggregate", "select distinct count(id) from employees;", false},
		{"distinct star", "select distinct * from employees;", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := runRule(t, tt.sql, "ST08")
			if tt.want {
				assert.NotEmpty(t, violations)
			} else {
				assert.Empty(t, violations)
			}
		})
	}
}
