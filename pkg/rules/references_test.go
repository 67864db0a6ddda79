package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualifyColumns(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want bool
	}{
		{
			"unqualified columns in a join",
			"select name, amount from customers join orders on customers.id = orders.customer_id;",
			true,
		},
		{
			"qualified columns in a join",
			"select customers.name, orders.amount from customers join orders on customers.id = orders.customer_id;",
			false,
		},
		{
			"single table",
			"select name, amount from orders;",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := runRule(t, tt.sql, "RF02")
			if tt.want {
				assert.NotEmpty(t, violations)
			} else {
				assert.Empty(t, violations)
			}
		})
	}
}
