package accounts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/synthbooks/internal/model"
)

func TestResolveRoles_DefaultChart(t *testing.T) {
	roles, err := ResolveRoles(NewService(DefaultChart()), nil)
	require.NoError(t, err)

	tests := []struct {
		role Role
		want string
	}{
		{RoleSalesRevenue, "4001"},
		{RoleCostOfGoodsSold, "5001"},
		{RoleInventory, "1005"},
		{RoleAccountsReceivable, "1004"},
		{RoleBank, "1002"},
		{RoleVATInput, "1006"},
		{RoleVATOutput, "2004"},
		{RoleAccountsPayable, "2001"},
		{RolePurchases, "5002"},
		{RoleAdministrativeExpenses, "5005"},
		{RoleSellingExpenses, "5006"},
		{RoleLongTermLoans, "2101"},
		{RoleIncomeTaxPayable, "2005"},
		{RoleOtherIncome, "4005"},
		{RoleOtherExpenses, "5008"},
	}
	require.Len(t, tests, len(AllRoles()))
	for _, tt := range tests {
		assert.Equal(t, tt.want, roles.ID(tt.role), "role %s", tt.role)
	}
}

func TestResolveRoles_MissingNames(t *testing.T) {
	var chart []model.Account
	for _, a := range DefaultChart() {
		if a.Name == "Inventory" || a.Name == "Selling Expenses" {
			continue
		}
		chart = append(chart, a)
	}

	_, err := ResolveRoles(NewService(chart), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAccount)
	assert.Contains(t, err.Error(), `inventory ("Inventory")`)
	assert.Contains(t, err.Error(), `selling_expenses ("Selling Expenses")`)
}

func TestResolveRoles_Override(t *testing.T) {
	chart := DefaultChart()
	for i := range chart {
		if chart[i].Name == "Bank" {
			chart[i].Name = "Cash/Bank"
		}
	}
	svc := NewService(chart)

	_, err := ResolveRoles(svc, nil)
	require.ErrorIs(t, err, ErrMissingAccount)

	roles, err := ResolveRoles(svc, map[string]string{"bank": "Cash/Bank"})
	require.NoError(t, err)
	assert.Equal(t, "1002", roles.ID(RoleBank))
}

func TestResolveRoles_UnknownOverride(t *testing.T) {
	_, err := ResolveRoles(NewService(DefaultChart()), map[string]string{"petty_cash": "Cash"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown account role "petty_cash"`)
	assert.Contains(t, err.Error(), "valid roles: sales_revenue, cost_of_goods_sold,")
	assert.True(t, strings.HasSuffix(err.Error(), "other_income, other_expenses)"))
}

func TestParseRole(t *testing.T) {
	for _, r := range AllRoles() {
		got, err := ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
		assert.NotEmpty(t, r.DefaultName())
	}
	got, err := ParseRole(" VAT_Input ")
	require.NoError(t, err)
	assert.Equal(t, RoleVATInput, got)
}
