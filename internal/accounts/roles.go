package accounts

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAccount is returned when a required account name is absent from the chart.
var ErrMissingAccount = errors.New("required account missing from chart of accounts")

// Role is an account the journal engine posts to by purpose rather than by id.
type Role int

const (
	RoleSalesRevenue Role = iota
	RoleCostOfGoodsSold
	RoleInventory
	RoleAccountsReceivable
	RoleBank
	RoleVATInput
	RoleVATOutput
	RoleAccountsPayable
	RolePurchases
	RoleAdministrativeExpenses
	RoleSellingExpenses
	RoleLongTermLoans
	RoleIncomeTaxPayable
	RoleOtherIncome
	RoleOtherExpenses

	numRoles
)

var roleKeys = [numRoles]string{
	RoleSalesRevenue:           "sales_revenue",
	RoleCostOfGoodsSold:        "cost_of_goods_sold",
	RoleInventory:              "inventory",
	RoleAccountsReceivable:     "accounts_receivable",
	RoleBank:                   "bank",
	RoleVATInput:               "vat_input",
	RoleVATOutput:              "vat_output",
	RoleAccountsPayable:        "accounts_payable",
	RolePurchases:              "purchases",
	RoleAdministrativeExpenses: "administrative_expenses",
	RoleSellingExpenses:        "selling_expenses",
	RoleLongTermLoans:          "long_term_loans",
	RoleIncomeTaxPayable:       "income_tax_payable",
	RoleOtherIncome:            "other_income",
	RoleOtherExpenses:          "other_expenses",
}

// defaultRoleNames are the account names roles resolve to in the default
// chart. The bank role resolves to "Bank", not "Cash/Bank": the default chart
// keeps Cash and Bank as separate accounts. Charts that name the account
// differently set accounts.roles.bank in the config.
var defaultRoleNames = [numRoles]string{
	RoleSalesRevenue:           "Sales Revenue",
	RoleCostOfGoodsSold:        "Cost of Goods Sold",
	RoleInventory:              "Inventory",
	RoleAccountsReceivable:     "Accounts Receivable",
	RoleBank:                   "Bank",
	RoleVATInput:               "VAT Receivable",
	RoleVATOutput:              "VAT Payable",
	RoleAccountsPayable:        "Accounts Payable",
	RolePurchases:              "Purchases",
	RoleAdministrativeExpenses: "Administrative Expenses",
	RoleSellingExpenses:        "Selling Expenses",
	RoleLongTermLoans:          "Long-Term Bank Loans",
	RoleIncomeTaxPayable:       "Income Tax Payable",
	RoleOtherIncome:            "Other Income",
	RoleOtherExpenses:          "Other Expenses",
}

// AllRoles returns every role in declaration order.
func AllRoles() []Role {
	roles := make([]Role, numRoles)
	for i := range roles {
		roles[i] = Role(i)
	}
	return roles
}

// String returns the role's config key, e.g. "sales_revenue".
func (r Role) String() string {
	if r < 0 || r >= numRoles {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleKeys[r]
}

// DefaultName returns the account name a role resolves to unless overridden.
func (r Role) DefaultName() string {
	if r < 0 || r >= numRoles {
		return ""
	}
	return defaultRoleNames[r]
}

// ParseRole converts a config key back to a Role.
func ParseRole(key string) (Role, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	valid := make([]string, 0, numRoles)
	for _, r := range AllRoles() {
		if r.String() == k {
			return r, nil
		}
		valid = append(valid, r.String())
	}
	return 0, fmt.Errorf("unknown account role %q (valid roles: %s)", key, strings.Join(valid, ", "))
}

// Roles maps every role to an account id. Build it with ResolveRoles.
type Roles struct {
	ids [numRoles]string
}

// ID returns the account id the role resolved to.
func (r Roles) ID(role Role) string {
	return r.ids[role]
}

// ResolveRoles looks every role up by exact account name, once. overrides
// replaces the default name of a role, keyed by role config key. All missing
// names are reported together.
func ResolveRoles(chart *Service, overrides map[string]string) (Roles, error) {
	names := defaultRoleNames
	for key, name := range overrides {
		role, err := ParseRole(key)
		if err != nil {
			return Roles{}, err
		}
		names[role] = name
	}

	var roles Roles
	var missing []string
	for i, name := range names {
		acct, ok := chart.ByName(name)
		if !ok {
			missing = append(missing, fmt.Sprintf("%s (%q)", Role(i), name))
			continue
		}
		roles.ids[i] = acct.ID
	}
	if len(missing) > 0 {
		return Roles{}, fmt.Errorf("%w: %s", ErrMissingAccount, strings.Join(missing, ", "))
	}
	return roles, nil
}
