package journal

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/cleared-dev/synthbooks/internal/accounts"
	"github.com/cleared-dev/synthbooks/internal/model"
)

// Rule classifies a bank movement into a debit and credit account role.
// A rule matches when its direction is empty or equal to the movement's, and
// when any keyword appears in the description as a run of whole words. Each
// keyword word must start a description word, so "alquiler" matches
// "Alquileres" but "rent" does not match "current". Matching is case-folded.
// A rule without keywords matches every description and acts as a fallback.
type Rule struct {
	Name      string
	Direction model.Direction
	Keywords  []string
	Debit     accounts.Role
	Credit    accounts.Role
}

// Matches reports whether the rule applies to m.
func (r Rule) Matches(m model.BankMovement) bool {
	if r.Direction != "" && r.Direction != m.Direction {
		return false
	}
	if len(r.Keywords) == 0 {
		return true
	}
	desc := words(m.Description)
	for _, kw := range r.Keywords {
		if containsPhrase(desc, words(kw)) {
			return true
		}
	}
	return false
}

// containsPhrase reports whether phrase occurs in desc as consecutive words,
// each description word having the phrase word as a prefix.
func containsPhrase(desc, phrase []string) bool {
	if len(phrase) == 0 {
		return false
	}
	for i := 0; i+len(phrase) <= len(desc); i++ {
		match := true
		for j, w := range phrase {
			if !strings.HasPrefix(desc[i+j], w) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func words(s string) []string {
	return strings.FieldsFunc(fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func (r Rule) fallback() bool {
	return len(r.Keywords) == 0
}

// A Caser keeps state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// DefaultRules returns the bank-movement classification table. Order matters:
// specific keywords come before the generic fallbacks at the end.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "customer collection",
			Keywords: []string{"cobro venta", "customer collection"},
			Debit:    accounts.RoleBank,
			Credit:   accounts.RoleAccountsReceivable,
		},
		{
			Name:     "supplier payment",
			Keywords: []string{"pago compra", "supplier payment"},
			Debit:    accounts.RoleAccountsPayable,
			Credit:   accounts.RoleBank,
		},

		// Other income.
		{
			Name:      "loan proceeds",
			Direction: model.DirectionIncome,
			Keywords:  []string{"préstamo", "prestamo", "loan"},
			Debit:     accounts.RoleBank,
			Credit:    accounts.RoleLongTermLoans,
		},
		{
			Name:      "tax refund",
			Direction: model.DirectionIncome,
			Keywords:  []string{"devolución impuestos", "devolucion impuestos", "tax refund"},
			Debit:     accounts.RoleBank,
			Credit:    accounts.RoleIncomeTaxPayable,
		},
		{
			Name:      "asset sale",
			Direction: model.DirectionIncome,
			Keywords:  []string{"venta de activo", "asset sale"},
			Debit:     accounts.RoleBank,
			Credit:    accounts.RoleOtherIncome,
		},
		{
			Name:      "other income",
			Direction: model.DirectionIncome,
			Debit:     accounts.RoleBank,
			Credit:    accounts.RoleOtherIncome,
		},

		// Other expenses.
		{
			Name:      "payroll",
			Direction: model.DirectionExpense,
			Keywords:  []string{"nómina", "nomina", "payroll"},
			Debit:     accounts.RoleAdministrativeExpenses,
			Credit:    accounts.RoleBank,
		},
		{
			Name:      "services",
			Direction: model.DirectionExpense,
			Keywords:  []string{"servicios", "services"},
			Debit:     accounts.RoleAdministrativeExpenses,
			Credit:    accounts.RoleBank,
		},
		{
			Name:      "taxes",
			Direction: model.DirectionExpense,
			Keywords:  []string{"impuestos", "taxes", "tax payment"},
			Debit:     accounts.RoleIncomeTaxPayable,
			Credit:    accounts.RoleBank,
		},
		{
			Name:      "insurance and maintenance",
			Direction: model.DirectionExpense,
			Keywords:  []string{"seguros", "mantenimiento", "insurance", "maintenance"},
			Debit:     accounts.RoleAdministrativeExpenses,
			Credit:    accounts.RoleBank,
		},
		{
			Name:      "rent",
			Direction: model.DirectionExpense,
			Keywords:  []string{"alquiler", "rent"},
			Debit:     accounts.RoleAdministrativeExpenses,
			Credit:    accounts.RoleBank,
		},
		{
			Name:      "other expenses",
			Direction: model.DirectionExpense,
			Debit:     accounts.RoleOtherExpenses,
			Credit:    accounts.RoleBank,
		},
	}
}

// ValidateRules checks that every movement direction reaches a fallback rule.
func ValidateRules(rules []Rule) error {
	for _, dir := range []model.Direction{model.DirectionIncome, model.DirectionExpense} {
		covered := false
		for _, r := range rules {
			if r.fallback() && (r.Direction == "" || r.Direction == dir) {
				covered = true
				break
			}
		}
		if !covered {
			return fmt.Errorf("bank rules: no fallback rule for %s movements", dir)
		}
	}
	return nil
}

// Classify returns the first rule that matches m.
func Classify(rules []Rule, m model.BankMovement) (Rule, bool) {
	for _, r := range rules {
		if r.Matches(m) {
			return r, true
		}
	}
	return Rule{}, false
}
