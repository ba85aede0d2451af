// Package journal derives balanced double-entry postings from sales,
// purchases and bank movements.
package journal

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/synthbooks/internal/accounts"
	"github.com/cleared-dev/synthbooks/internal/id"
	"github.com/cleared-dev/synthbooks/internal/model"
)

// ErrInvalidInput is returned when a transaction row cannot be posted.
var ErrInvalidInput = errors.New("invalid input")

// Options holds the posting constants.
type Options struct {
	// TaxRate is the VAT rate included in gross totals.
	TaxRate decimal.Decimal
	// COGSCostFactor scales unit variable cost when estimating cost of a sale.
	// It is a margin adjustment inherited from the reference data model and is
	// not applied to purchases, which post at full cost.
	COGSCostFactor decimal.Decimal
	// COGSMinimum: a sale posts cost of goods sold only above this amount.
	COGSMinimum decimal.Decimal
	// PurchaseMinimum: purchases at or below this total are not posted.
	PurchaseMinimum decimal.Decimal
	// AdminExpenseRate and SellingExpenseRate are fractions of monthly sales.
	AdminExpenseRate   decimal.Decimal
	SellingExpenseRate decimal.Decimal
	// Rules classifies bank movements. Nil means DefaultRules.
	Rules []Rule
}

// DefaultOptions returns the standard posting constants.
func DefaultOptions() Options {
	return Options{
		TaxRate:            decimal.RequireFromString("0.16"),
		COGSCostFactor:     decimal.RequireFromString("0.25"),
		COGSMinimum:        decimal.NewFromInt(10),
		PurchaseMinimum:    decimal.NewFromInt(100),
		AdminExpenseRate:   decimal.RequireFromString("0.10"),
		SellingExpenseRate: decimal.RequireFromString("0.15"),
	}
}

// Input is the set of tables the engine reads. Reference tables are used
// only to check that transactions point at existing rows.
type Input struct {
	Products     []model.Product
	Clients      []model.Client
	BankAccounts []model.BankAccount
	Sales        []model.Sale
	Purchases    []model.Purchase
	Movements    []model.BankMovement
}

// Engine posts transactions against a chart of accounts.
//
// Sales post the gross, tax-inclusive total to revenue with no VAT-output
// line, while purchases split out a VAT-input line. The asymmetry is kept on
// purpose so the journal matches the reference data model.
type Engine struct {
	chart *accounts.Service
	roles accounts.Roles
	opts  Options
}

// NewEngine resolves every account role in chart once. roleOverrides maps role
// keys to account names that replace the defaults.
func NewEngine(chart *accounts.Service, roleOverrides map[string]string, opts Options) (*Engine, error) {
	roles, err := accounts.ResolveRoles(chart, roleOverrides)
	if err != nil {
		return nil, err
	}
	if opts.Rules == nil {
		opts.Rules = DefaultRules()
	}
	if err := ValidateRules(opts.Rules); err != nil {
		return nil, err
	}
	return &Engine{chart: chart, roles: roles, opts: opts}, nil
}

// Derive produces the journal for in. Entry groups are numbered from 1 in
// the order sales, monthly expenses, purchases, bank movements; the result is
// sorted by (date, entry id). Derive is deterministic for a given input.
func (e *Engine) Derive(in Input) ([]model.Leg, error) {
	products := make(map[int]model.Product, len(in.Products))
	for _, p := range in.Products {
		products[p.ID] = p
	}
	clients := make(map[int]bool, len(in.Clients))
	for _, c := range in.Clients {
		clients[c.ID] = true
	}
	banks := make(map[int]bool, len(in.BankAccounts))
	for _, b := range in.BankAccounts {
		banks[b.ID] = true
	}

	p := &poster{roles: e.roles, seq: id.NewSequence(1)}

	if err := e.postSales(p, in.Sales, products, clients); err != nil {
		return nil, err
	}
	e.postMonthlyExpenses(p, in.Sales)
	if err := e.postPurchases(p, in.Purchases, products); err != nil {
		return nil, err
	}
	if err := e.postMovements(p, in.Movements, banks); err != nil {
		return nil, err
	}

	legs := p.legs
	sort.SliceStable(legs, func(i, j int) bool {
		if !legs[i].Date.Equal(legs[j].Date) {
			return legs[i].Date.Before(legs[j].Date)
		}
		return legs[i].EntryID < legs[j].EntryID
	})

	if errs := ValidateLegs(legs, e.chart); len(errs) > 0 {
		return nil, fmt.Errorf("derived journal violates %d invariants, first: %w", len(errs), errs[0])
	}
	return legs, nil
}

func (e *Engine) postSales(p *poster, sales []model.Sale, products map[int]model.Product, clients map[int]bool) error {
	for _, s := range sales {
		if err := checkDate("sale", s.ID, s.Date); err != nil {
			return err
		}
		if s.Quantity <= 0 {
			return fmt.Errorf("%w: sale %d: quantity %d must be positive", ErrInvalidInput, s.ID, s.Quantity)
		}
		if !s.Total.IsPositive() {
			return fmt.Errorf("%w: sale %d: total %s must be positive", ErrInvalidInput, s.ID, s.Total)
		}
		prod, ok := products[s.ProductID]
		if !ok {
			return fmt.Errorf("%w: sale %d: unknown product %d", ErrInvalidInput, s.ID, s.ProductID)
		}
		if !clients[s.ClientID] {
			return fmt.Errorf("%w: sale %d: unknown client %d", ErrInvalidInput, s.ID, s.ClientID)
		}

		desc := fmt.Sprintf("Sale #%d - Client #%d", s.ID, s.ClientID)
		p.pair(s.Date, s.Total, accounts.RoleAccountsReceivable, accounts.RoleSalesRevenue, desc, desc)

		cost := decimal.NewFromInt(int64(s.Quantity)).Mul(prod.UnitVariable).Mul(e.opts.COGSCostFactor).Round(2)
		if cost.GreaterThan(e.opts.COGSMinimum) {
			p.pair(s.Date, cost, accounts.RoleCostOfGoodsSold, accounts.RoleInventory,
				fmt.Sprintf("Cost of sale #%d", s.ID),
				fmt.Sprintf("Inventory out - sale #%d", s.ID))
		}
	}
	return nil
}

type monthKey struct {
	year  int
	month time.Month
}

func (e *Engine) postMonthlyExpenses(p *poster, sales []model.Sale) {
	totals := make(map[monthKey]decimal.Decimal)
	for _, s := range sales {
		k := monthKey{s.Date.Year(), s.Date.Month()}
		totals[k] = totals[k].Add(s.Total)
	}

	keys := make([]monthKey, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	for _, k := range keys {
		date := time.Date(k.year, k.month, 1, 0, 0, 0, 0, time.UTC)
		label := date.Format("2006-01")

		admin := totals[k].Mul(e.opts.AdminExpenseRate).Round(2)
		p.pair(date, admin, accounts.RoleAdministrativeExpenses, accounts.RoleBank,
			"Monthly administrative expenses "+label,
			"Payment of administrative expenses "+label)

		selling := totals[k].Mul(e.opts.SellingExpenseRate).Round(2)
		p.pair(date, selling, accounts.RoleSellingExpenses, accounts.RoleBank,
			"Monthly selling expenses "+label,
			"Payment of selling expenses "+label)
	}
}

func (e *Engine) postPurchases(p *poster, purchases []model.Purchase, products map[int]model.Product) error {
	for _, pu := range purchases {
		if err := checkDate("purchase", pu.ID, pu.Date); err != nil {
			return err
		}
		if pu.Quantity <= 0 {
			return fmt.Errorf("%w: purchase %d: quantity %d must be positive", ErrInvalidInput, pu.ID, pu.Quantity)
		}
		if !pu.TotalCost.IsPositive() {
			return fmt.Errorf("%w: purchase %d: total cost %s must be positive", ErrInvalidInput, pu.ID, pu.TotalCost)
		}
		if _, ok := products[pu.ProductID]; !ok {
			return fmt.Errorf("%w: purchase %d: unknown product %d", ErrInvalidInput, pu.ID, pu.ProductID)
		}

		// The minimum applies to the cost as recorded, before rounding.
		if pu.TotalCost.LessThanOrEqual(e.opts.PurchaseMinimum) {
			continue
		}
		total := pu.TotalCost.Round(2)
		net, vat := SplitTax(total, e.opts.TaxRate)

		entry := p.seq.Next()
		p.add(entry, pu.Date, accounts.RoleInventory, fmt.Sprintf("Purchase #%d - Product #%d", pu.ID, pu.ProductID), net, decimal.Zero)
		if !vat.IsZero() {
			p.add(entry, pu.Date, accounts.RoleVATInput, fmt.Sprintf("VAT on purchase #%d", pu.ID), vat, decimal.Zero)
		}
		p.add(entry, pu.Date, accounts.RoleAccountsPayable, fmt.Sprintf("Payable for purchase #%d", pu.ID), decimal.Zero, total)
	}
	return nil
}

func (e *Engine) postMovements(p *poster, movements []model.BankMovement, banks map[int]bool) error {
	for _, m := range movements {
		if err := checkDate("bank movement", m.ID, m.Date); err != nil {
			return err
		}
		if m.Direction != model.DirectionIncome && m.Direction != model.DirectionExpense {
			return fmt.Errorf("%w: bank movement %d: unknown direction %q", ErrInvalidInput, m.ID, m.Direction)
		}
		if !m.Amount.IsPositive() {
			return fmt.Errorf("%w: bank movement %d: amount %s must be positive", ErrInvalidInput, m.ID, m.Amount)
		}
		if !banks[m.BankAccountID] {
			return fmt.Errorf("%w: bank movement %d: unknown bank account %d", ErrInvalidInput, m.ID, m.BankAccountID)
		}

		rule, ok := Classify(e.opts.Rules, m)
		if !ok {
			// ValidateRules guarantees a fallback per direction.
			return fmt.Errorf("%w: bank movement %d: no rule matches", ErrInvalidInput, m.ID)
		}
		p.pair(m.Date, m.Amount, rule.Debit, rule.Credit, m.Description, m.Description)
	}
	return nil
}

// SplitTax splits a tax-inclusive total into net and tax, where
// tax = round(total × rate, 2) and net = total − tax.
func SplitTax(total, rate decimal.Decimal) (net, tax decimal.Decimal) {
	tax = total.Mul(rate).Round(2)
	return total.Sub(tax), tax
}

func checkDate(table string, rowID int, d time.Time) error {
	if d.IsZero() {
		return fmt.Errorf("%w: %s %d: missing date", ErrInvalidInput, table, rowID)
	}
	return nil
}

// poster accumulates legs and allocates entry ids.
type poster struct {
	roles accounts.Roles
	seq   *id.Sequence
	legs  []model.Leg
}

// pair posts a two-line group of amount. Amounts that round to zero post nothing.
func (p *poster) pair(date time.Time, amount decimal.Decimal, debit, credit accounts.Role, debitDesc, creditDesc string) {
	amount = amount.Round(2)
	if amount.IsZero() {
		return
	}
	entry := p.seq.Next()
	p.add(entry, date, debit, debitDesc, amount, decimal.Zero)
	p.add(entry, date, credit, creditDesc, decimal.Zero, amount)
}

func (p *poster) add(entry int, date time.Time, role accounts.Role, desc string, debit, credit decimal.Decimal) {
	p.legs = append(p.legs, model.Leg{
		EntryID:     entry,
		Date:        date,
		AccountID:   p.roles.ID(role),
		Description: desc,
		Debit:       debit,
		Credit:      credit,
	})
}
