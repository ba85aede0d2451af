package generate

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/synthbooks/internal/model"
)

// Sales returns n sales sorted by date and numbered in that order. Quantity
// depends on the client's category.
func (g *Generator) Sales(clients []model.Client, products []model.Product, n int) []model.Sale {
	if len(clients) == 0 || len(products) == 0 {
		return nil
	}
	sales := make([]model.Sale, n)
	for i := range sales {
		date := g.date()
		c := pick(g, clients)
		p := pick(g, products)

		var qty int
		switch c.Category {
		case model.ClientWholesale:
			qty = g.between(10, 50)
		case model.ClientCorporate:
			qty = g.between(50, 200)
		default:
			qty = g.between(1, 10)
		}

		sales[i] = model.Sale{
			Date:      date,
			ClientID:  c.ID,
			ProductID: p.ID,
			Quantity:  qty,
			UnitPrice: p.UnitPrice,
			Total:     p.UnitPrice.Mul(decimal.NewFromInt(int64(qty))).Round(2),
		}
	}

	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Date.Before(sales[j].Date) })
	for i := range sales {
		sales[i].ID = i + 1
	}
	return sales
}

type volumeTier struct {
	costAbove        float64
	qtyMin, qtyMax   int
	bulkAbove        int
	bulkLo, bulkHi   float64
	smallLo, smallHi float64
}

// Checked top to bottom; the last tier catches everything.
var volumeTiers = []volumeTier{
	{1000, 5, 30, 15, 0.05, 0.15, 0.03, 0.08},
	{200, 15, 80, 40, 0.04, 0.12, 0.02, 0.06},
	{0, 30, 250, 100, 0.03, 0.10, 0.02, 0.05},
}

// Purchases returns n purchases sorted by date and numbered in that order.
// Cheaper products are bought in larger quantities, and larger orders get a
// larger discount on unit variable cost.
func (g *Generator) Purchases(products []model.Product, n int) []model.Purchase {
	if len(products) == 0 {
		return nil
	}
	purchases := make([]model.Purchase, n)
	for i := range purchases {
		date := g.date()
		p := pick(g, products)

		cost, _ := p.UnitVariable.Float64()
		tier := volumeTiers[len(volumeTiers)-1]
		for _, t := range volumeTiers {
			if cost > t.costAbove {
				tier = t
				break
			}
		}

		qty := g.between(tier.qtyMin, tier.qtyMax)
		discount := g.uniform(tier.smallLo, tier.smallHi)
		if qty > tier.bulkAbove {
			discount = g.uniform(tier.bulkLo, tier.bulkHi)
		}
		unit := p.UnitVariable.Mul(decimal.NewFromFloat(1 - discount)).Round(2)

		purchases[i] = model.Purchase{
			ProductID: p.ID,
			Date:      date,
			Quantity:  qty,
			UnitCost:  unit,
			TotalCost: unit.Mul(decimal.NewFromInt(int64(qty))).Round(2),
		}
	}

	sort.SliceStable(purchases, func(i, j int) bool { return purchases[i].Date.Before(purchases[j].Date) })
	for i := range purchases {
		purchases[i].ID = i + 1
	}
	return purchases
}

var (
	incomeConcepts  = []string{"Loan received", "Tax refund", "Asset sale", "Investment income", "Other income"}
	expenseConcepts = []string{"Payroll", "Services", "Taxes", "Insurance", "Maintenance", "Rent", "Other expenses"}
)

// BankMovements returns one collection per sale (paid 0-14 days later), one
// payment per purchase (0-29 days later) and extra unrelated movements, 40%
// income and 60% expense. Dates never pass the horizon end. The result is
// sorted by date and numbered in that order.
func (g *Generator) BankMovements(accts []model.BankAccount, sales []model.Sale, purchases []model.Purchase, extra int) []model.BankMovement {
	if len(accts) == 0 {
		return nil
	}
	movements := make([]model.BankMovement, 0, len(sales)+len(purchases)+extra)

	for _, s := range sales {
		movements = append(movements, model.BankMovement{
			BankAccountID: pick(g, accts).ID,
			Date:          g.capped(s.Date, g.between(0, 15)),
			Direction:     model.DirectionIncome,
			Amount:        s.Total,
			Description:   fmt.Sprintf("Customer collection sale #%d", s.ID),
		})
	}
	for _, p := range purchases {
		movements = append(movements, model.BankMovement{
			BankAccountID: pick(g, accts).ID,
			Date:          g.capped(p.Date, g.between(0, 30)),
			Direction:     model.DirectionExpense,
			Amount:        p.TotalCost,
			Description:   fmt.Sprintf("Supplier payment purchase #%d", p.ID),
		})
	}
	for range extra {
		m := model.BankMovement{
			Date:          g.date(),
			BankAccountID: pick(g, accts).ID,
		}
		if g.rng.Float64() < 0.4 {
			m.Direction = model.DirectionIncome
			m.Amount = g.amount(1000, 50000)
			m.Description = pick(g, incomeConcepts)
		} else {
			m.Direction = model.DirectionExpense
			m.Amount = g.amount(500, 30000)
			m.Description = pick(g, expenseConcepts)
		}
		movements = append(movements, m)
	}

	sort.SliceStable(movements, func(i, j int) bool { return movements[i].Date.Before(movements[j].Date) })
	for i := range movements {
		movements[i].ID = i + 1
	}
	return movements
}
