package tables

import (
	"fmt"

	"github.com/cleared-dev/synthbooks/internal/model"
)

var salesColumns = []Column{
	{"sale_id", Int}, {"date", Date}, {"client_id", Int}, {"product_id", Int},
	{"quantity", Int}, {"unit_price", Decimal}, {"total", Decimal},
}

var Sales = Codec[model.Sale]{
	Name:    NameSales,
	Columns: salesColumns,
	Marshal: func(s model.Sale) []string {
		return []string{
			itoa(s.ID), day(s.Date), itoa(s.ClientID), itoa(s.ProductID),
			itoa(s.Quantity), money(s.UnitPrice), money(s.Total),
		}
	},
	Unmarshal: func(rec []string) (model.Sale, error) {
		f := fields{rec: rec, cols: salesColumns}
		s := model.Sale{
			ID:        f.num(0),
			Date:      f.date(1),
			ClientID:  f.num(2),
			ProductID: f.num(3),
			Quantity:  f.num(4),
			UnitPrice: f.amount(5),
			Total:     f.amount(6),
		}
		return s, f.err
	},
}

var purchasesColumns = []Column{
	{"purchase_id", Int}, {"product_id", Int}, {"date", Date},
	{"quantity", Int}, {"unit_cost", Decimal}, {"total_cost", Decimal},
}

var Purchases = Codec[model.Purchase]{
	Name:    NamePurchases,
	Columns: purchasesColumns,
	Marshal: func(p model.Purchase) []string {
		return []string{
			itoa(p.ID), itoa(p.ProductID), day(p.Date),
			itoa(p.Quantity), money(p.UnitCost), money(p.TotalCost),
		}
	},
	Unmarshal: func(rec []string) (model.Purchase, error) {
		f := fields{rec: rec, cols: purchasesColumns}
		p := model.Purchase{
			ID:        f.num(0),
			ProductID: f.num(1),
			Date:      f.date(2),
			Quantity:  f.num(3),
			UnitCost:  f.amount(4),
			TotalCost: f.amount(5),
		}
		return p, f.err
	},
}

var movementsColumns = []Column{
	{"movement_id", Int}, {"bank_account_id", Int}, {"date", Date},
	{"direction", Text}, {"amount", Decimal}, {"description", Text},
}

var BankMovements = Codec[model.BankMovement]{
	Name:    NameBankMovements,
	Columns: movementsColumns,
	Marshal: func(m model.BankMovement) []string {
		return []string{
			itoa(m.ID), itoa(m.BankAccountID), day(m.Date),
			string(m.Direction), money(m.Amount), m.Description,
		}
	},
	Unmarshal: func(rec []string) (model.BankMovement, error) {
		f := fields{rec: rec, cols: movementsColumns}
		m := model.BankMovement{
			ID:            f.num(0),
			BankAccountID: f.num(1),
			Date:          f.date(2),
			Amount:        f.amount(4),
			Description:   f.str(5),
		}
		if f.err != nil {
			return m, f.err
		}
		dir, err := model.ParseDirection(rec[3])
		if err != nil {
			return m, fmt.Errorf("parsing direction: %w", err)
		}
		m.Direction = dir
		return m, nil
	},
}
