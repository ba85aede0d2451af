package tables

import (
	"fmt"

	"github.com/cleared-dev/synthbooks/internal/model"
)

// Table names. Each is also the file stem of its CSV export.
const (
	NameChart           = "chart_of_accounts"
	NameClients         = "clients"
	NameProducts        = "products"
	NameAssets          = "assets"
	NameAssetValuations = "asset_valuations"
	NameBankAccounts    = "bank_accounts"
	NameSales           = "sales"
	NamePurchases       = "purchases"
	NameBankMovements   = "bank_movements"
	NameJournal         = "journal"
	NameLedger          = "ledger"
)

var clientsColumns = []Column{
	{"client_id", Int}, {"name", Text}, {"category", Text},
}

var Clients = Codec[model.Client]{
	Name:    NameClients,
	Columns: clientsColumns,
	Marshal: func(c model.Client) []string {
		return []string{itoa(c.ID), c.Name, string(c.Category)}
	},
	Unmarshal: func(rec []string) (model.Client, error) {
		f := fields{rec: rec, cols: clientsColumns}
		c := model.Client{ID: f.num(0), Name: f.str(1), Category: model.ClientCategory(f.str(2))}
		if f.err == nil && !c.Category.Valid() {
			return c, fmt.Errorf("unknown client category %q", rec[2])
		}
		return c, f.err
	},
}

var productsColumns = []Column{
	{"product_id", Int}, {"name", Text}, {"category", Text},
	{"unit_price", Decimal}, {"unit_variable_cost", Decimal},
}

var Products = Codec[model.Product]{
	Name:    NameProducts,
	Columns: productsColumns,
	Marshal: func(p model.Product) []string {
		return []string{itoa(p.ID), p.Name, p.Category, money(p.UnitPrice), money(p.UnitVariable)}
	},
	Unmarshal: func(rec []string) (model.Product, error) {
		f := fields{rec: rec, cols: productsColumns}
		p := model.Product{
			ID:           f.num(0),
			Name:         f.str(1),
			Category:     f.str(2),
			UnitPrice:    f.amount(3),
			UnitVariable: f.amount(4),
		}
		return p, f.err
	},
}

var assetsColumns = []Column{
	{"asset_id", Int}, {"name", Text}, {"type", Text}, {"purchase_date", Date},
	{"acquisition_cost", Decimal}, {"useful_life_years", Int}, {"residual_value", Decimal},
	{"accumulated_depreciation", Decimal}, {"net_book_value", Decimal},
}

var Assets = Codec[model.Asset]{
	Name:    NameAssets,
	Columns: assetsColumns,
	Marshal: func(a model.Asset) []string {
		return []string{
			itoa(a.ID), a.Name, a.Type, day(a.PurchaseDate),
			money(a.AcquisitionCost), itoa(a.UsefulLifeYears), money(a.ResidualValue),
			money(a.AccumulatedDepreciation), money(a.NetBookValue),
		}
	},
	Unmarshal: func(rec []string) (model.Asset, error) {
		f := fields{rec: rec, cols: assetsColumns}
		a := model.Asset{
			ID:                      f.num(0),
			Name:                    f.str(1),
			Type:                    f.str(2),
			PurchaseDate:            f.date(3),
			AcquisitionCost:         f.amount(4),
			UsefulLifeYears:         f.num(5),
			ResidualValue:           f.amount(6),
			AccumulatedDepreciation: f.amount(7),
			NetBookValue:            f.amount(8),
		}
		return a, f.err
	},
}

var assetValuationsColumns = []Column{
	{"asset_id", Int}, {"fiscal_year", Int}, {"initial_value", Decimal},
	{"accumulated_depreciation", Decimal}, {"net_value", Decimal},
}

var AssetValuations = Codec[model.AssetValuation]{
	Name:    NameAssetValuations,
	Columns: assetValuationsColumns,
	Marshal: func(v model.AssetValuation) []string {
		return []string{itoa(v.AssetID), itoa(v.FiscalYear), money(v.InitialValue), money(v.AccumulatedDepreciation), money(v.NetValue)}
	},
	Unmarshal: func(rec []string) (model.AssetValuation, error) {
		f := fields{rec: rec, cols: assetValuationsColumns}
		v := model.AssetValuation{
			AssetID:                 f.num(0),
			FiscalYear:              f.num(1),
			InitialValue:            f.amount(2),
			AccumulatedDepreciation: f.amount(3),
			NetValue:                f.amount(4),
		}
		return v, f.err
	},
}

var bankAccountsColumns = []Column{
	{"bank_account_id", Int}, {"bank", Text}, {"account_type", Text},
	{"opening_balance", Decimal}, {"currency", Text},
}

var BankAccounts = Codec[model.BankAccount]{
	Name:    NameBankAccounts,
	Columns: bankAccountsColumns,
	Marshal: func(b model.BankAccount) []string {
		return []string{itoa(b.ID), b.Bank, b.Type, money(b.OpeningBalance), b.Currency}
	},
	Unmarshal: func(rec []string) (model.BankAccount, error) {
		f := fields{rec: rec, cols: bankAccountsColumns}
		b := model.BankAccount{
			ID:             f.num(0),
			Bank:           f.str(1),
			Type:           f.str(2),
			OpeningBalance: f.amount(3),
			Currency:       f.str(4),
		}
		return b, f.err
	},
}
