package generate

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/synthbooks/internal/model"
)

var clientNames = map[model.ClientCategory][]string{
	model.ClientRetail: {
		"Juan Pérez", "María García", "Carlos López", "Ana Martínez", "Pedro Rodríguez",
		"Laura Sánchez", "Miguel González", "Carmen Fernández", "José Ramírez", "Isabel Torres",
	},
	model.ClientWholesale: {
		"Distribuidora González", "Comercial López e Hijos", "Mayorista Fernández",
		"Distribuciones Martínez", "Abastecedora Torres", "Comercial del Centro",
	},
	model.ClientCorporate: {
		"Industrias Globales", "Corporación Tecnológica", "Grupo Empresarial Omega",
		"Consorcio Energético", "Corporación Alimentaria", "Grupo Farmacéutico",
	},
}

// Clients returns n clients: 60% retail, 30% wholesale, 10% corporate.
func (g *Generator) Clients(n int) []model.Client {
	categories := []model.ClientCategory{model.ClientRetail, model.ClientWholesale, model.ClientCorporate}
	weights := []float64{0.6, 0.3, 0.1}

	clients := make([]model.Client, n)
	for i := range clients {
		cat := categories[g.weighted(weights)]
		clients[i] = model.Client{ID: i + 1, Name: pick(g, clientNames[cat]), Category: cat}
	}
	return clients
}

type productCategory struct {
	name                 string
	priceMin, priceMax   float64
	marginMin, marginMax float64
	kinds, brands        []string
}

var productCategories = []productCategory{
	{"Electronics", 450, 7000, 0.35, 0.45,
		[]string{"Smartphone", "Laptop", "Tablet", "TV", "Headphones", "Speaker", "Camera"},
		[]string{"TechPro", "Innovatech", "DigiMax", "ElectraSmart"}},
	{"Clothing", 40, 600, 0.40, 0.50,
		[]string{"Shirt", "Trousers", "Dress", "Jacket", "Skirt", "Sweater"},
		[]string{"FashionStyle", "TrendyWear", "UrbanChic"}},
	{"Food", 15, 150, 0.25, 0.35,
		[]string{"Cereal", "Pasta", "Snack", "Beverage", "Dairy", "Seasoning"},
		[]string{"NutriFood", "SaborNatural", "FrescoPack"}},
	{"Home", 80, 1500, 0.30, 0.40,
		[]string{"Armchair", "Table", "Lamp", "Rug", "Curtain", "Shelf"},
		[]string{"HomeStyle", "ComfortDesign", "CozyLiving"}},
	{"Toys", 25, 400, 0.35, 0.45,
		[]string{"Doll", "Board Game", "Puzzle", "Plush", "Building Set"},
		[]string{"FunToys", "KidJoy", "PlayWorld"}},
}

// Products returns n products. Unit variable cost is price × (1 − margin).
func (g *Generator) Products(n int) []model.Product {
	products := make([]model.Product, n)
	for i := range products {
		c := pick(g, productCategories)
		price := g.uniform(c.priceMin, c.priceMax)
		margin := g.uniform(c.marginMin, c.marginMax)
		products[i] = model.Product{
			ID:           i + 1,
			Name:         fmt.Sprintf("%s %s %s", pick(g, c.brands), pick(g, c.kinds), g.modelCode()),
			Category:     c.name,
			UnitPrice:    decimal.NewFromFloat(price).Round(2),
			UnitVariable: decimal.NewFromFloat(price * (1 - margin)).Round(2),
		}
	}
	return products
}

type assetType struct {
	name                     string
	costMin, costMax         float64
	lifeMin, lifeMax         int
	residualMin, residualMax float64
	kinds                    []string
}

var assetTypes = []assetType{
	{"Machinery", 5000, 50000, 5, 10, 0.05, 0.15, []string{"Production Line", "Packaging Unit", "Assembly System"}},
	{"Equipment", 1000, 10000, 3, 7, 0.03, 0.10, []string{"Measurement Kit", "Control Device", "Security System"}},
	{"Vehicles", 15000, 80000, 5, 8, 0.10, 0.20, []string{"Delivery Van", "Pickup Truck", "Executive Car"}},
	{"Buildings", 100000, 500000, 20, 40, 0.20, 0.40, []string{"Warehouse", "Office", "Retail Unit"}},
	{"Furniture", 500, 5000, 5, 10, 0.05, 0.10, []string{"Executive Desk", "Ergonomic Chair", "Filing Cabinet"}},
}

// assetYear is the year length used for depreciation.
var assetYear = decimal.RequireFromString("365.25")

// Assets returns n fixed assets bought during the three years before the
// horizon starts, depreciated straight-line down to residual value as of
// the horizon start.
func (g *Generator) Assets(n int) []model.Asset {
	from := g.horizon.Start.AddDate(-3, 0, 0)
	span := int(g.horizon.Start.Sub(from).Hours() / 24)

	assets := make([]model.Asset, n)
	for i := range assets {
		t := pick(g, assetTypes)
		cost := g.amount(t.costMin, t.costMax)
		life := g.between(t.lifeMin, t.lifeMax+1)
		residual := cost.Mul(decimal.NewFromFloat(g.uniform(t.residualMin, t.residualMax))).Round(2)
		bought := from.AddDate(0, 0, g.between(0, span))

		acc := Depreciation(cost, residual, life, bought, g.horizon.Start)
		assets[i] = model.Asset{
			ID:                      i + 1,
			Name:                    fmt.Sprintf("%s %s", pick(g, t.kinds), g.modelCode()),
			Type:                    t.name,
			PurchaseDate:            bought,
			AcquisitionCost:         cost,
			UsefulLifeYears:         life,
			ResidualValue:           residual,
			AccumulatedDepreciation: acc,
			NetBookValue:            cost.Sub(acc),
		}
	}
	return assets
}

// Depreciation is straight-line depreciation of cost down to residual over
// life years, accumulated from bought to asOf and capped at cost − residual.
func Depreciation(cost, residual decimal.Decimal, life int, bought, asOf time.Time) decimal.Decimal {
	if life <= 0 || !asOf.After(bought) {
		return decimal.Zero
	}
	base := cost.Sub(residual)
	days := decimal.NewFromInt(int64(asOf.Sub(bought).Hours() / 24))
	acc := base.Mul(days).Div(assetYear.Mul(decimal.NewFromInt(int64(life)))).Round(2)
	if acc.GreaterThan(base) {
		return base
	}
	return acc
}

// AssetValuations returns a book value snapshot of each asset at the end of
// every fiscal year the horizon touches.
func (g *Generator) AssetValuations(assets []model.Asset) []model.AssetValuation {
	var out []model.AssetValuation
	for _, a := range assets {
		for _, year := range g.horizon.Years() {
			yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
			if a.PurchaseDate.After(yearEnd) {
				continue
			}
			acc := Depreciation(a.AcquisitionCost, a.ResidualValue, a.UsefulLifeYears, a.PurchaseDate, yearEnd)
			out = append(out, model.AssetValuation{
				AssetID:                 a.ID,
				FiscalYear:              year,
				InitialValue:            a.AcquisitionCost,
				AccumulatedDepreciation: acc,
				NetValue:                a.AcquisitionCost.Sub(acc),
			})
		}
	}
	return out
}

var banks = []string{
	"Banco Nacional", "Banco Comercial", "Banco Industrial", "Banco Internacional",
	"Banco Metropolitano", "Banco Regional", "Banco Empresarial", "Banco Capital",
}

type bankAccountType struct {
	name               string
	balanceMin, balanceMax float64
}

var (
	checking = bankAccountType{"Checking", 10000, 500000}
	savings  = bankAccountType{"Savings", 5000, 200000}
)

// BankAccounts returns n bank accounts. The first is a checking account in
// MXN and the second a savings account.
func (g *Generator) BankAccounts(n int) []model.BankAccount {
	currencies := []string{"MXN", "USD", "EUR"}
	weights := []float64{0.7, 0.2, 0.1}

	accts := make([]model.BankAccount, n)
	for i := range accts {
		var t bankAccountType
		var currency string
		switch i {
		case 0:
			t, currency = checking, "MXN"
		case 1:
			t, currency = savings, currencies[g.weighted(weights)]
		default:
			t, currency = pick(g, []bankAccountType{checking, savings}), currencies[g.weighted(weights)]
		}
		accts[i] = model.BankAccount{
			ID:             i + 1,
			Bank:           pick(g, banks),
			Type:           t.name,
			OpeningBalance: g.amount(t.balanceMin, t.balanceMax),
			Currency:       currency,
		}
	}
	return accts
}
