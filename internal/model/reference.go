package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientCategory drives order sizes for a client.
type ClientCategory string

const (
	ClientRetail    ClientCategory = "Retail"
	ClientWholesale ClientCategory = "Wholesale"
	ClientCorporate ClientCategory = "Corporate"
)

// Client is a customer that sales reference.
type Client struct {
	ID       int
	Name     string
	Category ClientCategory
}

// Product is an item that sales and purchases reference.
type Product struct {
	ID           int
	Name         string
	Category     string
	UnitPrice    decimal.Decimal
	UnitVariable decimal.Decimal // unit variable cost
}

// Asset is a fixed asset owned at the start of the simulation.
type Asset struct {
	ID                      int
	Name                    string
	Type                    string
	PurchaseDate            time.Time
	AcquisitionCost         decimal.Decimal
	UsefulLifeYears         int
	ResidualValue           decimal.Decimal
	AccumulatedDepreciation decimal.Decimal
	NetBookValue            decimal.Decimal
}

// AssetValuation is a fiscal year-end book value snapshot of an asset.
type AssetValuation struct {
	AssetID                 int
	FiscalYear              int
	InitialValue            decimal.Decimal
	AccumulatedDepreciation decimal.Decimal
	NetValue                decimal.Decimal
}

// BankAccount is an account held at a bank; bank movements reference it.
type BankAccount struct {
	ID             int
	Bank           string
	Type           string // "Checking" or "Savings"
	OpeningBalance decimal.Decimal
	Currency       string
}

// Valid reports whether c is a known category.
func (c ClientCategory) Valid() bool {
	switch c {
	case ClientRetail, ClientWholesale, ClientCorporate:
		return true
	}
	return false
}
