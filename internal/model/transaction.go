package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the side of a bank movement from the company's point of view.
type Direction string

const (
	DirectionIncome  Direction = "Income"
	DirectionExpense Direction = "Expense"
)

// ParseDirection accepts "Income"/"Expense" and the "Ingreso"/"Egreso" spellings,
// case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "ingreso":
		return DirectionIncome, nil
	case "expense", "egreso":
		return DirectionExpense, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Sale is one sold line: a client buying a quantity of one product.
type Sale struct {
	ID        int
	Date      time.Time
	ClientID  int
	ProductID int
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal // tax-inclusive
}

// Purchase is one inventory purchase of a product.
type Purchase struct {
	ID        int
	ProductID int
	Date      time.Time
	Quantity  int
	UnitCost  decimal.Decimal
	TotalCost decimal.Decimal // tax-inclusive
}

// BankMovement is one movement on a bank account.
type BankMovement struct {
	ID            int
	BankAccountID int
	Date          time.Time
	Direction     Direction
	Amount        decimal.Decimal // always positive; Direction carries the sign
	Description   string
}
