package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLegNet(t *testing.T) {
	tests := []struct {
		debit, credit string
		want          string
		isDebit       bool
	}{
		{"100.00", "0", "100", true},
		{"0", "42.50", "-42.5", false},
		{"0", "0", "0", false},
	}
	for _, tt := range tests {
		leg := Leg{Debit: decimal.RequireFromString(tt.debit), Credit: decimal.RequireFromString(tt.credit)}
		assert.True(t, leg.Net().Equal(decimal.RequireFromString(tt.want)), "Net(%s,%s)", tt.debit, tt.credit)
		assert.Equal(t, tt.isDebit, leg.IsDebit())
	}
}

func TestSignedChange(t *testing.T) {
	d := decimal.NewFromInt(300)
	c := decimal.NewFromInt(100)

	for _, at := range []AccountType{AccountTypeAsset, AccountTypeExpense} {
		assert.True(t, SignedChange(at, d, c).Equal(decimal.NewFromInt(200)), "%s is debit-normal", at)
	}
	for _, at := range []AccountType{AccountTypeLiability, AccountTypeEquity, AccountTypeIncome} {
		assert.True(t, SignedChange(at, d, c).Equal(decimal.NewFromInt(-200)), "%s is credit-normal", at)
	}
}

func TestAccountTypeValid(t *testing.T) {
	assert.True(t, AccountTypeIncome.Valid())
	assert.False(t, AccountType("Revenue").Valid())
	assert.False(t, AccountType("").Valid())
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"Income", DirectionIncome},
		{"expense", DirectionExpense},
		{"Ingreso", DirectionIncome},
		{" EGRESO ", DirectionExpense},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseDirection("transfer")
	assert.Error(t, err)
}
