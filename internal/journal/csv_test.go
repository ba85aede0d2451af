package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/synthbooks/internal/model"
)

func TestRoundTrip(t *testing.T) {
	legs := []model.Leg{
		{
			EntryID:     1,
			Date:        time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC),
			AccountID:   "1004",
			Description: "Sale #1 - Client #7",
			Debit:       decimal.RequireFromString("1000"),
		},
		{
			EntryID:     1,
			Date:        time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC),
			AccountID:   "4001",
			Description: "Sale #1 - Client #7",
			Credit:      decimal.RequireFromString("1000"),
		},
	}

	want := []string{
		"1,2020-01-03,1004,Sale #1 - Client #7,1000.00,0.00",
		"1,2020-01-03,4001,Sale #1 - Client #7,0.00,1000.00",
	}
	for i, leg := range legs {
		row := MarshalLeg(leg)
		assert.Equal(t, want[i], strings.Join(row, ","))

		got, err := UnmarshalLeg(row)
		require.NoError(t, err)
		assert.Equal(t, leg.EntryID, got.EntryID)
		assert.True(t, leg.Date.Equal(got.Date))
		assert.Equal(t, leg.AccountID, got.AccountID)
		assert.Equal(t, leg.Description, got.Description)
		assert.True(t, leg.Debit.Equal(got.Debit))
		assert.True(t, leg.Credit.Equal(got.Credit))
	}
}

func TestUnmarshalLeg_EmptyAmounts(t *testing.T) {
	leg, err := UnmarshalLeg(strings.Split("2,2021-05-01,5005,Monthly administrative expenses 2021-05,120.50,", ","))
	require.NoError(t, err)
	assert.True(t, leg.Credit.IsZero())
	assert.Equal(t, "120.5", leg.Debit.String())
}

func TestUnmarshalLeg_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"bad date", "1,2021-13-01,1002,x,1.00,0.00", "parsing date"},
		{"bad id", "abc,2021-01-01,1002,x,1.00,0.00", "invalid entry ID"},
		{"zero id", "0,2021-01-01,1002,x,1.00,0.00", "must be positive"},
		{"empty account", "1,2021-01-01,,x,1.00,0.00", "empty account_id"},
		{"bad amount", "1,2021-01-01,1002,x,ten,0.00", `parsing debit "ten"`},
		{"wrong field count", "1,2021-01-01,1002", "expected 6 fields, got 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLeg(strings.Split(tt.row, ","))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
