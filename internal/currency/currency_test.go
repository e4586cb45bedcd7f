package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, "EUR", Lookup("EUR").Code)
	assert.Equal(t, "USD", Lookup("XYZ").Code, "unknown codes default to USD")
	assert.Equal(t, "USD", Lookup("").Code)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		from, to string
		want     float64
	}{
		{name: "usd to eur", amount: 1, from: "USD", to: "EUR", want: 0.92},
		{name: "eur to usd", amount: 0.92, from: "EUR", to: "USD", want: 1},
		{name: "same currency", amount: 25, from: "INR", to: "INR", want: 25},
		{name: "cross rate", amount: 10, from: "GBP", to: "JPY", want: 10 * 149.50 / 0.79},
		{name: "unknown source treated as usd", amount: 1, from: "ZZZ", to: "EUR", want: 0.92},
		{name: "unknown target treated as usd", amount: 1, from: "EUR", to: "ZZZ", want: 1 / 0.92},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rate := Convert(tt.amount, tt.from, tt.to)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.InDelta(t, tt.want/tt.amount, rate, 1e-9)
		})
	}
}

func TestAllReturnsACopy(t *testing.T) {
	first := All()
	first[0].Rate = 999

	assert.Equal(t, float64(1), All()[0].Rate)
	assert.Len(t, All(), 10)
}
