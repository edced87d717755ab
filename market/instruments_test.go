package market

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairsUSDLegsExclusive(t *testing.T) {
	t.Parallel()

	for sym, p := range Pairs {
		assert.False(t, p.USDIsQuote && p.USDIsBase, sym)
		assert.Equal(t, sym, p.Symbol)
		assert.Equal(t, p.Base+p.Quote, sym)
		assert.Equal(t, p.Quote == "USD", p.USDIsQuote, sym)
		assert.Equal(t, p.Base == "USD", p.USDIsBase, sym)
	}
}

func TestNormalizeSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"EURUSD", "EURUSD"},
		{"eurusd", "EURUSD"},
		{"EUR_USD", "EURUSD"},
		{"EUR/USD", "EURUSD"},
		{" usd-jpy ", "USDJPY"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSymbol(tt.in), tt.in)
	}
}

func TestLookupPair(t *testing.T) {
	t.Parallel()

	p, ok := LookupPair("usd_jpy")
	require.True(t, ok)
	assert.Equal(t, 2, p.PipDecimalPlace)
	assert.True(t, p.USDIsBase)
	assert.False(t, p.Cross())

	p, ok = LookupPair("EUR/GBP")
	require.True(t, ok)
	assert.True(t, p.Cross())

	_, ok = LookupPair("XAUUSD")
	assert.False(t, ok)
}

func TestSymbolsSorted(t *testing.T) {
	t.Parallel()

	syms := Symbols()
	assert.Len(t, syms, len(Pairs))
	assert.True(t, sort.StringsAreSorted(syms))
}
