package journal

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/fxjournal/pnl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVHeaderAndRow(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []TradeRecord{orgTrade()}))

	r := csv.NewReader(strings.NewReader(buf.String()))
	header, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, CSVHeader, header)

	row, err := r.Read()
	require.NoError(t, err)
	want := []string{
		"01HV0000000000000000000000",
		"ACC1",
		"EURUSD",
		"Buy",
		"1.1",
		"1.105",
		"1",
		"1.095",
		"1.11",
		"2024-03-15T10:30:45Z",
		"2024-03-15T14:20:30Z",
		"500.00",
		"50.0",
		"10",
		"true",
		"2",
		"false",
		"",
		"breakout",
		"held to target",
	}
	assert.Equal(t, want, row)
}

func TestWriteCSVEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, strings.Join(CSVHeader, ",")+"\n", buf.String())
}

func TestCSVRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := orgTrade()
	require.NoError(t, WriteCSV(&buf, []TradeRecord{tr}))

	entries, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, tr.ID, e.ID)
	assert.Equal(t, tr.AccountID, e.AccountID)
	assert.Equal(t, pnl.Buy, e.Direction)
	assert.Equal(t, tr.EntryPrice, e.EntryPrice)
	assert.Equal(t, tr.ExitPrice, e.ExitPrice)
	require.NotNil(t, e.StopLoss)
	assert.Equal(t, *tr.StopLoss, *e.StopLoss)
	assert.True(t, e.OpenTime.Equal(tr.OpenTime))
	assert.True(t, e.CloseTime.Equal(tr.CloseTime))
	assert.Equal(t, "held to target", e.Notes)

	rebuilt, err := Build(e, testNow)
	require.NoError(t, err)
	assert.Equal(t, tr.Profit, rebuilt.Profit)
}

func TestReadCSVMinimalColumns(t *testing.T) {
	t.Parallel()

	in := "Symbol, Direction, Entry_Price, Exit_Price, Lot_Size, Close_Time\n" +
		"usd/jpy, short, 110, 109.5, 1, 2024-01-02 15:04\n" +
		"EURUSD, long, 1.1, 1.1, 0.1,\n"

	entries, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "usd/jpy", entries[0].Symbol)
	assert.Equal(t, pnl.Sell, entries[0].Direction)
	assert.Equal(t, 109.5, entries[0].ExitPrice)
	assert.True(t, entries[0].CloseTime.Equal(time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC)))
	assert.Nil(t, entries[0].StopLoss)
	assert.True(t, entries[1].CloseTime.IsZero())
	assert.Empty(t, entries[1].AccountID)
}

func TestReadCSVErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"missing column", "symbol,direction,entry_price,exit_price\nEURUSD,buy,1,2\n", `missing required column "lot_size"`},
		{"bad number", "symbol,direction,entry_price,exit_price,lot_size\nEURUSD,buy,abc,2,1\n", "line 2: entry_price"},
		{"bad direction", "symbol,direction,entry_price,exit_price,lot_size\nEURUSD,up,1,2,1\n", "line 2: unknown direction"},
		{"bad time", "symbol,direction,entry_price,exit_price,lot_size,open_time\nEURUSD,buy,1,2,1,yesterday\n", "line 2: open_time"},
		{"bad stop", "symbol,direction,entry_price,exit_price,lot_size,stop_loss\nEURUSD,buy,1,2,1,x\n", "stop_loss"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadCSV(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadCSVEmpty(t *testing.T) {
	t.Parallel()

	entries, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
