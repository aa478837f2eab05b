package record

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTargetsStartAtSentinels(t *testing.T) {
	t.Parallel()

	quote := NewXbondQuoteTarget()
	require.Equal(t, IntSentinel, quote.Volume)
	require.True(t, math.IsNaN(quote.BidPrice))
	require.True(t, math.IsNaN(quote.AskYield))

	trade := NewXbondTradeTarget()
	require.Equal(t, IntSentinel, trade.Volume)
	require.Empty(t, trade.ExecutionVenue)

	future := NewBondFutureQuoteTarget()
	require.Equal(t, IntSentinel, future.Volume)
	require.Equal(t, IntSentinel, future.OpenInterest)
	require.True(t, math.IsNaN(future.LastPrice))
}

func TestColumnOrderIsStatic(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{
		"Symbol", "ReceiveTime", "BidPrice", "AskPrice", "BidYield", "AskYield", "Volume", "SettleDate",
	}, NewXbondQuoteTarget().ColumnOrder())
	require.Equal(t, "XbondQuote", NewXbondQuoteTarget().TargetType())
	require.Equal(t, "XbondTrade", XbondTradeSource{}.SourceType())
}
