package record

import "time"

// XbondTradeSource is the shape an extractor produces for an executed bond
// trade print. TradePrice, TradeYield, TradeVolume and TradeId have no
// counterpart in XbondTradeTarget today (see the Open Question in Design
// Notes on mismatched source/target name sets); the default behavior is
// drop-silent with a DEBUG log, implemented once in the base transformer.
type XbondTradeSource struct {
	Symbol      string
	ReceiveTime *time.Time
	SettleDate  *string
	TradePrice  *float64
	TradeYield  *float64
	TradeVolume *int
	TradeId     *string
}

// SourceType implements record.SourceRecord.
func (XbondTradeSource) SourceType() string { return "XbondTrade" }

var xbondTradeTargetColumns = []string{
	"Symbol", "ReceiveTime", "SettleDate", "ExecutionVenue", "Volume",
}

// XbondTradeTarget is the storage-tuned shape for the xbond_trade staging
// table. ExecutionVenue and Volume have no source counterpart today and
// stay at their sentinel/zero defaults: loader-only columns populated by
// a downstream process outside this system's scope.
type XbondTradeTarget struct {
	Symbol         string
	ReceiveTime    time.Time
	SettleDate     time.Time
	ExecutionVenue string
	Volume         int
}

// NewXbondTradeTarget returns a target record with every numeric field at
// its sentinel default.
func NewXbondTradeTarget() *XbondTradeTarget {
	return &XbondTradeTarget{Volume: IntSentinel}
}

// TargetType implements record.TargetRecord.
func (XbondTradeTarget) TargetType() string { return "XbondTrade" }

// ColumnOrder implements record.TargetRecord.
func (XbondTradeTarget) ColumnOrder() []string { return xbondTradeTargetColumns }
