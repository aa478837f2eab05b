package record

import "time"

// XbondQuoteSource is the shape an extractor produces for an exchange bond
// quote tick. Nullable fields use pointers since Go has no implicit null
// for numeric primitives; the transformer coerces nil to the target's
// sentinel.
type XbondQuoteSource struct {
	Symbol      string
	ReceiveTime *time.Time
	BidPrice    *float64
	AskPrice    *float64
	BidYield    *float64
	AskYield    *float64
	Volume      *int
	SettleDate  *string
}

// SourceType implements record.SourceRecord.
func (XbondQuoteSource) SourceType() string { return "XbondQuote" }

var xbondQuoteTargetColumns = []string{
	"Symbol", "ReceiveTime", "BidPrice", "AskPrice", "BidYield", "AskYield", "Volume", "SettleDate",
}

// XbondQuoteTarget is the storage-tuned shape a transformer produces for
// loading into the xbond_quote staging table.
type XbondQuoteTarget struct {
	Symbol     string
	ReceiveTime time.Time
	BidPrice   float64
	AskPrice   float64
	BidYield   float64
	AskYield   float64
	Volume     int
	SettleDate time.Time
}

// NewXbondQuoteTarget returns a target record with every numeric field at
// its sentinel default, ready for the base transformer to populate.
func NewXbondQuoteTarget() *XbondQuoteTarget {
	return &XbondQuoteTarget{
		BidPrice: FloatSentinel(),
		AskPrice: FloatSentinel(),
		BidYield: FloatSentinel(),
		AskYield: FloatSentinel(),
		Volume:   IntSentinel,
	}
}

// TargetType implements record.TargetRecord.
func (XbondQuoteTarget) TargetType() string { return "XbondQuote" }

// ColumnOrder implements record.TargetRecord.
func (XbondQuoteTarget) ColumnOrder() []string { return xbondQuoteTargetColumns }
