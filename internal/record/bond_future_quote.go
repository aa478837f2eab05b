package record

import "time"

// BondFutureQuoteSource is the shape an extractor produces for a bond
// futures contract quote tick.
type BondFutureQuoteSource struct {
	Symbol        string
	ReceiveTime   *time.Time
	LastPrice     *float64
	Volume        *int
	OpenInterest  *int
	SettleDate    *string
	ContractMonth *string
}

// SourceType implements record.SourceRecord.
func (BondFutureQuoteSource) SourceType() string { return "BondFutureQuote" }

var bondFutureQuoteTargetColumns = []string{
	"Symbol", "ReceiveTime", "LastPrice", "Volume", "OpenInterest", "SettleDate", "ContractMonth",
}

// BondFutureQuoteTarget is the storage-tuned shape for the
// bond_future_quote staging table.
type BondFutureQuoteTarget struct {
	Symbol        string
	ReceiveTime   time.Time
	LastPrice     float64
	Volume        int
	OpenInterest  int
	SettleDate    time.Time
	ContractMonth string
}

// NewBondFutureQuoteTarget returns a target record with every numeric
// field at its sentinel default.
func NewBondFutureQuoteTarget() *BondFutureQuoteTarget {
	return &BondFutureQuoteTarget{
		LastPrice:    FloatSentinel(),
		Volume:       IntSentinel,
		OpenInterest: IntSentinel,
	}
}

// TargetType implements record.TargetRecord.
func (BondFutureQuoteTarget) TargetType() string { return "BondFutureQuote" }

// ColumnOrder implements record.TargetRecord.
func (BondFutureQuoteTarget) ColumnOrder() []string { return bondFutureQuoteTargetColumns }
