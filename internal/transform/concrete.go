package transform

import (
	"github.com/sl40168/bondetl/internal/logging"
	"github.com/sl40168/bondetl/internal/record"
)

// XbondQuoteTransformer maps XbondQuoteSource to XbondQuoteTarget. Its
// only job is declaring source/target type identity and a constructor.
// The reflective mapping lives entirely in BaseTransformer.
type XbondQuoteTransformer struct{ BaseTransformer }

// NewXbondQuoteTransformer constructs an XbondQuoteTransformer.
func NewXbondQuoteTransformer(logger *logging.Logger) *XbondQuoteTransformer {
	return &XbondQuoteTransformer{
		BaseTransformer: NewBaseTransformer("XbondQuote", "XbondQuote", func() record.TargetRecord {
			return record.NewXbondQuoteTarget()
		}, logger),
	}
}

// XbondTradeTransformer maps XbondTradeSource to XbondTradeTarget.
type XbondTradeTransformer struct{ BaseTransformer }

// NewXbondTradeTransformer constructs an XbondTradeTransformer.
func NewXbondTradeTransformer(logger *logging.Logger) *XbondTradeTransformer {
	return &XbondTradeTransformer{
		BaseTransformer: NewBaseTransformer("XbondTrade", "XbondTrade", func() record.TargetRecord {
			return record.NewXbondTradeTarget()
		}, logger),
	}
}

// BondFutureQuoteTransformer maps BondFutureQuoteSource to
// BondFutureQuoteTarget.
type BondFutureQuoteTransformer struct{ BaseTransformer }

// NewBondFutureQuoteTransformer constructs a BondFutureQuoteTransformer.
func NewBondFutureQuoteTransformer(logger *logging.Logger) *BondFutureQuoteTransformer {
	return &BondFutureQuoteTransformer{
		BaseTransformer: NewBaseTransformer("BondFutureQuote", "BondFutureQuote", func() record.TargetRecord {
			return record.NewBondFutureQuoteTarget()
		}, logger),
	}
}

// DefaultRegistry returns a Registry populated with every shipped
// transformer.
func DefaultRegistry(logger *logging.Logger) *Registry {
	reg := NewRegistry()
	reg.Register(NewXbondQuoteTransformer(logger))
	reg.Register(NewXbondTradeTransformer(logger))
	reg.Register(NewBondFutureQuoteTransformer(logger))
	return reg
}
