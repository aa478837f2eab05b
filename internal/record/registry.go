package record

// knownTargets lists the static ColumnOrder for every target-record type
// bondetl ships, keyed by TargetType(). Configuration validation consults
// this to check a configured sort field actually exists on the target
// schema before any day runs.
var knownTargets = map[string][]string{
	"XbondQuote":      xbondQuoteTargetColumns,
	"XbondTrade":      xbondTradeTargetColumns,
	"BondFutureQuote": bondFutureQuoteTargetColumns,
}

// ColumnOrderFor returns the declared column order for a target-record
// type name, and whether that type is known.
func ColumnOrderFor(targetType string) ([]string, bool) {
	columns, ok := knownTargets[targetType]
	return columns, ok
}

// KnownTargetTypes returns every registered target-record type name.
func KnownTargetTypes() []string {
	types := make([]string, 0, len(knownTargets))
	for t := range knownTargets {
		types = append(types, t)
	}
	return types
}
