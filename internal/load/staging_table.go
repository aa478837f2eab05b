package load

import "fmt"

// StagingTable names one temporary table created for one target table in
// one run, mirroring that target's schema exactly. It is created before
// load and dropped only after validation passes; on any failure it is
// retained for forensic analysis.
type StagingTable struct {
	Name         string
	TargetTable  string
	DataType     string
	CreateScript string
	DropScript   string
}

// NewStagingTable builds a StagingTable named <prefix><targetTable>_<runID>.
func NewStagingTable(prefix, targetTable, dataType, runID string) StagingTable {
	name := fmt.Sprintf("%s%s_%s", prefix, targetTable, runID)
	return StagingTable{
		Name:         name,
		TargetTable:  targetTable,
		DataType:     dataType,
		CreateScript: fmt.Sprintf("CREATE TABLE %s LIKE %s", name, targetTable),
		DropScript:   fmt.Sprintf("DROP TABLE %s", name),
	}
}
