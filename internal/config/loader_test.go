package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validINI = `
[source.1]
name = nyse_feed
type = csv
connectionString = /data/nyse.csv

[target.1]
name = xbond_quote_target
type = dolphin
dataType = XbondQuote

[loader]
connection.url = dolphin://localhost:8848
sort.fields = ReceiveTime,Symbol
temporary.table.prefix = stg_
target.table.mappings = XbondQuote:xbond_quote

[logging]
logFilePath = /var/log/bondetl.log
logLevel = info
`

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "bondetl.ini")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	t.Parallel()

	path := writeTempConfig(t, validINI)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Sources, 1)
	require.Equal(t, "nyse_feed", cfg.Sources[0].Name)
	require.Equal(t, []string{"ReceiveTime", "Symbol"}, cfg.Loader.SortFields)
	require.Equal(t, 256, cfg.Loader.MaxMemoryMB)
	require.Equal(t, "xbond_quote", cfg.Loader.TargetTableMappings["XbondQuote"])
}

func TestLoadRejectsSortFieldMissingFromTargetSchema(t *testing.T) {
	t.Parallel()

	badINI := validINI + "\n[loader]\nsort.fields = NotAField\n"
	path := writeTempConfig(t, badINI)
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "sort field")
}
