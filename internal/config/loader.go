package config

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	bonderrors "github.com/sl40168/bondetl/pkg/errors"
)

type rawCredentials struct {
	Username string
	Password string
	Token    string
}

type rawSource struct {
	Name             string
	Type             string
	ConnectionString string `mapstructure:"connectionstring"`
	PrimaryKeyField  string `mapstructure:"primarykeyfield"`
	Credentials      *rawCredentials
}

type rawTarget struct {
	Name             string
	Type             string
	ConnectionString string `mapstructure:"connectionstring"`
	BatchSize        int    `mapstructure:"batchsize"`
	DataType         string `mapstructure:"datatype"`
}

type rawTransform struct {
	Name         string
	SourceType   string            `mapstructure:"sourcetype"`
	TargetType   string            `mapstructure:"targettype"`
	FieldMapping map[string]string `mapstructure:"fieldmapping"`
	Filter       map[string]string
}

type rawRuleSet struct {
	Enabled bool
	Rules   string
}

type rawValidation struct {
	Completeness rawRuleSet
	Quality      rawRuleSet
	Consistency  rawRuleSet
}

type rawLoader struct {
	Connection struct {
		URL      string
		Username string
		Password string
	}
	Sort struct {
		Fields string
	}
	Max struct {
		Memory struct {
			MB int
		}
	}
	Temporary struct {
		Table struct {
			Prefix string
		}
	}
	Target struct {
		Table struct {
			Mappings string
		}
	}
}

type rawLogging struct {
	LogFilePath string `mapstructure:"logfilepath"`
	LogLevel    string `mapstructure:"loglevel"`
}

type rawConfig struct {
	Source     map[string]rawSource
	Target     map[string]rawTarget
	Transform  map[string]rawTransform
	Validation rawValidation
	Loader     rawLoader
	Logging    rawLogging
}

// Load reads and validates the INI configuration file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("ini")
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, bonderrors.NewParseError(path, err)
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, bonderrors.NewParseError(path, err)
	}

	cfg := &Config{
		Sources:    sortedSources(raw.Source),
		Targets:    sortedTargets(raw.Target),
		Transforms: sortedTransforms(raw.Transform),
		Validation: Validation{
			Completeness: toRuleSet(raw.Validation.Completeness),
			Quality:      toRuleSet(raw.Validation.Quality),
			Consistency:  toRuleSet(raw.Validation.Consistency),
		},
		Loader: Loader{
			ConnectionURL:        raw.Loader.Connection.URL,
			Username:             raw.Loader.Connection.Username,
			Password:             raw.Loader.Connection.Password,
			SortFields:           splitCSV(raw.Loader.Sort.Fields),
			MaxMemoryMB:          defaultInt(raw.Loader.Max.Memory.MB, 256),
			TemporaryTablePrefix: raw.Loader.Temporary.Table.Prefix,
			TargetTableMappings:  parseTableMappings(raw.Loader.Target.Table.Mappings),
		},
		Logging: Logging{
			LogFilePath: raw.Logging.LogFilePath,
			LogLevel:    raw.Logging.LogLevel,
		},
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func sortedSources(in map[string]rawSource) []Source {
	keys := sortedKeys(in)
	out := make([]Source, 0, len(keys))
	for _, k := range keys {
		r := in[k]
		var creds *Credentials
		if r.Credentials != nil {
			creds = &Credentials{Username: r.Credentials.Username, Password: r.Credentials.Password, Token: r.Credentials.Token}
		}
		out = append(out, Source{
			Name:             r.Name,
			Type:             r.Type,
			ConnectionString: r.ConnectionString,
			PrimaryKeyField:  r.PrimaryKeyField,
			Credentials:      creds,
		})
	}
	return out
}

func sortedTargets(in map[string]rawTarget) []Target {
	keys := sortedKeys(in)
	out := make([]Target, 0, len(keys))
	for _, k := range keys {
		r := in[k]
		out = append(out, Target{
			Name:             r.Name,
			Type:             r.Type,
			ConnectionString: r.ConnectionString,
			BatchSize:        r.BatchSize,
			DataType:         r.DataType,
		})
	}
	return out
}

func sortedTransforms(in map[string]rawTransform) []Transform {
	keys := sortedKeys(in)
	out := make([]Transform, 0, len(keys))
	for _, k := range keys {
		r := in[k]
		out = append(out, Transform{
			Name:         r.Name,
			SourceType:   r.SourceType,
			TargetType:   r.TargetType,
			FieldMapping: r.FieldMapping,
			Filter:       r.Filter,
		})
	}
	return out
}

func sortedKeys[T any](in map[string]T) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, erri := strconv.Atoi(keys[i])
		nj, errj := strconv.Atoi(keys[j])
		if erri == nil && errj == nil {
			return ni < nj
		}
		return keys[i] < keys[j]
	})
	return keys
}

func toRuleSet(r rawRuleSet) RuleSet {
	return RuleSet{Enabled: r.Enabled, Rules: splitCSV(r.Rules)}
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseTableMappings(s string) map[string]string {
	out := make(map[string]string)
	for _, pair := range splitCSV(s) {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		out[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	return out
}

func defaultInt(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
