package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/sl40168/bondetl/internal/record"
	bonderrors "github.com/sl40168/bondetl/pkg/errors"
)

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate

	alphanumUnderscorePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("alphanum_underscore", func(fl validator.FieldLevel) bool {
			return alphanumUnderscorePattern.MatchString(fl.Field().String())
		})
		validatorInst = v
	})
	return validatorInst
}

// Validate performs schema and cross-field validation on a loaded Config.
// It must run before any day is created: configuration errors must
// surface as exit code 4 before the workflow starts.
func Validate(cfg *Config) error {
	if cfg == nil {
		return bonderrors.NewConfigurationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	if err := checkUniqueNames(cfg.Sources); err != nil {
		return err
	}
	if err := checkUniqueNames(cfg.Targets); err != nil {
		return err
	}

	if err := checkSortFieldsInTargetSchema(cfg); err != nil {
		return err
	}

	if err := checkTargetTableMappings(cfg); err != nil {
		return err
	}

	return nil
}

func checkUniqueNames[T interface{ GetName() string }](items []T) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		name := item.GetName()
		if _, ok := seen[name]; ok {
			return bonderrors.NewConfigurationError("name", fmt.Sprintf("duplicate name %q", name), nil)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// GetName implements the checkUniqueNames constraint for Source.
func (s Source) GetName() string { return s.Name }

// GetName implements the checkUniqueNames constraint for Target.
func (t Target) GetName() string { return t.Name }

// checkSortFieldsInTargetSchema checks [loader].sort.fields against every
// configured target's declared ColumnOrder().
func checkSortFieldsInTargetSchema(cfg *Config) error {
	for _, target := range cfg.Targets {
		if target.DataType == "" {
			continue
		}
		columns, ok := record.ColumnOrderFor(target.DataType)
		if !ok {
			return bonderrors.NewConfigurationError("targets", fmt.Sprintf("target %q declares unknown dataType %q", target.Name, target.DataType), nil)
		}
		columnSet := make(map[string]struct{}, len(columns))
		for _, c := range columns {
			columnSet[c] = struct{}{}
		}
		for _, field := range cfg.Loader.SortFields {
			if _, ok := columnSet[field]; !ok {
				return bonderrors.NewConfigurationError("loader.sort.fields", fmt.Sprintf("sort field %q not present in target %q schema", field, target.DataType), nil)
			}
		}
	}
	return nil
}

func checkTargetTableMappings(cfg *Config) error {
	for _, target := range cfg.Targets {
		if target.DataType == "" {
			continue
		}
		if _, ok := cfg.Loader.TargetTableMappings[target.DataType]; !ok {
			return bonderrors.NewConfigurationError("loader.target.table.mappings", fmt.Sprintf("no staging table mapping for dataType %q", target.DataType), nil)
		}
	}
	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		fe := ves[0]
		field := fieldName(fe)
		msg := fmt.Sprintf("%s failed validation for tag %q", field, fe.Tag())
		return bonderrors.NewConfigurationError(field, msg, err)
	}
	return bonderrors.NewConfigurationError("config", err.Error(), err)
}

func fieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}
