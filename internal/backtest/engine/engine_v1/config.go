package engine

import (
	"encoding/json"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"gopkg.in/yaml.v3"
)

type BacktestConfig struct {
	Strategy   types.SmaParams            `yaml:"strategy" json:"strategy" jsonschema:"title=Strategy,description=Moving average windows of the crossover"`
	Settings   types.BacktestSettings     `yaml:"settings" json:"settings" jsonschema:"title=Settings,description=Execution and risk settings"`
	DateFormat types.DateFormat           `yaml:"date_format" json:"date_format" jsonschema:"title=Date Format,description=How textual dates in the CSV are read" validate:"omitempty,oneof=iso mdy dmy"`
	StartTime  optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional first instant of the backtest window"`
	EndTime    optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional last instant of the backtest window"`
}

// UnmarshalYAML decodes over the current values so missing keys keep their defaults.
func (c *BacktestConfig) UnmarshalYAML(value *yaml.Node) error {
	type rawConfig struct {
		Strategy   types.SmaParams        `yaml:"strategy"`
		Settings   types.BacktestSettings `yaml:"settings"`
		DateFormat types.DateFormat       `yaml:"date_format"`
		StartTime  *time.Time             `yaml:"start_time"`
		EndTime    *time.Time             `yaml:"end_time"`
	}

	config := rawConfig{
		Strategy:   c.Strategy,
		Settings:   c.Settings,
		DateFormat: c.DateFormat,
		StartTime:  nil,
		EndTime:    nil,
	}
	if err := value.Decode(&config); err != nil {
		return err
	}

	c.Strategy = config.Strategy
	c.Settings = config.Settings
	c.DateFormat = config.DateFormat

	if config.StartTime != nil {
		c.StartTime = optional.Some(config.StartTime.UTC())
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(config.EndTime.UTC())
	}

	return nil
}

// Validate checks field ranges and the time window.
func (c *BacktestConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid backtest config", err)
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && c.EndTime.Unwrap().Before(c.StartTime.Unwrap()) {
		return errors.Newf(errors.ErrCodeInvalidTimeWindow, "end_time %s is before start_time %s",
			c.EndTime.Unwrap().Format(time.RFC3339), c.StartTime.Unwrap().Format(time.RFC3339))
	}

	return nil
}

// Window returns the configured time window as epoch seconds, ready for Series.Between.
func (c *BacktestConfig) Window() (optional.Option[int64], optional.Option[int64]) {
	start := optional.None[int64]()
	if c.StartTime.IsSome() {
		start = optional.Some(c.StartTime.Unwrap().Unix())
	}

	end := optional.None[int64]()
	if c.EndTime.IsSome() {
		end = optional.Some(c.EndTime.Unwrap().Unix())
	}

	return start, end
}

// GenerateSchema generates a JSON schema for the BacktestConfig
func (c *BacktestConfig) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			if strings.HasSuffix(t.String(), "types.DateFormat") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: types.AllDateFormats,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for the SMA crossover backtest engine"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestConfig
func (c *BacktestConfig) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// ParseConfig reads a YAML document on top of DefaultConfig and validates the result.
func ParseConfig(content []byte) (BacktestConfig, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(content, &config); err != nil {
		return BacktestConfig{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse backtest config", err)
	}

	if err := config.Validate(); err != nil {
		return BacktestConfig{}, err
	}

	return config, nil
}

// LoadConfig reads and validates the YAML config at path.
func LoadConfig(path string) (BacktestConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return BacktestConfig{}, errors.Wrapf(errors.ErrCodeFileReadFailed, err, "failed to read config %s", path)
	}

	return ParseConfig(content)
}

// DefaultConfig returns a BacktestConfig with default values
func DefaultConfig() BacktestConfig {
	return BacktestConfig{
		Strategy:   types.DefaultSmaParams(),
		Settings:   types.DefaultBacktestSettings(),
		DateFormat: types.DateFormatISO,
		StartTime:  optional.None[time.Time](),
		EndTime:    optional.None[time.Time](),
	}
}
