package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// ReconcileConfig holds tuned heuristics used to restore bold layout after
	// translation.
	ReconcileConfig struct {
		Language         string  `yaml:"language" validate:"required"`
		LeakThreshold    float64 `yaml:"leak_threshold" validate:"gt=0,lte=1"`
		SuspiciousSpan   int     `yaml:"suspicious_span" validate:"gt=0"`
		SnapWindow       int     `yaml:"snap_window" validate:"gte=0"`
		MinPrefix        int     `yaml:"min_prefix" validate:"gte=1"`
		PatternSpanLimit int     `yaml:"pattern_span_limit" validate:"gt=0"`
		RepairPasses     int     `yaml:"repair_passes" validate:"min=1,max=32"`
	}

	BaseSizeConfig struct {
		Min     float64 `yaml:"min" validate:"gt=0"`
		Max     float64 `yaml:"max" validate:"gtefield=Min"`
		Factor  float64 `yaml:"factor" validate:"gt=0"`
		Default float64 `yaml:"default" validate:"gt=0"`
	}

	FontsConfig struct {
		Regular string `yaml:"regular,omitempty" sanitize:"assure_file_access"`
		Bold    string `yaml:"bold,omitempty" sanitize:"assure_file_access"`
	}

	LayoutConfig struct {
		ScaleMin          float64        `yaml:"scale_min" validate:"gt=0,ltefield=ScaleMax"`
		ScaleMax          float64        `yaml:"scale_max" validate:"gt=0"`
		MaxIterations     int            `yaml:"max_iterations" validate:"min=1,max=64"`
		Precision         float64        `yaml:"precision" validate:"gt=0"`
		LineHeight        float64        `yaml:"line_height" validate:"gte=1"`
		BoldScale         float64        `yaml:"bold_scale" validate:"gte=1"`
		OverflowLines     int            `yaml:"overflow_lines" validate:"gte=0"`
		Margin            float64        `yaml:"margin" validate:"gte=0"`
		ExpandRight       float64        `yaml:"expand_right" validate:"gte=0"`
		ExpandBottom      float64        `yaml:"expand_bottom" validate:"gte=0"`
		BaseSize          BaseSizeConfig `yaml:"base_size"`
		Fonts             FontsConfig    `yaml:"fonts"`
		FallbackCharWidth float64        `yaml:"fallback_char_width" validate:"gt=0,lte=2"`
	}

	CacheConfig struct {
		Enable bool   `yaml:"enable"`
		Path   string `yaml:"path" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required_if=Enable true"`
	}

	TranslatorConfig struct {
		Engine       TranslatorEngine `yaml:"engine"`
		Model        string           `yaml:"model" validate:"required_if=Engine openai"`
		BaseURL      string           `yaml:"base_url" validate:"omitempty,url"`
		APIKey       SecretString     `yaml:"api_key"`
		Temperature  float32          `yaml:"temperature" validate:"gte=0,lte=2"`
		MaxRetries   int              `yaml:"max_retries" validate:"min=1,max=20"`
		RequestDelay time.Duration    `yaml:"request_delay" validate:"gte=0"`
		BackoffBase  time.Duration    `yaml:"backoff_base" validate:"gt=0"`
		MaxBackoff   time.Duration    `yaml:"max_backoff" validate:"gtefield=BackoffBase"`
		GrowthCap    float64          `yaml:"growth_cap" validate:"gte=1"`
		Cache        CacheConfig      `yaml:"cache"`
	}

	OutputConfig struct {
		Format       OutputFmt     `yaml:"format"`
		Preview      PreviewFmt    `yaml:"preview"`
		PreviewDPI   int           `yaml:"preview_dpi" validate:"min=36,max=600"`
		NameTemplate string        `yaml:"name_template"`
		Layout       bool          `yaml:"layout"`
		Timeout      time.Duration `yaml:"timeout" validate:"gte=0"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Reconcile  ReconcileConfig  `yaml:"reconcile"`
		Layout     LayoutConfig     `yaml:"layout"`
		Translator TranslatorConfig `yaml:"translator"`
		Output     OutputConfig     `yaml:"output"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Defaults returns configuration built from the embedded template alone.
// Panics if template is broken, which is tested.
func Defaults() *Config {
	cfg, err := LoadConfiguration("")
	if err != nil {
		panic(fmt.Sprintf("embedded configuration template is broken: %v", err))
	}
	return cfg
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
