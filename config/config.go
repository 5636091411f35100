package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Layout pins the fixed sheet rows used by the report.
type Layout struct {
	PrimaryLastRow      int `mapstructure:"primary_last_row"`
	SummaryTitleRow     int `mapstructure:"summary_title_row"`
	ExtraHeaderRow      int `mapstructure:"extra_header_row"`
	ExtraDataStartRow   int `mapstructure:"extra_data_start_row"`
	CodeSummaryStartRow int `mapstructure:"code_summary_start_row"`
}

// Config is everything a run needs that is not an input file.
// Load it once and pass it down; nothing mutates it afterwards.
type Config struct {
	MachineOrder   []string          `mapstructure:"machine_order"`
	CodeMapping    map[string]string `mapstructure:"code_mapping"`
	CodeSynonyms   map[string]string `mapstructure:"code_synonyms"`
	Timezone       string            `mapstructure:"timezone"`
	MaxLotSequence int               `mapstructure:"max_lot_sequence"`
	SheetName      string            `mapstructure:"sheet_name"`
	OutputPrefix   string            `mapstructure:"output_prefix"`
	Layout         Layout            `mapstructure:"layout"`
}

const envPrefix = "LOOM"

// Load returns the defaults overlaid with the optional config file at path and
// LOOM_* environment variables.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	// Code tables are replaced as a whole by a config file, never merged key by key.
	d := Default()
	if cfg.CodeMapping == nil {
		cfg.CodeMapping = d.CodeMapping
	}
	if cfg.CodeSynonyms == nil {
		cfg.CodeSynonyms = d.CodeSynonyms
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("machine_order", d.MachineOrder)
	v.SetDefault("timezone", d.Timezone)
	v.SetDefault("max_lot_sequence", d.MaxLotSequence)
	v.SetDefault("sheet_name", d.SheetName)
	v.SetDefault("output_prefix", d.OutputPrefix)
	v.SetDefault("layout.primary_last_row", d.Layout.PrimaryLastRow)
	v.SetDefault("layout.summary_title_row", d.Layout.SummaryTitleRow)
	v.SetDefault("layout.extra_header_row", d.Layout.ExtraHeaderRow)
	v.SetDefault("layout.extra_data_start_row", d.Layout.ExtraDataStartRow)
	v.SetDefault("layout.code_summary_start_row", d.Layout.CodeSummaryStartRow)
}

var twoDigits = regexp.MustCompile(`^\d{2}$`)

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	if len(c.MachineOrder) == 0 {
		return errors.New("config: machine_order is empty")
	}

	seen := make(map[string]struct{}, len(c.MachineOrder))
	for _, m := range c.MachineOrder {
		m = strings.TrimSpace(m)
		if m == "" {
			return errors.New("config: machine_order has a blank entry")
		}
		if _, dup := seen[m]; dup {
			return fmt.Errorf("config: machine %q listed twice", m)
		}
		seen[m] = struct{}{}
	}

	for _, table := range []map[string]string{c.CodeMapping, c.CodeSynonyms} {
		for raw, code := range table {
			if !twoDigits.MatchString(code) {
				return fmt.Errorf("config: code %q maps to %q, want two digits", raw, code)
			}
		}
	}

	if c.MaxLotSequence < 1 {
		return fmt.Errorf("config: max_lot_sequence must be positive, got %d", c.MaxLotSequence)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}

	l := c.Layout
	if l.PrimaryLastRow < 2+len(c.MachineOrder)-1 {
		return fmt.Errorf("config: primary_last_row %d cannot hold %d machines", l.PrimaryLastRow, len(c.MachineOrder))
	}
	if l.SummaryTitleRow <= l.PrimaryLastRow {
		return fmt.Errorf("config: summary_title_row %d overlaps the primary block", l.SummaryTitleRow)
	}
	// Summary panels occupy SummaryTitleRow..SummaryTitleRow+16.
	if l.ExtraHeaderRow <= l.SummaryTitleRow+16 {
		return fmt.Errorf("config: extra_header_row %d overlaps the summary panels", l.ExtraHeaderRow)
	}
	if l.ExtraDataStartRow != l.ExtraHeaderRow+1 {
		return fmt.Errorf("config: extra_data_start_row must follow extra_header_row")
	}
	if l.CodeSummaryStartRow <= l.ExtraDataStartRow {
		return fmt.Errorf("config: code_summary_start_row %d overlaps the extra block", l.CodeSummaryStartRow)
	}

	return nil
}

// Location resolves Timezone. Validate has already checked it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("ICT", 7*60*60)
	}
	return loc
}
