// Package config handles loading, validating, and printing the skyforge
// configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	skyimg "github.com/aellingwood/skyforge/internal/image"
	"github.com/aellingwood/skyforge/internal/lighting"
	"github.com/aellingwood/skyforge/internal/logging"
	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config file names searched by Find, in order.
var FileNames = []string{"skyforge.yaml", "skyforge.yml", "skyforge.toml"}

// Sky rendering modes.
const (
	ModePhoto    = "photo"
	ModeGradient = "gradient"
)

// Config is the top-level skyforge configuration.
type Config struct {
	Output     OutputConfig     `yaml:"output"     toml:"output"     mapstructure:"output"`
	Sky        SkyConfig        `yaml:"sky"        toml:"sky"        mapstructure:"sky"`
	Restaurant RestaurantConfig `yaml:"restaurant" toml:"restaurant" mapstructure:"restaurant"`
	Melody     MelodyConfig     `yaml:"melody"     toml:"melody"     mapstructure:"melody"`
	Chart      ChartConfig      `yaml:"chart"      toml:"chart"      mapstructure:"chart"`
	Log        LogConfig        `yaml:"log"        toml:"log"        mapstructure:"log"`
}

// OutputConfig controls where and how images are written.
type OutputConfig struct {
	Dir      string `yaml:"dir"      toml:"dir"      mapstructure:"dir"`
	Format   string `yaml:"format"   toml:"format"   mapstructure:"format"`
	Manifest bool   `yaml:"manifest" toml:"manifest" mapstructure:"manifest"`
	Workers  int    `yaml:"workers"  toml:"workers"  mapstructure:"workers"`
}

// SkyConfig controls the hourly sky images.
type SkyConfig struct {
	Mode       string  `yaml:"mode"       toml:"mode"       mapstructure:"mode"`
	Background string  `yaml:"background" toml:"background" mapstructure:"background"`
	Width      int     `yaml:"width"      toml:"width"      mapstructure:"width"`
	Height     int     `yaml:"height"     toml:"height"     mapstructure:"height"`
	Hours      []int   `yaml:"hours"      toml:"hours"      mapstructure:"hours"`
	Seed       uint64  `yaml:"seed"       toml:"seed"       mapstructure:"seed"`
	Blur       float64 `yaml:"blur"       toml:"blur"       mapstructure:"blur"`
	Quality    int     `yaml:"quality"    toml:"quality"    mapstructure:"quality"`
	Table      string  `yaml:"table"      toml:"table"      mapstructure:"table"`
	Clouds     bool    `yaml:"clouds"     toml:"clouds"     mapstructure:"clouds"`
	Deck       bool    `yaml:"deck"       toml:"deck"       mapstructure:"deck"`
	Vignette   bool    `yaml:"vignette"   toml:"vignette"   mapstructure:"vignette"`
	Fit        bool    `yaml:"fit"        toml:"fit"        mapstructure:"fit"` // crop the photo-mode background to width×height
}

// RestaurantConfig controls the restaurant photo variants.
type RestaurantConfig struct {
	Source   string  `yaml:"source"   toml:"source"   mapstructure:"source"`
	Dir      string  `yaml:"dir"      toml:"dir"      mapstructure:"dir"`
	Hours    []int   `yaml:"hours"    toml:"hours"    mapstructure:"hours"`
	Quality  int     `yaml:"quality"  toml:"quality"  mapstructure:"quality"`
	SkyBlend float64 `yaml:"skyBlend" toml:"skyBlend" mapstructure:"skyBlend"`
	Vignette bool    `yaml:"vignette" toml:"vignette" mapstructure:"vignette"`
	Table    string  `yaml:"table"    toml:"table"    mapstructure:"table"`
}

// MelodyConfig controls the MIDI file.
type MelodyConfig struct {
	Output    string  `yaml:"output"    toml:"output"    mapstructure:"output"`
	Tempo     float64 `yaml:"tempo"     toml:"tempo"     mapstructure:"tempo"`
	TrackName string  `yaml:"trackName" toml:"trackName" mapstructure:"trackName"`
}

// ChartConfig controls the lighting chart.
type ChartConfig struct {
	Output string `yaml:"output" toml:"output" mapstructure:"output"`
	Table  string `yaml:"table"  toml:"table"  mapstructure:"table"`
	Width  int    `yaml:"width"  toml:"width"  mapstructure:"width"`
	Height int    `yaml:"height" toml:"height" mapstructure:"height"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level"  toml:"level"  mapstructure:"level"`
	Format string `yaml:"format" toml:"format" mapstructure:"format"`
}

func allHours() []int {
	h := make([]int, 24)
	for i := range h {
		h[i] = i
	}
	return h
}

// Default returns the configuration that reproduces the stock asset set.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:      "images/sky",
			Format:   "jpeg",
			Manifest: true,
		},
		Sky: SkyConfig{
			Mode:       ModePhoto,
			Background: "images/richard-main.jpg",
			Width:      1920,
			Height:     1080,
			Hours:      allHours(),
			Seed:       42,
			Blur:       0.5,
			Quality:    90,
			Clouds:     true,
			Deck:       true,
			Vignette:   true,
		},
		Restaurant: RestaurantConfig{
			Source:   "images/sky/restaurant-with-a-view.jpg",
			Hours:    append([]int(nil), lighting.RestaurantHours...),
			Quality:  92,
			SkyBlend: 0.35,
			Vignette: true,
		},
		Melody: MelodyConfig{
			Output:    "audio/melody.mid",
			Tempo:     100,
			TrackName: "Everything's Gonna Be Alright",
		},
		Chart: ChartConfig{
			Output: "images/sky/lighting.png",
			Table:  "sky",
			Width:  1200,
			Height: 500,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Find returns the first config file from FileNames that exists in dir, or
// "" when there is none.
func Find(dir string) string {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads a configuration file (YAML or TOML) and returns a Config with
// defaults applied first and file values overlaid on top. An empty path
// returns the defaults.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}

	v := viper.New()

	ext := strings.TrimPrefix(filepath.Ext(configPath), ".")
	switch ext {
	case "yaml", "yml":
		v.SetConfigType("yaml")
	case "toml":
		v.SetConfigType("toml")
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the Config for values the generators cannot use.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Output.Dir) == "" {
		errs = append(errs, errors.New("output.dir is required"))
	}
	if _, err := skyimg.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	if c.Output.Workers < 0 {
		errs = append(errs, fmt.Errorf("output.workers must not be negative (got %d)", c.Output.Workers))
	}

	if c.Sky.Mode != ModePhoto && c.Sky.Mode != ModeGradient {
		errs = append(errs, fmt.Errorf("sky.mode must be %q or %q (got %q)", ModePhoto, ModeGradient, c.Sky.Mode))
	}
	if c.Sky.Width < 0 || c.Sky.Height < 0 {
		errs = append(errs, fmt.Errorf("sky size must not be negative (got %dx%d)", c.Sky.Width, c.Sky.Height))
	}
	if c.Sky.Blur < 0 {
		errs = append(errs, fmt.Errorf("sky.blur must not be negative (got %v)", c.Sky.Blur))
	}
	errs = append(errs, checkQuality("sky.quality", c.Sky.Quality), checkHours("sky.hours", c.Sky.Hours))

	errs = append(errs,
		checkQuality("restaurant.quality", c.Restaurant.Quality),
		checkHours("restaurant.hours", c.Restaurant.Hours),
	)
	if c.Restaurant.SkyBlend < 0 || c.Restaurant.SkyBlend > 1 {
		errs = append(errs, fmt.Errorf("restaurant.skyBlend must be in [0,1] (got %v)", c.Restaurant.SkyBlend))
	}

	if c.Melody.Tempo <= 0 {
		errs = append(errs, fmt.Errorf("melody.tempo must be positive (got %v)", c.Melody.Tempo))
	}
	if lighting.ByName(c.Chart.Table) == nil {
		errs = append(errs, fmt.Errorf("chart.table: unknown table %q", c.Chart.Table))
	}

	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	if f := strings.ToLower(c.Log.Format); f != "" && f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func checkQuality(field string, q int) error {
	if q < 1 || q > 100 {
		return fmt.Errorf("%s must be 1-100 (got %d)", field, q)
	}
	return nil
}

func checkHours(field string, hours []int) error {
	if len(hours) == 0 {
		return fmt.Errorf("%s must list at least one hour", field)
	}
	seen := map[int]bool{}
	for _, h := range hours {
		if h < 0 || h > 23 {
			return fmt.Errorf("%s: hour %d outside 0-23", field, h)
		}
		if seen[h] {
			return fmt.Errorf("%s: hour %d listed twice", field, h)
		}
		seen[h] = true
	}
	return nil
}

// RestaurantDir returns the restaurant output directory, falling back to
// the shared output directory.
func (c *Config) RestaurantDir() string {
	if c.Restaurant.Dir != "" {
		return c.Restaurant.Dir
	}
	return c.Output.Dir
}

// WithOverrides applies CLI flag overrides to the config. Known keys are
// mapped to their corresponding struct fields. The modified config is returned
// for convenient chaining.
func (c *Config) WithOverrides(overrides map[string]any) *Config {
	for key, val := range overrides {
		switch key {
		case "output":
			if s, ok := val.(string); ok {
				c.Output.Dir = s
			}
		case "format":
			if s, ok := val.(string); ok {
				c.Output.Format = s
			}
		case "workers":
			if n, ok := val.(int); ok {
				c.Output.Workers = n
			}
		case "manifest":
			if b, ok := val.(bool); ok {
				c.Output.Manifest = b
			}
		case "mode":
			if s, ok := val.(string); ok {
				c.Sky.Mode = s
			}
		case "background":
			if s, ok := val.(string); ok {
				c.Sky.Background = s
			}
		case "seed":
			switch n := val.(type) {
			case uint64:
				c.Sky.Seed = n
			case int:
				c.Sky.Seed = uint64(n)
			}
		case "hours":
			if h, ok := val.([]int); ok && len(h) > 0 {
				c.Sky.Hours = h
			}
		case "table":
			if s, ok := val.(string); ok {
				c.Sky.Table = s
			}
		case "fit":
			if b, ok := val.(bool); ok {
				c.Sky.Fit = b
			}
		case "source":
			if s, ok := val.(string); ok {
				c.Restaurant.Source = s
			}
		case "logLevel":
			if s, ok := val.(string); ok {
				c.Log.Level = s
			}
		case "logFormat":
			if s, ok := val.(string); ok {
				c.Log.Format = s
			}
		}
	}
	return c
}

// YAML renders the config as YAML.
func (c *Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TOML renders the config as TOML.
func (c *Config) TOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encoding toml: %w", err)
	}
	return buf.Bytes(), nil
}
