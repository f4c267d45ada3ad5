package lighting

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// tableFile is the on-disk shape of a table override:
//
//	rows:
//	  "6":
//	    brightness: 0.8
//	    tint: {r: 255, g: 170, b: 110}
type tableFile struct {
	Rows map[string]rowOverride `yaml:"rows" toml:"rows"`
}

// rowOverride uses pointers so that omitted fields keep the base value.
type rowOverride struct {
	Brightness  *float64 `yaml:"brightness"  toml:"brightness"`
	Warmth      *float64 `yaml:"warmth"      toml:"warmth"`
	Contrast    *float64 `yaml:"contrast"    toml:"contrast"`
	Saturation  *float64 `yaml:"saturation"  toml:"saturation"`
	Glow        *float64 `yaml:"glow"        toml:"glow"`
	Tint        *RGB     `yaml:"tint"        toml:"tint"`
	TintOpacity *float64 `yaml:"tintOpacity" toml:"tintOpacity"`
}

func (o rowOverride) apply(p LightingParams) LightingParams {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Brightness, o.Brightness)
	set(&p.Warmth, o.Warmth)
	set(&p.Contrast, o.Contrast)
	set(&p.Saturation, o.Saturation)
	set(&p.Glow, o.Glow)
	set(&p.TintOpacity, o.TintOpacity)
	if o.Tint != nil {
		c := *o.Tint
		p.Tint = &c
	}
	return p
}

// LoadTable reads row overrides from a YAML (.yaml, .yml) or TOML (.toml)
// file and overlays them on base. Each override starts from the base row
// for its hour, so a file only needs the fields it changes.
func LoadTable(path string, base *Table) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lighting table %s: %w", path, err)
	}

	var f tableFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported lighting table format %q", ext)
	}

	rows := make(map[int]LightingParams, len(f.Rows))
	for key, o := range f.Rows {
		h, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || h < 0 || h > 23 {
			return nil, fmt.Errorf("lighting table %s: invalid hour %q", path, key)
		}
		rows[h] = o.apply(base.Lookup(float64(h)))
	}
	return base.WithRows(rows), nil
}
