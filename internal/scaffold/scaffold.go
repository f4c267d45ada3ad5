// Package scaffold creates new skyforge projects: the directory layout, a
// default config file, and seed photographs so every generator runs
// immediately.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/aellingwood/skyforge/internal/config"
	skyimg "github.com/aellingwood/skyforge/internal/image"
	"golang.org/x/text/unicode/norm"
)

var multiHyphen = regexp.MustCompile(`-{2,}`)

// Slugify converts a project name into a directory-friendly slug: NFC
// normalised, lowercased, spaces and underscores as hyphens, only letters,
// digits and single hyphens kept.
func Slugify(name string) string {
	s := strings.ToLower(norm.NFC.String(name))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)

	var buf strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			buf.WriteRune(r)
		}
	}
	return strings.Trim(multiHyphen.ReplaceAllString(buf.String(), "-"), "-")
}

const configHeader = `# skyforge project configuration.
# Every value shown is the default; delete what you do not change.
`

// Project describes a scaffolded project.
type Project struct {
	Dir        string
	Config     string
	Background string
	Restaurant string
}

// NewProject creates a project directory named after name under parent. It
// returns an error if the directory already exists.
func NewProject(parent, name string) (*Project, error) {
	slug := Slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("project name %q has no usable characters", name)
	}
	root := filepath.Join(parent, slug)
	if _, err := os.Stat(root); err == nil {
		return nil, fmt.Errorf("directory %q already exists", root)
	}

	cfg := config.Default()
	dirs := []string{
		filepath.Join(root, cfg.Output.Dir),
		filepath.Join(root, filepath.Dir(cfg.Melody.Output)),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %q: %w", dir, err)
		}
	}

	p := &Project{
		Dir:        root,
		Config:     filepath.Join(root, config.FileNames[0]),
		Background: filepath.Join(root, cfg.Sky.Background),
		Restaurant: filepath.Join(root, cfg.Restaurant.Source),
	}

	data, err := cfg.YAML()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(p.Config, append([]byte(configHeader), data...), 0o644); err != nil {
		return nil, fmt.Errorf("writing %q: %w", p.Config, err)
	}

	if err := skyimg.WriteFile(p.Background, SeedBackground(seedWidth, seedHeight), skyimg.JPEG, 90); err != nil {
		return nil, fmt.Errorf("writing seed background: %w", err)
	}
	if err := skyimg.WriteFile(p.Restaurant, SeedRestaurant(seedWidth, seedHeight), skyimg.JPEG, 92); err != nil {
		return nil, fmt.Errorf("writing seed restaurant photo: %w", err)
	}
	return p, nil
}
