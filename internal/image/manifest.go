package image

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

// ManifestFile is the manifest's name inside an output directory.
const ManifestFile = "manifest.json"

// manifestVersion is bumped when the manifest format changes.
const manifestVersion = "1"

// Manifest records every image generated into one directory. All methods are
// safe for concurrent use.
type Manifest struct {
	mu      sync.Mutex
	dir     string
	Version string            `json:"version"`
	Updated time.Time         `json:"updated"`
	Entries map[string]*Entry `json:"entries"` // keyed by file name
}

// Entry describes one generated image.
type Entry struct {
	File       string   `json:"file"`
	Generator  string   `json:"generator"`
	Hour       int      `json:"hour"`
	Format     Format   `json:"format"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Hash       string   `json:"sha256"`
	Brightness float64  `json:"brightness"`
	Elements   []string `json:"elements,omitempty"`
}

// NewManifest returns an empty manifest for dir.
func NewManifest(dir string) *Manifest {
	return &Manifest{dir: dir, Version: manifestVersion, Entries: make(map[string]*Entry)}
}

// LoadManifest reads dir/manifest.json. A missing, corrupt or out-of-date
// manifest yields an empty one.
func LoadManifest(dir string) (*Manifest, error) {
	m := NewManifest(dir)
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, nil
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var loaded Manifest
	if err := json.Unmarshal(data, &loaded); err != nil || loaded.Version != manifestVersion {
		return m, nil
	}
	if loaded.Entries != nil {
		m.Entries = loaded.Entries
	}
	m.Updated = loaded.Updated
	return m, nil
}

// Dir returns the directory the manifest describes.
func (m *Manifest) Dir() string { return m.dir }

// Record hashes the file named e.File in the manifest directory and stores
// the entry, replacing any previous one for that file.
func (m *Manifest) Record(e Entry) error {
	hash, err := HashFile(filepath.Join(m.dir, e.File))
	if err != nil {
		return fmt.Errorf("hashing %s: %w", e.File, err)
	}
	e.Hash = hash

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries[e.File] = &e
	return nil
}

// Files returns the recorded file names in sorted order.
func (m *Manifest) Files() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	files := make([]string, 0, len(m.Entries))
	for f := range m.Entries {
		files = append(files, f)
	}
	slices.Sort(files)
	return files
}

// Get returns the entry for file, or nil.
func (m *Manifest) Get(file string) *Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Entries[file]
}

// Save writes the manifest to dir/manifest.json, stamped with now.
func (m *Manifest) Save(now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Updated = now.UTC()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling manifest: %w", err)
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return os.WriteFile(filepath.Join(m.dir, ManifestFile), data, 0o644)
}

// Problem is a mismatch found by Verify.
type Problem struct {
	File   string
	Reason string
}

func (p Problem) String() string { return p.File + ": " + p.Reason }

// Verify re-reads every recorded file and reports missing files, changed
// content and dimension mismatches, in file-name order.
func (m *Manifest) Verify() []Problem {
	var problems []Problem
	for _, name := range m.Files() {
		e := m.Get(name)
		path := filepath.Join(m.dir, name)

		hash, err := HashFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				problems = append(problems, Problem{File: name, Reason: "missing"})
			} else {
				problems = append(problems, Problem{File: name, Reason: err.Error()})
			}
			continue
		}
		if hash != e.Hash {
			problems = append(problems, Problem{File: name, Reason: "content changed"})
			continue
		}

		w, h, err := dimensions(path)
		if err != nil {
			problems = append(problems, Problem{File: name, Reason: err.Error()})
			continue
		}
		if w != e.Width || h != e.Height {
			problems = append(problems, Problem{
				File:   name,
				Reason: fmt.Sprintf("size %dx%d, recorded %dx%d", w, h, e.Width, e.Height),
			})
		}
	}
	return problems
}

func dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decoding header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// HashFile computes the SHA-256 hex digest of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
