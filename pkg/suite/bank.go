package suite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Bank holds the cases loaded from suite files. It is safe for
// concurrent use.
type Bank struct {
	mu      sync.RWMutex
	cases   map[string]*Case
	sources []string
}

// NewBank creates an empty Bank.
func NewBank() *Bank {
	return &Bank{
		cases: make(map[string]*Case),
	}
}

// readFile decodes a suite file, as JSON for .json files and as
// YAML otherwise.
func readFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite file %s: %w", path, err)
	}

	var file File
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &file)
	} else {
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("parse suite file %s: %w", path, err)
	}
	return &file, nil
}

// LoadFile loads the cases of a suite file. Case IDs must be
// unique across the bank.
func (b *Bank) LoadFile(path string) error {
	file, err := readFile(path)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range file.Cases {
		c := file.Cases[i]
		if c.ID == "" {
			return fmt.Errorf("case at index %d in %s has no ID", i, path)
		}
		if prev, exists := b.cases[c.ID]; exists {
			return fmt.Errorf(
				"case %s in %s already loaded from %s",
				c.ID, path, prev.Source,
			)
		}
		c.Values = mergeValues(file.Values, c.Values)
		c.Source = path
		b.cases[c.ID] = &c
	}
	b.sources = append(b.sources, path)
	return nil
}

func mergeValues(shared, own map[string]any) map[string]any {
	out := make(map[string]any, len(shared)+len(own))
	for k, v := range shared {
		out[k] = v
	}
	for k, v := range own {
		out[k] = v
	}
	return out
}

// LoadDir loads all .json, .yaml and .yml files of a directory.
// It does not recurse into subdirectories.
func (b *Bank) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read suite directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		if err := b.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a case by ID.
func (b *Bank) Get(id string) (*Case, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.cases[id]
	return c, ok
}

// All returns all cases sorted by ID.
func (b *Bank) All() []*Case {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]*Case, 0, len(b.cases))
	for _, c := range b.cases {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// ByTag returns the cases carrying tag, sorted by ID.
func (b *Bank) ByTag(tag string) []*Case {
	var out []*Case
	for _, c := range b.All() {
		if c.HasTag(tag) {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the number of loaded cases.
func (b *Bank) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.cases)
}

// Sources returns the loaded file paths.
func (b *Bank) Sources() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.sources))
	copy(out, b.sources)
	return out
}

// ValidateDependencies checks that every dependency names a
// loaded case.
func (b *Bank) ValidateDependencies() error {
	for _, c := range b.All() {
		for _, dep := range c.DependsOn {
			if _, ok := b.Get(dep); !ok {
				return fmt.Errorf(
					"case %s depends on unknown case %s", c.ID, dep,
				)
			}
		}
	}
	return nil
}
