package scaffold

import (
	"fmt"
)

// WriteMode selects how a planned file reaches disk.
type WriteMode int

const (
	// Replace overwrites the destination with the planned content.
	Replace WriteMode = iota
	// AppendOnce appends the content unless the sentinel is already present.
	AppendOnce
)

// File is a single planned output, relative to the target root.
type File struct {
	Path    string
	Content []byte
	Mode    WriteMode

	// Sentinel marks an AppendOnce block as present. Defaults to Content.
	Sentinel string
	// Seed is written instead of Content when an AppendOnce file does not exist.
	Seed []byte
}

// Step is one numbered entry of the next-steps block.
type Step struct {
	Title string
	Lines []string
}

// Plan is the side-effect free result of a generator.
type Plan struct {
	Files        []File
	Dependencies []string
	Install      string // command that installs Dependencies
	Usage        string
	Steps        []Step
}

// Merge appends other to p, keeping dependencies unique.
func (p *Plan) Merge(other Plan) {
	p.Files = append(p.Files, other.Files...)
	seen := make(map[string]bool, len(p.Dependencies))
	for _, d := range p.Dependencies {
		seen[d] = true
	}
	for _, d := range other.Dependencies {
		if !seen[d] {
			seen[d] = true
			p.Dependencies = append(p.Dependencies, d)
		}
	}
	if p.Install == "" {
		p.Install = other.Install
	}
	if other.Usage != "" {
		if p.Usage != "" {
			p.Usage += "\n"
		}
		p.Usage += other.Usage
	}
	p.Steps = append(p.Steps, other.Steps...)
}

// Generator builds a Plan from its input. It must not touch the filesystem.
type Generator[D any] func(D) (Plan, error)

// Catalog is a closed table from a discriminator key to a generator.
// Catalogs are built once at package init and never mutated afterwards.
type Catalog[K comparable, D any] struct {
	category string
	entries  map[K]Generator[D]
	keys     []K
}

// NewCatalog returns an empty catalog for category.
func NewCatalog[K comparable, D any](category string) *Catalog[K, D] {
	return &Catalog[K, D]{
		category: category,
		entries:  make(map[K]Generator[D]),
	}
}

// Register adds a generator. Registering a key twice is a programming error.
func (c *Catalog[K, D]) Register(key K, gen Generator[D]) *Catalog[K, D] {
	if _, ok := c.entries[key]; ok {
		panic(fmt.Sprintf("scaffold: duplicate %s generator for %v", c.category, key))
	}
	c.entries[key] = gen
	c.keys = append(c.keys, key)
	return c
}

// Category returns the catalog's category name.
func (c *Catalog[K, D]) Category() string {
	return c.category
}

// Keys returns the registered keys in registration order.
func (c *Catalog[K, D]) Keys() []K {
	out := make([]K, len(c.keys))
	copy(out, c.keys)
	return out
}

// Supports reports whether key has a generator.
func (c *Catalog[K, D]) Supports(key K) bool {
	_, ok := c.entries[key]
	return ok
}

// Lookup returns the generator for key or an unsupported combination error.
func (c *Catalog[K, D]) Lookup(key K) (Generator[D], error) {
	gen, ok := c.entries[key]
	if !ok {
		return nil, UnsupportedCombinationError(c.describe(key))
	}
	return gen, nil
}

// describe renders key for messages. Keys that implement fmt.Stringer are
// expected to name their own category.
func (c *Catalog[K, D]) describe(key K) string {
	if s, ok := any(key).(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%s/%v", c.category, key)
}

// Generate looks up key and runs its generator on data.
func (c *Catalog[K, D]) Generate(key K, data D) (Plan, error) {
	gen, err := c.Lookup(key)
	if err != nil {
		return Plan{}, err
	}
	return gen(data)
}
