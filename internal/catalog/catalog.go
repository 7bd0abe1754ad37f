// Package catalog provides the fixed learning catalogs: the skill tree,
// the achievement list and the level thresholds. A built-in catalog is
// embedded; a YAML file can replace any of its sections.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phrazzld/degen-journal/internal/achievement"
	"github.com/phrazzld/degen-journal/internal/domain"
	"github.com/phrazzld/degen-journal/internal/progress"
	"github.com/phrazzld/degen-journal/internal/skilltree"
)

//go:embed default.yaml
var defaultYAML []byte

// Catalog groups the three catalogs the journal runs against.
type Catalog struct {
	Skills       []domain.SkillNode      `yaml:"skills"`
	Achievements []domain.Achievement    `yaml:"achievements"`
	Levels       []domain.LevelThreshold `yaml:"levels"`
}

// Default returns a fresh copy of the built-in catalog.
func Default() *Catalog {
	var c Catalog
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return &c
}

// Load decodes a catalog from r. Sections the document leaves out are
// taken from the built-in catalog. The result is validated.
func Load(r io.Reader) (*Catalog, error) {
	var override Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&override); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decode catalog: %w", domain.ErrValidation, err)
	}

	c := Default()
	if override.Skills != nil {
		c.Skills = override.Skills
	}
	if override.Achievements != nil {
		c.Achievements = override.Achievements
	}
	if override.Levels != nil {
		c.Levels = override.Levels
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile loads a catalog override from path. An empty path yields the
// built-in catalog.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Validate checks each section: skills form an acyclic graph with known
// prerequisites, achievements are well formed and unique, and levels are
// contiguous up to an unbounded top bracket.
func (c *Catalog) Validate() error {
	if err := skilltree.Validate(c.Skills); err != nil {
		return fmt.Errorf("skills: %w", err)
	}
	if err := achievement.Validate(c.Achievements); err != nil {
		return fmt.Errorf("achievements: %w", err)
	}
	if err := progress.ValidateLevels(c.Levels); err != nil {
		return fmt.Errorf("levels: %w", err)
	}
	return nil
}

// SkillsCopy returns a deep copy of the skill nodes in their initial state.
func (c *Catalog) SkillsCopy() []domain.SkillNode {
	out := make([]domain.SkillNode, len(c.Skills))
	for i, s := range c.Skills {
		out[i] = s.Clone()
	}
	return out
}
