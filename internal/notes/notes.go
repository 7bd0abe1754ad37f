// Package notes loads the read-only note catalog from a markdown vault.
// Each note is a .md file with an optional YAML frontmatter block carrying
// its id, tags, connections and the question/answer pairs extracted from it.
package notes

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/phrazzld/degen-journal/internal/domain"
)

// VaultPattern matches every markdown file below the vault root.
const VaultPattern = "**/*.md"

// Catalog errors
var (
	ErrNoteNotFound  = fmt.Errorf("%w: note", domain.ErrNotFound)
	ErrDuplicateNote = fmt.Errorf("%w: duplicate note id", domain.ErrValidation)
	ErrFrontmatter   = fmt.Errorf("%w: malformed frontmatter", domain.ErrValidation)
)

type frontmatter struct {
	ID          string          `yaml:"id"`
	Title       string          `yaml:"title"`
	Category    string          `yaml:"category"`
	Subcategory string          `yaml:"subcategory"`
	Tags        []string        `yaml:"tags"`
	Connections []string        `yaml:"connections"`
	Progress    int             `yaml:"progress"`
	Flashcards  []domain.QAPair `yaml:"flashcards"`
}

// Catalog is an immutable set of notes indexed by id.
type Catalog struct {
	notes map[string]domain.Note
	order []string
}

// New builds a catalog from notes, rejecting invalid notes and duplicate ids.
// Notes keep the order given.
func New(notes []domain.Note) (*Catalog, error) {
	c := &Catalog{notes: make(map[string]domain.Note, len(notes))}
	for _, n := range notes {
		if err := n.Validate(); err != nil {
			return nil, fmt.Errorf("%w: note %q: %w", domain.ErrValidation, n.ID, err)
		}
		if _, dup := c.notes[n.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNote, n.ID)
		}
		c.notes[n.ID] = n
		c.order = append(c.order, n.ID)
	}
	return c, nil
}

// LoadVault reads every markdown file under dir. An empty dir yields an
// empty catalog.
func LoadVault(dir string, logger *slog.Logger) (*Catalog, error) {
	if dir == "" {
		return New(nil)
	}
	return LoadFS(os.DirFS(dir), logger)
}

// LoadFS reads every markdown file in fsys, in lexical path order.
func LoadFS(fsys fs.FS, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "notes"))

	paths, err := doublestar.Glob(fsys, VaultPattern)
	if err != nil {
		return nil, fmt.Errorf("scan vault: %w", err)
	}
	sort.Strings(paths)

	notes := make([]domain.Note, 0, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		n, err := Parse(p, data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		notes = append(notes, n)
	}

	c, err := New(notes)
	if err != nil {
		return nil, err
	}
	log.Info("vault loaded", slog.Int("notes", c.Len()))
	return c, nil
}

// Parse turns one markdown file into a note. Missing frontmatter fields fall
// back to the file: the id to the file name, the category to the top-level
// directory and the title to the first heading.
func Parse(p string, data []byte) (domain.Note, error) {
	var fm frontmatter
	body := data

	if bytes.HasPrefix(data, []byte("---\n")) || bytes.HasPrefix(data, []byte("---\r\n")) {
		rest := data[3:]
		end := bytes.Index(rest, []byte("\n---"))
		if end < 0 {
			return domain.Note{}, fmt.Errorf("%w: no closing delimiter", ErrFrontmatter)
		}
		if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
			return domain.Note{}, fmt.Errorf("%w: %w", ErrFrontmatter, err)
		}
		body = rest[end+len("\n---"):]
		body = bytes.TrimPrefix(body, []byte("\r"))
		body = bytes.TrimPrefix(body, []byte("\n"))
	}

	n := domain.Note{
		ID:          strings.TrimSpace(fm.ID),
		Title:       strings.TrimSpace(fm.Title),
		Path:        p,
		Category:    fm.Category,
		Subcategory: fm.Subcategory,
		Content:     string(body),
		Tags:        fm.Tags,
		Connections: fm.Connections,
		Progress:    fm.Progress,
		Flashcards:  fm.Flashcards,
	}
	if n.ID == "" {
		n.ID = strings.TrimSuffix(path.Base(p), path.Ext(p))
	}
	if n.Category == "" {
		if dir, _, ok := strings.Cut(p, "/"); ok {
			n.Category = dir
		}
	}
	if n.Title == "" {
		n.Title = firstHeading(n.Content, n.ID)
	}

	if err := n.Validate(); err != nil {
		return domain.Note{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return n, nil
}

func firstHeading(content, fallback string) string {
	for _, line := range strings.Split(content, "\n") {
		if title, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return fallback
}

// Len returns the number of notes.
func (c *Catalog) Len() int {
	return len(c.order)
}

// List returns the notes in load order, optionally limited to one category.
func (c *Catalog) List(category string) []domain.Note {
	out := make([]domain.Note, 0, len(c.order))
	for _, id := range c.order {
		n := c.notes[id]
		if category != "" && n.Category != category {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Get returns the note with id.
func (c *Catalog) Get(id string) (domain.Note, error) {
	n, ok := c.notes[id]
	if !ok {
		return domain.Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return n, nil
}

// Related resolves a note's connections. Ids that are not in the catalog
// are skipped.
func (c *Catalog) Related(id string) ([]domain.Note, error) {
	n, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Note, 0, len(n.Connections))
	for _, cid := range n.Connections {
		if rel, ok := c.notes[cid]; ok && cid != id {
			out = append(out, rel)
		}
	}
	return out, nil
}

// IsNotFound reports whether err means a note does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoteNotFound)
}
