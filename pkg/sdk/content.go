package folio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	contentrepo "github.com/kailas-cloud/folio/internal/repository/content"
)

// Document is one essay, project or book as stored and as seeded.
type Document = contentrepo.Doc

// Seed is a seed file: essays, projects and books.
type Seed = contentrepo.Seed

// LoadSeed reads a YAML seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	if len(s.Essays)+len(s.Projects)+len(s.Books) == 0 {
		return nil, fmt.Errorf("seed %s has no documents", path)
	}
	return &s, nil
}

// Seed validates and stores every document of s, replacing documents with
// the same id. It returns how many were written before any error.
func (c *Client) Seed(ctx context.Context, s *Seed) (n int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("seed", start, err) }()

	return c.seeder.Seed(ctx, s)
}
