package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gapscan/gapscan/pkg/gapscan/internalerr"
	"github.com/gapscan/gapscan/pkg/gapscan/normalize"
)

const validTaxonomyYAML = `name: health
categories:
  - name: "Suunterveydenhuolto (perus)"
    keywords:
      - hammas
      - paikkaus
  - name: "Rokotukset"
    keywords:
      - rokotus
      - rokote
`

func writeTaxonomy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tax.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestLoaderEmpty(t *testing.T) {
	loader := Loader{}
	taxonomies, err := loader.Load()
	if err != nil {
		t.Fatalf("Empty loader should succeed: %v", err)
	}
	if len(taxonomies) != 0 {
		t.Errorf("Expected no taxonomies, got %d", len(taxonomies))
	}
}

func TestLoaderNonExistentFile(t *testing.T) {
	loader := Loader{Paths: []string{"/nonexistent/tax.yaml"}}
	if _, err := loader.Load(); err == nil {
		t.Error("Should error on nonexistent taxonomy file")
	}
}

func TestLoaderValidFile(t *testing.T) {
	path := writeTaxonomy(t, validTaxonomyYAML)

	loader := Loader{Paths: []string{path}}
	taxonomies, err := loader.Load()
	if err != nil {
		t.Fatalf("Valid file should load: %v", err)
	}
	if len(taxonomies) != 1 {
		t.Fatalf("Expected 1 taxonomy, got %d", len(taxonomies))
	}

	tax := taxonomies[0]
	if tax.Name() != "health" {
		t.Errorf("Expected name health, got %q", tax.Name())
	}

	cats := tax.Categories()
	if len(cats) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(cats))
	}
	if cats[0].Name != "Suunterveydenhuolto (perus)" || cats[0].Ordinal != 0 {
		t.Errorf("First category wrong: %+v", cats[0])
	}
	if cats[1].Name != "Rokotukset" || cats[1].Ordinal != 1 {
		t.Errorf("Second category wrong: %+v", cats[1])
	}

	// Keywords are wired into matching rules.
	matched := tax.Match(normalize.Normalize("rokote mainitaan ehdoissa"))
	if len(matched) != 1 || matched[0].Name != "Rokotukset" {
		t.Errorf("Loaded keywords should match, got %v", matched)
	}
}

func TestLoaderDuplicateCategory(t *testing.T) {
	path := writeTaxonomy(t, `name: health
categories:
  - name: "Rokotukset"
    keywords: [rokotus]
  - name: "Rokotukset"
    keywords: [rokote]
`)

	loader := Loader{Paths: []string{path}}
	_, err := loader.Load()
	if err == nil {
		t.Fatal("Duplicate category should be rejected at load time")
	}
	if !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate, got %v", err)
	}
}

func TestLoaderMissingKeywords(t *testing.T) {
	path := writeTaxonomy(t, `name: health
categories:
  - name: "Rokotukset"
    keywords: []
`)

	loader := Loader{Paths: []string{path}}
	_, err := loader.Load()
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoaderMalformedYAML(t *testing.T) {
	path := writeTaxonomy(t, "categories: [not: {valid")

	loader := Loader{Paths: []string{path}}
	if _, err := loader.Load(); err == nil {
		t.Error("Malformed YAML should be rejected")
	}
}

func TestLoaderMultipleFiles(t *testing.T) {
	first := writeTaxonomy(t, validTaxonomyYAML)

	dir := t.TempDir()
	second := filepath.Join(dir, "home.yaml")
	os.WriteFile(second, []byte(`name: home
categories:
  - name: "Vesivahinko/putkivuoto"
    keywords: [vesivahinko, putkivuoto]
`), 0644)

	loader := Loader{Paths: []string{first, second}}
	taxonomies, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(taxonomies) != 2 {
		t.Fatalf("Expected 2 taxonomies, got %d", len(taxonomies))
	}
	if taxonomies[0].Name() != "health" || taxonomies[1].Name() != "home" {
		t.Errorf("Taxonomies not in path order: %s, %s", taxonomies[0].Name(), taxonomies[1].Name())
	}
}
