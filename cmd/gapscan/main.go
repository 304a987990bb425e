package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gapscan/gapscan/internal/extract"
	"github.com/gapscan/gapscan/pkg/gapscan"
	"github.com/gapscan/gapscan/pkg/gapscan/compare"
	"github.com/gapscan/gapscan/pkg/gapscan/config"
	"github.com/gapscan/gapscan/pkg/gapscan/store"
	"github.com/gapscan/gapscan/pkg/gapscan/store/memstore"
	"github.com/gapscan/gapscan/pkg/gapscan/store/sqlite"
)

func main() {
	var (
		healthPath = flag.String("health", "configs/health.yaml", "Health baseline taxonomy file")
		homePath   = flag.String("home", "configs/home.yaml", "Home baseline taxonomy file")
		dbPath     = flag.String("db", "", "SQLite database path (default: in-memory)")
		policyType = flag.String("type", "terveys", "Policy type recorded for each document")
		excerpts   = flag.Bool("excerpts", false, "Print a context window for every evidence entry")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("Usage: gapscan [flags] company=document.txt [company=document.txt ...]")
	}

	ctx := context.Background()

	loader := config.Loader{Paths: []string{*healthPath, *homePath}}
	taxonomies, err := loader.Load()
	if err != nil {
		log.Fatal("Failed to load taxonomies:", err)
	}

	var st store.Store
	if *dbPath != "" {
		st, err = sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatal("Failed to open database:", err)
		}
	} else {
		st = memstore.New()
	}

	engine := gapscan.New(gapscan.Options{
		Store:      st,
		Taxonomies: taxonomies,
		Extractor:  extract.Auto{},
	})
	defer engine.Close()

	for _, arg := range flag.Args() {
		company, path, ok := strings.Cut(arg, "=")
		if !ok {
			log.Fatalf("Invalid argument %q, expected company=file", arg)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Failed to read %s: %v", path, err)
			data = nil
		}

		input := gapscan.PolicyInput{Type: *policyType, Company: company}
		if data != nil {
			input.Attachment = &gapscan.Attachment{Name: filepath.Base(path), Data: data}
		}

		if _, err := engine.AddPolicy(ctx, input); err != nil {
			log.Fatalf("Failed to add policy for %s: %v", company, err)
		}
	}

	results, err := engine.Compare(ctx)
	if err != nil {
		log.Fatal("Comparison failed:", err)
	}

	for _, tax := range taxonomies {
		printResult(ctx, engine, tax.Name(), results[tax.Name()], *excerpts)
	}
}

func printResult(ctx context.Context, engine *gapscan.Engine, name string, result compare.Result, excerpts bool) {
	fmt.Printf("== %s ==\n", name)

	fmt.Printf("Covered (%d):\n", len(result.Covered))
	for _, c := range result.Covered {
		fmt.Printf("  [x] %s (hits: %d)\n", c.Name, c.Aggregate.Count)
		for _, ev := range c.Aggregate.Entries {
			attribution := ""
			if ev.Company != "" {
				attribution = " (" + ev.Company + ")"
			}
			fmt.Printf("      -%s %s\n", attribution, truncate(ev.Snippet, 120))
			if excerpts {
				window, err := engine.Excerpt(ctx, ev)
				if err != nil {
					log.Printf("Excerpt failed: %v", err)
					continue
				}
				fmt.Printf("        ... %s ...\n", truncate(window, 400))
			}
		}
	}

	fmt.Printf("Gaps (%d):\n", len(result.Gaps))
	for _, g := range result.Gaps {
		fmt.Printf("  [ ] %s\n", g.Name)
	}
	fmt.Println()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
