// Package site renders a static HTML page per successfully parsed case,
// merging the scraped case list with the parsed notice details.
package site

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/courtdata-tw/foreclosure-notices/internal/config"
	"github.com/courtdata-tw/foreclosure-notices/internal/notice"
	"github.com/courtdata-tw/foreclosure-notices/internal/store"
)

//go:embed case.html.tmpl
var defaultTemplate string

// Generator produces the per-case pages.
type Generator struct {
	store store.Store
	cfg   *config.Config
}

// Counts reports what one generation run produced.
type Counts struct {
	Rendered int // pages written
	Skipped  int // cases left out because their parse recorded an error
}

// NewGenerator creates a Generator over the given store.
func NewGenerator(st store.Store, cfg *config.Config) *Generator {
	return &Generator{store: st, cfg: cfg}
}

// casePage is the template context for one case.
type casePage struct {
	Case    store.Case
	Details notice.Details
}

// Run renders every case that has successfully parsed details into the
// output directory. The directory is emptied first. A missing details
// object produces no pages and no error.
func (g *Generator) Run(ctx context.Context) (*Counts, error) {
	data, err := g.store.Load(ctx, g.cfg.SourceObject)
	if err != nil {
		return nil, fmt.Errorf("load case list: %w", err)
	}
	cases, err := store.DecodeCases(data)
	if err != nil {
		return nil, err
	}
	log.Printf("loaded %d cases from %s", len(cases), g.cfg.SourceObject)

	exists, err := g.store.Exists(ctx, g.cfg.DetailsObject)
	if err != nil {
		return nil, fmt.Errorf("check details: %w", err)
	}
	if !exists {
		log.Printf("details object %s not found, nothing to generate", g.cfg.DetailsObject)
		return &Counts{}, nil
	}

	detailsData, err := g.store.Load(ctx, g.cfg.DetailsObject)
	if err != nil {
		return nil, fmt.Errorf("load details: %w", err)
	}
	detailsList, err := store.DecodeDetails(detailsData)
	if err != nil {
		return nil, err
	}

	index := make(map[string]notice.Details, len(detailsList))
	for _, d := range detailsList {
		if d.CaseNumber != "" {
			index[d.CaseNumber] = d.AuctionDetails
		}
	}

	tmpl, err := g.template()
	if err != nil {
		return nil, err
	}

	if err := cleanOutputDir(g.cfg.OutputDir); err != nil {
		return nil, err
	}

	counts := &Counts{}
	for _, c := range cases {
		if c.CaseNumber == "" {
			continue
		}
		details, ok := index[c.CaseNumber]
		if !ok {
			continue
		}
		if details.Error != "" {
			log.Printf("skipping case %s: %s", c.CaseNumber, details.Error)
			counts.Skipped++
			continue
		}

		if err := g.renderCase(tmpl, c, details); err != nil {
			log.Printf("render case %s failed: %v", c.CaseNumber, err)
			continue
		}
		counts.Rendered++
	}

	log.Printf("site generated: %d pages written, %d cases skipped", counts.Rendered, counts.Skipped)
	return counts, nil
}

// renderCase writes one case page named after the case number.
func (g *Generator) renderCase(tmpl *template.Template, c store.Case, details notice.Details) error {
	// Case numbers name output files and must not traverse directories.
	if strings.ContainsAny(c.CaseNumber, `/\`) {
		return fmt.Errorf("case number %q is not a valid file name", c.CaseNumber)
	}

	f, err := os.Create(filepath.Join(g.cfg.OutputDir, c.CaseNumber+".html"))
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}

	if err := tmpl.Execute(f, casePage{Case: c, Details: details}); err != nil {
		f.Close()
		return fmt.Errorf("render page: %w", err)
	}
	return f.Close()
}

// template parses the configured template file, or the built-in one when
// no path is configured.
func (g *Generator) template() (*template.Template, error) {
	text := defaultTemplate
	if g.cfg.TemplatePath != "" {
		data, err := os.ReadFile(g.cfg.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("read template: %w", err)
		}
		text = string(data)
	}

	tmpl, err := template.New("case").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return tmpl, nil
}

// cleanOutputDir recreates the output directory empty.
func cleanOutputDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear output directory: %w", err)
	}
	if err := os.MkdirAll(dir, config.DefaultDirPerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}
