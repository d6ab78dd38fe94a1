// Package batch drives the parse pipeline over the scraped case list:
// download each pending notice, parse it, and accumulate per-case results
// in the details object. Failures stay local to their case; the run is
// resumable because finished cases are skipped on the next start.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/courtdata-tw/foreclosure-notices/internal/config"
	"github.com/courtdata-tw/foreclosure-notices/internal/fetch"
	"github.com/courtdata-tw/foreclosure-notices/internal/notice"
	"github.com/courtdata-tw/foreclosure-notices/internal/store"
)

// Downloader fetches one notice PDF to a scratch file.
type Downloader interface {
	FetchTemp(ctx context.Context, url string) (string, func(), error)
}

// Summary reports what one run did.
type Summary struct {
	Total     int // records in the case list
	Skipped   int // already parsed in a previous run
	Processed int // newly parsed this run
	Failed    int // of Processed, recorded with an error payload
}

// Runner executes the batch. Cases are processed sequentially with a
// politeness pause before each download; every config.CheckpointEvery new
// cases the accumulated details are saved in full.
type Runner struct {
	store      store.Store
	downloader Downloader
	cfg        *config.Config

	// parse is replaceable in tests.
	parse func(path string) (*notice.Details, error)
}

// NewRunner creates a Runner over the given store and downloader.
func NewRunner(st store.Store, dl Downloader, cfg *config.Config) *Runner {
	policy := notice.DefaultLayoutPolicy()
	if cfg.LabelLeftMax > 0 {
		policy.LabelLeftMax = cfg.LabelLeftMax
	}

	return &Runner{
		store:      st,
		downloader: dl,
		cfg:        cfg,
		parse: func(path string) (*notice.Details, error) {
			return notice.ParseFile(path, cfg.MaxFileSize, policy)
		},
	}
}

// Run processes every pending case. Cancellation stops the run between
// cases; results accumulated so far are still saved.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	data, err := r.store.Load(ctx, r.cfg.SourceObject)
	if err != nil {
		return nil, fmt.Errorf("load case list: %w", err)
	}
	cases, err := store.DecodeCases(data)
	if err != nil {
		return nil, err
	}
	log.Printf("loaded %d cases from %s", len(cases), r.cfg.SourceObject)

	details, err := r.loadExisting(ctx)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(details))
	for _, d := range details {
		done[d.CaseNumber] = true
	}
	if len(details) > 0 {
		log.Printf("resuming: %d cases already parsed", len(details))
	}

	summary := &Summary{Total: len(cases)}
	newSinceCheckpoint := 0

	for _, c := range cases {
		if c.CaseNumber == "" {
			continue
		}
		if done[c.CaseNumber] {
			summary.Skipped++
			continue
		}

		if err := fetch.Sleep(ctx, fetch.Jitter(r.cfg.PauseMin, r.cfg.PauseMax)); err != nil {
			return summary, r.stop(ctx, details, err)
		}

		result, err := r.processCase(ctx, c)
		if err != nil {
			return summary, r.stop(ctx, details, err)
		}

		details = append(details, store.CaseDetails{
			CaseNumber:     c.CaseNumber,
			AuctionDetails: *result,
		})
		done[c.CaseNumber] = true
		summary.Processed++
		if result.Error != "" {
			summary.Failed++
		}

		newSinceCheckpoint++
		if newSinceCheckpoint >= r.cfg.CheckpointEvery {
			if err := r.save(ctx, details); err != nil {
				return summary, err
			}
			log.Printf("checkpoint: %d entries saved", len(details))
			newSinceCheckpoint = 0
		}
	}

	if err := r.save(ctx, details); err != nil {
		return summary, err
	}
	log.Printf("batch complete: %d new (%d failed), %d skipped, %d total",
		summary.Processed, summary.Failed, summary.Skipped, summary.Total)
	return summary, nil
}

// processCase downloads and parses one notice. Every per-case failure is
// folded into an error payload so the batch keeps going; only context
// cancellation is returned as an error.
func (r *Runner) processCase(ctx context.Context, c store.Case) (*notice.Details, error) {
	if c.PDFURL == "" {
		return notice.DetailsForError(errors.New("case has no pdf url")), nil
	}

	path, cleanup, err := r.downloader.FetchTemp(ctx, c.PDFURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("case %s: download failed: %v", c.CaseNumber, err)
		return notice.DetailsForError(fmt.Errorf("download failed: %w", err)), nil
	}
	defer cleanup()

	result, err := r.parse(path)
	if err != nil {
		log.Printf("case %s: parse failed: %v", c.CaseNumber, err)
		return notice.DetailsForError(err), nil
	}
	return result, nil
}

// loadExisting returns the details saved by a previous run, if any.
func (r *Runner) loadExisting(ctx context.Context) ([]store.CaseDetails, error) {
	exists, err := r.store.Exists(ctx, r.cfg.DetailsObject)
	if err != nil {
		return nil, fmt.Errorf("check existing details: %w", err)
	}
	if !exists {
		return nil, nil
	}

	data, err := r.store.Load(ctx, r.cfg.DetailsObject)
	if err != nil {
		return nil, fmt.Errorf("load existing details: %w", err)
	}
	return store.DecodeDetails(data)
}

func (r *Runner) save(ctx context.Context, details []store.CaseDetails) error {
	data, err := store.EncodeDetails(details)
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, r.cfg.DetailsObject, data); err != nil {
		return fmt.Errorf("save details: %w", err)
	}
	return nil
}

// stop persists the accumulated details after a cancellation and returns
// the cause.
func (r *Runner) stop(ctx context.Context, details []store.CaseDetails, cause error) error {
	if err := r.save(context.WithoutCancel(ctx), details); err != nil {
		log.Printf("save after cancellation failed: %v", err)
	}
	return cause
}
