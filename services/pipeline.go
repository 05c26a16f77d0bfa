package services

import (
	"context"
	"fmt"
	"time"

	"phish-ratings/scraper/phishnet"
	"phish-ratings/storage"
	"phish-ratings/utils"
)

// Pipeline runs one scrape: fetch, parse and upsert every year, commit once,
// then export each stored year to CSV.
type Pipeline struct {
	Fetcher   phishnet.Fetcher
	Store     storage.ShowStore
	Logger    *utils.Logger
	Throttle  *utils.Throttle
	StartYear int
	CSVDir    string
	// Now decides the last year scraped; defaults to time.Now.
	Now func() time.Time
}

// RunSummary describes a completed run.
type RunSummary struct {
	FirstYear   int
	LastYear    int
	TotalShows  int
	EmptyYears  []int
	ExportPaths []string
}

func (p *Pipeline) Run(ctx context.Context) (*RunSummary, error) {
	now := p.Now
	if now == nil {
		now = time.Now
	}
	throttle := p.Throttle
	if throttle == nil {
		throttle = utils.NewThrottle(0)
	}

	summary := &RunSummary{FirstYear: p.StartYear, LastYear: now().Year()}
	run := utils.StartStopwatch()
	p.Logger.Info("Starting scrape", "first_year", summary.FirstYear, "last_year", summary.LastYear)

	if err := p.scrape(ctx, throttle, summary); err != nil {
		return nil, err
	}
	if err := p.export(ctx, summary); err != nil {
		return nil, err
	}

	p.Logger.Info("Run complete", "total_shows", summary.TotalShows, "duration_ms", run.Millis())
	return summary, nil
}

func (p *Pipeline) scrape(ctx context.Context, throttle *utils.Throttle, summary *RunSummary) error {
	tx, err := p.Store.Begin(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				p.Logger.Error("Rollback failed", "err", rbErr)
			}
		}
	}()

	for year := summary.FirstYear; year <= summary.LastYear; year++ {
		if err := throttle.Wait(ctx); err != nil {
			return err
		}

		sw := utils.StartStopwatch()
		html, err := p.Fetcher.Fetch(ctx, year)
		if err != nil {
			return err
		}
		shows, err := phishnet.ParseShows(html, year)
		if err != nil {
			return err
		}
		if err := tx.Upsert(ctx, shows); err != nil {
			return err
		}

		if len(shows) == 0 {
			p.Logger.Warn("No shows found", "year", year, "duration_ms", sw.Millis())
			summary.EmptyYears = append(summary.EmptyYears, year)
			continue
		}
		p.Logger.Info("Fetched year", "year", year, "shows", len(shows), "duration_ms", sw.Millis())
		summary.TotalShows += len(shows)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (p *Pipeline) export(ctx context.Context, summary *RunSummary) error {
	years, err := p.Store.DistinctYears(ctx)
	if err != nil {
		return err
	}

	for _, year := range years {
		sw := utils.StartStopwatch()
		shows, err := p.Store.ShowsForYear(ctx, year)
		if err != nil {
			return err
		}
		path := storage.ExportPath(p.CSVDir, year)
		if err := storage.WriteShowsCSV(path, shows); err != nil {
			return fmt.Errorf("export %d: %w", year, err)
		}
		summary.ExportPaths = append(summary.ExportPaths, path)
		p.Logger.Info("Exported CSV", "year", year, "path", path, "shows", len(shows), "duration_ms", sw.Millis())
	}
	return nil
}
