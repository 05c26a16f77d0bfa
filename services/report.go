package services

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"phish-ratings/models"
	"phish-ratings/storage"
	"phish-ratings/utils"
)

const topRatedCount = 5

type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Generate reads every stored year back and summarises it.
func (s *ReportService) Generate(ctx context.Context, store storage.ShowStore) (*models.RunReport, error) {
	years, err := store.DistinctYears(ctx)
	if err != nil {
		return nil, err
	}

	byYear := make(map[int][]models.Show, len(years))
	for _, year := range years {
		shows, err := store.ShowsForYear(ctx, year)
		if err != nil {
			return nil, err
		}
		byYear[year] = shows
	}

	report := Summarise(years, byYear)
	s.logger.Debug("Report generated", "years", len(report.Years), "shows", report.TotalShows)
	return report, nil
}

// Summarise builds a report from shows grouped by year. Each year's shows
// are expected highest rated first, as the store returns them.
func Summarise(years []int, byYear map[int][]models.Show) *models.RunReport {
	report := &models.RunReport{}

	var all []models.Show
	for _, year := range years {
		shows := byYear[year]
		stats := models.YearStats{Year: year, Shows: len(shows)}
		if len(shows) > 0 {
			var total float64
			for _, sh := range shows {
				total += sh.Rating
			}
			stats.AverageRating = round3(total / float64(len(shows)))
			top := shows[0]
			stats.TopShow = &top
		}
		report.Years = append(report.Years, stats)
		report.TotalShows += len(shows)
		all = append(all, shows...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Rating > all[j].Rating
	})
	if len(all) > topRatedCount {
		all = all[:topRatedCount]
	}
	report.TopRated = all

	return report
}

// Print renders the report as two tables.
func (s *ReportService) Print(w io.Writer, r *models.RunReport) {
	years := table.NewWriter()
	years.SetOutputMirror(w)
	years.SetTitle(fmt.Sprintf("Phish show ratings: %d shows", r.TotalShows))
	years.AppendHeader(table.Row{"Year", "Shows", "Avg rating", "Top show"})
	for _, y := range r.Years {
		top := "-"
		if y.TopShow != nil {
			top = fmt.Sprintf("%s (%s)", y.TopShow.ShowID, storage.FormatRating(y.TopShow.Rating))
		}
		years.AppendRow(table.Row{y.Year, y.Shows, storage.FormatRating(y.AverageRating), top})
	}
	years.SetStyle(table.StyleRounded)
	years.Render()

	best := table.NewWriter()
	best.SetOutputMirror(w)
	best.SetTitle(fmt.Sprintf("Top %d highest rated", topRatedCount))
	best.AppendHeader(table.Row{"#", "Show", "Venue", "Year", "Rating"})
	for i, sh := range r.TopRated {
		best.AppendRow(table.Row{i + 1, sh.ShowID, truncate(sh.Venue, 40), sh.Year, storage.FormatRating(sh.Rating)})
	}
	best.SetStyle(table.StyleRounded)
	best.Render()
}

func round3(f float64) float64 {
	return float64(int(f*1000+0.5)) / 1000
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
