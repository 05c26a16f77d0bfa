package phishnet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"phish-ratings/models"
)

const (
	tableSelector = "#ratings-list"
	showIDPrefix  = "/setlists/phish-"
	showIDSuffix  = ".html"
	minCells      = 7
)

// ExtractShowID turns a setlist href into a show id. The prefix and suffix
// are removed only when present; anything else passes through unchanged.
func ExtractShowID(href string) string {
	return strings.TrimSuffix(strings.TrimPrefix(href, showIDPrefix), showIDSuffix)
}

// ParseShows extracts every rated show from a yearly listing page.
//
// A page without the ratings table yields no shows and no error. Rows that
// are too short or lack a setlist link are skipped. A rating cell that is not
// a number is returned as an error, since it means the page layout changed.
func ParseShows(html string, year int) ([]models.Show, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("phishnet: parse html: %w", err)
	}

	table := doc.Find(tableSelector).First()
	if table.Length() == 0 {
		return nil, nil
	}

	var (
		shows    []models.Show
		parseErr error
	)
	table.Find("tbody tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < minCells {
			return true
		}

		link := cells.Eq(1).Find("a").First()
		if link.Length() == 0 {
			return true
		}
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return true
		}

		showID := ExtractShowID(href)
		ratingText := cellText(cells, 0)
		rating, err := strconv.ParseFloat(ratingText, 64)
		if err != nil {
			parseErr = fmt.Errorf("phishnet: parse rating %q for show %s: %w", ratingText, showID, err)
			return false
		}

		shows = append(shows, models.Show{
			ShowID:  showID,
			Date:    cellText(cells, 1),
			Venue:   cellText(cells, 2),
			City:    models.Optional(cellText(cells, 4)),
			State:   models.Optional(cellText(cells, 5)),
			Country: models.Optional(cellText(cells, 6)),
			Rating:  rating,
			Year:    year,
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return shows, nil
}

func cellText(cells *goquery.Selection, i int) string {
	return strings.TrimSpace(cells.Eq(i).Text())
}
