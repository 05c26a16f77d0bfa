package models

// Show is one rated concert scraped from a yearly listing page.
// City, State and Country are nil when the source cell was empty.
type Show struct {
	ShowID  string
	Date    string
	Venue   string
	City    *string
	State   *string
	Country *string
	Rating  float64
	Year    int
}

// YearStats summarises the stored shows of a single year.
type YearStats struct {
	Year          int
	Shows         int
	AverageRating float64
	TopShow       *Show
}

// RunReport holds the computed summary over the stored dataset.
type RunReport struct {
	TotalShows int
	Years      []YearStats
	TopRated   []Show
}

// Optional returns nil for an empty string, or a pointer to s.
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Value dereferences an optional field, rendering absent as "".
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
