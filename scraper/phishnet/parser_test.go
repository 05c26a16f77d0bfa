package phishnet

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"phish-ratings/models"
)

const validRow = `
<table id="ratings-list"><tbody><tr>
	<td>4.618</td>
	<td><a href="/setlists/phish-december-29-2024-msg.html">2024-12-29</a></td>
	<td>Madison Square Garden</td>
	<td>Extra Cell</td>
	<td>New York</td>
	<td>NY</td>
	<td>USA</td>
</tr></tbody></table>
`

func TestExtractShowID(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{
			"/setlists/phish-december-29-2024-madison-square-garden-new-york-ny-usa.html",
			"december-29-2024-madison-square-garden-new-york-ny-usa",
		},
		{"/setlists/phish-test-show.html", "test-show"},
		{"/setlists/phish-no-suffix", "no-suffix"},
		{"no-prefix.html", "no-prefix"},
		{"/other/path", "/other/path"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExtractShowID(tt.href); got != tt.want {
			t.Errorf("ExtractShowID(%q) = %q; want %q", tt.href, got, tt.want)
		}
	}
}

func TestParseShowsEmptyHTML(t *testing.T) {
	shows, err := ParseShows("<html></html>", 2024)
	require.NoError(t, err)
	require.Empty(t, shows)

	shows, err = ParseShows("", 2024)
	require.NoError(t, err)
	require.Empty(t, shows)
}

func TestParseShowsNoTable(t *testing.T) {
	shows, err := ParseShows("<html><body><div>No table here</div></body></html>", 2024)
	require.NoError(t, err)
	require.Empty(t, shows)
}

func TestParseShowsValidTable(t *testing.T) {
	shows, err := ParseShows(validRow, 2024)
	require.NoError(t, err)

	want := []models.Show{{
		ShowID:  "december-29-2024-msg",
		Date:    "2024-12-29",
		Venue:   "Madison Square Garden",
		City:    models.Optional("New York"),
		State:   models.Optional("NY"),
		Country: models.Optional("USA"),
		Rating:  4.618,
		Year:    2024,
	}}
	if diff := cmp.Diff(want, shows); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseShowsYearFromArgument(t *testing.T) {
	shows, err := ParseShows(validRow, 1999)
	require.NoError(t, err)
	require.Len(t, shows, 1)
	require.Equal(t, 1999, shows[0].Year)
	require.Equal(t, "2024-12-29", shows[0].Date)
}

func TestParseShowsEmptyLocationIsAbsent(t *testing.T) {
	html := `
	<table id="ratings-list"><tbody><tr>
		<td> 4.0 </td>
		<td><a href="/setlists/phish-somewhere.html">1995-06-01</a></td>
		<td>  </td>
		<td></td>
		<td>   </td>
		<td></td>
		<td>
		</td>
	</tr></tbody></table>
	`
	shows, err := ParseShows(html, 1995)
	require.NoError(t, err)
	require.Len(t, shows, 1)
	require.Equal(t, 4.0, shows[0].Rating)
	require.Equal(t, "", shows[0].Venue)
	require.Nil(t, shows[0].City)
	require.Nil(t, shows[0].State)
	require.Nil(t, shows[0].Country)
}

func TestParseShowsSkipsRowsWithoutLink(t *testing.T) {
	html := `
	<table id="ratings-list">
		<tbody>
			<tr>
				<td>4.0</td>
				<td>No link here</td>
				<td>Venue</td>
				<td>Extra</td>
				<td>City</td>
				<td>State</td>
				<td>Country</td>
			</tr>
		</tbody>
	</table>
	`
	shows, err := ParseShows(html, 2024)
	require.NoError(t, err)
	require.Empty(t, shows)
}

func TestParseShowsSkipsLinkWithoutHref(t *testing.T) {
	html := `
	<table id="ratings-list"><tbody>
		<tr><td>4.0</td><td><a>No href</a></td><td>V</td><td></td><td>C</td><td>S</td><td>US</td></tr>
		<tr><td>4.1</td><td><a href="">Empty</a></td><td>V</td><td></td><td>C</td><td>S</td><td>US</td></tr>
	</tbody></table>
	`
	shows, err := ParseShows(html, 2024)
	require.NoError(t, err)
	require.Empty(t, shows)
}

func TestParseShowsSkipsRowsWithInsufficientCells(t *testing.T) {
	html := `
	<table id="ratings-list">
		<tbody>
			<tr>
				<td>4.0</td>
				<td><a href="/setlists/phish-test.html">Date</a></td>
			</tr>
		</tbody>
	</table>
	`
	shows, err := ParseShows(html, 2024)
	require.NoError(t, err)
	require.Empty(t, shows)
}

func TestParseShowsKeepsValidRowsAroundSkippedOnes(t *testing.T) {
	html := `
	<table id="ratings-list"><tbody>
		<tr><td>4.0</td><td>no link</td><td>V</td><td></td><td>C</td><td>S</td><td>US</td></tr>
		<tr><td>4.2</td><td><a href="/setlists/phish-a.html">A</a></td><td>V</td><td></td><td>C</td><td>S</td><td>US</td></tr>
		<tr><td>4.3</td></tr>
		<tr><td>4.4</td><td><a href="/setlists/phish-b.html">B</a></td><td>V</td><td></td><td>C</td><td>S</td><td>US</td></tr>
	</tbody></table>
	`
	shows, err := ParseShows(html, 2024)
	require.NoError(t, err)
	require.Len(t, shows, 2)
	require.Equal(t, "a", shows[0].ShowID)
	require.Equal(t, "b", shows[1].ShowID)
}

func TestParseShowsMalformedRating(t *testing.T) {
	html := `
	<table id="ratings-list"><tbody><tr>
		<td>n/a</td>
		<td><a href="/setlists/phish-bad.html">2024-01-01</a></td>
		<td>V</td><td></td><td>C</td><td>S</td><td>US</td>
	</tr></tbody></table>
	`
	shows, err := ParseShows(html, 2024)
	require.Error(t, err)
	require.Contains(t, err.Error(), "n/a")
	require.Nil(t, shows)
}
