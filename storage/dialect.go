package storage

import (
	"strconv"
	"strings"
)

const showColumns = "show_id, date, venue, city, state, country, rating, year, updated_at"

const showColumnCount = 9

type dialect struct {
	name        string
	schema      []string
	placeholder func(n int) string
	upsertHead  string
	upsertTail  string
}

var sqliteDialect = dialect{
	name: "sqlite",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS shows (
			show_id    TEXT PRIMARY KEY,
			date       TEXT,
			venue      TEXT,
			city       TEXT,
			state      TEXT,
			country    TEXT,
			rating     REAL,
			year       INTEGER,
			updated_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_shows_year ON shows(year)`,
	},
	placeholder: func(int) string { return "?" },
	upsertHead:  "INSERT OR REPLACE INTO shows (" + showColumns + ") VALUES ",
}

var postgresDialect = dialect{
	name: "postgres",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS shows (
			show_id    TEXT PRIMARY KEY,
			date       TEXT,
			venue      TEXT,
			city       TEXT,
			state      TEXT,
			country    TEXT,
			rating     DOUBLE PRECISION,
			year       INTEGER,
			updated_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_shows_year ON shows(year)`,
	},
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	upsertHead:  "INSERT INTO shows (" + showColumns + ") VALUES ",
	upsertTail: ` ON CONFLICT (show_id) DO UPDATE SET
		date = EXCLUDED.date,
		venue = EXCLUDED.venue,
		city = EXCLUDED.city,
		state = EXCLUDED.state,
		country = EXCLUDED.country,
		rating = EXCLUDED.rating,
		year = EXCLUDED.year,
		updated_at = EXCLUDED.updated_at`,
}

// upsertQuery builds a multi-row upsert for rows records.
func (d dialect) upsertQuery(rows int) string {
	var b strings.Builder
	b.WriteString(d.upsertHead)
	n := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		for c := 0; c < showColumnCount; c++ {
			if c > 0 {
				b.WriteByte(',')
			}
			b.WriteString(d.placeholder(n))
			n++
		}
		b.WriteByte(')')
	}
	b.WriteString(d.upsertTail)
	return b.String()
}

func (d dialect) showsForYearQuery() string {
	return "SELECT show_id, date, venue, city, state, country, rating, year " +
		"FROM shows WHERE year = " + d.placeholder(1) + " ORDER BY rating DESC"
}

const distinctYearsQuery = "SELECT DISTINCT year FROM shows ORDER BY year"
