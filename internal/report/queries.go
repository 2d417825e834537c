// Package report runs the fixed catalog of review-sentiment aggregation
// queries against the warehouse and renders the results as terminal tables.
// The heavy lifting is all SELECT/GROUP BY delegated to the warehouse
// engine; nothing here post-processes the data beyond formatting.
package report

import "fmt"

// Report is one catalog entry: a name, a description for the header, and
// the SQL to run. Query text references the landing table and the
// warehouse-side ANALYZE_SENTIMENT function; %s placeholders are the
// qualified table name.
type Report struct {
	Name        string
	Description string
	SQL         string
}

const sentimentDistribution = `
SELECT
  ANALYZE_SENTIMENT(RAW:text::STRING) AS sentiment,
  COUNT(*) AS reviews,
  ROUND(100 * COUNT(*) / SUM(COUNT(*)) OVER (), 2) AS pct
FROM %s
GROUP BY 1
ORDER BY reviews DESC
`

const starsBySentiment = `
SELECT
  ANALYZE_SENTIMENT(RAW:text::STRING) AS sentiment,
  ROUND(AVG(RAW:stars::FLOAT), 2) AS avg_stars,
  COUNT(*) AS reviews
FROM %s
GROUP BY 1
ORDER BY avg_stars DESC
`

const monthlyTrend = `
SELECT
  TO_CHAR(RAW:date::TIMESTAMP, 'YYYY-MM') AS month,
  ANALYZE_SENTIMENT(RAW:text::STRING) AS sentiment,
  COUNT(*) AS reviews
FROM %s
GROUP BY 1, 2
ORDER BY month, sentiment
`

const topBusinesses = `
SELECT
  RAW:business_id::STRING AS business_id,
  COUNT(*) AS reviews,
  ROUND(AVG(RAW:stars::FLOAT), 2) AS avg_stars,
  SUM(IFF(ANALYZE_SENTIMENT(RAW:text::STRING) = 'positive', 1, 0)) AS positive_reviews
FROM %s
GROUP BY 1
ORDER BY reviews DESC
LIMIT 20
`

const sentimentByStars = `
SELECT
  RAW:stars::INT AS stars,
  ANALYZE_SENTIMENT(RAW:text::STRING) AS sentiment,
  COUNT(*) AS reviews,
  ROUND(100 * COUNT(*) / SUM(COUNT(*)) OVER (PARTITION BY RAW:stars::INT), 2) AS pct_of_star
FROM %s
GROUP BY 1, 2
ORDER BY stars DESC, reviews DESC
`

// Catalog returns the fixed report set, bound to the given qualified table
// name (database.schema.table).
func Catalog(table string) []Report {
	bind := func(q string) string { return fmt.Sprintf(q, table) }

	return []Report{
		{
			Name:        "sentiment-distribution",
			Description: "Review counts and share per sentiment label",
			SQL:         bind(sentimentDistribution),
		},
		{
			Name:        "stars-by-sentiment",
			Description: "Average star rating per sentiment label",
			SQL:         bind(starsBySentiment),
		},
		{
			Name:        "monthly-trend",
			Description: "Review volume per month and sentiment label",
			SQL:         bind(monthlyTrend),
		},
		{
			Name:        "top-businesses",
			Description: "Most reviewed businesses with positive-review counts",
			SQL:         bind(topBusinesses),
		},
		{
			Name:        "sentiment-by-stars",
			Description: "Sentiment label share within each star rating",
			SQL:         bind(sentimentByStars),
		},
	}
}

// Lookup returns the report with the given name, if present.
func Lookup(table, name string) (Report, bool) {
	for _, r := range Catalog(table) {
		if r.Name == name {
			return r, true
		}
	}
	return Report{}, false
}
