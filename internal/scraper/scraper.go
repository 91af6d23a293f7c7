package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/acal-sync/internal/event"
	"github.com/pfrederiksen/acal-sync/internal/logger"
	"golang.org/x/net/html"
)

const (
	DefaultURL = "https://www.sabanciuniv.edu/en/academic-calendar"
	UserAgent  = "SabanciCalendarSync/1.0"
	Timeout    = 30 * time.Second
)

// undergradHeader identifies the column holding undergraduate dates.
var undergradHeader = regexp.MustCompile(`(?i)UNDER\s*G\.`)

// Table is the text content of one HTML table.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Result is what Extract found on the page.
type Result struct {
	Events   []event.ParsedEvent
	Warnings []string
}

// Scraper fetches the academic calendar page.
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a Scraper for url. An empty url selects DefaultURL.
func New(url string) *Scraper {
	if url == "" {
		url = DefaultURL
	}
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: url,
	}
}

// FetchTables downloads the page and returns its tables.
func (s *Scraper) FetchTables(ctx context.Context) ([]Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=1.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return ParseTables(resp.Body)
}

// Scrape fetches the page and extracts its undergraduate events.
func (s *Scraper) Scrape(ctx context.Context, strict bool) (Result, error) {
	tables, err := s.FetchTables(ctx)
	if err != nil {
		return Result{}, err
	}
	return Extract(tables, s.url, strict), nil
}

// ParseTables reads every <table> in the document. Headers come from thead,
// else the first row containing th, else the first row. Rows come from the
// first tbody, else every row of the table.
func ParseTables(r io.Reader) ([]Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	tables := make([]Table, 0)
	doc.Find("table").Each(func(_ int, tbl *goquery.Selection) {
		t := Table{Headers: headerCells(tbl), Rows: make([][]string, 0)}

		rows := tbl.Find("tr")
		if tbody := tbl.Find("tbody").First(); tbody.Length() > 0 {
			rows = tbody.Find("tr")
		}
		rows.Each(func(_ int, tr *goquery.Selection) {
			t.Rows = append(t.Rows, cellTexts(tr.Find("th, td")))
		})

		tables = append(tables, t)
	})
	return tables, nil
}

func headerCells(tbl *goquery.Selection) []string {
	if thead := tbl.Find("thead").First(); thead.Length() > 0 {
		if hdrs := cellTexts(thead.Find("th, td")); len(hdrs) > 0 {
			return hdrs
		}
	}

	var hdrs []string
	tbl.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		if tr.Find("th").Length() == 0 {
			return true
		}
		hdrs = cellTexts(tr.Find("th, td"))
		return len(hdrs) == 0
	})
	if len(hdrs) > 0 {
		return hdrs
	}

	return cellTexts(tbl.Find("tr").First().Find("th, td"))
}

func cellTexts(cells *goquery.Selection) []string {
	out := make([]string, 0, cells.Length())
	cells.Each(func(_ int, c *goquery.Selection) {
		out = append(out, cellText(c))
	})
	return out
}

// cellText joins the cell's text nodes with single spaces, so line breaks
// and inline markup never glue words together.
func cellText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// Extract turns tables with an undergraduate date column into events.
// Unparseable rows become warnings and never abort extraction. In strict
// mode a row with an empty undergraduate cell is skipped; otherwise the first
// other cell that parses as a date is used.
func Extract(tables []Table, sourceURL string, strict bool) Result {
	res := Result{Events: make([]event.ParsedEvent, 0), Warnings: make([]string, 0)}
	if len(tables) == 0 {
		res.Warnings = append(res.Warnings, "No <table> elements found on the page.")
		return res
	}

	foundHeader := false
	for ti, tbl := range tables {
		col := undergradColumn(tbl.Headers)
		if col < 0 {
			continue
		}
		foundHeader = true

		rows := tbl.Rows
		if len(rows) > 0 && undergradHeader.MatchString(strings.Join(rows[0], " ")) {
			rows = rows[1:]
		}

		for ri, cells := range rows {
			if len(cells) == 0 || cells[0] == "" {
				continue
			}
			title := cells[0]

			dateText := ""
			if len(cells) > col {
				dateText = cells[col]
			}
			if dateText == "" {
				if strict {
					logger.Info("skipping row without undergraduate date", logger.Fields{"table": ti, "row": ri, "title": title})
					continue
				}
				dateText = firstDateCell(cells[1:])
			}

			start, end, ok := event.ParseDateRange(dateText)
			if !ok {
				logger.Warn("unparseable date", logger.Fields{"title": title, "cell": dateText})
				res.Warnings = append(res.Warnings, fmt.Sprintf("Unparseable date for '%s': '%s'", title, dateText))
				continue
			}

			evt, ok := event.NewParsedEvent(title, start, end, sourceURL)
			if !ok {
				logger.Warn("invalid date range", logger.Fields{"title": title, "cell": dateText})
				res.Warnings = append(res.Warnings, fmt.Sprintf("Invalid date range for '%s': '%s'", title, dateText))
				continue
			}
			res.Events = append(res.Events, evt)
			logger.Debug("extracted event", logger.Fields{"title": title, "start": start.String(), "end": end.String()})
		}
	}

	if !foundHeader {
		res.Warnings = append(res.Warnings, "No table with an 'UNDER G.' header was detected.")
	}

	logger.Info("extraction finished", logger.Fields{"events": len(res.Events), "warnings": len(res.Warnings)})
	return res
}

func undergradColumn(headers []string) int {
	for i, h := range headers {
		if undergradHeader.MatchString(h) {
			return i
		}
	}
	return -1
}

func firstDateCell(cells []string) string {
	for _, c := range cells {
		if _, _, ok := event.ParseDateRange(c); ok {
			return c
		}
	}
	return ""
}
