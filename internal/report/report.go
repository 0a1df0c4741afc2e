// Package report renders a decision's criteria, ranked results, and
// narrative into a portable plain-text report artifact.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/clarityworks/clarity/internal/scoring"
)

const defaultPageWidth = 80

// Exporter writes report artifacts into a fixed output directory. Failures
// never escape Export: they are logged and returned as a plain error the
// caller can surface as a user notice.
type Exporter struct {
	dir       string
	pageWidth int
	logger    *slog.Logger
	now       func() time.Time
}

// NewExporter creates an Exporter that writes into dir. pageWidth <= 0
// falls back to the default.
func NewExporter(dir string, pageWidth int, logger *slog.Logger) *Exporter {
	if pageWidth <= 0 {
		pageWidth = defaultPageWidth
	}
	return &Exporter{dir: dir, pageWidth: pageWidth, logger: logger, now: time.Now}
}

// Export renders the report and writes it to disk. The document is built
// fully in memory first, so a rendering failure aborts before anything
// touches the filesystem. Returns the written file path.
func (e *Exporter) Export(title string, criteria []scoring.Criterion, results []scoring.Result, narrative string) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("report rendering panicked", "title", title, "panic", r)
			path, err = "", fmt.Errorf("render report: %v", r)
		}
	}()

	doc := e.render(title, criteria, results, narrative)

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		e.logger.Error("report export failed", "title", title, "error", err)
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path = filepath.Join(e.dir, Filename(title))
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		e.logger.Error("report export failed", "title", title, "path", path, "error", err)
		return "", fmt.Errorf("write report: %w", err)
	}

	e.logger.Info("report exported", "title", title, "path", path)
	return path, nil
}

// Filename derives the artifact name from the report title: whitespace runs
// collapse to a single underscore.
func Filename(title string) string {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		fields = []string{"decision"}
	}
	return strings.Join(fields, "_") + "_report.txt"
}

func (e *Exporter) render(title string, criteria []scoring.Criterion, results []scoring.Result, narrative string) string {
	var b strings.Builder
	rule := strings.Repeat("=", e.pageWidth)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Decision Clarity Report")
	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintf(&b, "Generated %s\n", e.now().Format("2006-01-02 15:04"))
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)

	if len(results) > 0 {
		top := results[0]
		fmt.Fprintln(&b, "TOP RECOMMENDATION")
		fmt.Fprintf(&b, "  %s — %.1f%%\n", top.Name, top.FinalScore)
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, "ANALYSIS")
	for _, line := range wrap(narrative, e.pageWidth-2) {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "SCORES")
	b.WriteString(renderTable(criteria, results))

	return b.String()
}

// renderTable lays out one row per result with one column per criterion
// (raw 0–10 scores), a risk flag, and the final score.
func renderTable(criteria []scoring.Criterion, results []scoring.Result) string {
	headers := []string{"Option"}
	for _, c := range criteria {
		headers = append(headers, c.Name)
	}
	headers = append(headers, "Risk", "Score")

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		row := []string{r.Name}
		for _, c := range criteria {
			row = append(row, fmt.Sprintf("%d", r.ScoreFor(c.ID)))
		}
		risk := "No"
		if r.IsHighRisk {
			risk = "Yes"
		}
		row = append(row, risk, fmt.Sprintf("%.1f%%", r.FinalScore))
		rows = append(rows, row)
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			fmt.Fprintf(&b, "  %-*s", widths[i], cell)
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = strings.Repeat("-", widths[i])
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}

// wrap breaks text at word boundaries to fit width. Words longer than the
// width land on their own line unbroken.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
