package report

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/clarityworks/clarity/internal/scoring"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testExporter(t *testing.T) *Exporter {
	t.Helper()
	e := NewExporter(t.TempDir(), 80, discardLogger())
	e.now = func() time.Time {
		return time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	}
	return e
}

var (
	testCriteria = []scoring.Criterion{
		{ID: "1", Name: "Impact", Weight: 8},
		{ID: "2", Name: "Cost", Weight: 5},
	}
	testResults = []scoring.Result{
		{Option: scoring.Option{ID: "101", Name: "Build", Scores: map[string]int{"1": 9, "2": 4}}, FinalScore: 70.8},
		{Option: scoring.Option{ID: "102", Name: "Buy", Scores: map[string]int{"1": 6}, IsHighRisk: true}, FinalScore: 36.9},
	}
)

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Q3 Platform Choice", "Q3_Platform_Choice_report.txt"},
		{"  spaced \t out  ", "spaced_out_report.txt"},
		{"", "decision_report.txt"},
		{"single", "single_report.txt"},
	}
	for _, tt := range tests {
		if got := Filename(tt.title); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestExportWritesDocument(t *testing.T) {
	e := testExporter(t)

	path, err := e.Export("Q3 Platform Choice", testCriteria, testResults, "Build leads by 33.9 points over Buy.")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if filepath.Base(path) != "Q3_Platform_Choice_report.txt" {
		t.Errorf("unexpected artifact name %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	doc := string(data)

	for _, want := range []string{
		"Decision Clarity Report",
		"Q3 Platform Choice",
		"Generated 2026-08-01 09:30",
		"TOP RECOMMENDATION",
		"Build — 70.8%",
		"Build leads by 33.9 points over Buy.",
		"Impact", "Cost", "Risk", "Score",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestExportTableRows(t *testing.T) {
	e := testExporter(t)

	path, err := e.Export("t", testCriteria, testResults, "n")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	data, _ := os.ReadFile(path)

	var buildRow, buyRow string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "Build") {
			buildRow = line
		}
		if strings.HasPrefix(strings.TrimSpace(line), "Buy") {
			buyRow = line
		}
	}

	if buildRow == "" || buyRow == "" {
		t.Fatal("expected one table row per result")
	}
	for _, cell := range []string{"9", "4", "No", "70.8%"} {
		if !strings.Contains(buildRow, cell) {
			t.Errorf("Build row missing %q: %s", cell, buildRow)
		}
	}
	// Buy never scored Cost, so the sparse entry renders as 0.
	for _, cell := range []string{"6", "0", "Yes", "36.9%"} {
		if !strings.Contains(buyRow, cell) {
			t.Errorf("Buy row missing %q: %s", cell, buyRow)
		}
	}
}

func TestExportWrapsNarrative(t *testing.T) {
	e := NewExporter(t.TempDir(), 40, discardLogger())

	long := strings.Repeat("word ", 30)
	path, err := e.Export("t", testCriteria, testResults, long)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	data, _ := os.ReadFile(path)

	inAnalysis := false
	for _, line := range strings.Split(string(data), "\n") {
		switch {
		case strings.HasPrefix(line, "ANALYSIS"):
			inAnalysis = true
		case inAnalysis && strings.TrimSpace(line) == "":
			inAnalysis = false
		case inAnalysis && len(line) > 40:
			t.Errorf("analysis line exceeds page width: %q", line)
		}
	}
}

func TestExportWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "reports")
	// A regular file where the report dir should be forces MkdirAll to fail.
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := NewExporter(blocked, 80, discardLogger())

	if _, err := e.Export("t", testCriteria, testResults, "n"); err == nil {
		t.Error("expected error when report dir cannot be created")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty", "", 10, []string{""}},
		{"fits", "a b", 10, []string{"a b"}},
		{"breaks", "aaa bbb ccc", 7, []string{"aaa bbb", "ccc"}},
		{"long word", "aaaaaaaaaaaa b", 5, []string{"aaaaaaaaaaaa", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrap(tt.text, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d lines %v, want %v", len(got), got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
