// Package report renders assessment results into the emitted artifacts:
// plain text, JSON, the HTML dashboard, and the CSV/Markdown/SQLite
// exports. Every renderer is a pure function of the summary, the ordered
// assessments, and the optional external audit metrics; all file emission
// goes through an atomic temp-file-and-rename write so a failed render
// never leaves a partial report behind.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/layercheck/layercheck/internal/audit"
	"github.com/layercheck/layercheck/internal/compliance"
)

// Default artifact names. Stable: downstream tooling globs for them.
const (
	TextReportName    = "security-compliance-report.txt"
	JSONReportName    = "security-compliance-report.json"
	DashboardHTMLName = "security-dashboard.html"
	DashboardJSONName = "security-dashboard.json"
)

// Format identifies a report output format.
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatHTML
	FormatCSV
	FormatMarkdown
	FormatSQLite
)

// String returns the format's canonical name.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatHTML:
		return "html"
	case FormatCSV:
		return "csv"
	case FormatMarkdown:
		return "markdown"
	case FormatSQLite:
		return "sqlite"
	}
	return ""
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatJSON:
		return ".json"
	case FormatHTML:
		return ".html"
	case FormatCSV:
		return ".csv"
	case FormatMarkdown:
		return ".md"
	case FormatSQLite:
		return ".db"
	}
	return ""
}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "html":
		return FormatHTML, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "sqlite", "db":
		return FormatSQLite, nil
	}
	return 0, fmt.Errorf("unknown report format %q", name)
}

// DefaultExportName returns a timestamped filename for one-off exports.
func DefaultExportName(f Format) string {
	return fmt.Sprintf("layercheck-export-%s%s", time.Now().Format("20060102-150405"), f.Extension())
}

// Write renders the given format to path.
func Write(f Format, path string, summary compliance.Summary, assessments []compliance.Assessment, external *audit.Metrics) error {
	switch f {
	case FormatText:
		return WriteText(path, summary, assessments)
	case FormatJSON:
		return WriteJSON(path, summary, assessments)
	case FormatHTML:
		return WriteHTML(path, summary, external)
	case FormatCSV:
		return WriteCSV(path, assessments)
	case FormatMarkdown:
		return WriteMarkdown(path, summary, assessments, external)
	case FormatSQLite:
		return WriteSQLite(path, summary, assessments, external)
	}
	return fmt.Errorf("unknown report format %d", f)
}

// writeAtomic renders into a temporary file next to path and renames it
// into place, so readers only ever see complete artifacts.
func writeAtomic(path string, render func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	tmpName := tmp.Name()

	if err := render(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp report: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
