package report

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/layercheck/layercheck/internal/audit"
	"github.com/layercheck/layercheck/internal/compliance"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS run_summary (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	generated_at    TEXT NOT NULL,
	total_controls  INTEGER NOT NULL,
	implemented     INTEGER NOT NULL,
	missing         INTEGER NOT NULL,
	not_applicable  INTEGER NOT NULL,
	unknown         INTEGER NOT NULL DEFAULT 0,
	applicable      INTEGER NOT NULL,
	compliance_rate REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS layer_stats (
	position       INTEGER PRIMARY KEY,
	layer_number   TEXT NOT NULL,
	layer_name     TEXT NOT NULL DEFAULT '',
	implemented    INTEGER NOT NULL,
	missing        INTEGER NOT NULL,
	not_applicable INTEGER NOT NULL,
	unknown        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS assessments (
	position      INTEGER PRIMARY KEY,
	layer_number  TEXT NOT NULL,
	layer_name    TEXT NOT NULL DEFAULT '',
	control_group TEXT NOT NULL DEFAULT '',
	control       TEXT NOT NULL DEFAULT '',
	artifact      TEXT NOT NULL DEFAULT '',
	component     TEXT NOT NULL DEFAULT '',
	test_category TEXT NOT NULL DEFAULT '',
	metric_kpi    TEXT NOT NULL DEFAULT '',
	evidence      TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL,
	reason        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS audit_results (
	tool         TEXT PRIMARY KEY,
	available    INTEGER NOT NULL,
	reason       TEXT NOT NULL DEFAULT '',
	detail       TEXT NOT NULL DEFAULT '',
	metrics      TEXT NOT NULL DEFAULT '{}',
	collected_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_assessments_status ON assessments(status);
CREATE INDEX IF NOT EXISTS idx_assessments_layer ON assessments(layer_number);
`

// WriteSQLite exports the full assessment into a SQLite database at path.
// The database is built at a temporary path and renamed into place, like
// the other writers. modernc.org/sqlite is pure Go, so the export works
// without CGO.
func WriteSQLite(path string, summary compliance.Summary, assessments []compliance.Assessment, external *audit.Metrics) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp database: %w", err)
	}
	tmpName := tmp.Name()
	tmp.Close()

	if err := exportSQLite(tmpName, summary, assessments, external); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("export %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func exportSQLite(path string, summary compliance.Summary, assessments []compliance.Assessment, external *audit.Metrics) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO run_summary (generated_at, total_controls, implemented, missing, not_applicable, unknown, applicable, compliance_rate)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.GeneratedAt, summary.TotalControls, summary.Implemented, summary.Missing,
		summary.NotApplicable, summary.Unknown, summary.Applicable, summary.ComplianceRate,
	)
	if err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}

	// Position columns preserve checklist discovery order.
	for i, layer := range summary.Layers {
		_, err = tx.Exec(
			`INSERT INTO layer_stats (position, layer_number, layer_name, implemented, missing, not_applicable, unknown)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, layer.LayerNumber, layer.LayerName, layer.Implemented, layer.Missing,
			layer.NotApplicable, layer.Unknown,
		)
		if err != nil {
			return fmt.Errorf("insert layer %s: %w", layer.LayerNumber, err)
		}
	}

	for i, a := range assessments {
		_, err = tx.Exec(
			`INSERT INTO assessments (position, layer_number, layer_name, control_group, control, artifact, component, test_category, metric_kpi, evidence, status, reason)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, a.LayerNumber, a.LayerName, a.Group, a.Description, a.ArtifactSpec,
			a.Component, a.TestCategory, a.MetricKPI, a.Evidence, string(a.Status), a.Reason,
		)
		if err != nil {
			return fmt.Errorf("insert assessment %d: %w", i, err)
		}
	}

	if external != nil {
		for _, result := range external.Results {
			metrics := []byte("{}")
			if result.Metrics != nil {
				metrics, _ = json.Marshal(result.Metrics)
			}
			available := 0
			if result.Available {
				available = 1
			}
			_, err = tx.Exec(
				`INSERT INTO audit_results (tool, available, reason, detail, metrics, collected_at)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				result.Tool, available, string(result.Reason), result.Detail,
				string(metrics), external.CollectedAt,
			)
			if err != nil {
				return fmt.Errorf("insert audit result %s: %w", result.Tool, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return db.Close()
}
