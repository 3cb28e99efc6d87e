package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "modecitation.dev/pkg/modecitation/internal/model"
)

// ReportStore persists the per-document reports of a run.
type ReportStore interface {
	SaveReports(dir m.Path, reports []m.Report) (m.Path, error)
	LoadReports(path m.Path) ([]m.Report, error)
}

type reportFile struct {
	RunID   string     `yaml:"run_id"`
	Reports []m.Report `yaml:"reports"`
}

// YAMLReportStore writes one YAML file per run, named after the run ID.
type YAMLReportStore struct{}

// NewYAMLReportStore constructs a YAMLReportStore.
func NewYAMLReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReports writes reports to dir/<run id>.yaml and returns the file path.
func (s *YAMLReportStore) SaveReports(dir m.Path, reports []m.Report) (m.Path, error) {
	runID := "empty"
	if len(reports) > 0 && reports[0].RunID != "" {
		runID = reports[0].RunID
	}

	file := reportFile{RunID: runID, Reports: make([]m.Report, len(reports))}
	for i, r := range reports {
		r.Finalize()
		file.Reports[i] = r
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return "", fmt.Errorf("encode reports: %w", err)
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	path := filepath.Join(string(dir), runID+".yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write reports: %w", err)
	}

	return m.Path(path), nil
}

// LoadReports reads a file written by SaveReports. Status is restored from
// its text form; errors are only available as messages.
func (s *YAMLReportStore) LoadReports(path m.Path) ([]m.Report, error) {
	// #nosec G304 - reports path comes from the run configuration
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read reports: %w", err)
	}

	var file reportFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}

	for i := range file.Reports {
		file.Reports[i].Status = m.ParseDocumentStatus(file.Reports[i].State)
	}

	return file.Reports, nil
}
