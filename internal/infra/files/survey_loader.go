// Package files loads survey definitions from a directory of YAML or JSON documents.
package files

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"survey-service/internal/domain"
)

// DirLoader serves surveys parsed once from a directory.
type DirLoader struct {
	surveys map[string]domain.Survey
}

// LoadDir parses every *.json, *.yaml and *.yml file in dir. Files that fail to parse are
// logged and skipped; a missing directory is an error.
func LoadDir(dir string) (*DirLoader, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read survey dir: %w", err)
	}

	loader := &DirLoader{surveys: make(map[string]domain.Survey)}
	for _, entry := range entries {
		if entry.IsDir() || !isSurveyFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		survey, err := parseFile(path)
		if err != nil {
			slog.Warn("skipping survey file", "file", path, "error", err)
			continue
		}
		if _, exists := loader.surveys[survey.ID]; exists {
			slog.Warn("skipping duplicate survey", "file", path, "survey_id", survey.ID)
			continue
		}
		loader.surveys[survey.ID] = survey
		slog.Info("loaded survey", "title", survey.Title, "survey_id", survey.ID, "questions", len(survey.Questions))
	}
	return loader, nil
}

func (l *DirLoader) LoadSurvey(_ context.Context, surveyID string) (domain.Survey, error) {
	if survey, ok := l.surveys[surveyID]; ok {
		return survey, nil
	}
	return domain.Survey{}, domain.ErrSurveyNotFound
}

func (l *DirLoader) ListSurveys(_ context.Context) ([]domain.SurveySummary, error) {
	out := make([]domain.SurveySummary, 0, len(l.surveys))
	for _, s := range l.surveys {
		out = append(out, s.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// Surveys returns every loaded survey, e.g. for seeding another store.
func (l *DirLoader) Surveys() []domain.Survey {
	out := make([]domain.Survey, 0, len(l.surveys))
	for _, s := range l.surveys {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func parseFile(path string) (domain.Survey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Survey{}, err
	}
	// YAML is a superset of JSON, so one decoder covers both formats.
	var survey domain.Survey
	if err := yaml.Unmarshal(data, &survey); err != nil {
		return domain.Survey{}, fmt.Errorf("decode: %w", err)
	}
	if strings.TrimSpace(survey.Title) == "" {
		return domain.Survey{}, fmt.Errorf("survey title is required")
	}
	if len(survey.Questions) == 0 {
		return domain.Survey{}, fmt.Errorf("survey has no questions")
	}
	survey.AssignIDs()
	return survey, nil
}

func isSurveyFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
