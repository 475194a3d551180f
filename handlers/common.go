// ABOUTME: Shared plumbing for MCP handlers
// ABOUTME: Loads dataset snapshots and builds reference-pinned time-window classifiers
package handlers

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/harperreed/pulse/db"
	"github.com/harperreed/pulse/insights"
	"github.com/harperreed/pulse/models"
	"github.com/harperreed/pulse/timewindow"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// Settings carries the configuration every handler needs.
type Settings struct {
	Location   *time.Location
	WindowDays int
	Options    insights.Options
	// Now supplies the default reference instant; nil means time.Now.
	Now func() time.Time
}

type source struct {
	db       *sql.DB
	settings Settings
	logger   *zap.Logger
}

func newSource(database *sql.DB, settings Settings, logger *zap.Logger) source {
	if settings.Location == nil {
		settings.Location = time.Local
	}
	if settings.WindowDays <= 0 {
		settings.WindowDays = timewindow.DefaultWindowDays
	}
	if settings.Options == (insights.Options{}) {
		settings.Options = insights.DefaultOptions()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return source{db: database, settings: settings, logger: logger}
}

// classifier returns a classifier pinned to reference, or to Now when
// reference is empty.
func (s source) classifier(reference string) (*timewindow.Classifier, error) {
	opts := []timewindow.Option{
		timewindow.WithLocation(s.settings.Location),
		timewindow.WithWindowDays(s.settings.WindowDays),
	}
	if reference != "" {
		ref, err := timewindow.ParseDate(reference, s.settings.Location)
		if err != nil {
			return nil, fmt.Errorf("invalid reference: %w", err)
		}
		opts = append(opts, timewindow.WithReference(ref))
	} else if s.settings.Now != nil {
		opts = append(opts, timewindow.WithClock(s.settings.Now))
	}
	return timewindow.New(opts...), nil
}

func (s source) dataset() (models.Dataset, error) {
	data, err := db.LoadDataset(s.db, s.settings.Location)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("failed to load dataset: %w", err)
	}
	return data, nil
}

// AgendaOutput is the wire form of an agenda: bucket names as keys and
// RFC 3339 timestamps.
type AgendaOutput struct {
	Reference    string              `json:"reference"`
	Counts       map[string]int      `json:"counts"`
	IDs          map[string][]string `json:"ids"`
	Buckets      map[string]string   `json:"buckets"`
	Unclassified []string            `json:"unclassified"`
}

func agendaToOutput(a insights.Agenda) AgendaOutput {
	out := AgendaOutput{
		Reference:    a.Reference.Format(timeLayout),
		Counts:       make(map[string]int, len(a.Counts)),
		IDs:          make(map[string][]string, len(a.IDs)),
		Buckets:      make(map[string]string, len(a.Buckets)),
		Unclassified: a.Unclassified,
	}
	for b, n := range a.Counts {
		out.Counts[string(b)] = n
	}
	for b, ids := range a.IDs {
		out.IDs[string(b)] = ids
	}
	for id, b := range a.Buckets {
		out.Buckets[id] = string(b)
	}
	if out.Unclassified == nil {
		out.Unclassified = []string{}
	}
	return out
}
