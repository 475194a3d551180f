// ABOUTME: Shared command environment and flag helpers
// ABOUTME: Carries the database, config, reference time, logger, and output writer
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/harperreed/pulse/config"
	"github.com/harperreed/pulse/db"
	"github.com/harperreed/pulse/filter"
	"github.com/harperreed/pulse/handlers"
	"github.com/harperreed/pulse/models"
	"github.com/harperreed/pulse/timewindow"
)

// Env is what every command runs against.
type Env struct {
	DB     *sql.DB
	Config *config.Config
	// Now pins the reference instant; zero means the wall clock.
	Now    time.Time
	Logger *zap.Logger
	// Out defaults to os.Stdout.
	Out io.Writer
}

func (e *Env) out() io.Writer {
	if e.Out == nil {
		return os.Stdout
	}
	return e.Out
}

func (e *Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e *Env) cfg() *config.Config {
	if e.Config == nil {
		return config.Default()
	}
	return e.Config
}

func (e *Env) classifier() (*timewindow.Classifier, error) {
	return e.cfg().Classifier(e.Now)
}

func (e *Env) location() (*time.Location, error) {
	return e.cfg().Location()
}

func (e *Env) dataset() (models.Dataset, error) {
	loc, err := e.location()
	if err != nil {
		return models.Dataset{}, err
	}
	data, err := db.LoadDataset(e.DB, loc)
	if err != nil {
		return models.Dataset{}, err
	}
	e.logger().Debug("loaded dataset",
		zap.Int("leads", len(data.Leads)),
		zap.Int("opportunities", len(data.Opportunities)),
		zap.Int("events", len(data.Events)))
	return data, nil
}

// settings converts the environment into handler settings.
func (e *Env) settings() (handlers.Settings, error) {
	loc, err := e.location()
	if err != nil {
		return handlers.Settings{}, err
	}
	s := handlers.Settings{
		Location:   loc,
		WindowDays: e.cfg().WeekDays,
		Options:    e.cfg().InsightOptions(),
	}
	if !e.Now.IsZero() {
		now := e.Now
		s.Now = func() time.Time { return now }
	}
	return s, nil
}

// styled reports whether output goes to a terminal.
func (e *Env) styled() bool {
	f, ok := e.out().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// optionalFloat is a flag that remembers whether it was set.
type optionalFloat struct {
	value *float64
}

func (o *optionalFloat) String() string {
	if o.value == nil {
		return ""
	}
	return strconv.FormatFloat(*o.value, 'f', -1, 64)
}

func (o *optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	o.value = &v
	return nil
}

// filterFlags registers the shared list-filter flags. category names the
// selection flag (status, stage, type) and number the range field.
type filterFlags struct {
	query    *string
	category string
	selected *string
	number   string
	min, max optionalFloat
}

func addFilterFlags(fs *flag.FlagSet, category, number string) *filterFlags {
	f := &filterFlags{category: category, number: number}
	f.query = fs.String("query", "", "Case-insensitive text search")
	if category != "" {
		f.selected = fs.String(category, filter.All, fmt.Sprintf("Filter by %s", category))
	}
	if number != "" {
		fs.Var(&f.min, "min", fmt.Sprintf("Minimum %s", number))
		fs.Var(&f.max, "max", fmt.Sprintf("Maximum %s", number))
	}
	return f
}

func (f *filterFlags) criteria() filter.Criteria {
	c := filter.Criteria{Query: *f.query}
	if f.selected != nil {
		c = c.Select(f.category, *f.selected)
	}
	if f.number != "" {
		c = c.Range(f.number, f.min.value, f.max.value)
	}
	return c
}

func shortID(id fmt.Stringer) string {
	return id.String()[:8]
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
