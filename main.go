// ABOUTME: Entry point for the pulse CRM dashboard CLI and MCP server
// ABOUTME: Parses global flags, loads config, and routes to subcommands
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/harperreed/pulse/cli"
	"github.com/harperreed/pulse/config"
	"github.com/harperreed/pulse/db"
	"github.com/harperreed/pulse/timewindow"
)

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/pulse/pulse.db)")
	now := flag.String("now", "", "Reference date/time for windows and staleness (default: current time)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	initOnly := flag.Bool("init", false, "Initialize database and config, then exit")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	// Handle version flag
	if *showVersion {
		fmt.Printf("pulse version %s\n", cli.Version)
		os.Exit(0)
	}

	// Get remaining args after flags
	args := flag.Args()

	// If no command specified, show usage
	if len(args) == 0 && !*initOnly {
		printUsage()
		os.Exit(0)
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	env := &cli.Env{Config: cfg, Logger: logger}
	if *now != "" {
		loc, err := cfg.Location()
		if err != nil {
			logger.Fatal("invalid timezone", zap.Error(err))
		}
		env.Now, err = timewindow.ParseDate(*now, loc)
		if err != nil {
			logger.Fatal("invalid --now", zap.String("value", *now), zap.Error(err))
		}
	}

	database, err := db.OpenDatabase(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer func() { _ = database.Close() }()
	env.DB = database

	logger.Debug("opened database", zap.String("path", cfg.DBPath))

	// Handle init-only flag
	if *initOnly {
		if err := initConfig(cfg); err != nil {
			logger.Fatal("failed to write config", zap.Error(err))
		}
		fmt.Printf("✓ Database initialized at %s\n", cfg.DBPath)
		fmt.Printf("✓ Config at %s\n", config.Path())
		return
	}

	if code := reportError(logger, args[0], run(env, args[0], args[1:])); code != 0 {
		_ = database.Close()
		_ = logger.Sync()
		os.Exit(code)
	}
}

var errUsage = errors.New("usage")

// reportError turns a command result into an exit code. Usage errors print
// help; anything else goes through the logger.
func reportError(logger *zap.Logger, command string, err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, errUsage) {
		printUsage()
		return 1
	}
	logger.Error("command failed", zap.String("command", command), zap.Error(err))
	return 1
}

// run routes to top-level commands
func run(env *cli.Env, command string, args []string) error {
	switch command {
	case "dashboard":
		return cli.DashboardCommand(env, args)
	case "leads":
		return cli.LeadsCommand(env, args)
	case "pipeline":
		return cli.PipelineCommand(env, args)
	case "projects":
		return cli.ProjectsCommand(env, args)
	case "agenda":
		return cli.AgendaCommand(env, args)
	case "emails":
		return cli.EmailsCommand(env, args)
	case "seed":
		return cli.SeedCommand(env, args)
	case "tui":
		return cli.TUICommand(env)
	case "viz":
		if len(args) == 0 || args[0] != "pipeline" {
			fmt.Println("Error: viz requires a subcommand (pipeline)")
			return errUsage
		}
		return cli.VizPipelineCommand(env, args[1:])
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cli.MCPCommand(ctx, env)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		return errUsage
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// initConfig writes the config file unless one already exists.
func initConfig(cfg *config.Config) error {
	if _, err := os.Stat(config.Path()); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return config.Save(cfg)
}

func printUsage() {
	fmt.Printf(`pulse v%s - CRM dashboard metrics

USAGE:
  pulse [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/pulse/pulse.db)
  --now <date>           Reference date for agenda and staleness (YYYY-MM-DD or RFC3339)
  --verbose              Enable debug logging
  --init                 Initialize database and config, then exit

COMMANDS:
  dashboard              Show every dashboard card
    --json                 Output JSON
    --plain                Disable colors

  leads                  List leads
    --query <text>         Search title, description, contact, company
    --status <status>      Filter by status (default: all)
    --min/--max <n>        Estimated value range
    --min-score <n>        Minimum score

  pipeline               List opportunities with the stage breakdown
    --query <text>         Search name, description, contact, company
    --stage <stage>        Filter by stage (default: all)
    --min/--max <n>        Value range

  projects               List projects with budget utilisation
    --query, --status, --min/--max (budget)

  agenda                 Group events or lead due dates by time window
    --type <events|leads>  What to classify (default: events)
    --query <text>         Search

  emails                 List emails with open, reply, and bounce rates
    --query, --status, --type

  viz pipeline           Generate the pipeline graph
    --output <file>        Output file (default: stdout)
    --query, --min/--max   Filter opportunities first

  seed                   Insert sample data dated around today (or --now)
  tui                    Interactive browser
  mcp                    Start MCP server on stdio

EXAMPLES:
  # Try it out with sample data
  pulse seed && pulse dashboard

  # What was overdue last Monday?
  pulse --now 2026-03-09 agenda --type leads

  # Open deals worth at least $20K
  pulse pipeline --min 20000

`, cli.Version)
}
