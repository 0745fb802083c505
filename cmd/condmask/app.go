package main

import (
	"fmt"
	"io"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/vegasq/condmask/config"
	"github.com/vegasq/condmask/output"
)

// globalFlags are shared by every command. The *Set fields record whether
// the user passed the flag, so that only explicit flags override the file.
type globalFlags struct {
	configFile string

	format    string
	formatSet bool

	limit    int
	limitSet bool

	tableName    string
	tableNameSet bool

	wordOps    bool
	wordOpsSet bool

	logLevel    string
	logLevelSet bool
}

// env is what every command runs with
type env struct {
	stdout io.Writer
	stderr io.Writer
	flags  *globalFlags

	// exited is set once help has been printed; no command runs after that
	exited bool
}

func newApp(stdout, stderr io.Writer) (*kingpin.Application, *env) {
	g := &globalFlags{}
	e := &env{stdout: stdout, stderr: stderr, flags: g}

	app := kingpin.New("condmask", "Evaluate boolean conditions against parquet files.")
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)
	app.Terminate(func(int) { e.exited = true })
	app.HelpFlag.Short('h')

	app.Flag("config.file", "YAML configuration file.").StringVar(&g.configFile)
	app.Flag("format", "Output format.").Short('f').IsSetByUser(&g.formatSet).
		Default("jsonl").EnumVar(&g.format, output.Formats...)
	app.Flag("limit", "Maximum number of rows to print (0 = unlimited).").IsSetByUser(&g.limitSet).IntVar(&g.limit)
	app.Flag("table-name", "Identifier used for the table in rendered predicates.").IsSetByUser(&g.tableNameSet).StringVar(&g.tableName)
	app.Flag("word-ops", "Render and/or instead of &/| in predicates.").IsSetByUser(&g.wordOpsSet).BoolVar(&g.wordOps)
	app.Flag("log.level", "Log level.").IsSetByUser(&g.logLevelSet).
		Default("info").EnumVar(&g.logLevel, config.LogLevels...)

	addFilterCommand(app, e)
	addMaskCommand(app, e)
	addExprCommand(app, e)
	addColumnsCommand(app, e)

	return app, e
}

// action skips fn when help was requested on the same command line
func (e *env) action(fn kingpin.Action) kingpin.Action {
	return func(ctx *kingpin.ParseContext) error {
		if e.exited {
			return nil
		}
		return fn(ctx)
	}
}

// config loads the configuration file, if any, and applies explicit flags
func (e *env) config() (config.Config, error) {
	cfg := config.Default()
	if e.flags.configFile != "" {
		var err error
		if cfg, err = config.FromFile(e.flags.configFile); err != nil {
			return config.Config{}, err
		}
	}

	if e.flags.formatSet {
		cfg.Format = e.flags.format
	}
	if e.flags.limitSet {
		cfg.Limit = e.flags.limit
	}
	if e.flags.tableNameSet {
		cfg.Render.TableName = e.flags.tableName
	}
	if e.flags.wordOpsSet {
		cfg.Render.WordOperators = e.flags.wordOps
	}
	if e.flags.logLevelSet {
		cfg.LogLevel = e.flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// logger returns a logfmt logger on stderr filtered at the configured level
func (e *env) logger(cfg config.Config) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(e.stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	var opt level.Option
	switch cfg.LogLevel {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}
	return level.NewFilter(logger, opt)
}
