package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/segmentio/encoding/json"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"ocsf-mapper/internal/config"
	"ocsf-mapper/internal/diagnostic"
	"ocsf-mapper/internal/logging"
	"ocsf-mapper/internal/schema"
)

const (
	flagSchema    = "schema"
	flagCacheTTL  = "cache-ttl"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
)

// newApp builds the command tree. Environment settings from cfg become flag
// defaults.
func newApp(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "ocsf-mapper",
		Usage: "map JSON log records onto OCSF event classes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagSchema,
				Usage: "path to the exported OCSF schema JSON",
				Value: cfg.Schema.Path,
			},
			&cli.DurationFlag{
				Name:  flagCacheTTL,
				Usage: "how long a loaded schema is reused (0 never expires)",
				Value: cfg.Schema.CacheTTL,
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "debug, info, warn or error",
				Value: cfg.Log.Level,
			},
			&cli.StringFlag{
				Name:  flagLogFormat,
				Usage: "console or json",
				Value: cfg.Log.Format,
			},
		},
		Commands: []*cli.Command{
			fieldsCommand(),
			detectCommand(),
			initCommand(),
			suggestCommand(cfg),
			buildCommand(cfg),
			checkCommand(),
			transformCommand(),
		},
	}
}

// env carries what every action needs.
type env struct {
	logger *zap.Logger
	out    io.Writer
	in     io.Reader
	cache  *schema.Cache
}

func newEnv(cmd *cli.Command) (*env, error) {
	logger, err := logging.New(cmd.String(flagLogLevel), cmd.String(flagLogFormat))
	if err != nil {
		return nil, err
	}

	root := cmd.Root()

	e := &env{
		logger: logger,
		out:    root.Writer,
		in:     root.Reader,
	}

	if e.out == nil {
		e.out = os.Stdout
	}

	if e.in == nil {
		e.in = os.Stdin
	}

	source := schema.FileSource{Path: cmd.String(flagSchema), Logger: logger}
	e.cache = schema.NewCache(source, cmd.Duration(flagCacheTTL), logger)

	return e, nil
}

func (e *env) catalog(ctx context.Context) (*schema.Catalog, error) {
	catalog, err := e.cache.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}

	e.logger.Debug("schema loaded",
		zap.String("version", catalog.Version),
		zap.Int("classes", len(catalog.Classes)))

	return catalog, nil
}

// report logs every diagnostic and returns the combined error, if any.
func (e *env) report(diags *diagnostic.Diagnostics) error {
	if diags == nil {
		return nil
	}

	for _, d := range diags.All() {
		attrs := []zap.Field{zap.String("code", d.Code)}
		if d.Class != "" {
			attrs = append(attrs, zap.String("class", d.Class))
		}

		if d.Path != "" {
			attrs = append(attrs, zap.String("path", d.Path))
		}

		switch d.Severity {
		case diagnostic.DiagnosticError:
			e.logger.Error(d.Message, attrs...)
		case diagnostic.DiagnosticWarning:
			e.logger.Warn(d.Message, attrs...)
		default:
			e.logger.Info(d.Message, attrs...)
		}
	}

	return diags.Error()
}

func (e *env) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	if _, err := e.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

// readInput reads a named file, or stdin for "-".
func (e *env) readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(e.in)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, nil
}
