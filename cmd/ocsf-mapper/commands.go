package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"ocsf-mapper/internal/config"
	"ocsf-mapper/internal/fields"
	"ocsf-mapper/internal/mapping"
	"ocsf-mapper/internal/match"
	"ocsf-mapper/internal/observable"
	"ocsf-mapper/internal/session"
	"ocsf-mapper/internal/transform"
)

var errMissingArg = errors.New("missing argument")

func fieldsCommand() *cli.Command {
	return &cli.Command{
		Name:      "fields",
		Usage:     "list the fields of a sample JSON record",
		ArgsUsage: "<sample.json | ->",
		Action: func(_ context.Context, cmd *cli.Command) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}

			if cmd.NArg() == 0 {
				return fmt.Errorf("%w: sample file", errMissingArg)
			}

			data, err := e.readInput(cmd.Args().First())
			if err != nil {
				return err
			}

			fs, err := fields.Parse(data)
			if err != nil {
				return err
			}

			return e.writeJSON(fs)
		},
	}
}

type detection struct {
	Value      string            `json:"value"`
	Observable bool              `json:"observable"`
	TypeID     observable.TypeID `json:"typeId"`
	Type       string            `json:"type,omitempty"`
}

func detectCommand() *cli.Command {
	return &cli.Command{
		Name:      "detect",
		Usage:     "classify a value as an OCSF observable",
		ArgsUsage: "<value>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "hint", Usage: "field name used to disambiguate hostname-like values"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}

			if cmd.NArg() == 0 {
				return fmt.Errorf("%w: value", errMissingArg)
			}

			value := cmd.Args().First()
			id, ok := observable.Detect(value, cmd.String("hint"))

			d := detection{Value: value, Observable: ok}
			if ok {
				d.TypeID = id
				d.Type = id.String()
			}

			return e.writeJSON(d)
		},
	}
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "start a new mapping session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "session name"},
			&cli.StringFlag{Name: "class", Usage: "target event class"},
			&cli.StringFlag{Name: "category", Usage: "target event category"},
			&cli.StringFlag{Name: "sample", Usage: "sample JSON record to embed"},
			&cli.StringFlag{Name: "out", Usage: "session file to write (stdout when empty)"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}

			s := session.New(cmd.String("name"))
			s.Class = cmd.String("class")
			s.Category = cmd.String("category")

			if path := cmd.String("sample"); path != "" {
				data, err := e.readInput(path)
				if err != nil {
					return err
				}

				if _, err := fields.Parse(data); err != nil {
					return err
				}

				s.Sample = string(data)
			}

			if out := cmd.String("out"); out != "" {
				e.logger.Info("session created", zap.String("id", s.ID), zap.String("path", out))
				return session.WriteFile(s, out)
			}

			data, err := session.Marshal(s)
			if err != nil {
				return err
			}

			_, err = e.out.Write(data)

			return err
		},
	}
}

func suggestCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "propose source fields for the session's target class",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "session", Usage: "session file", Required: true},
			&cli.FloatFlag{Name: "min-score", Usage: "minimum combined score", Value: cfg.Suggest.MinScore},
			&cli.FloatFlag{Name: "min-gap", Usage: "minimum lead over the runner-up", Value: cfg.Suggest.MinGap},
			&cli.IntFlag{Name: "depth", Usage: "reference levels offered as targets"},
			&cli.BoolFlag{Name: "write", Usage: "add accepted suggestions for unbound paths to the session"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}

			path := cmd.String("session")

			s, err := session.LoadFile(path)
			if err != nil {
				return err
			}

			catalog, err := e.catalog(ctx)
			if err != nil {
				return err
			}

			fs, err := s.Fields()
			if err != nil {
				return err
			}

			sc := match.DefaultSuggestConfig()
			sc.MinScore = cmd.Float("min-score")
			sc.MinGap = cmd.Float("min-gap")
			sc.Depth = cfg.Suggest.Depth

			if cmd.IsSet("depth") {
				sc.Depth = int(cmd.Int("depth"))
			}

			suggestions, err := match.Suggest(catalog, s.Class, fs, sc)
			if err != nil {
				return err
			}

			if cmd.Bool("write") {
				added := 0

				for target, m := range match.ToUserMappings(suggestions) {
					if s.Mappings[target].IsBound() {
						continue
					}

					s.Mappings[target] = m
					added++
				}

				if err := session.WriteFile(s, path); err != nil {
					return err
				}

				e.logger.Info("session updated", zap.String("path", path), zap.Int("added", added))
			}

			return e.writeJSON(suggestions)
		},
	}
}

func buildCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "resolve a session into a parser config",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "session", Usage: "session file", Required: true},
			&cli.StringFlag{Name: "out", Usage: "parser config to write (stdout when empty)"},
			&cli.IntFlag{Name: "max-depth", Usage: "reference nesting limit (0 is unlimited)"},
			&cli.BoolFlag{
				Name:  "capture-unmapped",
				Usage: "copy unmapped sample fields under unmapped.*",
				Value: cfg.Resolver.CaptureUnmapped,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}

			s, err := session.LoadFile(cmd.String("session"))
			if err != nil {
				return err
			}

			catalog, err := e.catalog(ctx)
			if err != nil {
				return err
			}

			rc := mapping.ResolverConfig{
				MaxDepth:        cfg.Resolver.MaxDepth,
				CaptureUnmapped: cmd.Bool("capture-unmapped"),
			}

			if cmd.IsSet("max-depth") {
				rc.MaxDepth = int(cmd.Int("max-depth"))
			}

			parserConfig, diags, err := s.BuildWith(mapping.NewResolver(catalog, rc, e.logger))
			if err != nil {
				return err
			}

			if err := e.report(diags); err != nil {
				return err
			}

			if out := cmd.String("out"); out != "" {
				e.logger.Info("parser config written", zap.String("path", out))
				return mapping.WriteConfigFile(parserConfig, out)
			}

			data, err := mapping.MarshalConfig(parserConfig)
			if err != nil {
				return err
			}

			_, err = e.out.Write(append(data, '\n'))

			return err
		},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "validate a parser config against the schema",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "parser config file", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}

			parserConfig, err := mapping.LoadConfigFile(cmd.String("config"))
			if err != nil {
				return err
			}

			catalog, err := e.catalog(ctx)
			if err != nil {
				return err
			}

			diags := mapping.Validate(parserConfig, catalog)

			_, err = fmt.Fprintf(e.out, "%d errors, %d warnings\n", len(diags.Errors), len(diags.Warnings))
			if err != nil {
				return err
			}

			return e.report(diags)
		},
	}
}

func transformCommand() *cli.Command {
	return &cli.Command{
		Name:      "transform",
		Usage:     "apply a parser config to NDJSON records",
		ArgsUsage: "[files... | -]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "parser config file", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}

			parserConfig, err := mapping.LoadConfigFile(cmd.String("config"))
			if err != nil {
				return err
			}

			inputs := cmd.Args().Slice()
			if len(inputs) == 0 {
				inputs = []string{"-"}
			}

			var total transform.Stats

			for _, input := range inputs {
				stats, err := e.transformInput(ctx, input, parserConfig)
				total.Processed += stats.Processed
				total.Skipped += stats.Skipped

				if err != nil {
					return fmt.Errorf("%s: %w", input, err)
				}
			}

			e.logger.Info("transform finished",
				zap.Int("processed", total.Processed),
				zap.Int("skipped", total.Skipped))

			return nil
		},
	}
}

// transformInput streams NDJSON input. A file holding a single JSON array is
// processed as one batch of documents.
func (e *env) transformInput(
	ctx context.Context,
	input string,
	cfg *mapping.ParserConfig,
) (transform.Stats, error) {
	if input == "-" {
		return transform.Stream(ctx, e.in, e.out, cfg, e.logger)
	}

	data, err := e.readInput(input)
	if err != nil {
		return transform.Stats{}, err
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var docs [][]byte

		_, err := jsonparser.ArrayEach(trimmed, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
			if dataType == jsonparser.String {
				// ArrayEach strips the quotes of string elements
				docs = append(docs, []byte(`"`+string(value)+`"`))
				return
			}

			docs = append(docs, value)
		})
		if err != nil {
			return transform.Stats{}, fmt.Errorf("failed to parse array: %w", err)
		}

		out, stats := transform.ProcessBatch(docs, cfg, e.logger)
		_, err = e.out.Write(out)

		return stats, err
	}

	return transform.Stream(ctx, bytes.NewReader(data), e.out, cfg, e.logger)
}
