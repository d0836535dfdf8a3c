// Package main provides the CLI entrypoint for ocsf-mapper.
//
// ocsf-mapper turns arbitrary JSON log records into OCSF events:
//   - Lists the fields of a sample record and classifies observables
//   - Suggests attribute mappings best-effort
//   - Lets humans review + lock mappings in a YAML session
//   - Builds a parser config and applies it to NDJSON streams
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ocsf-mapper/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(config.Load()).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ocsf-mapper:", err)
		stop()
		os.Exit(1)
	}
}
