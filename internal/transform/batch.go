package transform

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"ocsf-mapper/internal/mapping"
)

// MaxLineSize bounds a single NDJSON input line.
const MaxLineSize = 16 << 20

var bufPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// Stats counts documents seen by ProcessBatch and Stream.
type Stats struct {
	Processed int
	Skipped   int
}

// ProcessBatch transforms each document and returns NDJSON output, one line
// per decodable input. Undecodable documents are skipped and counted.
func ProcessBatch(docs [][]byte, cfg *mapping.ParserConfig, logger *zap.Logger) ([]byte, Stats) {
	if logger == nil {
		logger = zap.NewNop()
	}

	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()

	defer bufPool.Put(buf)

	var stats Stats

	for i, doc := range docs {
		line, err := TransformJSON(doc, cfg)
		if err != nil {
			logger.Warn("skipping document", zap.Int("index", i), zap.Error(err))
			stats.Skipped++

			continue
		}

		buf.Write(line)
		buf.WriteByte('\n')

		stats.Processed++
	}

	return bytes.Clone(buf.Bytes()), stats
}

// Stream reads NDJSON from r and writes one transformed line per input line
// to w. Blank lines are ignored and malformed lines are skipped. It stops at
// EOF, on a read or write error, or when ctx is done.
func Stream(ctx context.Context, r io.Reader, w io.Writer, cfg *mapping.ParserConfig, logger *zap.Logger) (Stats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	bw := bufio.NewWriter(w)

	lineNo := 0

	for scanner.Scan() {
		lineNo++

		if err := ctx.Err(); err != nil {
			_ = bw.Flush()
			return stats, err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		out, err := TransformJSON(line, cfg)
		if err != nil {
			logger.Warn("skipping line", zap.Int("line", lineNo), zap.Error(err))
			stats.Skipped++

			continue
		}

		if _, err := bw.Write(out); err != nil {
			return stats, fmt.Errorf("failed to write output: %w", err)
		}

		if err := bw.WriteByte('\n'); err != nil {
			return stats, fmt.Errorf("failed to write output: %w", err)
		}

		stats.Processed++
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read input: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("failed to write output: %w", err)
	}

	return stats, nil
}
