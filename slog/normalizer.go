package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/xornal"
)

// Ensure the decorators implement their interfaces.
var (
	_ xornal.Normalizer     = (*LoggingNormalizer)(nil)
	_ xornal.DocumentWriter = (*LoggingDocumentWriter)(nil)
)

// LoggingNormalizer wraps a Normalizer with per-file logging.
type LoggingNormalizer struct {
	next   xornal.Normalizer
	logger *slog.Logger
}

// NewLoggingNormalizer creates a new LoggingNormalizer.
func NewLoggingNormalizer(next xornal.Normalizer, logger *slog.Logger) *LoggingNormalizer {
	return &LoggingNormalizer{next: next, logger: logger}
}

// Normalize delegates to the wrapped normalizer and logs the outcome.
// Skipped input is logged at info level.
func (n *LoggingNormalizer) Normalize(ctx context.Context, src *xornal.Source) (doc *xornal.Document, err error) {
	defer func(begin time.Time) {
		lvl := level(err)
		if xornal.ErrorCode(err) == xornal.ESKIPPED {
			lvl = slog.LevelInfo
		}
		var id string
		if doc != nil {
			id = doc.Metadata.NewsItemID
		}
		n.logger.Log(ctx, lvl, "normalize",
			"path", src.Path,
			"bytes", len(src.Content),
			"news_item_id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.Normalize(ctx, src)
}

// LoggingDocumentWriter wraps a DocumentWriter with logging.
type LoggingDocumentWriter struct {
	next   xornal.DocumentWriter
	logger *slog.Logger
}

// NewLoggingDocumentWriter creates a new LoggingDocumentWriter.
func NewLoggingDocumentWriter(next xornal.DocumentWriter, logger *slog.Logger) *LoggingDocumentWriter {
	return &LoggingDocumentWriter{next: next, logger: logger}
}

// WriteDocument delegates to the wrapped writer and logs the destination.
func (w *LoggingDocumentWriter) WriteDocument(ctx context.Context, doc *xornal.Document, sourcePath string) (path string, err error) {
	defer func(begin time.Time) {
		w.logger.Log(ctx, level(err), "write document",
			"source", sourcePath,
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteDocument(ctx, doc, sourcePath)
}
