package crawl

import (
	"context"
	"log/slog"
	"os"

	"github.com/fwojciec/xornal"
)

// Parser normalizes stored source files and writes their documents.
type Parser struct {
	Normalizer xornal.Normalizer
	Writer     xornal.DocumentWriter
	Logger     *slog.Logger
}

// Parse processes each path in order. A failing file is counted and
// logged; the run only stops when ctx is cancelled.
func (p *Parser) Parse(ctx context.Context, paths []string, progress ProgressFunc) (*Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	result := &Result{}
	progress.emit(ProgressEvent{Type: ProgressStarted, Total: len(paths)})

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		logger.Info("parsing file", "path", path)
		event := ProgressEvent{Completed: i + 1, Total: len(paths), Path: path}

		err := p.parseFile(ctx, path)
		switch {
		case err == nil:
			result.OK++
			event.Type = ProgressCompleted
		case xornal.ErrorCode(err) == xornal.ESKIPPED:
			result.Skipped++
			event.Type = ProgressSkipped
		default:
			logger.Error("error parsing article", "path", path, "err", err)
			result.fail(path, err)
			event.Type = ProgressFailed
			event.Error = err
		}
		progress.emit(event)
	}

	progress.emit(ProgressEvent{Type: ProgressFinished, Completed: len(paths), Total: len(paths)})
	return result, nil
}

func (p *Parser) parseFile(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return xornal.Wrapf(xornal.ENOTFOUND, err, "error reading file %s", path)
	}

	doc, err := p.Normalizer.Normalize(ctx, &xornal.Source{Path: path, Content: content})
	if err != nil {
		return err
	}

	if _, err := p.Writer.WriteDocument(ctx, doc, path); err != nil {
		return err
	}
	return nil
}
