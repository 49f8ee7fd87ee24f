package mock

import (
	"context"

	"github.com/fwojciec/xornal"
)

var (
	_ xornal.Normalizer     = (*Normalizer)(nil)
	_ xornal.DocumentWriter = (*DocumentWriter)(nil)
)

// Normalizer is a mock implementation of xornal.Normalizer.
type Normalizer struct {
	NormalizeFn func(ctx context.Context, src *xornal.Source) (*xornal.Document, error)
}

func (n *Normalizer) Normalize(ctx context.Context, src *xornal.Source) (*xornal.Document, error) {
	return n.NormalizeFn(ctx, src)
}

// DocumentWriter is a mock implementation of xornal.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, doc *xornal.Document, sourcePath string) (string, error)
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *xornal.Document, sourcePath string) (string, error) {
	return w.WriteDocumentFn(ctx, doc, sourcePath)
}
