package mock

import "github.com/fwojciec/xornal"

var (
	_ xornal.Extractor   = (*Extractor)(nil)
	_ xornal.TextReducer = (*TextReducer)(nil)
)

// Extractor is a mock implementation of xornal.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*xornal.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*xornal.ExtractResult, error) {
	return e.ExtractFn(html)
}

// TextReducer is a mock implementation of xornal.TextReducer.
type TextReducer struct {
	ReduceFn func(html string) (string, error)
}

func (r *TextReducer) Reduce(html string) (string, error) {
	return r.ReduceFn(html)
}

var _ xornal.FragmentCleaner = (*FragmentCleaner)(nil)

// FragmentCleaner is a mock implementation of xornal.FragmentCleaner.
type FragmentCleaner struct {
	CleanAbstractFn func(html string) (string, error)
	SplitRelatedFn  func(body string) ([]xornal.Related, string, error)
}

func (f *FragmentCleaner) CleanAbstract(html string) (string, error) {
	return f.CleanAbstractFn(html)
}

func (f *FragmentCleaner) SplitRelated(body string) ([]xornal.Related, string, error) {
	return f.SplitRelatedFn(body)
}
