package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/xornal"
)

// ArticleExt is the extension of downloaded article pages.
const ArticleExt = ".html"

// Ensure ArticleStore implements xornal.ArticleStore at compile time.
var _ xornal.ArticleStore = (*ArticleStore)(nil)

// ArticleStore keeps downloaded pages under root/YYYY/MM, named
// <prefix>_YYYYMMDD_<url tail>.html.
type ArticleStore struct {
	root   string
	prefix string
}

// NewArticleStore creates an ArticleStore.
func NewArticleStore(root, prefix string) *ArticleStore {
	return &ArticleStore{
		root:   root,
		prefix: prefix,
	}
}

// Path returns the deterministic location of the article page.
func (s *ArticleStore) Path(entry xornal.ListingEntry) (string, error) {
	year, month, day, err := splitDate(entry.Published)
	if err != nil {
		return "", err
	}

	tail := entry.URL[strings.LastIndex(entry.URL, "/")+1:]
	if tail == "" {
		return "", xornal.Errorf(xornal.EINVALID, "article URL has no name: %q", entry.URL)
	}

	name := s.prefix + "_" + year + month + day + "_" + tail + ArticleExt
	return filepath.Join(s.root, year, month, name), nil
}

// Exists reports whether the article page is already on disk.
func (s *ArticleStore) Exists(entry xornal.ListingEntry) (bool, error) {
	path, err := s.Path(entry)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

// Save writes the article page. The page is written to a temporary file
// and renamed into place so an interrupted run leaves no partial page.
func (s *ArticleStore) Save(ctx context.Context, entry xornal.ListingEntry, html string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.Path(entry)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(html); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

// splitDate returns the zero-padded date parts of an ISO-8601 timestamp.
func splitDate(iso string) (year, month, day string, err error) {
	date, _, _ := strings.Cut(iso, "T")
	date, _, _ = strings.Cut(date, ".")
	parts := strings.Split(strings.TrimSpace(date), "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return "", "", "", xornal.Errorf(xornal.EINVALID, "invalid publication date: %q", iso)
	}
	return parts[0], parts[1], parts[2], nil
}
