// Package fs provides file-based storage for downloaded pages and
// normalized documents.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/xornal"
)

// DocumentExt is the extension of written documents.
const DocumentExt = ".json"

// Ensure Writer implements xornal.DocumentWriter at compile time.
var _ xornal.DocumentWriter = (*Writer)(nil)

// Writer writes documents as JSON files mirroring the source tree.
type Writer struct {
	sourceRoot string
	outputRoot string
}

// NewWriter creates a Writer mapping files under sourceRoot to outputRoot.
func NewWriter(sourceRoot, outputRoot string) *Writer {
	return &Writer{
		sourceRoot: sourceRoot,
		outputRoot: outputRoot,
	}
}

// OutputPath returns where the document for sourcePath is written.
// Returns EINVALID when sourcePath is outside the source root.
func (w *Writer) OutputPath(sourcePath string) (string, error) {
	rel, err := filepath.Rel(w.sourceRoot, sourcePath)
	if err != nil {
		return "", xornal.Wrapf(xornal.EINVALID, err, "%s is not under %s", sourcePath, w.sourceRoot)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", xornal.Errorf(xornal.EINVALID, "%s is not under %s", sourcePath, w.sourceRoot)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + DocumentExt
	return filepath.Join(w.outputRoot, rel), nil
}

// WriteDocument writes doc to disk, replacing any previous version.
func (w *Writer) WriteDocument(ctx context.Context, doc *xornal.Document, sourcePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := doc.Validate(); err != nil {
		return "", err
	}

	dst, err := w.OutputPath(sourcePath)
	if err != nil {
		return "", err
	}

	data, err := Marshal(doc)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return "", err
	}
	return dst, nil
}

// Marshal encodes doc as 4-space indented JSON without escaping HTML or
// non-ASCII characters.
func Marshal(doc *xornal.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, xornal.Wrapf(xornal.EINTERNAL, err, "failed to encode document")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ReadDocument reads a document written by Writer.
func ReadDocument(path string) (*xornal.Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, xornal.Errorf(xornal.ENOTFOUND, "document not found: %s", path)
	} else if err != nil {
		return nil, err
	}

	var doc xornal.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, xornal.Wrapf(xornal.EMALFORMED, err, "invalid document: %s", path)
	}
	return &doc, nil
}

// FindSources returns every file under root with the given extension,
// in lexical order.
func FindSources(root, ext string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ext) {
			paths = append(paths, path)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, xornal.Errorf(xornal.ENOTFOUND, "source directory not found: %s", root)
	} else if err != nil {
		return nil, err
	}
	return paths, nil
}
