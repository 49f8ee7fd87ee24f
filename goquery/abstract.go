// Package goquery parses Praza Pública pages with goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xornal"
)

// CleanAbstract returns the text content of an abstract fragment with
// whitespace runs collapsed to single spaces.
func CleanAbstract(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", xornal.Errorf(xornal.EEMPTY, "empty abstract")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", xornal.Wrapf(xornal.EMALFORMED, err, "failed to parse abstract")
	}

	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
