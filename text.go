package xornal

import (
	"crypto/md5" //nolint:gosec // identifiers only, must match existing corpora
	"encoding/hex"
	"html"
	"regexp"
	"strings"
)

// ArticleClass marks the wrapper paragraph produced by PrepareHTML.
const ArticleClass = "article"

// newsIDDateLen is the length of the YYYYMMDDhhmmss prefix of article file names.
const newsIDDateLen = 14

var (
	strongTagRe = regexp.MustCompile(`<(/?)(strong)>`)
	leadBreakRe = regexp.MustCompile(`<p><br>\n`)
)

// CleanChars replaces control characters other than tab, newline and
// carriage return with spaces and trims surrounding whitespace.
// Each invalid UTF-8 byte is replaced with U+FFFD.
func CleanChars(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20 || r == 0x7F:
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// CleanBytes decodes b as UTF-8 and applies CleanChars.
func CleanBytes(b []byte) string {
	return CleanChars(string(b))
}

// PrepareHTML normalizes an escaped markup fragment and wraps it in a
// minimal document whose content sits in a p.article element.
func PrepareHTML(fragment string) string {
	fragment = strongTagRe.ReplaceAllString(fragment, "")
	fragment = leadBreakRe.ReplaceAllString(fragment, "<p>")

	var b strings.Builder
	b.WriteString("<html><body><p class='" + ArticleClass + "'>")
	b.WriteString(html.UnescapeString(strings.TrimSpace(fragment)))
	b.WriteString("</p></body></html>")
	return b.String()
}

// HashURL returns the MD5 hex digest of a URL, used as a stable article id.
func HashURL(u string) string {
	sum := md5.Sum([]byte(u)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// NewsIDFromURL recovers the outlet's article id from an article URL:
// the final path segment without its .html extension and date prefix.
func NewsIDFromURL(u string) string {
	segment := u
	if i := strings.LastIndex(u, "/"); i >= 0 {
		segment = u[i+1:]
	}
	segment = strings.ReplaceAll(segment, ".html", "")
	if len(segment) <= newsIDDateLen {
		return ""
	}
	return segment[newsIDDateLen:]
}
