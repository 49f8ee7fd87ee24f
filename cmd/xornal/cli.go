package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/xornal"
	"github.com/fwojciec/xornal/crawl"
	"github.com/fwojciec/xornal/extract"
	"github.com/fwojciec/xornal/readability"
	"github.com/fwojciec/xornal/resty"
	xslog "github.com/fwojciec/xornal/slog"
	"github.com/fwojciec/xornal/trafilatura"
	xviper "github.com/fwojciec/xornal/viper"
)

// ParseAll selects every stored source file of a section.
const ParseAll = "ALL"

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *xviper.Config

	// Fetcher, if set, is used instead of the HTTP fetcher.
	Fetcher xornal.Fetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogLevel string `name:"loglevel" default:"WARNING" enum:"DEBUG,INFO,WARNING,ERROR,CRITICAL" help:"Log level (${enum})"`
	Config   string `default:"config.ini" type:"path" help:"Config file"`

	Praza     PrazaCmd     `cmd:"" help:"Download or parse Praza Pública articles"`
	Nosdiario NosdiarioCmd `cmd:"" help:"Parse Nós Diario NewsML files"`
}

// PrazaCmd is the "praza" subcommand.
type PrazaCmd struct {
	Download   string   `xor:"action" placeholder:"category|rss" help:"Download articles from category listings or the RSS feed"`
	Categories []string `short:"c" name:"categories" help:"Categories to download (default: all configured)"`
	Parse      string   `xor:"action" placeholder:"FILE" help:"Parse one stored HTML file, or ALL"`
	Progress   bool     `short:"p" help:"Show progress"`
}

// NosdiarioCmd is the "nosdiario" subcommand.
type NosdiarioCmd struct {
	Parse    string `required:"" placeholder:"FILE" help:"Parse one NewsML file, or ALL"`
	Progress bool   `short:"p" help:"Show progress"`
}

func (d *Dependencies) fetcher() xornal.Fetcher {
	f := d.Fetcher
	if f == nil {
		f = resty.NewFetcher(resty.WithLogger(d.Logger))
	}
	return xslog.NewLoggingFetcher(f, d.Logger)
}

func (d *Dependencies) reducer(pageURL string) xornal.TextReducer {
	return extract.NewChain(d.Logger,
		readability.NewExtractor(readability.WithPageURL(pageURL)),
		trafilatura.NewExtractor(),
	)
}

// progress returns a ProgressFunc that redraws a status line on stderr,
// or nil when progress display is off.
func (d *Dependencies) progress(enabled bool) crawl.ProgressFunc {
	if !enabled {
		return nil
	}
	return func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressFinished:
			fmt.Fprintf(d.Stderr, "\r%80s\r", "")
		case crawl.ProgressFailed:
			fmt.Fprintf(d.Stderr, "\rfailed %s: %s\n", e.Path, xornal.ErrorMessage(e.Error))
		case crawl.ProgressCompleted, crawl.ProgressSkipped:
			fmt.Fprintf(d.Stderr, "\r[%d/%d] %s", e.Completed, e.Total, crawl.TruncateURL(e.Path, 60))
		}
	}
}
