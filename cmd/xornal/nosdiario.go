package main

import (
	"fmt"

	"github.com/fwojciec/xornal"
	"github.com/fwojciec/xornal/crawl"
	"github.com/fwojciec/xornal/etree"
	"github.com/fwojciec/xornal/fs"
	"github.com/fwojciec/xornal/goquery"
	xslog "github.com/fwojciec/xornal/slog"
	xviper "github.com/fwojciec/xornal/viper"
)

// SourceExt is the extension of NewsML source files.
const SourceExt = ".xml"

// Run executes the nosdiario command.
func (c *NosdiarioCmd) Run(deps *Dependencies) error {
	section, err := deps.Config.Section(xviper.NosdiarioSection)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xornal.ErrorMessage(err))
		return err
	}
	if section.BaseURL == "" {
		section.BaseURL = etree.DefaultBaseURL
	}

	paths, err := sourcePaths(c.Parse, section.Source, SourceExt)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xornal.ErrorMessage(err))
		return err
	}

	normalizer := etree.NewNosNormalizer(
		section.BaseURL,
		goquery.NewFragments(section.BaseURL),
		deps.reducer(section.BaseURL),
		deps.Logger,
	)
	p := &crawl.Parser{
		Normalizer: xslog.NewLoggingNormalizer(normalizer, deps.Logger),
		Writer:     xslog.NewLoggingDocumentWriter(fs.NewWriter(section.Source, section.Corpus), deps.Logger),
		Logger:     deps.Logger,
	}

	result, err := p.Parse(deps.Ctx, paths, deps.progress(c.Progress))
	if result != nil {
		fmt.Fprintln(deps.Stdout, crawl.Summary(result))
	}
	return err
}
