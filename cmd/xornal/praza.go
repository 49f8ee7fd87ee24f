package main

import (
	"fmt"

	"github.com/fwojciec/xornal"
	"github.com/fwojciec/xornal/bloom"
	"github.com/fwojciec/xornal/crawl"
	"github.com/fwojciec/xornal/fs"
	"github.com/fwojciec/xornal/gofeed"
	"github.com/fwojciec/xornal/goquery"
	xslog "github.com/fwojciec/xornal/slog"
	xviper "github.com/fwojciec/xornal/viper"
)

// ArticlePrefix names stored Praza article files.
const ArticlePrefix = "praza"

// Run executes the praza command.
func (c *PrazaCmd) Run(deps *Dependencies) error {
	if c.Download == "" && c.Parse == "" {
		return xornal.Errorf(xornal.EINVALID, "one of --download or --parse is required")
	}

	section, err := deps.Config.Section(xviper.PrazaSection)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xornal.ErrorMessage(err))
		return err
	}
	if section.BaseURL == "" {
		section.BaseURL = goquery.DefaultPrazaBaseURL
	}

	if c.Download != "" {
		return c.runDownload(deps, section)
	}
	return c.runParse(deps, section)
}

func (c *PrazaCmd) runDownload(deps *Dependencies, section *xviper.Section) error {
	d := &crawl.Downloader{
		Fetcher:    deps.fetcher(),
		Listing:    goquery.NewListingParser(),
		Feed:       gofeed.NewFeedParser(),
		Store:      fs.NewArticleStore(section.Source, ArticlePrefix),
		Categories: section.Categories,
		Seen:       bloom.NewSeenSet(),
		BaseURL:    section.BaseURL,
		Logger:     deps.Logger,
	}

	switch c.Download {
	case "rss":
		if section.FeedURL == "" {
			return xornal.Errorf(xornal.EINVALID, "no feed_url configured for praza")
		}
		result, err := d.DownloadFeed(deps.Ctx, section.FeedURL, deps.progress(c.Progress))
		if result != nil {
			fmt.Fprintln(deps.Stdout, crawl.DownloadSummary("RSS", result))
		}
		return err

	case "category":
		names := c.Categories
		if len(names) == 0 {
			for _, cat := range section.Categories {
				names = append(names, cat.Name)
			}
		}
		total := &crawl.Result{}
		for _, name := range names {
			result, err := d.DownloadCategory(deps.Ctx, name, deps.progress(c.Progress))
			if err := deps.Ctx.Err(); err != nil {
				return err
			}
			if err != nil {
				deps.Logger.Error("error downloading category", "category", name, "err", err)
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", name, xornal.ErrorMessage(err))
				continue
			}
			fmt.Fprintln(deps.Stdout, crawl.DownloadSummary(name, result))
			total.Add(result)
		}
		if len(names) > 1 {
			fmt.Fprintln(deps.Stdout, crawl.DownloadSummary("Total", total))
		}
		return nil

	default:
		return xornal.Errorf(xornal.EINVALID, "unknown download mode %q (want category or rss)", c.Download)
	}
}

func (c *PrazaCmd) runParse(deps *Dependencies, section *xviper.Section) error {
	paths, err := sourcePaths(c.Parse, section.Source, fs.ArticleExt)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xornal.ErrorMessage(err))
		return err
	}

	normalizer := goquery.NewPrazaNormalizer(section.BaseURL, deps.reducer(section.BaseURL), deps.Logger)
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

func sourcePaths(arg, root, ext string) ([]string, error) {
	if arg != ParseAll {
		return []string{arg}, nil
	}
	return fs.FindSources(root, ext)
}
