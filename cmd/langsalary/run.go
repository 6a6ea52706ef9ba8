package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/logger"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/scraper"
	"github.com/fr4nk3nst1ner/langsalary/internal/stats"
	"github.com/fr4nk3nst1ner/langsalary/internal/ui"
)

type runOptions struct {
	Format   string
	Out      io.Writer
	Progress bool
	// Verbose lists sample vacancies under table and text output
	Verbose bool
}

// verboseSamples is how many vacancies per language -verbose lists
const verboseSamples = 5

// buildSources creates the enabled sources, SuperJob first
func buildSources(cfg *config.Config, httpClient *http.Client, log *logger.Logger) ([]scraper.Source, error) {
	var sources []scraper.Source

	if cfg.SuperJob.Enabled {
		sj, err := scraper.NewSuperJob(httpClient, scraper.SuperJobOptions{
			BaseURL:      cfg.SuperJob.BaseURL,
			SearchPrefix: cfg.SearchPrefix,
			Token:        cfg.SuperJob.Token,
			Town:         cfg.SuperJob.Town,
			Period:       cfg.SuperJob.Period,
			Count:        cfg.SuperJob.Count,
			MaxPages:     cfg.SuperJob.MaxPages,
			Title:        cfg.SuperJob.Title,
		}, log)
		if err != nil {
			return nil, err
		}
		sources = append(sources, sj)
	}

	if cfg.HeadHunter.Enabled {
		sources = append(sources, scraper.NewHeadHunter(httpClient, scraper.HeadHunterOptions{
			BaseURL:      cfg.HeadHunter.BaseURL,
			SearchPrefix: cfg.SearchPrefix,
			Area:         cfg.HeadHunter.Area,
			Period:       cfg.HeadHunter.Period,
			UserAgent:    cfg.HeadHunter.UserAgent,
			Title:        cfg.HeadHunter.Title,
		}, log))
	}

	return sources, nil
}

// run aggregates every enabled source, then prints all tables.
// Nothing is printed if any source fails.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger, opts runOptions) error {
	httpClient := client.CreateProxyHTTPClient(cfg.Proxy, cfg.Timeout)

	sources, err := buildSources(cfg, httpClient, log)
	if err != nil {
		return err
	}

	results := make([]*models.Statistics, 0, len(sources))
	for _, src := range sources {
		log.Info().Str("provider", src.Name()).Strs("languages", cfg.Languages).Msg("collecting statistics")

		var aggOpts []stats.Option
		if opts.Verbose {
			aggOpts = append(aggOpts, stats.WithSamples(verboseSamples))
		}
		var bar *pb.ProgressBar
		if opts.Progress {
			bar = pb.New(len(cfg.Languages)).
				SetWriter(os.Stderr).
				Set("prefix", src.Title()+" ")
			bar.Start()
			aggOpts = append(aggOpts, stats.WithProgress(bar))
		}

		result, err := stats.NewAggregator(src, log, aggOpts...).Aggregate(ctx, cfg.Languages)
		if bar != nil {
			bar.Finish()
		}
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	for _, result := range results {
		out, err := render(result, opts.Format)
		if err != nil {
			return err
		}
		fmt.Fprintln(opts.Out, out)

		if opts.Verbose && (opts.Format == ui.FormatTable || opts.Format == ui.FormatText) {
			if listing := ui.RenderVacancies(result); listing != "" {
				fmt.Fprintln(opts.Out, listing)
			}
		}
	}

	return nil
}

func render(result *models.Statistics, format string) (string, error) {
	if format == ui.FormatTable || format == "" {
		return ui.RenderTable(result)
	}
	return ui.Export(result, format)
}
