// Package stats aggregates per-language salary statistics from a vacancy source.
package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/cheggaaa/pb/v3"

	"github.com/fr4nk3nst1ner/langsalary/internal/logger"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/salary"
	"github.com/fr4nk3nst1ner/langsalary/internal/scraper"
)

// ErrNoData matches every *NoDataError via errors.Is
var ErrNoData = errors.New("no salary data")

// NoDataError means none of a language's vacancies produced a salary estimate.
// The aggregator omits such languages instead of failing.
type NoDataError struct {
	Provider string
	Language string
	Found    int
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("%s: no salary data for %s (%d vacancies found)", e.Provider, e.Language, e.Found)
}

func (e *NoDataError) Is(target error) bool {
	return target == ErrNoData
}

// Aggregator runs a source over a list of languages
type Aggregator struct {
	source   scraper.Source
	log      *logger.Logger
	progress *pb.ProgressBar
	samples  int
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithProgress advances bar once per processed language
func WithProgress(bar *pb.ProgressBar) Option {
	return func(a *Aggregator) {
		a.progress = bar
	}
}

// WithSamples keeps up to n processed vacancies per language in
// LanguageStatistics.Samples
func WithSamples(n int) Option {
	return func(a *Aggregator) {
		a.samples = n
	}
}

// NewAggregator creates an aggregator for source
func NewAggregator(source scraper.Source, log *logger.Logger, opts ...Option) *Aggregator {
	if log == nil {
		log = logger.Nop()
	}
	a := &Aggregator{source: source, log: log}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate fetches each language in order and builds its statistics.
// Languages without any salary estimate are left out and listed in Skipped.
// The first fetch error stops the run.
func (a *Aggregator) Aggregate(ctx context.Context, languages []string) (*models.Statistics, error) {
	result := &models.Statistics{
		Provider: a.source.Name(),
		Title:    a.source.Title(),
	}

	for _, language := range languages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stat, err := a.language(ctx, language)
		if a.progress != nil {
			a.progress.Increment()
		}

		var noData *NoDataError
		switch {
		case errors.As(err, &noData):
			a.log.Warn().Err(err).Str("provider", noData.Provider).Str("language", language).Msg("language skipped")
			result.Skipped = append(result.Skipped, language)
			continue
		case err != nil:
			return nil, err
		}

		a.log.Info().
			Str("provider", result.Provider).
			Str("language", language).
			Int("found", stat.VacanciesFound).
			Int("processed", stat.VacanciesProcessed).
			Int("average_salary", stat.AverageSalary).
			Msg("language processed")

		result.Languages = append(result.Languages, stat)
	}

	return result, nil
}

func (a *Aggregator) language(ctx context.Context, language string) (models.LanguageStatistics, error) {
	vacancies, err := a.source.FetchLanguageVacancies(ctx, language)
	if err != nil {
		return models.LanguageStatistics{}, fmt.Errorf("%s: %w", a.source.Name(), err)
	}

	salaries := make([]int, 0, len(vacancies.Records))
	var samples []models.VacancySample
	for _, rec := range vacancies.Records {
		v, ok := salary.Estimate(rec.From, rec.To)
		if !ok {
			continue
		}
		estimate := salary.Truncate(v)
		salaries = append(salaries, estimate)

		a.log.Debug().
			Str("provider", a.source.Name()).
			Str("id", rec.ID).
			Str("name", rec.Name).
			Int("estimate", estimate).
			Str("snippet", rec.Snippet).
			Msg("vacancy")

		if len(samples) < a.samples {
			samples = append(samples, models.VacancySample{
				Name:     rec.Name,
				Estimate: estimate,
				Snippet:  rec.Snippet,
			})
		}
	}

	average, ok := salary.Mean(salaries)
	if !ok {
		return models.LanguageStatistics{}, &NoDataError{
			Provider: a.source.Name(),
			Language: language,
			Found:    vacancies.Found,
		}
	}

	return models.LanguageStatistics{
		Language:           language,
		VacanciesFound:     vacancies.Found,
		VacanciesProcessed: len(salaries),
		AverageSalary:      average,
		Samples:            samples,
	}, nil
}
