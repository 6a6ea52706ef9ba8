// Package scraper fetches vacancies from job-board APIs and maps them onto
// the common models.VacancyRecord shape.
package scraper

import (
	"context"
	"fmt"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
)

// Source is a job board that can be searched per programming language
type Source interface {
	// Name is the short provider name used in logs and errors
	Name() string
	// Title is the heading for the provider's statistics table
	Title() string
	// FetchLanguageVacancies fetches every result page for language.
	// Any failed request aborts the whole fetch; no partial result is returned.
	FetchLanguageVacancies(ctx context.Context, language string) (*models.LanguageVacancies, error)
}

// searchPhrase builds the query sent to providers, e.g. "Программист Go"
func searchPhrase(prefix, language string) string {
	if prefix == "" {
		return language
	}
	return fmt.Sprintf("%s %s", prefix, language)
}
