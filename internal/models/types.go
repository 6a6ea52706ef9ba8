package models

// VacancyRecord is the provider-independent view of a single vacancy.
// From and To are nil when the provider did not report that bound.
type VacancyRecord struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Snippet  string   `json:"snippet,omitempty"`
	From     *float64 `json:"salary_from,omitempty"`
	To       *float64 `json:"salary_to,omitempty"`
	Currency string   `json:"currency"`
}

// LanguageVacancies holds everything a source fetched for one language
type LanguageVacancies struct {
	Language string `json:"language"`
	// Found is the provider-declared total, not the number of items received.
	Found   int `json:"found"`
	Fetched int `json:"fetched"`
	Pages   int `json:"pages"`
	// Records only contains vacancies paid in the source's target currency
	// with at least one salary bound.
	Records []VacancyRecord `json:"records"`
}

// LanguageStatistics represents aggregated salary data for a language
type LanguageStatistics struct {
	Language           string `json:"language"`
	VacanciesFound     int    `json:"vacancies_found"`
	VacanciesProcessed int    `json:"vacancies_processed"`
	AverageSalary      int    `json:"average_salary"`
	// Samples is only filled when the aggregator is asked to keep them
	Samples []VacancySample `json:"samples,omitempty"`
}

// VacancySample is one processed vacancy with its salary estimate
type VacancySample struct {
	Name     string `json:"name"`
	Estimate int    `json:"estimate"`
	Snippet  string `json:"snippet,omitempty"`
}

// Statistics is the per-provider result of an aggregation run.
// Languages keeps the order in which languages were requested.
type Statistics struct {
	Provider  string               `json:"provider"`
	Title     string               `json:"title"`
	Languages []LanguageStatistics `json:"languages"`
	Skipped   []string             `json:"skipped,omitempty"`
}

// Float returns a pointer to a copy of v
func Float(v float64) *float64 {
	return &v
}
