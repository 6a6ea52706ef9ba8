package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/logger"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

const (
	superJobName     = "superjob"
	superJobAPIURL   = "https://api.superjob.ru"
	superJobRoubles  = "rub"
	superJobMaxCount = 100
	// SuperJob never serves more than 500 results per query
	superJobResultLimit = 500
)

// ErrMissingToken is returned when a SuperJob source is built without an API key
var ErrMissingToken = errors.New("superjob: api token is required")

// SuperJobResponse represents one page of the SuperJob vacancy search
type SuperJobResponse struct {
	Objects []SuperJobVacancy `json:"objects"`
	Total   int               `json:"total"`
	More    bool              `json:"more"`
}

// SuperJobVacancy represents a vacancy from SuperJob.
// Missing payment bounds are sent as 0 or null.
type SuperJobVacancy struct {
	ID          int      `json:"id"`
	Profession  string   `json:"profession"`
	FirmName    string   `json:"firm_name"`
	PaymentFrom *float64 `json:"payment_from"`
	PaymentTo   *float64 `json:"payment_to"`
	Currency    string   `json:"currency"`
	Candidat    string   `json:"candidat"`
	Town        struct {
		Title string `json:"title"`
	} `json:"town"`
}

// SuperJobOptions configures the SuperJob source
type SuperJobOptions struct {
	BaseURL      string
	SearchPrefix string
	Token        string
	// Town is a city name, e.g. "Москва"
	Town string
	// Period 0 means no publication date limit
	Period int
	// Count is the page size, at most 100
	Count int
	// MaxPages 0 means enough pages to cover the 500 result limit at Count
	MaxPages int
	Title    string
}

// SuperJob searches the api.superjob.ru API, authenticated with an app key
type SuperJob struct {
	httpClient *http.Client
	opts       SuperJobOptions
	log        *logger.Logger
}

// NewSuperJob creates a SuperJob source
func NewSuperJob(httpClient *http.Client, opts SuperJobOptions, log *logger.Logger) (*SuperJob, error) {
	if opts.Token == "" {
		return nil, ErrMissingToken
	}
	if opts.BaseURL == "" {
		opts.BaseURL = superJobAPIURL
	}
	if opts.Count <= 0 || opts.Count > superJobMaxCount {
		opts.Count = superJobMaxCount
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = (superJobResultLimit + opts.Count - 1) / opts.Count
	}
	if opts.Title == "" {
		opts.Title = "SuperJob"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SuperJob{httpClient: httpClient, opts: opts, log: log}, nil
}

func (s *SuperJob) Name() string  { return superJobName }
func (s *SuperJob) Title() string { return s.opts.Title }

// FetchLanguageVacancies follows the "more" flag until the provider reports
// the last page, an empty page arrives, or MaxPages is reached. Hitting
// MaxPages while more pages remain is logged as a warning.
func (s *SuperJob) FetchLanguageVacancies(ctx context.Context, language string) (*models.LanguageVacancies, error) {
	result := &models.LanguageVacancies{Language: language}

	more := false
	for page := 0; page < s.opts.MaxPages; page++ {
		resp, err := s.fetchPage(ctx, language, page)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s page %d: %w", language, page, err)
		}

		result.Pages++
		result.Found = resp.Total
		result.Fetched += len(resp.Objects)

		for _, item := range resp.Objects {
			if rec, ok := superJobRecord(item); ok {
				result.Records = append(result.Records, rec)
			}
		}

		s.log.Debug().
			Str("provider", superJobName).
			Str("language", language).
			Int("page", page).
			Bool("more", resp.More).
			Int("items", len(resp.Objects)).
			Msg("page fetched")

		more = resp.More && len(resp.Objects) > 0
		if !more {
			break
		}
	}

	if more {
		s.log.Warn().
			Str("provider", superJobName).
			Str("language", language).
			Int("max_pages", s.opts.MaxPages).
			Int("fetched", result.Fetched).
			Int("found", result.Found).
			Msg("page limit reached, remaining vacancies not fetched")
	}

	return result, nil
}

func (s *SuperJob) fetchPage(ctx context.Context, language string, page int) (*SuperJobResponse, error) {
	query := url.Values{}
	query.Set("keyword", searchPhrase(s.opts.SearchPrefix, language))
	query.Set("town", s.opts.Town)
	query.Set("period", strconv.Itoa(s.opts.Period))
	query.Set("page", strconv.Itoa(page))
	query.Set("count", strconv.Itoa(s.opts.Count))

	headers := http.Header{}
	headers.Set("X-Api-App-Id", s.opts.Token)

	endpoint := strings.TrimRight(s.opts.BaseURL, "/") + "/2.0/vacancies"

	var resp SuperJobResponse
	if err := client.GetJSON(ctx, s.httpClient, superJobName, endpoint, query, headers, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// superJobRecord maps a vacancy onto the common record. Vacancies paid in
// another currency, or with both payment bounds zero, are dropped.
func superJobRecord(v SuperJobVacancy) (models.VacancyRecord, bool) {
	if v.Currency != superJobRoubles {
		return models.VacancyRecord{}, false
	}

	from, to := positive(v.PaymentFrom), positive(v.PaymentTo)
	if from == nil && to == nil {
		return models.VacancyRecord{}, false
	}

	return models.VacancyRecord{
		ID:       strconv.Itoa(v.ID),
		Name:     v.Profession,
		Snippet:  utils.PlainText(v.Candidat),
		From:     from,
		To:       to,
		Currency: v.Currency,
	}, true
}
