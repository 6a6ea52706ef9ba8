package scraper

import (
	"context"
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
	headHunterName    = "headhunter"
	headHunterAPIURL  = "https://api.hh.ru"
	headHunterRoubles = "RUR"
)

// HeadHunterResponse represents one page of the HeadHunter vacancy search
type HeadHunterResponse struct {
	Items   []HeadHunterVacancy `json:"items"`
	Found   int                 `json:"found"`
	Pages   int                 `json:"pages"`
	Page    int                 `json:"page"`
	PerPage int                 `json:"per_page"`
}

// HeadHunterVacancy represents a vacancy from HeadHunter
type HeadHunterVacancy struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Salary  *HeadHunterSalary `json:"salary"`
	Snippet struct {
		Requirement    string `json:"requirement"`
		Responsibility string `json:"responsibility"`
	} `json:"snippet"`
}

// HeadHunterSalary is the salary fork of a HeadHunter vacancy.
// Either bound may be null.
type HeadHunterSalary struct {
	From     *float64 `json:"from"`
	To       *float64 `json:"to"`
	Currency string   `json:"currency"`
	Gross    *bool    `json:"gross"`
}

// HeadHunterOptions configures the HeadHunter source
type HeadHunterOptions struct {
	BaseURL      string
	SearchPrefix string
	// Area is the HeadHunter region code, 1 is Moscow
	Area int
	// Period limits results to vacancies published within this many days
	Period    int
	UserAgent string
	Title     string
}

// HeadHunter searches the hh.ru public API. No authentication is required.
type HeadHunter struct {
	httpClient *http.Client
	opts       HeadHunterOptions
	log        *logger.Logger
}

// NewHeadHunter creates a HeadHunter source
func NewHeadHunter(httpClient *http.Client, opts HeadHunterOptions, log *logger.Logger) *HeadHunter {
	if opts.BaseURL == "" {
		opts.BaseURL = headHunterAPIURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = client.DefaultUserAgent
	}
	if opts.Title == "" {
		opts.Title = "HeadHunter"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &HeadHunter{httpClient: httpClient, opts: opts, log: log}
}

func (h *HeadHunter) Name() string  { return headHunterName }
func (h *HeadHunter) Title() string { return h.opts.Title }

// FetchLanguageVacancies requests pages 0..pages-1 as declared by the first
// response and keeps the vacancies paid in roubles. "pages" is a count, so
// no request is made for the index equal to it; such a request would only
// return an empty page or an error.
func (h *HeadHunter) FetchLanguageVacancies(ctx context.Context, language string) (*models.LanguageVacancies, error) {
	result := &models.LanguageVacancies{Language: language}

	for page := 0; ; page++ {
		resp, err := h.fetchPage(ctx, language, page)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s page %d: %w", language, page, err)
		}

		result.Pages++
		result.Found = resp.Found
		result.Fetched += len(resp.Items)

		for _, item := range resp.Items {
			if rec, ok := headHunterRecord(item); ok {
				result.Records = append(result.Records, rec)
			}
		}

		h.log.Debug().
			Str("provider", headHunterName).
			Str("language", language).
			Int("page", page).
			Int("pages", resp.Pages).
			Int("items", len(resp.Items)).
			Msg("page fetched")

		if page+1 >= resp.Pages || len(resp.Items) == 0 {
			break
		}
	}

	return result, nil
}

func (h *HeadHunter) fetchPage(ctx context.Context, language string, page int) (*HeadHunterResponse, error) {
	query := url.Values{}
	query.Set("text", searchPhrase(h.opts.SearchPrefix, language))
	query.Set("area", strconv.Itoa(h.opts.Area))
	query.Set("period", strconv.Itoa(h.opts.Period))
	query.Set("page", strconv.Itoa(page))

	headers := http.Header{}
	headers.Set("User-Agent", h.opts.UserAgent)
	headers.Set("Accept", "*/*")

	endpoint := strings.TrimRight(h.opts.BaseURL, "/") + "/vacancies"

	var resp HeadHunterResponse
	if err := client.GetJSON(ctx, h.httpClient, headHunterName, endpoint, query, headers, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// headHunterRecord maps a vacancy onto the common record. Vacancies without
// a salary, paid in another currency, or with no usable bound are dropped.
func headHunterRecord(v HeadHunterVacancy) (models.VacancyRecord, bool) {
	if v.Salary == nil || v.Salary.Currency != headHunterRoubles {
		return models.VacancyRecord{}, false
	}

	from, to := positive(v.Salary.From), positive(v.Salary.To)
	if from == nil && to == nil {
		return models.VacancyRecord{}, false
	}

	return models.VacancyRecord{
		ID:       v.ID,
		Name:     v.Name,
		Snippet:  utils.PlainText(v.Snippet.Requirement),
		From:     from,
		To:       to,
		Currency: v.Salary.Currency,
	}, true
}

// positive drops missing and non-positive bounds. The result never aliases
// the decoded response.
func positive(v *float64) *float64 {
	if v == nil || *v <= 0 {
		return nil
	}
	return models.Float(*v)
}
