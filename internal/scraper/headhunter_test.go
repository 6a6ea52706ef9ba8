package scraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
)

// headHunterServer serves the given pages in order of the "page" parameter
func headHunterServer(t *testing.T, pages []HeadHunterResponse, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/vacancies", r.URL.Path)

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if !assert.NoError(t, err) || page >= len(pages) {
			http.Error(w, "page out of range", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(pages[page]))
	}))
}

func rur(from, to *float64) *HeadHunterSalary {
	return &HeadHunterSalary{From: from, To: to, Currency: "RUR"}
}

func TestHeadHunter_SinglePage(t *testing.T) {
	var calls int32
	srv := headHunterServer(t, []HeadHunterResponse{
		{
			Found: 50,
			Pages: 1,
			Items: []HeadHunterVacancy{
				{ID: "1", Name: "Go developer", Salary: rur(models.Float(100000), nil)},
				{ID: "2", Name: "Go lead"},
			},
		},
	}, &calls)
	defer srv.Close()

	hh := NewHeadHunter(client.CreateHTTPClient(0), HeadHunterOptions{BaseURL: srv.URL, Area: 1, Period: 3}, nil)

	got, err := hh.FetchLanguageVacancies(context.Background(), "Go")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 50, got.Found)
	assert.Equal(t, 2, got.Fetched)
	assert.Equal(t, 1, got.Pages)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "1", got.Records[0].ID)
	assert.Equal(t, 100000.0, *got.Records[0].From)
	assert.Nil(t, got.Records[0].To)
}

func TestHeadHunter_AllPagesFetched(t *testing.T) {
	var calls int32
	pages := []HeadHunterResponse{
		{Found: 5, Pages: 3, Items: []HeadHunterVacancy{
			{ID: "1", Salary: rur(models.Float(100000), models.Float(200000))},
			{ID: "2", Salary: &HeadHunterSalary{From: models.Float(3000), Currency: "USD"}},
		}},
		{Found: 5, Pages: 3, Items: []HeadHunterVacancy{
			{ID: "3", Salary: rur(nil, models.Float(90000))},
			{ID: "4", Salary: rur(nil, nil)},
		}},
		{Found: 5, Pages: 3, Items: []HeadHunterVacancy{
			{ID: "5", Salary: rur(models.Float(0), models.Float(0))},
		}},
	}
	srv := headHunterServer(t, pages, &calls)
	defer srv.Close()

	hh := NewHeadHunter(client.CreateHTTPClient(0), HeadHunterOptions{BaseURL: srv.URL}, nil)

	got, err := hh.FetchLanguageVacancies(context.Background(), "Python")
	require.NoError(t, err)

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, 3, got.Pages)
	assert.Equal(t, 5, got.Fetched)
	assert.Equal(t, 5, got.Found)

	ids := make([]string, 0, len(got.Records))
	for _, r := range got.Records {
		ids = append(ids, r.ID)
		assert.Equal(t, "RUR", r.Currency)
	}
	assert.Equal(t, []string{"1", "3"}, ids)
	assert.LessOrEqual(t, len(got.Records), got.Fetched)
}

func TestHeadHunter_ZeroPages(t *testing.T) {
	var calls int32
	srv := headHunterServer(t, []HeadHunterResponse{{Found: 0, Pages: 0}}, &calls)
	defer srv.Close()

	hh := NewHeadHunter(client.CreateHTTPClient(0), HeadHunterOptions{BaseURL: srv.URL}, nil)

	got, err := hh.FetchLanguageVacancies(context.Background(), "Ruby")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 0, got.Found)
	assert.Empty(t, got.Records)
}

func TestHeadHunter_RequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Программист Go", q.Get("text"))
		assert.Equal(t, "1", q.Get("area"))
		assert.Equal(t, "3", q.Get("period"))
		assert.Equal(t, "0", q.Get("page"))
		assert.Equal(t, "*/*", r.Header.Get("Accept"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Write([]byte(`{"found": 0, "pages": 0, "items": []}`))
	}))
	defer srv.Close()

	hh := NewHeadHunter(client.CreateHTTPClient(0), HeadHunterOptions{
		BaseURL:      srv.URL + "/",
		SearchPrefix: "Программист",
		Area:         1,
		Period:       3,
		UserAgent:    "test-agent",
	}, nil)

	_, err := hh.FetchLanguageVacancies(context.Background(), "Go")
	require.NoError(t, err)
}

func TestHeadHunter_ProviderErrorAbortsLanguage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"found": 40, "pages": 2, "items": [{"id": "1", "salary": {"from": 1000, "to": null, "currency": "RUR"}}]}`))
	}))
	defer srv.Close()

	hh := NewHeadHunter(client.CreateHTTPClient(0), HeadHunterOptions{BaseURL: srv.URL}, nil)

	got, err := hh.FetchLanguageVacancies(context.Background(), "Java")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, client.IsProviderError(err))
}

func TestHeadHunterRecord_Snippet(t *testing.T) {
	v := HeadHunterVacancy{ID: "9", Name: "PHP developer", Salary: rur(models.Float(80000), nil)}
	v.Snippet.Requirement = "Знание <highlighttext>PHP</highlighttext> 8"

	rec, ok := headHunterRecord(v)
	require.True(t, ok)
	assert.Equal(t, "Знание PHP 8", rec.Snippet)
}
