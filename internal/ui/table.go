package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

// Output formats accepted by -format
const (
	FormatTable    = "table"
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatHTML     = "html"
)

var header = []string{
	"Язык программирования",
	"Вакансий найдено",
	"Вакансий обработано",
	"Средняя зарплата",
}

// IsValidFormat checks if the output format is supported
func IsValidFormat(format string) bool {
	switch format {
	case FormatTable, FormatText, FormatMarkdown, FormatCSV, FormatHTML:
		return true
	}
	return false
}

// RenderTable renders provider statistics as a boxed pterm table titled
// with the provider name and city.
func RenderTable(stats *models.Statistics) (string, error) {
	data := pterm.TableData{header}
	for _, l := range stats.Languages {
		data = append(data, []string{
			l.Language,
			strconv.Itoa(l.VacanciesFound),
			strconv.Itoa(l.VacanciesProcessed),
			ColorizeSalary(l.AverageSalary),
		})
	}

	rendered, err := pterm.DefaultTable.
		WithHasHeader().
		WithData(data).
		Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render %s table: %w", stats.Provider, err)
	}

	if len(stats.Skipped) > 0 {
		rendered += "\n" + pterm.Gray("Нет данных о зарплатах: "+strings.Join(stats.Skipped, ", "))
	}

	return pterm.DefaultBox.WithTitle(stats.Title).Sprint(rendered), nil
}

// Export renders provider statistics in a machine-friendly format
func Export(stats *models.Statistics, format string) (string, error) {
	t := table.NewWriter()
	t.SetTitle("%s", stats.Title)
	t.AppendHeader(table.Row{header[0], header[1], header[2], header[3]})

	for _, l := range stats.Languages {
		t.AppendRow(table.Row{
			l.Language,
			l.VacanciesFound,
			l.VacanciesProcessed,
			l.AverageSalary,
		})
	}

	if len(stats.Skipped) > 0 {
		t.SetCaption("no salary data: %s", strings.Join(stats.Skipped, ", "))
	}

	switch format {
	case FormatMarkdown:
		return t.RenderMarkdown(), nil
	case FormatCSV:
		return t.RenderCSV(), nil
	case FormatHTML:
		return t.RenderHTML(), nil
	case FormatText:
		t.SetStyle(table.StyleLight)
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 4, Transformer: func(val interface{}) string {
				if v, ok := val.(int); ok {
					return utils.FormatSalary(v)
				}
				return fmt.Sprint(val)
			}},
		})
		return t.Render(), nil
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
}

// snippetWidth wraps requirement snippets in the vacancy listing
const snippetWidth = 60

// RenderVacancies lists the sampled vacancies behind each average.
// It returns an empty string when no samples were kept.
func RenderVacancies(stats *models.Statistics) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle("%s: вакансии", stats.Title)
	t.AppendHeader(table.Row{header[0], "Вакансия", "Оценка зарплаты", "Требования"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, Transformer: func(val interface{}) string {
			if v, ok := val.(int); ok {
				return utils.FormatSalary(v)
			}
			return fmt.Sprint(val)
		}},
		{Number: 4, WidthMax: snippetWidth, WidthMaxEnforcer: text.WrapSoft},
	})

	rows := 0
	for _, l := range stats.Languages {
		for _, v := range l.Samples {
			t.AppendRow(table.Row{l.Language, v.Name, v.Estimate, v.Snippet})
			rows++
		}
	}
	if rows == 0 {
		return ""
	}
	return t.Render()
}
