package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dustin/go-humanize"
)

// Source names accepted by -source
const (
	SourceHeadHunter = "hh"
	SourceSuperJob   = "sj"
)

// IsValidSource checks if the source is supported
func IsValidSource(source string) bool {
	validSources := map[string]bool{
		SourceHeadHunter: true,
		"headhunter":     true,
		SourceSuperJob:   true,
		"superjob":       true,
	}
	return validSources[strings.ToLower(source)]
}

// NormalizeSource maps source aliases to their short name
func NormalizeSource(source string) string {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case SourceHeadHunter, "headhunter":
		return SourceHeadHunter
	case SourceSuperJob, "superjob":
		return SourceSuperJob
	default:
		return ""
	}
}

// FormatSalary formats a whole-rouble salary with thousands separators
func FormatSalary(salary int) string {
	return humanize.Comma(int64(salary))
}

// PlainText strips HTML markup (e.g. <highlighttext>) from provider snippets
// and collapses whitespace.
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}

// SplitList splits a comma-separated list, trimming blanks and dropping empties
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
