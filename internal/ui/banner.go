package ui

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

const bannerText = `
 _                                _
| | __ _ _ __   __ _ ___  __ _| | __ _ _ __ _   _
| |/ _' | '_ \ / _' / __|/ _' | |/ _' | '__| | | |
| | (_| | | | | (_| \__ \ (_| | | (_| | |  | |_| |
|_|\__,_|_| |_|\__, |___/\__,_|_|\__,_|_|   \__, |
               |___/                        |___/
 programming language salaries: hh.ru / superjob.ru
`

// ColorizeText applies a random colour fade to the input text
func ColorizeText(text string) string {
	random := rand.New(rand.NewSource(time.Now().UnixNano()))

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	endColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	chars := strings.Split(text, "")
	steps := float32(len(chars))

	var b strings.Builder
	for i, ch := range chars {
		b.WriteString(startColor.Fade(0, steps, float32(i), endColor).Sprint(ch))
	}
	return b.String()
}

// PrintBanner writes the application banner to w unless silenced
func PrintBanner(w io.Writer, silence bool) {
	if silence {
		return
	}
	fmt.Fprintln(w, ColorizeText(bannerText))
}

// ColorizeSalary formats a rouble salary and colours it by size
func ColorizeSalary(salary int) string {
	formatted := utils.FormatSalary(salary)

	switch {
	case salary >= 300000:
		return pterm.Green(formatted)
	case salary >= 200000:
		return pterm.LightGreen(formatted)
	case salary >= 100000:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}
