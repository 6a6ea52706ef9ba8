package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/logger"
	"github.com/fr4nk3nst1ner/langsalary/internal/ui"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

// printExamples displays usage examples for the program
func printExamples() {
	fmt.Println("\n📋 langsalary Usage Examples 📋")
	fmt.Println("\n1. Compare both job boards for the default language list (needs SUPERJOB_TOKEN):")
	fmt.Println("   langsalary")

	fmt.Println("\n2. Only query HeadHunter, no token needed:")
	fmt.Println("   langsalary -source hh")

	fmt.Println("\n3. Check a custom set of languages and silence the banner:")
	fmt.Println("   langsalary -languages \"Go,Rust,Kotlin\" -silence")

	fmt.Println("\n4. Export the tables as Markdown:")
	fmt.Println("   langsalary -format markdown > salaries.md")

	fmt.Println("\n5. Use a config file and a proxy, with request-level logging:")
	fmt.Println("   langsalary -config config.yaml -proxy http://localhost:8080 -debug")

	fmt.Println("\n6. Show the vacancies behind each average:")
	fmt.Println("   langsalary -source hh -languages Go -verbose")
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (default: ./config.yaml if present)")
	source := flag.String("source", "", "Source to query (hh, sj). If not specified, queries both.")
	languages := flag.String("languages", "", "Comma-separated list of languages, overrides the config")
	format := flag.String("format", ui.FormatTable, "Output format: table, text, markdown, csv, html")
	debug := flag.Bool("debug", false, "Enable debug logging")
	proxyURL := flag.String("proxy", "", "Proxy URL to use")
	examples := flag.Bool("examples", false, "Show usage examples")
	verbose := flag.Bool("verbose", false, "List sample vacancies under each table (table and text formats)")

	// Banner control flags (two aliases for the same functionality)
	silence := flag.Bool("silence", false, "Silence the banner")
	noBanner := flag.Bool("nobanner", false, "Silence the banner (alias for -silence)")

	flag.Parse()

	// reject bad flags before the banner takes the screen
	if err := validateFlags(*format, *source); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// machine-readable output must stay clean
	ui.PrintBanner(os.Stdout, *silence || *noBanner || *format != ui.FormatTable)

	if *examples {
		printExamples()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg, *source, *languages, *proxyURL, *debug)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	opts := runOptions{
		Format:   *format,
		Out:      os.Stdout,
		Progress: *format == ui.FormatTable && !*debug,
		Verbose:  *verbose,
	}

	// the progress bar owns stderr, info lines still reach the log file
	var logOpts []logger.Option
	if opts.Progress {
		logOpts = append(logOpts, logger.WithConsoleLevel("warn"))
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFile, logOpts...); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.Get()
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, opts); err != nil {
		log.Error().Err(err).Msg(failureMessage(err))
		stop()
		log.Close()
		os.Exit(1)
	}
}

// failureMessage tells network problems apart from provider rejections
func failureMessage(err error) string {
	switch {
	case client.IsTransportError(err):
		return "provider unreachable, check the network or -proxy"
	case client.IsProviderError(err):
		return "provider rejected the request"
	default:
		return "run failed"
	}
}

// validateFlags checks the flags that do not need the config
func validateFlags(format, source string) error {
	if !ui.IsValidFormat(format) {
		return fmt.Errorf("invalid format %q, must be one of: table, text, markdown, csv, html", format)
	}
	if source != "" && !utils.IsValidSource(source) {
		return errors.New("invalid source, must be one of: hh, sj")
	}
	return nil
}

// applyFlags layers command line overrides on top of the loaded config
func applyFlags(cfg *config.Config, source, languages, proxyURL string, debug bool) {
	switch utils.NormalizeSource(source) {
	case utils.SourceHeadHunter:
		cfg.HeadHunter.Enabled = true
		cfg.SuperJob.Enabled = false
	case utils.SourceSuperJob:
		cfg.SuperJob.Enabled = true
		cfg.HeadHunter.Enabled = false
	}

	if langs := utils.SplitList(languages); len(langs) > 0 {
		cfg.Languages = langs
	}
	if proxyURL != "" {
		cfg.Proxy = proxyURL
	}
	if debug {
		cfg.LogLevel = "debug"
	}
}
