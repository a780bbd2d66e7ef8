package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/chrissnell/bikeshare/internal/app"
	"github.com/chrissnell/bikeshare/internal/chart"
	"github.com/chrissnell/bikeshare/internal/constants"
	"github.com/chrissnell/bikeshare/internal/filter"
	"github.com/chrissnell/bikeshare/internal/log"
	"github.com/chrissnell/bikeshare/internal/report"
	"github.com/chrissnell/bikeshare/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "", "Path to YAML configuration file (optional)")
	dataFile := flag.String("data", "", "Path to the dataset (CSV or SQLite); overrides dataset.path")
	outDir := flag.String("out", "report", "Output directory for charts and report.md")
	format := flag.String("format", "png", "Chart format: png or svg")
	locale := flag.String("locale", "", "Narrative language: en or id; overrides dashboard.locale")
	start := flag.String("start", "", "First day of the range (YYYY-MM-DD)")
	end := flag.String("end", "", "Last day of the range (YYYY-MM-DD)")
	season := flag.String("season", "all", "Season: all, winter, spring, summer, fall or 1-4")
	weather := flag.String("weather", "all", "Weather: all, clear, cloudy, rain or 1-3")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("bikeshare-report %s\n", constants.Version)
		os.Exit(0)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfgData := config.DefaultConfig()
	if *cfgFile != "" {
		filename, _ := filepath.Abs(*cfgFile)
		var err error
		if cfgData, err = config.NewYAMLProvider(filename).LoadConfig(); err != nil {
			log.Errorf("Failed to load configuration: %v", err)
			os.Exit(1)
		}
	}
	if *dataFile != "" {
		cfgData.Dataset.Path = *dataFile
	}
	if *locale != "" {
		cfgData.Dashboard.Locale = *locale
	}
	if err := cfgData.Validate(); err != nil {
		log.Errorf("Invalid configuration: %v", err)
		os.Exit(1)
	}

	chartFormat, err := chart.ParseFormat(*format)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	sel, err := filter.ParseQuery(url.Values{
		"start":   {*start},
		"end":     {*end},
		"season":  {*season},
		"weather": {*weather},
	})
	if err != nil {
		log.Errorf("Invalid selection: %v", err)
		os.Exit(1)
	}

	dash, err := app.LoadDashboard(context.Background(), cfgData)
	if err != nil {
		log.Errorf("Failed to load dataset: %v", err)
		os.Exit(1)
	}

	view := dash.Build(sel)
	renderer := chart.NewRenderer()
	renderer.NoDataText = dash.NoDataText()

	written, err := report.Write(*outDir, view, renderer, chartFormat)
	if err != nil {
		log.Errorf("Failed to write report: %v", err)
		os.Exit(1)
	}

	for _, path := range written {
		fmt.Println(path)
	}
	log.Infof("report for cycle %s written to %s", view.Cycle, *outDir)
}
