package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrissnell/bikeshare/internal/app"
	"github.com/chrissnell/bikeshare/internal/dataset"
	"github.com/chrissnell/bikeshare/internal/types"
	"github.com/chrissnell/bikeshare/pkg/config"
)

// columnFlags holds the column name overrides given on the command line
type columnFlags struct {
	date, season, weather, weekday, count string
}

// convertOptions builds the dataset options shared by the CSV reader and the
// SQLite writer. Settings from the dataset section of cfgFile come first and
// non-empty flags override them, so the resulting table can be read back with
// the same configuration.
func convertOptions(cfgFile, table, dateLayout string, cols columnFlags) (dataset.Options, error) {
	var opts dataset.Options
	if cfgFile != "" {
		filename, _ := filepath.Abs(cfgFile)
		cfg, err := config.NewYAMLProvider(filename).LoadConfig()
		if err != nil {
			return opts, err
		}
		opts = app.DatasetOptions(cfg.Dataset)
	}

	if table != "" {
		opts.Table = table
	}
	if dateLayout != "" {
		opts.DateLayout = dateLayout
	}
	for _, o := range []struct {
		flag string
		dst  *string
	}{
		{cols.date, &opts.Columns.Date},
		{cols.season, &opts.Columns.Season},
		{cols.weather, &opts.Columns.Weather},
		{cols.weekday, &opts.Columns.Weekday},
		{cols.count, &opts.Columns.Count},
	} {
		if o.flag != "" {
			*o.dst = o.flag
		}
	}
	return opts, nil
}

func main() {
	var (
		csvFile    = flag.String("csv", "", "Path to the CSV dataset (required)")
		sqliteFile = flag.String("sqlite", "", "Path to the SQLite database to create (required)")
		cfgFile    = flag.String("config", "", "YAML configuration whose dataset section supplies table, date layout and columns")
		table      = flag.String("table", "", "Table to write (default \"day\")")
		dateLayout = flag.String("date-layout", "", "Layout of the date column (default \""+types.DateLayout+"\")")
		force      = flag.Bool("force", false, "Overwrite existing SQLite database")
		dryRun     = flag.Bool("dry-run", false, "Parse the CSV and show what would be written")
		cols       columnFlags
	)
	flag.StringVar(&cols.date, "date-column", "", "Name of the date column")
	flag.StringVar(&cols.season, "season-column", "", "Name of the season column")
	flag.StringVar(&cols.weather, "weather-column", "", "Name of the weather column")
	flag.StringVar(&cols.weekday, "weekday-column", "", "Name of the weekday column")
	flag.StringVar(&cols.count, "count-column", "", "Name of the count column")
	flag.Parse()

	if *csvFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -csv <day.csv> -sqlite <day.db>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if _, err := os.Stat(*sqliteFile); err == nil {
		if !*force {
			fmt.Fprintf(os.Stderr, "Error: SQLite file already exists: %s\n", *sqliteFile)
			fmt.Fprintf(os.Stderr, "Use -force to overwrite or choose a different filename\n")
			os.Exit(1)
		}
	}

	opts, err := convertOptions(*cfgFile, *table, *dateLayout, cols)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	tableName := opts.Table
	if tableName == "" {
		tableName = config.DefaultTable
	}

	fmt.Printf("Converting CSV dataset to SQLite...\n")
	fmt.Printf("  Source: %s\n", *csvFile)
	fmt.Printf("  Target: %s (table %s)\n", *sqliteFile, tableName)

	ds, err := dataset.LoadCSVFile(*csvFile, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading CSV dataset: %v\n", err)
		os.Exit(1)
	}

	min, max, ok := ds.Bounds()
	if ok {
		fmt.Printf("  Loaded %d records (%s to %s)\n", ds.Len(), min.Format(types.DateLayout), max.Format(types.DateLayout))
	} else {
		fmt.Printf("  Loaded 0 records\n")
	}

	if *dryRun {
		fmt.Println("DRY RUN complete - no database created")
		return
	}

	if *force {
		if err := os.Remove(*sqliteFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error removing existing SQLite file: %v\n", err)
			os.Exit(1)
		}
	}

	err = dataset.WriteSQLite(context.Background(), *sqliteFile, opts, ds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing SQLite database: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Conversion complete: %s\n", *sqliteFile)
}
