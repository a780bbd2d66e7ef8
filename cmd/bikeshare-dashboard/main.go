package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrissnell/bikeshare/internal/app"
	"github.com/chrissnell/bikeshare/internal/constants"
	"github.com/chrissnell/bikeshare/internal/log"
	"github.com/chrissnell/bikeshare/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "", "Path to YAML configuration file (optional)")
	dataFile := flag.String("data", "", "Path to the dataset (CSV or SQLite); overrides dataset.path")
	listen := flag.String("listen", "", "Listen address; overrides server.listen-addr")
	port := flag.Int("port", 0, "HTTP port; overrides server.port")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("bikeshare-dashboard %s\n", constants.Version)
		os.Exit(0)
	}

	cfgData, err := loadConfig(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *dataFile != "" {
		cfgData.Dataset.Path = *dataFile
	}
	if *listen != "" {
		cfgData.Server.ListenAddr = *listen
	}
	if *port != 0 {
		cfgData.Server.Port = *port
	}
	if err := cfgData.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\nRun with -h for help\n", err)
		os.Exit(1)
	}

	if err := log.InitWithFile(*debug, log.FileOptions{
		Path:       cfgData.Log.File,
		MaxSizeMB:  cfgData.Log.MaxSizeMB,
		MaxBackups: cfgData.Log.MaxBackups,
		MaxAgeDays: cfgData.Log.MaxAgeDays,
	}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	application := app.New(cfgData)
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		log.Sync()
		os.Exit(1)
	}
}

func loadConfig(cfgFile string) (*config.ConfigData, error) {
	if cfgFile == "" {
		return config.DefaultConfig(), nil
	}

	filename, _ := filepath.Abs(cfgFile)
	provider := config.NewYAMLProvider(filename)
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}
	return cfgData, nil
}
