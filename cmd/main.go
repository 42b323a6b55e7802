package main

import (
	"flag"
	"os"

	"github.com/orcnighte/terminal-system/config"
	"github.com/orcnighte/terminal-system/internal/shell"
	"github.com/orcnighte/terminal-system/internal/tree"
	"github.com/orcnighte/terminal-system/internal/util"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		verbose    int
	)
	flag.StringVar(&configPath, "config", "", "Path to config file (yaml or json)")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.IntVar(&verbose, "verbose", 3, "Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", 3, "--verbose (shorthand)")
	flag.Parse()

	// Initialize logger
	if verbose < 1 {
		verbose = 1
	}
	if verbose > 5 {
		verbose = 5
	}
	logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	logLvl := logLvls[verbose-1]
	util.InitializeLogger(logLvl)
	logger := util.GetLogger("main")

	// Load config; the verbosity flag wins over any file value
	cfg := config.NewConfig(&config.ConfigOverride{LogLvl: &logLvl})
	if configPath != "" {
		loaded, err := config.NewConfigFromFile(configPath)
		if err != nil {
			logger.Fatal().Err(err).Str("config", configPath).Msg("Failed to load config file")
		}
		loaded.Merge(&config.ConfigOverride{LogLvl: &logLvl})
		cfg = loaded
		logger.Debug().Str("config", configPath).Msg("Config file loaded successfully")
	}

	logger.Info().Int("verbose", verbose).Strs("suffixes", cfg.FileSuffixes).Msg("Virtual filesystem shell initializing")

	t := tree.NewWithSuffixes(cfg.FileSuffixes)
	sh := shell.New(t, cfg, os.Stdin, os.Stdout)
	if err := sh.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Shell terminated with read error")
	}
}
