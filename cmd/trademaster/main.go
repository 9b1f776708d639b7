package main

import (
	"fmt"
	"os"
	"path/filepath"

	"trade-master/internal/cli"
	"trade-master/internal/config"
	"trade-master/internal/logging"
)

func main() {
	// The config directory has to be known before cobra parses anything,
	// so the --config flag is scanned out of the raw arguments here.
	configDir := flagValue(os.Args[1:], "--config")

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultLogConfig()
	logCfg.Level = cfg.Logs.Level
	logCfg.Console = cfg.Logs.Console
	logCfg.File = cfg.Logs.File
	logCfg.FilePath = filepath.Join(cfg.Storage.DataDir, "logs", "trademaster.log")
	logger := logging.NewLoggerWithConfig(logCfg)

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func flagValue(args []string, name string) string {
	for i, arg := range args {
		if arg == name && i+1 < len(args) {
			return args[i+1]
		}
		if len(arg) > len(name)+1 && arg[:len(name)+1] == name+"=" {
			return arg[len(name)+1:]
		}
	}
	return ""
}
