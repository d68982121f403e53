package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/lumiskin/lumiskin-cli/internal/cmd"
	"github.com/lumiskin/lumiskin-cli/internal/config"
	"github.com/lumiskin/lumiskin-cli/internal/logging"
	log "github.com/sirupsen/logrus"
)

func main() {
	var login bool
	var logout bool
	var status bool
	var watch bool
	var configPath string

	flag.BoolVar(&login, "login", false, "Authorize with the identity provider")
	flag.BoolVar(&logout, "logout", false, "Revoke the current session")
	flag.BoolVar(&status, "status", false, "Print stored credential status")
	flag.BoolVar(&watch, "watch", false, "Watch the config file and keep credentials in sync")
	flag.StringVar(&configPath, "config", "", "Configuration file path")

	flag.Parse()

	logging.SetupBaseLogger()

	if configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			log.Fatalf("failed to get working directory: %v", err)
		}
		configPath = filepath.Join(wd, "config.yaml")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	if err = logging.ConfigureLogOutput(cfg.LoggingToFile); err != nil {
		log.Fatalf("failed to configure logging: %v", err)
	}

	switch {
	case login:
		cmd.DoLogin(cfg)
	case logout:
		cmd.DoLogout(cfg)
	case status:
		cmd.DoStatus(cfg)
	case watch:
		cmd.DoWatch(cfg, configPath)
	default:
		cmd.DoToken(cfg)
	}
}
