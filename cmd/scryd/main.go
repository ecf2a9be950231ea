// Command scryd is the service entrypoint: it loads process configuration,
// builds the procedure registry from a compiled-in registrar list plus the
// configured manifest, and serves the SPARQL-compatible HTTP endpoint,
// following roach88-nysm's cobra-based cmd/ convention.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bas-stringer/scry/config"
	"github.com/bas-stringer/scry/httpapi"
	"github.com/bas-stringer/scry/logging"
	"github.com/bas-stringer/scry/procedures/math"
	"github.com/bas-stringer/scry/registry"
)

// compiledRegistrars is the fixed list of procedure families built into
// this binary. The manifest file names a subset of these to activate.
var compiledRegistrars = map[string]registry.Registrar{
	"math": math.Register,
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "scryd",
		Short: "scryd serves a SPARQL-compatible procedure-call endpoint",
		Long: "scryd synthesizes triples on the fly by invoking registered procedures " +
			"whose inputs and outputs are extracted from a SPARQL query's own triple patterns.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "scry.yaml", "path to the service configuration file")
	return cmd
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.EnsureLogDirectory(); err != nil {
		return fmt.Errorf("scryd: creating log directory: %w", err)
	}

	logger := logrus.New()
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	if cfg.LogDirectory != "" {
		logPath := cfg.LogDirectory + string(os.PathSeparator) + "scryd.log"
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("scryd: opening log file: %w", err)
		}
		defer logFile.Close()
		logger.SetOutput(logFile)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	reg := registry.NewRegistry()
	reg.SetServiceDescription(registry.ServiceDescription{
		Author:      cfg.OrbDescription.Author,
		Description: cfg.OrbDescription.Description,
		Provenance:  cfg.OrbDescription.Provenance,
		Version:     cfg.OrbDescription.Version,
	})
	if cfg.ServiceConfigFile != "" {
		if err := registry.LoadManifest(cfg.ServiceConfigFile, reg, compiledRegistrars); err != nil {
			return fmt.Errorf("scryd: loading registry manifest: %w", err)
		}
	} else {
		// No manifest configured: register every compiled-in family, the
		// way a fresh checkout with no service_config_file would otherwise
		// start with an empty, useless registry.
		for _, register := range compiledRegistrars {
			if err := register(reg); err != nil {
				return fmt.Errorf("scryd: registering built-in procedures: %w", err)
			}
		}
	}

	server := httpapi.New(reg, cfg, logging.New(logger))

	addr := cfg.BindAddress()
	logger.WithFields(logrus.Fields{
		"addr":       addr,
		"procedures": reg.Len(),
	}).Info("scryd listening")

	return http.ListenAndServe(addr, server)
}
