package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcusft/resume-matcher/internal/config"
	"github.com/marcusft/resume-matcher/internal/server"
)

var (
	serveConfigPath string
	servePort       int
	serveUseBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for resume and job intake and compatibility analysis.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Render SPA job boards in a headless browser when plain HTTP yields too little text")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveUseBrowser {
		cfg.UseBrowser = true
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(cmd.Context(), server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
		APIKey:      cfg.APIKey,
		UseBrowser:  cfg.UseBrowser,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// loadMergedConfig reads the optional config file and fills gaps from the
// environment.
func loadMergedConfig(path string) (config.Config, error) {
	fromEnv := config.FromEnv()
	if path == "" {
		return fromEnv.MergeWithDefaults(config.Config{}), nil
	}

	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, err
	}
	return fileCfg.MergeWithDefaults(fromEnv), nil
}
