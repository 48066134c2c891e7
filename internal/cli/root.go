// Package cli implements the mirra command line client.
package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	mirra "github.com/mirra-ai/mirra-go"
	"github.com/mirra-ai/mirra-go/internal/config"
)

type rootFlags struct {
	APIKey  string
	BaseURL string
	Profile string
	Verbose bool
}

var rf rootFlags

func Execute() error {
	rootCmd := &cobra.Command{
		Use:           "mirra",
		Short:         "Command line client for the Mirra API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&rf.APIKey, "api-key", "", "Mirra API key (defaults to MIRRA_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&rf.BaseURL, "base-url", "", "API base URL override (defaults to MIRRA_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&rf.Profile, "profile", "", "path to a mirra.yaml profile (defaults to ~/.mirra/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&rf.Verbose, "verbose", "v", false, "log every request at debug level")

	rootCmd.AddCommand(agentsCmd())
	rootCmd.AddCommand(scriptsCmd())
	rootCmd.AddCommand(memoryCmd())
	rootCmd.AddCommand(aiCmd())
	rootCmd.AddCommand(resourcesCmd())
	rootCmd.AddCommand(templatesCmd())
	rootCmd.AddCommand(marketplaceCmd())
	rootCmd.AddCommand(mockCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd.Execute()
}

// profile is the on-disk CLI configuration file.
type profile struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

func loadProfile() (profile, error) {
	path := rf.Profile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return profile{}, nil
		}
		path = filepath.Join(home, ".mirra", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && rf.Profile == "" {
			return profile{}, nil
		}
		return profile{}, fmt.Errorf("read profile: %w", err)
	}

	var p profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}

// newClient builds a client from flags, env, and the profile file, in that
// order of precedence.
func newClient() (*mirra.Client, error) {
	_ = config.Load()

	prof, err := loadProfile()
	if err != nil {
		return nil, err
	}

	apiKey := rf.APIKey
	if apiKey == "" {
		apiKey = config.APIKey()
	}
	if apiKey == "" {
		apiKey = prof.APIKey
	}
	if apiKey == "" {
		return nil, fmt.Errorf("missing API key (use --api-key, MIRRA_API_KEY, or a profile file)")
	}

	baseURL := rf.BaseURL
	if baseURL == "" {
		baseURL = config.BaseURL()
	}
	if baseURL == "" {
		baseURL = prof.BaseURL
	}

	opts := []mirra.Option{
		mirra.WithHTTPClient(&http.Client{Timeout: config.HTTPTimeout()}),
	}
	if baseURL != "" {
		opts = append(opts, mirra.WithBaseURL(baseURL))
	}
	if rps := config.RateLimitRPS(); rps > 0 {
		opts = append(opts, mirra.WithRateLimit(rps, config.RateLimitBurst()))
	}
	if rf.Verbose {
		logger, err := newLogger("debug")
		if err != nil {
			return nil, err
		}
		opts = append(opts, mirra.WithLogger(logger))
	}

	return mirra.New(apiKey, opts...)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	cfg.Level = lvl
	return cfg.Build()
}

// printJSON renders any command result as indented JSON on stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// parseJSONMap parses a --metadata / --params style flag value.
func parseJSONMap(raw, flag string) (map[string]any, error) {
	if raw == "" {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("invalid JSON for --%s: %w", flag, err)
	}
	return m, nil
}
