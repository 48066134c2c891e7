package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mirra "github.com/mirra-ai/mirra-go"
	"github.com/mirra-ai/mirra-go/internal/mirratest"
)

// mockCmd serves a local fake Mirra API for offline development. Point
// the CLI or SDK at it with --base-url.
func mockCmd() *cobra.Command {
	var addr, apiKey string
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Run a local fake Mirra API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger("info")
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			server := mirratest.New(apiKey)
			seedMock(server)

			srv := &http.Server{
				Addr:    addr,
				Handler: server.Handler(),
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("mock server starting",
					zap.String("addr", addr),
					zap.String("api_key", apiKey),
				)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-quit:
			}
			logger.Info("shutting down mock server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8787", "listen address")
	cmd.Flags().StringVar(&apiKey, "mock-api-key", "local-dev-key", "API key the mock server accepts")
	return cmd
}

// seedMock gives the fake server a small catalog so list/browse commands
// return something.
func seedMock(server *mirratest.Server) {
	pgDesc := "Managed PostgreSQL resource"
	server.SeedResource(mirra.Resource{
		ID:          "res_postgres",
		Name:        "postgres",
		Description: &pgDesc,
		Type:        "database",
		Status:      mirra.ResourceStatusActive,
	})

	tplDesc := "Customer support agent with FAQ memory"
	tplCategory := "support"
	server.SeedTemplate(mirra.Template{
		ID:          "tpl_support",
		Name:        "Support Starter",
		Description: &tplDesc,
		Category:    &tplCategory,
		Components:  mirra.TemplateComponents{Agents: []string{"support-agent"}},
	})

	rating := 4.6
	installs := 1200
	server.SeedMarketplaceItem(mirra.MarketplaceItem{
		ID:       "mkt_support",
		Name:     "Support Starter",
		Type:     mirra.MarketplaceTypeTemplate,
		Author:   "mirra",
		Rating:   &rating,
		Installs: &installs,
	})
}
