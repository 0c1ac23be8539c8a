package ifcalc

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/api"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/app"
	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/store"
)

var (
	serveListen string
	serveDebug  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner and tracker as a local JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !serveDebug {
			gin.SetMode(gin.ReleaseMode)
		}
		return withStore(cmd, func(ctx context.Context, kv store.Store, cfg app.Config) error {
			addr := cfg.ListenAddr
			if serveListen != "" {
				addr = serveListen
			}
			router := api.NewRouter(api.RouterDependencies{
				Store:          kv,
				StartTime:      time.Now(),
				AllowedOrigins: cfg.CORSOrigins,
			})
			srv := &http.Server{
				Addr:         addr,
				Handler:      router,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  120 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Printf("[SERVER] ifcalc API listening on http://%s (store: %s)", addr, cfg.Store)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			log.Println("[SERVER] Stop signal received. Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			log.Println("[SERVER] Server stopped gracefully.")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (overrides IFCALC_LISTEN)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Run gin in debug mode")
}
