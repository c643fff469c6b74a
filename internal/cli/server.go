package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"society-quiz-service/internal/app"
	"society-quiz-service/internal/config"
	"society-quiz-service/internal/infra/postgres"
	"society-quiz-service/internal/metrics"
	transport "society-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return runServer(ctx, *configPath, *port)
		},
	}
	cmd.Flags().StringVar(port, "port", os.Getenv("PORT"), "port to listen on (overrides server.port)")
	return cmd
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, logger, err := loadRuntime(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	b, err := openBackends(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	if b.db != nil {
		group, err := postgres.Migrate(ctx, b.db)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", zap.String("group", group.String()))
	}

	m := metrics.New()
	service := newService(cfg, b,
		app.WithFeed(app.NewLeaderboardFeed()),
		app.WithObserver(m),
		app.WithLogger(logger.Named("quiz")),
	)

	// Load the bank once so a broken questions source fails startup instead of the first request.
	if _, err := service.ListQuestions(ctx); err != nil {
		return err
	}

	addr := ":" + listenPort(portFlag, cfg)
	server := &http.Server{
		Addr: addr,
		Handler: transport.NewRouter(transport.RouterDeps{
			Service: service,
			Logger:  logger,
			Metrics: m,
			Checks:  b.checks,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting quiz service", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func listenPort(flag string, cfg config.Config) string {
	if flag != "" {
		return flag
	}
	if cfg.Server.Port != "" {
		return cfg.Server.Port
	}
	return "8080"
}
