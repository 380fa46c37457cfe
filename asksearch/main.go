package main

import (
	"asksearch/asksearch/config"
	"asksearch/asksearch/configs"
	"asksearch/asksearch/controllers"
	"asksearch/asksearch/routes"
	"asksearch/asksearch/services/llm"
	"asksearch/asksearch/utils/logging"
	"asksearch/asksearch/utils/metrics"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logging.InitLogger(logging.Options{Dir: cfg.LogDir, Console: cfg.LogConsole}); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logging.Sync()

	shutdownMetrics, err := metrics.Setup(context.Background(), metrics.ProviderOptions{
		Endpoint: cfg.MetricsEndpoint,
		Interval: cfg.MetricsInterval,
	})
	if err != nil {
		logging.ErrorLogger.Error("metrics setup error", zap.Error(err))
		os.Exit(1)
	}
	_ = metrics.Init()

	searchCfg, err := configs.LoadSearchConfig(cfg.PropertiesFile)
	if err != nil {
		logging.ErrorLogger.Error("search config error", zap.Error(err))
		os.Exit(1)
	}

	client := llm.NewOpenRouterClient(llm.ClientOptions{
		BaseURL: cfg.UpstreamBaseURL,
		Headers: searchCfg.Headers(),
		Timeout: cfg.UpstreamTimeout,
	})
	searchCtrl := controllers.NewSearchController(client, searchCfg, config.APIKey)
	healthCtrl := controllers.NewHealthController(config.APIKey)

	if config.APIKey() == "" {
		logging.AppLogger.Warn("no API key configured; searches will fail until " + config.APIKeyEnv + " is set")
	}

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: routes.NewRouter(searchCtrl, healthCtrl),
	}
	go func() {
		logging.AppLogger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("upstream", cfg.UpstreamBaseURL),
			zap.String("model", searchCfg.Model),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	if err := shutdownMetrics(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("metrics shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
