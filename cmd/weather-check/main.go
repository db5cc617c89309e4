package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-check/config"
	v1 "weather-check/internal/controllers/http/v1"
	"weather-check/internal/models"
	"weather-check/internal/repositories"
	"weather-check/internal/services/viewstate"
	"weather-check/internal/services/weather"
	"weather-check/pkg/httpserver"
	"weather-check/pkg/logger"
	"weather-check/pkg/observe"
)

// @title Weather Check API
// @version 1.0.0
// @description Geocodes a location, fetches the next 24 hours of hourly forecast and summarises temperature, humidity and wind.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Stateless forecast and summary operations
// @tag.name View
// @tag.description Shared view state driven by searches
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	hook := observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.Sentry.Debug, cnf.Sentry.DSN)

	l := logger.NewFormattedZapLogger(cnf.App.Name, cnf.Log.Format, os.Stdout, hook).WithEnv(cnf.App.Env)
	if err := l.SetLevel(cnf.Log.Level); err != nil {
		l.Warning("unknown log level, keeping info", map[string]any{"level": cnf.Log.Level})
	}
	hook.SetLogger(l)

	repos, err := repositories.InitWeatherRepositories(cnf, l)
	if err != nil {
		l.Fatal("cannot init weather repositories", map[string]any{"err": err.Error()})
	}

	service := weather.NewWeatherService(repos, l)

	controller := viewstate.NewController(service, l, viewstate.Options{
		DefaultLocation: models.LocationQuery{
			Name:    cnf.Weather.DefaultLocation,
			Country: cnf.Weather.DefaultCountry,
		},
		RequestTimeout: cnf.Weather.RequestTimeoutDuration(),
	})

	serverOpts := httpserver.Options{
		AppName:      cnf.App.Name,
		ReadTimeout:  cnf.Server.ReadTimeoutDuration(),
		WriteTimeout: cnf.Server.WriteTimeoutDuration(),
		IdleTimeout:  cnf.Server.IdleTimeoutDuration(),
		Ready:        controller.Mounted,
		StackTrace:   cnf.IsDevelopment(),
	}
	if cnf.Server.AccessLog {
		serverOpts.AccessLog = l
	}
	app := httpserver.InitFiberServer(serverOpts)

	v1.NewRouter(
		app,
		service,
		controller,
		l,
	)

	go func() {
		if _, err := controller.Mount(ctx); err != nil {
			l.Warning("initial search failed", map[string]any{
				"location": cnf.Weather.DefaultLocation,
				"kind":     string(models.KindOf(err)),
			})
		}
	}()

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err.Error()})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":    cnf.Server.Port,
		"version": cnf.App.Version,
		"sentry":  hook.Enabled(),
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		controller.Close()
		_ = app.ShutdownWithContext(shutdownCtx)
		if cache, ok := repos.Geocoder.(repositories.CacheStatsReporter); ok {
			stats := cache.CacheStats()
			l.Info("geocode cache stats", map[string]any{
				"hits":    stats.Hits,
				"misses":  stats.Misses,
				"entries": stats.Entries,
			})
		}
		hook.Flush()
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
