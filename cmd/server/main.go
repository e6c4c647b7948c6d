package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/paveup/paveup/internal/api"
	"github.com/paveup/paveup/internal/classify"
	"github.com/paveup/paveup/internal/config"
	"github.com/paveup/paveup/internal/geo"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	generateConfig := flag.Bool("generate-config", false, "Generate a sample configuration file and exit")
	flag.Parse()

	if *generateConfig {
		if err := config.GenerateSample(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Sample configuration written to %s\n", *configPath)
		return
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.Logging)

	log.Info().
		Int("port", cfg.Server.Port).
		Str("classifier", cfg.Classifier.Provider).
		Msg("Starting PaveUp server")

	provider, err := classify.NewProvider(&cfg.Classifier)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize classifier provider")
	}
	adapter := classify.NewAdapter(provider, cfg.Classifier.CallsPerMinute)

	geocoder := geo.NewNominatimClient(&cfg.Geocoding)
	if !geocoder.Available() {
		log.Warn().Msg("Reverse geocoding disabled - address fields will stay empty")
	}

	var sink api.Sink = api.LogSink{}
	if cfg.Sink.Path != "" {
		sink = api.NewFileSink(cfg.Sink.Path)
		log.Info().Str("path", cfg.Sink.Path).Msg("Emitting accepted reports to file")
	}

	handler := api.NewHandler(adapter, geocoder, sink, cfg.Classifier.MaxImageBytes, cfg.Classifier.DefaultLanguage)
	router := api.NewRouter(cfg, handler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func setupLogging(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
