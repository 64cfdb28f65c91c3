package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"playembed/internal/cache"
	"playembed/internal/config"
	"playembed/internal/embed"
	"playembed/internal/feed"
	"playembed/internal/server"
	"playembed/internal/transcript"
)

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func usage() {
	fmt.Println("Usage: playembed [command] [options]")
	fmt.Println("Commands: server, resolve, transcript")
	fmt.Println("\nFor command-specific options, use: playembed [command] -h")
}

func main() {
	cfg := config.DefaultConfig()

	serverCmd := flag.NewFlagSet("server", flag.ExitOnError)
	serverCmd.StringVar(&cfg.DBPath, "db", config.GetEnvString("PLAYEMBED_DB_PATH", config.DefaultDBPath),
		"Path to the SQLite feed cache file (env: PLAYEMBED_DB_PATH)")
	serverCmd.StringVar(&cfg.ServerHost, "host", config.GetEnvString("PLAYEMBED_HOST", config.DefaultServerHost),
		"Host to bind the server to (env: PLAYEMBED_HOST)")
	serverCmd.IntVar(&cfg.ServerPort, "port", config.GetEnvInt("PLAYEMBED_PORT", config.DefaultServerPort),
		"Port to listen on (env: PLAYEMBED_PORT)")
	serverCmd.DurationVar(&cfg.FeedTTL, "feed-ttl", config.GetEnvDuration("PLAYEMBED_FEED_TTL", config.DefaultFeedTTL),
		"Freshness window for cached feeds (env: PLAYEMBED_FEED_TTL)")

	var serverLogLevelStr string
	serverCmd.StringVar(&serverLogLevelStr, "log-level", "",
		"Log level: debug, info, warn, error (env: PLAYEMBED_LOG_LEVEL)")

	resolveCmd := flag.NewFlagSet("resolve", flag.ExitOnError)
	var (
		resolveFeed     string
		resolveGUID     string
		resolvePlaylist string
		resolveSeason   string
		resolveCategory string
	)
	resolveCmd.StringVar(&resolveFeed, "feed", "", "Feed URL to resolve (required)")
	resolveCmd.StringVar(&resolveGUID, "guid", "", "Episode guid to select")
	resolveCmd.StringVar(&resolvePlaylist, "playlist", "", "Playlist mode: true, all, or an item cap")
	resolveCmd.StringVar(&resolveSeason, "season", "", "Playlist season filter")
	resolveCmd.StringVar(&resolveCategory, "category", "", "Playlist category filter")

	transcriptCmd := flag.NewFlagSet("transcript", flag.ExitOnError)
	var transcriptURL string
	transcriptCmd.StringVar(&transcriptURL, "u", "", "Transcript URL to fetch and convert (required)")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "server":
		serverCmd.Parse(os.Args[2:])

		// The env-derived level is already in cfg; the flag overrides it.
		if serverLogLevelStr != "" {
			if level, err := zerolog.ParseLevel(serverLogLevelStr); err == nil {
				cfg.LogLevel = level
			}
		}
		zerolog.SetGlobalLevel(cfg.LogLevel)

		if err := runServer(cfg); err != nil {
			log.Error().Err(err).Msg("Server failed")
			os.Exit(1)
		}

	case "resolve":
		resolveCmd.Parse(os.Args[2:])

		if resolveFeed == "" {
			fmt.Println("resolve: -feed is required")
			os.Exit(1)
		}

		embedCfg := embed.Config{
			FeedURL:          resolveFeed,
			EpisodeGUID:      resolveGUID,
			ShowPlaylist:     embed.ParsePlaylistMode(resolvePlaylist),
			PlaylistCategory: resolveCategory,
		}
		if resolveSeason != "" {
			if season, err := strconv.Atoi(resolveSeason); err == nil {
				embedCfg.PlaylistSeason = &season
			}
		}

		if err := runResolve(cfg, embedCfg); err != nil {
			log.Error().Err(err).Msg("Resolve failed")
			os.Exit(1)
		}

	case "transcript":
		transcriptCmd.Parse(os.Args[2:])

		if transcriptURL == "" {
			fmt.Println("transcript: -u is required")
			os.Exit(1)
		}

		if err := runTranscript(cfg, transcriptURL); err != nil {
			log.Error().Err(err).Msg("Transcript conversion failed")
			os.Exit(1)
		}

	case "-h", "--help", "help":
		usage()
		os.Exit(0)

	default:
		log.Error().Str("command", os.Args[1]).Msg("Unknown command")
		usage()
		os.Exit(1)
	}
}

// runServer starts the HTTP service with the feed cache and its sweeper.
func runServer(cfg *config.Config) error {
	fetcher := feed.NewFetcher(cfg.UserAgent, cfg.RequestTimeout)

	var store *cache.Store
	if cfg.CacheEnabled {
		var err error
		store, err = cache.Open(cfg.DBPath)
		if err != nil {
			log.Error().Err(err).Str("path", cfg.DBPath).Msg("Failed to open feed cache")
			return fmt.Errorf("failed to open feed cache: %w", err)
		}
		defer store.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go store.Sweep(ctx, cfg.SweepInterval, cfg.FeedTTL)
	} else {
		log.Info().Msg("Feed cache disabled")
	}

	feeds := feed.NewService(fetcher, store, cfg.FeedTTL)
	transcriptClient := &http.Client{Timeout: cfg.RequestTimeout}

	return server.RunServer(feeds, transcriptClient, cfg.ListenAddr(), log.Logger)
}

// runResolve fetches one feed and prints the composed embed data as JSON.
func runResolve(cfg *config.Config, embedCfg embed.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	fetcher := feed.NewFetcher(cfg.UserAgent, cfg.RequestTimeout)
	f, err := fetcher.Fetch(ctx, embedCfg.FeedURL)
	if err != nil {
		return err
	}

	data := embed.Compose(f, embedCfg)

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal embed data: %w", err)
	}

	fmt.Println(string(out))
	return nil
}

// runTranscript fetches one transcript and prints the WebVTT rendition.
func runTranscript(cfg *config.Config, u string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("invalid transcript URL: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	client := &http.Client{Timeout: cfg.RequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("transcript request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("transcript upstream returned HTTP status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read transcript body: %w", err)
	}

	fmt.Print(transcript.Convert(resp.Header.Get("Content-Type"), string(body)))
	return nil
}
