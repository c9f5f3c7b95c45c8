package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strconv"

	"github.com/hoklam-ng/proclaim/app/announcements"
	"github.com/hoklam-ng/proclaim/app/bible"
	"github.com/hoklam-ng/proclaim/app/config"
	"github.com/hoklam-ng/proclaim/app/hymn"
	"github.com/hoklam-ng/proclaim/app/realtime"
	"github.com/hoklam-ng/proclaim/app/sermon"
	"github.com/hoklam-ng/proclaim/app/server"
	"github.com/spf13/pflag"
)

const defaultPort = 3000

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "load":
		runLoad()
	case "server":
		runServer()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: proclaim <command> [options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  load      Import verses from a CSV file into the verse database")
	fmt.Fprintln(os.Stderr, "  server    Start the proclaim server")
}

// portFromEnv returns the PORT environment variable, or the fixed default
// when unset.
func portFromEnv() int {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			return p
		}
		slog.Warn("ignoring non-numeric PORT environment variable", "value", v)
	}
	return defaultPort
}

func runLoad() {
	flags := pflag.NewFlagSet("load", pflag.ExitOnError)
	var input, dataDir string
	flags.StringVarP(&input, "input", "i", "", "Input CSV file (required)")
	flags.StringVarP(&dataDir, "data-dir", "d", "", "Data directory holding the verse database (required)")

	flags.Parse(os.Args[2:])

	if input == "" || dataDir == "" {
		fmt.Fprintln(os.Stderr, "Error: --input and --data-dir are required")
		os.Exit(1)
	}

	conf := readConfig(dataDir)

	db, err := bible.NewSQLiteDB(path.Join(dataDir, conf.DBFileOrDefault()))
	if err != nil {
		slog.Error("error while opening verse database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	store := bible.NewSQLiteVerseStore(db)
	n, err := bible.LoadCSV(context.Background(), store, input)
	if err != nil {
		slog.Error("error while importing verses", "imported", n, "err", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d verses\n", n)
}

func runServer() {
	flags := pflag.NewFlagSet("server", pflag.ExitOnError)
	var address, dataDir, certDir string
	var port, rateLimit, gzipLevel int
	var acme, behindLB bool
	flags.StringVarP(&address, "address", "a", "", "Server address to bind")
	flags.IntVarP(&port, "port", "p", portFromEnv(), "Server port to bind")
	flags.StringVarP(&dataDir, "data-dir", "d", "",
		"data directory to read config.json and the verse database")
	flags.StringVar(&certDir, "cert-dir", "", "TLS certificate directory")
	flags.BoolVar(&acme, "acme", false, "obtain TLS certificates via ACME")
	flags.IntVar(&rateLimit, "rate-limit", 0, "requests per second per client, 0 disables")
	flags.IntVar(&gzipLevel, "gzip", 0, "gzip compression level, 0 disables")
	flags.BoolVar(&behindLB, "behind-load-balancer", false, "trust X-Forwarded-For for client identity")

	flags.Parse(os.Args[2:])

	if dataDir == "" {
		slog.Error("--data-dir not provided, stopping")
		os.Exit(1)
	}

	conf := readConfig(dataDir)
	conf.DataDir = dataDir

	db, err := bible.NewSQLiteDB(path.Join(dataDir, conf.DBFileOrDefault()))
	if err != nil {
		// degraded mode: the server still starts, every verse query fails
		slog.Error("error while opening verse database", "err", err)
	} else if err := db.Ping(); err != nil {
		slog.Error("verse database is not reachable, starting degraded", "err", err)
	} else {
		slog.Info("connected to verse database")
	}

	hub := realtime.NewHub()
	holder := sermon.NewHolder(hub)
	store := bible.NewSQLiteVerseStore(db)

	controller := server.NewProclaimController(
		bible.NewService(store, holder, hub),
		hymn.NewService(hub),
		announcements.NewService(hub),
		holder,
		hub,
	)

	fmt.Printf("Starting server on %s:%d\n", address, port)
	fmt.Printf("Control panel: http://localhost:%d\n", port)
	fmt.Printf("Display page: http://localhost:%d/display\n", port)

	server.StartServer(controller, store, conf, config.ServerRuntimeConfig{
		Addr:               address,
		Port:               port,
		CertDir:            certDir,
		AcmeEnabled:        acme,
		RateLimit:          rateLimit,
		GzipLevel:          gzipLevel,
		BehindLoadBalancer: behindLB,
	})
}

// readConfig loads <dataDir>/config.json, falling back to defaults when the
// file does not exist.
func readConfig(dataDir string) *config.ProclaimConfig {
	conf := &config.ProclaimConfig{InstanceName: "Proclaim"}

	confFile, err := os.Open(path.Join(dataDir, "config.json"))
	if os.IsNotExist(err) {
		return conf
	}
	if err != nil {
		slog.Error("error while opening config.json", "err", err)
		os.Exit(1)
	}
	defer confFile.Close()

	if err := json.NewDecoder(confFile).Decode(conf); err != nil {
		slog.Error("error while reading config.json", "err", err)
		os.Exit(1)
	}
	return conf
}
