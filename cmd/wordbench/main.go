/*
Package main runs wordbench, a prefix autocomplete engine that loads one
dictionary into several index structures and compares them.

# Usage

Serve completions over msgpack IPC on stdin/stdout (the default):

	wordbench -dict data/words.csv

Serve the HTTP endpoint used by browser frontends:

	wordbench -dict data/words.csv -http :7000

Compare the trie and the ternary search tree on one prefix:

	wordbench -dict data/words.csv -bench prog -limit 5

Query every index interactively:

	wordbench -dict data/words.csv -c -index trie,tst,patricia

Dictionaries are read from .csv (word,count), .txt/.tsv (word<TAB>freq)
or .bin files, or from a Redis sorted set with -redis. Any of them can be
converted to the binary format with -export.

# Configuration

Defaults are read from a TOML file, created on first run:

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	http_addr = ":7000"

	[dict]
	path = "data/words.csv"
	indices = ["trie", "tst"]

Flags override the file.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bastiangx/wordbench/internal/cli"
	"github.com/bastiangx/wordbench/internal/logger"
	"github.com/bastiangx/wordbench/pkg/bench"
	"github.com/bastiangx/wordbench/pkg/config"
	"github.com/bastiangx/wordbench/pkg/dictionary"
	"github.com/bastiangx/wordbench/pkg/server"
	"github.com/bastiangx/wordbench/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "wordbench"
	gh      = "https://github.com/bastiangx/wordbench"
)

// sigHandler exits normally on interrupt for the blocking stdin modes.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a TOML config file")
	dictPath := flag.String("dict", "", "Dictionary file (.csv, .txt, .tsv or .bin)")
	redisURL := flag.String("redis", "", "Redis URL to read the dictionary sorted set from")
	redisKey := flag.String("redis-key", "", "Redis sorted set holding the dictionary")
	indexList := flag.String("index", "", "Comma separated indices to build: trie, tst, patricia")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive CLI")
	httpAddr := flag.String("http", "", "Serve HTTP on this address instead of IPC")
	ipcMode := flag.Bool("ipc", false, "Serve msgpack IPC on stdin/stdout (default mode)")
	benchPrefix := flag.String("bench", "", "Build every index, query this prefix and compare")
	limit := flag.Int("limit", 0, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", 0, "Minimum prefix length for suggestions")
	maxPrefix := flag.Int("prmax", 0, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", defaults.CLI.DefaultNoFilter, "Disable input filtering in the CLI")
	exportPath := flag.String("export", "", "Write the loaded dictionary to this .bin file and exit")
	cacheSize := flag.Int("cache", -1, "Hot cache size per index (0 disables)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	cfg, usedPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(usedPath))
	applyFlags(cfg, *dictPath, *redisURL, *redisKey, *indexList, *httpAddr, *cacheSize)

	entries, err := loadEntries(cfg.Dict)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Debugf("Loaded %d dictionary entries", len(entries))

	if *exportPath != "" {
		if err := dictionary.SaveBinary(*exportPath, entries); err != nil {
			log.Fatalf("Failed to export dictionary: %v", err)
		}
		log.Infof("Wrote %d entries to %s", len(entries), *exportPath)
		return
	}

	kinds, err := suggest.ParseKinds(cfg.Dict.Indices)
	if err != nil {
		log.Fatalf("Invalid -index: %v", err)
	}
	if len(kinds) == 0 {
		kinds = []suggest.Kind{suggest.KindTrie}
	}

	hotCache := cfg.Dict.CacheSize
	if *benchPrefix != "" {
		hotCache = 0
	}
	indices, builds, err := bench.BuildSet(kinds, entries, hotCache)
	if err != nil {
		log.Fatalf("Failed to build indices: %v", err)
	}

	if *benchPrefix != "" {
		runBench(indices, builds, *benchPrefix, pick(*limit, cfg.CLI.DefaultLimit))
		return
	}

	if *cliMode {
		sigHandler()
		log.Debug("Input info:", "minPrefix", *minPrefix, "maxPrefix", *maxPrefix, "limit", *limit, "noFilter", *noFilter)
		handler := cli.NewInputHandler(indices,
			pick(*minPrefix, cfg.CLI.DefaultMinLen),
			pick(*maxPrefix, cfg.CLI.DefaultMaxLen),
			pick(*limit, cfg.CLI.DefaultLimit),
			*noFilter)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	if *httpAddr != "" && !*ipcMode {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.NewHTTPServer(indices, cfg, cfg.Server.HTTPAddr)
		showStartupInfo(kinds, len(entries), "http "+srv.Addr())
		if err := srv.Serve(ctx); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
		return
	}

	sigHandler()
	showStartupInfo(kinds, len(entries), "ipc")
	if err := server.NewServer(indices, cfg).Start(); err != nil {
		log.Fatalf("IPC server error: %v", err)
	}
}

// applyFlags lets non-empty flags override the loaded config.
func applyFlags(cfg *config.Config, dictPath, redisURL, redisKey, indexList, httpAddr string, cacheSize int) {
	if dictPath != "" {
		cfg.Dict.Path = dictPath
		cfg.Dict.RedisURL = ""
	}
	if redisURL != "" {
		cfg.Dict.RedisURL = redisURL
	}
	if redisKey != "" {
		cfg.Dict.RedisKey = redisKey
	}
	if indexList != "" {
		cfg.Dict.Indices = strings.Split(indexList, ",")
	}
	if httpAddr != "" {
		cfg.Server.HTTPAddr = httpAddr
	}
	if cacheSize >= 0 {
		cfg.Dict.CacheSize = cacheSize
	}
}

// loadEntries reads the configured dictionary, preferring Redis when a URL is set.
func loadEntries(dict config.DictConfig) ([]dictionary.Entry, error) {
	ctx := context.Background()

	var src dictionary.Source
	if dict.RedisURL != "" {
		client, err := dictionary.NewRedisClient(ctx, dict.RedisURL)
		if err != nil {
			return nil, err
		}
		defer client.Close()
		src = dictionary.RedisSource{Client: client, Key: dict.RedisKey}
	} else {
		fileSrc, err := dictionary.OpenSource(dict.Path)
		if err != nil {
			return nil, err
		}
		src = fileSrc
	}

	entries, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return dictionary.Dedupe(entries), nil
}

func runBench(indices *suggest.Set, builds []bench.BuildReport, prefix string, limit int) {
	prefix = dictionary.Normalize(prefix)
	queries := bench.QuerySet(indices, prefix, limit)

	fmt.Println(bench.BuildTable(builds))
	fmt.Println(bench.QueryTable(queries))
	for _, line := range bench.Compare(builds) {
		fmt.Println(line)
	}
}

// pick returns v when set, otherwise fallback.
func pick(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ wordbench ] prefix autocomplete, trie vs ternary search tree")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo logs what was loaded and where requests are served.
func showStartupInfo(kinds []suggest.Kind, words int, mode string) {
	current := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(current)

	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("words: %d, indices: %v", words, kinds)
	log.Infof("serving: %s", mode)
}
