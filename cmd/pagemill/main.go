package main

import (
	"fmt"
	"log"
	"os"

	"github.com/eringen/pagemill"
	"github.com/eringen/pagemill/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "build":
		outDir := "out"
		if len(os.Args) > 2 {
			outDir = os.Args[2]
		}
		if err := pagemill.Build(pagemill.ConfigFromEnv(), outDir); err != nil {
			log.Fatal(err)
		}
	case "index":
		dbPath := "data/meta.db"
		if len(os.Args) > 2 {
			dbPath = os.Args[2]
		}
		if err := pagemill.Index(pagemill.ConfigFromEnv(), dbPath); err != nil {
			log.Fatal(err)
		}
	case "preview":
		cfg := pagemill.ConfigFromEnv()
		if cfg.SessionSecret == "" {
			cfg.SessionSecret = "preview-only-secret"
		}
		app := pagemill.New(cfg, views.Default())
		defer app.Close()
		if err := app.Start(); err != nil {
			log.Fatal(err)
		}
	case "version":
		fmt.Printf("pagemill %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pagemill - static blog content aggregation, built with Go, Echo, and templ

Usage:
  pagemill <command> [arguments]

Commands:
  build [dir]    Aggregate content and write fragments, feed, sitemap, thumbnails (default out/)
  index [db]     Persist scanned front matter into a SQLite metadata store (default data/meta.db)
  preview        Serve the site locally with draft preview support
  version        Print the pagemill version
  help           Show this help message

Configuration comes from SITE_* environment variables (SITE_CONTENT_DIR,
SITE_URL, SITE_NAME, SITE_BIBLIOGRAPHY, ...).`)
}
