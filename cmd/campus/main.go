package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linkcodelearn/campus/internal/browser"
	"github.com/linkcodelearn/campus/internal/config"
	"github.com/linkcodelearn/campus/internal/session"
	"github.com/linkcodelearn/campus/internal/store"
	"github.com/linkcodelearn/campus/internal/tui"
	"github.com/linkcodelearn/campus/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("campus " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "terms":
			return openLegal(cfg.BaseURL, "terms")
		case "privacy":
			return openLegal(cfg.BaseURL, "privacy")
		case "logout":
			return runLogout()
		default:
			printHelp()
			return fmt.Errorf("unknown command %q", os.Args[1])
		}
	}

	c := client.New(cfg.APIURL, cfg.Timeout())

	// Local cache is best-effort; run without it when home is unavailable.
	var cache *store.Store
	if dir, dirErr := store.DefaultDir(); dirErr == nil {
		cache = store.New(dir)
	}

	sess := session.NewStore(c, cache)
	app := tui.NewApp(sess, c, cfg.BaseURL)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// legalURL joins the site base with a legal page path.
func legalURL(baseURL, page string) string {
	return strings.TrimRight(baseURL, "/") + "/" + page
}

func openLegal(baseURL, page string) error {
	url := legalURL(baseURL, page)
	if err := browser.Open(url); err != nil {
		// Headless environments: print the URL instead.
		fmt.Println(url)
	}
	return nil
}

// runLogout clears the locally cached account record. Server-side
// cookies expire on their own.
func runLogout() error {
	dir, err := store.DefaultDir()
	if err != nil {
		return fmt.Errorf("locate cache dir: %w", err)
	}
	if err := store.New(dir).Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	fmt.Println("signed out")
	return nil
}
