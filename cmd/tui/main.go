package main

import (
	"flag"
	"fmt"
	"os"

	"tasktrack/internal/client"
	"tasktrack/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	server := flag.String("server", envOr("TASKTRACK_SERVER", "http://127.0.0.1:8080"), "API base URL")
	user := flag.String("user", os.Getenv("TASKTRACK_USER"), "username owning the tasks")
	token := flag.String("token", os.Getenv("TASKTRACK_TOKEN"), "bearer token from a previous login")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "usage: tasktui -user <name> [-server URL]")
		os.Exit(2)
	}

	api := client.New(*server)
	api.Token = *token

	p := tea.NewProgram(tui.New(api, *user), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
