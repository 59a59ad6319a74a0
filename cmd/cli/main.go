package main

import (
	"flag"
	"os"

	"tasktrack/internal/cli"
	"tasktrack/internal/client"
)

func main() {
	server := flag.String("server", envOr("TASKTRACK_SERVER", "http://127.0.0.1:8080"), "API base URL")
	user := flag.String("user", os.Getenv("TASKTRACK_USER"), "username owning the tasks")
	token := flag.String("token", os.Getenv("TASKTRACK_TOKEN"), "bearer token from a previous login")
	flag.Parse()

	if *user == "" {
		cli.PrintHelp()
		os.Exit(2)
	}

	c := client.New(*server)
	c.Token = *token

	os.Exit(cli.Run(c, *user, flag.Args()))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
