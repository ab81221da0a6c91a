package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"briefcast/internal/history"
	"briefcast/internal/serve"
)

func main() {
	app := &cli.App{
		Name:  "briefcast",
		Usage: "Summarize videos, articles, and PDFs into text and audio",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the web interface",
				Action: serve.ServeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
					},
					&cli.StringFlag{
						Name:  "secrets",
						Usage: "Path to an env file with API keys",
					},
					&cli.StringFlag{
						Name:  "workdir",
						Usage: "Directory for the history database and temp files",
					},
					&cli.StringFlag{
						Name:  "keywords",
						Usage: "YAML file overriding the classifier keyword lists",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Log errors only",
					},
				},
			},
			{
				Name:  "history",
				Usage: "Inspect recorded requests",
				Subcommands: []*cli.Command{
					{
						Name:   "recent",
						Usage:  "List recent requests",
						Action: history.RecentAction,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "workdir",
								Usage: "Directory holding the history database",
								Value: "briefcast-data",
							},
							&cli.IntFlag{
								Name:  "limit",
								Usage: "Maximum rows to show",
								Value: 20,
							},
						},
					},
					{
						Name:   "stats",
						Usage:  "Count requests by status",
						Action: history.StatsAction,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "workdir",
								Usage: "Directory holding the history database",
								Value: "briefcast-data",
							},
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
