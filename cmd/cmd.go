// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// serveCommand runs the web application
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to listen on (overrides server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides server.port)",
			},
			&cli.BoolFlag{
				Name:  "no-camera",
				Usage: "Run without opening the capture device",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand writes the config file and prepares the database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and storage",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config file from the built-in template",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Create the SQLite database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent database migration",
				Action: r.RollbackDatabase,
			},
		},
	}
}

// usersCommand manages accounts in the configured credential store
func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Manage user accounts",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Register a new user",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:      "username",
						UsageText: "Username to register",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Password for the new user",
						Required: true,
					},
				},
				Action: r.UsersAdd,
			},
			{
				Name:  "check",
				Usage: "Verify a username and password",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:      "username",
						UsageText: "Username to check",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Password to verify",
						Required: true,
					},
				},
				Action: r.UsersCheck,
			},
		},
	}
}

// recommendCommand prints tracks for an emotion
func recommendCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "recommend",
		Aliases: []string{"rec"},
		Usage:   "Print track recommendations for an emotion",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "emotion",
				Aliases: []string{"e"},
				Usage:   "Emotion label (happy, sad, angry, neutral)",
				Value:   "neutral",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, markdown or csv",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to a file instead of stdout",
			},
		},
		Action: r.Recommend,
	}
}
