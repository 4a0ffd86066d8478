package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/kvistad/tweetkit"
	"github.com/kvistad/tweetkit/internal/app"
	"github.com/kvistad/tweetkit/internal/observability"
	"github.com/kvistad/tweetkit/internal/resolver"
)

// Execute runs the root command with the given context and arguments.
func Execute(ctx context.Context, args []string) error {
	cmd := &cli.Command{
		Name:  "tweetkit",
		Usage: "Twitter credential setup and inspection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug|info|warn|error)",
				Value: slog.LevelInfo.String(),
			},
		},
		Commands: []*cli.Command{
			authCommand(),
			whoamiCommand(),
		},
	}

	return cmd.Run(ctx, args)
}

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "create and inspect Twitter credentials",
		Commands: []*cli.Command{
			authCreateCommand(),
			authBearerCommand(),
			authStatusCommand(),
		},
	}
}

func authCreateCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "create a user token, interactively unless an access pair is given",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "app--name",
				Usage: "consumer app name",
				Value: "tweetkit",
			},
			&cli.StringFlag{
				Name:  "app--key",
				Usage: "consumer key",
			},
			&cli.StringFlag{
				Name:  "app--secret",
				Usage: "consumer secret",
			},
			&cli.StringFlag{
				Name:  "storage--type",
				Usage: "token storage backend (file|env|keyring)",
				Value: string(app.DefaultConfigStorage),
			},
			&cli.StringFlag{
				Name:  "storage--file",
				Usage: "token file path for file storage",
			},
			&cli.StringFlag{
				Name:  "access-token",
				Usage: "pre-issued access token (skips the interactive exchange)",
			},
			&cli.StringFlag{
				Name:  "access-secret",
				Usage: "pre-issued access token secret",
			},
			&cli.BoolFlag{
				Name:  "no-persist",
				Usage: "do not record the token for future processes",
			},
		},
		Action: authCreateAction,
	}
}

func authCreateAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	secret := cfg.App.Secret
	if secret == "" {
		secret, err = promptSecret("Consumer secret")
		if err != nil {
			return fmt.Errorf("consumer secret not configured: %w", err)
		}
	}

	r := resolver.New(resolver.WithTokenFilePath(cfg.Storage.File))
	cred, err := r.Create(ctx, resolver.CreateParams{
		AppName:        cfg.App.Name,
		ConsumerKey:    cfg.App.Key,
		ConsumerSecret: secret,
		AccessToken:    cmd.String("access-token"),
		AccessSecret:   cmd.String("access-secret"),
		Persist:        !cmd.Bool("no-persist") && cfg.Storage.Type == app.StorageTypeFile,
	})
	if err != nil {
		return fmt.Errorf("token creation failed: %w", err)
	}

	// Non-file backends are written through the configured store; the file
	// backend was already handled by the resolver's persistence side effects.
	if !cmd.Bool("no-persist") && cfg.Storage.Type != app.StorageTypeFile {
		store, err := cfg.Storage.NewStore()
		if err != nil {
			return fmt.Errorf("failed to create token store: %w", err)
		}
		if err := store.Write(ctx, cred); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}
	}

	if name := cred.ScreenName(); name != "" {
		fmt.Printf("Token created for @%s\n", name)
	} else {
		fmt.Println("Token created")
	}
	return nil
}

func authBearerCommand() *cli.Command {
	return &cli.Command{
		Name:  "bearer",
		Usage: "create an app-only bearer token",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "app--name",
				Usage: "consumer app name",
				Value: "tweetkit",
			},
			&cli.StringFlag{
				Name:  "app--key",
				Usage: "consumer key",
			},
			&cli.StringFlag{
				Name:  "app--secret",
				Usage: "consumer secret",
			},
		},
		Action: authBearerAction,
	}
}

func authBearerAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	secret := cfg.App.Secret
	if secret == "" {
		secret, err = promptSecret("Consumer secret")
		if err != nil {
			return fmt.Errorf("consumer secret not configured: %w", err)
		}
	}

	r := resolver.New()
	cred, err := r.CreateBearer(ctx, cfg.App.Name, cfg.App.Key, secret)
	if err != nil {
		return fmt.Errorf("bearer token creation failed: %w", err)
	}

	fmt.Println(cred.Credentials.AccessToken)
	return nil
}

func authStatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "verify the resolved token matches the configured home account",
		Action: authStatusAction,
	}
}

func authStatusAction(ctx context.Context, cmd *cli.Command) error {
	if _, err := setup(cmd); err != nil {
		return err
	}

	r := resolver.New()
	if err := r.ValidateHomeAccount(ctx); err != nil {
		return err
	}

	home, err := r.HomeUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Credential OK for @%s\n", home)
	return nil
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:   "whoami",
		Usage:  "ask the API which account the resolved token belongs to",
		Action: whoamiAction,
	}
}

func whoamiAction(ctx context.Context, cmd *cli.Command) error {
	if _, err := setup(cmd); err != nil {
		return err
	}

	client, err := tweetkit.New(ctx)
	if err != nil {
		return err
	}

	var identity struct {
		ScreenName string `json:"screen_name"`
	}
	if err := client.Get(ctx, "account/verify_credentials.json", nil, &identity); err != nil {
		return err
	}

	fmt.Printf("@%s\n", identity.ScreenName)
	return nil
}

// setup loads configuration and installs the logging layer.
func setup(cmd *cli.Command) (*app.Config, error) {
	cfg, err := loadConfig(cmd.String("config"), cmd, os.Environ)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := observability.Instrument(cfg.LogLevel, string(cfg.LogFormat)); err != nil {
		return nil, fmt.Errorf("failed to set up observability layer: %w", err)
	}

	return cfg, nil
}

// promptSecret reads a secret without echo from a terminal stdin.
func promptSecret(question string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("stdin is not a terminal")
	}
	fmt.Printf("%s: ", question)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(secret), nil
}
