package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodmix/internal/emotion"
	"github.com/desertthunder/moodmix/internal/formatter"
	"github.com/desertthunder/moodmix/internal/recommend"
	"github.com/desertthunder/moodmix/internal/repositories"
	"github.com/desertthunder/moodmix/internal/services"
	"github.com/desertthunder/moodmix/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Dependencies left nil in [RunnerOpts] are built from the loaded config on first use.
type Runner struct {
	config  *shared.Config
	users   repositories.UserStore
	catalog services.Catalog
	logger  *log.Logger
	output  io.Writer
	palette *formatter.Palette
	closers []io.Closer
	owned   bool // users was opened by the runner and is dropped by close
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Users   repositories.UserStore
	Catalog services.Catalog
	Logger  *log.Logger
	Output  io.Writer
	Palette *formatter.Palette
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Palette == nil {
		opts.Palette = formatter.DefaultPalette()
	}

	return &Runner{
		config:  opts.Config,
		users:   opts.Users,
		catalog: opts.Catalog,
		logger:  opts.Logger,
		output:  opts.Output,
		palette: opts.Palette,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, setupCommand, usersCommand, recommendCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig reads the --config file (or the defaults when it does not exist) and overlays the
// environment from --env-file and the process.
func (r *Runner) loadConfig(cmd *cli.Command) (*shared.Config, error) {
	if r.config != nil {
		return r.config, nil
	}

	if err := shared.LoadEnv(cmd.String("env-file")); err != nil {
		return nil, err
	}

	configPath := cmd.String("config")
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			return nil, err
		}
		r.logger.Debug("loaded config", "path", configPath)
	} else {
		r.logger.Debug("config file not found, using defaults", "path", configPath)
	}

	if err := shared.ApplyEnv(config); err != nil {
		return nil, err
	}

	shared.SetLogLevel(r.logger, config.Log.Level)
	r.config = config
	return config, nil
}

// userStore opens the credential store selected by [shared.StorageConfig.Driver].
func (r *Runner) userStore(config *shared.Config) (repositories.UserStore, error) {
	if r.users != nil {
		return r.users, nil
	}

	switch config.Storage.Driver {
	case shared.StorageSQLite:
		db, err := shared.OpenMigrated(config.Database)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, db)
		r.users = repositories.NewSQLUserStore(db)
		r.owned = true
	default:
		store, err := repositories.OpenFileUserStore(config.Storage.UsersFile)
		if err != nil {
			return nil, err
		}
		r.users = store
	}

	r.logger.Debug("opened user store", "driver", config.Storage.Driver)
	return r.users, nil
}

// catalogService builds the Spotify client. Missing credentials are reported as
// [shared.ErrMissingCredentials].
func (r *Runner) catalogService(config *shared.Config) (services.Catalog, error) {
	if r.catalog != nil {
		return r.catalog, nil
	}

	svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map(), services.SpotifyOptions{
		Timeout: config.Credentials.Spotify.Timeout,
	})
	if err != nil {
		return nil, err
	}
	r.catalog = svc
	return svc, nil
}

// recommender joins the configured playlists with the catalog.
//
// Without credentials it still resolves emotions but every fetch degrades to an empty list.
func (r *Runner) recommender(config *shared.Config) *recommend.Recommender {
	catalog, err := r.catalogService(config)
	if err != nil {
		if !errors.Is(err, shared.ErrMissingCredentials) {
			r.logger.Error("failed to create catalog client", "error", err)
		} else {
			r.logger.Warn("spotify credentials missing, recommendations will be empty", "error", err)
		}
		catalog = nil
	}
	return recommend.New(emotion.NewResolver(config.Playlists), catalog, r.logger)
}

func (r *Runner) close() {
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			r.logger.Warn("failed to close resource", "error", err)
		}
	}
	r.closers = nil
	if r.owned {
		r.users = nil
		r.owned = false
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
