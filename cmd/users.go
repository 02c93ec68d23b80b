package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/moodmix/internal/shared"
	"github.com/urfave/cli/v3"
)

// UsersAdd registers a user in the configured credential store.
func (r *Runner) UsersAdd(ctx context.Context, cmd *cli.Command) error {
	username := cmd.StringArg("username")
	if username == "" {
		return fmt.Errorf("%w: username", shared.ErrMissingArgument)
	}

	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := r.userStore(config)
	if err != nil {
		return fmt.Errorf("failed to open user store: %w", err)
	}
	defer r.close()

	user, err := store.Register(ctx, username, cmd.String("password"))
	if errors.Is(err, shared.ErrConflict) {
		return fmt.Errorf("user %q already exists: %w", username, err)
	}
	if err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	r.logger.Info("user registered", "username", user.Username)
	return r.writePlain("✓ Registered %s\n", user.Username)
}

// UsersCheck verifies a username and password against the configured credential store.
func (r *Runner) UsersCheck(ctx context.Context, cmd *cli.Command) error {
	username := cmd.StringArg("username")
	if username == "" {
		return fmt.Errorf("%w: username", shared.ErrMissingArgument)
	}

	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := r.userStore(config)
	if err != nil {
		return fmt.Errorf("failed to open user store: %w", err)
	}
	defer r.close()

	if _, err := store.Authenticate(ctx, username, cmd.String("password")); err != nil {
		if errors.Is(err, shared.ErrUnauthorized) {
			r.writePlain("%s\n", r.palette.Error("✗ Invalid username or password"))
		}
		return err
	}
	return r.writePlain("✓ Credentials valid for %s\n", username)
}
