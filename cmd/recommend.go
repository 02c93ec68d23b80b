package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/moodmix/internal/emotion"
	"github.com/desertthunder/moodmix/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Recommend prints the tracks recommended for --emotion.
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	label := cmd.String("emotion")
	rec := r.recommender(config).Recommend(ctx, emotion.Label(&label))

	if cmd.Bool("json") {
		return r.writeJSON(rec, cmd.Bool("pretty"))
	}

	out := cmd.String("output")
	toFile := out != "" && out != "-"

	palette := r.palette
	if toFile {
		palette = formatter.Plain()
	}

	data, err := formatter.Render(rec, format, palette)
	if err != nil {
		return fmt.Errorf("failed to render recommendation: %w", err)
	}

	if toFile {
		if err := formatter.WriteFile(out, data); err != nil {
			return err
		}
		r.logger.Info("recommendation written", "path", out, "tracks", len(rec.Tracks))
		return nil
	}

	_, err = r.output.Write(data)
	return err
}
