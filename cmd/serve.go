package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodmix/internal/camera"
	"github.com/desertthunder/moodmix/internal/camera/webcam"
	"github.com/desertthunder/moodmix/internal/emotion"
	"github.com/desertthunder/moodmix/internal/session"
	"github.com/desertthunder/moodmix/internal/shared"
	"github.com/desertthunder/moodmix/internal/web"
	"github.com/urfave/cli/v3"
)

const sweepInterval = time.Minute

// Serve runs the web application until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	if host := cmd.String("host"); host != "" {
		config.Server.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		config.Server.Port = int(port)
	}
	if cmd.Bool("no-camera") {
		config.Camera.Enabled = false
	}

	users, err := r.userStore(config)
	if err != nil {
		return fmt.Errorf("failed to open user store: %w", err)
	}
	defer r.close()

	cam, err := openCamera(config.Camera, r.logger)
	if err != nil {
		return err
	}
	defer cam.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := session.NewMemoryStore(config.Server.SessionTTL)
	go sessions.RunSweeper(ctx, sweepInterval)

	app, err := web.New(web.Options{
		Users:          users,
		Sessions:       sessions,
		Recommender:    r.recommender(config),
		Camera:         cam,
		Detector:       emotion.NewRandomDetector(),
		Logger:         shared.WithLogger(r.logger, "component", "web"),
		Cookie:         session.CookieOptions{Secure: config.Server.SecureCookies},
		ProtectData:    config.Server.ProtectDataEndpoints,
		LoginRateLimit: config.Server.LoginRateLimit,
		LoginBurst:     config.Server.LoginBurst,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              config.Server.Addr(),
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("server listening", "addr", "http://"+srv.Addr, "camera", cam.Available())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	r.logger.Info("shutting down", "timeout", config.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	r.logger.Info("server stopped")
	return nil
}

// openCamera opens the configured capture device.
//
// A disabled camera, or a build without camera support, yields a service with no device.
// Any other open failure is returned.
func openCamera(c shared.CameraConfig, logger *log.Logger) (*camera.Service, error) {
	opts := camera.Options{FPS: c.FPS, JPEGQuality: c.JPEGQuality}
	if !c.Enabled {
		logger.Info("camera disabled")
		return camera.NewService(nil, opts), nil
	}

	dev, err := webcam.Open(c.Device)
	if errors.Is(err, webcam.ErrNotCompiled) {
		logger.Warn("camera unavailable, webcam endpoints disabled", "error", err)
		return camera.NewService(nil, opts), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCameraUnavailable, err)
	}

	logger.Info("camera opened", "device", c.Device, "fps", c.FPS)
	return camera.NewService(dev, opts), nil
}
