package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"moodmix/internal/server"
	"moodmix/internal/services"
	"moodmix/internal/shared"
)

const shutdownGrace = 10 * time.Second

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
}

// loadConfig reloads configuration when the command carries a --config flag,
// falling back to the runner's existing config.
func (r *Runner) loadConfig(cmd *cli.Command) (*shared.Config, error) {
	path := cmd.String("config")
	if path == "" {
		return r.config, nil
	}

	if _, err := os.Stat(path); err != nil {
		r.logger.Warn("config file not found, using defaults", "path", path)
		return r.config, nil
	}

	return shared.LoadConfig(path)
}

// Serve runs the relay HTTP server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if port := cmd.Int("port"); port != 0 {
		config.Server.Port = int(port)
	}

	auth := services.NewAuthenticator(config.Credentials.Spotify, "", "")
	spotify := services.NewSpotifyService("", nil)
	api := server.NewAPI(r.logger, auth, spotify)
	srv := server.New(r.logger, config.Server, api)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// AuthURL prints the Spotify authorization URL for manual login flows.
func (r *Runner) AuthURL(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	state := cmd.String("state")
	if state == "" {
		state = shared.GenerateID()
	}

	auth := services.NewAuthenticator(config.Credentials.Spotify, "", "")
	fmt.Fprintln(r.output, auth.AuthURL(state))

	return nil
}

// Setup writes a starter config file for the user to fill in.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" {
		path = "config.toml"
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	fmt.Fprintf(r.output, "Created %s. Fill in your Spotify credentials or set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET.\n", path)

	return nil
}

// register returns all CLI commands wired to this runner.
func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		serveCommand(r),
		authCommand(r),
		setupCommand(r),
	}
}
