package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/pocket8/eightball/cmd/eightball/internal/config"
	"github.com/pocket8/eightball/cmd/eightball/internal/hostio"
	"github.com/pocket8/eightball/pkg/catalog"
	"github.com/pocket8/eightball/pkg/session"
	"github.com/pocket8/eightball/pkg/storage"
)

// tickInterval is the control loop cadence. All session timers are
// hundreds of milliseconds or more, so 10 ms gives ample resolution.
const tickInterval = 10 * time.Millisecond

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the appliance in the terminal",
	RunE:  runAppliance,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// app bundles everything the control loop needs. It is constructed
// once at startup and owns all mutable state; there are no package
// level variables holding session data.
type app struct {
	machine *session.Machine
	term    *hostio.Terminal
}

func runAppliance(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a, cleanup, err := buildApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	a.machine.Start()
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.machine.Tick()
		case <-a.term.Quit():
			slog.Info("eightball: shutting down")
			return nil
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		}
	}
}

// buildApp wires the file store, catalog, and ports into a machine.
// A catalog bootstrap failure is fatal: the appliance cannot enter the
// idle state with zero responses.
func buildApp(ctx context.Context, cfg *config.Config) (*app, func(), error) {
	fs, err := storage.NewLocal(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("eightball: open data dir: %w", err)
	}

	cat, err := catalog.Bootstrap(ctx, fs, cfg.Catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("eightball: cannot start: %w", err)
	}

	mic, err := openMic(ctx, fs, cfg)
	if err != nil {
		return nil, nil, err
	}

	term, err := hostio.OpenTerminal()
	if err != nil {
		return nil, nil, err
	}

	m, err := session.NewMachine(session.Params{
		Catalog:  cat,
		Input:    term,
		Capture:  mic,
		Playback: hostio.NewSpeaker(fs, cfg.SpeakerWAV),
		Display:  term,
		Clips:    hostio.NewClipSource(fs),
		Volume:   cfg.Volume,
	})
	if err != nil {
		term.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := term.Close(); err != nil {
			slog.Warn("eightball: restore terminal failed", "error", err)
		}
	}
	return &app{machine: m, term: term}, cleanup, nil
}

// openMic builds the capture port, preloading the configured WAV
// source if one is set.
func openMic(ctx context.Context, fs storage.FileStore, cfg *config.Config) (*hostio.Mic, error) {
	if cfg.MicWAV == "" {
		return hostio.NewMic(nil), nil
	}
	samples, _, err := hostio.NewClipSource(fs).LoadClip(cfg.MicWAV)
	if err != nil {
		return nil, fmt.Errorf("eightball: open mic source: %w", err)
	}
	slog.Info("eightball: microphone source loaded",
		"path", cfg.MicWAV, "samples", len(samples))
	return hostio.NewMic(samples), nil
}
