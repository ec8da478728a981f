package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jaminalder/codex-hex/internal/app"
	"github.com/jaminalder/codex-hex/internal/config"
	"github.com/jaminalder/codex-hex/internal/console"
	"github.com/jaminalder/codex-hex/internal/render"
	"github.com/jaminalder/codex-hex/internal/tui"
	"github.com/jaminalder/codex-hex/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hex: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	path := os.Getenv("HEX_CONFIG")
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	svc := app.NewService()
	svc.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Spectator.Enabled {
		srv := &http.Server{Addr: cfg.Spectator.Addr, Handler: web.NewServer(svc), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("starting spectator server", "addr", cfg.Spectator.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator server failed", "err", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("could not stop spectator server", "err", err)
			}
		}()
	}

	styles := render.Styles{}
	if cfg.UI.Color {
		styles = render.DefaultStyles()
	}

	if cfg.UI.Mode == config.ModeTUI {
		m, err := tui.NewModel(svc, cfg.Board.Size, styles)
		if err != nil {
			return err
		}
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	}

	session := console.NewSession(svc, os.Stdin, os.Stdout)
	session.SetLogger(logger)
	session.SetStyles(styles)
	if cfg.Spectator.Enabled {
		session.Started = func(gs *app.GameState) {
			fmt.Fprintf(os.Stdout, "Spectators: http://%s/game/%s\n", cfg.Spectator.Addr, gs.ID)
		}
	}

	done := make(chan error, 1)
	go func() {
		_, err := session.Run(cfg.Board.Size)
		done <- err
	}()
	select {
	case err := <-done:
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return errors.New("input closed before the game finished")
		}
		return err
	case <-ctx.Done():
		fmt.Fprintln(os.Stdout)
		return nil
	}
}

// newLogger builds the program logger. The TUI owns the terminal, so without
// a log file it logs nowhere.
func newLogger(cfg *config.Config) (*log.Logger, func(), error) {
	level, err := cfg.Log.ParseLevel()
	if err != nil {
		return nil, nil, err
	}
	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	case cfg.UI.Mode == config.ModeTUI:
		w = io.Discard
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "hex",
	})
	return logger, closeFn, nil
}
