package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/config"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tui"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-timetravel/transport/rest"
	"github.com/rocketscienceinc/tictactoe-timetravel/transport/websocket"
)

// signalContext - a context cancelled on SIGINT or SIGTERM.
func signalContext(log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()

	return ctx, cancel
}

// RunServer - serves the web page and the websocket API.
func RunServer(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signalContext(log)
	defer cancel()

	sessionRepo, closeRepo, err := newSessionRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeRepo(); err != nil {
			log.Error("could not close session storage", "error", err)
		}
	}()

	gameManager := usecase.NewGameManager(logger, sessionRepo)

	mux := http.NewServeMux()
	rest.NewHandlers(logger, gameManager, conf.SessionTTL).Register(mux)
	websocket.New(logger, gameManager).Register(mux)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "session_store", conf.SessionStore)

	if err = rest.Start(ctx, conf.HTTPPort, mux); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// RunTUI - plays one game in the terminal.
func RunTUI(logger *slog.Logger) error {
	ctx, cancel := signalContext(logger)
	defer cancel()

	return tui.Run(ctx, logger)
}

// RunReplay - applies the moves to a new game and prints the result.
// Moves the rules reject are skipped, the same way a click on them would be.
func RunReplay(logger *slog.Logger, out io.Writer, moves []int) error {
	state := tictactoe.NewGameState()

	for _, cell := range moves {
		if err := state.Play(cell); err != nil {
			logger.Warn("move ignored", "cell", cell, "reason", err)
		}
	}

	if err := presenter.NewTextRenderer(out).Render(presenter.Present(state)); err != nil {
		return fmt.Errorf("failed to print game: %w", err)
	}

	return nil
}

func newSessionRepository(ctx context.Context, conf *config.Config) (repository.SessionRepository, func() error, error) {
	switch conf.SessionStore {
	case config.SessionStoreRedis:
		redisAddrString := conf.Redis.GetRedisAddr()

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisSessionRepository(redisStorage, conf.SessionTTL), redisStorage.Close, nil
	case config.SessionStoreMemory:
		return repository.NewMemorySessionRepository(conf.SessionTTL), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownSessionStore, conf.SessionStore)
	}
}
