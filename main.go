package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/tinygol/controls"
	"github.com/sheikhrachel/tinygol/gui"
	"github.com/sheikhrachel/tinygol/model"
	"github.com/sheikhrachel/tinygol/utils"
)

const configFile = "config.json"

func main() {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(configFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("failed to load %s: %+v", configFile, err)
		}
		fmt.Println("Using default configuration (config.json not found)")
		config = utils.DefaultConfig()
	}

	state, err := initializeGame(config)
	if err != nil {
		log.Fatalf("failed to start: %+v", err)
	}
	defer func() { state.engine.Close() }()

	if config.GUI {
		if err = gui.Run(state.engine, config); err != nil {
			log.Fatalf("gui: %+v", err)
		}
		return
	}

	displayGameInfo(config, state.engine)

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, state, config); err != nil {
		log.Fatalf("game loop: %+v", err)
	}
}

// run drives the terminal game until it is stopped or reaches its limit
func run(ctx context.Context, state *gameState, config utils.Config) error {
	state.renderer = model.NewTerminalRenderer(os.Stdout, statusLines+2)
	if err := state.renderer.Clear(); err != nil {
		return err
	}

	ticker := time.NewTicker(frameInterval(config))
	defer ticker.Stop()

	var farewell string
	defer func() {
		_ = state.renderer.MoveBelow()
		if farewell != "" {
			fmt.Println(farewell)
		}
		fmt.Printf("Final stats: %d generations in %.1f seconds\n",
			state.generation, time.Since(state.stats.StartTime).Seconds())
		fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
			state.stats.GenerationsPerSecond, state.stats.AveragePopulation)
	}()

	var actions <-chan controls.Action
	if config.Interactive {
		restore, err := controls.RawMode(int(os.Stdin.Fd()))
		if err != nil {
			return err
		}
		// Runs before the farewell so the final stats print in cooked mode
		defer func() { _ = restore() }()
		actions = controls.Listen(ctx, os.Stdin)
	}

	for {
		livingCells, density, status, fresh := updateGameState(state)

		if err := state.renderer.Status(statusText(state, livingCells, density, status)...); err != nil {
			return err
		}
		if err := state.renderer.Display(state.engine); err != nil {
			return err
		}

		if config.MaxGenerations > 0 && state.generation >= config.MaxGenerations {
			farewell = fmt.Sprintf("🏁 Reached maximum generations limit (%d)", config.MaxGenerations)
			return nil
		}

		if fresh && !state.paused && state.generation > state.lastRestartGen {
			shouldRestart, reason := checkRestartConditions(livingCells, state.stagnantCount, state.generation, config)
			if shouldRestart && config.AutoRestart {
				if err := restartGame(state, config, reason); err != nil {
					return err
				}
				continue
			} else if state.stagnantCount >= 2 && state.stagnantCount < config.StagnationThreshold {
				// Inject some life to try to break the stagnation
				state.engine.InjectRandomLife(config.InjectionCount)
			}
		}

		var tick <-chan time.Time
		if !state.paused {
			tick = ticker.C
		}

		select {
		case <-ctx.Done():
			farewell = "🛑 Shutting down gracefully..."
			return nil
		case action, ok := <-actions:
			if !ok {
				actions = nil
				continue
			}
			quit, err := handleAction(state, config, action)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		case <-tick:
			if err := advance(state, config); err != nil {
				return err
			}
		}
	}
}
