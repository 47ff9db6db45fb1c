package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/tinygol/controls"
	"github.com/sheikhrachel/tinygol/model"
	"github.com/sheikhrachel/tinygol/utils"
)

// statusLines is how many terminal rows sit above the grid
const statusLines = 3

// periodicRefresh restarts long-running games so the screen keeps changing
const periodicRefresh = 200

// gameState is everything the terminal loop carries between frames
type gameState struct {
	engine   *model.Engine
	pool     *model.EnginePool
	renderer *model.TerminalRenderer
	stats    *utils.Stats
	history  model.History

	generation     int
	observedGen    int // generation last fed to history and stats
	stagnant       bool
	stagnantCount  int
	lastRestartGen int
	lastFrameTime  time.Time
	paused         bool
	notice         string
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config) (*gameState, error) {
	var pool *model.EnginePool
	if config.UseMemoryPool {
		pool = model.NewEnginePool()
	}

	engine, err := newEngine(config, pool)
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to create engine")
	}

	return &gameState{
		engine:        engine,
		pool:          pool,
		stats:         utils.NewStats(),
		lastFrameTime: time.Now(),
		observedGen:   -1,
		paused:        config.Interactive && config.StartPaused,
	}, nil
}

// newEngine takes an engine from the pool, if any, and fills it
func newEngine(config utils.Config, pool *model.EnginePool) (*model.Engine, error) {
	var (
		engine *model.Engine
		err    error
	)
	if pool != nil {
		engine, err = pool.Get(config.Width, config.Height)
	} else {
		engine, err = model.NewEngine(config.Width, config.Height)
	}
	if err != nil {
		return nil, err
	}

	if config.Seed != 0 {
		engine.Seed(config.Seed)
	}
	engine.ResetWithInterestingPatterns(config.RandomDensity)
	return engine, nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, engine *model.Engine) {
	fmt.Printf("Features: Memory Pool: %v, Parallel: %v, Interactive: %v\n",
		config.UseMemoryPool, config.UseParallel, config.Interactive)
	fmt.Printf("Grid: %dx%d | Initial living cells: %d\n",
		engine.Width(), engine.Height(), engine.CountLivingCells())
	if config.Interactive {
		fmt.Println("Keys: p pause | r randomize | n/Enter step | q quit")
	}
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
	time.Sleep(2 * time.Second)
}

// updateGameState records a newly reached generation in history and stats and
// returns status information. Frames that did not advance the game, such as
// after a pause toggle, leave history, stats and the stagnation count alone.
func updateGameState(state *gameState) (livingCells int, density float64, status string, fresh bool) {
	engine := state.engine
	livingCells = engine.CountLivingCells()
	density = float64(livingCells) / float64(engine.Width()*engine.Height()) * 100

	if fresh = state.generation != state.observedGen; fresh {
		state.observedGen = state.generation

		frameStart := time.Now()
		state.stats.Update(state.generation, livingCells, frameStart.Sub(state.lastFrameTime))
		state.lastFrameTime = frameStart

		// Compare before recording so the current state is not matched against itself
		state.stagnant = state.history.IsStagnant(engine)
		state.history.Update(engine)

		if state.stagnant {
			state.stagnantCount++
		} else {
			state.stagnantCount = 0
		}
	}

	status = "Active"
	if state.stagnant {
		status = fmt.Sprintf("Stagnant (%d)", state.generation)
	}
	if livingCells == 0 {
		status = "Extinct"
	}
	if state.paused {
		status += " [paused]"
	}

	return livingCells, density, status, fresh
}

// statusText builds the lines shown above the grid
func statusText(state *gameState, livingCells int, density float64, status string) []string {
	since := ""
	if state.generation > state.lastRestartGen {
		since = fmt.Sprintf("Generations since restart: %d", state.generation-state.lastRestartGen)
	}
	if state.notice != "" {
		since += " | " + state.notice
	}

	return []string{
		fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s",
			state.generation, livingCells, density, status),
		fmt.Sprintf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs",
			state.stats.GenerationsPerSecond, state.stats.AveragePopulation, time.Since(state.stats.StartTime).Seconds()),
		since,
	}
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(
	livingCells, stagnantCount, generation int,
	config utils.Config,
) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if generation > 0 && generation%periodicRefresh == 0 {
		return true, "periodic refresh"
	}
	return false, ""
}

// restartGame swaps in a freshly seeded engine
func restartGame(state *gameState, config utils.Config, reason string) error {
	model.EngineToPool(state.engine, state.pool)

	engine, err := newEngine(config, state.pool)
	if err != nil {
		return errors.Wrap(err, "[restartGame] failed to create engine")
	}

	state.engine = engine
	state.history.Reset()
	state.lastRestartGen = state.generation
	state.stagnantCount = 0
	state.stagnant = false
	state.notice = fmt.Sprintf("Restarted due to %s, living cells: %d", reason, engine.CountLivingCells())
	return nil
}

// advance calculates the next generation
func advance(state *gameState, config utils.Config) error {
	if config.UseParallel {
		if err := state.engine.StepParallel(config.Workers); err != nil {
			return errors.Wrap(err, "[advance] failed to step")
		}
	} else {
		state.engine.Step()
	}
	state.generation++
	return nil
}

// handleAction applies a key press and reports whether the game should stop
func handleAction(state *gameState, config utils.Config, action controls.Action) (bool, error) {
	switch action {
	case controls.Quit:
		return true, nil
	case controls.TogglePause:
		state.paused = !state.paused
	case controls.Randomize:
		state.engine.FillRandom(config.RandomDensity)
		state.history.Reset()
		state.stagnant = false
		state.stagnantCount = 0
		state.notice = "Randomized"
	case controls.Step:
		if err := advance(state, config); err != nil {
			return false, err
		}
	}
	return false, nil
}

// frameInterval is the ticker period for the configured frame rate
func frameInterval(config utils.Config) time.Duration {
	return max(config.FrameRate, time.Millisecond)
}
