// Package sim runs headless training episodes: full games between
// computer players driven by one shared learning agent.
package sim

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Winipedia/notty/agent"
	"github.com/Winipedia/notty/engine"
)

// EpisodeResult is the outcome of one simulated game.
type EpisodeResult struct {
	Winner    int // seat index, engine.NoWinner for a stalemate
	Turns     int
	Stalemate bool
	Duration  time.Duration
}

// BatchStats aggregates a training run.
type BatchStats struct {
	Episodes   int
	Wins       []int // indexed by seat
	Stalemates int
	TotalTurns int
	Duration   time.Duration
}

// AvgTurns returns the mean episode length.
func (s BatchStats) AvgTurns() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Episodes)
}

// Runner plays complete games with every seat driven by the same agent,
// so the learner trains by self-play.
type Runner struct {
	rules  engine.Rules
	driver *agent.Driver
	rng    *rand.Rand
	log    logrus.FieldLogger
}

// NewRunner builds a self-play runner. The rng seeds each episode's game;
// the driver's agent keeps its table across episodes.
func NewRunner(rules engine.Rules, driver *agent.Driver, rng *rand.Rand, log logrus.FieldLogger) *Runner {
	return &Runner{rules: rules, driver: driver, rng: rng, log: log}
}

// maxTurnsPerEpisode bounds a runaway game; the stalemate rule should end
// games long before this.
const maxTurnsPerEpisode = 100000

// RunEpisode plays one game to termination.
func (r *Runner) RunEpisode(ctx context.Context) (EpisodeResult, error) {
	kinds := make([]engine.PlayerKind, r.rules.NumPlayers)
	for i := range kinds {
		kinds[i] = engine.Computer
	}
	g, err := engine.NewGame(r.rules, kinds, r.rng)
	if err != nil {
		return EpisodeResult{}, fmt.Errorf("sim: creating game: %w", err)
	}

	start := time.Now()
	turns := 0
	for !g.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return EpisodeResult{}, err
		}
		if turns >= maxTurnsPerEpisode {
			return EpisodeResult{}, fmt.Errorf("sim: game %s exceeded %d turns", g.ID(), maxTurnsPerEpisode)
		}
		if err := r.driver.PlayTurn(g); err != nil {
			return EpisodeResult{}, fmt.Errorf("sim: game %s: %w", g.ID(), err)
		}
		turns++
	}

	return EpisodeResult{
		Winner:    g.WinnerIndex(),
		Turns:     turns,
		Stalemate: g.IsStalemate(),
		Duration:  time.Since(start),
	}, nil
}

// RunBatch plays episodes games, stopping early on context cancellation.
// Completed episodes are always reported, even on early stop.
func (r *Runner) RunBatch(ctx context.Context, episodes int) (BatchStats, error) {
	stats := BatchStats{Wins: make([]int, r.rules.NumPlayers)}
	start := time.Now()

	for i := 0; i < episodes; i++ {
		result, err := r.RunEpisode(ctx)
		if err != nil {
			stats.Duration = time.Since(start)
			if ctx.Err() != nil {
				r.log.WithField("episodes", stats.Episodes).Info("training interrupted")
				return stats, nil
			}
			return stats, err
		}
		stats.Episodes++
		stats.TotalTurns += result.Turns
		if result.Stalemate {
			stats.Stalemates++
		} else if result.Winner != engine.NoWinner {
			stats.Wins[result.Winner]++
		}

		if (i+1)%100 == 0 {
			r.log.WithFields(logrus.Fields{
				"episode":   i + 1,
				"avg_turns": fmt.Sprintf("%.1f", stats.AvgTurns()),
				"epsilon":   fmt.Sprintf("%.4f", r.driver.Agent().Epsilon()),
			}).Info("training progress")
		}
	}

	stats.Duration = time.Since(start)
	return stats, nil
}
