package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Winipedia/notty/agent"
	"github.com/Winipedia/notty/engine"
	"github.com/Winipedia/notty/internal/config"
	"github.com/Winipedia/notty/internal/qstore"
	"github.com/Winipedia/notty/internal/sim"
)

var (
	cfg *config.Config
	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "notty",
	Short: "Notty card game core and self-play trainer",
	Long: `Notty is a turn-based card game: empty your hand by discarding valid
groups (same-color runs of 3+, or 4+ of a number in distinct colors).

This binary hosts the rule engine and its tabular Q-learning computer
player. The learned Q-table persists across runs, so training sessions
accumulate.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Run self-play training episodes",
	RunE:  runTrain,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show what the agent has learned so far",
	RunE:  runStats,
}

func init() {
	cfg = config.Default()

	rootCmd.PersistentPreRunE = setup

	pf := rootCmd.PersistentFlags()
	pf.IntVar(&cfg.Players, "players", cfg.Players, "number of players (2 or 3)")
	pf.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed (0 seeds from entropy)")
	pf.Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "learning rate")
	pf.Float64Var(&cfg.Gamma, "gamma", cfg.Gamma, "discount factor")
	pf.Float64Var(&cfg.Epsilon, "epsilon", cfg.Epsilon, "initial exploration rate")
	pf.Float64Var(&cfg.EpsilonDecay, "epsilon-decay", cfg.EpsilonDecay, "exploration decay per decision")
	pf.Float64Var(&cfg.EpsilonMin, "epsilon-min", cfg.EpsilonMin, "exploration floor")
	pf.IntVar(&cfg.SaveEvery, "save-every", cfg.SaveEvery, "autosave the Q-table every N decisions (0 disables)")
	pf.StringVar(&cfg.Store, "store", cfg.Store, "Q-table backend (json or sqlite)")
	pf.StringVar(&cfg.QTablePath, "qtable", cfg.QTablePath, "Q-table path (default: per-user config dir)")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	trainCmd.Flags().IntVar(&cfg.Episodes, "episodes", cfg.Episodes, "number of games to play")

	viper.BindPFlags(pf)
	viper.BindPFlags(trainCmd.Flags())
	viper.SetEnvPrefix("NOTTY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(trainCmd, statsCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	// .env is optional; real environment variables win over it.
	godotenv.Load()

	// NOTTY_* environment variables fill in flags the user did not set.
	applyEnv := func(flags *pflag.FlagSet) {
		flags.VisitAll(func(f *pflag.Flag) {
			if !f.Changed && viper.IsSet(f.Name) {
				flags.Set(f.Name, fmt.Sprintf("%v", viper.Get(f.Name)))
			}
		})
	}
	applyEnv(rootCmd.PersistentFlags())
	applyEnv(cmd.Flags())

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)

	return cfg.Validate()
}

func openStore() (qstore.Store, error) {
	path, err := cfg.ResolveQTablePath()
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"backend": cfg.Store, "path": path}).Debug("opening Q-table store")
	if cfg.Store == config.StoreSQLite {
		return qstore.OpenSQLite(path)
	}
	return qstore.NewFileStore(path), nil
}

func newRNG() *rand.Rand {
	seed := cfg.Seed
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func runTrain(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore()
	if err != nil {
		return err
	}

	agentCfg := agent.Config{
		Alpha:        cfg.Alpha,
		Gamma:        cfg.Gamma,
		Epsilon:      cfg.Epsilon,
		EpsilonDecay: cfg.EpsilonDecay,
		EpsilonMin:   cfg.EpsilonMin,
		SaveEvery:    cfg.SaveEvery,
	}
	rng := newRNG()
	a := agent.New(agentCfg, store, rng, log)
	defer func() {
		if err := a.Close(); err != nil {
			log.WithError(err).Error("saving Q-table on shutdown")
		}
	}()

	rules := engine.DefaultRules()
	rules.NumPlayers = cfg.Players

	log.WithFields(logrus.Fields{
		"episodes": cfg.Episodes,
		"players":  cfg.Players,
	}).Info("starting self-play training")

	runner := sim.NewRunner(rules, agent.NewDriver(a, log), rng, log)
	stats, err := runner.RunBatch(ctx, cfg.Episodes)
	if err != nil {
		return err
	}

	fmt.Printf("episodes:    %d\n", stats.Episodes)
	for seat, wins := range stats.Wins {
		fmt.Printf("seat %d wins: %d\n", seat, wins)
	}
	fmt.Printf("stalemates:  %d\n", stats.Stalemates)
	fmt.Printf("avg turns:   %.1f\n", stats.AvgTurns())
	fmt.Printf("duration:    %s\n", stats.Duration.Round(time.Millisecond))

	learned := a.Stats()
	fmt.Printf("states:      %d\n", learned.StatesLearned)
	fmt.Printf("decisions:   %d (%.1f%% exploratory)\n", learned.TotalActions, 100*learned.ExplorationRate)
	fmt.Printf("epsilon:     %.4f\n", learned.Epsilon)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.Load()
	if err == qstore.ErrNotFound {
		fmt.Println("no saved Q-table yet; run `notty train` first")
		return nil
	}
	if err != nil {
		return err
	}

	type stateID struct {
		hand, deck, opp uint8
		discard         bool
	}
	states := make(map[stateID]struct{}, len(snap.Entries))
	for _, e := range snap.Entries {
		states[stateID{e.HandBucket, e.DeckBucket, e.OppBucket, e.CanDiscard}] = struct{}{}
	}

	fmt.Printf("saved at:          %s\n", snap.SavedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("states learned:    %d\n", len(states))
	fmt.Printf("table entries:     %d\n", len(snap.Entries))
	fmt.Printf("total decisions:   %d\n", snap.ActionCount)
	fmt.Printf("exploratory:       %d\n", snap.ExplorationCount)
	fmt.Printf("current epsilon:   %.4f\n", snap.Epsilon)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Fatal("notty failed")
	}
}
