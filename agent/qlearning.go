package agent

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/Winipedia/notty/engine"
	"github.com/Winipedia/notty/internal/qstore"
)

// Config holds the Q-learning hyperparameters.
type Config struct {
	Alpha        float64 // learning rate
	Gamma        float64 // discount factor
	Epsilon      float64 // initial exploration rate
	EpsilonDecay float64 // multiplicative decay per selection
	EpsilonMin   float64 // exploration floor
	SaveEvery    int     // autosave period in actions; 0 disables
}

// DefaultConfig returns the standard training hyperparameters.
func DefaultConfig() Config {
	return Config{
		Alpha:        0.1,
		Gamma:        0.9,
		Epsilon:      0.2,
		EpsilonDecay: 0.9995,
		EpsilonMin:   0.05,
		SaveEvery:    100,
	}
}

// Stats summarizes what the agent has learned so far.
type Stats struct {
	StatesLearned      int
	TotalActions       int
	ExplorationActions int
	ExplorationRate    float64
	Epsilon            float64
}

// Agent is a tabular Q-learner over (StateKey, ActionType) pairs. It is
// not safe for concurrent use; one Agent serves one computer player at a
// time. The zero map entry is the estimate for every unseen pair.
type Agent struct {
	cfg     Config
	epsilon float64
	table   map[StateKey]map[engine.ActionType]float64

	totalActions       int
	explorationActions int

	rng   *rand.Rand
	store qstore.Store
	log   logrus.FieldLogger
}

// New builds an agent and attempts to restore its table from store. A
// missing or unreadable snapshot is logged and the agent starts empty;
// restore problems are never fatal. store may be nil for a purely
// in-memory agent.
func New(cfg Config, store qstore.Store, rng *rand.Rand, log logrus.FieldLogger) *Agent {
	a := &Agent{
		cfg:     cfg,
		epsilon: cfg.Epsilon,
		table:   make(map[StateKey]map[engine.ActionType]float64),
		rng:     rng,
		store:   store,
		log:     log,
	}
	a.restore()
	return a
}

func (a *Agent) restore() {
	if a.store == nil {
		return
	}
	snap, err := a.store.Load()
	if err == qstore.ErrNotFound {
		a.log.Info("no saved Q-table, starting fresh")
		return
	}
	if err != nil {
		a.log.WithError(err).Warn("could not restore Q-table, starting fresh")
		return
	}

	for _, e := range snap.Entries {
		action, ok := engine.ParseActionType(e.Action)
		if !ok {
			a.log.WithField("action", e.Action).Warn("skipping unknown action in saved Q-table")
			continue
		}
		key := StateKey{HandBucket: e.HandBucket, DeckBucket: e.DeckBucket, CanDiscard: e.CanDiscard, OppBucket: e.OppBucket}
		a.set(key, action, e.Value)
	}
	if snap.Epsilon > 0 {
		a.epsilon = snap.Epsilon
	}
	a.totalActions = snap.ActionCount
	a.explorationActions = snap.ExplorationCount

	a.log.WithFields(logrus.Fields{
		"states":  len(a.table),
		"actions": a.totalActions,
		"epsilon": a.epsilon,
	}).Info("Q-table restored")
}

// Q returns the current estimate for (state, action); unseen pairs are 0.
func (a *Agent) Q(state StateKey, action engine.ActionType) float64 {
	return a.table[state][action]
}

func (a *Agent) set(state StateKey, action engine.ActionType, value float64) {
	row := a.table[state]
	if row == nil {
		row = make(map[engine.ActionType]float64)
		a.table[state] = row
	}
	row[action] = value
}

// Epsilon returns the current exploration rate.
func (a *Agent) Epsilon() float64 { return a.epsilon }

// exploitPriority orders action types for deterministic tie-breaking when
// several legal actions share the best Q-value. Lower is preferred.
var exploitPriority = map[engine.ActionType]int{
	engine.ActionDiscardGroup:   0,
	engine.ActionStealCard:      1,
	engine.ActionDrawAndDiscard: 2,
	engine.ActionDrawCards:      3,
	engine.ActionDiscardOne:     4,
	engine.ActionNextTurn:       5,
	engine.ActionPlayForMe:      6,
}

// SelectAction picks one of the legal action types: with probability
// epsilon a uniformly random one, otherwise the highest-valued. Ties break
// by fixed priority, never randomly, so a seeded agent is reproducible.
// Epsilon decays toward EpsilonMin after every call.
func (a *Agent) SelectAction(state StateKey, legal []engine.ActionType) engine.ActionType {
	if len(legal) == 0 {
		return engine.ActionNextTurn
	}
	a.totalActions++

	var chosen engine.ActionType
	if a.rng.Float64() < a.epsilon {
		a.explorationActions++
		chosen = legal[a.rng.IntN(len(legal))]
	} else {
		chosen = legal[0]
		best := a.Q(state, chosen)
		for _, action := range legal[1:] {
			q := a.Q(state, action)
			if q > best || (q == best && exploitPriority[action] < exploitPriority[chosen]) {
				chosen, best = action, q
			}
		}
	}

	a.epsilon = max(a.cfg.EpsilonMin, a.epsilon*a.cfg.EpsilonDecay)

	if a.store != nil && a.cfg.SaveEvery > 0 && a.totalActions%a.cfg.SaveEvery == 0 {
		if err := a.Persist(); err != nil {
			a.log.WithError(err).Warn("periodic Q-table save failed")
		}
	}
	return chosen
}

// Update applies the one-step temporal-difference rule
//
//	Q(s,a) += alpha * (r + gamma * max_a' Q(s',a') - Q(s,a))
//
// where the bootstrap max ranges only over the actions legal in next.
// An empty legalNext (terminal state) bootstraps from 0.
func (a *Agent) Update(state StateKey, action engine.ActionType, reward float64, next StateKey, legalNext []engine.ActionType) {
	var nextMax float64
	for i, nextAction := range legalNext {
		if q := a.Q(next, nextAction); i == 0 || q > nextMax {
			nextMax = q
		}
	}
	old := a.Q(state, action)
	a.set(state, action, old+a.cfg.Alpha*(reward+a.cfg.Gamma*nextMax-old))
}

// Outcome describes the effects of one resolved decision, for reward
// computation. Effects compose additively.
type Outcome struct {
	Won        bool // the acting player's hand emptied
	GroupCards int  // cards removed by a successful group discard
	Stole      bool
	Drew       bool // any draw, including the exchange's draw half
	Passed     bool // ended the turn with no other effect this decision
}

// Reward maps an outcome to its scalar reward.
func (a *Agent) Reward(o Outcome) float64 {
	var r float64
	if o.Won {
		r += 100.0
	}
	if o.GroupCards > 0 {
		r += 10.0 + 2.0*float64(o.GroupCards)
	}
	if o.Stole {
		r += 0.5
	}
	if o.Drew {
		r -= 0.5
	}
	if o.Passed {
		r -= 1.0
	}
	return r
}

// Persist writes the full table and hyperparameter state to the store.
func (a *Agent) Persist() error {
	if a.store == nil {
		return nil
	}
	snap := &qstore.Snapshot{
		Epsilon:          a.epsilon,
		ActionCount:      a.totalActions,
		ExplorationCount: a.explorationActions,
	}
	for state, row := range a.table {
		for action, value := range row {
			snap.Entries = append(snap.Entries, qstore.Entry{
				HandBucket: state.HandBucket,
				DeckBucket: state.DeckBucket,
				CanDiscard: state.CanDiscard,
				OppBucket:  state.OppBucket,
				Action:     action.String(),
				Value:      value,
			})
		}
	}
	// Stable order keeps successive snapshot files diffable.
	sort.Slice(snap.Entries, func(i, j int) bool {
		return entryKey(snap.Entries[i]) < entryKey(snap.Entries[j])
	})
	return a.store.Save(snap)
}

func entryKey(e qstore.Entry) string {
	return fmt.Sprintf("%d|%d|%t|%d|%s", e.HandBucket, e.DeckBucket, e.CanDiscard, e.OppBucket, e.Action)
}

// Close persists once more and releases the store.
func (a *Agent) Close() error {
	if a.store == nil {
		return nil
	}
	if err := a.Persist(); err != nil {
		a.store.Close()
		return err
	}
	return a.store.Close()
}

// Stats reports learning progress.
func (a *Agent) Stats() Stats {
	s := Stats{
		StatesLearned:      len(a.table),
		TotalActions:       a.totalActions,
		ExplorationActions: a.explorationActions,
		Epsilon:            a.epsilon,
	}
	if a.totalActions > 0 {
		s.ExplorationRate = float64(a.explorationActions) / float64(a.totalActions)
	}
	return s
}
