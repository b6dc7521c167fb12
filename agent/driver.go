package agent

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Winipedia/notty/engine"
)

// Driver runs an Agent against a Game: it featurizes the state, lets the
// agent pick a coarse action, resolves parameters through the heuristics,
// applies the action, and feeds the resulting reward back into the
// learner. Hosts route a player's PlayForMe request here.
type Driver struct {
	agent *Agent
	log   logrus.FieldLogger
}

// NewDriver wraps agent for turn execution.
func NewDriver(agent *Agent, log logrus.FieldLogger) *Driver {
	return &Driver{agent: agent, log: log}
}

// Agent returns the wrapped learner.
func (d *Driver) Agent() *Agent { return d.agent }

// PlayDecision makes and learns from exactly one decision for the current
// player. A DrawAndDiscard choice includes its forced discard, so the
// game is never left mid-exchange. Returns the coarse action taken.
func (d *Driver) PlayDecision(g *engine.Game) (engine.ActionType, error) {
	seat := g.CurrentIndex()
	state := Featurize(g)
	legal := selectable(g.LegalActionTypes())
	chosen := d.agent.SelectAction(state, legal)

	var outcome Outcome
	var err error
	switch chosen {
	case engine.ActionDrawCards:
		err = g.Apply(engine.DrawCards(ChooseDrawCount(g)))
		outcome.Drew = true
	case engine.ActionStealCard:
		err = g.Apply(engine.StealCard(ChooseStealTarget(g)))
		outcome.Stole = true
	case engine.ActionDrawAndDiscard:
		if err = g.Apply(engine.DrawAndDiscard()); err == nil {
			err = g.Apply(engine.DiscardOne(ChooseDiscardCard(g)))
		}
		outcome.Drew = true
	case engine.ActionDiscardOne:
		// A pending exchange opened by the host on this player's behalf.
		err = g.Apply(engine.DiscardOne(ChooseDiscardCard(g)))
	case engine.ActionDiscardGroup:
		group := ChooseDiscardGroup(g)
		if group == nil {
			chosen = engine.ActionNextTurn
			err = g.Apply(engine.NextTurn())
			outcome.Passed = true
		} else {
			err = g.Apply(engine.DiscardGroup(group))
			outcome.GroupCards = len(group)
		}
	case engine.ActionNextTurn:
		err = g.Apply(engine.NextTurn())
		outcome.Passed = true
	default:
		return chosen, fmt.Errorf("agent: no handler for action %s", chosen)
	}
	if err != nil {
		return chosen, fmt.Errorf("agent: applying %s: %w", chosen, err)
	}

	outcome.Won = g.WinnerIndex() == seat
	reward := d.agent.Reward(outcome)
	d.agent.Update(state, chosen, reward, Featurize(g), selectable(g.LegalActionTypes()))

	d.log.WithFields(logrus.Fields{
		"game":   g.ID(),
		"seat":   seat,
		"state":  state,
		"action": chosen,
		"reward": reward,
	}).Debug("decision applied")
	return chosen, nil
}

// PlayTurn plays decisions for the current player until the turn passes
// or the game ends.
func (d *Driver) PlayTurn(g *engine.Game) error {
	seat := g.CurrentIndex()
	for !g.IsTerminal() && g.CurrentIndex() == seat {
		if _, err := d.PlayDecision(g); err != nil {
			return err
		}
	}
	return nil
}

// selectable strips PlayForMe from the agent's menu: the driver is already
// the delegate, so re-delegating would loop.
func selectable(legal []engine.ActionType) []engine.ActionType {
	out := legal[:0:0]
	for _, t := range legal {
		if t != engine.ActionPlayForMe {
			out = append(out, t)
		}
	}
	return out
}
