// Package livestate tracks the parts of game state that are needed to
// decide whether a play's movements are semantically valid, and to
// parameterize the regex synthesizer: which runner occupies which base,
// the pinch-runner roster, and which side is currently batting (spec.md
// section 4.E).
package livestate

import (
	"fmt"

	"github.com/mlbtranscript/parser/game"
)

// Tracker is the live game state. Occupancy is changed by Update, after a
// play's movements have passed Validate, and cleared by OnSideChange; the
// pinch-runner roster grows through RegisterPinchRunner.
type Tracker struct {
	occupant  [4]string // indexed by game.Base; "" means empty.
	pinch     map[string]struct{}
	side      game.TopBottom
	haveSide  bool
}

// New returns a Tracker with empty bases and no pinch runners.
func New() *Tracker {
	return &Tracker{pinch: make(map[string]struct{})}
}

// Occupant returns the runner currently bound to b, or "" if empty.
// Per the open question in spec.md section 9, the tracker never clears a
// base's occupant as part of advancing a different runner away from it;
// "occupant" therefore means "last-bound runner", not "runner physically
// on the base right now".
func (t *Tracker) Occupant(b game.Base) string {
	return t.occupant[b]
}

// RegisterPinchRunner adds name to the pinch-runner roster. Called by the
// streaming machine whenever a player is registered with game.PositionPinchRunner
// (spec.md section 4.E).
func (t *Tracker) RegisterPinchRunner(name string) {
	t.pinch[name] = struct{}{}
}

// IsPinchRunner reports whether name is in the pinch-runner roster.
func (t *Tracker) IsPinchRunner(name string) bool {
	_, ok := t.pinch[name]
	return ok
}

// PinchRunners returns the roster names in no particular order.
func (t *Tracker) PinchRunners() []string {
	out := make([]string, 0, len(t.pinch))
	for name := range t.pinch {
		out = append(out, name)
	}
	return out
}

// OnSideChange is called on every "[INNING] N side" tag, which precedes
// each individual play rather than each half-inning as a whole; it resets
// all four occupancy slots to empty only when side actually differs from
// the side recorded by the previous call, so consecutive plays within the
// same half-inning keep accumulating occupancy (spec.md section 4.D/4.E).
// The pinch-runner roster is unaffected either way.
func (t *Tracker) OnSideChange(side game.TopBottom) {
	if t.haveSide && side == t.side {
		return
	}
	t.occupant = [4]string{}
	t.side = side
	t.haveSide = true
}

// ViolationError is the SemanticViolation from spec.md section 7: a
// validation rule failed for a specific inning.
type ViolationError struct {
	Inning  game.Inning
	Message string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("semantic violation in inning %s: %s", e.Inning, e.Message)
}

// Simplify groups movements by runner name, collapsing each runner's
// group into a single movement whose From is the earliest starting base
// and whose To is the latest ending base (forward ordering Home -> First
// -> Second -> Third -> Home), with Out true iff any movement in the
// group was flagged out (spec.md section 4.E). The input order of
// distinct runners is preserved in the output.
func Simplify(movements []game.Movement) []game.Movement {
	type group struct {
		movement game.Movement
		seen     bool
	}
	order := make([]string, 0, len(movements))
	groups := make(map[string]*group, len(movements))

	for _, m := range movements {
		g, ok := groups[m.Runner]
		if !ok {
			g = &group{movement: m, seen: true}
			groups[m.Runner] = g
			order = append(order, m.Runner)
			continue
		}
		if originRank(m.From) < originRank(g.movement.From) {
			g.movement.From = m.From
		}
		if destRank(m.To) > destRank(g.movement.To) {
			g.movement.To = m.To
		}
		if m.Out {
			g.movement.Out = true
		}
	}

	out := make([]game.Movement, 0, len(order))
	for _, name := range order {
		out = append(out, groups[name].movement)
	}
	return out
}

// originRank orders bases for "earliest starting base": Home < First < Second < Third.
func originRank(b game.Base) int {
	return int(b)
}

// destRank orders bases for "latest ending base": First < Second < Third < Home.
// Home ranks highest here because a movement ending at Home is always the
// furthest a runner can advance, regardless of where it started.
func destRank(b game.Base) int {
	if b == game.Home {
		return int(game.Third) + 1
	}
	return int(b)
}

var forbiddenDirections = map[[2]game.Base]struct{}{
	{game.Third, game.Second}: {},
	{game.Third, game.First}:  {},
	{game.Second, game.First}: {},
}

// Validate checks a play's simplified movements against the tracker's
// current occupancy and pinch-runner roster, per the three rules in
// spec.md section 4.E. It does not mutate the tracker; call Update after
// a successful Validate.
func (t *Tracker) Validate(inning game.Inning, simplified []game.Movement) error {
	for _, m := range simplified {
		if _, forbidden := forbiddenDirections[[2]game.Base{m.From, m.To}]; forbidden {
			return &ViolationError{
				Inning:  inning,
				Message: fmt.Sprintf("runner %s moved %s -> %s, which is a forbidden direction", m.Runner, m.From, m.To),
			}
		}

		if m.From == game.Home {
			continue
		}

		occupant := t.occupant[m.From]
		if occupant == "" {
			return &ViolationError{
				Inning:  inning,
				Message: fmt.Sprintf("runner %s moved from %s, which is empty", m.Runner, m.From),
			}
		}

		if occupant != m.Runner && !t.IsPinchRunner(m.Runner) {
			return &ViolationError{
				Inning:  inning,
				Message: fmt.Sprintf("runner %s is not the occupant of %s (found %s) and is not a registered pinch runner", m.Runner, m.From, occupant),
			}
		}
	}
	return nil
}

// Update applies a play's validated, simplified movements to the
// tracker's occupancy. Movements with Out set do not change occupancy;
// others bind their To base to the runner's name. From slots are never
// explicitly cleared (spec.md section 9, open question 2).
func (t *Tracker) Update(simplified []game.Movement) {
	next := t.occupant
	for _, m := range simplified {
		if m.Out {
			continue
		}
		next[m.To] = m.Runner
	}
	t.occupant = next
}
