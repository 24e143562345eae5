package builder

import "github.com/mlbtranscript/parser/game"

// Play incrementally accumulates a play's sub-section fields and its
// ordered movements (spec.md section 4.B). The selected game.PlayType
// determines which of the option-typed slots Finish requires.
type Play struct {
	inning        *game.Inning
	playType      *game.PlayType
	base          *game.Base
	batter        *string
	pitcher       *string
	catcher       *string
	fielders      []string
	runner        *string
	scoringRunner *string
	movements     []game.Movement

	current Movement
}

func (b *Play) SetInning(inning game.Inning) {
	b.inning = &inning
}

func (b *Play) SetPlayType(pt *game.PlayType) {
	b.playType = pt
}

func (b *Play) PlayType() *game.PlayType {
	return b.playType
}

func (b *Play) SetBase(base game.Base) {
	b.base = &base
}

func (b *Play) SetBatter(name string) {
	b.batter = &name
}

func (b *Play) SetPitcher(name string) {
	b.pitcher = &name
}

func (b *Play) SetCatcher(name string) {
	b.catcher = &name
}

func (b *Play) AddFielder(name string) {
	b.fielders = append(b.fielders, name)
}

func (b *Play) SetRunner(name string) {
	b.runner = &name
}

func (b *Play) SetScoringRunner(name string) {
	b.scoringRunner = &name
}

// CurrentMovement returns the in-progress Movement builder for the
// element currently being parsed in the Movements list.
func (b *Play) CurrentMovement() *Movement {
	return &b.current
}

// CommitMovement finalizes the in-progress movement and appends it to the
// play's movement list. It is called from exactly one of the CommaSpace
// (continue the list) or PlayEnd (";") transitions, per spec.md section
// 4.D's resolution of the MovementEnd ambiguity (section 9, open question 1).
func (b *Play) CommitMovement() error {
	m, err := b.current.Finish()
	if err != nil {
		return err
	}
	b.movements = append(b.movements, m)
	return nil
}

// Finish selects the PlayContent variant for the chosen PlayType and
// populates it from the matching slots, failing if any required slot is
// empty (spec.md section 4.B).
func (b *Play) Finish() (game.Play, error) {
	if b.inning == nil {
		return game.Play{}, &MissingFieldError{Builder: "Play", Field: "inning"}
	}
	if b.playType == nil {
		return game.Play{}, &MissingFieldError{Builder: "Play", Field: "playType"}
	}

	req := b.playType.Requirements
	content := game.PlayContent{Type: b.playType}

	if req.Has(game.RequiresBase) {
		if b.base == nil {
			return game.Play{}, &MissingFieldError{Builder: "Play", Field: "base"}
		}
		content.Base = *b.base
		content.HasBase = true
	}
	if req.Has(game.RequiresBatter) {
		if b.batter == nil {
			return game.Play{}, &MissingFieldError{Builder: "Play", Field: "batter"}
		}
		content.Batter = *b.batter
	}
	if req.Has(game.RequiresPitcher) {
		if b.pitcher == nil {
			return game.Play{}, &MissingFieldError{Builder: "Play", Field: "pitcher"}
		}
		content.Pitcher = *b.pitcher
	}
	if req.Has(game.RequiresCatcher) {
		if b.catcher == nil {
			return game.Play{}, &MissingFieldError{Builder: "Play", Field: "catcher"}
		}
		content.Catcher = *b.catcher
	}
	if req.Has(game.RequiresFielders) {
		if len(b.fielders) == 0 {
			return game.Play{}, &MissingFieldError{Builder: "Play", Field: "fielders"}
		}
		content.Fielders = append([]string(nil), b.fielders...)
	}
	if req.Has(game.RequiresRunner) {
		if b.runner == nil {
			return game.Play{}, &MissingFieldError{Builder: "Play", Field: "runner"}
		}
		content.Runner = *b.runner
	}
	if req.Has(game.RequiresScoringRunner) {
		if b.scoringRunner == nil {
			return game.Play{}, &MissingFieldError{Builder: "Play", Field: "scoringRunner"}
		}
		content.ScoringRunner = *b.scoringRunner
	}

	play := game.Play{
		Inning:    *b.inning,
		Content:   content,
		Movements: append([]game.Movement(nil), b.movements...),
	}
	*b = Play{}
	return play, nil
}
