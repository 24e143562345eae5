package builder

import "github.com/mlbtranscript/parser/game"

// Movement incrementally accumulates the fields of a single game.Movement
// as the streaming machine walks the Movements sub-sections (spec.md
// section 4.B). Each field is an option-typed slot so Finish can tell a
// never-set field apart from one set to its zero value.
type Movement struct {
	runner *string
	from   *game.Base
	to     *game.Base
	out    bool
}

// SetRunner records the runner name for the movement under construction.
func (b *Movement) SetRunner(name string) {
	b.runner = &name
}

// SetFrom records the starting base.
func (b *Movement) SetFrom(base game.Base) {
	b.from = &base
}

// SetTo records the ending base.
func (b *Movement) SetTo(base game.Base) {
	b.to = &base
}

// SetOut records that the movement ended in an out.
func (b *Movement) SetOut(out bool) {
	b.out = out
}

// Finish promotes the accumulated fields into a game.Movement and resets
// the builder for the next movement in the list (spec.md section 4.B).
func (b *Movement) Finish() (game.Movement, error) {
	if b.runner == nil {
		return game.Movement{}, &MissingFieldError{Builder: "Movement", Field: "runner"}
	}
	if b.from == nil {
		return game.Movement{}, &MissingFieldError{Builder: "Movement", Field: "from"}
	}
	if b.to == nil {
		return game.Movement{}, &MissingFieldError{Builder: "Movement", Field: "to"}
	}

	m := game.Movement{
		Runner: *b.runner,
		From:   *b.from,
		To:     *b.to,
		Out:    b.out,
	}
	*b = Movement{}
	return m, nil
}
