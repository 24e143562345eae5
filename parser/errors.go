package parser

import (
	"github.com/pkg/errors"

	"github.com/mlbtranscript/parser/game"
	"github.com/mlbtranscript/parser/livestate"
)

// SemanticViolationError is the outcome from spec.md section 7 of a play
// whose movements fail one of livestate's validation rules: the grammar
// was well-formed but the runner bookkeeping was not. It carries the
// structured Inning spec.md section 7 asks for, not just a message.
type SemanticViolationError struct {
	Inning game.Inning
	cause  error
}

func (e *SemanticViolationError) Error() string {
	return e.cause.Error()
}

func (e *SemanticViolationError) Unwrap() error {
	return e.cause
}

// wrapViolation turns a *livestate.ViolationError into the public
// SemanticViolationError, following the teacher's errors.Wrapf convention
// for attaching context at a package boundary.
func wrapViolation(err error) error {
	var v *livestate.ViolationError
	if !errors.As(err, &v) {
		return err
	}
	return &SemanticViolationError{
		Inning: v.Inning,
		cause:  errors.Wrapf(err, "play in %s failed validation", v.Inning),
	}
}
