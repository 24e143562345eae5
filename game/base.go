package game

import "strconv"

// Base is one of the four bases a runner can occupy. The forward ordering
// Home -> First -> Second -> Third -> Home is used both to validate that a
// Movement never regresses a runner (spec.md section 3) and to order
// occupied-base alternatives when synthesizing the movements pattern
// (spec.md section 4.F).
type Base int

const (
	Home Base = iota
	First
	Second
	Third
)

func (b Base) String() string {
	switch b {
	case Home:
		return "Home"
	case First:
		return "First"
	case Second:
		return "Second"
	case Third:
		return "Third"
	default:
		return "Base(?)"
	}
}

// Surface returns the canonical surface token for this base as it appears
// after "->" or before it in a movement ("1", "2", "3", or "home"). Home's
// origin-position token is "home"; "4" is parsed as an alias for Home but
// is never produced as output (spec.md section 3).
func (b Base) Surface() string {
	switch b {
	case Home:
		return "home"
	case First:
		return "1"
	case Second:
		return "2"
	case Third:
		return "3"
	default:
		return ""
	}
}

// ParseBase parses a surface base token, accepting "4" as an alias for Home.
func ParseBase(surface string) (Base, bool) {
	switch surface {
	case "home":
		return Home, true
	case "1":
		return First, true
	case "2":
		return Second, true
	case "3":
		return Third, true
	case "4":
		return Home, true
	default:
		return 0, false
	}
}

// forwardRank orders bases Home < First < Second < Third for the "never
// regresses" invariant; Home is rank 0 both as an origin (lowest rank, no
// occupancy precondition) and is reached again as a destination via the
// dedicated occupied-base templates in regexsynth, never through this rank
// comparison directly.
func (b Base) forwardRank() int {
	return int(b)
}

// AtOrBefore reports whether b occurs at or before other in the forward
// ordering Home -> First -> Second -> Third.
func (b Base) AtOrBefore(other Base) bool {
	return b.forwardRank() <= other.forwardRank()
}

// TopBottom is the side of the inning: which team is at bat.
type TopBottom int

const (
	Top TopBottom = iota
	Bottom
)

func (tb TopBottom) String() string {
	if tb == Top {
		return "top"
	}
	return "bottom"
}

// ParseTopBottom parses the "top"/"bottom" surface token.
func ParseTopBottom(surface string) (TopBottom, bool) {
	switch surface {
	case "top":
		return Top, true
	case "bottom":
		return Bottom, true
	default:
		return 0, false
	}
}

// Inning identifies a half-inning: a positive number plus a side.
type Inning struct {
	Number int
	Side   TopBottom
}

func (i Inning) String() string {
	return i.Side.String() + " " + strconv.Itoa(i.Number)
}
