package game

// Requirement is a bit in a PlayType's requirement set, naming one of the
// sub-sections a play of that type must carry (spec.md section 4.A).
type Requirement uint16

const (
	RequiresBase Requirement = 1 << iota
	RequiresBatter
	RequiresPitcher
	RequiresCatcher
	RequiresFielders
	RequiresRunner
	RequiresScoringRunner
)

// Has reports whether r includes all bits of sub.
func (r Requirement) Has(sub Requirement) bool {
	return r&sub == sub
}

// PlayType is one of the forty-three closed play types. Canonical is the
// exact surface spelling used after "[PLAY] " (spec.md section 6);
// Requirements is the fixed set of sub-sections that type's surface form
// must carry, in the fixed order Base, Batter, Pitcher, Catcher, Fielders,
// Runner, ScoringRunner (spec.md section 4.D).
type PlayType struct {
	Enum
	Requirements Requirement
}

var playTypes []*PlayType

func newPlayType(canonical string, req Requirement) *PlayType {
	pt := &PlayType{Enum: Enum{Canonical: canonical}, Requirements: req}
	playTypes = append(playTypes, pt)
	return pt
}

const (
	bpf = RequiresBatter | RequiresPitcher | RequiresFielders
	bpfs = RequiresBatter | RequiresPitcher | RequiresFielders | RequiresScoringRunner
	bpfr = RequiresBatter | RequiresPitcher | RequiresFielders | RequiresRunner
	bp  = RequiresBatter | RequiresPitcher
	xfr = RequiresBase | RequiresFielders | RequiresRunner
	xs  = RequiresBase | RequiresScoringRunner
	pr  = RequiresPitcher | RequiresRunner
	fr  = RequiresFielders | RequiresRunner
	bc  = RequiresBatter | RequiresCatcher
	pc  = RequiresPitcher | RequiresCatcher
)

var (
	PlayTypeGroundout               = newPlayType("Groundout", bpf)
	PlayTypeBuntGroundout           = newPlayType("Bunt Groundout", bpf)
	PlayTypeStrikeout               = newPlayType("Strikeout", bp)
	PlayTypeLineout                 = newPlayType("Lineout", bpf)
	PlayTypeBuntLineout              = newPlayType("Bunt Lineout", bpf)
	PlayTypeFlyout                   = newPlayType("Flyout", bpf)
	PlayTypePopOut                   = newPlayType("Pop Out", bpf)
	PlayTypeBuntPopOut                = newPlayType("Bunt Pop Out", bpf)
	PlayTypeForceout                 = newPlayType("Forceout", bpf)
	PlayTypeFieldersChoiceOut        = newPlayType("Fielders Choice Out", bpfs)
	PlayTypeDoublePlay               = newPlayType("Double Play", bpf)
	PlayTypeTriplePlay               = newPlayType("Triple Play", bpf)
	PlayTypeRunnerDoublePlay         = newPlayType("Runner Double Play", bpf)
	PlayTypeRunnerTriplePlay         = newPlayType("Runner Triple Play", bpf)
	PlayTypeGroundedIntoDoublePlay   = newPlayType("Grounded Into Double Play", bpf)
	PlayTypeStrikeoutDoublePlay      = newPlayType("Strikeout Double Play", bpf)
	PlayTypePickoff                  = newPlayType("Pickoff", xfr)
	PlayTypePickoffError             = newPlayType("Pickoff Error", xfr)
	PlayTypeCaughtStealing           = newPlayType("Caught Stealing", xfr)
	PlayTypePickoffCaughtStealing    = newPlayType("Pickoff Caught Stealing", xfr)
	PlayTypeWildPitch                = newPlayType("Wild Pitch", pr)
	PlayTypeRunnerOut                = newPlayType("Runner Out", fr)
	PlayTypeFieldOut                 = newPlayType("Field Out", fr)
	PlayTypeBatterOut                = newPlayType("Batter Out", bc)
	PlayTypeBalk                     = newPlayType("Balk", RequiresPitcher)
	PlayTypePassedBall               = newPlayType("Passed Ball", pc)
	PlayTypeError                    = newPlayType("Error", pc)
	PlayTypeSingle                   = newPlayType("Single", bp)
	PlayTypeDouble                   = newPlayType("Double", bp)
	PlayTypeTriple                   = newPlayType("Triple", bp)
	PlayTypeHomeRun                  = newPlayType("Home Run", bp)
	PlayTypeWalk                     = newPlayType("Walk", bp)
	PlayTypeIntentWalk               = newPlayType("Intent Walk", bp)
	PlayTypeHitByPitch               = newPlayType("Hit By Pitch", bp)
	PlayTypeFieldersChoice           = newPlayType("Fielders Choice", bpf)
	PlayTypeCatcherInterference      = newPlayType("Catcher Interference", bpf)
	PlayTypeStolenBase               = newPlayType("Stolen Base", xs)
	PlayTypeSacFly                   = newPlayType("Sac Fly", bpfs)
	PlayTypeSacFlyDoublePlay         = newPlayType("Sac Fly Double Play", bpfs)
	PlayTypeSacBunt                  = newPlayType("Sac Bunt", bpfr)
	PlayTypeSacBuntDoublePlay        = newPlayType("Sac Bunt Double Play", bpfr)
	PlayTypeFieldError               = newPlayType("Field Error", bpf)
	PlayTypeGameAdvisory             = newPlayType("Game Advisory", 0)
)

// PlayTypes lists every closed PlayType value in declaration order, which
// is NOT the order used for grammar alternation (see CanonicalsLongestFirst).
func PlayTypes() []*PlayType {
	return append([]*PlayType(nil), playTypes...)
}

var playTypeByCanonical map[string]*PlayType

func init() {
	playTypeByCanonical = make(map[string]*PlayType, len(playTypes))
	for _, pt := range playTypes {
		playTypeByCanonical[pt.Canonical] = pt
	}
}

// PlayTypeByCanonical parses a "[PLAY] <...>" body back into a PlayType.
// It returns (nil, false) for any string outside the closed set.
func PlayTypeByCanonical(canonical string) (*PlayType, bool) {
	pt, ok := playTypeByCanonical[canonical]
	return pt, ok
}

// CanonicalsLongestFirst returns every canonical PlayType surface string
// ordered by descending length (ties broken by declaration order), which
// is the order the grammar primitives alternate over so that a shorter
// play type sharing a prefix with a longer one ("Double" / "Double Play")
// never shadows the longer match (spec.md section 4.C).
func CanonicalsLongestFirst() []string {
	out := make([]string, len(playTypes))
	for i, pt := range playTypes {
		out[i] = pt.Canonical
	}
	// Stable insertion sort: the play type list is small (43 entries) and
	// this keeps declaration order as the tiebreaker without importing sort
	// for a one-off comparator.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j]) > len(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
