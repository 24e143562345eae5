package regexsynth

import (
	"strings"

	"github.com/mlbtranscript/parser/game"
	"github.com/mlbtranscript/parser/livestate"
)

// playerNamePattern mirrors grammar.playerNameClass: a run of letters
// (including the common Latin-1 accented range), apostrophes, periods,
// hyphens, and spaces, the same surface shape a PLAYER_NAME token accepts.
const playerNamePattern = `[A-Za-zÀ-ÖØ-öø-ÿ.' -]+`

// digitsPattern expands a bounded digit count into the supported dialect
// (no {m,n} repetition): min mandatory digits followed by (max-min)
// optional ones.
func digitsPattern(min, max int) string {
	var b strings.Builder
	for i := 0; i < min; i++ {
		b.WriteString("[0-9]")
	}
	for i := min; i < max; i++ {
		b.WriteString("[0-9]?")
	}
	return b.String()
}

// escapeLiteral backslash-escapes every rune in s that this package's own
// regex dialect treats as a metacharacter, so literal names (player names,
// PlayType canonicals) can be embedded safely in a synthesized pattern.
func escapeLiteral(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '+', '(', ')', '\\', '|', '?', '[', ']', '.', '^', '$':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// destinationAlternation returns the literal alternation of every surface
// token a runner starting at origin may legally end at, per spec.md
// section 4.F's movements-pattern templates. "4" and "home" both appear
// even though they denote the same base, since the grammar accepts either
// spelling as an ending token.
func destinationAlternation(origin game.Base) string {
	switch origin {
	case game.Home:
		return `(1|2|3|4|home)`
	case game.First:
		return `(2|3|4|home)`
	case game.Second:
		return `(3|4|home)`
	case game.Third:
		return `(4|home)`
	default:
		return `(1|2|3|4|home)`
	}
}

// pinchAlternation returns the pattern fragment for the tracker's current
// pinch-runner roster, or "" if it is empty.
func pinchAlternation(tr *livestate.Tracker) string {
	names := tr.PinchRunners()
	if len(names) == 0 {
		return ""
	}
	escaped := make([]string, len(names))
	for i, n := range names {
		escaped[i] = escapeLiteral(n)
	}
	return strings.Join(escaped, "|")
}

// runnerAlternation returns the pattern fragment for who may be named as
// the runner in a movement starting at origin: the occupant's literal name
// (or, for the always-present Home-origin template, any player name) plus
// the pinch-runner roster.
func runnerAlternation(occupant string, tr *livestate.Tracker) string {
	var alts []string
	if occupant != "" {
		alts = append(alts, escapeLiteral(occupant))
	} else {
		alts = append(alts, playerNamePattern)
	}
	if pr := pinchAlternation(tr); pr != "" {
		alts = append(alts, pr)
	}
	return "(" + strings.Join(alts, "|") + ")"
}

// originTemplate builds the single-movement pattern for runners starting
// at origin (spec.md section 4.F): "(runner alternation) <origin> -> (dest
// alternation)( [out])?".
func originTemplate(origin game.Base, occupant string, tr *livestate.Tracker) string {
	return runnerAlternation(occupant, tr) + ` ` + origin.Surface() + ` -> ` +
		destinationAlternation(origin) + `( \[out\])?`
}

// MovementsPattern synthesizes the regex fragment matching the
// "[MOVEMENTS] element(, element)*" section for the tracker's current
// occupancy: one alternative per occupied base plus the Home-origin
// template that is always present (any batter may appear as a runner
// starting from home), per spec.md section 4.F.
func MovementsPattern(tr *livestate.Tracker) string {
	elements := []string{originTemplate(game.Home, "", tr)}
	for _, b := range []game.Base{game.First, game.Second, game.Third} {
		if occ := tr.Occupant(b); occ != "" {
			elements = append(elements, originTemplate(b, occ, tr))
		}
	}
	element := "(" + strings.Join(elements, "|") + ")"
	return `\[MOVEMENTS\] ` + element + `(, ` + element + `)*`
}

// subsectionPattern returns the fixed-order sub-section fragments a
// PlayType's Requirements select, in the Base, Batter, Pitcher, Catcher,
// Fielders, Runner, ScoringRunner order spec.md section 4.D fixes.
func subsectionPattern(pt *game.PlayType) string {
	var b strings.Builder
	req := pt.Requirements
	if req.Has(game.RequiresBase) {
		b.WriteString(` \[BASE\] (1|2|3|4|home)`)
	}
	if req.Has(game.RequiresBatter) {
		b.WriteString(` \[BATTER\] ` + playerNamePattern)
	}
	if req.Has(game.RequiresPitcher) {
		b.WriteString(` \[PITCHER\] ` + playerNamePattern)
	}
	if req.Has(game.RequiresCatcher) {
		b.WriteString(` \[CATCHER\] ` + playerNamePattern)
	}
	if req.Has(game.RequiresFielders) {
		b.WriteString(` \[FIELDERS\] ` + playerNamePattern + `(, ` + playerNamePattern + `)*`)
	}
	if req.Has(game.RequiresRunner) {
		b.WriteString(` \[RUNNER\] ` + playerNamePattern)
	}
	if req.Has(game.RequiresScoringRunner) {
		b.WriteString(` \[SCORING_RUNNER\] ` + playerNamePattern)
	}
	return b.String()
}

// playTypeAlternation returns the "(one-of)" alternation of every closed
// PlayType's full "[PLAY] <canonical><sub-sections>[ movements;]" pattern,
// ordered longest-canonical-first for the same leftmost-first shadowing
// reason grammar.playTag orders its alternatives (spec.md section 4.C). A
// play type with no requirements (Game Advisory) carries no "[MOVEMENTS]"
// section or terminating ";" at all: it is finalized immediately after its
// tag (spec.md section 4.D).
func playTypeAlternation(tr *livestate.Tracker) string {
	canonicals := game.CanonicalsLongestFirst()
	alts := make([]string, len(canonicals))
	for i, canonical := range canonicals {
		pt, _ := game.PlayTypeByCanonical(canonical)
		alt := `\[PLAY\] ` + escapeLiteral(canonical) + subsectionPattern(pt)
		if pt.Requirements != 0 {
			alt += ` ` + MovementsPattern(tr) + `;`
		}
		alts[i] = alt
	}
	return "(" + strings.Join(alts, "|") + ")"
}

// PlayPattern synthesizes the regex for a single complete play, from
// "[INNING]" through either the terminating ";" or, for Game Advisory, the
// end of its own tag, parameterized by the tracker's current occupancy and
// pinch-runner roster (spec.md section 4.F).
func PlayPattern(tr *livestate.Tracker) string {
	inning := `\[INNING\] ` + digitsPattern(1, 2) + ` (top|bottom)`
	return inning + ` ` + playTypeAlternation(tr)
}

// contextPattern synthesizes the static "[GAME]...[WEATHER]..." header
// section: game, date, venue, and weather tags in order, space-separated
// (spec.md section 4.F). It does not depend on live state.
func contextPattern() string {
	return `\[GAME\] ` + digitsPattern(1, 6) + ` ` +
		`\[DATE\] ` + digitsPattern(4, 4) + `-` + digitsPattern(2, 2) + `-` + digitsPattern(2, 2) + ` ` +
		`\[VENUE\] [A-Za-zÀ-ÖØ-öø-ÿ ]+ ` +
		`\[WEATHER\] [A-Za-z]+ ` + digitsPattern(1, 3) + ` ` + digitsPattern(1, 3)
}

// teamBlockPattern synthesizes one "[TEAM]...\n[POSITION] name" block.
func teamBlockPattern() string {
	return `\[TEAM\] ` + digitsPattern(1, 3) + `(\n\[[A-Z_]+\] ` + playerNamePattern + `)+`
}

// GamePattern synthesizes the regex for an entire transcript, from the
// very first "[GAME]" tag through "[GAME_END]" (spec.md section 4.F): the
// static header and team blocks, then one or more repetitions of
// PlayPattern, then the closing tag. Each play is newline-terminated, and
// "[GAME_START]" is itself followed by a newline before the first play,
// giving the "{game_start}\n({play}\n)+{game_end}" shape rather than a
// bare space. Because a single regex cannot depend on
// state that only exists after some of its own repetitions have been
// consumed, the plays-repeat portion is synthesized once against tr's
// state at the moment GamePattern is called, the same simplification
// spec.md section 4.F's English description itself makes.
func GamePattern(tr *livestate.Tracker) string {
	return contextPattern() + `\n\n` + teamBlockPattern() + `\n\n` + teamBlockPattern() +
		`\n\n\[GAME_START\]\n(` + PlayPattern(tr) + `\n)+\[GAME_END\]`
}
