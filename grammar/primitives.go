// Package grammar holds the anchored regular expressions that recognize
// one grammar primitive at a time from spec.md section 4.C: literal tags,
// player names, base tokens, and the movement separators. Every pattern
// is compiled once at package init and anchored to the start of whatever
// suffix of the input buffer it is tested against.
package grammar

import (
	"regexp"
	"strings"

	"github.com/mlbtranscript/parser/game"
)

// playerNameClass is the character class for PLAYER_NAME (spec.md section
// 4.C): Latin letters including the accented ranges, apostrophe, period,
// hyphen, and internal spaces.
const playerNameClass = `A-Za-zÀ-ÖØ-öø-ÿ.' \-`

// Match is the outcome of testing a Primitive against a buffer suffix.
// End is the byte offset (within the tested suffix) just past the match;
// callers compare End against the length of the *whole* remaining buffer
// to distinguish a committed match from one that merely reached the end
// of currently-available input (spec.md section 4.D, outcome 2).
type Match struct {
	End    int
	Groups map[string]string
}

// Primitive wraps a compiled, start-anchored regular expression together
// with the names of any capture groups a caller cares about. literalPrefix
// is the longest fixed text every match must begin with (e.g. "[GAME] "),
// used to tell "buf is too short to contain this literal yet" apart from
// "buf can never match this primitive" -- Go's regexp package has no
// incremental-matching API, so a buffer truncated mid-literal by a chunk
// boundary would otherwise report a false no-match (spec.md section 9's
// chunk-obliviousness requirement).
type Primitive struct {
	Name          string
	re            *regexp.Regexp
	literalPrefix string
}

func compile(name, literalPrefix, pattern string) *Primitive {
	return &Primitive{Name: name, re: regexp.MustCompile("^" + pattern), literalPrefix: literalPrefix}
}

// Match attempts to match p against the start of buf. ok is false if the
// primitive can never match buf (spec.md outcome 3, "no match"); when ok is
// true, callers must still check whether Match.End == len(buf) to detect
// outcome 2 ("match but insufficient lookahead"), which Match also reports
// for an empty buffer or one that is a strict prefix of p's literalPrefix.
func (p *Primitive) Match(buf string) (Match, bool) {
	if buf == "" {
		return Match{End: 0, Groups: map[string]string{}}, true
	}
	if p.literalPrefix != "" && len(buf) < len(p.literalPrefix) && strings.HasPrefix(p.literalPrefix, buf) {
		return Match{End: len(buf), Groups: map[string]string{}}, true
	}
	loc := p.re.FindStringSubmatchIndex(buf)
	if loc == nil {
		return Match{}, false
	}
	groups := make(map[string]string, len(p.re.SubexpNames())-1)
	for i, name := range p.re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		if loc[2*i] < 0 {
			continue
		}
		groups[name] = buf[loc[2*i]:loc[2*i+1]]
	}
	return Match{End: loc[1], Groups: groups}, true
}

var (
	PlayerName = compile("PLAYER_NAME", "", `(?P<name>[`+playerNameClass+`]+)`)
	BaseName   = compile("BASE_NAME", "", ` ?(?P<base>1|2|3|4|home) ?`)

	// DestBase matches a bare destination base token with no surrounding
	// space, used after MovementHeader has already consumed the "-> "
	// separator; unlike BaseName it must not also eat the space that
	// OutMarker or CommaSpace require immediately afterward.
	DestBase = compile("DEST_BASE", "", `(?P<base>1|2|3|4|home)`)

	// MovementHeader matches "<name> <origin-base> -> " as a single token.
	// PLAYER_NAME's character class admits the letters of "home", so a
	// plain greedy PLAYER_NAME match would swallow the origin token itself
	// when a runner starts from home (the common case, every batter's own
	// movement). The non-greedy name group here lets RE2 find the shortest
	// name that still completes the whole token, which resolves the
	// ambiguity without lookaround (spec.md section 9). It has no fixed
	// literalPrefix of its own; callers should treat a buffer that does not
	// yet contain " -> " as insufficient lookahead rather than a non-match.
	MovementHeader = compile("MOVEMENT_HEADER", "", `(?P<name>[`+playerNameClass+`]+?) (?P<base>1|2|3|4|home) -> `)

	GameTag          = compile("[GAME]", "[GAME] ", `\[GAME\] (?P<value>\d{1,6})`)
	DateTag          = compile("[DATE]", "[DATE] ", `\[DATE\] (?P<value>\d{4}-\d{2}-\d{2})`)
	VenueTag         = compile("[VENUE]", "[VENUE] ", `\[VENUE\] (?P<value>[A-Za-zÀ-ÖØ-öø-ÿ ]+)`)
	WeatherTag       = compile("[WEATHER]", "[WEATHER] ", `\[WEATHER\] (?P<condition>\w+) (?P<temp>\d{1,3}) (?P<wind>\d{1,3})`)
	TeamTag          = compile("[TEAM]", "[TEAM] ", `\[TEAM\] (?P<value>\d{1,3})`)
	InningTag        = compile("[INNING]", "[INNING] ", `\[INNING\] (?P<number>\d{1,2}) (?P<side>top|bottom)`)
	BaseTag          = compile("[BASE]", "[BASE]", `\[BASE\] ?(?P<base>1|2|3|4|home) ?`)
	BatterTag        = compile("[BATTER]", "[BATTER] ", `\[BATTER\] (?P<name>[`+playerNameClass+`]+)`)
	PitcherTag       = compile("[PITCHER]", "[PITCHER] ", `\[PITCHER\] (?P<name>[`+playerNameClass+`]+)`)
	CatcherTag       = compile("[CATCHER]", "[CATCHER] ", `\[CATCHER\] (?P<name>[`+playerNameClass+`]+)`)
	RunnerTag        = compile("[RUNNER]", "[RUNNER] ", `\[RUNNER\] (?P<name>[`+playerNameClass+`]+)`)
	ScoringRunnerTag = compile("[SCORING_RUNNER]", "[SCORING_RUNNER] ", `\[SCORING_RUNNER\] (?P<name>[`+playerNameClass+`]+)`)
	FieldersTag      = compile("[FIELDERS]", "[FIELDERS] ", `\[FIELDERS\] `)
	FielderName      = compile("FIELDER_NAME", "", `(?P<name>[`+playerNameClass+`]+)`)
	CommaSpace       = compile("COMMA_SPACE", ", ", `, `)
	MovementsTag     = compile("[MOVEMENTS]", "[MOVEMENTS] ", `\[MOVEMENTS\] `)
	Arrow            = compile("ARROW", " -> ", ` -> `)
	OutMarker        = compile("[out]", " [out]", ` \[out\]`)
	Semicolon        = compile(";", ";", `;`)
	GameStart        = compile("[GAME_START]", "[GAME_START]", `\[GAME_START\]`)
	GameEnd          = compile("[GAME_END]", "[GAME_END]", `\[GAME_END\]`)
)

// PositionTag matches "[<SURFACE_POSITION>] <name>" for exactly one
// closed Position, returning the parsed Position and matched name.
type PositionTag struct {
	Position      *game.Position
	re            *regexp.Regexp
	literalPrefix string
}

var positionTags []*PositionTag

func init() {
	for _, p := range game.Positions() {
		prefix := `[` + p.SurfaceName() + `] `
		pattern := `\[` + regexp.QuoteMeta(p.SurfaceName()) + `\] (?P<name>[` + playerNameClass + `]+)`
		positionTags = append(positionTags, &PositionTag{
			Position:      p,
			re:            regexp.MustCompile("^" + pattern),
			literalPrefix: prefix,
		})
	}
}

// MatchAnyPosition tries every closed Position's tag in turn, returning the
// first that matches (the tag literals are mutually exclusive, so order
// does not matter here the way it does for PlayType alternation). needMore
// reports that buf is too short to decide yet -- because it is empty,
// because it is a strict prefix of some position's literal tag, or because
// a tag's match reaches the end of buf -- in which case tag, end, and name
// are meaningless.
func MatchAnyPosition(buf string) (tag *PositionTag, end int, name string, ok bool, needMore bool) {
	if buf == "" {
		return nil, 0, "", false, true
	}
	ambiguous := false
	for _, pt := range positionTags {
		if len(buf) < len(pt.literalPrefix) {
			if strings.HasPrefix(pt.literalPrefix, buf) {
				ambiguous = true
			}
			continue
		}
		if !strings.HasPrefix(buf, pt.literalPrefix) {
			continue
		}
		loc := pt.re.FindStringSubmatchIndex(buf)
		if loc == nil {
			continue
		}
		nameIdx := pt.re.SubexpIndex("name")
		matchedName := buf[loc[2*nameIdx]:loc[2*nameIdx+1]]
		if loc[1] == len(buf) {
			return nil, 0, "", false, true
		}
		return pt, loc[1], matchedName, true, false
	}
	return nil, 0, "", false, ambiguous
}

// PlayTag matches "[PLAY] <canonical>" for exactly one closed PlayType,
// trying canonicals longest-first so that a shared-prefix pair such as
// "Double"/"Double Play" never has the shorter one shadow the longer
// (spec.md section 4.C).
var playTag = func() *regexp.Regexp {
	canonicals := game.CanonicalsLongestFirst()
	escaped := make([]string, len(canonicals))
	for i, c := range canonicals {
		escaped[i] = regexp.QuoteMeta(c)
	}
	return regexp.MustCompile(`^\[PLAY\] (?P<type>` + strings.Join(escaped, "|") + `)`)
}()

const playTagLiteralPrefix = "[PLAY] "

// MatchPlayTag matches the "[PLAY] <canonical>" tag. needMore reports that
// buf is too short to decide yet, in which case pt and end are meaningless.
func MatchPlayTag(buf string) (pt *game.PlayType, end int, ok bool, needMore bool) {
	if buf == "" {
		return nil, 0, false, true
	}
	if len(buf) < len(playTagLiteralPrefix) {
		return nil, 0, false, strings.HasPrefix(playTagLiteralPrefix, buf)
	}
	loc := playTag.FindStringSubmatchIndex(buf)
	if loc == nil {
		return nil, 0, false, false
	}
	if loc[1] == len(buf) {
		return nil, 0, false, true
	}
	typeIdx := playTag.SubexpIndex("type")
	canonical := buf[loc[2*typeIdx]:loc[2*typeIdx+1]]
	found, ok := game.PlayTypeByCanonical(canonical)
	if !ok {
		return nil, 0, false, false
	}
	return found, loc[1], true, false
}
