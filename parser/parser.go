// Package parser implements the streaming state machine from spec.md
// section 4.D: it consumes the transcript grammar one buffered chunk at a
// time, drives the builder and live-state packages as each primitive
// commits, and exposes the synthesized continuation regex from regexsynth.
package parser

import (
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mlbtranscript/parser/builder"
	"github.com/mlbtranscript/parser/game"
	"github.com/mlbtranscript/parser/grammar"
	"github.com/mlbtranscript/parser/livestate"
	"github.com/mlbtranscript/parser/regexsynth"
)

type state int

const (
	stGame state = iota
	stDate
	stVenue
	stWeather
	stTeamTag
	stPosition
	stGameStart
	stInningOrEnd
	stPlayTag
	stSubsection
	stFieldersTag
	stFieldersName
	stFieldersCommaOrNext
	stMovementsTag
	stMovementHeader
	stMovementDest
	stMovementOutOrNext
	stDone
)

func (s state) String() string {
	names := map[state]string{
		stGame: "Game", stDate: "Date", stVenue: "Venue", stWeather: "Weather",
		stTeamTag: "TeamTag", stPosition: "Position", stGameStart: "GameStart",
		stInningOrEnd: "InningOrEnd", stPlayTag: "PlayTag", stSubsection: "Subsection",
		stFieldersTag: "FieldersTag", stFieldersName: "FieldersName",
		stFieldersCommaOrNext: "FieldersCommaOrNext", stMovementsTag: "MovementsTag",
		stMovementHeader: "MovementHeader", stMovementDest: "MovementDest",
		stMovementOutOrNext: "MovementOutOrNext", stDone: "Done",
	}
	return names[s]
}

type subsectionKind int

const (
	subBase subsectionKind = iota
	subBatter
	subPitcher
	subCatcher
	subFielders
	subRunner
	subScoringRunner
)

func subsectionsFor(pt *game.PlayType) []subsectionKind {
	var out []subsectionKind
	req := pt.Requirements
	if req.Has(game.RequiresBase) {
		out = append(out, subBase)
	}
	if req.Has(game.RequiresBatter) {
		out = append(out, subBatter)
	}
	if req.Has(game.RequiresPitcher) {
		out = append(out, subPitcher)
	}
	if req.Has(game.RequiresCatcher) {
		out = append(out, subCatcher)
	}
	if req.Has(game.RequiresFielders) {
		out = append(out, subFielders)
	}
	if req.Has(game.RequiresRunner) {
		out = append(out, subRunner)
	}
	if req.Has(game.RequiresScoringRunner) {
		out = append(out, subScoringRunner)
	}
	return out
}

// Parser walks the transcript grammar incrementally. It is not safe for
// concurrent use: spec.md section 5 is explicit that a single instance is
// driven by one goroutine, one ParseInput call at a time.
type Parser struct {
	id     uuid.UUID
	logger *log.Logger

	buf string
	st  state

	teamIndex   int
	subsections []subsectionKind
	subIdx      int

	gameBuilder builder.Game
	playBuilder builder.Play
	tracker     *livestate.Tracker

	finished bool
	result   game.Game
}

// New returns a Parser ready to consume a transcript from its very first
// byte. When debug is true, every committed transition is logged to
// stderr, tagged with a per-instance id so concurrently running parsers in
// the same process (e.g. in a batch job) can be told apart in the log.
func New(debug bool) *Parser {
	id := uuid.New()
	out := io.Discard
	if debug {
		out = os.Stderr
	}
	return &Parser{
		id:      id,
		logger:  log.New(out, "parser["+id.String()+"] ", log.LstdFlags|log.Lmicroseconds),
		tracker: livestate.New(),
	}
}

// ID returns the parser's per-instance identifier.
func (p *Parser) ID() uuid.UUID { return p.id }

// Finished reports whether the closing "[GAME_END]" tag has been consumed.
func (p *Parser) Finished() bool { return p.finished }

// Complete returns the fully built game once Finished is true. The second
// return value is false if parsing has not yet reached "[GAME_END]".
func (p *Parser) Complete() (*game.Game, bool) {
	if !p.finished {
		return nil, false
	}
	g := p.result
	return &g, true
}

// ValidRegex synthesizes the regex describing every textually valid
// continuation of the transcript from the very beginning (spec.md section
// 4.F): a constrained decoder derives this pattern against the full
// accumulated buffer via regexsynth.NextValidCharacters. Because a single
// regex cannot itself depend on state that only exists after some of its
// own repetitions are consumed, the portion describing plays not yet
// reached reflects live state as of right now, the same simplification
// spec.md's own description of the synthesizer makes.
func (p *Parser) ValidRegex() string {
	return regexsynth.GamePattern(p.tracker)
}

// ParseInput feeds chunk to the parser. Chunks may split any token at any
// rune boundary, including mid-tag and mid-name (spec.md section 5); a split
// inside a multi-byte rune of a player name is not supported. The
// parser buffers whatever it cannot yet commit and retries on the next
// call. An outright grammar mismatch never raises: per spec.md section
// 4.D's failure semantics, under-fed and malformed input are treated
// identically, and the parser simply waits for more input that can never
// arrive. The only errors this returns are a *SemanticViolationError when
// the transcript's movements fail live-state validation, or an internal
// builder *MissingFieldError when a required field was never set.
func (p *Parser) ParseInput(chunk string) error {
	p.buf += chunk
	return p.advance()
}

// trimSeparators strips the inter-section whitespace spec.md section 4.C
// tolerates (single spaces, newlines, blank lines) before each new tag is
// attempted. It is safe to call repeatedly: stripping leading whitespace
// from an empty or whitespace-only buffer just returns "", which the
// generic needMore handling already treats correctly.
func trimSeparators(buf string) string {
	return strings.TrimLeft(buf, " \n")
}

func (p *Parser) advance() error {
	for {
		if p.finished {
			return nil
		}
		// stMovementOutOrNext is the one state where a leading space is
		// meaningful rather than a tolerated separator: OutMarker's literal
		// is " [out]", and trimming it away here would make an out
		// movement indistinguishable from one that never had it.
		if p.st != stMovementOutOrNext {
			p.buf = trimSeparators(p.buf)
		}
		progressed, err := p.step()
		if err != nil {
			return err
		}
		if !progressed {
			return nil
		}
	}
}

// step attempts to commit exactly one primitive from the current state. It
// returns progressed=false when the buffer does not yet contain enough
// input to decide (spec.md section 4.D, outcome 2).
func (p *Parser) step() (bool, error) {
	switch p.st {
	case stGame:
		return p.stepSingleTag(grammar.GameTag, func(g grammar.Match) {
			n, _ := strconv.Atoi(g.Groups["value"])
			p.gameBuilder.SetGamePK(n)
		}, stDate)
	case stDate:
		return p.stepSingleTag(grammar.DateTag, func(g grammar.Match) {
			p.gameBuilder.SetDate(g.Groups["value"])
		}, stVenue)
	case stVenue:
		return p.stepSingleTag(grammar.VenueTag, func(g grammar.Match) {
			p.gameBuilder.SetVenue(strings.TrimSpace(g.Groups["value"]))
		}, stWeather)
	case stWeather:
		return p.stepSingleTag(grammar.WeatherTag, func(g grammar.Match) {
			temp, _ := strconv.Atoi(g.Groups["temp"])
			wind, _ := strconv.Atoi(g.Groups["wind"])
			p.gameBuilder.SetWeather(game.Weather{
				Condition:    g.Groups["condition"],
				TemperatureF: temp,
				WindMPH:      wind,
			})
		}, stTeamTag)
	case stTeamTag:
		return p.stepSingleTag(grammar.TeamTag, func(g grammar.Match) {
			id, _ := strconv.Atoi(g.Groups["value"])
			if p.teamIndex == 0 {
				p.gameBuilder.SetHomeTeamID(id)
			} else {
				p.gameBuilder.SetAwayTeamID(id)
			}
		}, stPosition)
	case stPosition:
		return p.stepPosition()
	case stGameStart:
		return p.stepSingleTag(grammar.GameStart, func(grammar.Match) {}, stInningOrEnd)
	case stInningOrEnd:
		return p.stepInningOrEnd()
	case stPlayTag:
		return p.stepPlayTag()
	case stSubsection:
		return p.stepSubsection()
	case stFieldersTag:
		return p.stepSingleTag(grammar.FieldersTag, func(grammar.Match) {}, stFieldersName)
	case stFieldersName:
		return p.stepSingleTag(grammar.FielderName, func(g grammar.Match) {
			p.playBuilder.AddFielder(strings.TrimSpace(g.Groups["name"]))
		}, stFieldersCommaOrNext)
	case stFieldersCommaOrNext:
		return p.stepFieldersCommaOrNext()
	case stMovementsTag:
		return p.stepSingleTag(grammar.MovementsTag, func(grammar.Match) {}, stMovementHeader)
	case stMovementHeader:
		return p.stepMovementHeader()
	case stMovementDest:
		return p.stepMovementDest()
	case stMovementOutOrNext:
		return p.stepMovementOutOrNext()
	default:
		return false, nil
	}
}

// classify interprets a grammar.Primitive.Match result against the whole
// remaining buffer: false/false means no primitive in the language could
// ever match here, true/false means a full token was committed, and
// true/true means the match reached the end of currently available input
// and more may still be needed (spec.md section 4.D, outcome 2).
func classify(m grammar.Match, ok bool, buf string) (committed, needMore bool) {
	if !ok {
		return false, false
	}
	if m.End == len(buf) {
		return false, true
	}
	return true, false
}

// stepSingleTag handles the common case of exactly one admissible
// primitive: commit it, apply effect, advance to next, or report the
// corresponding outcome.
func (p *Parser) stepSingleTag(prim *grammar.Primitive, effect func(grammar.Match), next state) (bool, error) {
	m, ok := prim.Match(p.buf)
	committed, needMore := classify(m, ok, p.buf)
	if needMore {
		return false, nil
	}
	if !committed {
		return false, nil
	}
	effect(m)
	p.logger.Printf("committed %s in state %s", prim.Name, p.st)
	p.buf = p.buf[m.End:]
	p.st = next
	return true, nil
}

func (p *Parser) stepPosition() (bool, error) {
	tag, end, name, ok, needMore := grammar.MatchAnyPosition(p.buf)
	if needMore {
		return false, nil
	}
	if ok {
		p.commitPosition(tag, strings.TrimSpace(name))
		p.buf = p.buf[end:]
		return true, nil
	}
	// Not a position tag: either the next team's [TEAM] tag, or (for the
	// away team) [GAME_START].
	if p.teamIndex == 0 {
		m, tagOK := grammar.TeamTag.Match(p.buf)
		committed, nm := classify(m, tagOK, p.buf)
		if nm {
			return false, nil
		}
		if committed {
			id, _ := strconv.Atoi(m.Groups["value"])
			p.gameBuilder.SetAwayTeamID(id)
			p.teamIndex = 1
			p.buf = p.buf[m.End:]
			p.st = stPosition
			return true, nil
		}
		return false, nil
	}
	m, tagOK := grammar.GameStart.Match(p.buf)
	committed, nm := classify(m, tagOK, p.buf)
	if nm {
		return false, nil
	}
	if committed {
		p.buf = p.buf[m.End:]
		p.st = stInningOrEnd
		return true, nil
	}
	return false, nil
}

func (p *Parser) commitPosition(tag *grammar.PositionTag, name string) {
	player := game.Player{Position: tag.Position, Name: name}
	if p.teamIndex == 0 {
		p.gameBuilder.AddHomePlayer(player)
	} else {
		p.gameBuilder.AddAwayPlayer(player)
	}
	if tag.Position == game.PositionPinchRunner {
		p.tracker.RegisterPinchRunner(name)
	}
	p.logger.Printf("registered %s as %s", name, tag.Position)
}

func (p *Parser) stepInningOrEnd() (bool, error) {
	m, ok := grammar.InningTag.Match(p.buf)
	committed, needMore := classify(m, ok, p.buf)
	if needMore {
		return false, nil
	}
	if committed {
		number, _ := strconv.Atoi(m.Groups["number"])
		side, _ := game.ParseTopBottom(m.Groups["side"])
		p.playBuilder.SetInning(game.Inning{Number: number, Side: side})
		p.tracker.OnSideChange(side)
		p.buf = p.buf[m.End:]
		p.st = stPlayTag
		return true, nil
	}

	m, ok = grammar.GameEnd.Match(p.buf)
	committed, needMore = classify(m, ok, p.buf)
	// "[GAME_END]" is the terminal token and nothing can extend it, so a
	// complete match that reaches the end of the buffer is committed rather
	// than held back for lookahead.
	if needMore && strings.HasPrefix(p.buf, "[GAME_END]") {
		committed, needMore = true, false
	}
	if needMore {
		return false, nil
	}
	if committed {
		g, err := p.gameBuilder.Finish()
		if err != nil {
			return false, err
		}
		p.result = g
		p.finished = true
		p.st = stDone
		p.buf = p.buf[m.End:]
		return true, nil
	}
	return false, nil
}

func (p *Parser) stepPlayTag() (bool, error) {
	pt, end, ok, needMore := grammar.MatchPlayTag(p.buf)
	if needMore {
		return false, nil
	}
	if !ok {
		return false, nil
	}
	p.playBuilder.SetPlayType(pt)
	p.subsections = subsectionsFor(pt)
	p.subIdx = 0
	p.buf = p.buf[end:]
	p.logger.Printf("committed [PLAY] %s", pt.Canonical)

	if len(p.subsections) == 0 {
		// Game Advisory carries no sub-sections at all (spec.md section
		// 4.D): there is no "[MOVEMENTS]" section and no terminating ";"
		// either, so the play is finalized right here.
		return true, p.finishPlay()
	}
	p.st = stSubsection
	return true, nil
}

func (p *Parser) stepSubsection() (bool, error) {
	if p.subIdx >= len(p.subsections) {
		p.st = stMovementsTag
		return true, nil
	}
	switch p.subsections[p.subIdx] {
	case subBase:
		return p.stepSubsectionTag(grammar.BaseTag, func(g grammar.Match) {
			b, _ := game.ParseBase(g.Groups["base"])
			p.playBuilder.SetBase(b)
		})
	case subBatter:
		return p.stepSubsectionTag(grammar.BatterTag, func(g grammar.Match) {
			p.playBuilder.SetBatter(strings.TrimSpace(g.Groups["name"]))
		})
	case subPitcher:
		return p.stepSubsectionTag(grammar.PitcherTag, func(g grammar.Match) {
			p.playBuilder.SetPitcher(strings.TrimSpace(g.Groups["name"]))
		})
	case subCatcher:
		return p.stepSubsectionTag(grammar.CatcherTag, func(g grammar.Match) {
			p.playBuilder.SetCatcher(strings.TrimSpace(g.Groups["name"]))
		})
	case subRunner:
		return p.stepSubsectionTag(grammar.RunnerTag, func(g grammar.Match) {
			p.playBuilder.SetRunner(strings.TrimSpace(g.Groups["name"]))
		})
	case subScoringRunner:
		return p.stepSubsectionTag(grammar.ScoringRunnerTag, func(g grammar.Match) {
			p.playBuilder.SetScoringRunner(strings.TrimSpace(g.Groups["name"]))
		})
	case subFielders:
		p.st = stFieldersTag
		return true, nil
	default:
		return false, nil
	}
}

// stepSubsectionTag is like stepSingleTag but stays in stSubsection and
// advances the subsection cursor instead of jumping to a fixed next state.
func (p *Parser) stepSubsectionTag(prim *grammar.Primitive, effect func(grammar.Match)) (bool, error) {
	m, ok := prim.Match(p.buf)
	committed, needMore := classify(m, ok, p.buf)
	if needMore {
		return false, nil
	}
	if !committed {
		return false, nil
	}
	effect(m)
	p.buf = p.buf[m.End:]
	p.subIdx++
	return true, nil
}

func (p *Parser) stepFieldersCommaOrNext() (bool, error) {
	m, ok := grammar.CommaSpace.Match(p.buf)
	committed, needMore := classify(m, ok, p.buf)
	if needMore {
		return false, nil
	}
	if committed {
		p.buf = p.buf[m.End:]
		p.st = stFieldersName
		return true, nil
	}
	// No comma: the fielders list is done. This is a genuine decision, not
	// a match attempt, so it never needs more input by itself -- whatever
	// comes next (a tag or "[MOVEMENTS]") is handled by stepSubsection.
	p.subIdx++
	p.st = stSubsection
	return true, nil
}

func (p *Parser) stepMovementHeader() (bool, error) {
	if !strings.Contains(p.buf, " -> ") {
		// The name portion may still be arriving; PLAYER_NAME's class
		// admits the letters of "home", so there is no way to tell where
		// the name ends until the "-> " separator itself is visible.
		return false, nil
	}
	m, ok := grammar.MovementHeader.Match(p.buf)
	committed, needMore := classify(m, ok, p.buf)
	if needMore {
		return false, nil
	}
	if !committed {
		return false, nil
	}
	name := m.Groups["name"]
	origin, _ := game.ParseBase(m.Groups["base"])
	p.playBuilder.CurrentMovement().SetRunner(name)
	p.playBuilder.CurrentMovement().SetFrom(origin)
	p.buf = p.buf[m.End:]
	p.st = stMovementDest
	return true, nil
}

func (p *Parser) stepMovementDest() (bool, error) {
	m, ok := grammar.DestBase.Match(p.buf)
	committed, needMore := classify(m, ok, p.buf)
	if needMore {
		return false, nil
	}
	if !committed {
		return false, nil
	}
	dest, _ := game.ParseBase(m.Groups["base"])
	p.playBuilder.CurrentMovement().SetTo(dest)
	p.buf = p.buf[m.End:]
	p.st = stMovementOutOrNext
	return true, nil
}

func (p *Parser) stepMovementOutOrNext() (bool, error) {
	m, ok := grammar.OutMarker.Match(p.buf)
	committed, needMore := classify(m, ok, p.buf)
	if needMore {
		return false, nil
	}
	if committed {
		p.playBuilder.CurrentMovement().SetOut(true)
		p.buf = p.buf[m.End:]
	}

	m, ok = grammar.CommaSpace.Match(p.buf)
	committed, needMore = classify(m, ok, p.buf)
	if needMore {
		return false, nil
	}
	if committed {
		if err := p.playBuilder.CommitMovement(); err != nil {
			return false, err
		}
		p.buf = p.buf[m.End:]
		p.st = stMovementHeader
		return true, nil
	}

	m, ok = grammar.Semicolon.Match(p.buf)
	committed, needMore = classify(m, ok, p.buf)
	if needMore {
		return false, nil
	}
	if committed {
		if err := p.playBuilder.CommitMovement(); err != nil {
			return false, err
		}
		p.buf = p.buf[m.End:]
		return true, p.finishPlay()
	}
	return false, nil
}

func (p *Parser) finishPlay() error {
	play, err := p.playBuilder.Finish()
	if err != nil {
		return err
	}
	simplified := livestate.Simplify(play.Movements)
	if err := p.tracker.Validate(play.Inning, simplified); err != nil {
		return wrapViolation(err)
	}
	p.tracker.Update(simplified)
	play.Movements = simplified
	p.gameBuilder.AddPlay(play)
	p.logger.Printf("committed play %s in inning %s", play.Content.Type, play.Inning)
	p.st = stInningOrEnd
	return nil
}
