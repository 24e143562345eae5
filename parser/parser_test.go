package parser

import (
	"encoding/json"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlbtranscript/parser/game"
)

// assertGameEqual compares two finished games by their JSON rendering and,
// on mismatch, reports a unified diff rather than Go's struct dump so a
// chunk-boundary regression is easy to read at a glance.
func assertGameEqual(t *testing.T, want, got *game.Game) {
	t.Helper()
	wantJSON, err := json.MarshalIndent(want, "", "  ")
	require.NoError(t, err)
	gotJSON, err := json.MarshalIndent(got, "", "  ")
	require.NoError(t, err)

	if string(wantJSON) != string(gotJSON) {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(wantJSON)),
			B:        difflib.SplitLines(string(gotJSON)),
			FromFile: "want",
			ToFile:   "got",
			Context:  3,
		})
		t.Errorf("game mismatch:\n%s", diff)
	}
}

const scenarioB = `[GAME] 766493 [DATE] 2024-03-24 [VENUE] Estadio Alfredo Harp Helu [WEATHER] Sunny 85 9 [TEAM] 20 [SECOND_BASE] Robinson Canó [TEAM] 147 [THIRD_BASE] DJ LeMahieu [GAME_START] [INNING] 1 top [PLAY] Lineout [BATTER] Anthony Volpe [PITCHER] Trevor Bauer [FIELDERS] Aristides Aquino [MOVEMENTS] Anthony Volpe home -> home [out]; [GAME_END]`

func feedWhole(t *testing.T, text string) *Parser {
	t.Helper()
	p := New(false)
	require.NoError(t, p.ParseInput(text))
	return p
}

func feedByRune(t *testing.T, text string) *Parser {
	t.Helper()
	p := New(false)
	for _, r := range text {
		require.NoError(t, p.ParseInput(string(r)))
	}
	return p
}

func TestMinimalGameWithGameAdvisory(t *testing.T) {
	text := `[GAME] 1 [DATE] 2024-03-24 [VENUE] Truist Park [WEATHER] Clear 70 5 ` +
		`[TEAM] 1 [PITCHER] A One [TEAM] 2 [CATCHER] B Two ` +
		`[GAME_START] [INNING] 1 top [PLAY] Game Advisory [GAME_END]`
	p := feedWhole(t, text)

	require.True(t, p.Finished())
	g, ok := p.Complete()
	require.True(t, ok)
	require.Len(t, g.Plays, 1)
	assert.Equal(t, game.PlayTypeGameAdvisory, g.Plays[0].Content.Type)
	assert.Empty(t, g.Plays[0].Movements)
}

func TestSimpleLineout(t *testing.T) {
	p := feedWhole(t, scenarioB)

	require.True(t, p.Finished())
	g, ok := p.Complete()
	require.True(t, ok)
	require.Len(t, g.Plays, 1)

	play := g.Plays[0]
	assert.Equal(t, game.Inning{Number: 1, Side: game.Top}, play.Inning)
	assert.Equal(t, game.PlayTypeLineout, play.Content.Type)
	assert.Equal(t, "Anthony Volpe", play.Content.Batter)
	assert.Equal(t, "Trevor Bauer", play.Content.Pitcher)
	assert.Equal(t, []string{"Aristides Aquino"}, play.Content.Fielders)
	require.Len(t, play.Movements, 1)
	assert.Equal(t, game.Movement{Runner: "Anthony Volpe", From: game.Home, To: game.Home, Out: true}, play.Movements[0])
}

func TestMultiMovementGroundout(t *testing.T) {
	text := `[GAME] 1 [DATE] 2024-03-24 [VENUE] Truist Park [WEATHER] Clear 70 5 ` +
		`[TEAM] 1 [PITCHER] A One [TEAM] 2 [CATCHER] B Two [GAME_START] ` +
		`[INNING] 1 top [PLAY] Groundout [BATTER] Juan Carlos Gamboa [PITCHER] Tanner Tully ` +
		`[FIELDERS] Tanner Tully, Trevor Bauer ` +
		`[MOVEMENTS] Juan Carlos Gamboa home -> home [out], Xavier Fernández home -> 2; ` +
		`[GAME_END]`
	p := feedWhole(t, text)

	require.True(t, p.Finished())
	g, ok := p.Complete()
	require.True(t, ok)
	require.Len(t, g.Plays, 1)
	require.Len(t, g.Plays[0].Movements, 2)
	assert.Equal(t, game.Home, g.Plays[0].Movements[0].To)
	assert.True(t, g.Plays[0].Movements[0].Out)
	assert.Equal(t, game.Second, g.Plays[0].Movements[1].To)
	assert.False(t, g.Plays[0].Movements[1].Out)
}

func TestPinchRunnerAllowedWhenRegistered(t *testing.T) {
	text := `[GAME] 1 [DATE] 2024-03-24 [VENUE] Truist Park [WEATHER] Clear 70 5 ` +
		`[TEAM] 1 [PITCHER] A One [PINCH_RUNNER] Person B [TEAM] 2 [CATCHER] B Two [GAME_START] ` +
		`[INNING] 1 top [PLAY] Walk [BATTER] Person D [PITCHER] A One ` +
		`[MOVEMENTS] Person D home -> 1; ` +
		`[INNING] 1 top [PLAY] Stolen Base [BASE] 2 [SCORING_RUNNER] Person B ` +
		`[MOVEMENTS] Person B 1 -> 2; ` +
		`[GAME_END]`
	p := feedWhole(t, text)

	require.True(t, p.Finished())
	g, ok := p.Complete()
	require.True(t, ok)
	require.Len(t, g.Plays, 2)
}

func TestInvalidMovementWithoutPinchRunnerRaisesSemanticViolation(t *testing.T) {
	text := `[GAME] 1 [DATE] 2024-03-24 [VENUE] Truist Park [WEATHER] Clear 70 5 ` +
		`[TEAM] 1 [PITCHER] A One [TEAM] 2 [CATCHER] B Two [GAME_START] ` +
		`[INNING] 1 top [PLAY] Walk [BATTER] Person D [PITCHER] A One ` +
		`[MOVEMENTS] Person D home -> 1; ` +
		`[INNING] 1 top [PLAY] Stolen Base [BASE] 2 [SCORING_RUNNER] Person B ` +
		`[MOVEMENTS] Person B 1 -> 2; ` +
		`[GAME_END]`
	p := New(false)
	err := p.ParseInput(text)
	require.Error(t, err)

	var sve *SemanticViolationError
	require.ErrorAs(t, err, &sve)
	assert.Equal(t, game.Inning{Number: 1, Side: game.Top}, sve.Inning)
	assert.Contains(t, sve.Error(), "Person B")
}

func TestChunkedFeedingMatchesWholeFeeding(t *testing.T) {
	whole := feedWhole(t, scenarioB)
	chunked := feedByRune(t, scenarioB)

	require.True(t, whole.Finished())
	require.True(t, chunked.Finished())

	wg, _ := whole.Complete()
	cg, _ := chunked.Complete()
	assertGameEqual(t, wg, cg)
}

func TestChunkObliviousnessAcrossArbitraryPartitions(t *testing.T) {
	splits := [][]int{
		{40, 120, 200},
		{1, 2, 3, 4, 5, 300},
		{len(scenarioB) / 2},
	}
	reference := feedWhole(t, scenarioB)
	wantGame, _ := reference.Complete()

	for _, points := range splits {
		p := New(false)
		start := 0
		for _, cut := range points {
			if cut > len(scenarioB) {
				cut = len(scenarioB)
			}
			require.NoError(t, p.ParseInput(scenarioB[start:cut]))
			start = cut
		}
		require.NoError(t, p.ParseInput(scenarioB[start:]))
		require.True(t, p.Finished())
		g, ok := p.Complete()
		require.True(t, ok)
		assertGameEqual(t, wantGame, g)
	}
}

func TestMalformedInputDoesNotRaiseAndStallsInstead(t *testing.T) {
	p := New(false)
	// "[GARBAGE]" never opens any primitive the Context state admits; per
	// spec.md section 4.D's failure semantics this is treated exactly like
	// under-fed input, not reported as an error.
	require.NoError(t, p.ParseInput("[GARBAGE] nonsense"))
	assert.False(t, p.Finished())
	_, ok := p.Complete()
	assert.False(t, ok)
}

func TestValidRegexNonEmptyBeforeFinished(t *testing.T) {
	p := New(false)
	require.NoError(t, p.ParseInput("[GAME] 1"))
	assert.NotEmpty(t, p.ValidRegex())
	assert.False(t, p.Finished())
}

func TestNotFinishedBeforeGameEnd(t *testing.T) {
	p := New(false)
	_, ok := p.Complete()
	assert.False(t, ok)
}
