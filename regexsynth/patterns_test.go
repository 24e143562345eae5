package regexsynth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlbtranscript/parser/game"
	"github.com/mlbtranscript/parser/livestate"
)

func TestMovementsPatternAlwaysIncludesHomeOrigin(t *testing.T) {
	tr := livestate.New()
	pattern := MovementsPattern(tr)
	ok, err := Matches(pattern, `[MOVEMENTS] Aaron Judge home -> 1`)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMovementsPatternAddsOccupiedBaseTemplate(t *testing.T) {
	tr := livestate.New()
	tr.Update([]game.Movement{{Runner: "DJ LeMahieu", From: game.Home, To: game.First}})
	pattern := MovementsPattern(tr)

	ok, err := Matches(pattern, `[MOVEMENTS] DJ LeMahieu 1 -> 2`)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = Matches(pattern, `[MOVEMENTS] Someone Else 1 -> 2`)
	require.NoError(t, err)
}

func TestMovementsPatternRejectsUnregisteredRunnerFromOccupiedBase(t *testing.T) {
	tr := livestate.New()
	tr.Update([]game.Movement{{Runner: "DJ LeMahieu", From: game.Home, To: game.First}})
	pattern := MovementsPattern(tr)

	ok, err := Matches(pattern, `[MOVEMENTS] Someone Else 1 -> 2`)
	require.NoError(t, err)
	assert.False(t, ok, "a non-occupant, non-pinch runner should not match the First-origin template")
}

func TestMovementsPatternAllowsRegisteredPinchRunner(t *testing.T) {
	tr := livestate.New()
	tr.Update([]game.Movement{{Runner: "DJ LeMahieu", From: game.Home, To: game.First}})
	tr.RegisterPinchRunner("Oswaldo Cabrera")
	pattern := MovementsPattern(tr)

	ok, err := Matches(pattern, `[MOVEMENTS] Oswaldo Cabrera 1 -> 2`)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPlayPatternMatchesASingleRealPlay(t *testing.T) {
	tr := livestate.New()
	pattern := PlayPattern(tr)
	ok, err := Matches(pattern, `[INNING] 1 top [PLAY] Groundout [BATTER] Anthony Volpe [PITCHER] Trevor Bauer [FIELDERS] Aristides Aquino [MOVEMENTS] Anthony Volpe home -> 1 [out];`)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPlayPatternMatchesDoublePlayDespiteSharedPrefix(t *testing.T) {
	tr := livestate.New()
	pattern := PlayPattern(tr)
	// "Double Play" shares the prefix "Double" with the standalone "Double"
	// PlayType; the synthesized alternation must still accept the longer
	// canonical.
	ok, err := Matches(pattern, `[INNING] 2 bottom [PLAY] Double Play [BATTER] Anthony Volpe [PITCHER] Trevor Bauer [FIELDERS] Aristides Aquino [MOVEMENTS] Anthony Volpe home -> 1;`)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGamePatternMatchesAMinimalGame(t *testing.T) {
	tr := livestate.New()
	pattern := GamePattern(tr)
	transcript := "[GAME] 766493 " +
		"[DATE] 2024-03-24 " +
		"[VENUE] Estadio Alfredo Harp Helu " +
		"[WEATHER] Sunny 85 9\n\n" +
		"[TEAM] 20\n[SECOND_BASE] Robinson Cano\n\n" +
		"[TEAM] 147\n[THIRD_BASE] DJ LeMahieu\n\n" +
		"[GAME_START]\n[INNING] 1 top [PLAY] Strikeout [BATTER] Anthony Volpe [PITCHER] Trevor Bauer [MOVEMENTS] Anthony Volpe home -> 1 [out];\n[GAME_END]"
	ok, err := Matches(pattern, transcript)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGamePatternRequiresNewlineBetweenRepeatedPlays(t *testing.T) {
	tr := livestate.New()
	pattern := GamePattern(tr)
	header := "[GAME] 1 [DATE] 2024-03-24 [VENUE] Truist Park [WEATHER] Clear 70 5\n\n" +
		"[TEAM] 1\n[PITCHER] A One\n\n[TEAM] 2\n[CATCHER] B Two\n\n[GAME_START]\n"
	play := `[INNING] 1 top [PLAY] Strikeout [BATTER] X Y [PITCHER] A One [MOVEMENTS] X Y home -> 1 [out];`

	withNewline := header + play + "\n" + play + "\n[GAME_END]"
	ok, err := Matches(pattern, withNewline)
	require.NoError(t, err)
	assert.True(t, ok)

	withSpace := header + play + " " + play + "\n[GAME_END]"
	ok, err = Matches(pattern, withSpace)
	require.NoError(t, err)
	assert.False(t, ok, "a bare space between repeated plays must not match")
}

func TestPlayPatternGameAdvisoryHasNoMovementsOrSemicolon(t *testing.T) {
	tr := livestate.New()
	pattern := PlayPattern(tr)
	ok, err := Matches(pattern, `[INNING] 1 top [PLAY] Game Advisory`)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNextValidCharactersOnPlayPatternAtStart(t *testing.T) {
	tr := livestate.New()
	pattern := PlayPattern(tr)
	next, err := NextValidCharacters(pattern, "")
	require.NoError(t, err)
	assert.Contains(t, next, '[', "a play must begin with the [INNING] tag")
}
