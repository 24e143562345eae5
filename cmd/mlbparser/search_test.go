package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlbtranscript/parser/game"
)

func TestMatchesRosterIsCaseInsensitiveAndUnicodeAware(t *testing.T) {
	team := game.Team{
		Players: []game.Player{
			{Name: "Robinson Canó", Position: game.PositionSecondBase},
			{Name: "DJ LeMahieu", Position: game.PositionThirdBase},
		},
	}

	matches := matchesRoster(team, "cANÓ")
	assert.Len(t, matches, 1)
	assert.Equal(t, "Robinson Canó", matches[0].Name)
}

func TestMatchesRosterEmptyQueryMatchesEveryone(t *testing.T) {
	team := game.Team{
		Players: []game.Player{
			{Name: "A One", Position: game.PositionPitcher},
			{Name: "B Two", Position: game.PositionCatcher},
		},
	}

	assert.Len(t, matchesRoster(team, ""), 2)
}
