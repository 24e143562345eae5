package main

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"github.com/mlbtranscript/parser/game"
)

// foldForSearch lowercases s the same way the teacher's own search feature
// folds case for a case-insensitive match: cases.Lower over the undefined
// language tag, run through transform.String rather than strings.ToLower,
// so the fold is Unicode-aware for the accented names this grammar allows.
func foldForSearch(s string) string {
	folded, _, err := transform.String(cases.Lower(language.Und), s)
	if err != nil {
		return s
	}
	return folded
}

// matchesRoster returns the players on team whose name contains query,
// compared case-insensitively.
func matchesRoster(team game.Team, query string) []game.Player {
	needle := foldForSearch(query)
	var matches []game.Player
	for _, p := range team.Players {
		if strings.Contains(foldForSearch(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	return matches
}
