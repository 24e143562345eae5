package builder

import "github.com/mlbtranscript/parser/game"

// Game incrementally accumulates a game.Game's top-level fields as the
// streaming machine walks the Context, HomeTeam, AwayTeam, and Plays
// sections (spec.md section 4.B).
type Game struct {
	gamePK  *int
	date    *string
	venue   *string
	weather *game.Weather

	homeTeamID *int
	homePlayers []game.Player

	awayTeamID *int
	awayPlayers []game.Player

	plays []game.Play
}

func (b *Game) SetGamePK(n int)            { b.gamePK = &n }
func (b *Game) SetDate(date string)        { b.date = &date }
func (b *Game) SetVenue(venue string)      { b.venue = &venue }
func (b *Game) SetWeather(w game.Weather)  { b.weather = &w }

func (b *Game) SetHomeTeamID(id int) { b.homeTeamID = &id }
func (b *Game) AddHomePlayer(p game.Player) {
	b.homePlayers = append(b.homePlayers, p)
}

func (b *Game) SetAwayTeamID(id int) { b.awayTeamID = &id }
func (b *Game) AddAwayPlayer(p game.Player) {
	b.awayPlayers = append(b.awayPlayers, p)
}

func (b *Game) AddPlay(p game.Play) {
	b.plays = append(b.plays, p)
}

// Finish requires the game id, date, venue, weather triple, and both team
// ids; it delivers an immutable game.Game (spec.md section 4.B).
func (b *Game) Finish() (game.Game, error) {
	if b.gamePK == nil {
		return game.Game{}, &MissingFieldError{Builder: "Game", Field: "gamePK"}
	}
	if b.date == nil {
		return game.Game{}, &MissingFieldError{Builder: "Game", Field: "date"}
	}
	if b.venue == nil {
		return game.Game{}, &MissingFieldError{Builder: "Game", Field: "venue"}
	}
	if b.weather == nil {
		return game.Game{}, &MissingFieldError{Builder: "Game", Field: "weather"}
	}
	if b.homeTeamID == nil {
		return game.Game{}, &MissingFieldError{Builder: "Game", Field: "homeTeamID"}
	}
	if b.awayTeamID == nil {
		return game.Game{}, &MissingFieldError{Builder: "Game", Field: "awayTeamID"}
	}

	return game.Game{
		Context: game.Context{
			GamePK:  *b.gamePK,
			Date:    *b.date,
			Venue:   *b.venue,
			Weather: *b.weather,
		},
		Home: game.Team{
			TeamID:  *b.homeTeamID,
			Players: append([]game.Player(nil), b.homePlayers...),
		},
		Away: game.Team{
			TeamID:  *b.awayTeamID,
			Players: append([]game.Player(nil), b.awayPlayers...),
		},
		Plays: append([]game.Play(nil), b.plays...),
	}, nil
}
