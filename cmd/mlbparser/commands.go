package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/renameio/v2"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mlbtranscript/parser/game"
	"github.com/mlbtranscript/parser/parser"
	"github.com/mlbtranscript/parser/regexsynth"
)

// newCLILogger builds the CLI's own charmbracelet/log logger, styled the
// way stormlightlabs-baseball's server command configures one: timestamps
// on, a short prefix, caller info only in debug mode. This is the CLI's
// concern; the library itself logs through the standard library (see
// parser.New's debug flag).
func newCLILogger(debug bool) *charmlog.Logger {
	return charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          "mlbparser",
		ReportCaller:    debug,
		Level:           levelFor(debug),
	})
}

func levelFor(debug bool) charmlog.Level {
	if debug {
		return charmlog.DebugLevel
	}
	return charmlog.InfoLevel
}

// parseCmd feeds one or more transcript files to independent parser.Parser
// instances over a bounded worker pool, per spec.md section 5's
// "concurrency exists only across instances" rule.
func parseCmd() *cobra.Command {
	var chunkBytes int
	var feedSchedule string
	var outPath string
	var debug bool

	cmd := &cobra.Command{
		Use:   "parse <file> [file...]",
		Short: "Feed one or more transcripts through the parser and print the resulting game",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigForCmd()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("chunk-bytes") && cfg.ChunkBytes > 0 {
				chunkBytes = cfg.ChunkBytes
			}
			if !cmd.Flags().Changed("feed") && cfg.FeedSchedule != "" {
				feedSchedule = cfg.FeedSchedule
			}
			if !cmd.Flags().Changed("debug") {
				debug = cfg.Debug
			}
			if len(args) > 1 && outPath != "" {
				return errors.New("--out only supports a single input file")
			}

			logger := newCLILogger(debug)
			results := runParsePool(args, chunkBytes, feedSchedule, debug, logger)

			var failed bool
			for _, r := range results {
				if r.err != nil {
					failed = true
					logger.Error("parse failed", "file", r.path, "err", r.err)
					continue
				}
				if err := printOrWriteGame(r.path, r.game, outPath); err != nil {
					return err
				}
			}
			if failed {
				return errors.New("one or more files failed to parse")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&chunkBytes, "chunk-bytes", 64, "chunk size in bytes when --feed is not given")
	cmd.Flags().StringVar(&feedSchedule, "feed", "", "explicit chunk-length schedule, e.g. \"10 25 rest\"")
	cmd.Flags().StringVar(&outPath, "out", "", "write the finished game as JSON to this path instead of stdout (single file only)")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable parser debug logging")
	return cmd
}

type parseResult struct {
	path string
	game *game.Game
	err  error
}

// runParsePool feeds each path's file to its own parser.Parser, bounded by
// a fixed-size worker pool of plain goroutines and a channel, in the
// teacher's hand-rolled style rather than an errgroup.
func runParsePool(paths []string, chunkBytes int, feedSchedule string, debug bool, logger *charmlog.Logger) []parseResult {
	workers := runtime.NumCPU()
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	results := make([]parseResult, len(paths))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = parseOneFile(paths[i], chunkBytes, feedSchedule, debug, logger)
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func parseOneFile(path string, chunkBytes int, feedSchedule string, debug bool, logger *charmlog.Logger) parseResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return parseResult{path: path, err: errors.Wrapf(err, "reading %s", path)}
	}

	chunks, err := chunksFor(data, chunkBytes, feedSchedule)
	if err != nil {
		return parseResult{path: path, err: err}
	}

	p := parser.New(debug)
	logger.Debug("starting parse", "file", path, "chunks", len(chunks))
	for _, chunk := range chunks {
		if err := p.ParseInput(chunk); err != nil {
			return parseResult{path: path, err: errors.Wrapf(err, "parsing %s", path)}
		}
	}

	g, ok := p.Complete()
	if !ok {
		return parseResult{path: path, err: errors.Errorf("%s: input exhausted before [GAME_END]", path)}
	}
	return parseResult{path: path, game: g}
}

func printOrWriteGame(path string, g *game.Game, outPath string) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "marshaling game from %s", path)
	}
	data = append(data, '\n')

	if outPath == "" {
		fmt.Println(string(data))
		return nil
	}

	pf, err := renameio.NewPendingFile(outPath, renameio.WithPermissions(0644), renameio.WithExistingPermissions())
	if err != nil {
		return errors.Wrapf(err, "renameio.NewPendingFile(%s)", outPath)
	}
	defer pf.Cleanup()

	if _, err := pf.Write(data); err != nil {
		return errors.Wrapf(err, "writing %s", outPath)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return errors.Wrapf(err, "closing %s", outPath)
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("wrote %s", outPath)))
	return nil
}

// regexCmd feeds a file one chunk at a time and prints the then-current
// ValidRegex and NextValidCharacters for the empty remaining prefix after
// every chunk, demonstrating component F (the regex synthesizer) live.
func regexCmd() *cobra.Command {
	var chunkBytes int
	var feedSchedule string
	var debug bool

	cmd := &cobra.Command{
		Use:   "regex <file>",
		Short: "Feed a transcript and print the synthesized regex after every chunk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigForCmd()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("chunk-bytes") && cfg.ChunkBytes > 0 {
				chunkBytes = cfg.ChunkBytes
			}
			if !cmd.Flags().Changed("feed") && cfg.FeedSchedule != "" {
				feedSchedule = cfg.FeedSchedule
			}
			if !cmd.Flags().Changed("debug") {
				debug = cfg.Debug
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, "reading %s", args[0])
			}
			chunks, err := chunksFor(data, chunkBytes, feedSchedule)
			if err != nil {
				return err
			}

			p := parser.New(debug)
			for i, chunk := range chunks {
				if err := p.ParseInput(chunk); err != nil {
					return errors.Wrapf(err, "parsing %s", args[0])
				}
				pattern := p.ValidRegex()
				next, err := regexsynth.NextValidCharacters(pattern, "")
				if err != nil {
					return errors.Wrapf(err, "computing next valid characters after chunk %d", i)
				}
				fmt.Println(infoStyle.Render(fmt.Sprintf("chunk %d: %d valid next characters", i, len(next))))
				fmt.Println(pattern)
				if p.Finished() {
					break
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&chunkBytes, "chunk-bytes", 64, "chunk size in bytes when --feed is not given")
	cmd.Flags().StringVar(&feedSchedule, "feed", "", "explicit chunk-length schedule, e.g. \"10 25 rest\"")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable parser debug logging")
	return cmd
}

// rosterCmd parses a file to completion and prints both rosters as a
// column-aligned table, using go-runewidth so accented names don't throw
// off alignment the way len() would.
func rosterCmd() *cobra.Command {
	var debug bool
	var find string

	cmd := &cobra.Command{
		Use:   "roster <file>",
		Short: "Parse a transcript and print both team rosters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigForCmd()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("debug") {
				debug = cfg.Debug
			}

			logger := newCLILogger(debug)
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, "reading %s", args[0])
			}

			p := parser.New(debug)
			chunks, err := chunksFor(data, cfg.ChunkBytes, "")
			if err != nil {
				return err
			}
			logger.Debug("parsing for roster", "file", args[0], "chunks", len(chunks))
			for _, chunk := range chunks {
				if err := p.ParseInput(chunk); err != nil {
					return errors.Wrapf(err, "parsing %s", args[0])
				}
			}

			g, ok := p.Complete()
			if !ok {
				return errors.Errorf("%s: input exhausted before [GAME_END]", args[0])
			}

			if find != "" {
				printMatches("Home", g.Home, find)
				printMatches("Away", g.Away, find)
				return nil
			}

			printRoster("Home", g.Home)
			fmt.Println()
			printRoster("Away", g.Away)
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "enable parser debug logging")
	cmd.Flags().StringVar(&find, "find", "", "print only players whose name contains this substring, case-insensitively")
	return cmd
}

func printMatches(label string, team game.Team, query string) {
	for _, p := range matchesRoster(team, query) {
		fmt.Printf("%s: %s (%s)\n", label, p.Name, p.Position.Canonical)
	}
}

func printRoster(label string, team game.Team) {
	fmt.Println(headerStyle.Render(fmt.Sprintf(" %s (team %d) ", label, team.TeamID)))

	nameWidth := runewidth.StringWidth("Name")
	posWidth := runewidth.StringWidth("Position")
	for _, player := range team.Players {
		if w := runewidth.StringWidth(player.Name); w > nameWidth {
			nameWidth = w
		}
		if w := runewidth.StringWidth(player.Position.Canonical); w > posWidth {
			posWidth = w
		}
	}

	fmt.Println(tableHeader.Render(padRight("Name", nameWidth) + "  " + padRight("Position", posWidth)))
	for _, player := range team.Players {
		fmt.Println(padRight(player.Name, nameWidth) + "  " + padRight(player.Position.Canonical, posWidth))
	}
}

// padRight pads s with spaces to display width w, measuring display width
// with runewidth.StringWidth so combining marks and wide runes in player
// names don't desync the columns.
func padRight(s string, w int) string {
	pad := w - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	b := make([]byte, 0, len(s)+pad)
	b = append(b, s...)
	for i := 0; i < pad; i++ {
		b = append(b, ' ')
	}
	return string(b)
}
