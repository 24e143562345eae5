package main

import (
	"strconv"

	"github.com/google/shlex"
	"github.com/pkg/errors"
)

// parseFeedSchedule splits a --feed schedule like "10 25 rest" into the
// explicit chunk lengths plus whether the final token was the literal
// "rest" (consume everything left over), using shlex.Split the way the
// teacher's own shell-argument parsing in app/shellcmd.go does, so quoted
// tokens and stray whitespace behave the way a shell user expects.
func parseFeedSchedule(spec string) (lengths []int, hasRest bool, err error) {
	tokens, err := shlex.Split(spec)
	if err != nil {
		return nil, false, errors.Wrapf(err, "shlex.Split(%q)", spec)
	}

	for i, tok := range tokens {
		if tok == "rest" {
			if i != len(tokens)-1 {
				return nil, false, errors.Errorf("%q: \"rest\" must be the final token", spec)
			}
			hasRest = true
			break
		}
		n, convErr := strconv.Atoi(tok)
		if convErr != nil {
			return nil, false, errors.Wrapf(convErr, "invalid chunk length %q", tok)
		}
		if n <= 0 {
			return nil, false, errors.Errorf("chunk length %q must be positive", tok)
		}
		lengths = append(lengths, n)
	}

	return lengths, hasRest, nil
}

// chunksFor splits data into the pieces ParseInput should be called with,
// in order: either following an explicit schedule (shorter than the input
// pads with a final "rest" chunk, per --feed's own "rest" token, or stops
// once the schedule is exhausted if it never named "rest") or a fixed
// chunkBytes size.
func chunksFor(data []byte, chunkBytes int, schedule string) ([]string, error) {
	if schedule != "" {
		lengths, hasRest, err := parseFeedSchedule(schedule)
		if err != nil {
			return nil, err
		}
		var chunks []string
		pos := 0
		for _, n := range lengths {
			if pos >= len(data) {
				break
			}
			end := pos + n
			if end > len(data) {
				end = len(data)
			}
			chunks = append(chunks, string(data[pos:end]))
			pos = end
		}
		if hasRest && pos < len(data) {
			chunks = append(chunks, string(data[pos:]))
		}
		return chunks, nil
	}

	if chunkBytes <= 0 {
		return nil, errors.Errorf("chunk-bytes must be positive, got %d", chunkBytes)
	}

	var chunks []string
	for pos := 0; pos < len(data); pos += chunkBytes {
		end := pos + chunkBytes
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, string(data[pos:end]))
	}
	return chunks, nil
}
