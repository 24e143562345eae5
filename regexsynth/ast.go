// Package regexsynth implements component F from spec.md section 4.F: it
// synthesizes, from the parser's live game state and the closed domain
// ontology, a regular expression describing every textually-valid
// continuation of the input, and it implements Brzozowski derivatives
// over an arbitrary regex string so a constrained decoder can ask which
// single characters keep a prefix valid (spec.md section 6, the
// next_valid_characters free function).
//
// The regex dialect is the pure-regular fragment spec.md section 9
// requires: literals, the teacher's own escape set, character classes
// with ranges, ".", grouping, "|", "*", "+", "?", and "^"/"$" anchors.
// No backreferences or lookaround, no bounded {m,n} repetition -- callers
// that need a bounded count of digits expand it into optional groups
// instead (see digitsPattern in patterns.go).
package regexsynth

import "sort"

// Regexp is a node in the regex AST. Every node knows whether it matches
// the empty string (Nullable) and how to compute its Brzozowski
// derivative with respect to a single rune: the regex matching every
// suffix s such that r*s is in the original node's language.
type Regexp interface {
	Nullable() bool
	Derivative(r rune) Regexp
}

// emptySet matches no strings at all -- the "dead" language. It is the
// derivative of any node once no continuation is possible.
type emptySet struct{}

func (emptySet) Nullable() bool          { return false }
func (emptySet) Derivative(rune) Regexp  { return emptySet{} }

// epsilon matches only the empty string.
type epsilon struct{}

func (epsilon) Nullable() bool         { return true }
func (epsilon) Derivative(rune) Regexp { return emptySet{} }

// char matches exactly one rune.
type char struct{ r rune }

func (c char) Nullable() bool { return false }
func (c char) Derivative(r rune) Regexp {
	if r == c.r {
		return epsilon{}
	}
	return emptySet{}
}

// anyChar matches exactly one rune, any rune ("." in the surface syntax).
type anyChar struct{}

func (anyChar) Nullable() bool            { return false }
func (anyChar) Derivative(rune) Regexp    { return epsilon{} }

// runeRange is an inclusive [lo, hi] range of runes inside a class.
type runeRange struct{ lo, hi rune }

func (rr runeRange) contains(r rune) bool {
	return r >= rr.lo && r <= rr.hi
}

// class matches exactly one rune drawn from (or, if negated, excluded
// from) a set of ranges -- the "[...]"/"[^...]" surface syntax.
type class struct {
	ranges  []runeRange
	negated bool
}

func (c class) member(r rune) bool {
	in := false
	for _, rr := range c.ranges {
		if rr.contains(r) {
			in = true
			break
		}
	}
	if c.negated {
		return !in
	}
	return in
}

func (c class) Nullable() bool { return false }
func (c class) Derivative(r rune) Regexp {
	if c.member(r) {
		return epsilon{}
	}
	return emptySet{}
}

// startAnchor ("^") and endAnchor ("$") are treated as matching the empty
// string at the position where they appear; since derivatives only ever
// advance forward from the point a Regexp was parsed, both anchors behave
// as epsilon for nullability and as a dead end for further consumption --
// correct for the common case (anchors appear once at an edge of the
// pattern) which is the only way this module's own synthesized patterns
// ever use them (in fact, they never do; support exists for completeness
// against arbitrary caller-supplied patterns).
type startAnchor struct{}

func (startAnchor) Nullable() bool         { return true }
func (startAnchor) Derivative(rune) Regexp { return emptySet{} }

type endAnchor struct{}

func (endAnchor) Nullable() bool         { return true }
func (endAnchor) Derivative(rune) Regexp { return emptySet{} }

// concat matches left immediately followed by right.
type concat struct{ left, right Regexp }

func (c concat) Nullable() bool { return c.left.Nullable() && c.right.Nullable() }
func (c concat) Derivative(r rune) Regexp {
	leftDeriv := union(concat{c.left.Derivative(r), c.right}, emptySet{})
	if c.left.Nullable() {
		return union(leftDeriv, c.right.Derivative(r))
	}
	return leftDeriv
}

// union matches either left or right.
type unionNode struct{ left, right Regexp }

func (u unionNode) Nullable() bool { return u.left.Nullable() || u.right.Nullable() }
func (u unionNode) Derivative(r rune) Regexp {
	return union(u.left.Derivative(r), u.right.Derivative(r))
}

// union builds a unionNode, collapsing the empty-set identity so derivative
// chains do not grow an ever-deeper tree of dead branches.
func union(a, b Regexp) Regexp {
	if isEmptySet(a) {
		return b
	}
	if isEmptySet(b) {
		return a
	}
	return unionNode{a, b}
}

func isEmptySet(r Regexp) bool {
	_, ok := r.(emptySet)
	return ok
}

// star matches zero or more repetitions of child.
type star struct{ child Regexp }

func (s star) Nullable() bool { return true }
func (s star) Derivative(r rune) Regexp {
	return concat{s.child.Derivative(r), s}
}

// Concat, Union, and Star are exported constructors used by patterns.go
// when it assembles synthesized regex ASTs directly (bypassing the string
// parser, since the synthesizer already knows the structure it wants).
func Concat(nodes ...Regexp) Regexp {
	if len(nodes) == 0 {
		return epsilon{}
	}
	out := nodes[0]
	for _, n := range nodes[1:] {
		out = concat{out, n}
	}
	return out
}

func Union(nodes ...Regexp) Regexp {
	if len(nodes) == 0 {
		return emptySet{}
	}
	out := nodes[0]
	for _, n := range nodes[1:] {
		out = union(out, n)
	}
	return out
}

func Star(r Regexp) Regexp { return star{r} }
func Optional(r Regexp) Regexp { return union(epsilon{}, r) }
func Plus(r Regexp) Regexp { return concat{r, star{r}} }
func Literal(s string) Regexp {
	out := Regexp(epsilon{})
	first := true
	for _, r := range s {
		if first {
			out = char{r}
			first = false
			continue
		}
		out = concat{out, char{r}}
	}
	return out
}

// collectAlphabet walks the AST gathering every rune worth testing as a
// next character: every literal, every rune in every class range, and
// (for negated classes) a single probe, the first rune from '0' up to 'y'
// that the class admits. Full range enumeration is what makes
// NextValidCharacters' output complete for the synthesizer's own output
// (playerNamePattern, digitsPattern, contextPattern and friends all use
// wide ranges like [0-9] or [A-Za-z ...]); it is not a claim of
// completeness against arbitrary negated-class patterns over the full
// unicode range.
func collectAlphabet(r Regexp) []rune {
	seen := make(map[rune]struct{})
	var walk func(Regexp)
	walk = func(n Regexp) {
		switch v := n.(type) {
		case char:
			seen[v.r] = struct{}{}
		case class:
			if !v.negated {
				for _, rr := range v.ranges {
					for rn := rr.lo; rn <= rr.hi; rn++ {
						seen[rn] = struct{}{}
					}
				}
			} else {
				for probe := rune('0'); probe < rune('z'); probe++ {
					if !v.member(probe) {
						continue
					}
					seen[probe] = struct{}{}
					break
				}
			}
		case concat:
			walk(v.left)
			walk(v.right)
		case unionNode:
			walk(v.left)
			walk(v.right)
		case star:
			walk(v.child)
		}
	}
	walk(r)

	out := make([]rune, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
