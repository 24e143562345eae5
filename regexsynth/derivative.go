package regexsynth

// Derive returns the Brzozowski derivative of the regex described by
// pattern with respect to the string prefix: the regex matching exactly
// the suffixes s for which prefix+s is in pattern's language. Each rune of
// prefix is consumed via Regexp.Derivative in turn, so the returned node
// is, by construction, the live "remaining grammar" after prefix has
// already been read -- the same role the parser's streaming machine
// plays against the full transcript grammar (spec.md section 6).
func Derive(pattern, prefix string) (Regexp, error) {
	re, err := Parse(pattern)
	if err != nil {
		return nil, err
	}
	for _, r := range prefix {
		re = re.Derivative(r)
	}
	return re, nil
}

// IsDead reports whether re can be extended by no string at all, including
// the empty one -- i.e. whether the prefix that produced it is already
// invalid rather than merely incomplete.
func IsDead(re Regexp) bool {
	switch v := re.(type) {
	case emptySet:
		return true
	case concat:
		return IsDead(v.left) || IsDead(v.right)
	case unionNode:
		return IsDead(v.left) && IsDead(v.right)
	}
	return false
}

// NextValidCharacters returns the set of single runes that, appended to
// prefix, remain a valid (possibly incomplete) prefix of pattern. It is
// the free function named next_valid_characters in spec.md section 6:
// the caller feeds it a growing buffer and gets back the alphabet a
// constrained decoder may legally emit next.
//
// The returned set is computed by deriving pattern with respect to prefix
// once, then testing each rune drawn from that derivative's own alphabet
// (every literal and class range appearing in it) to see whether deriving
// once more by that rune avoids the dead state. This never enumerates the
// unicode range: only runes that could possibly matter -- because they
// appear somewhere in the live derivative -- are tested.
func NextValidCharacters(pattern, prefix string) (map[rune]struct{}, error) {
	re, err := Derive(pattern, prefix)
	if err != nil {
		return nil, err
	}
	out := make(map[rune]struct{})
	if IsDead(re) {
		return out, nil
	}
	for _, r := range collectAlphabet(re) {
		if !IsDead(re.Derivative(r)) {
			out[r] = struct{}{}
		}
	}
	return out, nil
}

// Matches reports whether s is exactly in pattern's language.
func Matches(pattern, s string) (bool, error) {
	re, err := Derive(pattern, s)
	if err != nil {
		return false, err
	}
	return re.Nullable(), nil
}
