package lexer

// isSpace reports whether b is one of the ASCII whitespace bytes the
// tokenizer treats as a separator. Source text outside this set is
// never skipped, including non-ASCII bytes.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
