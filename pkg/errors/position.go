package errors

// Position represents a specific location in an expression source string.
// Line and column are 1-based for human-readability; the byte offsets are
// 0-based for tooling.
type Position struct {
	Line     int // 1-based line number
	Column   int // 1-based column number (rune index within the line)
	StartPos int // 0-based byte offset of the start of the token/error span
	EndPos   int // 0-based byte offset of the end of the span (exclusive)
}
