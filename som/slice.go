package som

import "strings"

// SourceSlice returns part of src. Lines are 1-based and inclusive. When both
// columns are 0 whole lines are returned; otherwise the text runs from startCol
// on the first line up to (not including) endCol on the last line.
func SourceSlice(src string, startLine, endLine, startCol, endCol int) string {
	lines := strings.Split(src, "\n")
	if startLine < 1 {
		startLine = 1
	}
	if startLine > len(lines) {
		return ""
	}
	if endLine > len(lines) {
		endLine = len(lines)
	}
	if endLine < startLine {
		return ""
	}

	slice := make([]string, endLine-startLine+1)
	copy(slice, lines[startLine-1:endLine])

	if startCol == 0 || endCol == 0 {
		return strings.Join(slice, "\n")
	}

	last := len(slice) - 1
	slice[last] = clampPrefix(slice[last], endCol-1)
	slice[0] = clampSuffix(slice[0], startCol-1)
	return strings.Join(slice, "\n")
}

// Slice returns the exact source text covered by a span.
func Slice(src string, loc Span) string {
	return SourceSlice(src, loc.StartLine, loc.EndLine, loc.StartCol, loc.EndCol)
}

// Lines returns the whole source lines covered by a span.
func Lines(src string, loc Span) string {
	return SourceSlice(src, loc.StartLine, loc.EndLine, 0, 0)
}

func clampPrefix(line string, n int) string {
	if n < 0 {
		return ""
	}
	if n > len(line) {
		return line
	}
	return line[:n]
}

func clampSuffix(line string, n int) string {
	if n < 0 {
		return line
	}
	if n > len(line) {
		return ""
	}
	return line[n:]
}
