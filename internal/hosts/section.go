package hosts

import "strings"

// Marker delimits the owned block. It must match exactly.
const Marker = "# --+ Make Your Choice +--"

// markers returns the offsets of the first marker and of the next marker
// after it. Missing markers are -1.
func markers(doc string) (first, second int) {
	first = strings.Index(doc, Marker)
	if first < 0 {
		return -1, -1
	}
	rest := first + len(Marker)
	second = strings.Index(doc[rest:], Marker)
	if second < 0 {
		return first, -1
	}
	return first, rest + second
}

// FindSection returns the byte span of the owned block, from the start of
// the first marker to the end of the second marker.
func FindSection(doc string) (start, end int, ok bool) {
	first, second := markers(doc)
	if second < 0 {
		return 0, 0, false
	}
	return first, second + len(Marker), true
}

// InnerContent returns the text between the two markers, without the
// newline that follows the opening marker.
func InnerContent(doc string) (string, bool) {
	start, end, ok := FindSection(doc)
	if !ok {
		return "", false
	}
	inner := doc[start+len(Marker) : end-len(Marker)]
	return strings.TrimPrefix(inner, "\n"), true
}

// CountMarkers reports how many marker occurrences doc holds. Anything other
// than 0 or 2 means the block was damaged by hand.
func CountMarkers(doc string) int {
	return strings.Count(doc, Marker)
}

// RenderBlock wraps inner in markers. Empty content renders as nothing so
// that replacing with it removes the block entirely.
func RenderBlock(inner string) string {
	if inner == "" {
		return ""
	}
	if !strings.HasSuffix(inner, "\n") {
		inner += "\n"
	}
	return Marker + "\n" + inner + Marker + "\n"
}

// ReplaceSection splices inner into doc as the owned block.
//
// With both markers present the span between them is replaced and the rest
// of doc is kept; the closing marker's line break is part of the span. With
// one marker everything from it to the end is replaced. With none the block
// is appended after one blank line. Text before the first marker is never
// touched, so removing the block (empty inner) leaves the separator line in
// place; with no markers the document is unchanged.
func ReplaceSection(doc, inner string) string {
	block := RenderBlock(inner)
	first, second := markers(doc)

	switch {
	case second >= 0:
		tail := strings.TrimPrefix(doc[second+len(Marker):], "\n")
		return doc[:first] + block + tail
	case first >= 0:
		return doc[:first] + block
	case block == "":
		return doc
	}

	sep := "\n\n"
	if strings.HasSuffix(doc, "\n") {
		sep = "\n"
	}
	return doc + sep + block
}
