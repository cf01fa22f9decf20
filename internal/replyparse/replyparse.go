// Package replyparse extracts numbered translations from the unstructured
// body of a human reply. Two independent strategies share the same
// marker-to-marker semantics: the primary matches bracketed markers like
// "[3] translated text", the fallback matches numbered-list markers like
// "3. translated text". The fallback only runs when the primary finds
// nothing, keeping the failure modes of each pattern legible.
package replyparse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	bracketMarker  = regexp.MustCompile(`\[(\d+)\]`)
	numberedMarker = regexp.MustCompile(`(\d+)\.`)
)

// Parse maps 0-based relative sentence indices to translation text. Marker
// numbers are 1-based as written by the translator. Markers whose number
// does not fit an int are skipped. An empty map is a normal outcome, not an
// error: it means the reply carried no recognizable translations.
func Parse(body string) map[int]string {
	if result := extract(bracketMarker, body); len(result) > 0 {
		return result
	}
	return extract(numberedMarker, body)
}

// extract locates every marker, then takes the text between each marker and
// the next one (or end of input) as that marker's translation. Slicing
// between matches gives the greedy dot-all capture the patterns imply
// without lookahead, which RE2 does not support.
func extract(marker *regexp.Regexp, body string) map[int]string {
	locs := marker.FindAllStringSubmatchIndex(body, -1)
	result := make(map[int]string)

	for i, loc := range locs {
		n, err := strconv.Atoi(body[loc[2]:loc[3]])
		if err != nil {
			continue
		}

		end := len(body)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		result[n-1] = strings.TrimSpace(body[loc[1]:end])
	}
	return result
}
