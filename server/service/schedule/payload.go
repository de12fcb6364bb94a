package schedule

import (
	"encoding/json"
	"strings"

	errcode "github.com/zhao-stanley/6.1040-a3/internal/errors"
)

// Proposal is one externally suggested (title, startTime) pairing awaiting
// validation. The planner reply is untrusted, so a missing or non-integer
// startTime is carried as Start == nil rather than failing extraction; the
// validator rejects it per-proposal with everything else it finds.
type Proposal struct {
	Title string
	Start *int
}

// ExtractProposals locates a single structured payload - an ordered JSON
// array of {title, startTime} objects - anywhere within the planner's raw
// reply. The first well-formed array of objects wins. If none is extractable
// the whole call fails with PARSE_FAILED; there is no partial recovery.
func ExtractProposals(raw string) ([]Proposal, error) {
	text := stripFences(raw)

	// An empty array is only accepted as the payload when nothing better
	// exists; mid-prose "[]" must not mask a later real payload.
	sawEmpty := false

	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}
		end := matchBracket(text, i)
		if end < 0 {
			continue
		}
		proposals, ok := decodeProposals(text[i : end+1])
		if !ok {
			continue
		}
		if len(proposals) == 0 {
			sawEmpty = true
			continue
		}
		return proposals, nil
	}

	if sawEmpty {
		return []Proposal{}, nil
	}
	return nil, errcode.ParseFailed("planner reply contained no extractable proposal payload")
}

// stripFences removes a leading/trailing markdown code fence if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// matchBracket returns the index of the ']' closing the '[' at start, walking
// string literals and escapes, or -1 when the text never balances.
func matchBracket(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				if c == ']' {
					return i
				}
				return -1
			}
		}
	}
	return -1
}

// decodeProposals attempts to decode a candidate substring as an array of
// proposal objects. Field presence and type are deliberately not trusted:
// anything that is not a string title or integer startTime degrades to the
// zero/absent form and is re-validated later.
func decodeProposals(candidate string) ([]Proposal, bool) {
	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.UseNumber()

	var elements []map[string]any
	if err := dec.Decode(&elements); err != nil {
		return nil, false
	}

	proposals := make([]Proposal, 0, len(elements))
	for _, el := range elements {
		var p Proposal
		if title, ok := el["title"].(string); ok {
			p.Title = title
		}
		if num, ok := el["startTime"].(json.Number); ok {
			if v, err := num.Int64(); err == nil {
				start := int(v)
				p.Start = &start
			}
		}
		proposals = append(proposals, p)
	}
	return proposals, true
}
