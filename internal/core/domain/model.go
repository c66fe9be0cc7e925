package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Report holds the outcome of a detailed pairwise comparison.
// All scores are ratios in [0, 1].
type Report struct {
	Overall      float64     `json:"overall"`
	Jaccard      float64     `json:"jaccard"`
	Cosine       float64     `json:"cosine"`
	EditDistance float64     `json:"edit_distance"`
	Threshold    float64     `json:"threshold"`
	Passed       bool        `json:"passed"`
	WordMatches  []WordMatch `json:"word_matches"`
	LineMatches  []LineMatch `json:"line_matches"`
}

// WordMatch records whether a token of the first text occurs in the second.
type WordMatch struct {
	Word    string `json:"word"`
	Matched bool   `json:"matched"`
}

// LineMatch pairs a line of the first text with its best match in the second.
// Line numbers are 1-based.
type LineMatch struct {
	Line                string  `json:"line"`
	LineNumber          int     `json:"line_number"`
	BestMatch           string  `json:"best_match"`
	BestMatchLineNumber int     `json:"best_match_line_number"`
	Score               float64 `json:"score"`
}

// Candidate is a document a query can be compared against.
type Candidate struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// UnmarshalJSON accepts the id either as a JSON string or as a JSON number;
// a number keeps its literal text, so {"id":1} yields ID "1".
func (c *Candidate) UnmarshalJSON(data []byte) error {
	type plain Candidate
	var raw struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Candidate(raw.plain)

	id := bytes.TrimSpace(raw.ID)
	switch {
	case len(id) == 0 || string(id) == "null":
		c.ID = ""
	case id[0] == '"':
		return json.Unmarshal(id, &c.ID)
	default:
		var n json.Number
		if err := json.Unmarshal(id, &n); err != nil {
			return fmt.Errorf("%w: candidate id must be a string or a number", ErrInvalidInput)
		}
		c.ID = n.String()
	}
	return nil
}

// CandidateScore is the batch-mode result for a single candidate.
type CandidateScore struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Similarity           float64 `json:"similarity"`
	SimilarityPercentage string  `json:"similarity_percentage"`
}

// EmptyReport returns the zero-valued report used for empty input.
func EmptyReport(threshold float64) Report {
	return Report{
		Threshold:   threshold,
		WordMatches: []WordMatch{},
		LineMatches: []LineMatch{},
	}
}

// MatchedWords returns how many word matches matched and how many there are.
func (r Report) MatchedWords() (matched, total int) {
	for _, wm := range r.WordMatches {
		if wm.Matched {
			matched++
		}
	}
	return matched, len(r.WordMatches)
}

// Coverage returns the fraction of word matches that matched.
func (r Report) Coverage() float64 {
	matched, total := r.MatchedWords()
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}
