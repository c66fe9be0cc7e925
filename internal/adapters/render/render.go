// Package render formats comparison results for terminals and files.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/baditaflorin/go_text_similarity/internal/core/domain"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteText writes a human readable summary of report. Line pairs that are
// not identical get an inline character diff.
func WriteText(w io.Writer, report domain.Report) error {
	var b strings.Builder

	verdict := "failed"
	if report.Passed {
		verdict = "passed"
	}
	fmt.Fprintf(&b, "Overall similarity: %s (%s, threshold %s)\n",
		percent(report.Overall), verdict, percent(report.Threshold))
	fmt.Fprintf(&b, "  Jaccard:       %s\n", percent(report.Jaccard))
	fmt.Fprintf(&b, "  Cosine:        %s\n", percent(report.Cosine))
	fmt.Fprintf(&b, "  Edit distance: %s\n", percent(report.EditDistance))

	matched, total := report.MatchedWords()
	fmt.Fprintf(&b, "Word coverage: %d/%d (%s)\n", matched, total, percent(report.Coverage()))

	if len(report.LineMatches) > 0 {
		b.WriteString("\nLine matches:\n")
		for _, lm := range report.LineMatches {
			fmt.Fprintf(&b, "  %4d -> %-4d %8s  %s\n", lm.LineNumber, lm.BestMatchLineNumber, percent(lm.Score), lm.Line)
			if lm.Line != lm.BestMatch {
				fmt.Fprintf(&b, "  %19s %s\n", "diff:", LineDiff(lm.Line, lm.BestMatch))
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteBatchText writes batch scores as an aligned table.
func WriteBatchText(w io.Writer, scores []domain.CandidateScore) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIMILARITY")
	for _, s := range scores {
		fmt.Fprintf(tw, "%s\t%s\t%s%%\n", s.ID, s.Name, s.SimilarityPercentage)
	}
	return tw.Flush()
}

// LineDiff renders the character changes turning from into to. Deleted runs
// are shown as [-text-] and inserted runs as {+text+}.
func LineDiff(from, to string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(from, to, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(diff.Text)
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + diff.Text + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+" + diff.Text + "+}")
		}
	}
	return b.String()
}

func percent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}
