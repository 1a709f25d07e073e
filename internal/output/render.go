package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/teilomillet/promptlift/optimizer"
	"github.com/teilomillet/promptlift/scorer"
	"github.com/teilomillet/promptlift/types"
)

// Delta renders a signed score change, green when positive.
func Delta(d int) string {
	s := fmt.Sprintf("%+d", d)
	switch {
	case d > 0:
		return StyleSuccess.Render(s)
	case d < 0:
		return StyleError.Render(s)
	default:
		return StyleMuted.Render(s)
	}
}

func row(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", StyleLabel.Render(label), value)
}

// Result prints an optimization result for humans.
func Result(w io.Writer, res *optimizer.OptimizationResult) {
	fmt.Fprintln(w, StyleHeader.Render("Optimized prompt"))
	fmt.Fprintln(w, StyleBox.Render(res.Optimized.Text))
	fmt.Fprintln(w)

	imp := res.Improvement
	row(w, "Score", fmt.Sprintf("%d → %d (%s)", res.Original.Score, res.Optimized.Score, Delta(imp.OverallScoreChange)))
	row(w, "Grade", fmt.Sprintf("%s → %s", imp.GradeChange.From, imp.GradeChange.To))
	row(w, "Confidence", fmt.Sprintf("%d%%", imp.Confidence))
	row(w, "Time saved", fmt.Sprintf("~%d min", imp.TimeSavedMinutes))
	row(w, "Issues resolved", fmt.Sprint(imp.IssuesResolved))

	if len(imp.Badges) > 0 {
		labels := make([]string, len(imp.Badges))
		for i, b := range imp.Badges {
			labels[i] = b.Label
		}
		row(w, "Badges", StyleBold.Render(strings.Join(labels, ", ")))
	}
	for _, a := range imp.AspectImprovements {
		row(w, "  "+string(a.Criterion), fmt.Sprintf("%d → %d (%s)", a.Before, a.After, Delta(a.Change)))
	}

	for _, alt := range res.Alternatives {
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleHeader.Render(fmt.Sprintf("Alternative (%s, %d, %s)", alt.Level, alt.Score, alt.Grade)))
		fmt.Fprintln(w, StyleBox.Render(alt.Text))
	}

	if res.Suggestions != nil {
		Suggestions(w, res.Suggestions.Immediate)
	}
}

// Suggestions prints a list of suggestions with their priority.
func Suggestions(w io.Writer, list []types.Suggestion) {
	if len(list) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleHeader.Render("Suggestions"))
	for _, s := range list {
		fmt.Fprintf(w, "  %s %s\n", priority(s.Priority), s.Suggestion)
		if s.Example.Before != "" {
			fmt.Fprintf(w, "      %s\n", StyleMuted.Render(s.Example.Before+" → "+s.Example.After))
		}
	}
}

func priority(p types.Priority) string {
	label := "[" + string(p) + "]"
	switch p {
	case types.PriorityHigh:
		return StyleError.Render(label)
	case types.PriorityMedium:
		return StyleWarning.Render(label)
	default:
		return StyleMuted.Render(label)
	}
}

// Report prints a quality report.
func Report(w io.Writer, r scorer.QualityReport, criteria []scorer.CriterionSpec) {
	fmt.Fprintln(w, StyleHeader.Render(fmt.Sprintf("Quality %d/100 (%s)", r.Overall, r.Grade)))
	for _, spec := range criteria {
		cs := r.Breakdown[spec.Name]
		row(w, string(spec.Name), fmt.Sprintf("%3d  %s", cs.Score, StyleMuted.Render(fmt.Sprintf("weight %.2f", cs.Weight))))
	}
	if len(r.Recommendations) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleHeader.Render("Recommendations"))
	for _, rec := range r.Recommendations {
		fmt.Fprintf(w, "  %s %s %s\n", priority(rec.Priority), rec.Suggestion,
			StyleMuted.Render(fmt.Sprintf("(+%d expected)", rec.ExpectedImprovement)))
	}
}

// BatchSummary prints the outcome of a batch.
func BatchSummary(w io.Writer, res *optimizer.BatchResult) {
	fmt.Fprintln(w, StyleHeader.Render("Batch complete"))
	row(w, "Total", fmt.Sprint(res.Summary.Total))
	row(w, "Successful", StyleSuccess.Render(fmt.Sprint(res.Summary.Successful)))
	row(w, "Failed", StyleError.Render(fmt.Sprint(res.Summary.Failed)))
	for _, e := range res.Errors {
		fmt.Fprintf(w, "  %s %v\n", StyleError.Render(fmt.Sprintf("#%d", e.Index+1)), e.Err)
	}
	for i, r := range res.Results {
		if r == nil {
			continue
		}
		fmt.Fprintf(w, "  %s %d → %d (%s)\n", StyleMuted.Render(fmt.Sprintf("#%d", i+1)),
			r.Original.Score, r.Optimized.Score, Delta(r.Improvement.OverallScoreChange))
	}
}
