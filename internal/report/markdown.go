package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/sleepstat-cli/internal/analysis"
	"github.com/KaramelBytes/sleepstat-cli/internal/dataset"
)

// Markdown renders the report as bracketed plain-text sections.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	b.WriteString(fmt.Sprintf("File: %s\n", r.Title()))
	if r.Processed > 0 && r.Processed < r.Rows {
		b.WriteString(fmt.Sprintf("Rows: ~%d (processed %d)\n", r.Rows, r.Processed))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	}
	if len(r.Fields) > 0 {
		b.WriteString(fmt.Sprintf("Columns: %d\n", len(r.Fields)))
	}
	b.WriteString(fmt.Sprintf("Report: %s (%s)\n", r.ID, r.GeneratedAt.Format("2006-01-02 15:04:05Z")))

	if len(r.Fields) > 0 {
		b.WriteString("\n[SCHEMA]\n")
		for _, f := range r.Fields {
			writeField(&b, f)
		}
	}
	if c := r.Correlation; c != nil {
		b.WriteString("\n[CORRELATIONS]\n")
		writeMatrix(&b, c.Fields, c.Matrix)
		if len(c.TopPairs) > 0 {
			b.WriteString("\nStrongest pairs:\n")
			for _, p := range c.TopPairs {
				b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
			}
		}
	}
	if len(r.Relationships) > 0 {
		b.WriteString("\n[RELATIONSHIPS]\n")
		for _, rel := range r.Relationships {
			writeRelationship(&b, rel)
		}
	}
	if sc := r.Scatter; sc != nil {
		b.WriteString("\n[SCATTER]\n")
		writeRelationship(&b, sc.Relationship)
		b.WriteString(fmt.Sprintf("Points: %d\n", len(sc.Points)))
		if len(sc.TrendLine) == 2 {
			a, z := sc.TrendLine[0], sc.TrendLine[1]
			b.WriteString(fmt.Sprintf("Trend line: (%.4g, %.4g) -> (%.4g, %.4g)\n", a.X, a.Y, z.X, z.Y))
		}
	}
	if len(r.Histograms) > 0 {
		b.WriteString("\n[HISTOGRAMS]\n")
		for _, h := range r.Histograms {
			name := h.Field
			if h.Unit != "" {
				name = fmt.Sprintf("%s [%s]", name, h.Unit)
			}
			b.WriteString(fmt.Sprintf("- %s\n", name))
			for _, bc := range h.Bins {
				b.WriteString(fmt.Sprintf("  • %s: %d\n", bc.Label, bc.Count))
			}
		}
	}
	if len(r.Distributions) > 0 {
		b.WriteString("\n[DISTRIBUTIONS]\n")
		for _, d := range r.Distributions {
			b.WriteString(fmt.Sprintf("- %s\n", d.Field))
			for _, c := range d.Counts {
				b.WriteString(fmt.Sprintf("  • %s: %d (%.1f%%)\n", safeVal(c.Value), c.Count, c.Share*100))
			}
		}
	}
	if len(r.Groups) > 0 {
		b.WriteString("\n[GROUP-BY SUMMARY]\n")
		for _, g := range r.Groups {
			b.WriteString(fmt.Sprintf("- %s by %s\n", g.Value, g.By))
			for _, s := range g.Summaries {
				b.WriteString(fmt.Sprintf("  • %s (n=%d): mean %.4g, median %.4g, q1 %.4g, q3 %.4g (min %.4g, max %.4g)\n",
					safeVal(s.Key), s.Count, s.Mean, s.Median, s.Q1, s.Q3, s.Min, s.Max))
			}
			if g.Means != nil && len(g.Means.Series) > 0 {
				writeGroupedMeans(&b, g.Means)
			}
		}
	}
	if len(r.CrossTabs) > 0 {
		b.WriteString("\n[CROSS-TABS]\n")
		for _, ct := range r.CrossTabs {
			writeCrossTab(&b, ct)
		}
	}
	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		writeTable(&b, r.SampleHeader, r.Samples)
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeField(b *strings.Builder, f FieldSummary) {
	total := f.NonNull + f.Missing
	missPct := 0.0
	if total > 0 {
		missPct = float64(f.Missing) * 100.0 / float64(total)
	}
	name := safeName(f.Name)
	if f.Unit != "" {
		name = fmt.Sprintf("%s [%s]", name, f.Unit)
	}
	b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", name, f.Kind, f.NonNull, missPct))
	switch f.Kind {
	case dataset.KindNumeric:
		if f.NonNull > 0 {
			b.WriteString(fmt.Sprintf("; min %.4g, max %.4g, mean %.4g, std %.4g", f.Min, f.Max, f.Mean, f.Std))
		}
	case dataset.KindCategorical:
		if len(f.Top) > 0 {
			b.WriteString("; top: ")
			for i, kv := range f.Top {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
			}
			if f.Unique > len(f.Top) {
				b.WriteString(fmt.Sprintf("; unique=%d", f.Unique))
			}
		}
	}
	b.WriteString("\n")
}

func writeRelationship(b *strings.Builder, rel analysis.Relationship) {
	reg := rel.Regression
	b.WriteString(fmt.Sprintf("- %s ~ %s: n=%d, r=%.3f, slope %.4g, intercept %.4g, R²=%.3f",
		rel.Y, rel.X, rel.N, rel.Correlation, reg.Slope, reg.Intercept, reg.R2))
	if !rel.Defined {
		b.WriteString(" (undefined: too few pairs or no variance)")
	}
	b.WriteString("\n")
}

func writeMatrix(b *strings.Builder, fields []string, mat [][]float64) {
	header := append([]string{""}, fields...)
	rows := make([][]string, len(fields))
	for i, f := range fields {
		row := make([]string, 0, len(fields)+1)
		row = append(row, f)
		for j := range fields {
			row = append(row, fmt.Sprintf("%.3f", mat[i][j]))
		}
		rows[i] = row
	}
	writeTable(b, header, rows)
}

func writeGroupedMeans(b *strings.Builder, g *analysis.GroupedBars) {
	header := append([]string{"mean"}, g.Groups...)
	rows := make([][]string, len(g.Series))
	for i, s := range g.Series {
		row := make([]string, 0, len(g.Groups)+1)
		row = append(row, s.Field)
		for j := range g.Groups {
			if s.Counts[j] == 0 {
				row = append(row, "-")
				continue
			}
			row = append(row, fmt.Sprintf("%.4g", s.Means[j]))
		}
		rows[i] = row
	}
	writeTable(b, header, rows)
}

func writeCrossTab(b *strings.Builder, ct CrossTabSection) {
	title := fmt.Sprintf("- %s x %s (n=%d)", ct.RowField, ct.ColField, ct.Total)
	if ct.Value != "" {
		title += fmt.Sprintf(", mean %s", ct.Value)
	}
	b.WriteString(title + "\n")
	header := append([]string{""}, ct.Cols...)
	rows := make([][]string, len(ct.Rows))
	for i, rk := range ct.Rows {
		row := make([]string, 0, len(ct.Cols)+1)
		row = append(row, rk)
		for j := range ct.Cols {
			cell := fmt.Sprintf("%d", ct.Counts[i][j])
			if ct.Means != nil && ct.Counts[i][j] > 0 {
				cell = fmt.Sprintf("%d (%.3g)", ct.Counts[i][j], ct.Means[i][j])
			}
			row = append(row, cell)
		}
		rows[i] = row
	}
	writeTable(b, header, rows)
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	b.WriteString("| ")
	for i, h := range header {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeVal(h))
	}
	b.WriteString(" |\n| ")
	for i := range header {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")
	for _, row := range rows {
		b.WriteString("| ")
		for i := range header {
			if i > 0 {
				b.WriteString(" | ")
			}
			val := ""
			if i < len(row) {
				val = row[i]
			}
			if len(val) > 80 {
				val = val[:77] + "..."
			}
			b.WriteString(safeVal(val))
		}
		b.WriteString(" |\n")
	}
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
