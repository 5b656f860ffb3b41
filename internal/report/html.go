package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"cvcheck/internal/record"
)

// statusColors maps overall statuses to badge colors.
var statusColors = map[record.OverallStatus]string{
	record.StatusGood:    "#16a34a",
	record.StatusWarning: "#f59e0b",
	record.StatusBad:     "#dc2626",
}

var htmlTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"joinAuthors": func(authors []string) string { return strings.Join(authors, "; ") },
	"yearString":  yearString,
	"badgeColor": func(s record.OverallStatus) string {
		if c, ok := statusColors[s]; ok {
			return c
		}
		return "#6b7280"
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>CV Publication Check</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; color: #111; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #d1d5db; padding: 6px 10px; text-align: left; vertical-align: top; font-size: 14px; }
th { background: #f3f4f6; }
.badge { display: inline-block; padding: 2px 8px; border-radius: 9999px; color: #fff; font-size: 12px; }
.details { color: #4b5563; font-size: 13px; }
</style>
</head>
<body>
<h1>CV Publication Check</h1>
<p>{{len .}} record(s)</p>
<table>
<tr>
<th>Section</th><th>Type</th><th>Title</th><th>Authors (CV)</th><th>Journal/Event (CV)</th><th>Year</th>
<th>External Match</th><th>Authorship</th><th>Position</th><th>Status</th>
</tr>
{{range .}}
<tr>
<td>{{.Record.Section}}</td>
<td>{{.Record.Type}}</td>
<td>{{.Record.Title}}</td>
<td>{{joinAuthors .Record.Authors}}</td>
<td>{{.Record.Venue}}</td>
<td>{{yearString .Record.Year}}</td>
<td>
{{with .Record.Match.Selected}}
{{.Title}}<br>
<span class="details">{{joinAuthors .Authors}} &middot; {{.Venue}} {{yearString .Year}}{{if .DOI}} &middot; doi:{{.DOI}}{{end}}</span>
{{else}}
<span class="details">no match selected</span>
{{end}}
</td>
<td>{{.Verdict.Authorship}}</td>
<td>{{.Verdict.Position}}</td>
<td>
<span class="badge" style="background: {{badgeColor .Verdict.Status}}">{{.Verdict.Status}}</span>
{{if .Verdict.Details}}<div class="details">{{.Verdict.Details}}</div>{{end}}
</td>
</tr>
{{end}}
</table>
</body>
</html>
`))

// WriteHTML renders a standalone HTML report.
func WriteHTML(w io.Writer, rows []Row) error {
	if err := htmlTmpl.Execute(w, rows); err != nil {
		return fmt.Errorf("rendering HTML report: %w", err)
	}
	return nil
}
