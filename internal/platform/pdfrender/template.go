package pdfrender

import (
	"html/template"
	"strings"

	"github.com/careergenie/careergenie-api/internal/domain"
)

// resumeDocumentTmpl is the printable rendition of a resume. The analysis
// section only appears once background analysis has completed.
var resumeDocumentTmpl = template.Must(template.New("resume_document").Funcs(template.FuncMap{
	"paragraphs": splitParagraphs,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { margin: 18mm; }
  body { font-family: Georgia, serif; color: #1c1c1c; line-height: 1.5; }
  h1 { font-size: 22pt; margin-bottom: 2pt; }
  h2 { font-size: 13pt; border-bottom: 1px solid #999; padding-bottom: 3pt; margin-top: 18pt; }
  .meta { color: #555; font-size: 10pt; margin-bottom: 14pt; }
  .score { font-size: 15pt; font-weight: bold; }
  ul { margin: 4pt 0; padding-left: 18pt; }
  p { margin: 6pt 0; }
</style>
</head>
<body>
  <h1>{{if .Title}}{{.Title}}{{else}}Resume{{end}}</h1>
  {{if .TargetRole}}<div class="meta">Target role: {{.TargetRole}}</div>{{end}}

  {{range paragraphs .Text}}<p>{{.}}</p>
  {{end}}

  {{with .Analysis}}
  <h2>Analysis</h2>
  <p class="score">Overall score: {{.OverallScore}}/100</p>
  {{if .Summary}}<p>{{.Summary}}</p>{{end}}
  {{if .Strengths}}
  <h2>Strengths</h2>
  <ul>{{range .Strengths}}<li>{{.}}</li>{{end}}</ul>
  {{end}}
  {{if .Gaps}}
  <h2>Gaps</h2>
  <ul>{{range .Gaps}}<li>{{.}}</li>{{end}}</ul>
  {{end}}
  {{if .MissingKeywords}}
  <h2>Missing keywords</h2>
  <ul>{{range .MissingKeywords}}<li>{{.}}</li>{{end}}</ul>
  {{end}}
  {{end}}
</body>
</html>`))

// renderResumeHTML renders the resume into the printable HTML document.
func renderResumeHTML(resume *domain.Resume) (string, error) {
	var sb strings.Builder
	if err := resumeDocumentTmpl.Execute(&sb, resume); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// splitParagraphs breaks resume text on blank lines so the document keeps
// the submitted structure.
func splitParagraphs(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, block := range strings.Split(normalized, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			out = append(out, block)
		}
	}
	return out
}
