package generation

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/careergenie/careergenie-api/internal/domain"
)

// promptFuncs are the helpers available inside prompt templates.
var promptFuncs = template.FuncMap{
	"join": strings.Join,
	"role": func(r domain.ChatRole) string {
		if r == domain.ChatRoleAssistant {
			return "Coach"
		}
		return "Candidate"
	},
}

func mustPrompt(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(promptFuncs).Parse(text))
}

// Prompt templates. Each instructs the model to answer with a single JSON
// value matching the payload structs in generator.go; decodeModelJSON
// tolerates fences and surrounding prose anyway.
var (
	interviewQuestionsTmpl = mustPrompt("interview_questions",
		`You are an experienced technical interviewer preparing a practice interview.

Generate exactly {{.Count}} interview questions for a candidate applying for the role of {{.Role}} at {{.Difficulty}} level.
{{- if .Skills}}
The candidate lists these skills: {{join .Skills ", "}}. Ground some questions in them.
{{- end}}

Respond with only a JSON array, no other text:
[{"text": "the question", "category": "technical|behavioral|situational"}]`)

	evaluationTmpl = mustPrompt("evaluation",
		`You are an experienced interviewer for the role of {{.Role}}, scoring a candidate's answer.

Question: {{.Question}}

Candidate's answer: {{.Answer}}

Score the answer from 0 (no answer) to 10 (excellent). List what was strong and what to improve.

Respond with only a JSON object, no other text:
{"score": 7, "strengths": ["..."], "improvements": ["..."]}`)

	recommendationsTmpl = mustPrompt("recommendations",
		`You are a career coach. Based on the profile below, suggest {{.Count}} career paths that fit.

Profile:
- Name: {{.Profile.FullName}}
{{- if .Profile.Headline}}
- Headline: {{.Profile.Headline}}
{{- end}}
- Years of experience: {{.Profile.ExperienceYears}}
{{- if .Profile.Skills}}
- Skills: {{join .Profile.Skills ", "}}
{{- end}}
{{- if .Profile.Education}}
- Education: {{.Profile.Education}}
{{- end}}
{{- if .Profile.TargetRole}}
- Stated target role: {{.Profile.TargetRole}}
{{- end}}
{{- if .Profile.Bio}}
- About: {{.Profile.Bio}}
{{- end}}

For each path give a fit score from 0 to 100, your reasoning, and skills worth adding.

Respond with only a JSON array, no other text:
[{"title": "...", "fit_score": 85, "reasoning": "...", "suggested_skills": ["..."]}]`)

	resumeAnalysisTmpl = mustPrompt("resume_analysis",
		`You are a professional resume reviewer.{{if .TargetRole}} The candidate is targeting the role of {{.TargetRole}}.{{end}}

Review the resume below. Score it from 0 to 100, list its strengths, its gaps, and keywords recruiters for this kind of role would expect but do not find.

Resume:
{{.Text}}

Respond with only a JSON object, no other text:
{"overall_score": 70, "strengths": ["..."], "gaps": ["..."], "missing_keywords": ["..."], "summary": "one paragraph verdict"}`)

	coachReplyTmpl = mustPrompt("coach_reply",
		`You are CareerGenie, a supportive and pragmatic career coach. Keep replies concise and concrete.
{{- if .Profile}}

You are coaching {{.Profile.FullName}}{{if .Profile.TargetRole}}, who is working toward a role as {{.Profile.TargetRole}}{{end}}.
{{- end}}

Conversation so far:
{{- range .History}}
{{role .Role}}: {{.Content}}
{{- end}}

Reply to the last message as the coach. Respond with the reply text only.`)
)

// renderPrompt executes a prompt template against its data.
func renderPrompt(tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}
