package flow

import (
	"context"
	"regexp"
	"strings"

	"github.com/fadilmartias/career-compass/internal/service"
)

type ResumeRequest struct {
	JobDescription string   `json:"jobDescription"`
	Skills         []string `json:"skills"`
	Qualifications string   `json:"qualifications"`
}

type ResumeResult struct {
	Resume string `json:"resume"`
}

// JoinSkills renders skills the way the resume prompt lists them.
func JoinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}

const resumePrompt = `The resume must be plain text, optimized for Applicant Tracking Systems.

Follow this structure strictly:

1. Contact Information: (Extract from Qualifications if available, otherwise use placeholders or omit)
   - Full Name
   - Phone Number
   - Email Address
   - LinkedIn Profile URL (Optional)
   - Location (City, State)

2. Summary/Objective:
   - A brief 2-4 sentence summary tailored to the Job Description: {{.JobDescription}}, highlighting key skills and qualifications from: {{.Qualifications}}.

3. Skills:
   - A bulleted or comma-separated list of relevant skills: {{join .Skills}}.
   - Consider categorizing if appropriate (e.g., Technical Skills, Soft Skills) based on the skills provided.

4. Work Experience: (Extract from Qualifications: {{.Qualifications}})
   - List in reverse chronological order.
   - For each role: Job Title; Company Name, City, State; Dates of Employment (Month Year - Month Year or Month Year - Present).
   - Use 2-4 bullet points to describe responsibilities and achievements, incorporating keywords from the Job Description and Qualifications. Start each bullet point with an action verb.

5. Education: (Extract from Qualifications: {{.Qualifications}})
   - List in reverse chronological order.
   - For each degree: Degree Name; University Name, City, State; Graduation Date (Month Year or Expected Month Year); Relevant coursework or honors (Optional).

6. Projects (Optional, if relevant from Qualifications: {{.Qualifications}}):
   - Project Title
   - Brief description and your role/achievements.

Ensure the entire resume is a single block of plain text.
Use simple line breaks for separation. Do not use markdown for headers (like ## or **), use plain text titles for sections followed by a colon or a line break.
Avoid tables, columns, or special characters that might not parse well in an ATS.

Return your answer STRICTLY as a JSON object with this schema:
{
  "resume": "<the complete resume as plain text>"
}`

const resumeSchema = `{
  "type": "object",
  "required": ["resume"],
  "properties": {
    "resume": {"type": "string"}
  }
}`

var resumeFlow = &Definition[ResumeRequest, ResumeResult]{
	Name:   "buildResume",
	System: "You are an expert resume writer specializing in creating ATS-friendly resumes.",
	Prompt: mustPrompt("buildResume", resumePrompt),
	Schema: mustSchema(resumeSchema),
	PostProcess: func(out *ResumeResult) {
		out.Resume = strings.TrimSpace(out.Resume)
	},
}

var markdownMarkup = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s|\*\*|^\s*\|.*\|\s*$`)

// HasMarkdown reports whether text carries markdown headings, bold markers or
// table rows.
func HasMarkdown(text string) bool {
	return markdownMarkup.MatchString(text)
}

func BuildResume(ctx context.Context, gen service.Generator, req ResumeRequest) (ResumeResult, error) {
	return Call(ctx, gen, resumeFlow, req)
}
