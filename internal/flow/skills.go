package flow

import (
	"context"
	"strings"

	"github.com/fadilmartias/career-compass/internal/service"
)

type SkillSuggestionRequest struct {
	UserDescription       string `json:"userDescription"`
	JobDescription        string `json:"jobDescription"`
	CompatibilityAnalysis string `json:"compatibilityAnalysis,omitempty"`
}

type SkillSuggestionResult struct {
	SuggestedSkills []string `json:"suggestedSkills"`
	Reasoning       string   `json:"reasoning,omitempty"`
}

const skillsPrompt = `You will analyze the user's current description and the target job description to identify skill gaps.
Based on this analysis, you will suggest a list of relevant skills to acquire to improve the user's compatibility with the target job.

User Description: {{.UserDescription}}
Job Description: {{.JobDescription}}
Compatibility Analysis: {{.CompatibilityAnalysis}}

Suggest skills that can bridge the gap between the user's current skills and the requirements of the target job.
Return the suggested skills as an array of strings.
Also, provide a brief reasoning for why each skill is suggested.

Return your answer STRICTLY as a JSON object with this schema:
{
  "suggestedSkills": ["<skill>", "..."],
  "reasoning": "<brief reasoning behind the suggestions>"
}`

const skillsSchema = `{
  "type": "object",
  "required": ["suggestedSkills"],
  "properties": {
    "suggestedSkills": {"type": "array", "items": {"type": "string"}},
    "reasoning": {"type": "string"}
  }
}`

var skillsFlow = &Definition[SkillSuggestionRequest, SkillSuggestionResult]{
	Name:   "suggestSkills",
	System: "You are an expert career advisor.",
	Prompt: mustPrompt("suggestSkills", skillsPrompt),
	Schema: mustSchema(skillsSchema),
	PostProcess: func(out *SkillSuggestionResult) {
		skills := make([]string, 0, len(out.SuggestedSkills))
		for _, s := range out.SuggestedSkills {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
		out.SuggestedSkills = skills
	},
}

func SuggestSkills(ctx context.Context, gen service.Generator, req SkillSuggestionRequest) (SkillSuggestionResult, error) {
	return Call(ctx, gen, skillsFlow, req)
}
