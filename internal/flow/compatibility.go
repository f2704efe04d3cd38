package flow

import (
	"context"
	"math"

	"github.com/fadilmartias/career-compass/internal/service"
)

type CompatibilityRequest struct {
	CurrentUserDescription string `json:"currentUserDescription"`
	TargetJobDescription   string `json:"targetJobDescription"`
}

type CompatibilityResult struct {
	CompatibilityAnalysis string `json:"compatibilityAnalysis"`
	SkillGaps             string `json:"skillGaps"`
	AtsScore              int    `json:"atsScore"`
}

// compatibilityOutput mirrors the generated document; the model may return a
// fractional score.
type compatibilityOutput struct {
	CompatibilityAnalysis string  `json:"compatibilityAnalysis"`
	SkillGaps             string  `json:"skillGaps"`
	AtsScore              float64 `json:"atsScore"`
}

const compatibilityPrompt = `You will analyze the compatibility between the user's current job description and the target job description, identify skill gaps, and provide an ATS score.

Current Job Description: {{.CurrentUserDescription}}
Target Job Description: {{.TargetJobDescription}}

Analyze the compatibility, identify skill gaps, and provide an ATS score (0-100) based on the analysis. The ATS score should reflect how well the current job description matches the target job description.
List each skill gap on its own line.

Return your answer STRICTLY as a JSON object with this schema:
{
  "compatibilityAnalysis": "<detailed analysis of the compatibility between the two job descriptions>",
  "skillGaps": "<skill gaps identified between the two job descriptions, one per line>",
  "atsScore": <integer 0-100>
}`

const compatibilitySchema = `{
  "type": "object",
  "required": ["compatibilityAnalysis", "skillGaps", "atsScore"],
  "properties": {
    "compatibilityAnalysis": {"type": "string"},
    "skillGaps": {"type": "string"},
    "atsScore": {"type": "number"}
  }
}`

var compatibilityFlow = &Definition[CompatibilityRequest, compatibilityOutput]{
	Name:   "analyzeCompatibility",
	System: "You are an expert career advisor specializing in analyzing job descriptions and identifying compatibility.",
	Prompt: mustPrompt("analyzeCompatibility", compatibilityPrompt),
	Schema: mustSchema(compatibilitySchema),
}

// ClampScore bounds an ATS score to [0, 100].
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func AnalyzeCompatibility(ctx context.Context, gen service.Generator, req CompatibilityRequest) (CompatibilityResult, error) {
	out, err := Call(ctx, gen, compatibilityFlow, req)
	if err != nil {
		return CompatibilityResult{}, err
	}
	return CompatibilityResult{
		CompatibilityAnalysis: out.CompatibilityAnalysis,
		SkillGaps:             out.SkillGaps,
		AtsScore:              clampRaw(out.AtsScore),
	}, nil
}

func clampRaw(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return ClampScore(int(math.Round(v)))
}
