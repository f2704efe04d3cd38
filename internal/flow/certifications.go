package flow

import (
	"context"
	"strings"

	"github.com/fadilmartias/career-compass/internal/service"
	"github.com/go-playground/validator/v10"
)

type CertificationRequest struct {
	SkillGaps       string `json:"skillGaps"`
	JobMarketTrends string `json:"jobMarketTrends"`
}

type Certification struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type CertificationResult struct {
	Certifications []Certification `json:"certifications"`
}

const certificationsPrompt = `Based on the identified skill gaps and current job market trends, recommend relevant certifications to pursue.
For each certification, provide its name and a direct URL to the certification provider or an official information page if available.
If a URL is not readily available or a valid one cannot be found, you may omit the url field for that certification. Ensure any provided URLs are valid.

Skill Gaps: {{.SkillGaps}}
Job Market Trends: {{.JobMarketTrends}}

Return your answer STRICTLY as a JSON object with this schema:
{
  "certifications": [
    {"name": "<certification name>", "url": "<official URL, omit if unknown>"}
  ]
}`

const certificationsSchema = `{
  "type": "object",
  "required": ["certifications"],
  "properties": {
    "certifications": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "url": {"type": "string"}
        }
      }
    }
  }
}`

var validate = validator.New()

var certificationsFlow = &Definition[CertificationRequest, CertificationResult]{
	Name:        "recommendCertifications",
	System:      "You are a career advisor that specializes in recommending certifications based on skill gaps and job market trends.",
	Prompt:      mustPrompt("recommendCertifications", certificationsPrompt),
	Schema:      mustSchema(certificationsSchema),
	PostProcess: sanitizeCertifications,
}

// sanitizeCertifications drops blank names and any URL that is not an
// absolute http(s) address; the name is kept without a link.
func sanitizeCertifications(out *CertificationResult) {
	certs := make([]Certification, 0, len(out.Certifications))
	for _, c := range out.Certifications {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			continue
		}
		c.URL = strings.TrimSpace(c.URL)
		if c.URL != "" && validate.Var(c.URL, "http_url") != nil {
			c.URL = ""
		}
		certs = append(certs, c)
	}
	out.Certifications = certs
}

func RecommendCertifications(ctx context.Context, gen service.Generator, req CertificationRequest) (CertificationResult, error) {
	return Call(ctx, gen, certificationsFlow, req)
}
