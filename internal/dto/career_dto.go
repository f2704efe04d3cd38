package dto

import (
	"strings"
	"time"

	"github.com/fadilmartias/career-compass/internal/flow"
	"github.com/fadilmartias/career-compass/internal/model"
	"github.com/fadilmartias/career-compass/internal/session"
	"github.com/google/uuid"
)

type AnalyzeCompatibilityRequest struct {
	CurrentUserDescription string `json:"currentUserDescription" validate:"required"`
	TargetJobDescription   string `json:"targetJobDescription" validate:"required"`
}

func (r AnalyzeCompatibilityRequest) trimmed() flow.CompatibilityRequest {
	return flow.CompatibilityRequest{
		CurrentUserDescription: strings.TrimSpace(r.CurrentUserDescription),
		TargetJobDescription:   strings.TrimSpace(r.TargetJobDescription),
	}
}

// Validated returns the flow request, or a MissingInputError when a required
// field is blank.
func (r AnalyzeCompatibilityRequest) Validated() (flow.CompatibilityRequest, error) {
	req := r.trimmed()
	return req, check(AnalyzeCompatibilityRequest(req))
}

// SuggestSkillsRequest and RecommendCertificationsRequest are forwarded as
// sent; blank fields reach the flow unchanged.
type SuggestSkillsRequest struct {
	UserDescription       string `json:"userDescription"`
	JobDescription        string `json:"jobDescription"`
	CompatibilityAnalysis string `json:"compatibilityAnalysis"`
}

func (r SuggestSkillsRequest) Validated() (flow.SkillSuggestionRequest, error) {
	return flow.SkillSuggestionRequest(r), nil
}

type RecommendCertificationsRequest struct {
	SkillGaps       string `json:"skillGaps"`
	JobMarketTrends string `json:"jobMarketTrends"`
}

func (r RecommendCertificationsRequest) Validated() (flow.CertificationRequest, error) {
	return flow.CertificationRequest(r), nil
}

type BuildResumeRequest struct {
	JobDescription string   `json:"jobDescription" validate:"required"`
	Skills         []string `json:"skills" validate:"min=1"`
	Qualifications string   `json:"qualifications" validate:"required"`
}

func (r BuildResumeRequest) trimmed() flow.ResumeRequest {
	skills := make([]string, 0, len(r.Skills))
	for _, s := range r.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return flow.ResumeRequest{
		JobDescription: strings.TrimSpace(r.JobDescription),
		Skills:         skills,
		Qualifications: strings.TrimSpace(r.Qualifications),
	}
}

func (r BuildResumeRequest) Validated() (flow.ResumeRequest, error) {
	req := r.trimmed()
	return req, check(BuildResumeRequest(req))
}

func check(v any) error {
	return session.RequireInput(v, "Missing Information", "Please fill in all required fields.")
}

type ProfileDTO struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

type SessionCreatedDTO struct {
	ID string `json:"id"`
}

type FlowRunDTO struct {
	ID         uuid.UUID `json:"id"`
	Flow       string    `json:"flow"`
	Provider   string    `json:"provider"`
	Model      string    `json:"model"`
	Status     string    `json:"status"` // success or error
	DurationMs int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	AtsScore   *int      `json:"ats_score,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewFlowRunDTO(run model.FlowRun) FlowRunDTO {
	return FlowRunDTO{
		ID:         run.ID,
		Flow:       run.Flow,
		Provider:   run.Provider,
		Model:      run.Model,
		Status:     run.Status,
		DurationMs: run.DurationMs,
		Error:      run.Error,
		AtsScore:   run.AtsScore,
		CreatedAt:  run.CreatedAt,
	}
}
