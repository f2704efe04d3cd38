package session

import "strings"

// Form holds the text the user has typed into the three tabs.
type Form struct {
	CurrentUserDescription string `json:"currentUserDescription" form:"currentUserDescription"`
	TargetJobDescription   string `json:"targetJobDescription" form:"targetJobDescription"`
	JobMarketTrends        string `json:"jobMarketTrends" form:"jobMarketTrends"`
	ResumeJobDescription   string `json:"resumeJobDescription" form:"resumeJobDescription"`
	ResumeSkills           string `json:"resumeSkills" form:"resumeSkills"`
	ResumeQualifications   string `json:"resumeQualifications" form:"resumeQualifications"`
}

// FormPatch updates only the fields that are set.
type FormPatch struct {
	CurrentUserDescription *string `json:"currentUserDescription"`
	TargetJobDescription   *string `json:"targetJobDescription"`
	JobMarketTrends        *string `json:"jobMarketTrends"`
	ResumeJobDescription   *string `json:"resumeJobDescription"`
	ResumeSkills           *string `json:"resumeSkills"`
	ResumeQualifications   *string `json:"resumeQualifications"`
}

func (f *Form) apply(p FormPatch) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&f.CurrentUserDescription, p.CurrentUserDescription)
	set(&f.TargetJobDescription, p.TargetJobDescription)
	set(&f.JobMarketTrends, p.JobMarketTrends)
	set(&f.ResumeJobDescription, p.ResumeJobDescription)
	set(&f.ResumeSkills, p.ResumeSkills)
	set(&f.ResumeQualifications, p.ResumeQualifications)
}

// ParseSkills splits a comma separated skills field, trimming entries and
// dropping empty ones.
func ParseSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

type analysisInput struct {
	CurrentUserDescription string `json:"currentUserDescription" validate:"required"`
	TargetJobDescription   string `json:"targetJobDescription" validate:"required"`
}

type recommendationInput struct {
	SkillGaps string `json:"skillGaps" validate:"required"`
}

type resumeInput struct {
	JobDescription string   `json:"resumeJobDescription" validate:"required"`
	Skills         []string `json:"resumeSkills" validate:"min=1"`
	Qualifications string   `json:"resumeQualifications" validate:"required"`
}
