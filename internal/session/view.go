package session

import (
	"github.com/fadilmartias/career-compass/internal/render"
)

// Statuses reports the state of each operation.
type Statuses struct {
	Analysis       Status `json:"analysis"`
	Skills         Status `json:"skills"`
	Certifications Status `json:"certifications"`
	Resume         Status `json:"resume"`
}

// Panels holds every result area of the page.
type Panels struct {
	AtsScore              render.Panel `json:"atsScore"`
	CompatibilityAnalysis render.Panel `json:"compatibilityAnalysis"`
	SkillGaps             render.Panel `json:"skillGaps"`
	SuggestedSkills       render.Panel `json:"suggestedSkills"`
	Certifications        render.Panel `json:"certifications"`
	Resume                render.Panel `json:"resume"`
}

// View is a point-in-time copy of a session.
type View struct {
	ID            string         `json:"id"`
	Form          Form           `json:"form"`
	Statuses      Statuses       `json:"statuses"`
	Panels        Panels         `json:"panels"`
	Reasoning     string         `json:"reasoning,omitempty"`
	Resume        string         `json:"resume,omitempty"`
	AnalysisReady bool           `json:"analysisReady"`
	Busy          bool           `json:"busy"`
	Notifications []Notification `json:"notifications"`
}

// Snapshot copies the session state and drains pending notifications.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:   s.ID.String(),
		Form: s.form,
		Statuses: Statuses{
			Analysis:       s.analysis.state(),
			Skills:         s.skills.state(),
			Certifications: s.certs.state(),
			Resume:         s.resume.state(),
		},
		Busy:          s.busy(),
		Notifications: s.notifications,
	}
	if v.Notifications == nil {
		v.Notifications = []Notification{}
	}
	s.notifications = nil

	var score, analysis, gaps render.Display
	if r := s.analysis.result; r != nil {
		score = render.Progress(r.AtsScore)
		analysis = render.Text(r.CompatibilityAnalysis)
		gaps = render.Strings(render.SplitLines(r.SkillGaps))
		v.AnalysisReady = len(gaps.Items) > 0
	}
	loading := s.analysis.pending()
	v.Panels.AtsScore = render.NewPanel("ATS Score", loading, s.analysis.err, score)
	v.Panels.CompatibilityAnalysis = render.NewPanel("Compatibility Analysis", loading, s.analysis.err, analysis)
	v.Panels.SkillGaps = render.NewPanel("Skill Gaps", loading, s.analysis.err, gaps)

	var skills render.Display
	if r := s.skills.result; r != nil {
		skills = render.Strings(r.SuggestedSkills)
		v.Reasoning = r.Reasoning
	}
	v.Panels.SuggestedSkills = render.NewPanel("Suggested Skills", s.skills.pending(), s.skills.err, skills)

	var certs render.Display
	if r := s.certs.result; r != nil {
		items := make([]render.Item, 0, len(r.Certifications))
		for _, c := range r.Certifications {
			items = append(items, render.Item{Text: c.Name, URL: c.URL})
		}
		certs = render.List(items)
	}
	v.Panels.Certifications = render.NewPanel("Recommended Certifications", s.certs.pending(), s.certs.err, certs)

	var resume render.Display
	if r := s.resume.result; r != nil {
		resume = render.Text(r.Resume)
		v.Resume = r.Resume
	}
	v.Panels.Resume = render.NewPanel("Generated Resume", s.resume.pending(), s.resume.err, resume)

	return v
}
