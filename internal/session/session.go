package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/career-compass/internal/flow"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Advisor runs the four generation flows.
type Advisor interface {
	AnalyzeCompatibility(ctx context.Context, req flow.CompatibilityRequest) (flow.CompatibilityResult, error)
	SuggestSkills(ctx context.Context, req flow.SkillSuggestionRequest) (flow.SkillSuggestionResult, error)
	RecommendCertifications(ctx context.Context, req flow.CertificationRequest) (flow.CertificationResult, error)
	BuildResume(ctx context.Context, req flow.ResumeRequest) (flow.ResumeResult, error)
}

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a transient message shown once to the user.
type Notification struct {
	Variant     Variant `json:"variant"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

const trendsRequired = "Job market trends are required."

// Session is the state of one visitor: form fields, one slot per operation
// and pending notifications.
type Session struct {
	ID uuid.UUID

	mu            sync.Mutex
	form          Form
	analysis      slot[flow.CompatibilityResult]
	skills        slot[flow.SkillSuggestionResult]
	certs         slot[flow.CertificationResult]
	resume        slot[flow.ResumeResult]
	notifications []Notification
	lastSeen      time.Time

	advisor Advisor
	ctx     context.Context
	log     *zap.Logger
	wg      sync.WaitGroup
}

func newSession(ctx context.Context, advisor Advisor, log *zap.Logger) *Session {
	id := uuid.New()
	return &Session{
		ID:       id,
		advisor:  advisor,
		ctx:      ctx,
		log:      log.With(zap.String("session_id", id.String())),
		lastSeen: time.Now(),
	}
}

// Update applies p to the form without dispatching anything.
func (s *Session) Update(p FormPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.apply(p)
}

// Analyze applies p and dispatches the compatibility analysis.
func (s *Session) Analyze(p FormPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.apply(p)

	req := flow.CompatibilityRequest{
		CurrentUserDescription: strings.TrimSpace(s.form.CurrentUserDescription),
		TargetJobDescription:   strings.TrimSpace(s.form.TargetJobDescription),
	}
	err := RequireInput(analysisInput(req), "Missing Information",
		"Please provide both your current role/skills and the target job description.")
	if err != nil {
		s.warn(err)
		return err
	}

	seq := s.analysis.begin()
	target := s.form.TargetJobDescription
	s.dispatch("analyze", func(ctx context.Context) {
		res, err := s.advisor.AnalyzeCompatibility(ctx, req)

		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.analysis.commit(seq, res, err) {
			s.log.Debug("discarding stale analysis result", zap.Uint64("seq", seq))
			return
		}
		if err != nil {
			s.failed("Analysis Failed", err)
			return
		}
		s.form.ResumeJobDescription = target
		s.notify(VariantDefault, "Analysis Complete", "Compatibility analysis has been generated.")
	})
	return nil
}

// SuggestAndRecommend applies p and dispatches skill suggestions and, when
// market trends are given, certification recommendations. Both require a
// successful analysis.
func (s *Session) SuggestAndRecommend(p FormPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.apply(p)

	var gaps, analysis string
	if s.analysis.state() == StatusSuccess {
		gaps = s.analysis.result.SkillGaps
		analysis = s.analysis.result.CompatibilityAnalysis
	}
	err := RequireInput(recommendationInput{SkillGaps: strings.TrimSpace(gaps)}, "Run Analysis First",
		"Please complete the compatibility analysis before requesting suggestions.")
	if err != nil {
		s.warn(err)
		return err
	}

	skillsReq := flow.SkillSuggestionRequest{
		UserDescription:       s.form.CurrentUserDescription,
		JobDescription:        s.form.TargetJobDescription,
		CompatibilityAnalysis: analysis,
	}
	skillsSeq := s.skills.begin()
	s.dispatch("suggest_skills", func(ctx context.Context) {
		res, err := s.advisor.SuggestSkills(ctx, skillsReq)

		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.skills.commit(skillsSeq, res, err) {
			s.log.Debug("discarding stale skills result", zap.Uint64("seq", skillsSeq))
			return
		}
		if err != nil {
			s.failed("Skill Suggestion Failed", err)
			return
		}
		if len(res.SuggestedSkills) > 0 {
			s.form.ResumeSkills = flow.JoinSkills(res.SuggestedSkills)
		}
		s.notify(VariantDefault, "Skills Suggested", "Skill suggestions are ready.")
	})

	trends := strings.TrimSpace(s.form.JobMarketTrends)
	if trends == "" {
		s.certs.fail(trendsRequired)
		s.notify(VariantDestructive, "Missing Information", trendsRequired)
		return nil
	}
	certsReq := flow.CertificationRequest{SkillGaps: gaps, JobMarketTrends: trends}
	certsSeq := s.certs.begin()
	s.dispatch("recommend_certifications", func(ctx context.Context) {
		res, err := s.advisor.RecommendCertifications(ctx, certsReq)

		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.certs.commit(certsSeq, res, err) {
			s.log.Debug("discarding stale certifications result", zap.Uint64("seq", certsSeq))
			return
		}
		if err != nil {
			s.failed("Certification Recommendation Failed", err)
			return
		}
		s.notify(VariantDefault, "Certifications Recommended", "Certification recommendations are ready.")
	})
	return nil
}

// BuildResume applies p and dispatches resume generation.
func (s *Session) BuildResume(p FormPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.apply(p)

	in := resumeInput{
		JobDescription: strings.TrimSpace(s.form.ResumeJobDescription),
		Skills:         ParseSkills(s.form.ResumeSkills),
		Qualifications: strings.TrimSpace(s.form.ResumeQualifications),
	}
	err := RequireInput(in, "Missing Information",
		"Please provide the job description, your skills, and your qualifications.")
	if err != nil {
		s.warn(err)
		return err
	}

	req := flow.ResumeRequest{JobDescription: in.JobDescription, Skills: in.Skills, Qualifications: in.Qualifications}
	seq := s.resume.begin()
	s.dispatch("build_resume", func(ctx context.Context) {
		res, err := s.advisor.BuildResume(ctx, req)

		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.resume.commit(seq, res, err) {
			s.log.Debug("discarding stale resume result", zap.Uint64("seq", seq))
			return
		}
		if err != nil {
			s.failed("Resume Generation Failed", err)
			return
		}
		s.notify(VariantDefault, "Resume Generated", "Your ATS-friendly resume is ready.")
	})
	return nil
}

// ResumeText returns the generated resume, if any.
func (s *Session) ResumeText() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resume.state() != StatusSuccess || s.resume.result.Resume == "" {
		return "", false
	}
	return s.resume.result.Resume, true
}

// Busy reports whether any operation is still pending.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy()
}

func (s *Session) busy() bool {
	return s.analysis.pending() || s.skills.pending() || s.certs.pending() || s.resume.pending()
}

// Wait blocks until every dispatched operation has completed.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// dispatch runs fn in the background. Callers hold s.mu.
func (s *Session) dispatch(op string, fn func(ctx context.Context)) {
	s.log.Debug("dispatching", zap.String("op", op))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}

func (s *Session) notify(v Variant, title, desc string) {
	s.notifications = append(s.notifications, Notification{Variant: v, Title: title, Description: desc})
}

func (s *Session) warn(err error) {
	if mi, ok := err.(*MissingInputError); ok {
		s.notify(VariantDestructive, mi.Title, mi.Message)
	}
}

func (s *Session) failed(title string, err error) {
	s.log.Warn(strings.ToLower(title), zap.Error(err))
	s.notify(VariantDestructive, title, err.Error())
}

// Notify queues a notification for the next snapshot.
func (s *Session) Notify(v Variant, title, desc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify(v, title, desc)
}
