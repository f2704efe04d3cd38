package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fadilmartias/career-compass/internal/flow"
	"github.com/fadilmartias/career-compass/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAdvisor struct {
	mu    sync.Mutex
	calls map[string]int

	analyze   func(flow.CompatibilityRequest) (flow.CompatibilityResult, error)
	skills    func(flow.SkillSuggestionRequest) (flow.SkillSuggestionResult, error)
	certs     func(flow.CertificationRequest) (flow.CertificationResult, error)
	resume    func(flow.ResumeRequest) (flow.ResumeResult, error)
	lastCerts flow.CertificationRequest
	lastBuild flow.ResumeRequest
}

func newFakeAdvisor() *fakeAdvisor {
	return &fakeAdvisor{
		calls: make(map[string]int),
		analyze: func(flow.CompatibilityRequest) (flow.CompatibilityResult, error) {
			return flow.CompatibilityResult{
				CompatibilityAnalysis: "Strong backend fundamentals.",
				SkillGaps:             "Go\n\nKubernetes \n",
				AtsScore:              58,
			}, nil
		},
		skills: func(flow.SkillSuggestionRequest) (flow.SkillSuggestionResult, error) {
			return flow.SkillSuggestionResult{SuggestedSkills: []string{"Go", "Docker"}, Reasoning: "Both appear in the posting."}, nil
		},
		certs: func(flow.CertificationRequest) (flow.CertificationResult, error) {
			return flow.CertificationResult{Certifications: []flow.Certification{
				{Name: "CKAD", URL: "https://training.linuxfoundation.org/certification/ckad/"},
				{Name: "AWS Developer"},
			}}, nil
		},
		resume: func(flow.ResumeRequest) (flow.ResumeResult, error) {
			return flow.ResumeResult{Resume: "JANE DOE\nSUMMARY\nBackend engineer."}, nil
		},
	}
}

func (f *fakeAdvisor) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAdvisor) inc(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeAdvisor) AnalyzeCompatibility(_ context.Context, req flow.CompatibilityRequest) (flow.CompatibilityResult, error) {
	f.inc("analyze")
	return f.analyze(req)
}

func (f *fakeAdvisor) SuggestSkills(_ context.Context, req flow.SkillSuggestionRequest) (flow.SkillSuggestionResult, error) {
	f.inc("skills")
	return f.skills(req)
}

func (f *fakeAdvisor) RecommendCertifications(_ context.Context, req flow.CertificationRequest) (flow.CertificationResult, error) {
	f.inc("certs")
	f.mu.Lock()
	f.lastCerts = req
	f.mu.Unlock()
	return f.certs(req)
}

func (f *fakeAdvisor) BuildResume(_ context.Context, req flow.ResumeRequest) (flow.ResumeResult, error) {
	f.inc("resume")
	f.mu.Lock()
	f.lastBuild = req
	f.mu.Unlock()
	return f.resume(req)
}

func str(s string) *string { return &s }

func newTestSession(adv Advisor) *Session {
	return newSession(context.Background(), adv, zap.NewNop())
}

func analyzed(t *testing.T, adv *fakeAdvisor) *Session {
	t.Helper()
	s := newTestSession(adv)
	require.NoError(t, s.Analyze(FormPatch{
		CurrentUserDescription: str("Backend engineer, 3 years Java"),
		TargetJobDescription:   str("Senior Go engineer"),
	}))
	s.Wait()
	return s
}

func TestAnalyzeRequiresBothDescriptions(t *testing.T) {
	adv := newFakeAdvisor()
	s := newTestSession(adv)

	err := s.Analyze(FormPatch{CurrentUserDescription: str("Java developer"), TargetJobDescription: str("   ")})

	var missing *MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"targetJobDescription"}, missing.Fields)
	s.Wait()
	assert.Zero(t, adv.count("analyze"))

	v := s.Snapshot()
	assert.Equal(t, StatusIdle, v.Statuses.Analysis)
	require.Len(t, v.Notifications, 1)
	assert.Equal(t, VariantDestructive, v.Notifications[0].Variant)
}

func TestAnalyzeSuccessHandsOffTargetJob(t *testing.T) {
	adv := newFakeAdvisor()
	s := analyzed(t, adv)

	v := s.Snapshot()
	assert.Equal(t, StatusSuccess, v.Statuses.Analysis)
	assert.Equal(t, "Senior Go engineer", v.Form.ResumeJobDescription)
	assert.True(t, v.AnalysisReady)
	assert.Equal(t, render.Progress(58), v.Panels.AtsScore.Display)
	assert.Equal(t, render.Strings([]string{"Go", "Kubernetes"}), v.Panels.SkillGaps.Display)
	assert.Equal(t, render.StateContent, v.Panels.CompatibilityAnalysis.State)
	require.Len(t, v.Notifications, 1)
	assert.Equal(t, "Analysis Complete", v.Notifications[0].Title)

	// Notifications are drained once read.
	assert.Empty(t, s.Snapshot().Notifications)

	// Later edits to the target do not propagate.
	s.Update(FormPatch{TargetJobDescription: str("Staff Go engineer")})
	assert.Equal(t, "Senior Go engineer", s.Snapshot().Form.ResumeJobDescription)
}

func TestAnalyzeFailureIsLocal(t *testing.T) {
	adv := newFakeAdvisor()
	adv.analyze = func(flow.CompatibilityRequest) (flow.CompatibilityResult, error) {
		return flow.CompatibilityResult{}, &flow.GenerationError{Flow: "analyzeCompatibility", Err: errors.New("quota exceeded")}
	}
	s := analyzed(t, adv)

	v := s.Snapshot()
	assert.Equal(t, StatusError, v.Statuses.Analysis)
	assert.Equal(t, render.StateError, v.Panels.CompatibilityAnalysis.State)
	assert.Contains(t, v.Panels.CompatibilityAnalysis.Error, "quota exceeded")
	assert.Equal(t, StatusIdle, v.Statuses.Resume)
	assert.Empty(t, v.Form.ResumeJobDescription)
	require.Len(t, v.Notifications, 1)
	assert.Equal(t, VariantDestructive, v.Notifications[0].Variant)
}

func TestSuggestAndRecommendRequiresAnalysis(t *testing.T) {
	adv := newFakeAdvisor()
	s := newTestSession(adv)

	err := s.SuggestAndRecommend(FormPatch{JobMarketTrends: str("Cloud-native roles trending")})

	var missing *MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Run Analysis First", missing.Title)
	s.Wait()
	assert.Zero(t, adv.count("skills"))
	assert.Zero(t, adv.count("certs"))
	v := s.Snapshot()
	assert.Equal(t, StatusIdle, v.Statuses.Skills)
	assert.Equal(t, StatusIdle, v.Statuses.Certifications)
}

func TestSuggestAndRecommendRequiresSkillGaps(t *testing.T) {
	adv := newFakeAdvisor()
	adv.analyze = func(flow.CompatibilityRequest) (flow.CompatibilityResult, error) {
		return flow.CompatibilityResult{CompatibilityAnalysis: "Perfect match.", SkillGaps: "  ", AtsScore: 97}, nil
	}
	s := analyzed(t, adv)
	assert.False(t, s.Snapshot().AnalysisReady)

	err := s.SuggestAndRecommend(FormPatch{JobMarketTrends: str("AI tooling")})
	var missing *MissingInputError
	require.ErrorAs(t, err, &missing)
	s.Wait()
	assert.Zero(t, adv.count("skills"))
}

func TestSuggestAndRecommend(t *testing.T) {
	adv := newFakeAdvisor()
	s := analyzed(t, adv)
	s.Snapshot()

	require.NoError(t, s.SuggestAndRecommend(FormPatch{JobMarketTrends: str("Cloud-native roles trending")}))
	s.Wait()

	v := s.Snapshot()
	assert.Equal(t, StatusSuccess, v.Statuses.Skills)
	assert.Equal(t, StatusSuccess, v.Statuses.Certifications)
	assert.Equal(t, "Go, Docker", v.Form.ResumeSkills)
	assert.Equal(t, "Both appear in the posting.", v.Reasoning)
	assert.Equal(t, render.List([]render.Item{
		{Text: "CKAD", URL: "https://training.linuxfoundation.org/certification/ckad/"},
		{Text: "AWS Developer"},
	}), v.Panels.Certifications.Display)
	assert.Len(t, v.Notifications, 2)

	assert.Equal(t, "Go\n\nKubernetes \n", adv.lastCerts.SkillGaps)
	assert.Equal(t, "Cloud-native roles trending", adv.lastCerts.JobMarketTrends)
}

func TestSuggestWithoutTrendsFailsCertificationsOnly(t *testing.T) {
	adv := newFakeAdvisor()
	s := analyzed(t, adv)
	s.Snapshot()

	require.NoError(t, s.SuggestAndRecommend(FormPatch{}))
	s.Wait()

	v := s.Snapshot()
	assert.Equal(t, 1, adv.count("skills"))
	assert.Zero(t, adv.count("certs"))
	assert.Equal(t, StatusSuccess, v.Statuses.Skills)
	assert.Equal(t, StatusError, v.Statuses.Certifications)
	assert.Equal(t, "Job market trends are required.", v.Panels.Certifications.Error)
}

func TestSkillsAndCertificationsFailIndependently(t *testing.T) {
	adv := newFakeAdvisor()
	adv.skills = func(flow.SkillSuggestionRequest) (flow.SkillSuggestionResult, error) {
		return flow.SkillSuggestionResult{}, errors.New("backend unavailable")
	}
	s := analyzed(t, adv)

	require.NoError(t, s.SuggestAndRecommend(FormPatch{JobMarketTrends: str("Platform engineering")}))
	s.Wait()

	v := s.Snapshot()
	assert.Equal(t, StatusError, v.Statuses.Skills)
	assert.Equal(t, StatusSuccess, v.Statuses.Certifications)
	assert.Empty(t, v.Form.ResumeSkills)
}

func TestSkillsAndCertificationsCompleteInAnyOrder(t *testing.T) {
	adv := newFakeAdvisor()
	skillsGate := make(chan struct{})
	certsDone := make(chan struct{})
	adv.skills = func(flow.SkillSuggestionRequest) (flow.SkillSuggestionResult, error) {
		<-skillsGate
		return flow.SkillSuggestionResult{SuggestedSkills: []string{"Go"}}, nil
	}
	base := adv.certs
	adv.certs = func(req flow.CertificationRequest) (flow.CertificationResult, error) {
		defer close(certsDone)
		return base(req)
	}
	s := analyzed(t, adv)

	require.NoError(t, s.SuggestAndRecommend(FormPatch{JobMarketTrends: str("Observability")}))
	<-certsDone
	require.Eventually(t, func() bool {
		return s.Snapshot().Statuses.Certifications == StatusSuccess
	}, time.Second, 5*time.Millisecond)

	v := s.Snapshot()
	assert.Equal(t, StatusPending, v.Statuses.Skills)
	assert.True(t, v.Busy)
	assert.Equal(t, render.StateLoading, v.Panels.SuggestedSkills.State)

	close(skillsGate)
	s.Wait()
	assert.Equal(t, StatusSuccess, s.Snapshot().Statuses.Skills)
}

func TestStaleResultIsDiscarded(t *testing.T) {
	adv := newFakeAdvisor()
	first := make(chan struct{})
	adv.analyze = func(req flow.CompatibilityRequest) (flow.CompatibilityResult, error) {
		if req.TargetJobDescription == "Data engineer" {
			<-first
			return flow.CompatibilityResult{CompatibilityAnalysis: "old", SkillGaps: "Old gap", AtsScore: 10}, nil
		}
		return flow.CompatibilityResult{CompatibilityAnalysis: "new", SkillGaps: "New gap", AtsScore: 90}, nil
	}
	s := newTestSession(adv)
	patch := FormPatch{CurrentUserDescription: str("Analyst"), TargetJobDescription: str("Data engineer")}

	require.NoError(t, s.Analyze(patch))
	require.NoError(t, s.Analyze(FormPatch{TargetJobDescription: str("ML engineer")}))
	require.Eventually(t, func() bool {
		return s.Snapshot().Statuses.Analysis == StatusSuccess
	}, time.Second, 5*time.Millisecond)

	close(first)
	s.Wait()

	v := s.Snapshot()
	assert.Equal(t, "new", v.Panels.CompatibilityAnalysis.Display.Text)
	assert.Equal(t, render.Progress(90), v.Panels.AtsScore.Display)
	assert.Equal(t, "ML engineer", v.Form.ResumeJobDescription)
}

func TestBuildResumeValidation(t *testing.T) {
	tests := []struct {
		name   string
		patch  FormPatch
		fields []string
	}{
		{
			name:   "all empty",
			patch:  FormPatch{},
			fields: []string{"resumeJobDescription", "resumeSkills", "resumeQualifications"},
		},
		{
			name: "skills only separators",
			patch: FormPatch{
				ResumeJobDescription: str("Go engineer"),
				ResumeSkills:         str(" , ,"),
				ResumeQualifications: str("BSc CS"),
			},
			fields: []string{"resumeSkills"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adv := newFakeAdvisor()
			s := newTestSession(adv)

			err := s.BuildResume(tt.patch)

			var missing *MissingInputError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.fields, missing.Fields)
			s.Wait()
			assert.Zero(t, adv.count("resume"))
		})
	}
}

func TestBuildResume(t *testing.T) {
	adv := newFakeAdvisor()
	s := newTestSession(adv)

	require.NoError(t, s.BuildResume(FormPatch{
		ResumeJobDescription: str("Senior Go engineer"),
		ResumeSkills:         str("Python, ,SQL ,"),
		ResumeQualifications: str("BSc Computer Science"),
	}))
	s.Wait()

	assert.Equal(t, []string{"Python", "SQL"}, adv.lastBuild.Skills)
	text, ok := s.ResumeText()
	require.True(t, ok)
	assert.Equal(t, "JANE DOE\nSUMMARY\nBackend engineer.", text)
	v := s.Snapshot()
	assert.Equal(t, StatusSuccess, v.Statuses.Resume)
	assert.Equal(t, text, v.Resume)
}

func TestResumeTextBeforeBuild(t *testing.T) {
	s := newTestSession(newFakeAdvisor())
	_, ok := s.ResumeText()
	assert.False(t, ok)
}

func TestEndToEnd(t *testing.T) {
	adv := newFakeAdvisor()
	s := analyzed(t, adv)

	require.NoError(t, s.SuggestAndRecommend(FormPatch{JobMarketTrends: str("Cloud-native roles trending")}))
	s.Wait()
	require.NoError(t, s.BuildResume(FormPatch{ResumeQualifications: str("BSc, AWS SAA")}))
	s.Wait()

	assert.Equal(t, "Senior Go engineer", adv.lastBuild.JobDescription)
	assert.Equal(t, []string{"Go", "Docker"}, adv.lastBuild.Skills)
	v := s.Snapshot()
	assert.False(t, v.Busy)
	assert.Equal(t, StatusSuccess, v.Statuses.Resume)
}

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL"}, ParseSkills(" Go ,, SQL,"))
	assert.Empty(t, ParseSkills(""))
}
