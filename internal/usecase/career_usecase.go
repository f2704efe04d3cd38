package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/fadilmartias/career-compass/internal/flow"
	"github.com/fadilmartias/career-compass/internal/metrics"
	"github.com/fadilmartias/career-compass/internal/model"
	"github.com/fadilmartias/career-compass/internal/service"
	"go.uber.org/zap"
)

var ErrRunLogDisabled = errors.New("run log is disabled")

// RunStore persists flow invocations.
type RunStore interface {
	Create(ctx context.Context, run *model.FlowRun) error
	List(ctx context.Context, page, pageSize int) ([]model.FlowRun, int64, error)
}

// CareerUsecase runs the advisory flows against the configured generator,
// recording metrics and an optional run log for every call.
type CareerUsecase struct {
	gen     service.Generator
	runs    RunStore
	metrics *metrics.Flows
	log     *zap.Logger
	now     func() time.Time
}

// NewCareerUsecase wires the flows. runs and m may be nil.
func NewCareerUsecase(gen service.Generator, runs RunStore, m *metrics.Flows, log *zap.Logger) *CareerUsecase {
	return &CareerUsecase{gen: gen, runs: runs, metrics: m, log: log, now: time.Now}
}

func (uc *CareerUsecase) AnalyzeCompatibility(ctx context.Context, req flow.CompatibilityRequest) (flow.CompatibilityResult, error) {
	start := uc.now()
	res, err := flow.AnalyzeCompatibility(ctx, uc.gen, req)
	run := uc.observe("analyzeCompatibility", start, err)
	if err == nil {
		score := res.AtsScore
		run.AtsScore = &score
	}
	uc.record(ctx, run)
	return res, err
}

func (uc *CareerUsecase) SuggestSkills(ctx context.Context, req flow.SkillSuggestionRequest) (flow.SkillSuggestionResult, error) {
	start := uc.now()
	res, err := flow.SuggestSkills(ctx, uc.gen, req)
	uc.record(ctx, uc.observe("suggestSkills", start, err))
	return res, err
}

func (uc *CareerUsecase) RecommendCertifications(ctx context.Context, req flow.CertificationRequest) (flow.CertificationResult, error) {
	start := uc.now()
	res, err := flow.RecommendCertifications(ctx, uc.gen, req)
	uc.record(ctx, uc.observe("recommendCertifications", start, err))
	return res, err
}

func (uc *CareerUsecase) BuildResume(ctx context.Context, req flow.ResumeRequest) (flow.ResumeResult, error) {
	start := uc.now()
	res, err := flow.BuildResume(ctx, uc.gen, req)
	if err == nil && flow.HasMarkdown(res.Resume) {
		uc.log.Warn("generated resume contains markdown markers", zap.Int("length", len(res.Resume)))
	}
	uc.record(ctx, uc.observe("buildResume", start, err))
	return res, err
}

// ListRuns returns one page of the run log.
func (uc *CareerUsecase) ListRuns(ctx context.Context, page, pageSize int) ([]model.FlowRun, int64, error) {
	if uc.runs == nil {
		return nil, 0, ErrRunLogDisabled
	}
	return uc.runs.List(ctx, page, pageSize)
}

func (uc *CareerUsecase) observe(name string, start time.Time, err error) *model.FlowRun {
	elapsed := uc.now().Sub(start)
	run := &model.FlowRun{
		Flow:       name,
		Status:     model.RunStatusSuccess,
		DurationMs: elapsed.Milliseconds(),
		CreatedAt:  start,
	}
	if s, ok := uc.gen.(service.StatusReporter); ok {
		st := s.Status()
		run.Provider, run.Model = st.Provider, st.Model
	}

	fields := []zap.Field{zap.String("flow", name), zap.Duration("elapsed", elapsed)}
	if err != nil {
		run.Status = model.RunStatusError
		run.Error = err.Error()
		uc.log.Warn("flow failed", append(fields, zap.Error(err))...)
	} else {
		uc.log.Info("flow completed", fields...)
	}
	uc.metrics.Observe(name, run.Status, elapsed)
	return run
}

func (uc *CareerUsecase) record(ctx context.Context, run *model.FlowRun) {
	if uc.runs == nil {
		return
	}
	// The run is logged even when the caller's context has been cancelled.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := uc.runs.Create(ctx, run); err != nil {
		uc.log.Error("failed to record flow run", zap.String("flow", run.Flow), zap.Error(err))
	}
}
