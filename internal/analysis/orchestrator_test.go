package analysis

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/marcusft/resume-matcher/internal/types"
)

// fakeStore is an in-memory ArtifactStore with upsert semantics matching the
// improvements table: payload replaced, created_at preserved, updated_at
// advanced on every write.
type fakeStore struct {
	mu      sync.Mutex
	rows    map[string]types.Improvement
	upserts int
	clock   time.Time
	getErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows:  make(map[string]types.Improvement),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func pairKey(resumeID, jobID string) string {
	return resumeID + "|" + jobID
}

func (s *fakeStore) GetImprovement(_ context.Context, resumeID, jobID string) (*types.Improvement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	row, ok := s.rows[pairKey(resumeID, jobID)]
	if !ok {
		return nil, nil
	}
	copied := row
	return &copied, nil
}

func (s *fakeStore) UpsertImprovement(_ context.Context, imp *types.Improvement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	s.clock = s.clock.Add(time.Second)

	key := pairKey(imp.ResumeID, imp.JobID)
	if existing, ok := s.rows[key]; ok {
		imp.ID = existing.ID
		imp.CreatedAt = existing.CreatedAt
	} else {
		imp.ID = uuid.New()
		imp.CreatedAt = s.clock
	}
	imp.UpdatedAt = s.clock
	s.rows[key] = *imp
	return nil
}

// fakePipeline returns a scripted result and replays scripted events
type fakePipeline struct {
	calls  int
	result types.AnalysisResult
	events []types.AnalysisEvent
	err    error
}

func (p *fakePipeline) Run(_ context.Context, _, _ string, progress ProgressCallback) (*types.AnalysisResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	for _, event := range p.events {
		if progress != nil {
			if err := progress(event); err != nil {
				return nil, err
			}
		}
	}
	result := p.result
	return &result, nil
}

func testResult(newScore float64) types.AnalysisResult {
	return types.AnalysisResult{
		OriginalScore:          0.41,
		NewScore:               newScore,
		UpdatedResume:          "<h1>Ada</h1>",
		Details:                "details",
		Commentary:             "commentary",
		Improvements:           []types.Suggestion{{Suggestion: "Quantify impact", LineNumber: "4"}},
		OriginalResumeMarkdown: "# Ada",
		UpdatedResumeMarkdown:  "# Ada\n\nGo engineer",
		JobDescription:         "Go engineer wanted",
		JobKeywords:            "Go, Postgres",
		SkillComparison:        []types.SkillMention{{Skill: "Go", ResumeMentions: 1, JobMentions: 2}},
	}
}

func TestResolve_FirstWriteCreates(t *testing.T) {
	store := newFakeStore()
	pipeline := &fakePipeline{result: testResult(0.67)}
	orch := NewOrchestrator(store, pipeline)

	imp, err := orch.Resolve(context.Background(), "resume_123", "job_456", false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if pipeline.calls != 1 {
		t.Errorf("Pipeline calls = %d, want 1", pipeline.calls)
	}
	if imp.ID == uuid.Nil {
		t.Error("Expected artifact ID to be set")
	}
	if !imp.CreatedAt.Equal(imp.UpdatedAt) {
		t.Errorf("First write: CreatedAt %v != UpdatedAt %v", imp.CreatedAt, imp.UpdatedAt)
	}
	if store.upserts != 1 {
		t.Errorf("Upserts = %d, want 1", store.upserts)
	}
}

func TestResolve_IdempotentFastPath(t *testing.T) {
	store := newFakeStore()
	pipeline := &fakePipeline{result: testResult(0.67)}
	orch := NewOrchestrator(store, pipeline)
	ctx := context.Background()

	first, err := orch.Resolve(ctx, "resume_123", "job_456", false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		again, err := orch.Resolve(ctx, "resume_123", "job_456", false)
		if err != nil {
			t.Fatalf("Repeat resolve %d failed: %v", i, err)
		}
		if !reflect.DeepEqual(again, first) {
			t.Errorf("Repeat resolve %d returned a different artifact", i)
		}
		if !again.UpdatedAt.Equal(first.UpdatedAt) {
			t.Errorf("Repeat resolve %d changed UpdatedAt", i)
		}
	}
	if pipeline.calls != 1 {
		t.Errorf("Pipeline calls = %d, want 1 (cache hits must not recompute)", pipeline.calls)
	}
}

func TestResolve_ForcedRecomputeAlwaysUpdates(t *testing.T) {
	store := newFakeStore()
	pipeline := &fakePipeline{result: testResult(0.67)}
	orch := NewOrchestrator(store, pipeline)
	ctx := context.Background()

	first, err := orch.Resolve(ctx, "resume_123", "job_456", false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	pipeline.result = testResult(0.70)
	second, err := orch.Resolve(ctx, "resume_123", "job_456", true)
	if err != nil {
		t.Fatalf("Forced resolve failed: %v", err)
	}

	if pipeline.calls != 2 {
		t.Errorf("Pipeline calls = %d, want 2", pipeline.calls)
	}
	if second.ID != first.ID {
		t.Errorf("Forced recompute created a new row: %s != %s", second.ID, first.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt changed: %v != %v", second.CreatedAt, first.CreatedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("UpdatedAt did not advance: %v <= %v", second.UpdatedAt, first.UpdatedAt)
	}
	if second.NewScore != 0.70 {
		t.Errorf("NewScore = %v, want 0.70", second.NewScore)
	}
}

func TestResolve_FailureLeavesCacheUntouched(t *testing.T) {
	store := newFakeStore()
	pipeline := &fakePipeline{result: testResult(0.67)}
	orch := NewOrchestrator(store, pipeline)
	ctx := context.Background()

	cached, err := orch.Resolve(ctx, "resume_123", "job_456", false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	pipeline.err = &ResumeParsingError{ResumeID: "resume_123"}
	_, err = orch.Resolve(ctx, "resume_123", "job_456", true)
	if err == nil {
		t.Fatal("Expected pipeline error")
	}
	var parseErr *ResumeParsingError
	if !errors.As(err, &parseErr) {
		t.Errorf("Error not passed through unchanged: %v", err)
	}
	if store.upserts != 1 {
		t.Errorf("Upserts = %d, want 1 (failure must not write)", store.upserts)
	}

	pipeline.err = nil
	after, err := orch.Resolve(ctx, "resume_123", "job_456", false)
	if err != nil {
		t.Fatalf("Resolve after failure failed: %v", err)
	}
	if !reflect.DeepEqual(after, cached) {
		t.Error("Cached artifact changed after pipeline failure")
	}
}

func TestResolve_KeyExactness(t *testing.T) {
	store := newFakeStore()
	pipeline := &fakePipeline{result: testResult(0.67)}
	orch := NewOrchestrator(store, pipeline)
	ctx := context.Background()

	if _, err := orch.Resolve(ctx, "resume_1", "job_1", false); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// Other pairs sharing one key component must miss the cache
	pipeline.err = errors.New("pipeline should not have been needed for a hit")
	if _, err := orch.Resolve(ctx, "resume_1", "job_2", false); err == nil {
		t.Error("Expected cache miss for (resume_1, job_2)")
	}
	if _, err := orch.Resolve(ctx, "resume_2", "job_1", false); err == nil {
		t.Error("Expected cache miss for (resume_2, job_1)")
	}

	// The exact pair still hits
	if _, err := orch.Resolve(ctx, "resume_1", "job_1", false); err != nil {
		t.Errorf("Exact pair should hit the cache: %v", err)
	}
}

func TestResolveStream_CacheHitYieldsSingleCompletedEvent(t *testing.T) {
	store := newFakeStore()
	pipeline := &fakePipeline{result: testResult(0.67)}
	orch := NewOrchestrator(store, pipeline)
	ctx := context.Background()

	if _, err := orch.Resolve(ctx, "resume_123", "job_456", false); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	var events []types.AnalysisEvent
	err := orch.ResolveStream(ctx, "resume_123", "job_456", false, func(e types.AnalysisEvent) error {
		events = append(events, e)
		return nil
	})
	if err != nil {
		t.Fatalf("ResolveStream failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Event count = %d, want 1", len(events))
	}
	if events[0].Status != types.StatusCompleted {
		t.Errorf("Status = %q, want completed", events[0].Status)
	}
	if events[0].Result == nil {
		t.Error("Terminal event missing artifact")
	}
	if pipeline.calls != 1 {
		t.Errorf("Pipeline calls = %d, want 1 (stream cache hit must not recompute)", pipeline.calls)
	}
}

func TestResolveStream_RelaysEventsThenPersistsThenCompletes(t *testing.T) {
	store := newFakeStore()
	score := 0.41
	pipeline := &fakePipeline{
		result: testResult(0.67),
		events: []types.AnalysisEvent{
			types.StageEvent(types.StatusStarting, "Starting analysis"),
			types.StageEvent(types.StatusParsing, "Parsing resume and job description"),
			types.StageEvent(types.StatusScoring, "Scoring resume against job keywords"),
			{Status: types.StatusScored, Score: &score},
			types.StageEvent(types.StatusImproving, "Rewriting resume"),
			{Status: types.StatusSuggestion, Suggestion: &types.SuggestionEvent{Index: 0, Text: "Quantify impact"}},
		},
	}
	orch := NewOrchestrator(store, pipeline)

	var statuses []string
	var persistedAtCompletion int
	err := orch.ResolveStream(context.Background(), "resume_123", "job_456", false, func(e types.AnalysisEvent) error {
		statuses = append(statuses, e.Status)
		if e.Status == types.StatusCompleted {
			persistedAtCompletion = store.upserts
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ResolveStream failed: %v", err)
	}

	want := []string{
		types.StatusStarting, types.StatusParsing, types.StatusScoring,
		types.StatusScored, types.StatusImproving, types.StatusSuggestion,
		types.StatusCompleted,
	}
	if !reflect.DeepEqual(statuses, want) {
		t.Errorf("Statuses = %v, want %v", statuses, want)
	}
	if persistedAtCompletion != 1 {
		t.Error("Terminal event delivered before the artifact was persisted")
	}
}

func TestResolveStream_BlockingEquivalence(t *testing.T) {
	pipeline := &fakePipeline{result: testResult(0.67)}

	blockingStore := newFakeStore()
	blocking, err := NewOrchestrator(blockingStore, pipeline).
		Resolve(context.Background(), "resume_123", "job_456", false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	streamStore := newFakeStore()
	var terminal *types.Improvement
	err = NewOrchestrator(streamStore, pipeline).
		ResolveStream(context.Background(), "resume_123", "job_456", false, func(e types.AnalysisEvent) error {
			if e.Status == types.StatusCompleted {
				terminal = e.Result
			}
			return nil
		})
	if err != nil {
		t.Fatalf("ResolveStream failed: %v", err)
	}
	if terminal == nil {
		t.Fatal("Stream ended without a terminal artifact")
	}
	if !reflect.DeepEqual(terminal.AnalysisResult, blocking.AnalysisResult) {
		t.Error("Streaming and blocking paths produced different payloads")
	}
}

func TestResolveStream_PipelineFailureEndsWithoutCompleted(t *testing.T) {
	store := newFakeStore()
	pipeline := &fakePipeline{
		err:    &JobNotFoundError{JobID: "job_456"},
		events: []types.AnalysisEvent{types.StageEvent(types.StatusStarting, "Starting analysis")},
	}
	orch := NewOrchestrator(store, pipeline)

	var statuses []string
	err := orch.ResolveStream(context.Background(), "resume_123", "job_456", false, func(e types.AnalysisEvent) error {
		statuses = append(statuses, e.Status)
		return nil
	})
	if err == nil {
		t.Fatal("Expected pipeline error")
	}
	var notFound *JobNotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Error not passed through unchanged: %v", err)
	}
	for _, s := range statuses {
		if s == types.StatusCompleted {
			t.Error("Failed stream must not emit a completed event")
		}
	}
	if store.upserts != 0 {
		t.Errorf("Upserts = %d, want 0", store.upserts)
	}
}

func TestResolveStream_YieldErrorAbortsWithoutWrite(t *testing.T) {
	store := newFakeStore()
	pipeline := &fakePipeline{
		result: testResult(0.67),
		events: []types.AnalysisEvent{
			types.StageEvent(types.StatusStarting, "Starting analysis"),
			types.StageEvent(types.StatusParsing, "Parsing resume and job description"),
		},
	}
	orch := NewOrchestrator(store, pipeline)

	cancel := errors.New("consumer went away")
	err := orch.ResolveStream(context.Background(), "resume_123", "job_456", false, func(e types.AnalysisEvent) error {
		return cancel
	})
	if !errors.Is(err, cancel) {
		t.Errorf("Expected cancellation error, got %v", err)
	}
	if store.upserts != 0 {
		t.Errorf("Upserts = %d, want 0 (cancelled stream must not write)", store.upserts)
	}
}

func TestResolve_StoreLookupErrorPropagates(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("connection refused")
	orch := NewOrchestrator(store, &fakePipeline{result: testResult(0.67)})

	if _, err := orch.Resolve(context.Background(), "resume_123", "job_456", false); err == nil {
		t.Fatal("Expected store error")
	}
}
