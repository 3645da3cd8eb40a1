// Package analysis implements the resume/job compatibility pipeline and the
// cache-aware orchestrator that mediates between callers and the artifact store.
package analysis

import (
	"context"
	"fmt"

	"github.com/marcusft/resume-matcher/internal/types"
)

// ProgressCallback receives progress events during an analysis run. Returning
// a non-nil error aborts the run; the pipeline propagates it unchanged.
type ProgressCallback func(types.AnalysisEvent) error

// ArtifactStore persists analysis artifacts keyed by (resume, job) pair.
type ArtifactStore interface {
	// GetImprovement returns the cached artifact for a pair, or (nil, nil)
	// when no artifact exists.
	GetImprovement(ctx context.Context, resumeID, jobID string) (*types.Improvement, error)
	// UpsertImprovement writes the artifact for its pair, replacing the
	// payload of an existing row while preserving created_at. The stored
	// ID and timestamps are written back into the passed Improvement.
	UpsertImprovement(ctx context.Context, imp *types.Improvement) error
}

// Pipeline runs one full analysis for a (resume, job) pair. Progress events
// are reported through the callback when it is non-nil; a non-nil error from
// the callback aborts the run and is returned unchanged.
type Pipeline interface {
	Run(ctx context.Context, resumeID, jobID string, progress ProgressCallback) (*types.AnalysisResult, error)
}

// Orchestrator mediates between callers, the analysis pipeline, and the
// artifact store. It memoizes pipeline results by pair key: at most one
// artifact exists per (resume, job) pair, and a cached artifact short-circuits
// recomputation unless the caller forces it.
//
// Concurrent invocations for the same pair are not serialized. Two
// simultaneous forced recomputes may both run the pipeline and both write;
// the last upsert wins.
type Orchestrator struct {
	store    ArtifactStore
	pipeline Pipeline
}

// NewOrchestrator creates an Orchestrator with the given collaborators
func NewOrchestrator(store ArtifactStore, pipeline Pipeline) *Orchestrator {
	return &Orchestrator{store: store, pipeline: pipeline}
}

// Resolve returns the analysis artifact for a (resume, job) pair. With force
// false a cached artifact is returned as-is without invoking the pipeline.
// On a cache miss, or when force is true, the pipeline runs to completion and
// the result is persisted by pair key before being returned. Pipeline
// failures propagate unchanged and leave the store untouched.
func (o *Orchestrator) Resolve(ctx context.Context, resumeID, jobID string, force bool) (*types.Improvement, error) {
	if !force {
		cached, err := o.store.GetImprovement(ctx, resumeID, jobID)
		if err != nil {
			return nil, fmt.Errorf("failed to check artifact cache: %w", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	result, err := o.pipeline.Run(ctx, resumeID, jobID, nil)
	if err != nil {
		return nil, err
	}

	imp := &types.Improvement{
		ResumeID:       resumeID,
		JobID:          jobID,
		AnalysisResult: *result,
	}
	if err := o.store.UpsertImprovement(ctx, imp); err != nil {
		return nil, fmt.Errorf("failed to persist artifact: %w", err)
	}
	return imp, nil
}

// ResolveStream is the streaming variant of Resolve. Progress events are
// delivered through yield in pipeline order; the terminal event always has
// status completed and carries the persisted artifact. A cache hit yields
// exactly one event, the terminal one. On pipeline failure the stream ends
// without a terminal event and nothing is written. A non-nil error from
// yield is treated as consumer cancellation: the run aborts with that error
// and nothing is written.
func (o *Orchestrator) ResolveStream(ctx context.Context, resumeID, jobID string, force bool, yield func(types.AnalysisEvent) error) error {
	if !force {
		cached, err := o.store.GetImprovement(ctx, resumeID, jobID)
		if err != nil {
			return fmt.Errorf("failed to check artifact cache: %w", err)
		}
		if cached != nil {
			return yield(types.CompletedEvent(cached))
		}
	}

	result, err := o.pipeline.Run(ctx, resumeID, jobID, ProgressCallback(yield))
	if err != nil {
		return err
	}

	imp := &types.Improvement{
		ResumeID:       resumeID,
		JobID:          jobID,
		AnalysisResult: *result,
	}
	if err := o.store.UpsertImprovement(ctx, imp); err != nil {
		return fmt.Errorf("failed to persist artifact: %w", err)
	}

	// The terminal event is emitted strictly after persistence so consumers
	// observing it can immediately read the artifact back.
	return yield(types.CompletedEvent(imp))
}
