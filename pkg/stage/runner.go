// Package stage implements the Stage Runner: the boundary that ensures no
// analyzer stage's panic or error ever escapes to the orchestrator.
package stage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

// Func is one pipeline stage's executable body. It returns the assessment
// block to attach (may be nil for stages that don't produce one, such as
// the content assembler) and the status to record.
type Func func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error)

// Runner executes a Func under a per-stage timeout and guarantees a
// result: a failing Func (by error or panic) is converted into a
// conservative default assessment block plus a FAILED_LLM_CALL status
// rather than propagating, per spec §4.5/§7.
type Runner struct {
	Timeout time.Duration
	Logger  *slog.Logger
}

// Run executes fn for the named stage against rec, writing the resulting
// assessment and status onto rec itself, and never returning an error:
// any failure is absorbed into rec's own state so the orchestrator can
// always proceed to its next decision.
func (r *Runner) Run(ctx context.Context, name string, rec *article.Record, fn Func) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	block, status, err := r.runSafely(ctx, rec, fn)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Error("stage failed, applying conservative default", "stage", name, "article_id", rec.ID, "error", err)
		}
		rec.SetAssessment(name, article.DefaultAssessment(name))
		rec.SetStatus(name, article.StatusFailedLLMCall)
		return
	}
	if block != nil {
		rec.SetAssessment(name, block)
	}
	rec.SetStatus(name, status)
}

func (r *Runner) runSafely(ctx context.Context, rec *article.Record, fn Func) (block *article.AssessmentBlock, status article.StageStatus, err error) {
	defer func() {
		if rec2 := recover(); rec2 != nil {
			err = fmt.Errorf("stage panicked: %v", rec2)
		}
	}()
	block, status, err = fn(ctx, rec)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return block, status, err
}
