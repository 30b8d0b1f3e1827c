package stage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

func TestRunner_SuccessSetsAssessmentAndStatus(t *testing.T) {
	r := &Runner{Timeout: time.Second}
	rec := &article.Record{ID: "a1"}

	r.Run(context.Background(), "novelty", rec, func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
		return &article.AssessmentBlock{NoveltyLevel: article.NoveltyRevolutionary}, article.StatusSuccess, nil
	})

	assert.Equal(t, article.StatusSuccess, rec.Status("novelty"))
	assert.Equal(t, article.NoveltyRevolutionary, rec.Assessment("novelty").NoveltyLevel)
}

func TestRunner_ErrorAppliesConservativeDefault(t *testing.T) {
	r := &Runner{Timeout: time.Second}
	rec := &article.Record{ID: "a1"}

	r.Run(context.Background(), "adjudicator_prime", rec, func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
		return nil, "", errors.New("boom")
	})

	assert.Equal(t, article.StatusFailedLLMCall, rec.Status("adjudicator_prime"))
	assessment := rec.Assessment("adjudicator_prime")
	assert.Equal(t, 30, assessment.OverallValueExcitementScore)
}

func TestRunner_PanicDoesNotPropagate(t *testing.T) {
	r := &Runner{Timeout: time.Second}
	rec := &article.Record{ID: "a1"}

	assert.NotPanics(t, func() {
		r.Run(context.Background(), "hype_detector", rec, func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
			panic("unexpected")
		})
	})
	assert.Equal(t, article.StatusFailedLLMCall, rec.Status("hype_detector"))
}

func TestRunner_TimeoutIsTreatedAsFailure(t *testing.T) {
	r := &Runner{Timeout: 10 * time.Millisecond}
	rec := &article.Record{ID: "a1"}

	r.Run(context.Background(), "impact_scope", rec, func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
		select {
		case <-time.After(100 * time.Millisecond):
		case <-ctx.Done():
		}
		return nil, article.StatusSuccess, nil
	})

	assert.Equal(t, article.StatusFailedLLMCall, rec.Status("impact_scope"))
}
