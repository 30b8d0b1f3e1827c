// Package pipeline implements the Pipeline Orchestrator (C6): the ordered
// seventeen-stage sequence a record runs through, the three gate
// predicates that can halt a record early, and the worker pool that runs
// many records concurrently while keeping each record's own stages
// strictly sequential.
//
// The orchestrator adapts the teacher's worker-pool shape (a fixed set of
// goroutines draining an ID queue, run here as an errgroup, with an
// RWMutex-guarded health snapshot) but replaces its
// stop-on-first-stage-failure semantics:
// every non-gate stage runs through the Stage Runner, which absorbs a
// failure into a conservative default assessment rather than aborting
// the record, so one bad LLM call never prevents the rest of the
// pipeline from running.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Gyro1978/Dacoola-sub001/pkg/analyzer"
	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
	"github.com/Gyro1978/Dacoola-sub001/pkg/assembler"
	"github.com/Gyro1978/Dacoola-sub001/pkg/config"
	"github.com/Gyro1978/Dacoola-sub001/pkg/dedup"
	"github.com/Gyro1978/Dacoola-sub001/pkg/media"
	"github.com/Gyro1978/Dacoola-sub001/pkg/outline"
	"github.com/Gyro1978/Dacoola-sub001/pkg/publisher"
	"github.com/Gyro1978/Dacoola-sub001/pkg/recordstore"
	"github.com/Gyro1978/Dacoola-sub001/pkg/social"
	"github.com/Gyro1978/Dacoola-sub001/pkg/stage"
	"github.com/Gyro1978/Dacoola-sub001/pkg/tts"
)

// terminal statuses a record can land on when a gate stage halts the rest
// of the sequence, recorded as the record's own overall status so callers
// (and the next run) can see why processing stopped early.
const (
	TerminalDuplicate           = "TERMINAL_DUPLICATE"
	TerminalRejectedBoring      = "TERMINAL_REJECTED_BORING"
	TerminalRejectedAdjudicator = "TERMINAL_REJECTED_ADJUDICATOR"
	TerminalCompleted           = "TERMINAL_COMPLETED"
	TerminalBudgetExceeded      = "TERMINAL_BUDGET_EXCEEDED"
)

// Deps bundles every collaborator the orchestrator drives a record
// through. TTS and social posting are optional: a nil TTS or Social means
// that stage is skipped entirely rather than run and failed.
type Deps struct {
	Gateway    analyzer.Gateway
	Search     analyzer.SearchProvider
	Dedup      *dedup.Store
	Publisher  *publisher.Publisher
	TTS        *tts.Manager
	Social     social.Poster
	Store      *recordstore.Store
	MediaOpts  media.Options
	Config     config.PipelineConfig
	SiteBaseURL string
	Logger     *slog.Logger
}

// Orchestrator runs the full stage sequence for individual records.
type Orchestrator struct {
	deps   Deps
	runner *stage.Runner
	logger *slog.Logger

	publishMu sync.Mutex // serializes Publish calls across pool workers
}

// New constructs an Orchestrator from deps. PerStageTimeout of zero
// defaults to 60s so a misconfigured pipeline still has a bound.
func New(deps Deps) *Orchestrator {
	timeout := deps.Config.PerStageTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		deps:   deps,
		runner: &stage.Runner{Timeout: timeout, Logger: logger},
		logger: logger,
	}
}

// ProcessRecord runs rec through the full stage sequence, saving rec to
// the record store after every stage as a crash-resilience checkpoint.
// It returns the terminal status the record landed on; it never returns
// an error itself, since every stage failure is already absorbed by the
// Stage Runner and recorded on rec.
func (o *Orchestrator) ProcessRecord(ctx context.Context, rec *article.Record) (terminal string) {
	budget := o.deps.Config.PerRecordBudget
	if budget <= 0 {
		budget = 10 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	defer func() {
		if rec.Extension == nil {
			rec.Extension = make(map[string]any)
		}
		rec.Extension["terminal_state"] = terminal
		_ = o.deps.Store.Save(rec)
	}()

	checkpoint := func(stageName string) bool {
		if err := o.deps.Store.Save(rec); err != nil {
			o.logger.Error("failed to checkpoint record", "article_id", rec.ID, "stage", stageName, "error", err)
		}
		if ctx.Err() != nil {
			o.logger.Warn("record exceeded per-record budget", "article_id", rec.ID, "stage", stageName)
			return false
		}
		return true
	}

	if _, halt := o.runDedup(ctx, rec); halt {
		checkpoint("dedup")
		return TerminalDuplicate
	}
	if !checkpoint("dedup") {
		return TerminalBudgetExceeded
	}

	o.runner.Run(ctx, "editorial_prime", rec, analyzer.EditorialPrime(o.deps.Gateway))
	if !checkpoint("editorial_prime") {
		return TerminalBudgetExceeded
	}
	if analyzer.IsGateRejected(rec) {
		return TerminalRejectedBoring
	}

	for _, s := range []struct {
		name string
		fn   stage.Func
	}{
		{"novelty", analyzer.Novelty(o.deps.Gateway)},
		{"impact_scope", analyzer.ImpactScope(o.deps.Gateway)},
		{"hype_detector", analyzer.HypeDetector(o.deps.Gateway)},
		{"sophistication_stylist", analyzer.SophisticationStylist(o.deps.Gateway)},
		{"corroboration_cognito", analyzer.Corroboration(o.deps.Gateway, o.deps.Search)},
	} {
		o.runner.Run(ctx, s.name, rec, s.fn)
		if !checkpoint(s.name) {
			return TerminalBudgetExceeded
		}
	}

	o.runner.Run(ctx, "adjudicator_prime", rec, analyzer.Adjudicate(o.deps.Gateway))
	if !checkpoint("adjudicator_prime") {
		return TerminalBudgetExceeded
	}
	if analyzer.IsAdjudicatorRejected(rec) {
		return TerminalRejectedAdjudicator
	}

	for _, s := range []struct {
		name string
		fn   stage.Func
	}{
		{"keyword_intelligence", analyzer.KeywordIntelligence(o.deps.Gateway)},
		{"title", outline.Title(o.deps.Gateway)},
		{"description", outline.Description(o.deps.Gateway)},
		{"outline", outline.GenerateOutline(o.deps.Gateway)},
		{"section_writer", outline.WriteSections(o.deps.Gateway)},
	} {
		o.runner.Run(ctx, s.name, rec, s.fn)
		if !checkpoint(s.name) {
			return TerminalBudgetExceeded
		}
	}

	o.runContentAssembly(rec)
	if !checkpoint("content_assembler") {
		return TerminalBudgetExceeded
	}

	o.runMediaIntegration(rec)
	if !checkpoint("image_integration") {
		return TerminalBudgetExceeded
	}

	if err := o.runPublish(rec); err != nil {
		o.logger.Error("publish failed", "article_id", rec.ID, "error", err)
		rec.SetStatus("publish", article.StatusFailedLLMCall)
	} else {
		rec.SetStatus("publish", article.StatusSuccess)
	}
	if !checkpoint("publish") {
		return TerminalBudgetExceeded
	}

	o.runTTS(ctx, rec)
	if !checkpoint("tts") {
		return TerminalBudgetExceeded
	}

	o.runSocial(ctx, rec)
	checkpoint("social")

	return TerminalCompleted
}

func (o *Orchestrator) runDedup(ctx context.Context, rec *article.Record) (dedup.Verdict, bool) {
	verdict, err := o.deps.Dedup.Classify(ctx, rec.ID, rec.InitialTitle, rec.Summary, rec.RawScrapedText)
	if err != nil {
		o.logger.Error("dedup classification failed, treating as unique", "article_id", rec.ID, "error", err)
		rec.SetStatus("dedup", article.StatusFailedLLMCall)
		return dedup.Verdict{}, false
	}
	rec.IsDuplicate = verdict.IsDuplicate
	rec.HighestSimilarArticleID = verdict.HighestSimilarID
	rec.SimilarityScoreHighest = verdict.HighestSimilarity
	rec.NearDuplicatesFound = verdict.NearDuplicatesFound
	rec.SetStatus("dedup", article.StatusSuccess)
	return verdict, verdict.IsDuplicate
}

func (o *Orchestrator) runContentAssembly(rec *article.Record) {
	bodies, _ := rec.Extension["section_bodies"].(map[string]string)
	result := assembler.Assemble(rec.ArticleOutline, bodies)
	rec.AssembledArticleBodyMD = result.Body
	rec.SetStatus("content_assembler", result.Status)
}

func (o *Orchestrator) runMediaIntegration(rec *article.Record) {
	body, status := media.Integrate(rec.AssembledArticleBodyMD, rec.MediaCandidatesForBody, o.deps.MediaOpts)
	rec.GeneratedArticleBodyFinal = body
	rec.SetStatus("image_integration", article.StageStatus(status))
}

func (o *Orchestrator) runPublish(rec *article.Record) error {
	if o.deps.Publisher == nil {
		return fmt.Errorf("no publisher configured")
	}
	o.publishMu.Lock()
	defer o.publishMu.Unlock()
	_, err := o.deps.Publisher.Publish(rec)
	return err
}

func (o *Orchestrator) runTTS(ctx context.Context, rec *article.Record) {
	if o.deps.TTS == nil {
		return
	}
	result, err := o.deps.TTS.Generate(ctx, rec.ID, rec.GeneratedArticleBodyFinal)
	if err != nil {
		o.logger.Error("tts generation failed", "article_id", rec.ID, "error", err)
	}
	rec.TTSTaskState = result.State
	rec.AudioURL = result.AudioRelPath
	rec.SetStatus("tts", article.StatusSuccess)
}

func (o *Orchestrator) runSocial(ctx context.Context, rec *article.Record) {
	if o.deps.Social == nil {
		return
	}
	canonicalURL := publisher.CanonicalURL(o.deps.SiteBaseURL, rec.Slug)
	ok, err := o.deps.Social.PostArticle(ctx, rec.FinalPageH1, canonicalURL, rec.SelectedImageURL)
	if err != nil {
		o.logger.Error("social post failed", "article_id", rec.ID, "error", err)
		rec.SetStatus("social", article.StatusFailedLLMCall)
		return
	}
	if ok {
		rec.SetStatus("social", article.StatusSuccess)
	}
}
