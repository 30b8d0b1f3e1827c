// Package article defines the editorial record that flows through every
// pipeline stage, along with the per-stage assessment blocks attached to it.
package article

import "time"

// StageStatus is the outcome recorded against a named pipeline stage.
type StageStatus string

const (
	StatusPending              StageStatus = "PENDING"
	StatusSuccess              StageStatus = "SUCCESS"
	StatusSuccessEmptyOutline  StageStatus = "SUCCESS_EMPTY_OUTLINE"
	StatusWarningPartial       StageStatus = "WARNING_PARTIAL_ASSEMBLY"
	StatusWarningAllFailed     StageStatus = "WARNING_ALL_BODY_SECTIONS_FAILED"
	StatusFailedLLMCall        StageStatus = "FAILED_LLM_CALL"
	StatusFailedMissingOutline StageStatus = "FAILED_MISSING_OUTLINE"
	StatusTerminalDuplicate    StageStatus = "TERMINAL_DUPLICATE"
	StatusTerminalBoring       StageStatus = "TERMINAL_REJECTED_BORING"
	StatusTerminalAdjudicated  StageStatus = "TERMINAL_REJECTED_ADJUDICATOR"
)

// IsTerminal reports whether a status should stop the pipeline from
// advancing the record to any further stage.
func (s StageStatus) IsTerminal() bool {
	switch s {
	case StatusTerminalDuplicate, StatusTerminalBoring, StatusTerminalAdjudicated:
		return true
	default:
		return false
	}
}

// IsFailure reports whether a status represents a stage that did not
// complete successfully (but did not halt the pipeline either).
func (s StageStatus) IsFailure() bool {
	switch s {
	case StatusFailedLLMCall, StatusFailedMissingOutline, StatusWarningAllFailed:
		return true
	default:
		return false
	}
}

// TTSTaskState is the state machine position of an article's audio
// generation task.
type TTSTaskState string

const (
	TTSIdle       TTSTaskState = "IDLE"
	TTSCreated    TTSTaskState = "CREATED"
	TTSPolling    TTSTaskState = "POLLING"
	TTSFetching   TTSTaskState = "FETCHING"
	TTSDownload   TTSTaskState = "DOWNLOADING"
	TTSDone       TTSTaskState = "DONE"
	TTSFailed     TTSTaskState = "FAILED"
	TTSTimedOut   TTSTaskState = "TIMED_OUT"
	TTSNotStarted TTSTaskState = ""
)

// MediaCandidate is one image offered to the Media Placeholder Integrator.
type MediaCandidate struct {
	URL         string `json:"url"`
	AltText     string `json:"alt_text,omitempty"`
	Caption     string `json:"caption,omitempty"`
	SourceLabel string `json:"source_label,omitempty"`
}

// Record is the single evolving document for one piece of content as it
// moves through the editorial pipeline. Every stage reads and appends to
// the same Record; none of them own exclusive pieces of it.
type Record struct {
	ID                 string `json:"id"`
	OriginalSourceURL  string `json:"original_source_url"`
	InitialTitle       string `json:"initial_title"`
	RawScrapedText     string `json:"raw_scraped_text"`
	RetrievedAtUTC     time.Time `json:"retrieved_at_utc"`
	PublishedISOUTC    string `json:"published_iso_utc,omitempty"`
	ModifiedISOUTC     string `json:"modified_iso_utc,omitempty"`

	Summary          string   `json:"summary,omitempty"`
	ProcessedSummary string   `json:"processed_summary,omitempty"`
	PrimaryTopic     string   `json:"primary_topic,omitempty"`
	CandidateKeywords []string `json:"candidate_keywords,omitempty"`
	FinalKeywords     []string `json:"final_keywords,omitempty"`

	Assessments map[string]*AssessmentBlock `json:"assessments,omitempty"`
	StageStatus map[string]StageStatus      `json:"stage_status,omitempty"`

	ArticleOutline             []string `json:"article_outline,omitempty"`
	AssembledArticleBodyMD     string   `json:"assembled_article_body_md,omitempty"`
	GeneratedArticleBodyFinal  string   `json:"generated_article_body_md_final,omitempty"`

	Slug                   string `json:"slug,omitempty"`
	FinalPageH1            string `json:"final_page_h1,omitempty"`
	GeneratedTitleTag      string `json:"generated_title_tag,omitempty"`
	GeneratedMetaDesc      string `json:"generated_meta_description,omitempty"`
	GeneratedJSONLD        map[string]any `json:"generated_json_ld_object,omitempty"`

	SelectedImageURL      string            `json:"selected_image_url,omitempty"`
	MediaCandidatesForBody []MediaCandidate `json:"media_candidates_for_body,omitempty"`

	AudioURL     string       `json:"audio_url,omitempty"`
	TTSTaskState TTSTaskState `json:"tts_task_state,omitempty"`

	IsDuplicate             bool     `json:"is_duplicate"`
	HighestSimilarArticleID string   `json:"highest_similar_article_id,omitempty"`
	SimilarityScoreHighest  float64  `json:"similarity_score_to_highest,omitempty"`
	NearDuplicatesFound     []string `json:"near_duplicates_found,omitempty"`

	// Extension carries free-form fields not modeled explicitly above,
	// so unknown keys round-trip through load/save without being dropped.
	Extension map[string]any `json:"extension,omitempty"`
}

// SetStatus records the outcome of a named stage.
func (r *Record) SetStatus(stage string, status StageStatus) {
	if r.StageStatus == nil {
		r.StageStatus = make(map[string]StageStatus)
	}
	r.StageStatus[stage] = status
}

// Status returns the recorded status of a stage, or StatusPending if the
// stage has not run yet.
func (r *Record) Status(stage string) StageStatus {
	if r.StageStatus == nil {
		return StatusPending
	}
	if s, ok := r.StageStatus[stage]; ok {
		return s
	}
	return StatusPending
}

// SetAssessment attaches a stage's assessment block, keyed by stage name.
func (r *Record) SetAssessment(stage string, block *AssessmentBlock) {
	if r.Assessments == nil {
		r.Assessments = make(map[string]*AssessmentBlock)
	}
	r.Assessments[stage] = block
}

// Assessment returns a stage's assessment block, or nil if absent.
func (r *Record) Assessment(stage string) *AssessmentBlock {
	if r.Assessments == nil {
		return nil
	}
	return r.Assessments[stage]
}

// CanonicalKeyword returns the primary keyword per the fallback chain:
// final_keywords[0], then primary_topic, then initial_title.
func (r *Record) CanonicalKeyword() string {
	if len(r.FinalKeywords) > 0 && r.FinalKeywords[0] != "" {
		return r.FinalKeywords[0]
	}
	if r.PrimaryTopic != "" {
		return r.PrimaryTopic
	}
	return r.InitialTitle
}
