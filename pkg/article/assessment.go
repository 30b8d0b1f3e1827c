package article

// AssessmentBlock is the structured output of one analyzer stage. Only the
// fields relevant to a given stage are populated; the rest stay at their
// zero value. Field names and JSON tags mirror the predecessor agents'
// fixed output schemas key-for-key: the keys are contract, not an
// implementation detail this package is free to rename.
type AssessmentBlock struct {
	// Novelty
	NoveltyLevel         string   `json:"novelty_level,omitempty"`
	NoveltyConfidence    float64  `json:"novelty_confidence,omitempty"`
	BreakthroughEvidence []string `json:"breakthrough_evidence,omitempty"`

	// Impact/scope
	EstimatedImpactScale              string             `json:"estimated_impact_scale,omitempty"`
	PrimaryAffectedSectors            []string           `json:"primary_affected_sectors,omitempty"`
	SecondaryAffectedSectorsOrDomains []string           `json:"secondary_affected_sectors_or_domains,omitempty"`
	TargetAudienceRelevance           map[string]float64 `json:"target_audience_relevance,omitempty"`
	TimeframeForSignificantImpact     string             `json:"timeframe_for_significant_impact,omitempty"`
	ImpactMagnitudeQualifier          string             `json:"impact_magnitude_qualifier,omitempty"`
	ImpactConfidenceScore             float64            `json:"impact_confidence_score,omitempty"`
	ImpactRationaleSummary            string             `json:"impact_rationale_summary,omitempty"`

	// Hype detector
	HypeScore                     float64  `json:"hype_score,omitempty"`
	SubstantiationLevel           string   `json:"substantiation_level,omitempty"`
	IdentifiedHypePhrasesOrClaims []string `json:"identified_hype_phrases_or_claims,omitempty"`
	EvidenceGapsSummary           string   `json:"evidence_gaps_summary,omitempty"`
	OverallContentToneEvaluation  string   `json:"overall_content_tone_evaluation,omitempty"`
	RecommendationForPublication  string   `json:"recommendation_for_publication,omitempty"`

	// Sophistication/style
	TechnicalDepthLevel            string  `json:"technical_depth_level,omitempty"`
	LanguageSophistication          string  `json:"language_sophistication,omitempty"`
	ToneSuitabilityForExperts       string  `json:"tone_suitability_for_experts,omitempty"`
	ClarityOfExplanationScore       float64 `json:"clarity_of_explanation_score,omitempty"`
	JargonUsageEvaluation           string  `json:"jargon_usage_evaluation,omitempty"`
	KeyObservationsOnStyle          string  `json:"key_observations_on_style,omitempty"`
	OverallStylisticRecommendation  string  `json:"overall_stylistic_recommendation,omitempty"`

	// Corroboration
	CorroborationLevel           string   `json:"corroboration_level,omitempty"`
	CorroborationConfidenceScore float64  `json:"corroboration_confidence_score,omitempty"`
	SupportingSourceDomainsTier1 []string `json:"supporting_source_domains_tier1,omitempty"`
	SupportingSourceDomainsTier2 []string `json:"supporting_source_domains_tier2,omitempty"`
	ConflictingInformationFlag   bool     `json:"conflicting_information_flag,omitempty"`
	CorroborationSummaryNotes    string   `json:"corroboration_summary_notes,omitempty"`

	// Editorial prime (gate)
	EditorialVerdict string `json:"editorial_verdict,omitempty"` // "Interesting" | "Boring"
	EditorialReason  string `json:"editorial_reason,omitempty"`

	// Adjudicator
	FinalPublicationDecision    string   `json:"final_publication_decision,omitempty"`
	OverallValueExcitementScore int      `json:"overall_value_excitement_score,omitempty"`
	DecisionRationaleSummary    string   `json:"decision_rationale_summary,omitempty"`
	KeyStrengths                []string `json:"key_strengths,omitempty"`
	KeyWeaknessesOrConcerns     []string `json:"key_weaknesses_or_concerns,omitempty"`
	SuggestedNextStepsForEditor []string `json:"suggested_next_steps_for_human_editor,omitempty"`

	// Keyword intelligence
	AnalyzedPrimaryKeyword   string   `json:"analyzed_primary_keyword,omitempty"`
	SecondaryLSIKeywords     []string `json:"secondary_lsi_keywords,omitempty"`
	LongTailQuestionKeywords []string `json:"long_tail_question_keywords,omitempty"`
	EntityKeywords           []string `json:"entity_keywords,omitempty"`
}

// Publication decision values emitted by the adjudicator stage. The
// parenthetical qualifiers are part of the contract value, not
// decoration: downstream consumers match on the full string.
const (
	DecisionPublishImmediately = "Publish Immediately"
	DecisionPublishMinorEdits  = "Publish with Minor Edits (Automated)"
	DecisionFlagForReview      = "Flag for Human Review (Specific Concerns)"
	DecisionReject             = "Reject (Clear Reasons)"
)

// Editorial verdict values emitted by the editorial-prime gate.
const (
	EditorialInteresting = "Interesting"
	EditorialBoring      = "Boring"
)

// Novelty levels.
const (
	NoveltyRevolutionary = "Revolutionary"
	NoveltySignificant   = "Significant"
	NoveltyIncremental   = "Incremental"
	NoveltyNone          = "None"
)

// Impact scale, timeframe, and magnitude enums.
const (
	ImpactGlobalCrossIndustry   = "Global & Cross-Industry"
	ImpactMultipleKeyIndustries = "Multiple Key Industries"
	ImpactSpecificTechSector    = "Specific Tech Sector"
	ImpactNicheApplication      = "Niche Application"
	ImpactLocalizedLimited      = "Localized/Limited"
	ImpactUncertainTooEarly     = "Uncertain/Too Early"

	TimeframeImmediate   = "Immediate (0-6 months)"
	TimeframeShortTerm   = "Short-term (6-18 months)"
	TimeframeMediumTerm  = "Medium-term (1.5-3 years)"
	TimeframeLongTerm    = "Long-term (3+ years)"
	TimeframeSpeculative = "Speculative"

	ImpactMagnitudeTransformative = "Transformative"
	ImpactMagnitudeSubstantial    = "Substantial"
	ImpactMagnitudeModerate       = "Moderate"
	ImpactMagnitudeMinor          = "Minor"
	ImpactMagnitudeNegligible     = "Negligible"
)

// Hype detector enums.
const (
	SubstantiationWellSubstantiated      = "Well-Substantiated"
	SubstantiationPartiallySubstantiated = "Partially Substantiated"
	SubstantiationPoorlySubstantiated    = "Poorly Substantiated"
	SubstantiationHighlyUnsubstantiated  = "Highly Unsubstantiated"

	ToneObjectiveFactual        = "Objective & Factual"
	ToneBalancedButOptimistic   = "Balanced but Optimistic"
	TonePromotionalEnthusiastic = "Promotional & Enthusiastic"
	ToneExaggeratedSpeculative  = "Exaggerated & Speculative"

	HypeRecommendationProceedAsIs        = "Proceed As Is"
	HypeRecommendationProceedWithCaution = "Proceed with Caution (verify claims)"
	HypeRecommendationNeedsHeavyEditing  = "High Hype - Needs Heavy Editing/Fact-Checking"
	HypeRecommendationReject             = "Reject (Primarily Hype/PR)"
)

// Sophistication/style enums.
const (
	TechnicalDepthSurfaceLevel       = "Surface-Level"
	TechnicalDepthModeratelyInDepth  = "Moderately In-Depth"
	TechnicalDepthDeeplyTechnical    = "Deeply Technical"
	TechnicalDepthOverlySimplistic   = "Overly Simplistic"
	TechnicalDepthExcessivelyJargony = "Excessively Jargony (Unexplained)"

	LanguageSophisticationHigh        = "High (Precise & Nuanced)"
	LanguageSophisticationAppropriate = "Appropriate (Clear & Professional)"
	LanguageSophisticationBasic       = "Basic (Lacks Nuance)"
	LanguageSophisticationColloquial  = "Colloquial/Informal"

	ToneSuitabilityHighlySuitable    = "Highly Suitable"
	ToneSuitabilityGenerallySuitable = "Generally Suitable"
	ToneSuitabilityBorderline        = "Borderline (May need adjustments)"
	ToneSuitabilityNotSuitable       = "Not Suitable (Too basic/promotional)"

	JargonWellExplained         = "Well-Explained"
	JargonAcceptableWithContext = "Acceptable with Context"
	JargonExcessiveUnexplained  = "Excessive & Unexplained"

	StyleRecommendationPublishAsIs        = "Publish As Is (Style)"
	StyleRecommendationMinorEdits         = "Minor Edits for Clarity/Tone"
	StyleRecommendationSubstantialRewrite = "Substantial Rewrite for Depth/Sophistication"
	StyleRecommendationReject             = "Reject (Style Unsuitable)"
)

// Corroboration enums.
const (
	CorroborationStronglyCorroborated   = "Strongly Corroborated"
	CorroborationModeratelyCorroborated = "Moderately Corroborated"
	CorroborationWeaklyCorroborated     = "Weakly Corroborated"
	CorroborationIsolatedClaim          = "Isolated Claim/Uncorroborated"
	CorroborationUnableToDetermine      = "Unable to Determine"
)

// DefaultAssessment returns the conservative fallback block substituted
// when an upstream stage failed to produce a usable result, pinned from
// the predecessor's fallback dictionaries so downstream consumers (in
// particular the adjudicator) never observe a nil assessment.
func DefaultAssessment(stage string) *AssessmentBlock {
	switch stage {
	case "novelty":
		return &AssessmentBlock{
			NoveltyLevel:         NoveltyNone,
			NoveltyConfidence:    0.0,
			BreakthroughEvidence: []string{},
		}
	case "impact_scope":
		return &AssessmentBlock{
			EstimatedImpactScale:          ImpactUncertainTooEarly,
			ImpactMagnitudeQualifier:      ImpactMagnitudeNegligible,
			ImpactConfidenceScore:         0.0,
			TimeframeForSignificantImpact: TimeframeSpeculative,
			ImpactRationaleSummary:        "Upstream impact assessment missing.",
		}
	case "hype_detector":
		return &AssessmentBlock{
			HypeScore:                    0.5,
			SubstantiationLevel:          SubstantiationPartiallySubstantiated,
			EvidenceGapsSummary:          "Upstream hype assessment missing.",
			OverallContentToneEvaluation: "Neutral",
			RecommendationForPublication: HypeRecommendationProceedWithCaution,
		}
	case "sophistication_stylist":
		return &AssessmentBlock{
			TechnicalDepthLevel:            "Uncertain",
			LanguageSophistication:         "Uncertain",
			ToneSuitabilityForExperts:      "Uncertain",
			ClarityOfExplanationScore:      0.0,
			JargonUsageEvaluation:          "Uncertain",
			KeyObservationsOnStyle:         "Upstream style assessment missing.",
			OverallStylisticRecommendation: StyleRecommendationMinorEdits,
		}
	case "corroboration_cognito":
		return &AssessmentBlock{
			CorroborationLevel:           CorroborationUnableToDetermine,
			CorroborationConfidenceScore: 0.0,
			CorroborationSummaryNotes:    "Upstream corroboration assessment missing.",
		}
	case "adjudicator_prime":
		return &AssessmentBlock{
			FinalPublicationDecision:    DecisionFlagForReview,
			OverallValueExcitementScore: 30,
			DecisionRationaleSummary:    "Automated adjudication failed; flagged conservatively for human review.",
			KeyWeaknessesOrConcerns:     []string{"AdjudicatorPrime LLM failure"},
			SuggestedNextStepsForEditor: []string{"Full manual review of all agent outputs and article content needed due to AdjudicatorPrime failure."},
		}
	default:
		return &AssessmentBlock{}
	}
}
