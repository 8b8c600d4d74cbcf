package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
)

// Keyword vocabularies checked against the student's combined answers. A term
// counts once no matter how often it appears.
var (
	financialKeywords = []string{
		"bank statement", "sponsor", "savings", "scholarship",
		"funded", "loan", "financial support", "account balance",
	}
	studyIntentKeywords = []string{
		"university", "course", "degree", "program", "research",
		"academic", "study", "major", "graduate", "bachelor",
	}
	returnIntentKeywords = []string{
		"return", "family", "job", "career", "home country",
		"business", "parents", "after graduation", "come back",
	}

	hesitationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bum+\b`),
		regexp.MustCompile(`(?i)\buh+\b`),
		regexp.MustCompile(`(?i)\ber+\b`),
		regexp.MustCompile(`(?i)\bahh?\b`),
		regexp.MustCompile(`\.{3,}`),
		regexp.MustCompile(`(?i)\blike\b`),
	}

	institutionPattern = regexp.MustCompile(`(?i)university|college|institute`)
)

// Dimension weights for the overall score
const (
	weightFinancial   = 0.25
	weightStudy       = 0.25
	weightReturn      = 0.20
	weightConfidence  = 0.15
	weightConsistency = 0.15
)

var weakAreaLabels = map[string]string{
	"financial_credibility": "financial documentation clarity",
	"study_intent":          "academic purpose articulation",
	"return_intent":         "home country ties and return intent",
	"confidence":            "speech confidence and fluency",
	"consistency":           "answer consistency across questions",
}

// Analyzer provides optional semantic enrichment over the transcript
type Analyzer interface {
	AnalyzeTranscript(ctx context.Context, conversation string) (json.RawMessage, error)
}

// Result is the complete assessment produced for one session transcript
type Result struct {
	OverallScore         int
	RiskLevel            entities.RiskLevel
	FinancialCredibility int
	StudyIntent          int
	ReturnIntent         int
	ConfidenceScore      int
	ConsistencyScore     int
	WeakAreas            []string
	Feedback             string
	AIAnalysis           json.RawMessage
}

// Engine scores interview transcripts. The rule-based dimensions are fully
// deterministic; the analyzer adds a best-effort semantic payload on top and
// never influences the deterministic numbers.
type Engine struct {
	analyzer Analyzer
	logger   *zap.Logger
}

// NewEngine creates a scoring engine. Analyzer may be nil to disable
// enrichment entirely.
func NewEngine(analyzer Analyzer, logger *zap.Logger) *Engine {
	return &Engine{
		analyzer: analyzer,
		logger:   logger,
	}
}

// Score assesses an ordered transcript. It always returns a complete result;
// an empty or student-silent transcript scores zero across the board at HIGH
// risk.
func (e *Engine) Score(ctx context.Context, lines []entities.TranscriptLine) *Result {
	var studentTexts []string
	for _, line := range lines {
		if line.Speaker == entities.SpeakerStudent {
			studentTexts = append(studentTexts, line.Text)
		}
	}
	combined := strings.Join(studentTexts, " ")

	if strings.TrimSpace(combined) == "" {
		return emptyResult("No student responses recorded.")
	}

	lower := strings.ToLower(combined)
	financial := keywordScore(lower, financialKeywords, 5)
	study := keywordScore(lower, studyIntentKeywords, 5)
	returnIntent := keywordScore(lower, returnIntentKeywords, 4)
	confidence := confidenceScore(studentTexts)
	consistency := consistencyScore(studentTexts)

	var aiAnalysis json.RawMessage
	if e.analyzer != nil {
		analysis, err := e.analyzer.AnalyzeTranscript(ctx, formatConversation(lines))
		if err != nil {
			e.logger.Warn("scoring.enrichment_failed", zap.Error(err))
		} else {
			aiAnalysis = analysis
		}
	}

	overall := int(math.Round(
		float64(financial)*weightFinancial +
			float64(study)*weightStudy +
			float64(returnIntent)*weightReturn +
			float64(confidence)*weightConfidence +
			float64(consistency)*weightConsistency,
	))

	weakAreas := collectWeakAreas(financial, study, returnIntent, confidence, consistency)

	return &Result{
		OverallScore:         overall,
		RiskLevel:            riskLevel(overall),
		FinancialCredibility: financial,
		StudyIntent:          study,
		ReturnIntent:         returnIntent,
		ConfidenceScore:      confidence,
		ConsistencyScore:     consistency,
		WeakAreas:            weakAreas,
		Feedback:             buildFeedback(weakAreas, overall),
		AIAnalysis:           aiAnalysis,
	}
}

// keywordScore counts distinct vocabulary terms present in the lowercased
// text and scales by the denominator, capped at 100
func keywordScore(lower string, keywords []string, denominator int) int {
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			matches++
		}
	}
	score := int(math.Round(float64(matches) / float64(denominator) * 100))
	if score > 100 {
		return 100
	}
	return score
}

// confidenceScore derives a fluency score from the hesitation rate across the
// student's lines. Zero hesitations scores 100; a rate of roughly 30% or more
// floors at 0.
func confidenceScore(studentTexts []string) int {
	if len(studentTexts) == 0 {
		return 0
	}

	totalHesitations := 0
	totalWords := 0
	for _, text := range studentTexts {
		totalWords += len(strings.Fields(text))
		for _, pattern := range hesitationPatterns {
			totalHesitations += len(pattern.FindAllString(text, -1))
		}
	}

	rate := 0.0
	if totalWords > 0 {
		rate = float64(totalHesitations) / float64(totalWords)
	}
	score := int(math.Round((1 - rate*3.33) * 100))
	if score < 0 {
		return 0
	}
	return score
}

// consistencyScore penalizes mentions of multiple distinct institution-like
// tokens across answers. Sessions too short to compare get a neutral default.
func consistencyScore(studentTexts []string) int {
	if len(studentTexts) < 2 {
		return 70
	}

	institutions := make(map[string]struct{})
	for _, text := range studentTexts {
		for _, word := range strings.Fields(strings.ToLower(text)) {
			if len(word) > 5 && institutionPattern.MatchString(word) {
				institutions[word] = struct{}{}
			}
		}
	}

	penalty := (len(institutions) - 1) * 10
	if penalty < 0 {
		penalty = 0
	}
	score := 100 - penalty
	if score < 0 {
		return 0
	}
	return score
}

func riskLevel(overall int) entities.RiskLevel {
	switch {
	case overall >= 70:
		return entities.RiskLevelLow
	case overall >= 45:
		return entities.RiskLevelModerate
	default:
		return entities.RiskLevelHigh
	}
}

// collectWeakAreas tags every dimension strictly below 60
func collectWeakAreas(financial, study, returnIntent, confidence, consistency int) []string {
	weak := []string{}
	if financial < 60 {
		weak = append(weak, "financial_credibility")
	}
	if study < 60 {
		weak = append(weak, "study_intent")
	}
	if returnIntent < 60 {
		weak = append(weak, "return_intent")
	}
	if confidence < 60 {
		weak = append(weak, "confidence")
	}
	if consistency < 60 {
		weak = append(weak, "consistency")
	}
	return weak
}

func buildFeedback(weakAreas []string, overall int) string {
	if overall >= 80 {
		return "Excellent performance! Your responses demonstrate strong visa approval potential."
	}

	labels := make([]string, 0, len(weakAreas))
	for _, area := range weakAreas {
		if label, ok := weakAreaLabels[area]; ok {
			labels = append(labels, label)
		} else {
			labels = append(labels, area)
		}
	}
	return fmt.Sprintf(
		"To improve your chances, focus on: %s. Practice will strengthen these areas significantly.",
		strings.Join(labels, ", "),
	)
}

// formatConversation renders the transcript with interviewer lines labeled
// OFFICER for the analyzer prompt
func formatConversation(lines []entities.TranscriptLine) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		speaker := "STUDENT"
		if line.Speaker == entities.SpeakerAI {
			speaker = "OFFICER"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", speaker, line.Text))
	}
	return strings.Join(parts, "\n")
}

func emptyResult(feedback string) *Result {
	return &Result{
		OverallScore: 0,
		RiskLevel:    entities.RiskLevelHigh,
		WeakAreas: []string{
			"financial_credibility", "study_intent", "return_intent",
			"confidence", "consistency",
		},
		Feedback: feedback,
	}
}
