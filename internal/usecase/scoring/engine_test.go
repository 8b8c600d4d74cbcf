package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
)

func studentLine(text string, ts float64) entities.TranscriptLine {
	return entities.TranscriptLine{
		Speaker:   entities.SpeakerStudent,
		Text:      text,
		Timestamp: ts,
		IsFinal:   true,
	}
}

func aiLine(text string, ts float64) entities.TranscriptLine {
	return entities.TranscriptLine{
		Speaker:   entities.SpeakerAI,
		Text:      text,
		Timestamp: ts,
		IsFinal:   true,
	}
}

func TestScoreEmptyTranscript(t *testing.T) {
	engine := NewEngine(nil, zap.NewNop())

	result := engine.Score(context.Background(), nil)

	if result.OverallScore != 0 {
		t.Errorf("expected overall 0, got %d", result.OverallScore)
	}
	if result.RiskLevel != entities.RiskLevelHigh {
		t.Errorf("expected HIGH risk, got %s", result.RiskLevel)
	}
	wantWeak := []string{
		"financial_credibility", "study_intent", "return_intent",
		"confidence", "consistency",
	}
	if !reflect.DeepEqual(result.WeakAreas, wantWeak) {
		t.Errorf("expected all weak areas %v, got %v", wantWeak, result.WeakAreas)
	}
	if result.Feedback != "No student responses recorded." {
		t.Errorf("unexpected feedback: %q", result.Feedback)
	}
}

func TestScoreAIOnlyTranscriptIsEmpty(t *testing.T) {
	engine := NewEngine(nil, zap.NewNop())

	result := engine.Score(context.Background(), []entities.TranscriptLine{
		aiLine("Why do you want to study in the United States?", 1),
		aiLine("Who is paying for your education?", 10),
	})

	if result.OverallScore != 0 || result.RiskLevel != entities.RiskLevelHigh {
		t.Errorf("AI-only transcript must score as empty, got overall=%d risk=%s",
			result.OverallScore, result.RiskLevel)
	}
}

func TestScoreWorkedExample(t *testing.T) {
	engine := NewEngine(nil, zap.NewNop())

	result := engine.Score(context.Background(), []entities.TranscriptLine{
		studentLine("I have a bank statement and a sponsor for my university program", 1),
	})

	if result.FinancialCredibility != 40 {
		t.Errorf("financial: want 40, got %d", result.FinancialCredibility)
	}
	if result.StudyIntent != 40 {
		t.Errorf("study: want 40, got %d", result.StudyIntent)
	}
	if result.ReturnIntent != 0 {
		t.Errorf("return: want 0, got %d", result.ReturnIntent)
	}
	if result.ConfidenceScore != 100 {
		t.Errorf("confidence: want 100, got %d", result.ConfidenceScore)
	}
	if result.ConsistencyScore != 70 {
		t.Errorf("consistency: want 70 (single-line default), got %d", result.ConsistencyScore)
	}
	// round(0.25*40 + 0.25*40 + 0.20*0 + 0.15*100 + 0.15*70) = 46
	if result.OverallScore != 46 {
		t.Errorf("overall: want 46, got %d", result.OverallScore)
	}
	if result.RiskLevel != entities.RiskLevelModerate {
		t.Errorf("risk: want MODERATE, got %s", result.RiskLevel)
	}
	wantWeak := []string{"financial_credibility", "study_intent", "return_intent"}
	if !reflect.DeepEqual(result.WeakAreas, wantWeak) {
		t.Errorf("weak areas: want %v, got %v", wantWeak, result.WeakAreas)
	}
}

func TestConfidenceNoHesitationsIsPerfect(t *testing.T) {
	score := confidenceScore([]string{
		"My father sponsors my education through his savings",
		"I will return home after graduation to join the family business",
	})
	if score != 100 {
		t.Errorf("want 100 for zero hesitations, got %d", score)
	}
}

func TestConfidenceHeavyHesitationFloorsAtZero(t *testing.T) {
	score := confidenceScore([]string{"um uh er um uh um"})
	if score != 0 {
		t.Errorf("want 0 for all-filler answer, got %d", score)
	}
}

func TestConfidenceCountsEllipsesAndFillerWord(t *testing.T) {
	withFiller := confidenceScore([]string{"I want to... like study abroad"})
	clean := confidenceScore([]string{"I want to go and study abroad"})
	if withFiller >= clean {
		t.Errorf("hesitation markers must lower the score: filler=%d clean=%d", withFiller, clean)
	}
}

func TestConsistencyDefaultsForShortSessions(t *testing.T) {
	if got := consistencyScore([]string{"one answer only"}); got != 70 {
		t.Errorf("want neutral 70 for a single line, got %d", got)
	}
}

func TestConsistencyPenalizesMultipleInstitutions(t *testing.T) {
	score := consistencyScore([]string{
		"I applied to stanforduniversity for my masters",
		"I will study at harvarduniversity next fall",
	})
	if score != 90 {
		t.Errorf("two distinct institution tokens: want 90, got %d", score)
	}

	single := consistencyScore([]string{
		"I applied to stanforduniversity for my masters",
		"stanforduniversity has the best program for me",
	})
	if single != 100 {
		t.Errorf("one repeated institution: want 100, got %d", single)
	}
}

func TestKeywordScoreCapsAtHundred(t *testing.T) {
	text := "bank statement sponsor savings scholarship funded loan financial support account balance"
	if got := keywordScore(text, financialKeywords, 5); got != 100 {
		t.Errorf("want cap at 100, got %d", got)
	}
}

func TestDimensionsAndOverallStayInBounds(t *testing.T) {
	engine := NewEngine(nil, zap.NewNop())

	transcripts := [][]entities.TranscriptLine{
		{studentLine("um uh er like um uh... er", 1)},
		{studentLine("bank statement sponsor savings scholarship funded loan financial support account balance university course degree program research academic study major graduate bachelor return family job career home country business parents after graduation come back", 1)},
		{
			studentLine("I study at bigcityuniversity", 1),
			studentLine("Actually I meant smalltowncollege and also techinstitute and stateuniversity", 5),
		},
	}

	for i, lines := range transcripts {
		result := engine.Score(context.Background(), lines)
		dims := []int{
			result.FinancialCredibility, result.StudyIntent, result.ReturnIntent,
			result.ConfidenceScore, result.ConsistencyScore, result.OverallScore,
		}
		for _, d := range dims {
			if d < 0 || d > 100 {
				t.Errorf("transcript %d: dimension out of bounds: %v", i, dims)
				break
			}
		}
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	engine := NewEngine(nil, zap.NewNop())
	lines := []entities.TranscriptLine{
		studentLine("I have a scholarship from my university", 1),
		studentLine("My parents run a business and I will return after graduation", 8),
	}

	first := engine.Score(context.Background(), lines)
	second := engine.Score(context.Background(), lines)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("rule-based scoring must be deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestWeakAreaMembership(t *testing.T) {
	got := collectWeakAreas(55, 80, 65, 90, 100)
	want := []string{"financial_credibility"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}

	if areas := collectWeakAreas(60, 60, 60, 60, 60); len(areas) != 0 {
		t.Errorf("60 is not weak, got %v", areas)
	}
}

func TestRiskTierBoundaries(t *testing.T) {
	cases := []struct {
		overall int
		want    entities.RiskLevel
	}{
		{70, entities.RiskLevelLow},
		{69, entities.RiskLevelModerate},
		{45, entities.RiskLevelModerate},
		{44, entities.RiskLevelHigh},
	}
	for _, tc := range cases {
		if got := riskLevel(tc.overall); got != tc.want {
			t.Errorf("riskLevel(%d): want %s, got %s", tc.overall, tc.want, got)
		}
	}
}

func TestFeedbackHighScoreIsCongratulatory(t *testing.T) {
	feedback := buildFeedback(nil, 85)
	if feedback != "Excellent performance! Your responses demonstrate strong visa approval potential." {
		t.Errorf("unexpected high-score feedback: %q", feedback)
	}
}

func TestFeedbackListsWeakAreaLabels(t *testing.T) {
	feedback := buildFeedback([]string{"financial_credibility", "confidence"}, 50)
	want := "To improve your chances, focus on: financial documentation clarity, speech confidence and fluency. Practice will strengthen these areas significantly."
	if feedback != want {
		t.Errorf("want %q, got %q", want, feedback)
	}
}

type stubAnalyzer struct {
	payload json.RawMessage
	err     error
	calls   int
}

func (s *stubAnalyzer) AnalyzeTranscript(ctx context.Context, conversation string) (json.RawMessage, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

func TestEnrichmentFailureKeepsRuleScores(t *testing.T) {
	analyzer := &stubAnalyzer{err: errors.New("provider timeout")}
	engine := NewEngine(analyzer, zap.NewNop())
	lines := []entities.TranscriptLine{
		studentLine("I have a scholarship for my degree program", 1),
	}

	result := engine.Score(context.Background(), lines)

	if analyzer.calls != 1 {
		t.Errorf("analyzer should be called once, got %d", analyzer.calls)
	}
	if result.AIAnalysis != nil {
		t.Errorf("failed enrichment must be omitted, got %s", result.AIAnalysis)
	}

	baseline := NewEngine(nil, zap.NewNop()).Score(context.Background(), lines)
	if result.OverallScore != baseline.OverallScore {
		t.Errorf("enrichment failure must not change deterministic scores: %d vs %d",
			result.OverallScore, baseline.OverallScore)
	}
}

func TestEnrichmentPayloadAttached(t *testing.T) {
	payload := json.RawMessage(`{"financialCredibility":72,"keyIssues":[]}`)
	engine := NewEngine(&stubAnalyzer{payload: payload}, zap.NewNop())

	result := engine.Score(context.Background(), []entities.TranscriptLine{
		studentLine("My sponsor covers tuition at my university", 1),
	})

	if string(result.AIAnalysis) != string(payload) {
		t.Errorf("want enrichment payload attached, got %s", result.AIAnalysis)
	}
}

func TestAnalyzerReceivesOfficerLabeledConversation(t *testing.T) {
	conversation := formatConversation([]entities.TranscriptLine{
		aiLine("Why this university?", 1),
		studentLine("It has the strongest research program", 4),
	})
	want := fmt.Sprintf("OFFICER: %s\nSTUDENT: %s",
		"Why this university?", "It has the strongest research program")
	if conversation != want {
		t.Errorf("want %q, got %q", want, conversation)
	}
}
