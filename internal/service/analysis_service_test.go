package service

import (
	"context"
	"encoding/base64"
	"errors"
	"reflect"
	"testing"

	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/model"
	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/repository"
)

type stubSemantic struct {
	res *model.SemanticResult
	err error
}

func (s stubSemantic) Analyze(ctx context.Context, script string) (*model.SemanticResult, error) {
	return s.res, s.err
}

type stubTranscriber struct {
	text string
	err  error
}

func (s stubTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return s.text, s.err
}

type stubVoice struct {
	res *model.VoiceResult
	err error
}

func (s stubVoice) Analyze(data []byte) (*model.VoiceResult, error) {
	return s.res, s.err
}

func audioPayload() string {
	return base64.StdEncoding.EncodeToString([]byte("fake-wav-bytes"))
}

func TestAnalyze_SemanticUnavailable(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryHistoryRepo()
	svc := NewAnalysisService(repo, stubSemantic{err: ErrSemanticUnavailable}, nil, nil, nil)

	report, err := svc.Analyze(context.Background(), AnalyzeRequest{UserID: "u1", Script: "um um um I think maybe sorry sorry"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !report.APIKeyWarning {
		t.Fatal("APIKeyWarning not set")
	}
	if !reflect.DeepEqual(report.SpeakingTips, fallbackSpeakingTips) {
		t.Fatalf("SpeakingTips = %v", report.SpeakingTips)
	}
	if report.ImprovedScript != "um um um I think maybe sorry sorry" {
		t.Fatalf("ImprovedScript = %q", report.ImprovedScript)
	}
	if report.AnalysisID == "" {
		t.Fatal("AnalysisID not set")
	}

	count, err := repo.Count(context.Background(), "u1")
	if err != nil || count != 1 {
		t.Fatalf("history count = %d, %v; want 1", count, err)
	}
}

func TestAnalyze_SecondRunSeesHistory(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryHistoryRepo()
	svc := NewAnalysisService(repo, stubSemantic{err: ErrSemanticUnavailable}, nil, nil, nil)
	ctx := context.Background()

	first, err := svc.Analyze(ctx, AnalyzeRequest{UserID: "u1", Script: "We deliver great value."})
	if err != nil {
		t.Fatalf("first Analyze: %v", err)
	}
	if first.TotalAnalyses != 0 || first.PreviousScores != nil {
		t.Fatalf("first report already has history: %+v", first)
	}

	second, err := svc.Analyze(ctx, AnalyzeRequest{UserID: "u1", Script: "um um um I think maybe sorry sorry"})
	if err != nil {
		t.Fatalf("second Analyze: %v", err)
	}
	if second.TotalAnalyses != 1 {
		t.Fatalf("TotalAnalyses = %d, want 1", second.TotalAnalyses)
	}
	if second.PreviousScores == nil || *second.PreviousScores != first.Scores {
		t.Fatalf("PreviousScores = %+v, want %+v", second.PreviousScores, first.Scores)
	}
}

func TestAnalyze_NoInput(t *testing.T) {
	t.Parallel()

	svc := NewAnalysisService(repository.NewMemoryHistoryRepo(), stubSemantic{err: ErrSemanticUnavailable}, nil, nil, nil)
	if _, err := svc.Analyze(context.Background(), AnalyzeRequest{UserID: "u1", Script: "   "}); !errors.Is(err, ErrNoScript) {
		t.Fatalf("err = %v, want ErrNoScript", err)
	}
}

func TestAnalyze_AudioOnly(t *testing.T) {
	t.Parallel()

	voiceRes := &model.VoiceResult{
		Nervousness: 60,
		Confidence:  40,
		Insights:    []string{"You're speaking quite fast - try slowing down"},
		Metrics:     model.VoiceMetrics{PitchVariation: 75, SpeechRate: 80, PauseFrequency: 40, VolumeConsistency: 60},
	}
	svc := NewAnalysisService(
		repository.NewMemoryHistoryRepo(),
		stubSemantic{err: ErrSemanticUnavailable},
		stubTranscriber{text: "We deliver great value."},
		stubVoice{res: voiceRes},
		nil,
	)

	report, err := svc.Analyze(context.Background(), AnalyzeRequest{UserID: "u1", Audio: audioPayload()})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.OriginalScript != "We deliver great value." {
		t.Fatalf("OriginalScript = %q", report.OriginalScript)
	}
	if !report.HasVoiceAnalysis || report.VoiceMetrics == nil {
		t.Fatal("voice branch missing from report")
	}
	// Rule scores 0/100/100 blended 70/30 with voice 60/40.
	if report.Scores.Nervousness != 18 || report.Scores.Confidence != 82 {
		t.Fatalf("Scores = %+v", report.Scores)
	}
}

func TestAnalyze_TranscriptionFailureIsFatal(t *testing.T) {
	t.Parallel()

	svc := NewAnalysisService(
		repository.NewMemoryHistoryRepo(),
		stubSemantic{err: ErrSemanticUnavailable},
		stubTranscriber{err: errors.New("boom")},
		stubVoice{},
		nil,
	)
	if _, err := svc.Analyze(context.Background(), AnalyzeRequest{UserID: "u1", Audio: audioPayload()}); err == nil {
		t.Fatal("expected transcription failure to surface")
	}
}

func TestAnalyze_BadAudioWithScriptDegrades(t *testing.T) {
	t.Parallel()

	svc := NewAnalysisService(
		repository.NewMemoryHistoryRepo(),
		stubSemantic{err: ErrSemanticUnavailable},
		nil,
		stubVoice{err: errors.New("unused")},
		nil,
	)

	report, err := svc.Analyze(context.Background(), AnalyzeRequest{UserID: "u1", Script: "We deliver great value.", Audio: "%%% not base64 %%%"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.HasVoiceAnalysis {
		t.Fatal("voice analysis should have been dropped")
	}
}

func TestAnalyze_VoiceFailureDegrades(t *testing.T) {
	t.Parallel()

	svc := NewAnalysisService(
		repository.NewMemoryHistoryRepo(),
		stubSemantic{err: ErrSemanticUnavailable},
		nil,
		stubVoice{err: errors.New("decode failure")},
		nil,
	)

	report, err := svc.Analyze(context.Background(), AnalyzeRequest{UserID: "u1", Script: "We deliver great value.", Audio: audioPayload()})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.HasVoiceAnalysis || report.VoiceMetrics != nil {
		t.Fatal("failed voice branch leaked into report")
	}
}

func TestTranscribe(t *testing.T) {
	t.Parallel()

	svc := NewAnalysisService(
		repository.NewMemoryHistoryRepo(),
		stubSemantic{err: ErrSemanticUnavailable},
		stubTranscriber{text: " hello world "},
		stubVoice{res: &model.VoiceResult{Nervousness: 50, Confidence: 50}},
		nil,
	)

	res, err := svc.Transcribe(context.Background(), audioPayload())
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if res.Transcription != "hello world" {
		t.Fatalf("Transcription = %q", res.Transcription)
	}
	if res.VoiceMetrics == nil {
		t.Fatal("voice metrics missing")
	}

	if _, err := svc.Transcribe(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty payload")
	}
	if _, err := svc.Transcribe(context.Background(), "%%%"); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
