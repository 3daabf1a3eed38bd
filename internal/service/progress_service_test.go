package service

import (
	"context"
	"math"
	"testing"

	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/model"
	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/repository"
)

func entryWith(nervousness, confidence, clarity float64) model.HistoryEntry {
	return model.HistoryEntry{
		Scores: model.Scores{Nervousness: nervousness, Confidence: confidence, Clarity: clarity},
	}
}

func TestImprovementScore_UndefinedBelowTwoEntries(t *testing.T) {
	t.Parallel()

	if got := ImprovementScore(nil); got != 0 {
		t.Fatalf("ImprovementScore(nil) = %v", got)
	}
	if got := ImprovementScore([]model.HistoryEntry{entryWith(40, 60, 55)}); got != 0 {
		t.Fatalf("single entry = %v, want 0", got)
	}
}

func TestImprovementScore_TwoEntryTrend(t *testing.T) {
	t.Parallel()

	history := []model.HistoryEntry{
		entryWith(40, 60, 55),
		entryWith(30, 70, 65),
	}
	// ((70-60) + (40-30) + (65-55)) / 3
	if got := ImprovementScore(history); got != 10 {
		t.Fatalf("ImprovementScore = %v, want 10", got)
	}
}

func TestImprovementScore_NervousnessSignConvention(t *testing.T) {
	t.Parallel()

	// Nervousness went up, everything else flat: that is regression,
	// clamped to zero.
	history := []model.HistoryEntry{
		entryWith(20, 60, 60),
		entryWith(50, 60, 60),
	}
	if got := ImprovementScore(history); got != 0 {
		t.Fatalf("ImprovementScore = %v, want 0", got)
	}

	// Nervousness dropped: pure improvement.
	down := []model.HistoryEntry{
		entryWith(50, 60, 60),
		entryWith(20, 60, 60),
	}
	if got := ImprovementScore(down); got != 10 {
		t.Fatalf("ImprovementScore = %v, want 10", got)
	}
}

func TestImprovementScore_WindowIsLastFive(t *testing.T) {
	t.Parallel()

	// Two noise entries followed by five ranging 50 -> 90 in confidence.
	history := []model.HistoryEntry{
		entryWith(50, 0, 50),
		entryWith(50, 0, 50),
		entryWith(50, 50, 50),
		entryWith(50, 60, 50),
		entryWith(50, 70, 50),
		entryWith(50, 80, 50),
		entryWith(50, 90, 50),
	}
	want := 40.0 / 3
	if got := ImprovementScore(history); math.Abs(got-want) > 1e-9 {
		t.Fatalf("ImprovementScore = %v, want %v", got, want)
	}
}

func TestImprovementScore_AlwaysInRange(t *testing.T) {
	t.Parallel()

	histories := [][]model.HistoryEntry{
		{entryWith(100, 0, 0), entryWith(0, 100, 100)},
		{entryWith(0, 100, 100), entryWith(100, 0, 0)},
		{entryWith(33.3, 50.5, 60.1), entryWith(20, 80, 70), entryWith(10, 90, 95)},
	}
	for _, h := range histories {
		got := ImprovementScore(h)
		if got < 0 || got > 100 {
			t.Fatalf("ImprovementScore = %v out of [0,100]", got)
		}
	}
}

func seedRepo(t *testing.T, confidences []float64) repository.HistoryRepo {
	t.Helper()
	repo := repository.NewMemoryHistoryRepo()
	for _, c := range confidences {
		report := &model.AnalysisReport{
			Scores:         model.Scores{Nervousness: 30, Confidence: c, Clarity: 60},
			OriginalScript: "s",
		}
		if _, err := repo.AppendEntry(context.Background(), "u1", report); err != nil {
			t.Fatalf("AppendEntry: %v", err)
		}
	}
	return repo
}

func TestProgressService_Stats(t *testing.T) {
	t.Parallel()

	confidences := make([]float64, 0, 12)
	for i := 1; i <= 12; i++ {
		confidences = append(confidences, float64(i))
	}
	svc := NewProgressService(seedRepo(t, confidences), nil)

	stats, err := svc.Stats(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalAnalyses != 12 {
		t.Fatalf("TotalAnalyses = %d, want 12", stats.TotalAnalyses)
	}
	if stats.AverageConfidence != 7.5 { // mean of 3..12
		t.Fatalf("AverageConfidence = %v, want 7.5", stats.AverageConfidence)
	}
	if stats.BestConfidence != 12 {
		t.Fatalf("BestConfidence = %v, want 12", stats.BestConfidence)
	}
	// Improvement window is the last five entries: (12-8)/3 rounded.
	if stats.ImprovementScore != 1.3 {
		t.Fatalf("ImprovementScore = %v, want 1.3", stats.ImprovementScore)
	}
}

func TestProgressService_StatsEmptyHistory(t *testing.T) {
	t.Parallel()

	svc := NewProgressService(repository.NewMemoryHistoryRepo(), nil)
	stats, err := svc.Stats(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalAnalyses != 0 || stats.ImprovementScore != 0 || stats.AverageConfidence != 0 {
		t.Fatalf("stats for empty history = %+v", stats)
	}
}

func TestProgressService_Series(t *testing.T) {
	t.Parallel()

	confidences := make([]float64, 25)
	for i := range confidences {
		confidences[i] = float64(i)
	}
	svc := NewProgressService(seedRepo(t, confidences), nil)

	series, err := svc.Series(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if series.Empty {
		t.Fatal("series flagged empty")
	}
	if len(series.Dates) != 20 || len(series.Confidence) != 20 {
		t.Fatalf("series lengths = %d/%d, want 20", len(series.Dates), len(series.Confidence))
	}
	// Oldest-first window over entries 5..24.
	if series.Confidence[0] != 5 || series.Confidence[19] != 24 {
		t.Fatalf("series window wrong: first %v last %v", series.Confidence[0], series.Confidence[19])
	}
}

func TestProgressService_SeriesEmpty(t *testing.T) {
	t.Parallel()

	svc := NewProgressService(repository.NewMemoryHistoryRepo(), nil)
	series, err := svc.Series(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	if !series.Empty || series.Message == "" {
		t.Fatalf("empty history series = %+v", series)
	}
}
