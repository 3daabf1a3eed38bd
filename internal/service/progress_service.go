package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/cache"
	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/model"
	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/repository"
)

// History windows used for derived metrics. Truncation happens at read
// time only; stored history is never pruned.
const (
	improvementWindow = 5
	statsWindow       = 10
	seriesWindow      = 20
)

const emptyHistoryMessage = "No analysis history yet. Complete your first analysis to see progress!"

// ImprovementScore derives the trend metric over the last min(5, N)
// entries. It stays 0 while fewer than two entries exist. Nervousness
// enters inverted: a drop in nervousness counts as improvement.
func ImprovementScore(entries []model.HistoryEntry) float64 {
	if len(entries) < 2 {
		return 0
	}

	recent := entries
	if len(recent) > improvementWindow {
		recent = recent[len(recent)-improvementWindow:]
	}
	first := recent[0].Scores
	last := recent[len(recent)-1].Scores

	delta := ((last.Confidence - first.Confidence) +
		((100 - last.Nervousness) - (100 - first.Nervousness)) +
		(last.Clarity - first.Clarity)) / 3

	if delta < 0 {
		return 0
	}
	if delta > 100 {
		return 100
	}
	return delta
}

// ProgressService reads a user's history and derives dashboard data.
type ProgressService struct {
	repo  repository.HistoryRepo
	cache cache.ProgressCache // optional
	log   *logrus.Entry
}

func NewProgressService(repo repository.HistoryRepo, progressCache cache.ProgressCache) *ProgressService {
	return &ProgressService{
		repo:  repo,
		cache: progressCache,
		log:   logrus.WithField("component", "progress"),
	}
}

// Stats computes the dashboard summary: total analyses, the improvement
// trend and confidence aggregates over the last ten entries. Results are
// cached best-effort.
func (s *ProgressService) Stats(ctx context.Context, userID string) (*model.ProgressStats, error) {
	if s.cache != nil {
		if stats, err := s.cache.Get(ctx, userID); err == nil && stats != nil {
			return stats, nil
		}
	}

	entries, err := s.repo.GetRecent(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	stats := &model.ProgressStats{
		TotalAnalyses:    len(entries),
		ImprovementScore: round1(ImprovementScore(entries)),
	}

	recent := entries
	if len(recent) > statsWindow {
		recent = recent[len(recent)-statsWindow:]
	}
	if len(recent) > 0 {
		var sum, best float64
		for _, e := range recent {
			sum += e.Scores.Confidence
			if e.Scores.Confidence > best {
				best = e.Scores.Confidence
			}
		}
		stats.AverageConfidence = round1(sum / float64(len(recent)))
		stats.BestConfidence = best
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, stats); err != nil {
			s.log.WithError(err).Debug("progress cache write failed")
		}
	}
	return stats, nil
}

// Series returns chart-ready history, the last twenty entries oldest-first.
func (s *ProgressService) Series(ctx context.Context, userID string) (*model.ProgressSeries, error) {
	entries, err := s.repo.GetRecent(ctx, userID, seriesWindow)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	if len(entries) == 0 {
		return &model.ProgressSeries{Empty: true, Message: emptyHistoryMessage}, nil
	}

	series := &model.ProgressSeries{
		Dates:       make([]string, 0, len(entries)),
		Confidence:  make([]float64, 0, len(entries)),
		Nervousness: make([]float64, 0, len(entries)),
		Clarity:     make([]float64, 0, len(entries)),
	}
	for _, e := range entries {
		series.Dates = append(series.Dates, e.Timestamp.Format("Jan 02"))
		series.Confidence = append(series.Confidence, e.Scores.Confidence)
		series.Nervousness = append(series.Nervousness, e.Scores.Nervousness)
		series.Clarity = append(series.Clarity, e.Scores.Clarity)
	}
	return series, nil
}
