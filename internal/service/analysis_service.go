package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/analyzer"
	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/cache"
	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/model"
	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/repository"
	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/voice"
)

// ErrNoScript is returned when a request carries neither script text nor
// transcribable audio.
var ErrNoScript = errors.New("no script text to analyze")

// VoiceAnalyzer produces paralinguistic metrics from decoded audio bytes.
type VoiceAnalyzer interface {
	Analyze(data []byte) (*model.VoiceResult, error)
}

// AnalyzeRequest is one analysis submission. Audio is an optional base64
// payload, with or without a data-URL prefix. When Script is empty the
// audio is transcribed first.
type AnalyzeRequest struct {
	UserID string
	Script string
	Audio  string
}

// TranscriptionResult pairs a transcript with best-effort voice metrics.
type TranscriptionResult struct {
	Transcription string             `json:"transcription"`
	VoiceMetrics  *model.VoiceResult `json:"voiceMetrics,omitempty"`
}

// AnalysisService orchestrates one analysis: lexical rules always run, the
// semantic and voice branches are optional and degrade gracefully, fusion
// merges whatever survived, and the report is appended to history.
type AnalysisService struct {
	repo        repository.HistoryRepo
	semantic    SemanticAnalyzer
	transcriber Transcriber
	voice       VoiceAnalyzer
	cache       cache.ProgressCache // optional
	log         *logrus.Entry
}

func NewAnalysisService(repo repository.HistoryRepo, semantic SemanticAnalyzer, transcriber Transcriber, voiceAnalyzer VoiceAnalyzer, progressCache cache.ProgressCache) *AnalysisService {
	return &AnalysisService{
		repo:        repo,
		semantic:    semantic,
		transcriber: transcriber,
		voice:       voiceAnalyzer,
		cache:       progressCache,
		log:         logrus.WithField("component", "analysis"),
	}
}

// Analyze runs the full scoring flow and persists the result into the
// user's history. Only missing input and storage failures are fatal.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*model.AnalysisReport, error) {
	script := strings.TrimSpace(req.Script)

	var voiceRes *model.VoiceResult
	if req.Audio != "" {
		data, err := voice.DecodePayload(req.Audio)
		if err != nil {
			if script == "" {
				return nil, err
			}
			// Script is still analyzable; only the voice branch dies.
			s.log.WithError(err).Warn("dropping voice analysis")
		} else {
			if script == "" {
				script, err = s.transcribeAudio(ctx, data)
				if err != nil {
					return nil, err
				}
			}
			voiceRes = s.analyzeVoice(data)
		}
	}

	if script == "" {
		return nil, ErrNoScript
	}

	rule := analyzer.Analyze(script)

	var sem *model.SemanticResult
	if s.semantic != nil {
		var err error
		sem, err = s.semantic.Analyze(ctx, script)
		if err != nil {
			s.log.WithError(err).Warn("falling back to rule-based analysis")
			sem = nil
		}
	}

	history, err := s.repo.GetRecent(ctx, req.UserID, 0)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	report := Combine(script, rule, sem, voiceRes, history)
	report.OriginalScript = script

	entry, err := s.repo.AppendEntry(ctx, req.UserID, report)
	if err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}
	report.AnalysisID = entry.ID

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, req.UserID); err != nil {
			s.log.WithError(err).Debug("progress cache invalidation failed")
		}
	}

	s.log.WithFields(logrus.Fields{
		"user":        req.UserID,
		"nervousness": report.Scores.Nervousness,
		"confidence":  report.Scores.Confidence,
		"clarity":     report.Scores.Clarity,
		"semantic":    sem != nil,
		"voice":       voiceRes != nil,
	}).Info("analysis complete")

	return report, nil
}

// Transcribe converts an audio payload into text and attaches voice
// metrics. A transcription failure is a request-level error; a voice
// analysis failure is not.
func (s *AnalysisService) Transcribe(ctx context.Context, payload string) (*TranscriptionResult, error) {
	if payload == "" {
		return nil, errors.New("no audio data provided")
	}

	data, err := voice.DecodePayload(payload)
	if err != nil {
		return nil, err
	}

	transcript, err := s.transcribeAudio(ctx, data)
	if err != nil {
		return nil, err
	}

	return &TranscriptionResult{
		Transcription: transcript,
		VoiceMetrics:  s.analyzeVoice(data),
	}, nil
}

func (s *AnalysisService) transcribeAudio(ctx context.Context, data []byte) (string, error) {
	if s.transcriber == nil {
		return "", errors.New("no transcriber configured")
	}
	transcript, err := s.transcriber.Transcribe(ctx, data)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", errors.New("transcription returned no text")
	}
	return transcript, nil
}

func (s *AnalysisService) analyzeVoice(data []byte) *model.VoiceResult {
	if s.voice == nil {
		return nil
	}
	res, err := s.voice.Analyze(data)
	if err != nil {
		s.log.WithError(err).Warn("voice analysis failed")
		return nil
	}
	return res
}
