package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"

	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/config"
	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/model"
)

// ErrSemanticUnavailable marks any failure of the external semantic
// analyzer: missing credentials, transport errors, unparseable responses.
// The fusion path treats it as a degrade signal, never as fatal.
var ErrSemanticUnavailable = errors.New("semantic analyzer unavailable")

// SemanticAnalyzer is the external LLM collaborator contract.
type SemanticAnalyzer interface {
	Analyze(ctx context.Context, script string) (*model.SemanticResult, error)
}

// Transcriber converts recorded audio into script text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

const systemPrompt = `You are an expert public speaking coach. Analyze the given presentation script and return a JSON object with the following schema exactly:

{
  "nervousness_score": 0-100,
  "confidence_score": 0-100,
  "clarity_score": 0-100,
  "detected_issues": ["issue 1", "issue 2", "issue 3"],
  "improved_script": "rewritten version that sounds confident and clear",
  "speaking_tips": ["tip 1", "tip 2", "tip 3", "tip 4", "tip 5"],
  "personalized_feedback": "specific feedback based on the user's unique speaking patterns"
}

Important: Return ONLY the JSON object, no markdown formatting, no additional text or explanation.`

// defaultSpeakingTips pads a short tips list up to five entries, in order.
var defaultSpeakingTips = []string{
	"Practice your script out loud",
	"Record yourself and listen back",
	"Use natural pauses and breathing",
	"Maintain eye contact with your audience",
	"Speak slowly and clearly",
}

const speakingTipCount = 5

// GroqService implements SemanticAnalyzer and Transcriber against Groq's
// OpenAI-compatible API.
type GroqService struct {
	cfg    *config.AIConfig
	client openai.Client
	log    *logrus.Entry
}

func NewGroqService(cfg *config.AIConfig) *GroqService {
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithRequestTimeout(time.Duration(cfg.TimeoutMS)*time.Millisecond),
	)
	return &GroqService{
		cfg:    cfg,
		client: client,
		log:    logrus.WithField("component", "groq"),
	}
}

// Analyze runs the coaching prompt over the script. Every failure mode
// wraps ErrSemanticUnavailable so callers can degrade to rule-only scoring.
func (s *GroqService) Analyze(ctx context.Context, script string) (*model.SemanticResult, error) {
	if !s.cfg.IsEnabled() {
		return nil, fmt.Errorf("%w: GROQ_API_KEY not set", ErrSemanticUnavailable)
	}

	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.cfg.ChatModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage("Please analyze this presentation script:\n\n" + script),
		},
		Temperature: openai.Float(0.3),
		MaxTokens:   openai.Int(2000),
		TopP:        openai.Float(0.9),
	})
	if err != nil {
		s.log.WithError(err).Warn("semantic analysis call failed")
		return nil, fmt.Errorf("%w: %v", ErrSemanticUnavailable, err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrSemanticUnavailable)
	}

	payload, err := parseSemanticPayload(completion.Choices[0].Message.Content)
	if err != nil {
		s.log.WithError(err).Warn("semantic response was not valid JSON")
		return nil, fmt.Errorf("%w: %v", ErrSemanticUnavailable, err)
	}
	return normalizeSemantic(payload, script), nil
}

// Transcribe sends the audio to Whisper and returns the transcript.
func (s *GroqService) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if !s.cfg.IsEnabled() {
		return "", errors.New("transcription unavailable: GROQ_API_KEY not set")
	}

	transcription, err := s.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model:    openai.AudioModel(s.cfg.WhisperModel),
		File:     openai.File(bytes.NewReader(audio), "recording.wav", "audio/wav"),
		Language: openai.String("en"),
	})
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	return transcription.Text, nil
}

// semanticPayload mirrors the JSON schema the system prompt demands.
// Pointers distinguish absent score fields from zero scores.
type semanticPayload struct {
	NervousnessScore     *float64 `json:"nervousness_score"`
	ConfidenceScore      *float64 `json:"confidence_score"`
	ClarityScore         *float64 `json:"clarity_score"`
	DetectedIssues       []string `json:"detected_issues"`
	ImprovedScript       *string  `json:"improved_script"`
	SpeakingTips         []string `json:"speaking_tips"`
	PersonalizedFeedback string   `json:"personalized_feedback"`
}

// parseSemanticPayload decodes the model output, tolerating prose or
// markdown fences around the JSON object.
func parseSemanticPayload(content string) (semanticPayload, error) {
	var payload semanticPayload
	if err := json.Unmarshal([]byte(content), &payload); err == nil {
		return payload, nil
	}

	start := strings.IndexByte(content, '{')
	end := strings.LastIndexByte(content, '}')
	if start < 0 || end <= start {
		return payload, errors.New("no JSON object in response")
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return payload, err
	}
	return payload, nil
}

// normalizeSemantic fills in defaults for missing fields and forces
// SpeakingTips to exactly five entries.
func normalizeSemantic(p semanticPayload, script string) *model.SemanticResult {
	res := &model.SemanticResult{
		Scores: model.Scores{
			Nervousness: scoreOrDefault(p.NervousnessScore),
			Confidence:  scoreOrDefault(p.ConfidenceScore),
			Clarity:     scoreOrDefault(p.ClarityScore),
		},
		DetectedIssues:       p.DetectedIssues,
		ImprovedScript:       script,
		SpeakingTips:         normalizeTips(p.SpeakingTips),
		PersonalizedFeedback: p.PersonalizedFeedback,
	}
	if res.DetectedIssues == nil {
		res.DetectedIssues = []string{}
	}
	if p.ImprovedScript != nil && *p.ImprovedScript != "" {
		res.ImprovedScript = *p.ImprovedScript
	}
	return res
}

func normalizeTips(tips []string) []string {
	out := append([]string(nil), tips...)
	if len(out) > speakingTipCount {
		return out[:speakingTipCount]
	}
	for _, tip := range defaultSpeakingTips {
		if len(out) == speakingTipCount {
			break
		}
		out = append(out, tip)
	}
	return out
}

func scoreOrDefault(v *float64) float64 {
	if v == nil {
		return 50
	}
	return *v
}
