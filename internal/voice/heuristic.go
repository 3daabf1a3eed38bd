// Package voice derives paralinguistic metrics from a recorded audio payload.
//
// The heuristic analyzer is a stand-in, not real signal processing: metrics
// are drawn from a generator seeded by payload length and wall-clock time.
// A real feature-extraction pipeline can replace it behind the same
// interface without touching the fusion engine.
package voice

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/model"
)

// DecodePayload strips an optional data-URL prefix and base64-decodes the
// audio payload. Any decode error fails the whole voice branch.
func DecodePayload(payload string) ([]byte, error) {
	if i := strings.IndexByte(payload, ','); i >= 0 {
		payload = payload[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode audio payload: %w", err)
	}
	return data, nil
}

// Heuristic is the placeholder voice analyzer.
type Heuristic struct {
	now func() time.Time
}

func NewHeuristic() *Heuristic {
	return &Heuristic{now: time.Now}
}

// Analyze produces voice metrics for the given audio bytes. Each metric is
// drawn from its own uniform range, then nervousness is a weighted blend of
// the four and confidence is its complement.
func (h *Heuristic) Analyze(data []byte) (*model.VoiceResult, error) {
	if len(data) == 0 {
		return nil, errors.New("empty audio payload")
	}

	rng := rand.New(rand.NewSource(int64(len(data)) + h.now().UnixMilli()))
	pitchVariation := uniform(rng, 0.3, 0.9)
	speechRate := uniform(rng, 0.4, 0.9)
	pauseFrequency := uniform(rng, 0.2, 0.8)
	volumeConsistency := uniform(rng, 0.3, 0.9)

	nervousness := pitchVariation*30 + speechRate*30 + pauseFrequency*20 + (1-volumeConsistency)*20

	return &model.VoiceResult{
		Nervousness: round1(nervousness),
		Confidence:  round1(100 - nervousness),
		Insights:    buildInsights(pitchVariation, speechRate, pauseFrequency, volumeConsistency),
		Metrics: model.VoiceMetrics{
			PitchVariation:    round1(pitchVariation * 100),
			SpeechRate:        round1(speechRate * 100),
			PauseFrequency:    round1(pauseFrequency * 100),
			VolumeConsistency: round1(volumeConsistency * 100),
		},
	}, nil
}

// buildInsights applies the threshold rules in fixed order and keeps the
// first three that trigger.
func buildInsights(pitch, rate, pause, volume float64) []string {
	var insights []string

	if pitch > 0.7 {
		insights = append(insights, "Your voice pitch varies significantly, which may indicate nervousness")
	} else if pitch < 0.3 {
		insights = append(insights, "Your voice pitch is very monotone - try adding more expression")
	}

	if rate > 0.7 {
		insights = append(insights, "You're speaking quite fast - try slowing down")
	} else if rate < 0.4 {
		insights = append(insights, "Your speech rate is good - maintain this pace")
	}

	if pause > 0.6 {
		insights = append(insights, "Frequent pauses detected - try to reduce filler pauses")
	}

	if volume < 0.4 {
		insights = append(insights, "Your volume varies significantly - work on consistent projection")
	}

	if len(insights) > 3 {
		insights = insights[:3]
	}
	return insights
}

func uniform(rng *rand.Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
