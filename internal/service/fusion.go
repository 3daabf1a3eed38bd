package service

import (
	"math"

	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/analyzer"
	"github.com/Navya28shree/Smart-Presentation-Speech-Analyzer/internal/model"
)

// Score-fusion weights.
const (
	ruleWeight     = 0.4
	semanticWeight = 0.6
	textWeight     = 0.7
	voiceWeight    = 0.3
	maxIssues      = 8
)

const apiKeyWarningMessage = "⚠️ Using rule-based analysis only. Check your GROQ_API_KEY in .env file."

// fallbackSpeakingTips replace the semantic tips when the analyzer is
// unavailable.
var fallbackSpeakingTips = []string{
	"🎯 Practice your script out loud at least 3 times",
	"🎤 Record yourself and identify filler words",
	"⏸️ Use natural pauses instead of 'um' and 'uh'",
	"👀 Maintain eye contact with your audience",
	"🐢 Speak slowly - nervousness makes us speed up",
}

// Combine merges the rule-based result with the optional semantic and voice
// results plus the user's prior history into one report. It has no side
// effects; the caller persists the report.
//
// A nil sem means the semantic analyzer was unavailable: the report carries
// the rule scores verbatim, the warning flag and the fallback tips.
func Combine(script string, rule analyzer.Result, sem *model.SemanticResult, voiceRes *model.VoiceResult, history []model.HistoryEntry) *model.AnalysisReport {
	report := &model.AnalysisReport{}

	if sem == nil {
		report.Scores = model.Scores{
			Nervousness: rule.Nervousness,
			Confidence:  rule.Confidence,
			Clarity:     rule.Clarity,
		}
		report.DetectedIssues = append([]string(nil), rule.Issues...)
	} else {
		report.Scores = model.Scores{
			Nervousness: mix(rule.Nervousness, sem.Scores.Nervousness),
			Confidence:  mix(rule.Confidence, sem.Scores.Confidence),
			Clarity:     mix(rule.Clarity, sem.Scores.Clarity),
		}
		report.DetectedIssues = unionIssues(rule.Issues, sem.DetectedIssues, maxIssues)
		report.ImprovedScript = sem.ImprovedScript
		report.SpeakingTips = append([]string(nil), sem.SpeakingTips...)
		report.PersonalizedFeedback = sem.PersonalizedFeedback
	}

	if voiceRes != nil {
		report.Scores.Nervousness = round1(report.Scores.Nervousness*textWeight + voiceRes.Nervousness*voiceWeight)
		report.Scores.Confidence = round1(report.Scores.Confidence*textWeight + voiceRes.Confidence*voiceWeight)
		// Insights land after the 8-item cap, so a voiced report may carry
		// more than maxIssues entries.
		report.DetectedIssues = append(report.DetectedIssues, voiceRes.Insights...)
		metrics := voiceRes.Metrics
		report.VoiceMetrics = &metrics
		report.HasVoiceAnalysis = true
	}

	if len(history) > 0 {
		prev := history[len(history)-1].Scores
		report.PreviousScores = &prev
		report.TotalAnalyses = len(history)
	}

	if sem == nil {
		report.APIKeyWarning = true
		report.WarningMessage = apiKeyWarningMessage
		report.SpeakingTips = append([]string(nil), fallbackSpeakingTips...)
		if report.ImprovedScript == "" {
			report.ImprovedScript = script
		}
	}

	return report
}

// mix blends a rule score with a semantic score, 40/60.
func mix(rule, semantic float64) float64 {
	return round1(ruleWeight*rule + semanticWeight*semantic)
}

// unionIssues deduplicates rule issues followed by semantic-only issues and
// caps the result.
func unionIssues(rule, semantic []string, limit int) []string {
	seen := make(map[string]struct{}, len(rule)+len(semantic))
	out := make([]string, 0, len(rule)+len(semantic))
	for _, list := range [][]string{rule, semantic} {
		for _, issue := range list {
			if _, ok := seen[issue]; ok {
				continue
			}
			seen[issue] = struct{}{}
			out = append(out, issue)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
