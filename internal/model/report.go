package model

// Scores is the nervousness/confidence/clarity triple shared by every
// analysis source. Values are on a 0-100 scale, rounded to one decimal.
type Scores struct {
	Nervousness float64 `json:"nervousness" bson:"nervousness"`
	Confidence  float64 `json:"confidence" bson:"confidence"`
	Clarity     float64 `json:"clarity" bson:"clarity"`
}

// SemanticResult is a normalized analysis from the external semantic
// analyzer. By the time it reaches the fusion engine every field is
// populated: scores default to 50, ImprovedScript falls back to the
// original script and SpeakingTips holds exactly five entries.
type SemanticResult struct {
	Scores               Scores   `json:"scores"`
	DetectedIssues       []string `json:"detectedIssues"`
	ImprovedScript       string   `json:"improvedScript"`
	SpeakingTips         []string `json:"speakingTips"`
	PersonalizedFeedback string   `json:"personalizedFeedback"`
}

// AnalysisReport is the final fused report returned to the caller.
type AnalysisReport struct {
	Scores               Scores        `json:"scores"`
	DetectedIssues       []string      `json:"detectedIssues"`
	ImprovedScript       string        `json:"improvedScript"`
	SpeakingTips         []string      `json:"speakingTips"`
	PersonalizedFeedback string        `json:"personalizedFeedback,omitempty"`
	VoiceMetrics         *VoiceMetrics `json:"voiceMetrics,omitempty"`
	HasVoiceAnalysis     bool          `json:"hasVoiceAnalysis,omitempty"`
	APIKeyWarning        bool          `json:"apiKeyWarning"`
	WarningMessage       string        `json:"warningMessage,omitempty"`
	PreviousScores       *Scores       `json:"previousScores,omitempty"`
	TotalAnalyses        int           `json:"totalAnalyses,omitempty"`
	OriginalScript       string        `json:"originalScript,omitempty"`
	AnalysisID           string        `json:"analysisId,omitempty"`
}
