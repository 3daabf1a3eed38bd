package model

// VoiceMetrics are paralinguistic measurements reported on a 0-100 scale.
type VoiceMetrics struct {
	PitchVariation    float64 `json:"pitchVariation"`
	SpeechRate        float64 `json:"speechRate"`
	PauseFrequency    float64 `json:"pauseFrequency"`
	VolumeConsistency float64 `json:"volumeConsistency"`
}

// VoiceResult is the full output of the voice signal analyzer: the derived
// nervousness/confidence pair, up to three insight strings and the raw metrics.
type VoiceResult struct {
	Nervousness float64      `json:"voiceNervousness"`
	Confidence  float64      `json:"voiceConfidence"`
	Insights    []string     `json:"voiceInsights"`
	Metrics     VoiceMetrics `json:"metrics"`
}
