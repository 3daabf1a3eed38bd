package model

import "time"

// HistoryEntry is an immutable snapshot of one analysis, appended to the
// owning user's history log. Insertion order is chronological order.
type HistoryEntry struct {
	ID             string    `json:"id" bson:"_id"`
	UserID         string    `json:"userId" bson:"userId"`
	Timestamp      time.Time `json:"timestamp" bson:"timestamp"`
	Script         string    `json:"script" bson:"script"`
	Scores         Scores    `json:"scores" bson:"scores"`
	Issues         []string  `json:"issues" bson:"issues"`
	ImprovedScript string    `json:"improvedScript" bson:"improvedScript"`
}

// ProgressStats summarizes a user's history for the dashboard.
// AverageConfidence and BestConfidence cover the last ten entries.
type ProgressStats struct {
	TotalAnalyses     int     `json:"totalAnalyses"`
	ImprovementScore  float64 `json:"improvementScore"`
	AverageConfidence float64 `json:"averageConfidence"`
	BestConfidence    float64 `json:"bestConfidence"`
}

// ProgressSeries is chart-ready score history, parallel slices over the
// last twenty entries, oldest first.
type ProgressSeries struct {
	Dates       []string  `json:"dates"`
	Confidence  []float64 `json:"confidence"`
	Nervousness []float64 `json:"nervousness"`
	Clarity     []float64 `json:"clarity"`
	Empty       bool      `json:"empty,omitempty"`
	Message     string    `json:"message,omitempty"`
}
