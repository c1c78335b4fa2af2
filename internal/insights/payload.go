package insights

import "encoding/json"

// Payload is the JSON document the analysis script prints to stdout. Raw
// preserves the document exactly as received; the typed fields cover only
// what the persistence layer reads out of it.
type Payload struct {
	Raw json.RawMessage `json:"-"`

	WeeklySummary        json.RawMessage  `json:"weekly_summary"`
	TrendAnalysis        json.RawMessage  `json:"trend_analysis"`
	TodayRecommendations []Recommendation `json:"today_recommendations"`
	Suggestions          []string         `json:"suggestions"`
	MoodTriggers         []string         `json:"mood_triggers"`
	MoodImprovementTips  []string         `json:"mood_improvement_tips"`
	PositivePatterns     []string         `json:"positive_patterns"`
	ConfidenceScore      *float64         `json:"confidence_score"`
	TodayAffirmation     *string          `json:"today_affirmation"`
	PredictionAccuracy   *float64         `json:"prediction_accuracy"`
	QuickTip             *string          `json:"quick_tip"`
	MoodTag              *string          `json:"mood_tag"`
}

// Recommendation is one actionable item under today_recommendations.
type Recommendation struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Priority     string `json:"priority"`
	Type         string `json:"type"`
	TimeEstimate string `json:"timeEstimate"`
	Completed    bool   `json:"completed"`
}

// SummaryText extracts weekly_summary.summary when present.
func (p *Payload) SummaryText() string {
	if len(p.WeeklySummary) == 0 {
		return ""
	}
	var block struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(p.WeeklySummary, &block); err != nil {
		return ""
	}
	return block.Summary
}

// ActivityTitles flattens today_recommendations into the plain activity list
// stored on an insight row. Entries without a title fall back to their
// description; entries with neither are dropped.
func (p *Payload) ActivityTitles() []string {
	titles := make([]string, 0, len(p.TodayRecommendations))
	for _, rec := range p.TodayRecommendations {
		switch {
		case rec.Title != "":
			titles = append(titles, rec.Title)
		case rec.Description != "":
			titles = append(titles, rec.Description)
		}
	}
	return titles
}
