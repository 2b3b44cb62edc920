package stylist

import (
	"context"
	"time"

	"github.com/yanqian/outfit-concierge/internal/domain/color"
	"github.com/yanqian/outfit-concierge/internal/domain/dayplan"
	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
)

// Request asks for outfit recommendations for one user and day.
type Request struct {
	UserID string `json:"userId"`
	Mood   string `json:"mood,omitempty"`
	TopN   int    `json:"topN,omitempty"`
	// Constraints mixes item ids to exclude from the pool with free-text
	// hints such as "avoid heels" or "prefer pants".
	Constraints []string                 `json:"constraints,omitempty"`
	Schedule    *dayplan.ScheduleProfile `json:"schedule,omitempty"`
	Weather     *dayplan.WeatherProfile  `json:"weather,omitempty"`
	Context     *dayplan.DailyContext    `json:"context,omitempty"`
}

// SubScores are the five weighted components of a composite score.
type SubScores struct {
	Context   float64 `json:"context"`
	Mood      float64 `json:"mood"`
	Color     float64 `json:"color"`
	Formality float64 `json:"formality"`
	Comfort   float64 `json:"comfort"`
}

// Explanation carries one short human-readable string per sub-score.
type Explanation struct {
	Context   string `json:"context"`
	Mood      string `json:"mood"`
	Color     string `json:"color"`
	Formality string `json:"formality"`
	Comfort   string `json:"comfort"`
}

// Score is the full scoring outcome for one outfit.
type Score struct {
	Composite   float64     `json:"composite"`
	Sub         SubScores   `json:"subScores"`
	Explanation Explanation `json:"explanation"`
}

// RankedOutfit is one entry of a recommendation response.
type RankedOutfit struct {
	Items          []wardrobe.Item `json:"items"`
	CompositeScore float64         `json:"compositeScore"`
	SubScores      SubScores       `json:"subScores"`
	Explanation    Explanation     `json:"explanation"`
	ColorHarmony   color.Metrics   `json:"colorHarmony"`
	Collage        Collage         `json:"collage"`
	Issues         []string        `json:"issues,omitempty"`
}

// Removal records why one stage dropped an item.
type Removal struct {
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}

// StageDebug captures counts and thresholds for one filter stage.
type StageDebug struct {
	Stage        string         `json:"stage"`
	InputCount   int            `json:"inputCount"`
	KeptCount    int            `json:"keptCount"`
	RemovedCount int            `json:"removedCount"`
	Details      map[string]any `json:"details,omitempty"`
}

// DebugSummary aggregates the per-request diagnostics surfaced to callers.
type DebugSummary struct {
	CandidateCount int                  `json:"candidateCount"`
	FilterSteps    []StageDebug         `json:"filterSteps"`
	Reasons        map[string][]Removal `json:"reasons,omitempty"`
	Generation     Diagnostics          `json:"generation"`
	Ranked         []RankedEntry        `json:"ranked,omitempty"`
	DailyContext   dayplan.DailyContext `json:"dailyContext"`
}

// RankedEntry is the compact per-outfit line in the debug summary.
type RankedEntry struct {
	Score     float64  `json:"score"`
	ItemIDs   []string `json:"itemIds"`
	ColorRule string   `json:"colorRule"`
}

// Response is the ranked multi-outfit recommendation result.
type Response struct {
	Outfits   []RankedOutfit `json:"outfits"`
	Rationale string         `json:"rationale"`
	Debug     DebugSummary   `json:"debug"`
}

// ComposeResponse is the legacy single-outfit result.
type ComposeResponse struct {
	Items        []wardrobe.Item    `json:"items"`
	Score        *Score             `json:"score,omitempty"`
	Collage      *Collage           `json:"collage,omitempty"`
	ColorHarmony HarmonyApplication `json:"colorHarmony"`
	Debug        DebugSummary       `json:"debug"`
}

// RecommendationEvent is recorded to the session event log after each request.
type RecommendationEvent struct {
	UserID      string    `json:"userId"`
	Mood        string    `json:"mood"`
	OutfitCount int       `json:"outfitCount"`
	TopScore    float64   `json:"topScore"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MoodCount is one trending mood counter.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int64  `json:"count"`
}

// EventRecorder persists recommendation events and trending mood counters.
// Recording is best-effort: failures must never fail a recommendation.
type EventRecorder interface {
	RecordRecommendation(ctx context.Context, event RecommendationEvent) error
	TrendingMoods(ctx context.Context, limit int) ([]MoodCount, error)
}
