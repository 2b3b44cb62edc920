package stylist

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/yanqian/outfit-concierge/internal/domain/color"
	"github.com/yanqian/outfit-concierge/internal/domain/dayplan"
	"github.com/yanqian/outfit-concierge/internal/domain/mood"
	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
	apperrors "github.com/yanqian/outfit-concierge/pkg/errors"
	"github.com/yanqian/outfit-concierge/pkg/util"
)

const defaultTopN = 3

// Config tunes the recommendation service.
type Config struct {
	TopN int `yaml:"top_n"`
}

// Service is the outfit recommendation engine surface.
type Service interface {
	Recommend(ctx context.Context, req Request) (Response, error)
	Compose(ctx context.Context, req Request) (ComposeResponse, error)
	Trending(ctx context.Context, limit int) ([]MoodCount, error)
}

type service struct {
	repo   wardrobe.Repository
	moods  *mood.Catalog
	colors *color.Engine
	gen    *Generator
	events EventRecorder
	topN   int
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the recommendation engine. events may be nil, in which case
// no usage events are recorded.
func NewService(cfg Config, repo wardrobe.Repository, moods *mood.Catalog, colors *color.Engine, events EventRecorder, logger *slog.Logger) Service {
	topN := cfg.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	return &service{
		repo:   repo,
		moods:  moods,
		colors: colors,
		gen:    NewGenerator(colors),
		events: events,
		topN:   topN,
		logger: logger.With("component", "stylist.service"),
		now:    util.NowUTC,
	}
}

// Recommend runs the full pipeline and returns the top-N ranked outfits.
func (s *service) Recommend(ctx context.Context, req Request) (Response, error) {
	pool, profile, dctx, debug, err := s.prepare(ctx, req)
	if err != nil {
		return Response{}, err
	}

	generation := s.gen.Generate(pool, profile, ModeRankedMulti)
	debug.Generation = generation.Diagnostics
	debug.CandidateCount = len(generation.Outfits)

	ranked := s.rank(generation.Outfits, dctx, profile)
	for _, outfit := range ranked {
		debug.Ranked = append(debug.Ranked, RankedEntry{
			Score:     outfit.CompositeScore,
			ItemIDs:   sortedItemIDs(outfit.Items),
			ColorRule: outfit.ColorHarmony.RuleApplied,
		})
	}

	topN := req.TopN
	if topN <= 0 {
		topN = s.topN
	}
	if topN > len(ranked) {
		topN = len(ranked)
	}
	top := ranked[:topN]

	response := Response{
		Outfits:   top,
		Rationale: s.rationale(len(top), dctx),
		Debug:     debug,
	}
	s.recordEvent(ctx, req, profile, top)
	s.logger.Info("recommendation computed",
		"user_id", req.UserID,
		"mood", profile.Name,
		"candidates", debug.CandidateCount,
		"returned", len(top),
	)
	return response, nil
}

// Compose runs the legacy single-outfit flow: best harmony triplet, then
// post-hoc pruning of optional items that clash with the chosen colors.
func (s *service) Compose(ctx context.Context, req Request) (ComposeResponse, error) {
	pool, profile, dctx, debug, err := s.prepare(ctx, req)
	if err != nil {
		return ComposeResponse{}, err
	}

	generation := s.gen.Generate(pool, profile, ModeSingleBest)
	debug.Generation = generation.Diagnostics
	debug.CandidateCount = len(generation.Outfits)
	if len(generation.Outfits) == 0 {
		s.logger.Info("no viable outfit", "user_id", req.UserID, "reason", generation.Diagnostics.Reason)
		return ComposeResponse{Items: []wardrobe.Item{}, Debug: debug}, nil
	}

	applied := s.gen.ApplyColorHarmony(generation.Outfits[0], profile)
	metrics := s.colors.CalculateMetrics(flattenColors(applied.Items))
	score := ScoreOutfit(applied.Items, dctx, profile, metrics)
	collage := BuildCollage(applied.Items, profile)

	s.recordEvent(ctx, req, profile, nil)
	return ComposeResponse{
		Items:        applied.Items,
		Score:        &score,
		Collage:      &collage,
		ColorHarmony: applied,
		Debug:        debug,
	}, nil
}

// Trending returns the most requested moods, best-effort.
func (s *service) Trending(ctx context.Context, limit int) ([]MoodCount, error) {
	if s.events == nil {
		return []MoodCount{}, nil
	}
	counts, err := s.events.TrendingMoods(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap("event_log_error", "failed to load trending moods", err)
	}
	return counts, nil
}

// prepare loads the wardrobe, resolves the mood and context, and runs the
// filter pipeline plus constraint handling shared by both flows.
func (s *service) prepare(ctx context.Context, req Request) ([]wardrobe.Item, mood.Profile, dayplan.DailyContext, DebugSummary, error) {
	if req.UserID == "" {
		return nil, mood.Profile{}, dayplan.DailyContext{}, DebugSummary{}, apperrors.Wrap("invalid_input", "user_id cannot be empty", nil)
	}

	profile := s.moods.Lookup(req.Mood)

	items, err := s.repo.ListItems(ctx, req.UserID)
	if err != nil {
		return nil, mood.Profile{}, dayplan.DailyContext{}, DebugSummary{}, apperrors.Wrap("repository_error", "failed to list wardrobe items", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ItemID < items[j].ItemID })

	schedule := dayplan.DefaultSchedule()
	switch {
	case req.Schedule != nil:
		schedule = *req.Schedule
	case req.Context != nil:
		// a bare daily context carries the same formality/movement signals
		schedule.Formality = req.Context.FormalityRequirement
		schedule.Movement = req.Context.MovementRequirement
	}
	weather := dayplan.DefaultWeather()
	if req.Weather != nil {
		weather = *req.Weather
	}
	var dctx dayplan.DailyContext
	if req.Context != nil {
		dctx = *req.Context
	} else {
		dctx = dayplan.DefaultContext(schedule)
		dctx.SpecialConstraints = req.Constraints
	}

	pipeline := ApplyFilters(items, schedule, weather, profile)

	excluded := make(map[string]struct{}, len(req.Constraints))
	for _, id := range req.Constraints {
		excluded[id] = struct{}{}
	}
	pool := make([]wardrobe.Item, 0, len(pipeline.Items))
	for _, item := range pipeline.Items {
		if _, skip := excluded[item.ItemID]; !skip {
			pool = append(pool, item)
		}
	}
	pool, applied := ApplyConstraintHints(pool, dctx.SpecialConstraints)

	debug := DebugSummary{
		FilterSteps:  pipeline.Steps,
		Reasons:      pipeline.Reasons,
		DailyContext: dctx,
	}
	debug.Generation.ConstraintsApplied = applied
	return pool, profile, dctx, debug, nil
}

// rank scores every candidate and sorts by composite descending, ties broken
// by ascending sorted item-id lists.
func (s *service) rank(outfits [][]wardrobe.Item, dctx dayplan.DailyContext, profile mood.Profile) []RankedOutfit {
	ranked := make([]RankedOutfit, 0, len(outfits))
	for _, items := range outfits {
		metrics := s.colors.CalculateMetrics(flattenColors(items))
		score := ScoreOutfit(items, dctx, profile, metrics)
		ranked = append(ranked, RankedOutfit{
			Items:          items,
			CompositeScore: score.Composite,
			SubScores:      score.Sub,
			Explanation:    score.Explanation,
			ColorHarmony:   metrics,
			Collage:        BuildCollage(items, profile),
			Issues:         CritiqueOutfit(items, dctx),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].CompositeScore != ranked[j].CompositeScore {
			return ranked[i].CompositeScore > ranked[j].CompositeScore
		}
		return compareIDLists(sortedItemIDs(ranked[i].Items), sortedItemIDs(ranked[j].Items)) < 0
	})
	return ranked
}

func (s *service) rationale(count int, dctx dayplan.DailyContext) string {
	if count == 0 {
		return "No viable outfit for the current wardrobe and context."
	}
	return fmt.Sprintf("Generated %d outfits for a %s day with %s movement.",
		count, dctx.FormalityRequirement, dctx.MovementRequirement)
}

func (s *service) recordEvent(ctx context.Context, req Request, profile mood.Profile, top []RankedOutfit) {
	if s.events == nil {
		return
	}
	event := RecommendationEvent{
		UserID:      req.UserID,
		Mood:        profile.Name,
		OutfitCount: len(top),
		CreatedAt:   s.now(),
	}
	if len(top) > 0 {
		event.TopScore = top[0].CompositeScore
	}
	if err := s.events.RecordRecommendation(ctx, event); err != nil {
		s.logger.Warn("failed to record recommendation event", "user_id", req.UserID, "error", err)
	}
}

func flattenColors(items []wardrobe.Item) []string {
	var colors []string
	for _, item := range items {
		colors = append(colors, item.Colors...)
	}
	return colors
}
