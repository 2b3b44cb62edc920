package stylist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-concierge/internal/domain/color"
	"github.com/yanqian/outfit-concierge/internal/domain/dayplan"
	"github.com/yanqian/outfit-concierge/internal/domain/mood"
	"github.com/yanqian/outfit-concierge/internal/domain/taxonomy"
	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
	apperrors "github.com/yanqian/outfit-concierge/pkg/errors"
)

type stubRepository struct {
	items []wardrobe.Item
	err   error
}

func (s *stubRepository) CreateItem(context.Context, wardrobe.Item) error { return nil }

func (s *stubRepository) GetItem(context.Context, string, string) (wardrobe.Item, bool, error) {
	return wardrobe.Item{}, false, nil
}

func (s *stubRepository) ListItems(context.Context, string) ([]wardrobe.Item, error) {
	return s.items, s.err
}

func (s *stubRepository) SearchItems(context.Context, string, wardrobe.Filters) ([]wardrobe.Item, error) {
	return s.items, s.err
}

func (s *stubRepository) UpdateItem(context.Context, wardrobe.Item) error { return nil }

func (s *stubRepository) DeleteItem(context.Context, string, string) (bool, error) {
	return false, nil
}

type stubRecorder struct {
	events   []RecommendationEvent
	trending []MoodCount
	err      error
}

func (s *stubRecorder) RecordRecommendation(_ context.Context, event RecommendationEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *stubRecorder) TrendingMoods(context.Context, int) ([]MoodCount, error) {
	return s.trending, s.err
}

func newTestService(repo wardrobe.Repository, events EventRecorder) Service {
	tax := taxonomy.Default()
	return NewService(
		Config{TopN: 3},
		repo,
		mood.NewCatalog(tax),
		color.NewEngine(tax),
		events,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func businessWardrobe() []wardrobe.Item {
	return []wardrobe.Item{
		fixtureItem("blazer-1", taxonomy.CategoryTop, "blazer", []string{"navy"}, []string{"wool"}, []string{"business"}),
		fixtureItem("trousers-1", taxonomy.CategoryBottom, "trousers", []string{"black"}, []string{"wool"}, []string{"business"}),
		fixtureItem("shoes-1", taxonomy.CategoryShoes, "loafers", []string{"black"}, []string{"leather"}, []string{"business", "formal"}),
	}
}

func TestRecommendBusinessScenario(t *testing.T) {
	recorder := &stubRecorder{}
	svc := newTestService(&stubRepository{items: businessWardrobe()}, recorder)

	resp, err := svc.Recommend(context.Background(), Request{
		UserID: "user-1",
		Mood:   "neutral",
		Context: &dayplan.DailyContext{
			FormalityRequirement: dayplan.FormalityBusiness,
			MovementRequirement:  dayplan.LevelLow,
			WarmthRequirement:    dayplan.LevelMedium,
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Outfits)

	best := resp.Outfits[0]
	require.GreaterOrEqual(t, best.SubScores.Formality, 0.8)
	require.NotContains(t, best.Issues, IssueOpenFootwearWet)
	require.NotContains(t, best.Issues, IssueMissingBusinessStyle)

	require.Len(t, recorder.events, 1)
	require.Equal(t, "neutral", recorder.events[0].Mood)
	require.Equal(t, best.CompositeScore, recorder.events[0].TopScore)
}

func TestRecommendColdRainyScenarioYieldsNoCandidates(t *testing.T) {
	items := []wardrobe.Item{
		fixtureItem("sandals-1", taxonomy.CategoryShoes, "sandals", []string{"brown"}, []string{"canvas"}, []string{"casual"}),
		fixtureItem("top-1", taxonomy.CategoryTop, "tee", []string{"white"}, []string{"thin cotton"}, []string{"casual"}),
	}
	svc := newTestService(&stubRepository{items: items}, nil)

	resp, err := svc.Recommend(context.Background(), Request{
		UserID:  "user-1",
		Weather: &dayplan.WeatherProfile{TemperatureRange: "cold", RainSensitivity: dayplan.RainHeavy},
		Context: &dayplan.DailyContext{
			FormalityRequirement: dayplan.FormalityInformal,
			MovementRequirement:  dayplan.LevelLow,
			WarmthRequirement:    dayplan.LevelHigh,
			WeatherRiskLevel:     dayplan.LevelHigh,
		},
	})
	require.NoError(t, err)
	require.Empty(t, resp.Outfits)
	require.Equal(t, ReasonMissingRequired, resp.Debug.Generation.Reason)
	require.Contains(t, resp.Debug.Reasons, "sandals-1")
	require.Contains(t, resp.Debug.Reasons, "top-1")
}

func TestRecommendRankingIsStable(t *testing.T) {
	items := []wardrobe.Item{
		fixtureItem("top-1", taxonomy.CategoryTop, "shirt", []string{"gray"}, nil, []string{"casual"}),
		fixtureItem("top-2", taxonomy.CategoryTop, "tee", []string{"red"}, nil, []string{"casual"}),
		fixtureItem("bottom-1", taxonomy.CategoryBottom, "jeans", []string{"gray"}, nil, []string{"casual"}),
		fixtureItem("bottom-2", taxonomy.CategoryBottom, "chinos", []string{"beige"}, nil, []string{"casual"}),
		fixtureItem("shoes-1", taxonomy.CategoryShoes, "sneakers", []string{"gray"}, nil, []string{"casual"}),
	}
	svc := newTestService(&stubRepository{items: items}, nil)
	req := Request{UserID: "user-1", Mood: "neutral", TopN: 4}

	first, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, first.Outfits, second.Outfits)

	for i := 1; i < len(first.Outfits); i++ {
		require.GreaterOrEqual(t, first.Outfits[i-1].CompositeScore, first.Outfits[i].CompositeScore)
	}
}

func TestRecommendConstraintsExcludeItems(t *testing.T) {
	items := []wardrobe.Item{
		fixtureItem("top-1", taxonomy.CategoryTop, "shirt", []string{"white"}, nil, []string{"casual"}),
		fixtureItem("bottom-1", taxonomy.CategoryBottom, "jeans", []string{"blue"}, nil, []string{"casual"}),
		fixtureItem("shoes-1", taxonomy.CategoryShoes, "sneakers", []string{"white"}, nil, []string{"casual"}),
	}
	svc := newTestService(&stubRepository{items: items}, nil)
	resp, err := svc.Recommend(context.Background(), Request{
		UserID:      "user-1",
		Mood:        "neutral",
		Constraints: []string{"top-1"},
	})
	require.NoError(t, err)
	// the only top is excluded: generation has nothing to build from
	require.Empty(t, resp.Outfits)
	require.Equal(t, ReasonMissingRequired, resp.Debug.Generation.Reason)
}

func TestRecommendValidation(t *testing.T) {
	svc := newTestService(&stubRepository{}, nil)
	_, err := svc.Recommend(context.Background(), Request{})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	svc = newTestService(&stubRepository{err: errors.New("db down")}, nil)
	_, err = svc.Recommend(context.Background(), Request{UserID: "user-1"})
	require.True(t, apperrors.IsCode(err, "repository_error"))
}

func TestRecommendSurvivesRecorderFailure(t *testing.T) {
	svc := newTestService(&stubRepository{items: businessWardrobe()}, &stubRecorder{err: errors.New("log down")})
	resp, err := svc.Recommend(context.Background(), Request{
		UserID: "user-1",
		Mood:   "neutral",
		Schedule: &dayplan.ScheduleProfile{
			Formality: dayplan.FormalityBusiness,
			Movement:  dayplan.LevelLow,
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Outfits)
}

func TestComposeSingleOutfitWithHarmonyPruning(t *testing.T) {
	items := businessWardrobe()
	items = append(items,
		fixtureItem("scarf-1", taxonomy.CategoryAccessory, "scarf", []string{"orange"}, nil, []string{"business"}),
	)
	svc := newTestService(&stubRepository{items: items}, nil)

	resp, err := svc.Compose(context.Background(), Request{
		UserID: "user-1",
		Mood:   "neutral",
		Context: &dayplan.DailyContext{
			FormalityRequirement: dayplan.FormalityBusiness,
			MovementRequirement:  dayplan.LevelLow,
			WarmthRequirement:    dayplan.LevelMedium,
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 3)
	// the orange scarf clashes with the chosen colors and is pruned
	require.Equal(t, []string{"scarf-1"}, resp.ColorHarmony.RemovedIDs)
	require.NotNil(t, resp.Score)
	require.NotNil(t, resp.Collage)
	require.Equal(t, "#F5F5F5", resp.Collage.BackgroundColor)
}

func TestComposeEmptyWardrobe(t *testing.T) {
	svc := newTestService(&stubRepository{}, nil)
	resp, err := svc.Compose(context.Background(), Request{UserID: "user-1"})
	require.NoError(t, err)
	require.Empty(t, resp.Items)
	require.Nil(t, resp.Score)
}

func TestTrending(t *testing.T) {
	recorder := &stubRecorder{trending: []MoodCount{{Mood: "urban", Count: 4}}}
	svc := newTestService(&stubRepository{}, recorder)
	counts, err := svc.Trending(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, int64(4), counts[0].Count)

	svc = newTestService(&stubRepository{}, nil)
	counts, err = svc.Trending(context.Background(), 5)
	require.NoError(t, err)
	require.Empty(t, counts)
}
