package eventlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-concierge/internal/domain/stylist"
)

func TestMemoryRecorderTrending(t *testing.T) {
	recorder := NewMemoryRecorder()
	ctx := context.Background()
	for _, mood := range []string{"urban", "urban", "happy", "neutral", "urban", "happy"} {
		require.NoError(t, recorder.RecordRecommendation(ctx, stylist.RecommendationEvent{UserID: "u", Mood: mood}))
	}

	counts, err := recorder.TrendingMoods(ctx, 2)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	require.Equal(t, stylist.MoodCount{Mood: "urban", Count: 3}, counts[0])
	require.Equal(t, stylist.MoodCount{Mood: "happy", Count: 2}, counts[1])

	require.Len(t, recorder.Events(), 6)
}
