package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/outfit-concierge/internal/domain/stylist"
)

// ValkeyRecorder persists recommendation events and trending mood counters in
// a Valkey-compatible database.
type ValkeyRecorder struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyRecorder constructs a recorder. Events expire after ttl; a zero ttl
// keeps them forever.
func NewValkeyRecorder(client valkey.Client, prefix string, ttl time.Duration) *ValkeyRecorder {
	if prefix == "" {
		prefix = "outfit"
	}
	return &ValkeyRecorder{client: client, prefix: prefix, ttl: ttl}
}

func (r *ValkeyRecorder) RecordRecommendation(ctx context.Context, event stylist.RecommendationEvent) error {
	if event.Mood != "" {
		cmd := r.client.B().Zincrby().Key(r.trendingKey()).Increment(1).Member(event.Mood).Build()
		if err := r.client.Do(ctx, cmd).Error(); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	builder := r.client.B().Set().Key(r.eventKey(event)).Value(string(payload))
	var cmd valkey.Completed
	if r.ttl > 0 {
		ttl := r.ttl
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return r.client.Do(ctx, cmd).Error()
}

func (r *ValkeyRecorder) TrendingMoods(ctx context.Context, limit int) ([]stylist.MoodCount, error) {
	if limit <= 0 {
		limit = 10
	}
	resp := r.client.Do(ctx, r.client.B().Zrevrange().Key(r.trendingKey()).Start(0).Stop(int64(limit-1)).Withscores().Build())
	arr, err := resp.ToArray()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]stylist.MoodCount, 0, len(arr))
	for i := 0; i < len(arr); {
		var (
			member string
			score  float64
		)
		if tuple, tupleErr := arr[i].ToArray(); tupleErr == nil && len(tuple) == 2 {
			// RESP3 returns [member, score] per element
			if member, err = tuple[0].ToString(); err != nil {
				if valkey.IsValkeyNil(err) {
					i++
					continue
				}
				return nil, err
			}
			if score, err = tuple[1].ToFloat64(); err != nil {
				return nil, err
			}
			i++
		} else {
			// RESP2 returns a flat alternating array.
			if i+1 >= len(arr) {
				break
			}
			if member, err = arr[i].ToString(); err != nil {
				if valkey.IsValkeyNil(err) {
					i += 2
					continue
				}
				return nil, err
			}
			if score, err = arr[i+1].ToFloat64(); err != nil {
				return nil, err
			}
			i += 2
		}
		out = append(out, stylist.MoodCount{Mood: member, Count: int64(score)})
	}
	return out, nil
}

func (r *ValkeyRecorder) trendingKey() string {
	return fmt.Sprintf("%s:trending:moods", r.prefix)
}

func (r *ValkeyRecorder) eventKey(event stylist.RecommendationEvent) string {
	return fmt.Sprintf("%s:event:%s:%d", r.prefix, event.UserID, event.CreatedAt.UnixNano())
}

var _ stylist.EventRecorder = (*ValkeyRecorder)(nil)
