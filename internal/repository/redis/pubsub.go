package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CourtChange tells listeners that a court's slots or bookings moved.
type CourtChange struct {
	Type       string `json:"type"`
	CourtID    int64  `json:"court_id"`
	FacilityID int64  `json:"facility_id"`
	TsUnix     int64  `json:"ts_unix"`
}

type CourtsPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewCourtsPubSub(rdb *redis.Client) *CourtsPubSub {
	return &CourtsPubSub{
		rdb:     rdb,
		channel: ChannelCourtsChanged(),
	}
}

func (p *CourtsPubSub) PublishCourtChanged(ctx context.Context, kind string, courtID, facilityID int64) error {
	msg := CourtChange{
		Type:       kind,
		CourtID:    courtID,
		FacilityID: facilityID,
		TsUnix:     time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

// Subscribe delivers changes to handler until ctx is done.
func (p *CourtsPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, ch CourtChange)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev CourtChange
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil &&
				ev.CourtID != 0 {
				handler(ctx, ev)
			}
		}
	}
}
