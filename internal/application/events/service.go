package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"launchpad-backend/internal/application/txn"
	"launchpad-backend/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StreamKey is the Redis stream committed events are mirrored to.
const StreamKey = "launchpad:events"

// Publisher receives events after the transaction that produced them commits.
type Publisher interface {
	Publish(ctx context.Context, ev domain.ProposalEvent) error
}

type Service struct {
	DB        *gorm.DB
	Publisher Publisher
}

// Record appends an event inside tx and schedules publication for after commit.
func (s *Service) Record(tx *gorm.DB, hooks *txn.Hooks, proposalID uint64, eventType, actor string, at time.Time, data map[string]interface{}) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	ev := domain.ProposalEvent{
		ProposalID: proposalID,
		EventType:  eventType,
		Actor:      actor,
		EventData:  datatypes.JSON(b),
		OccurredAt: at,
	}
	if err := tx.Create(&ev).Error; err != nil {
		return err
	}
	if s.Publisher != nil {
		pub := s.Publisher
		hooks.AfterCommit(func() {
			if err := pub.Publish(context.Background(), ev); err != nil {
				log.Warn().Err(err).Uint64("proposal_id", ev.ProposalID).Str("event_type", ev.EventType).Msg("event publish failed")
			}
		})
	}
	return nil
}

// List returns the events of a proposal in the order they were recorded.
func (s *Service) List(ctx context.Context, proposalID uint64, offset, limit int) ([]domain.ProposalEvent, error) {
	var out []domain.ProposalEvent
	if limit <= 0 {
		return out, nil
	}
	err := s.DB.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&out).Error
	return out, err
}

// MaxFeedLimit caps one page of the global feed.
const MaxFeedLimit = 100

// Feed returns events across all proposals in recording order, optionally only those of
// eventType.
func (s *Service) Feed(ctx context.Context, eventType string, offset, limit int) ([]domain.ProposalEvent, error) {
	out := []domain.ProposalEvent{}
	if limit <= 0 {
		return out, nil
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	if offset < 0 {
		offset = 0
	}
	q := s.DB.WithContext(ctx).Order("id ASC")
	if eventType != "" {
		q = q.Where("event_type = ?", eventType)
	}
	err := q.Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// RedisPublisher mirrors events to a Redis stream.
type RedisPublisher struct {
	Client *redis.Client
	Stream string
	MaxLen int64
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{Client: rdb, Stream: StreamKey, MaxLen: 10000}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev domain.ProposalEvent) error {
	return p.Client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.Stream,
		MaxLen: p.MaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"id":          strconv.FormatUint(ev.ID, 10),
			"proposal_id": strconv.FormatUint(ev.ProposalID, 10),
			"event_type":  ev.EventType,
			"actor":       ev.Actor,
			"data":        string(ev.EventData),
			"occurred_at": ev.OccurredAt.UTC().Format(time.RFC3339),
		},
	}).Err()
}
