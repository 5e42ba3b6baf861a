package ban

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/product-catalog/internal/obs"
	"github.com/rogerio-castellano/product-catalog/internal/redissvc"
)

const (
	DailyBanLogKey = "ratelimit:banlog:daily"
	strikePrefix   = "ratelimit:strikes:"
	banPrefix      = "ratelimit:ban:"
)

type BanLogEntry struct {
	Target  string    `json:"target"`
	Route   string    `json:"route"`
	Strikes int       `json:"strikes"`
	Time    time.Time `json:"time"`
}

// Service counts rate-limit strikes per client in Redis and bans clients that
// collect MaxStrikes of them within one ban window.
type Service struct {
	rdb        *redis.Client
	maxStrikes int
	duration   time.Duration
}

func NewService(rs *redissvc.RedisService, maxStrikes int, duration time.Duration) *Service {
	return &Service{
		rdb:        rs.Rdb(),
		maxStrikes: maxStrikes,
		duration:   duration,
	}
}

func (s *Service) IsBanned(ctx context.Context, target string) (bool, error) {
	n, err := s.rdb.Exists(ctx, banPrefix+target).Result()
	if err != nil {
		return false, fmt.Errorf("check ban for %s: %w", target, err)
	}
	return n > 0, nil
}

// AddStrike records one violation and reports whether it banned the target.
func (s *Service) AddStrike(ctx context.Context, target, route string) (bool, error) {
	key := strikePrefix + target
	strikes, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("add strike for %s: %w", target, err)
	}
	if strikes == 1 {
		if err := s.rdb.Expire(ctx, key, s.duration).Err(); err != nil {
			return false, fmt.Errorf("expire strikes for %s: %w", target, err)
		}
	}
	if int(strikes) < s.maxStrikes {
		return false, nil
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, banPrefix+target, strikes, s.duration)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("ban %s: %w", target, err)
	}

	s.logBanEvent(ctx, target, route, int(strikes))
	return true, nil
}

func (s *Service) logBanEvent(ctx context.Context, target, route string, strikes int) {
	entry := BanLogEntry{
		Target:  target,
		Route:   route,
		Strikes: strikes,
		Time:    time.Now().UTC(),
	}
	obs.Logger.Warn("client_banned", "target", target, "route", route, "strikes", strikes)

	data, _ := json.Marshal(entry)
	if err := s.rdb.RPush(ctx, DailyBanLogKey, data).Err(); err != nil {
		obs.Logger.Error("ban_log_write_failed", "error", err)
	}
}

// BanLog returns the recorded ban events, oldest first.
func (s *Service) BanLog(ctx context.Context) ([]BanLogEntry, error) {
	items, err := s.rdb.LRange(ctx, DailyBanLogKey, 0, -1).Result()
	if errors.Is(err, redis.Nil) {
		return []BanLogEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ban log: %w", err)
	}

	entries := make([]BanLogEntry, 0, len(items))
	for _, item := range items {
		var entry BanLogEntry
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// StartDailyBanSummary logs a ban summary every interval until ctx is done.
func (s *Service) StartDailyBanSummary(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SendDailyBanSummary(ctx)
		}
	}
}

// SendDailyBanSummary logs aggregated ban counts and clears the ban log.
func (s *Service) SendDailyBanSummary(ctx context.Context) {
	entries, err := s.BanLog(ctx)
	if err != nil {
		obs.Logger.Error("ban_summary_failed", "error", err)
		return
	}
	if len(entries) == 0 {
		return
	}
	_ = s.rdb.Del(ctx, DailyBanLogKey).Err() // clear after reading

	routeCounts := make(map[string]int)
	targetCounts := make(map[string]int)
	for _, entry := range entries {
		routeCounts[entry.Route]++
		targetCounts[entry.Target]++
	}
	obs.Logger.Info("ban_summary",
		"total", len(entries),
		"by_route", routeCounts,
		"by_target", targetCounts,
	)
}
