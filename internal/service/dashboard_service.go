package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/smitedu/institute-backend/internal/config"
	"github.com/smitedu/institute-backend/internal/model"
	"github.com/smitedu/institute-backend/internal/repository"
)

type dashboardStore interface {
	GetSummary(ctx context.Context) (*repository.DashboardSummary, error)
}

type recentNotificationLister interface {
	ListRecent(ctx context.Context) ([]model.Notification, error)
}

// DashboardData is the admin dashboard payload: counts and money totals
// as of a single snapshot, plus the recent notification feed.
type DashboardData struct {
	Summary             *repository.DashboardSummary `json:"summary"`
	RecentNotifications []model.Notification         `json:"recent_notifications"`
}

// DashboardService assembles the admin dashboard, cached in Redis for a
// short TTL so bursts of dashboard loads cost one set of queries.
type DashboardService struct {
	repo          dashboardStore
	notifications recentNotificationLister
	rdb           *redis.Client
	cfg           *config.Config
	log           zerolog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo dashboardStore, notifications recentNotificationLister, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *DashboardService {
	return &DashboardService{repo: repo, notifications: notifications, rdb: rdb, cfg: cfg, log: log}
}

// GetDashboard returns the dashboard payload, serving from cache when the
// snapshot is fresh. Cache failures fall through to the database.
func (s *DashboardService) GetDashboard(ctx context.Context) (*DashboardData, error) {
	cacheKey := config.CacheKey.DashboardMetricsKey()

	cached, err := s.rdb.Get(ctx, cacheKey).Result()
	if err == nil {
		data := &DashboardData{}
		if err := json.Unmarshal([]byte(cached), data); err == nil {
			return data, nil
		}
		s.log.Warn().Msg("Discarding undecodable dashboard cache entry")
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Dashboard cache read failed")
	}

	data, err := s.buildDashboard(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(data); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, payload, s.cfg.DashboardCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Dashboard cache write failed")
		}
	}

	return data, nil
}

func (s *DashboardService) buildDashboard(ctx context.Context) (*DashboardData, error) {
	summary, err := s.repo.GetSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}

	// Amounts are constrained positive at the source, but a derived metric
	// must never surface negative regardless of what the rows hold.
	if summary.TotalRevenue < 0 {
		summary.TotalRevenue = 0
	}
	if summary.PendingAmount < 0 {
		summary.PendingAmount = 0
	}

	recent, err := s.notifications.ListRecent(ctx)
	if err != nil {
		return nil, fmt.Errorf("recent notifications: %w", err)
	}

	return &DashboardData{Summary: summary, RecentNotifications: recent}, nil
}
