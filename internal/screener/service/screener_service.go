package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang-swing-screener/internal/entity"
	"golang-swing-screener/internal/screener/config"
	"golang-swing-screener/internal/screener/dto"
	"golang-swing-screener/internal/screener/pipeline"
	"golang-swing-screener/internal/screener/repository"
	"golang-swing-screener/pkg/common"
	"golang-swing-screener/pkg/logger"
	redisPkg "golang-swing-screener/pkg/redis"
	"golang-swing-screener/pkg/telegram"
	"golang-swing-screener/pkg/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/patrickmn/go-cache"
)

const latestResultTTL = 24 * time.Hour

// ScreenerService orchestrates one full screener run: fetch the snapshot,
// run the pipeline, cache the result and dispatch Early Expansion alerts.
type ScreenerService interface {
	Run(ctx context.Context) (*dto.ScreenerResult, error)
	Latest(ctx context.Context) (*dto.ScreenerResult, error)
}

type screenerService struct {
	cfg              *config.Config
	logger           *logger.Logger
	sheetRepo        repository.SheetRepository
	signalRepo       repository.ScreenerSignalRepository
	redisClient      *redisPkg.Client
	telegramNotifier telegram.Notifier
	pipeline         *pipeline.Pipeline
	alertCache       *cache.Cache
	alertCacheTTL    time.Duration

	mu     sync.RWMutex
	latest *dto.ScreenerResult
}

// NewScreenerService creates a new ScreenerService.
func NewScreenerService(
	cfg *config.Config,
	log *logger.Logger,
	sheetRepo repository.SheetRepository,
	signalRepo repository.ScreenerSignalRepository,
	redisClient *redisPkg.Client,
	telegramNotifier telegram.Notifier,
	pl *pipeline.Pipeline,
) ScreenerService {
	alertCacheTTL := 4 * time.Hour
	if cfg.Alerts.CacheDuration != "" {
		if parsed, err := time.ParseDuration(cfg.Alerts.CacheDuration); err == nil {
			alertCacheTTL = parsed
		}
	}

	return &screenerService{
		cfg:              cfg,
		logger:           log,
		sheetRepo:        sheetRepo,
		signalRepo:       signalRepo,
		redisClient:      redisClient,
		telegramNotifier: telegramNotifier,
		pipeline:         pl,
		alertCache:       cache.New(alertCacheTTL, 2*alertCacheTTL),
		alertCacheTTL:    alertCacheTTL,
	}
}

// Run executes one pipeline invocation over a fresh snapshot. A source load
// failure is terminal; no partial tables are produced.
func (s *screenerService) Run(ctx context.Context) (*dto.ScreenerResult, error) {
	raw, err := s.sheetRepo.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("screener run aborted: %w", err)
	}

	now := utils.TimeNowIST()
	result := s.pipeline.Run(raw, s.sheetRepo.Source(), now)
	result.Metadata.RunID = uuid.NewString()

	s.logger.Info("Screener run completed",
		logger.StringField("run_id", result.Metadata.RunID),
		logger.StringField("session", result.Metadata.MarketSession),
		logger.IntField("swing_rows", len(result.Swing.Rows)),
		logger.IntField("positional_rows", len(result.Positional.Rows)),
		logger.IntField("near_miss_rows", len(result.NearMiss.Rows)),
	)

	s.mu.Lock()
	s.latest = result
	s.mu.Unlock()

	s.cacheResult(ctx, result)
	s.dispatchAlerts(ctx, result)

	return result, nil
}

// Latest returns the most recent result, falling back to the Redis snapshot
// when this instance has not run yet.
func (s *screenerService) Latest(ctx context.Context) (*dto.ScreenerResult, error) {
	s.mu.RLock()
	result := s.latest
	s.mu.RUnlock()
	if result != nil {
		return result, nil
	}

	if s.redisClient != nil {
		payload, err := s.redisClient.Get(ctx, common.RedisKeyLatestResult).Result()
		if err == nil {
			var cached dto.ScreenerResult
			if err := json.Unmarshal([]byte(payload), &cached); err == nil {
				return &cached, nil
			}
			s.logger.Error("Failed to unmarshal cached screener result", logger.ErrorField(err))
		}
	}

	return nil, fmt.Errorf("no screener run available yet")
}

func (s *screenerService) cacheResult(ctx context.Context, result *dto.ScreenerResult) {
	if s.redisClient == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("Failed to marshal screener result", logger.ErrorField(err))
		return
	}
	if err := s.redisClient.Set(ctx, common.RedisKeyLatestResult, payload, latestResultTTL).Err(); err != nil {
		s.logger.Error("Failed to cache screener result", logger.ErrorField(err))
	}
}

// dispatchAlerts notifies on swing rows newly classified Early Expansion.
// Alert failures are logged and never fail the run.
func (s *screenerService) dispatchAlerts(ctx context.Context, result *dto.ScreenerResult) {
	if !s.cfg.Alerts.Enabled || s.telegramNotifier == nil {
		return
	}

	for _, signal := range result.EarlyExpansion {
		key := fmt.Sprintf(common.RedisKeyEarlyExpansionAlert, signal.Symbol)

		if _, found := s.alertCache.Get(key); found {
			continue
		}
		if s.redisClient != nil {
			exists, err := s.redisClient.Exists(ctx, key).Result()
			if err != nil {
				s.logger.Error("Failed to check alert dedup key", logger.ErrorField(err), logger.StringField("symbol", signal.Symbol))
				continue
			}
			if exists > 0 {
				s.alertCache.Set(key, true, s.alertCacheTTL)
				continue
			}
		}

		message := telegram.FormatEarlyExpansionAlert(signal, result.Metadata)
		if err := s.telegramNotifier.SendMessage(message); err != nil {
			s.logger.Error("Failed to send Early Expansion alert", logger.ErrorField(err), logger.StringField("symbol", signal.Symbol))
			continue
		}

		if s.signalRepo != nil {
			record := &entity.ScreenerSignal{
				RunID:      result.Metadata.RunID,
				Symbol:     signal.Symbol,
				MACDStatus: signal.MACDStatus,
				Score:      signal.Score,
				ADR:        signal.ADR,
				Liquidity:  signal.Liquidity,
				Flags:      pq.StringArray(signal.Flags),
			}
			if err := s.signalRepo.Create(ctx, record); err != nil {
				s.logger.Error("Failed to persist Early Expansion signal", logger.ErrorField(err), logger.StringField("symbol", signal.Symbol))
			}
		}

		s.alertCache.Set(key, true, s.alertCacheTTL)
		if s.redisClient != nil {
			if err := s.redisClient.Set(ctx, key, "1", s.alertCacheTTL).Err(); err != nil {
				s.logger.Error("Failed to set alert dedup key", logger.ErrorField(err), logger.StringField("symbol", signal.Symbol))
			}
		}

		s.logger.Info("Early Expansion alert sent",
			logger.StringField("symbol", signal.Symbol),
			logger.Float64Field("adr", signal.ADR),
			logger.Float64Field("liquidity", signal.Liquidity),
		)
	}
}
