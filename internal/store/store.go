package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Checker-Finance/rates-engine/pkg/model"
)

// Store defines the contract for caching and persisting pricing results.
type Store interface {
	RecordPricingEvent(ctx context.Context, quote model.PricedQuote) error
	RecordValidationEvent(ctx context.Context, summary model.ValidationSummary) error
	CacheQuote(ctx context.Context, quote model.PricedQuote, ttl time.Duration) error
	GetCachedQuote(ctx context.Context, requestID string) (*model.PricedQuote, error)
	GetRecentQuotes(ctx context.Context, clientID string, limit int) ([]model.PricedQuote, error)
	GetValidationEvent(ctx context.Context, requestID string) (*model.ValidationSummary, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, dest any) error
	HealthCheck(ctx context.Context) error
	Close() error
}

type HybridStore struct {
	redis  *redis.Client
	PG     *pgxpool.Pool
	logger *zap.Logger
}

type PGPoolConfig struct {
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

// NewHybrid creates a Redis-first, Postgres-backed store.
func NewHybrid(redisAddr string, redisDB int, redisPass, pgURL string, pgPoolConfig PGPoolConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		DB:       redisDB,
		Password: redisPass,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	var pgPool *pgxpool.Pool
	if pgURL != "" {
		cfg, err := pgxpool.ParseConfig(pgURL)
		if err != nil {
			return nil, fmt.Errorf("invalid pg config: %w", err)
		}
		if pgPoolConfig.MaxConns > 0 {
			cfg.MaxConns = pgPoolConfig.MaxConns
		}
		if pgPoolConfig.MinConns > 0 {
			cfg.MinConns = pgPoolConfig.MinConns
		}
		if pgPoolConfig.MaxConnLifetime > 0 {
			cfg.MaxConnLifetime = pgPoolConfig.MaxConnLifetime
		}
		if pgPoolConfig.MaxConnIdleTime > 0 {
			cfg.MaxConnIdleTime = pgPoolConfig.MaxConnIdleTime
		}
		if pgPoolConfig.HealthCheckPeriod > 0 {
			cfg.HealthCheckPeriod = pgPoolConfig.HealthCheckPeriod
		}
		pgPool, err = pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
	}

	return &HybridStore{redis: rdb, PG: pgPool, logger: logger}, nil
}

// RecordPricingEvent inserts an immutable event into rates.pricing_event.
func (s *HybridStore) RecordPricingEvent(ctx context.Context, quote model.PricedQuote) error {
	if s.PG == nil {
		return nil
	}
	_, err := s.PG.Exec(ctx, `
		INSERT INTO rates.pricing_event (
			request_id, client_id, swaption_kind, style,
			notional, strike, forward_rate, volatility,
			time_to_expiry, price, annuity, priced_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
	`, quote.RequestID, quote.ClientID, quote.SwaptionKind, quote.Style,
		quote.Notional, quote.Strike, quote.ForwardRate, quote.Volatility,
		quote.TimeToExpiry, quote.Price, quote.Annuity)
	if err != nil {
		s.logger.Error("store.pg.insert_pricing_event_failed", zap.Error(err))
	}
	return err
}

// RecordValidationEvent inserts the outcome of a validation pass into
// rates.validation_event, with the full finding list as JSONB.
func (s *HybridStore) RecordValidationEvent(ctx context.Context, summary model.ValidationSummary) error {
	if s.PG == nil {
		return nil
	}
	issues, err := json.Marshal(summary.Issues)
	if err != nil {
		return err
	}
	_, err = s.PG.Exec(ctx, `
		INSERT INTO rates.validation_event (
			request_id, valid, error_count, warning_count, issues, checked_at
		)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, summary.RequestID, summary.Valid, summary.Errors, summary.Warnings, issues)
	if err != nil {
		s.logger.Error("store.pg.insert_validation_event_failed", zap.Error(err))
	}
	return err
}

// CacheQuote stores a priced quote in Redis under quote:<request_id>.
func (s *HybridStore) CacheQuote(ctx context.Context, quote model.PricedQuote, ttl time.Duration) error {
	return s.SetJSON(ctx, "quote:"+quote.RequestID, quote, ttl)
}

// GetCachedQuote returns the cached quote for a request, or nil on a miss.
func (s *HybridStore) GetCachedQuote(ctx context.Context, requestID string) (*model.PricedQuote, error) {
	data, err := s.redis.Get(ctx, "quote:"+requestID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var quote model.PricedQuote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (s *HybridStore) GetRecentQuotes(ctx context.Context, clientID string, limit int) ([]model.PricedQuote, error) {
	if s.PG == nil {
		return nil, fmt.Errorf("postgres unavailable")
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.PG.Query(ctx, `
		SELECT request_id, client_id, swaption_kind, style,
		       notional, strike, forward_rate, volatility,
		       time_to_expiry, price, annuity, priced_at
		FROM rates.pricing_event
		WHERE ($1 = '' OR client_id = $1)
		ORDER BY priced_at DESC
		LIMIT $2;
	`, clientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []model.PricedQuote
	for rows.Next() {
		var q model.PricedQuote
		if err := rows.Scan(&q.RequestID, &q.ClientID, &q.SwaptionKind, &q.Style,
			&q.Notional, &q.Strike, &q.ForwardRate, &q.Volatility,
			&q.TimeToExpiry, &q.Price, &q.Annuity, &q.PricedAt); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// GetValidationEvent returns the stored validation outcome for a request.
func (s *HybridStore) GetValidationEvent(ctx context.Context, requestID string) (*model.ValidationSummary, error) {
	if s.PG == nil {
		return nil, fmt.Errorf("postgres unavailable")
	}
	const q = `
		SELECT request_id, valid, error_count, warning_count, issues, checked_at
		FROM rates.validation_event
		WHERE request_id = $1
		ORDER BY checked_at DESC
		LIMIT 1;
	`

	row := s.PG.QueryRow(ctx, q, requestID)

	var summary model.ValidationSummary
	var issues []byte
	if err := row.Scan(&summary.RequestID, &summary.Valid, &summary.Errors,
		&summary.Warnings, &issues, &summary.CheckedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetValidationEvent no rows: %w", err)
		}
		return nil, fmt.Errorf("GetValidationEvent scan failed: %w", err)
	}
	if err := json.Unmarshal(issues, &summary.Issues); err != nil {
		return nil, err
	}

	return &summary, nil
}

func (s *HybridStore) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, key, data, ttl).Err()
}

func (s *HybridStore) GetJSON(ctx context.Context, key string, dest any) error {
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (s *HybridStore) HealthCheck(ctx context.Context) error {
	if s.redis == nil {
		return fmt.Errorf("redis not initialized")
	}
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	if s.PG != nil {
		if err := s.PG.Ping(ctx); err != nil {
			return fmt.Errorf("postgres ping failed: %w", err)
		}
	}
	return nil
}

func (s *HybridStore) Close() error {
	if s.PG != nil {
		s.PG.Close()
	}
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}
