package redis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/Ph2006/sistema-orbit-sub006/internal/config"
	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

// WorkloadSource reads sector occupancy from a hash written by the shop-floor feed.
// Each field is a stage name, each value a decimal in [0,1].
type WorkloadSource struct {
	client *redis.Client
	key    string
	log    *slog.Logger
}

func New(ctx context.Context, cfg config.Redis, log *slog.Logger) (*WorkloadSource, error) {
	const op = "storage.redis.New"

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%s: ping %s: %w", op, cfg.Address, err)
	}

	return NewWithClient(client, cfg.WorkloadKey, log), nil
}

func NewWithClient(client *redis.Client, key string, log *slog.Logger) *WorkloadSource {
	return &WorkloadSource{client: client, key: key, log: log}
}

func (w *WorkloadSource) Close() error {
	return w.client.Close()
}

func (w *WorkloadSource) SectorWorkload(ctx context.Context, stages []string) (map[string]float64, error) {
	const op = "storage.redis.SectorWorkload"

	out := make(map[string]float64, len(stages))
	if len(stages) == 0 {
		return out, nil
	}

	vals, err := w.client.HMGet(ctx, w.key, stages...).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: hmget %s: %w", op, w.key, err)
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			w.log.Warn("skipping unparsable workload", slog.String("stage", stages[i]), slog.String("value", s))
			continue
		}
		out[stages[i]] = f
	}

	return out, nil
}

func (w *WorkloadSource) SaveSectorWorkload(ctx context.Context, list []storage.SectorWorkload) error {
	const op = "storage.redis.SaveSectorWorkload"

	if len(list) == 0 {
		return nil
	}

	fields := make([]any, 0, len(list)*2)
	for _, sw := range list {
		fields = append(fields, sw.StageName, strconv.FormatFloat(sw.Workload, 'f', -1, 64))
	}

	if err := w.client.HSet(ctx, w.key, fields...).Err(); err != nil {
		return fmt.Errorf("%s: hset %s: %w", op, w.key, err)
	}

	return nil
}
