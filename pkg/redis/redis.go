package redis

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const RecoveryQueueKey = "lead:recovery"

// RecoveryRecord is a finalised lead the CRM rejected, kept for manual replay.
type RecoveryRecord struct {
	Identity string             `json:"identity"`
	Fields   map[string]*string `json:"fields"`
	Reason   string             `json:"reason"`
	FailedAt time.Time          `json:"failed_at"`
}

type IRedis interface {
	PushRecovery(ctx context.Context, record RecoveryRecord) error
	ListRecovery(ctx context.Context, limit int64) ([]RecoveryRecord, error)
}

type redisClient struct {
	client *redis.Client
}

// New returns nil when REDIS_ADDRESS is unset; callers treat nil as disabled.
func New() IRedis {
	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		logrus.Info("REDIS_ADDRESS not set, lead recovery queue disabled")
		return nil
	}

	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return NewWithClient(client)
}

func NewWithClient(client *redis.Client) IRedis {
	return &redisClient{client: client}
}

func (r *redisClient) PushRecovery(ctx context.Context, record RecoveryRecord) error {
	payload, err := jsoniter.Marshal(record)
	if err != nil {
		return err
	}

	logrus.Debug(fmt.Sprintf("Pushing recovery record for %s", record.Identity))
	if err := r.client.RPush(ctx, RecoveryQueueKey, payload).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error pushing recovery record for %s: %v", record.Identity, err))
		return err
	}
	return nil
}

func (r *redisClient) ListRecovery(ctx context.Context, limit int64) ([]RecoveryRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	values, err := r.client.LRange(ctx, RecoveryQueueKey, 0, limit-1).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error listing recovery records: %v", err))
		return nil, err
	}

	records := make([]RecoveryRecord, 0, len(values))
	for _, v := range values {
		var record RecoveryRecord
		if err := jsoniter.UnmarshalFromString(v, &record); err != nil {
			logrus.Warn(fmt.Sprintf("Skipping unreadable recovery record: %v", err))
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
