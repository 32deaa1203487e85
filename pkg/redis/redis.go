package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// IRedis backs the two short-lived caches the command service needs: the
// pending-confirmation session per device, and a cached copy of the
// device's contact list so the extractor does not hit Postgres on every
// utterance.
type IRedis interface {
	SetPendingAction(ctx context.Context, deviceID string, payload string, expiration time.Duration) error
	GetPendingAction(ctx context.Context, deviceID string) (string, error)
	DeletePendingAction(ctx context.Context, deviceID string) error
	SetContactCache(ctx context.Context, deviceID string, payload string, expiration time.Duration) error
	GetContactCache(ctx context.Context, deviceID string) (string, error)
	InvalidateContactCache(ctx context.Context, deviceID string) error
}

var ErrNotFound = errors.New("key not found")

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
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

	return &redisClient{client: client}
}

func pendingKey(deviceID string) string {
	return "pending_action:" + deviceID
}

func contactsKey(deviceID string) string {
	return "contacts:" + deviceID
}

func (r *redisClient) SetPendingAction(ctx context.Context, deviceID string, payload string, expiration time.Duration) error {
	if err := r.client.Set(ctx, pendingKey(deviceID), payload, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error setting pending action for device %s: %v", deviceID, err))
		return err
	}
	return nil
}

func (r *redisClient) GetPendingAction(ctx context.Context, deviceID string) (string, error) {
	val, err := r.client.Get(ctx, pendingKey(deviceID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting pending action for device %s: %v", deviceID, err))
		return "", err
	}
	return val, nil
}

func (r *redisClient) DeletePendingAction(ctx context.Context, deviceID string) error {
	if _, err := r.client.Del(ctx, pendingKey(deviceID)).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Error deleting pending action for device %s: %v", deviceID, err))
		return err
	}
	return nil
}

func (r *redisClient) SetContactCache(ctx context.Context, deviceID string, payload string, expiration time.Duration) error {
	if err := r.client.Set(ctx, contactsKey(deviceID), payload, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error caching contacts for device %s: %v", deviceID, err))
		return err
	}
	return nil
}

func (r *redisClient) GetContactCache(ctx context.Context, deviceID string) (string, error) {
	val, err := r.client.Get(ctx, contactsKey(deviceID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	} else if err != nil {
		return "", err
	}
	return val, nil
}

func (r *redisClient) InvalidateContactCache(ctx context.Context, deviceID string) error {
	if _, err := r.client.Del(ctx, contactsKey(deviceID)).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Error invalidating contact cache for device %s: %v", deviceID, err))
		return err
	}
	return nil
}
