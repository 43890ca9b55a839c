package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

const streamQuestions = "faqbot.questions"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishQuestion appends an asked question to the shared stream for any
// external consumers (stats, moderation). Callers treat failures as advisory.
func PublishQuestion(ctx context.Context, rdb *redis.Client, payload map[string]interface{}) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamQuestions,
		Values: payload,
	}).Result()
	return err
}
