//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spot-discovery/internal/domain"
)

// Публикует событие изменения профиля и ждёт, пока badge-воркер его подтвердит.
//
//	go run scripts/publish_profile_event.go -user <uuid>
func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	userFlag := flag.String("user", "", "user ID whose profile changed")
	group := flag.String("group", "badge-evaluation-workers", "consumer group to watch")
	flag.Parse()

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		log.Fatalf("Invalid -user: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	data, err := json.Marshal(domain.ProfileChangedEvent{
		UserID:     userID,
		Reason:     domain.ReasonProfileUpdated,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamProfileChanged,
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamProfileChanged)
	fmt.Printf("   Message ID: %s\n", id)
	fmt.Printf("   User ID: %s\n", userID)
	fmt.Printf("\nWaiting for %s to acknowledge...\n", *group)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout: is the worker running?")
			return
		case <-ticker.C:
			groups, err := client.XInfoGroups(ctx, domain.StreamProfileChanged).Result()
			if err != nil {
				continue
			}
			for _, g := range groups {
				if g.Name != *group {
					continue
				}
				if g.Lag == 0 && g.Pending == 0 {
					fmt.Println("Event processed")
					return
				}
			}
		}
	}
}
