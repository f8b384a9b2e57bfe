package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playterritory/conquest/internal/geo"
)

// Presence tracks players' last known positions. Entries age out on their
// own; a player who stops feeding positions simply disappears from the map.
type Presence interface {
	Set(ctx context.Context, playerID string, p geo.Point) error
	All(ctx context.Context) (map[string]geo.Point, error)
}

const presencePrefix = "presence:"

// RedisPresence keeps live positions in redis under TTL'd keys. The score of
// record lives in sqlite; redis only holds this ephemeral layer.
type RedisPresence struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisPresence(rdb *redis.Client, ttl time.Duration) *RedisPresence {
	return &RedisPresence{rdb: rdb, ttl: ttl}
}

func (p *RedisPresence) Set(ctx context.Context, playerID string, pos geo.Point) error {
	val := fmt.Sprintf("%.7f,%.7f", pos.Lat, pos.Lng)
	return p.rdb.Set(ctx, presencePrefix+playerID, val, p.ttl).Err()
}

func (p *RedisPresence) All(ctx context.Context) (map[string]geo.Point, error) {
	positions := make(map[string]geo.Point)
	iter := p.rdb.Scan(ctx, 0, presencePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		val, err := p.rdb.Get(ctx, key).Result()
		if err != nil {
			// Key expired between scan and get.
			continue
		}
		var pos geo.Point
		if _, err := fmt.Sscanf(val, "%f,%f", &pos.Lat, &pos.Lng); err != nil {
			continue
		}
		positions[strings.TrimPrefix(key, presencePrefix)] = pos
	}
	return positions, iter.Err()
}
