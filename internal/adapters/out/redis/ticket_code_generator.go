// Package redis issues ticket codes from per-year Redis counters.
package redis

import (
	"context"
	"errors"
	"fmt"

	"waterdelivery/internal/core/domain/model/ticket"

	goredis "github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "ticket_code:"

// TicketCodeGenerator implements ports.TicketCodeGenerator with INCR on one
// key per year. INCR is atomic across every process sharing the server, so a
// sequence number is never handed out twice. Numbers taken by a transaction
// that later rolls back are not reused and leave gaps.
type TicketCodeGenerator struct {
	client    goredis.Cmdable
	keyPrefix string
}

// NewTicketCodeGenerator creates a generator over an existing client. An
// empty prefix selects "ticket_code:".
func NewTicketCodeGenerator(client goredis.Cmdable, keyPrefix string) *TicketCodeGenerator {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &TicketCodeGenerator{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Next increments the counter of year and formats the result.
func (g *TicketCodeGenerator) Next(ctx context.Context, year int) (ticket.Code, error) {
	key := fmt.Sprintf("%s%d", g.keyPrefix, year)

	sequence, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		return ticket.Code{}, fmt.Errorf("failed to increment %s: %w", key, err)
	}

	return ticket.NewCode(year, sequence)
}

// Seed raises the counter of year to at least sequence. It is used after
// restoring a database whose codes ran ahead of Redis.
func (g *TicketCodeGenerator) Seed(ctx context.Context, year int, sequence int64) error {
	key := fmt.Sprintf("%s%d", g.keyPrefix, year)

	current, err := g.client.Get(ctx, key).Int64()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if current >= sequence {
		return nil
	}

	return g.client.Set(ctx, key, sequence, 0).Err()
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
