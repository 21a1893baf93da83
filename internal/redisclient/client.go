package redisclient

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client wraps a Redis client with OpenTelemetry tracing
type Client struct {
	cmdable redis.Cmdable
}

// NewClient creates a new traced Redis client
func NewClient(client *redis.Client) *Client {
	return &Client{cmdable: client}
}

// Get wraps Redis Get with tracing
func (c *Client) Get(ctx context.Context, key string) *redis.StringCmd {
	ctx, span := c.startSpan(ctx, "redis.get", key, "get")
	defer span.End()

	cmd := c.cmdable.Get(ctx, key)
	c.recordResult(span, cmd.Err())
	return cmd
}

// Set wraps Redis Set with tracing
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	ctx, span := c.startSpan(ctx, "redis.set", key, "set")
	defer span.End()

	cmd := c.cmdable.Set(ctx, key, value, expiration)
	c.recordResult(span, cmd.Err())
	return cmd
}

// Del wraps Redis Del with tracing
func (c *Client) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	key := ""
	if len(keys) > 0 {
		key = keys[0]
	}
	ctx, span := c.startSpan(ctx, "redis.del", key, "del")
	defer span.End()

	cmd := c.cmdable.Del(ctx, keys...)
	c.recordResult(span, cmd.Err())
	return cmd
}

// Ping wraps Redis Ping with tracing
func (c *Client) Ping(ctx context.Context) *redis.StatusCmd {
	ctx, span := c.startSpan(ctx, "redis.ping", "", "ping")
	defer span.End()

	cmd := c.cmdable.Ping(ctx)
	c.recordResult(span, cmd.Err())
	return cmd
}

func (c *Client) startSpan(ctx context.Context, name, key, operation string) (context.Context, trace.Span) {
	return otel.Tracer("redis").Start(ctx, name,
		trace.WithAttributes(
			attribute.String("redis.key", key),
			attribute.String("redis.operation", operation),
			attribute.String("redis.client", "app-campaign"),
		),
	)
}

func (c *Client) recordResult(span trace.Span, err error) {
	if err != nil && err != redis.Nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "success")
}
