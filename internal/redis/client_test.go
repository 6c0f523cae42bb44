package redis

import (
	"context"
	"testing"
	"time"
)

func TestNewRedisClient_EmptyAddr(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty address")
	}
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	client, err := NewRedisClient(ctx, Config{Addr: "127.0.0.1:1"})
	if err == nil {
		client.Close()
		t.Fatal("expected connection error for unreachable address")
	}
}
