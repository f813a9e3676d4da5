package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenStore_RevokeAndCheck(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("set REDIS_TEST_ADDR to run redis integration tests")
	}
	ctx := context.Background()

	client, err := Connect(ctx, Config{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	store := NewTokenStore(client)
	live, expired := uuid.NewString(), uuid.NewString()

	if revoked, err := store.IsRevoked(ctx, live); err != nil || revoked {
		t.Fatalf("expected fresh token not revoked, got %v, %v", revoked, err)
	}
	if err := store.Revoke(ctx, live, time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if revoked, err := store.IsRevoked(ctx, live); err != nil || !revoked {
		t.Fatalf("expected token revoked, got %v, %v", revoked, err)
	}

	ttl, err := client.TTL(ctx, key(live)).Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected ttl bounded by token expiry, got %v, %v", ttl, err)
	}

	if err := store.Revoke(ctx, expired, time.Now().Add(-time.Second)); err != nil {
		t.Fatalf("Revoke expired: %v", err)
	}
	if revoked, _ := store.IsRevoked(ctx, expired); revoked {
		t.Fatal("expired token should not be stored")
	}
}
