package session_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/delivio/actionserver/session"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	slots, err := store.Slots(ctx, "conv-1")
	if err != nil {
		t.Fatalf("Slots on fresh store failed: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("fresh conversation has %d slots, want 0", len(slots))
	}

	err = store.Set(ctx, "conv-1", session.Slots{
		"zipcode": []byte(`"12345"`),
		"page":    []byte(`2`),
	})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	slots, err = store.Slots(ctx, "conv-1")
	if err != nil {
		t.Fatalf("Slots failed: %v", err)
	}
	if got, _ := slots.String("zipcode"); got != "12345" {
		t.Errorf("zipcode = %q, want %q", got, "12345")
	}

	if err := store.Delete(ctx, "conv-1", "zipcode"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	slots, _ = store.Slots(ctx, "conv-1")
	if _, ok := slots.Raw("zipcode"); ok {
		t.Error("deleted slot still present")
	}
	if _, ok := slots.Raw("page"); !ok {
		t.Error("unrelated slot was deleted")
	}

	if err := store.Delete(ctx, "conv-1"); err != nil {
		t.Fatalf("Delete conversation failed: %v", err)
	}
	slots, _ = store.Slots(ctx, "conv-1")
	if len(slots) != 0 {
		t.Errorf("conversation survives full delete: %v", slots)
	}
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	if err := store.Set(ctx, "a", session.Slots{"zipcode": []byte(`"11111"`)}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	slots, err := store.Slots(ctx, "b")
	if err != nil {
		t.Fatalf("Slots failed: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("conversation b sees %d slots from a, want 0", len(slots))
	}
}

func TestMemoryStore_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	if err := store.Set(ctx, "a", session.Slots{"k": []byte(`"v"`)}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	slots, _ := store.Slots(ctx, "a")
	slots["k"] = []byte(`"mutated"`)

	fresh, _ := store.Slots(ctx, "a")
	if got, _ := fresh.String("k"); got != "v" {
		t.Errorf("mutating a read changed the store: %q", got)
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("conv-%d", n%3)
			for j := 0; j < 50; j++ {
				_ = store.Set(ctx, id, session.Slots{"n": []byte(`1`)})
				_, _ = store.Slots(ctx, id)
				_ = store.Delete(ctx, id, "n")
			}
		}(i)
	}
	wg.Wait()
}

func TestMemoryStore_UsableAfterClose(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	if err := store.Set(ctx, "a", session.Slots{"k": []byte(`"v"`)}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	slots, err := store.Slots(ctx, "a")
	if err != nil {
		t.Fatalf("Slots after close failed: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("conversation survived close: %v", slots)
	}

	if err := store.Set(ctx, "b", session.Slots{"k": []byte(`"v"`)}); err != nil {
		t.Fatalf("Set after close failed: %v", err)
	}
	slots, _ = store.Slots(ctx, "b")
	if got, _ := slots.String("k"); got != "v" {
		t.Errorf("slot written after close = %q, want %q", got, "v")
	}
}

func TestNewStore_Drivers(t *testing.T) {
	store, err := session.NewStore(session.DriverMemory)
	if err != nil {
		t.Fatalf("NewStore(memory) failed: %v", err)
	}
	if store == nil {
		t.Fatal("NewStore(memory) returned nil store")
	}

	_, err = session.NewStore(session.DriverRedis)
	if !errors.Is(err, session.ErrInvalidConfig) {
		t.Errorf("NewStore(redis) without client error = %v, want ErrInvalidConfig", err)
	}

	_, err = session.NewStore("bolt")
	if !errors.Is(err, session.ErrInvalidDriver) {
		t.Errorf("NewStore(bolt) error = %v, want ErrInvalidDriver", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := session.DefaultConfig()
	if cfg.Driver != session.DriverMemory {
		t.Errorf("default driver = %q, want %q", cfg.Driver, session.DriverMemory)
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := session.DefaultConfig()
	cfg.Merge(&session.Config{
		Driver: session.DriverRedis,
		Redis:  session.RedisConfig{Addr: "localhost:6379", TTLSeconds: 60},
	})

	if cfg.Driver != session.DriverRedis {
		t.Errorf("merged driver = %q, want %q", cfg.Driver, session.DriverRedis)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("merged addr = %q, want %q", cfg.Redis.Addr, "localhost:6379")
	}
	if cfg.Redis.TTLSeconds != 60 {
		t.Errorf("merged ttl = %d, want 60", cfg.Redis.TTLSeconds)
	}
}
