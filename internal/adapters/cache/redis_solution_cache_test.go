package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"fleet-route-solver/internal/domain"
	"fleet-route-solver/internal/ports"
)

func newTestCache(t *testing.T) *RedisSolutionCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisSolutionCache(client, time.Hour)
}

func TestRedisSolutionCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	res := ports.CachedResult{
		Best: domain.Solution{
			Routes: []domain.Route{
				{Customers: []int{1, 2}, Demand: 2, Distance: 4.83},
				{Customers: []int{3, 4}, Demand: 2, Distance: 4.83},
			},
			Cost:  9.66,
			Valid: true,
		},
		History: []float64{9.66, 10.2, 9.66},
	}

	key := "square|deterministic|geometric|0|1|0|42"
	if err := c.Put(ctx, key, res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected a cache hit")
	}
	if got.Best.Cost != res.Best.Cost {
		t.Fatalf("cost = %g, want %g", got.Best.Cost, res.Best.Cost)
	}
	if len(got.Best.Routes) != 2 || len(got.History) != 3 {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if got.Best.Routes[0].Customers[1] != 2 {
		t.Fatalf("routes not preserved: %+v", got.Best.Routes)
	}
}

func TestRedisSolutionCacheMiss(t *testing.T) {
	c := newTestCache(t)

	got, err := c.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected a miss, got %+v", got)
	}
}
