package repo

import (
	"errors"
	"sync"
	"testing"

	"storespark/internal/domain"
)

func TestMemoryUpsertConcurrent(t *testing.T) {
	rs := NewMemorySet()

	// 同一 (store,user) 并发写，最终只能有一条
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			if _, err := rs.Ratings.Upsert("store-x", "user-x", v%5+1); err != nil {
				t.Errorf("upsert: %v", err)
			}
		}(i)
	}
	wg.Wait()

	n, err := rs.Ratings.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("concurrent upserts left %d rows, want 1", n)
	}
	row, err := rs.Ratings.FindByStoreUser("store-x", "user-x")
	if err != nil || row == nil {
		t.Fatalf("row missing: %v", err)
	}
	if row.Value < 1 || row.Value > 5 {
		t.Fatalf("value %d out of range", row.Value)
	}
}

func TestMemoryDuplicateEmail(t *testing.T) {
	rs := NewMemorySet()
	u := domain.User{ID: "u1", Name: "First Registered Person Name", Email: "dup@example.com", Role: domain.RoleUser}
	if err := rs.Users.Create(&u); err != nil {
		t.Fatalf("create: %v", err)
	}
	again := domain.User{ID: "u2", Name: "Second Registered Person Name", Email: "dup@example.com", Role: domain.RoleUser}
	if err := rs.Users.Create(&again); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	rs := NewMemorySet()
	if err := Seed(rs); err != nil {
		t.Fatalf("seed: %v", err)
	}
	users, _ := rs.Users.Count()
	stores, _ := rs.Stores.Count()
	ratings, _ := rs.Ratings.Count()

	if err := Seed(rs); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if u2, _ := rs.Users.Count(); u2 != users {
		t.Fatalf("user count changed on reseed: %d -> %d", users, u2)
	}
	if s2, _ := rs.Stores.Count(); s2 != stores {
		t.Fatalf("store count changed on reseed: %d -> %d", stores, s2)
	}
	if r2, _ := rs.Ratings.Count(); r2 != ratings {
		t.Fatalf("rating count changed on reseed: %d -> %d", ratings, r2)
	}
}

func TestMemoryListOrderIsStable(t *testing.T) {
	rs := NewMemorySet()
	if err := Seed(rs); err != nil {
		t.Fatalf("seed: %v", err)
	}
	list, err := rs.Stores.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) == 0 || list[0].ID != "store1" {
		t.Fatalf("list order unstable, first = %v", list)
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.Before(list[i-1].CreatedAt) {
			t.Fatalf("not ordered by creation time at %d", i)
		}
	}
}
