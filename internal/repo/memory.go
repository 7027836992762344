package repo

import (
	"sort"
	"sync"
	"time"

	"storespark/internal/domain"
	"storespark/pkg/utils"
)

// 内存仓储：db.driver=memory 时的运行模式，也是服务层测试的替身。
// 一把锁护住三张"表"，评分 upsert 在锁内查后写，不会出现同键两条。

type Memory struct {
	mu      sync.RWMutex
	users   []domain.User
	stores  []domain.Store
	ratings []domain.Rating
}

func NewMemorySet() Set {
	m := &Memory{}
	return Set{
		Users:   &memUsers{m},
		Stores:  &memStores{m},
		Ratings: &memRatings{m},
	}
}

type memUsers struct{ m *Memory }
type memStores struct{ m *Memory }
type memRatings struct{ m *Memory }

// ---------- users ----------

func (r *memUsers) Create(u *domain.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, x := range r.m.users {
		if x.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	r.m.users = append(r.m.users, *u)
	return nil
}

func (r *memUsers) FindByID(id string) (*domain.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, x := range r.m.users {
		if x.ID == id {
			u := x
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) FindByEmail(email string) (*domain.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, x := range r.m.users {
		if x.Email == email {
			u := x
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) List() ([]domain.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := append([]domain.User(nil), r.m.users...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memUsers) Count() (int64, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return int64(len(r.m.users)), nil
}

func (r *memUsers) UpdatePassword(id, newHash string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.users {
		if r.m.users[i].ID == id {
			r.m.users[i].PasswordHash = newHash
			r.m.users[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return domain.ErrNotFound
}

// ---------- stores ----------

func (r *memStores) Create(s *domain.Store) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	r.m.stores = append(r.m.stores, *s)
	return nil
}

func (r *memStores) FindByID(id string) (*domain.Store, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, x := range r.m.stores {
		if x.ID == id {
			s := x
			return &s, nil
		}
	}
	return nil, nil
}

func (r *memStores) List() ([]domain.Store, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := append([]domain.Store(nil), r.m.stores...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memStores) Count() (int64, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return int64(len(r.m.stores)), nil
}

// ---------- ratings ----------

func (r *memRatings) Upsert(storeID, userID string, value int) (*domain.Rating, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.ratings {
		if r.m.ratings[i].StoreID == storeID && r.m.ratings[i].UserID == userID {
			r.m.ratings[i].Value = value
			r.m.ratings[i].UpdatedAt = time.Now()
			row := r.m.ratings[i]
			return &row, nil
		}
	}
	row := domain.Rating{
		ID:        utils.NewID(),
		StoreID:   storeID,
		UserID:    userID,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	r.m.ratings = append(r.m.ratings, row)
	return &row, nil
}

func (r *memRatings) FindByStoreUser(storeID, userID string) (*domain.Rating, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, x := range r.m.ratings {
		if x.StoreID == storeID && x.UserID == userID {
			row := x
			return &row, nil
		}
	}
	return nil, nil
}

func (r *memRatings) ListByStore(storeID string) ([]domain.Rating, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var out []domain.Rating
	for _, x := range r.m.ratings {
		if x.StoreID == storeID {
			out = append(out, x)
		}
	}
	return out, nil
}

func (r *memRatings) ListAll() ([]domain.Rating, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return append([]domain.Rating(nil), r.m.ratings...), nil
}

func (r *memRatings) Count() (int64, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return int64(len(r.m.ratings)), nil
}
