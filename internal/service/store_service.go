package service

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"storespark/internal/core/cache"
	"storespark/internal/domain"
	"storespark/internal/validate"
	"storespark/pkg/utils"
)

const (
	keyAdminStats = "storespark:admin:stats"
	statsTTL      = 30 * time.Second
)

var ratingsSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "ratings_submitted_total",
	Help: "Count of rating submissions (insert or update)",
})

func init() { prometheus.MustRegister(ratingsSubmitted) }

type StoreService struct {
	stores  domain.StoreRepository
	ratings domain.RatingRepository
	users   domain.UserRepository
	cache   *cache.Cache
	log     *zap.Logger
}

func NewStoreService(stores domain.StoreRepository, ratings domain.RatingRepository, users domain.UserRepository, c *cache.Cache, log *zap.Logger) *StoreService {
	return &StoreService{stores: stores, ratings: ratings, users: users, cache: c, log: log}
}

type StoreQuery struct {
	Q    string `form:"q"`
	Sort string `form:"sort"` // name / address / overallRating
	Dir  string `form:"dir"`  // asc（默认）/ desc
}

// ListWithDetails 店铺列表 + 均分 + 当前用户自己的评分。
// 均分无评分时为 0（不是 NaN）；UserRating 为 nil 表示从未评过。
func (s *StoreService) ListWithDetails(ctx context.Context, currentUserID string, q StoreQuery) ([]domain.StoreDetails, error) {
	stores, err := s.stores.List()
	if err != nil {
		return nil, err
	}
	all, err := s.ratings.ListAll()
	if err != nil {
		return nil, err
	}

	byStore := make(map[string][]domain.Rating, len(stores))
	for _, r := range all {
		byStore[r.StoreID] = append(byStore[r.StoreID], r)
	}

	out := make([]domain.StoreDetails, 0, len(stores))
	for _, st := range stores {
		d := domain.StoreDetails{Store: st, OverallRating: meanOf(byStore[st.ID])}
		if currentUserID != "" {
			for _, r := range byStore[st.ID] {
				if r.UserID == currentUserID {
					v := r.Value
					d.UserRating = &v
					break
				}
			}
		}
		if matchTerm(q.Q, st.Name, st.Email, st.Address) {
			out = append(out, d)
		}
	}

	switch strings.TrimSpace(q.Sort) {
	case "name":
		sortSlice(out, descending(q.Dir), func(a, b domain.StoreDetails) int { return cmpStrings(a.Name, b.Name) })
	case "address":
		sortSlice(out, descending(q.Dir), func(a, b domain.StoreDetails) int { return cmpStrings(a.Address, b.Address) })
	case "overallRating":
		sortSlice(out, descending(q.Dir), func(a, b domain.StoreDetails) int { return cmpFloats(a.OverallRating, b.OverallRating) })
	}
	return out, nil
}

// SubmitRating (store,user) 维度 upsert：重复提交只覆盖分值和时间
func (s *StoreService) SubmitRating(ctx context.Context, storeID, userID string, value int) (*domain.Rating, error) {
	if msg := validate.Rating(value); msg != "" {
		return nil, invalid("rating", msg)
	}
	st, err := s.stores.FindByID(storeID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	row, err := s.ratings.Upsert(storeID, userID, value)
	if err != nil {
		return nil, err
	}
	ratingsSubmitted.Inc()
	s.cache.Invalidate(ctx, keyAdminStats)
	s.log.Info("rating submitted",
		zap.String("store", storeID), zap.String("user", userID), zap.Int("value", value))
	return row, nil
}

type AddStoreInput struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address string  `json:"address"`
	OwnerID *string `json:"ownerId"`
}

// AddStore 管理员建店；店铺建完不再改
func (s *StoreService) AddStore(ctx context.Context, in AddStoreInput) (*domain.Store, error) {
	if msg := validate.First(
		validate.Name(in.Name),
		validate.Email(in.Email),
		validate.Address(in.Address),
	); msg != "" {
		return nil, invalid("store", msg)
	}
	st := &domain.Store{
		ID:      utils.NewID(),
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Address: in.Address,
		OwnerID: in.OwnerID,
	}
	if err := s.stores.Create(st); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, keyAdminStats)
	s.log.Info("store added", zap.String("store", st.ID))
	return st, nil
}

// ListStores 管理端店铺列表（带均分，不带个人评分）
func (s *StoreService) ListStores(ctx context.Context, q StoreQuery) ([]domain.StoreDetails, error) {
	return s.ListWithDetails(ctx, "", q)
}

type OwnerRatingRow struct {
	domain.Rating
	UserName string `json:"userName"`
}

type OwnerDashboard struct {
	Store         domain.Store     `json:"store"`
	AverageRating float64          `json:"averageRating"`
	Ratings       []OwnerRatingRow `json:"ratings"`
}

// Dashboard 店主侧：自己店铺的均分和逐条评分（带评分人姓名）
func (s *StoreService) Dashboard(ctx context.Context, ownerUserID string) (*OwnerDashboard, error) {
	owner, err := s.users.FindByID(ownerUserID)
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.StoreID == nil {
		return nil, ErrNotFound
	}
	st, err := s.stores.FindByID(*owner.StoreID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	rows, err := s.ratings.ListByStore(st.ID)
	if err != nil {
		return nil, err
	}

	out := &OwnerDashboard{
		Store:         *st,
		AverageRating: meanOf(rows),
		Ratings:       make([]OwnerRatingRow, 0, len(rows)),
	}
	for _, r := range rows {
		name := "Unknown User"
		if u, err := s.users.FindByID(r.UserID); err == nil && u != nil {
			name = u.Name
		}
		out.Ratings = append(out.Ratings, OwnerRatingRow{Rating: r, UserName: name})
	}
	return out, nil
}

// meanOf 算术平均；空集合约定为 0
func meanOf(rows []domain.Rating) float64 {
	if len(rows) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rows {
		sum += r.Value
	}
	return float64(sum) / float64(len(rows))
}
