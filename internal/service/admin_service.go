package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"storespark/internal/core/cache"
	"storespark/internal/domain"
)

type AdminService struct {
	users   domain.UserRepository
	stores  domain.StoreRepository
	ratings domain.RatingRepository
	cache   *cache.Cache
	log     *zap.Logger
}

func NewAdminService(users domain.UserRepository, stores domain.StoreRepository, ratings domain.RatingRepository, c *cache.Cache, log *zap.Logger) *AdminService {
	return &AdminService{users: users, stores: stores, ratings: ratings, cache: c, log: log}
}

type Stats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// Stats 仪表盘三个总数；读穿缓存，写路径负责失效
func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	return cache.GetOrLoadJSON[Stats](s.cache, ctx, keyAdminStats, statsTTL, func(ctx context.Context) (*Stats, error) {
		users, err := s.users.Count()
		if err != nil {
			return nil, err
		}
		stores, err := s.stores.Count()
		if err != nil {
			return nil, err
		}
		ratings, err := s.ratings.Count()
		if err != nil {
			return nil, err
		}
		return &Stats{TotalUsers: users, TotalStores: stores, TotalRatings: ratings}, nil
	})
}

type UserQuery struct {
	Q    string `form:"q"`
	Role string `form:"role"` // 精确过滤：admin / user / owner
	Sort string `form:"sort"` // name / email / address / role
	Dir  string `form:"dir"`
}

// ListUsers 管理端用户列表：角色过滤 + 文本搜索 + 排序
func (s *AdminService) ListUsers(ctx context.Context, q UserQuery) ([]domain.User, error) {
	all, err := s.users.List()
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(all))
	for _, u := range all {
		if q.Role != "" && u.Role != domain.Role(q.Role) {
			continue
		}
		if !matchTerm(q.Q, u.Name, u.Email, u.Address, string(u.Role)) {
			continue
		}
		out = append(out, u)
	}

	switch strings.TrimSpace(q.Sort) {
	case "name":
		sortSlice(out, descending(q.Dir), func(a, b domain.User) int { return cmpStrings(a.Name, b.Name) })
	case "email":
		sortSlice(out, descending(q.Dir), func(a, b domain.User) int { return cmpStrings(a.Email, b.Email) })
	case "address":
		sortSlice(out, descending(q.Dir), func(a, b domain.User) int { return cmpStrings(a.Address, b.Address) })
	case "role":
		sortSlice(out, descending(q.Dir), func(a, b domain.User) int { return cmpStrings(string(a.Role), string(b.Role)) })
	}
	return out, nil
}

type UserDetails struct {
	domain.User
	Store       *domain.Store `json:"store,omitempty"`
	StoreRating *float64      `json:"storeRating,omitempty"` // 店主才有：其店铺均分
}

// GetUserDetails 用户详情；店主附带其店铺与店铺均分
func (s *AdminService) GetUserDetails(ctx context.Context, id string) (*UserDetails, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	out := &UserDetails{User: *u}
	if u.Role == domain.RoleOwner && u.StoreID != nil {
		st, err := s.stores.FindByID(*u.StoreID)
		if err != nil {
			return nil, err
		}
		if st != nil {
			out.Store = st
			rows, err := s.ratings.ListByStore(st.ID)
			if err != nil {
				return nil, err
			}
			avg := meanOf(rows)
			out.StoreRating = &avg
		}
	}
	return out, nil
}
