package domain

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

type Store struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:64" json:"name"`
	Email     string    `gorm:"size:191" json:"email"`
	Address   string    `gorm:"size:400" json:"address"`
	OwnerID   *string   `gorm:"size:36" json:"ownerId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Store) TableName() string { return "stores" }

// Rating 一个用户对一个店铺只保留一条（(store_id,user_id) 唯一）
type Rating struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	StoreID   string    `gorm:"size:36;uniqueIndex:idx_store_user" json:"storeId"`
	UserID    string    `gorm:"size:36;uniqueIndex:idx_store_user" json:"userId"`
	Value     int       `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Rating) TableName() string { return "ratings" }

// StoreDetails 列表展示用的派生结构，不落库
// UserRating 为 nil 表示当前用户从未评分（1..5 之外没有“评了 0 分”这种情况）
type StoreDetails struct {
	Store
	OverallRating float64 `json:"overallRating"`
	UserRating    *int    `json:"userSubmittedRating,omitempty"`
}

type StoreRepository interface {
	Create(s *Store) error
	FindByID(id string) (*Store, error)
	List() ([]Store, error)
	Count() (int64, error)
}

type RatingRepository interface {
	// Upsert 按 (storeID,userID) 插入或原地更新，返回最终那条记录
	Upsert(storeID, userID string, value int) (*Rating, error)
	FindByStoreUser(storeID, userID string) (*Rating, error)
	ListByStore(storeID string) ([]Rating, error)
	ListAll() ([]Rating, error)
	Count() (int64, error)
}
