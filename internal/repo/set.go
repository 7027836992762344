package repo

import (
	"gorm.io/gorm"

	"storespark/internal/domain"
)

// Set 三个仓储的组合，cmd 层按驱动选 gorm 或 memory 实现注入
type Set struct {
	Users   domain.UserRepository
	Stores  domain.StoreRepository
	Ratings domain.RatingRepository
}

func NewGormSet(db *gorm.DB) Set {
	return Set{
		Users:   NewUserRepo(db),
		Stores:  NewStoreRepo(db),
		Ratings: NewRatingRepo(db),
	}
}
