package repo

import (
	"errors"

	"gorm.io/gorm"

	"storespark/internal/domain"
)

// 店铺在本系统内只建不改不删

type StoreRepo struct{ db *gorm.DB }

func NewStoreRepo(db *gorm.DB) *StoreRepo { return &StoreRepo{db: db} }

func (r *StoreRepo) Create(s *domain.Store) error { return r.db.Create(s).Error }

func (r *StoreRepo) FindByID(id string) (*domain.Store, error) {
	var s domain.Store
	err := r.db.First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *StoreRepo) List() ([]domain.Store, error) {
	var stores []domain.Store
	err := r.db.Order("created_at asc").Find(&stores).Error
	return stores, err
}

func (r *StoreRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&domain.Store{}).Count(&n).Error
	return n, err
}
