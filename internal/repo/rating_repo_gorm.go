package repo

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storespark/internal/domain"
	"storespark/pkg/utils"
)

type RatingRepo struct{ db *gorm.DB }

func NewRatingRepo(db *gorm.DB) *RatingRepo { return &RatingRepo{db: db} }

// Upsert 条件写：唯一索引 (store_id,user_id) + ON CONFLICT DO UPDATE，
// 并发提交下也只会留一条记录
func (r *RatingRepo) Upsert(storeID, userID string, value int) (*domain.Rating, error) {
	row := domain.Rating{
		ID:        utils.NewID(),
		StoreID:   storeID,
		UserID:    userID,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	// 冲突更新时 Create 里的 ID 是新生成的那个，回读拿真实记录
	return r.FindByStoreUser(storeID, userID)
}

func (r *RatingRepo) FindByStoreUser(storeID, userID string) (*domain.Rating, error) {
	var row domain.Rating
	err := r.db.First(&row, "store_id = ? AND user_id = ?", storeID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &row, err
}

func (r *RatingRepo) ListByStore(storeID string) ([]domain.Rating, error) {
	var rows []domain.Rating
	err := r.db.Where("store_id = ?", storeID).Order("updated_at desc").Find(&rows).Error
	return rows, err
}

func (r *RatingRepo) ListAll() ([]domain.Rating, error) {
	var rows []domain.Rating
	err := r.db.Find(&rows).Error
	return rows, err
}

func (r *RatingRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&domain.Rating{}).Count(&n).Error
	return n, err
}
