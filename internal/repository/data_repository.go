package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"data_service/internal/models"
	"data_service/internal/storage"
)

type DataRepository interface {
	// Create 新增一筆資料；名稱重複時回傳 gorm.ErrDuplicatedKey
	Create(data *models.Data) error
	// FindAll 依 id 遞增順序回傳所有資料
	FindAll() ([]models.Data, error)
	// Delete 刪除並回傳該筆資料；不存在時回傳 gorm.ErrRecordNotFound
	Delete(id uint) (*models.Data, error)
}

type dataRepository struct {
	db *storage.PostgresDB
}

func NewDataRepository(db *storage.PostgresDB) DataRepository {
	return &dataRepository{db: db}
}

func (r *dataRepository) Create(data *models.Data) error {
	return r.db.Create(data).Error
}

func (r *dataRepository) FindAll() ([]models.Data, error) {
	records := []models.Data{}
	err := r.db.Order("id asc").Find(&records).Error
	return records, err
}

func (r *dataRepository) Delete(id uint) (*models.Data, error) {
	var data models.Data
	result := r.db.Clauses(clause.Returning{}).Where("id = ?", id).Delete(&data)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &data, nil
}
