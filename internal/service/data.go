package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"data_service/internal/models"
	"data_service/internal/repository"
)

var (
	ErrDataExists   = errors.New("data already exists")
	ErrDataNotFound = errors.New("data not found")
)

// EventPublisher 接收資料異動通知
type EventPublisher interface {
	Publish(event *Event)
}

type DataService struct {
	dataRepo  repository.DataRepository
	publisher EventPublisher
}

func NewDataService(dataRepo repository.DataRepository, publisher EventPublisher) *DataService {
	return &DataService{dataRepo: dataRepo, publisher: publisher}
}

// CreateData 新增資料，名稱已存在時回傳 ErrDataExists
func (s *DataService) CreateData(name string) (*models.Data, error) {
	data := &models.Data{Name: name}
	if err := s.dataRepo.Create(data); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDataExists
		}
		return nil, fmt.Errorf("create data %q: %w", name, err)
	}

	s.publish(EventDataCreated, data)
	return data, nil
}

// ListData 依建立順序回傳所有資料
func (s *DataService) ListData() ([]models.Data, error) {
	records, err := s.dataRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("list data: %w", err)
	}
	return records, nil
}

// DeleteData 刪除資料，不存在時回傳 ErrDataNotFound
func (s *DataService) DeleteData(id uint) error {
	data, err := s.dataRepo.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDataNotFound
		}
		return fmt.Errorf("delete data %d: %w", id, err)
	}

	s.publish(EventDataDeleted, data)
	return nil
}

func (s *DataService) publish(eventType string, data *models.Data) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(&Event{Type: eventType, Data: *data})
}
