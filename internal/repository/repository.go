package repository

import "data_service/internal/storage"

type Repositories struct {
	Data DataRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		Data: NewDataRepository(db),
	}
}
