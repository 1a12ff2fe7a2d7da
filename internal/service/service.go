package service

import (
	"github.com/sirupsen/logrus"

	"data_service/internal/repository"
)

type Services struct {
	Data      *DataService
	WebSocket *WebSocketService
}

func NewServices(repos *repository.Repositories, logger logrus.FieldLogger) *Services {
	wsService := NewWebSocketService(logger)

	return &Services{
		Data:      NewDataService(repos.Data, wsService),
		WebSocket: wsService,
	}
}
