package services

import (
	"context"
	"errors"

	"github.com/infobajajangola-cmd/casamentop/models"
	"github.com/infobajajangola-cmd/casamentop/repositories"
)

// IEventService exposes the single event the application runs for.
type IEventService interface {
	GetMainEvent(ctx context.Context) (*models.Event, error)
}

type EventService struct {
	repo repositories.IEventRepository
}

func NewEventService() IEventService {
	return &EventService{repo: repositories.NewEventRepository()}
}

func (s *EventService) GetMainEvent(ctx context.Context) (*models.Event, error) {
	event, err := s.repo.FindMain(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotConfigured
		}
		return nil, err
	}
	return event, nil
}
