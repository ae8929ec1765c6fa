package service

import (
	"context"
	"strings"

	"ai-estimator-be/internal/constant"
	"ai-estimator-be/internal/pkg/logger"
	"ai-estimator-be/internal/repository/specification"
	"ai-estimator-be/internal/repository/unitofwork"
	"ai-estimator-be/internal/websocket"
	"ai-estimator-be/pkg/events"
	pktNats "ai-estimator-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how real-time updates reach connected users.
// Implemented by the websocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, update websocket.Update)
	Broadcast(update websocket.Update)
}

// NotificationService bridges the NATS event bus to websocket delivery.
// Updates are ephemeral pushes; clients that miss one poll the status
// endpoints instead.
type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	sub *pktNats.Subscriber,
	delivery NotificationDelivery,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "Event bus unavailable, notification pushes disabled", nil)
		return
	}
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	switch typeCode {
	case constant.EventDocumentStatusChanged:
		return s.fanOutToOrganization(ctx, typeCode, event.Payload())
	default:
		s.logger.Debug("NotificationService", "Ignoring event", map[string]interface{}{"type": typeCode})
		return nil
	}
}

// fanOutToOrganization delivers the event to every member of the tenant the
// event belongs to.
func (s *NotificationService) fanOutToOrganization(ctx context.Context, typeCode string, payload map[string]interface{}) error {
	orgId, ok := parseUUIDField(payload, "organization_id")
	if !ok {
		s.logger.Warn("NotificationService", "Event missing organization_id", map[string]interface{}{"type": typeCode})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	members, err := uow.OrganizationMemberRepository().FindAll(ctx,
		specification.ByOrganizationID{OrganizationID: orgId},
	)
	if err != nil {
		// NATS redelivers on error.
		return err
	}

	update := websocket.Update{
		Type: typeCode,
		Data: payload,
	}
	for _, member := range members {
		if s.delivery != nil {
			s.delivery.Send(member.UserId, update)
		}
	}
	return nil
}

func parseUUIDField(payload map[string]interface{}, key string) (uuid.UUID, bool) {
	raw, ok := payload[key].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
