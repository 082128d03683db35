package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"go-retail-backoffice/internal/metrics"
	"go-retail-backoffice/internal/model"
	"go-retail-backoffice/internal/repository"
)

// Receipt is a gateway delivery acknowledgement.
type Receipt struct {
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// Gateway is the outbound messaging collaborator. It is handed a resolved
// client record; it never looks clients up itself.
type Gateway interface {
	Send(client *model.Client, message string) (*Receipt, error)
}

// WhatsAppSimulator stands in for a real WhatsApp API integration. It logs
// the would-be delivery and acknowledges immediately.
type WhatsAppSimulator struct {
	log zerolog.Logger
}

func NewWhatsAppSimulator(log zerolog.Logger) *WhatsAppSimulator {
	return &WhatsAppSimulator{log: log}
}

func (g *WhatsAppSimulator) Send(client *model.Client, message string) (*Receipt, error) {
	g.log.Info().
		Str("client_id", client.ID.String()).
		Str("client_name", client.Name).
		Str("message", message).
		Msg("simulating whatsapp delivery")

	return &Receipt{
		Status: "sent",
		Detail: fmt.Sprintf("message delivered to %s", client.Name),
	}, nil
}

type NotificationService interface {
	SendToClient(clientID uuid.UUID, message string) (*Receipt, error)
}

type notificationService struct {
	clientRepo repository.ClientRepository
	gateway    Gateway
}

func NewNotificationService(clientRepo repository.ClientRepository, gateway Gateway) NotificationService {
	return &notificationService{clientRepo: clientRepo, gateway: gateway}
}

// SendToClient resolves the client, then hands the record and message to
// the gateway. An unknown client fails here with ErrClientNotFound; the
// gateway is never asked to resolve identities.
func (s *notificationService) SendToClient(clientID uuid.UUID, message string) (*Receipt, error) {
	client, err := s.clientRepo.FindByID(clientID)
	if err != nil {
		return nil, err
	}

	receipt, err := s.gateway.Send(client, message)
	if err != nil {
		metrics.NotificationsSentTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.NotificationsSentTotal.WithLabelValues(receipt.Status).Inc()
	return receipt, nil
}
