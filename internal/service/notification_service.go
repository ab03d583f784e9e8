package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/afristar/helpdesk/internal/config"
	"github.com/afristar/helpdesk/internal/events"
	"github.com/afristar/helpdesk/internal/notify"
)

// NotificationService turns domain events into emails. It runs entirely on
// the dispatcher's goroutines: delivery failures are logged, never retried,
// and never surfaced to the request that triggered them.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     *notify.Mailer
	logger     *zap.Logger
	adminEmail string
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer *notify.Mailer, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
		adminEmail: cfg.AdminEmail,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
}

// New tickets notify the fixed admin recipient.
func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for ticket_created", zap.String("ticket_id", event.TicketID))
		return nil
	}

	msg := notify.Message{
		To:      n.adminEmail,
		Subject: fmt.Sprintf("New Ticket: %s (#%s)", payload.Title, event.TicketID),
		TextBody: fmt.Sprintf("A new ticket has been created by a customer.\n\nDescription: %s",
			payload.Description),
		HTMLBody: fmt.Sprintf("<p>A new ticket has been created.</p><p><b>Title:</b> %s</p><p><b>Description:</b> %s</p>",
			payload.Title, payload.Description),
	}
	if err := n.mailer.Send(msg); err != nil {
		n.logger.Warn("ticket created email failed", zap.String("ticket_id", event.TicketID), zap.Error(err))
	}
	return nil
}

// Status changes notify the ticket author.
func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for ticket_status_changed", zap.String("ticket_id", event.TicketID))
		return nil
	}

	msg := notify.Message{
		To:      payload.AuthorEmail,
		Subject: fmt.Sprintf("Ticket Update: %s (#%s)", payload.Title, event.TicketID),
		TextBody: fmt.Sprintf("Your ticket status has been updated to: %s",
			payload.NewStatus),
		HTMLBody: fmt.Sprintf("<p>Your ticket status has been updated to: <b>%s</b></p>",
			payload.NewStatus),
	}
	if err := n.mailer.Send(msg); err != nil {
		n.logger.Warn("status change email failed", zap.String("ticket_id", event.TicketID), zap.Error(err))
	}
	return nil
}
