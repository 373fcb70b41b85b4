package handler

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/crewdesk/staffing/backend/internal/domain"
)

// publishMail puts a message on the notification queue. The notify worker
// renders and delivers it.
func (h *Handler) publishMail(msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.notifyChannel.PublishWithContext(
		ctx,
		"",
		"notify_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// notifyTimesheetEvent mails the affected party about a timesheet transition.
// Notification failures are reported to the caller; the transition itself has
// already committed.
func (h *Handler) notifyTimesheetEvent(to *domain.User, shift *domain.Shift, event domain.TimesheetEvent, reason string) error {
	return h.publishMail(domain.MailMessage{
		Type: "timesheet_event",
		To:   to.Email,
		Data: domain.TimesheetEventMailData{
			FullName: to.FullName,
			JobName:  shift.JobName,
			Event:    string(event),
			Reason:   reason,
		},
	})
}
