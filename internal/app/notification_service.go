// internal/app/notification_service.go
package app

import (
	"context"

	"homework_status_bot/internal/domain/notification"
	domainTelegram "homework_status_bot/internal/domain/telegram" // Import from domain

	"github.com/sirupsen/logrus"
)

// Notifier delivers a message to the configured chat. It never fails visibly.
type Notifier interface {
	Notify(ctx context.Context, kind notification.Kind, message string)
}

// NotificationService implements Notifier on top of a Telegram client.
type NotificationService struct {
	telegramClient domainTelegram.Client
	journal        notification.Repository // optional
	chatID         string
	logger         *logrus.Entry
}

// NewNotificationService builds the notifier. journal may be nil.
func NewNotificationService(
	tc domainTelegram.Client,
	journal notification.Repository,
	chatID string,
	logger *logrus.Entry,
) *NotificationService {
	return &NotificationService{
		telegramClient: tc,
		journal:        journal,
		chatID:         chatID,
		logger:         logger,
	}
}

// Notify sends message to the chat. Delivery and journal errors are logged and dropped.
func (s *NotificationService) Notify(ctx context.Context, kind notification.Kind, message string) {
	log := s.logger.WithFields(logrus.Fields{"chat_id": s.chatID, "kind": kind})
	log.Debug("Отправка сообщения в Telegram.")

	delivery := &notification.Delivery{ChatID: s.chatID, Kind: kind, Message: message}
	if err := s.telegramClient.SendMessage(s.chatID, message, nil); err != nil {
		log.WithError(err).Error("Ошибка при отправке сообщения")
		delivery.Error = err.Error()
	} else {
		log.Debug("Сообщение в Telegram успешно отправлено.")
		delivery.Delivered = true
	}

	if s.journal == nil {
		return
	}
	if err := s.journal.Record(ctx, delivery); err != nil {
		log.WithError(err).Error("Failed to record delivery in journal")
	}
}
