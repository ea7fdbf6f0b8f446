// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const (
	startText = "Привет! Я слежу за статусом проверки домашних работ и пишу сюда, когда он меняется."
	helpText  = "Я опрашиваю API Практикума каждые %s и присылаю сообщение при изменении статуса работы. " +
		"Если что-то пошло не так, я сообщу об ошибке здесь же.\n\n`/help` - Показать это сообщение."
)

// RegisterBotCommands registers /start and /help. They answer in the configured chat only.
func RegisterBotCommands(b *telebot.Bot, chatID string, retryPeriod time.Duration, baseLogger *logrus.Entry) {
	startHelpLogger := baseLogger.WithField("handler_group", "start_help")

	b.Handle("/start", func(c telebot.Context) error {
		logCtx := startHelpLogger.WithField("command", "/start")
		if !IsConfiguredChat(c.Chat(), chatID) {
			logCtx.WithField("chat", chatRef(c.Chat())).Info("Ignoring command from foreign chat")
			return nil
		}
		logCtx.Info("Processing /start command")
		return c.Send(startText)
	})

	b.Handle("/help", func(c telebot.Context) error {
		logCtx := startHelpLogger.WithField("command", "/help")
		if !IsConfiguredChat(c.Chat(), chatID) {
			logCtx.WithField("chat", chatRef(c.Chat())).Info("Ignoring command from foreign chat")
			return nil
		}
		logCtx.Info("Processing /help command")
		return c.Send(fmt.Sprintf(helpText, retryPeriod), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})
}

// IsConfiguredChat reports whether chat is the one the bot reports to. chatID may be a
// numeric id or an @username.
func IsConfiguredChat(chat *telebot.Chat, chatID string) bool {
	if chat == nil {
		return false
	}
	if strconv.FormatInt(chat.ID, 10) == chatID {
		return true
	}
	return chat.Username != "" && strings.EqualFold("@"+chat.Username, chatID)
}

func chatRef(chat *telebot.Chat) string {
	if chat == nil {
		return ""
	}
	return strconv.FormatInt(chat.ID, 10)
}
