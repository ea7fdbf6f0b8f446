// internal/infra/telegram/client.go
package telegram

import (
	"gopkg.in/telebot.v3"
)

// chatRecipient addresses a chat by its raw identifier: a numeric id or an @channel name.
type chatRecipient string

func (c chatRecipient) Recipient() string {
	return string(c)
}

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the specified chat.
func (tba *TelebotAdapter) SendMessage(chatID string, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	_, err := tba.bot.Send(chatRecipient(chatID), text, options)
	return err
}
