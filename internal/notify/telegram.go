package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramPinger posts alerts to a single studio chat.
type TelegramPinger struct {
	bot    botSender
	chatID int64
}

var _ Pinger = (*TelegramPinger)(nil)

// NewTelegramPinger authenticates with the Bot API using token.
func NewTelegramPinger(token string, chatID int64) (*TelegramPinger, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramPinger{bot: bot, chatID: chatID}, nil
}

func (p *TelegramPinger) Ping(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(p.chatID, text)
	msg.DisableWebPagePreview = true
	_, err := p.bot.Send(msg)
	return err
}
