package service

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
)

// TelegramNotifier доставка сообщений через Telegram Bot API
type TelegramNotifier struct {
	bot *bot.Bot
}

func NewTelegramNotifier(b *bot.Bot) *TelegramNotifier {
	return &TelegramNotifier{bot: b}
}

// SendMessage отправляет текстовое сообщение в чат
func (n *TelegramNotifier) SendMessage(ctx context.Context, chatID int64, text string) error {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("send message to %d: %w", chatID, err)
	}
	return nil
}
