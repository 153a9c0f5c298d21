package notify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/terraincognita07/dailybrew/internal/services"
)

var ErrTelegramNotConfigured = errors.New("telegram bot token and chat id are required")

// MessageSender is the part of *tele.Bot used for delivery.
type MessageSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type TelegramSender struct {
	bot    MessageSender
	chatID tele.ChatID
}

// NewTelegramSender builds a send-only bot. The bot is created offline so
// startup does not depend on reaching the Telegram API.
func NewTelegramSender(token string, rawChatID string) (*TelegramSender, error) {
	token = strings.TrimSpace(token)
	rawChatID = strings.TrimSpace(rawChatID)
	if token == "" || rawChatID == "" {
		return nil, ErrTelegramNotConfigured
	}

	chatID, err := strconv.ParseInt(rawChatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse telegram chat id %q: %w", rawChatID, err)
	}

	bot, err := tele.NewBot(tele.Settings{Token: token, Offline: true})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return NewTelegramSenderWithBot(bot, chatID), nil
}

func NewTelegramSenderWithBot(bot MessageSender, chatID int64) *TelegramSender {
	return &TelegramSender{bot: bot, chatID: tele.ChatID(chatID)}
}

func (sender *TelegramSender) Name() string {
	return "telegram"
}

func (sender *TelegramSender) Send(ctx context.Context, alert services.LimitAlert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := sender.bot.Send(sender.chatID, alert.Message()); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
