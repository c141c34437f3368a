package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/chethan059/compliment-generator/internal/domain"
)

// Telegram delivers compliments as Telegram messages to one chat. The
// Silent setting maps to Telegram's silent delivery (no notification sound
// on the receiving device).
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *zap.Logger
}

// NewTelegram creates a Telegram dispatcher for the given bot token and chat.
func NewTelegram(token string, chatID int64, log *zap.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	bot.Debug = false
	return &Telegram{bot: bot, chatID: chatID, log: log}, nil
}

func (t *Telegram) Name() string { return "telegram" }

func (t *Telegram) Deliver(_ context.Context, c domain.Compliment, settings domain.Settings) error {
	title := "Surprise Compliment"
	if c.IsCustom {
		title = "Your Compliment"
	}
	msg := tgbotapi.NewMessage(t.chatID, title+"\n\n"+c.Text)
	msg.DisableNotification = settings.Silent

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	t.log.Debug("telegram delivered", zap.String("compliment_id", c.ID))
	return nil
}
