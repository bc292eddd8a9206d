package telegramimpl

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-engagement-ingest/pkg/formatter"
)

// SendMessageToUser sends a text message to the configured user
func (tg *TelegramImpl) SendMessageToUser(message string) {
	tg.send(tgbotapi.NewMessage(tg.User, message))
}

// NotifyFailure sends a MarkdownV2 formatted failure notice to the configured user
func (tg *TelegramImpl) NotifyFailure(target, reason string) {
	msg := tgbotapi.NewMessage(tg.User, failureMessage(target, reason))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	tg.send(msg)
}

func (tg *TelegramImpl) send(msg tgbotapi.MessageConfig) {
	if tg.TgBot == nil {
		tg.Logger.Debug("Notification skipped, bot disabled")
		return
	}

	if _, err := tg.TgBot.Send(msg); err != nil {
		tg.Logger.Error("Error sending message to user",
			"userID", tg.User,
			"error", err)
		return
	}

	tg.Logger.Info("Message sent to user",
		"userID", tg.User)
}

func failureMessage(target, reason string) string {
	return fmt.Sprintf("⚠️ *Ingestion failed for %s*\n\n%s",
		formatter.EscapeMarkdownV2(target),
		formatter.EscapeMarkdownV2(formatter.Truncate(reason, 300)))
}
