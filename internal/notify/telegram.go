// Package notify pushes operational pings to the admin team.
package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"sira/backend/internal/models"
)

// Notifier receives lifecycle events worth telling an admin about.
// Implementations must never fail the triggering operation.
type Notifier interface {
	ReportCreated(report *models.Report)
}

// TelegramNotifier sends a short message to the admin chat for every
// new report. Send-only: the bot never polls for updates.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier ініціалізує бота за токеном. Повертає помилку,
// якщо токен невалідний.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// ReportCreated надсилає сповіщення про новий репорт в адмін-чат.
// Помилки лише логуються — сповіщення не впливає на створення репорту.
func (n *TelegramNotifier) ReportCreated(report *models.Report) {
	text := fmt.Sprintf("📋 New report %s\nType: %s\nLocation: %s\nEvidence: %d file(s)",
		report.ID, report.IssueType, report.Location, len(report.Evidence))
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send Telegram notification for report %s: %v", report.ID, err)
	}
}
