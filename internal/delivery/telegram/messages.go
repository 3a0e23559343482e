// messages.go contains message templates for the study bot.

package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	msgWelcome = "Welcome to the certification study bot!\n\n" +
		"/certs — list available certifications\n" +
		"/quiz <cert-id> — start a practice quiz\n" +
		"/ask <cert-id> | <domain> | <question> — ask the instructor"

	msgUnknownCommand = "Unknown command. Available commands:\n\n" +
		"/certs — list available certifications\n" +
		"/quiz <cert-id> — start a practice quiz\n" +
		"/ask <cert-id> | <domain> | <question> — ask the instructor"

	msgCertNotFound    = "Certification not found. Use /certs to see what's available."
	msgQuizUsage       = "Usage: /quiz <cert-id>. Use /certs to see the ids."
	msgAskUsage        = "Usage: /ask <cert-id> | <domain> | <question>"
	msgQuizUnavailable = "Could not build a quiz for this certification. Try another one."
	msgQuizExpired     = "This quiz is no longer active. Start a new one with /quiz."
	msgCorrect         = "✅ Correct!"
	msgIncorrect       = "❌ Not quite."
)

func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	return msg
}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}
