package telegram

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/studylab/certprep/internal/domain/entities"
	"github.com/studylab/certprep/internal/service"
)

func (h *Handler) handleCerts(chatID int64) {
	certs := h.study.Certifications()

	var b strings.Builder
	b.WriteString("<b>Available certifications:</b>\n\n")
	for _, c := range certs {
		fmt.Fprintf(&b, "<b>%s</b> (%s)\nid: <code>%s</code>\n%s\n\n", c.Name, c.ExamCode, c.ID, c.Description)
	}
	b.WriteString("Start a quiz with /quiz &lt;cert-id&gt;")

	h.send(newHTMLMessage(chatID, b.String()))
}

func (h *Handler) handleQuizCommand(chatID int64, userID, args string) {
	if args == "" {
		h.send(newMessage(chatID, msgQuizUsage))
		return
	}

	session, err := h.study.StartPractice(userID, args, "")
	if err != nil {
		h.logger.Debug("failed to start quiz",
			zap.String("certification_id", args),
			zap.Error(err),
		)
		switch {
		case errors.Is(err, service.ErrNoQuestionsAvailable):
			h.send(newMessage(chatID, msgQuizUnavailable))
		default:
			h.send(newMessage(chatID, msgCertNotFound))
		}
		return
	}

	h.sendQuestion(chatID, session)
}

// handleAskCommand parses "/ask cert-id | domain | question" and relays
// the instructor's answer.
func (h *Handler) handleAskCommand(chatID int64, args string) {
	parts := strings.SplitN(args, "|", 3)
	if len(parts) != 3 {
		h.send(newMessage(chatID, msgAskUsage))
		return
	}

	certID := strings.TrimSpace(parts[0])
	domain := strings.TrimSpace(parts[1])
	question := strings.TrimSpace(parts[2])
	if certID == "" || domain == "" || question == "" {
		h.send(newMessage(chatID, msgAskUsage))
		return
	}

	answer, err := h.instructor.Respond(certID, domain, question)
	if err != nil {
		h.send(newMessage(chatID, msgCertNotFound))
		return
	}

	h.send(newMessage(chatID, answer))
}

func (h *Handler) sendQuestion(chatID int64, session *service.PracticeSession) {
	q, index, total, _, _ := session.Current()

	text := fmt.Sprintf("<b>Question %d of %d</b> (%s)\n\n%s", index+1, total, q.Domain, q.Question)

	msg := newHTMLMessage(chatID, text)
	msg.ReplyMarkup = buildOptionsKeyboard(session.ID, q)
	h.send(msg)
}

func buildOptionsKeyboard(sessionID string, q entities.GeneratedQuestion) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for i, opt := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt, buildQuizAnswerCallback(sessionID, i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
