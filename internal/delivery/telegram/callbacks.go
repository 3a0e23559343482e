package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/studylab/certprep/internal/domain/entities"
)

const actionQuiz = "quiz"

// buildQuizAnswerCallback encodes "quiz:<session>:<option>".
func buildQuizAnswerCallback(sessionID string, option int) string {
	return actionQuiz + ":" + sessionID + ":" + strconv.Itoa(option)
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	switch {
	case strings.HasPrefix(cb.Data, actionQuiz+":"):
		h.handleQuizAnswer(cb)
	default:
		return
	}

	answer := tgbotapi.NewCallback(cb.ID, "")
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Error("failed to answer callback", zap.Error(err))
	}
}

func (h *Handler) handleQuizAnswer(cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID

	parts := strings.Split(cb.Data, ":")
	if len(parts) != 3 {
		h.logger.Debug("invalid quiz callback data", zap.String("data", cb.Data))
		return
	}

	sessionID := parts[1]
	option, err := strconv.Atoi(parts[2])
	if err != nil {
		h.logger.Debug("invalid quiz option", zap.String("data", cb.Data))
		return
	}

	session, err := h.study.Practice(sessionID)
	if err != nil {
		h.send(newMessage(chatID, msgQuizExpired))
		return
	}

	if err := session.Select(option); err != nil {
		h.send(newMessage(chatID, msgQuizExpired))
		return
	}
	attempt, err := session.Submit()
	if err != nil {
		h.send(newMessage(chatID, msgQuizExpired))
		return
	}

	h.sendFeedback(chatID, cb.Message.MessageID, attempt)

	if err := session.Next(); err != nil {
		return
	}

	if session.Phase() == entities.PhaseReview {
		correct, incorrect := session.Summary()
		h.send(newHTMLMessage(chatID, fmt.Sprintf(
			"<b>Quiz finished!</b>\n\nCorrect: %d\nIncorrect: %d",
			correct, incorrect,
		)))
		h.study.DiscardPractice(sessionID)
		return
	}

	h.sendQuestion(chatID, session)
}

func (h *Handler) sendFeedback(chatID int64, messageID int, attempt entities.QuestionAttempt) {
	verdict := msgCorrect
	if !attempt.Correct {
		verdict = fmt.Sprintf("%s The answer is: %s",
			msgIncorrect, attempt.Question.Options[attempt.Question.CorrectIndex])
	}

	text := fmt.Sprintf("%s\n\n%s\n\n<i>%s</i>", attempt.Question.Question, verdict, attempt.Question.Explanation)

	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	h.send(edit)
}
