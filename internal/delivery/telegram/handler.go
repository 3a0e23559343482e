package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Handler drives the Telegram study bot.
type Handler struct {
	bot        *tgbotapi.BotAPI
	study      StudyService
	instructor InstructorService
	logger     *zap.Logger
}

// NewHandler creates a Telegram handler.
func NewHandler(bot *tgbotapi.BotAPI, study StudyService, instructor InstructorService, logger *zap.Logger) *Handler {
	return &Handler{
		bot:        bot,
		study:      study,
		instructor: instructor,
		logger:     logger,
	}
}

// Run processes updates until ctx is done.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		h.send(newMessage(chatID, msgUnknownCommand))
		return
	}

	userID := strconv.FormatInt(update.Message.From.ID, 10)
	args := strings.TrimSpace(update.Message.CommandArguments())

	switch update.Message.Command() {
	case "start":
		h.send(newMessage(chatID, msgWelcome))

	case "certs":
		h.handleCerts(chatID)

	case "quiz":
		h.handleQuizCommand(chatID, userID, args)

	case "ask":
		h.handleAskCommand(chatID, args)

	default:
		h.send(newMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message", zap.Error(err))
	}
}
