// Package telegram is the chat transport: message delivery, the
// authorized-recipient check and the inbound command loop.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const (
	greetingMsg     = "Hello! Send /traffic for a live usage report of every configured VPS."
	ackMsg          = "Querying traffic for all configured VPS instances, hold on..."
	unauthorizedMsg = "Sorry, you are not authorized to use this bot."
)

// Handler serves an authorized on-demand report request.
type Handler interface {
	HandleReportRequest(ctx context.Context, requester int64)
}

// Bot wraps the Telegram Bot API. It implements dispatch.Transport.
type Bot struct {
	api        *tgbotapi.BotAPI
	authorized map[int64]struct{}
	logger     zerolog.Logger
}

func NewBot(token string, recipients []int64, logger zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot api: %w", err)
	}
	return newBot(api, recipients, logger), nil
}

func newBot(api *tgbotapi.BotAPI, recipients []int64, logger zerolog.Logger) *Bot {
	authorized := make(map[int64]struct{}, len(recipients))
	for _, r := range recipients {
		authorized[r] = struct{}{}
	}
	return &Bot{api: api, authorized: authorized, logger: logger}
}

// Deliver sends Markdown text to a chat.
func (b *Bot) Deliver(ctx context.Context, recipient int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(recipient, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send message to %d: %w", recipient, err)
	}
	return nil
}

// Authorize reports whether the identity is a configured recipient.
func (b *Bot) Authorize(identity int64) bool {
	_, ok := b.authorized[identity]
	return ok
}

// Run long-polls updates and routes commands until ctx is cancelled.
func (b *Bot) Run(ctx context.Context, handler Handler) error {
	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = 30
	updates := b.api.GetUpdatesChan(updateCfg)

	b.logger.Info().Str("bot", b.api.Self.UserName).Msg("telegram update loop started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update, handler)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update, handler Handler) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	chatID := update.Message.Chat.ID
	command := update.Message.Command()

	if !b.Authorize(chatID) {
		b.logger.Warn().Int64("chat_id", chatID).Str("command", command).Msg("unauthorized command")
		b.reply(ctx, chatID, unauthorizedMsg)
		return
	}

	switch command {
	case "start":
		b.reply(ctx, chatID, greetingMsg)
	case "traffic":
		b.reply(ctx, chatID, ackMsg)
		handler.HandleReportRequest(ctx, chatID)
	}
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.Deliver(ctx, chatID, text); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("reply failed")
	}
}
