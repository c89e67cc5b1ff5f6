package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	channelDomain "github.com/reshetovitsme/tg-link-rewriter/internal/modules/channel/domain"
	channelService "github.com/reshetovitsme/tg-link-rewriter/internal/modules/channel/service"
	pipelineService "github.com/reshetovitsme/tg-link-rewriter/internal/modules/pipeline/service"
	settingsService "github.com/reshetovitsme/tg-link-rewriter/internal/modules/settings/service"
	"github.com/reshetovitsme/tg-link-rewriter/internal/shared/config"
	sharederrors "github.com/reshetovitsme/tg-link-rewriter/internal/shared/errors"
)

// Handler routes Telegram updates: channel posts into the pipeline, admin
// commands through parse, authorization and execution.
type Handler struct {
	cfg      *config.Config
	channels *channelService.Store
	settings *settingsService.Store
	pipeline *pipelineService.Service
}

// New creates a new Telegram handler
func New(cfg *config.Config, channels *channelService.Store, settings *settingsService.Store, pipeline *pipelineService.Service) *Handler {
	return &Handler{
		cfg:      cfg,
		channels: channels,
		settings: settings,
		pipeline: pipeline,
	}
}

// RegisterCommands registers bot commands; every keyword routes through the
// same parse-then-dispatch path.
func (h *Handler) RegisterCommands(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/add_channel", bot.MatchTypePrefix, h.handleCommand)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/remove_channel", bot.MatchTypePrefix, h.handleCommand)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/list_channels", bot.MatchTypeExact, h.handleCommand)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/set_text", bot.MatchTypePrefix, h.handleCommand)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/set_link_text", bot.MatchTypePrefix, h.handleCommand)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypeExact, h.handleCommand)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, h.handleCommand)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, h.handleCommand)
}

// HandleUpdate processes incoming updates that no command handler claimed.
func (h *Handler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.ChannelPost != nil {
		h.enqueueChannelPost(update.ChannelPost)
	} else if update.Message != nil && update.Message.Chat.Type == models.ChatTypeChannel {
		h.enqueueChannelPost(update.Message)
	}
	// Anything else, unknown private commands included, is ignored.
}

func (h *Handler) enqueueChannelPost(msg *models.Message) {
	if msg == nil {
		return
	}

	text := msg.Text
	entities := msg.Entities
	if text == "" && msg.Caption != "" {
		text = msg.Caption
		entities = msg.CaptionEntities
	}

	h.pipeline.Enqueue(pipelineService.Inbound{
		ChatID:       msg.Chat.ID,
		ChatUsername: msg.Chat.Username,
		MessageID:    msg.ID,
		Text:         text,
		Entities:     entities,
	})
}

func (h *Handler) handleCommand(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	reply := h.ExecuteCommand(msg.From.ID, msg.Text)
	if reply == "" {
		return
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   reply,
	}); err != nil {
		slog.Error("Failed to send command reply", "error", err, "chat_id", msg.Chat.ID)
	}
}

// ExecuteCommand parses, authorizes and executes one admin command, returning
// the reply text. An empty reply means silence (non-command input).
func (h *Handler) ExecuteCommand(userID int64, text string) string {
	cmd, err := ParseCommand(text)
	if err != nil {
		return ""
	}

	if !h.cfg.IsAdmin(userID) {
		slog.Warn("Unauthorized command attempt", "error", sharederrors.ErrUnauthorized, "user_id", userID, "command", cmd.Kind.String())
		return "❌ You are not authorized to use this bot."
	}

	switch cmd.Kind {
	case CommandKindAddChannel:
		return h.execAddChannel(userID, cmd.Arg)
	case CommandKindRemoveChannel:
		return h.execRemoveChannel(userID, cmd.Arg)
	case CommandKindListChannels:
		return h.execListChannels()
	case CommandKindSetText:
		return h.execSetText(userID, cmd.Arg)
	case CommandKindSetLinkText:
		return h.execSetLinkText(userID, cmd.Arg)
	case CommandKindStatus:
		return h.execStatus()
	case CommandKindHelp, CommandKindStart:
		return helpText
	default:
		return ""
	}
}

func (h *Handler) execAddChannel(userID int64, arg string) string {
	if arg == "" {
		return "Usage: /add_channel <channel>\nExample:\n• /add_channel -1001234567890\n• /add_channel @channel_username"
	}

	id, err := channelDomain.Parse(arg)
	if err != nil {
		return "❌ Invalid channel format.\nSupported:\n• channel ID: -1001234567890\n• username: @channel_username"
	}

	added, err := h.channels.Add(id)
	if err != nil {
		slog.Error("Failed to add channel", "error", err, "channel", id.String(), "user_id", userID)
		return fmt.Sprintf("❌ Failed to add channel: %s", id.String())
	}
	if !added {
		return fmt.Sprintf("⚠️ Channel already in the list: %s", id.String())
	}

	slog.Info("Channel added", "channel", id.String(), "user_id", userID)
	return fmt.Sprintf("✅ Added channel: %s", id.String())
}

func (h *Handler) execRemoveChannel(userID int64, arg string) string {
	if arg == "" {
		return "Usage: /remove_channel <channel>\nExample:\n• /remove_channel -1001234567890\n• /remove_channel @channel_username"
	}

	id, err := channelDomain.Parse(arg)
	if err != nil {
		return "❌ Invalid channel format.\nSupported:\n• channel ID: -1001234567890\n• username: @channel_username"
	}

	removed, err := h.channels.Remove(id)
	if err != nil {
		slog.Error("Failed to remove channel", "error", err, "channel", id.String(), "user_id", userID)
		return fmt.Sprintf("❌ Failed to remove channel: %s", id.String())
	}
	if !removed {
		return fmt.Sprintf("⚠️ Channel not found: %s", id.String())
	}

	slog.Info("Channel removed", "channel", id.String(), "user_id", userID)
	return fmt.Sprintf("✅ Removed channel: %s", id.String())
}

func (h *Handler) execListChannels() string {
	channels := h.channels.List()
	if len(channels) == 0 {
		return "📭 No channels are being watched.\nUse /add_channel to add one."
	}

	var text strings.Builder
	text.WriteString("📋 Watched channels:\n\n")
	for i, ch := range channels {
		text.WriteString(fmt.Sprintf("%d. %s\n", i+1, ch.String()))
	}
	text.WriteString(fmt.Sprintf("\nTotal: %d", len(channels)))
	return text.String()
}

func (h *Handler) execSetText(userID int64, arg string) string {
	settings, err := h.settings.UpdateDetectionText(arg)
	if err != nil {
		if errors.Is(err, sharederrors.ErrEmptyText) {
			current := h.settings.Get()
			return fmt.Sprintf("Usage: /set_text <new detection text>\n\nCurrent detection text: %s", current.DetectionText)
		}
		slog.Error("Failed to update detection text", "error", err, "user_id", userID)
		return "❌ Failed to update detection text"
	}

	slog.Info("Detection text updated", "text", settings.DetectionText, "user_id", userID)
	return fmt.Sprintf("✅ Detection text updated to: %s", settings.DetectionText)
}

func (h *Handler) execSetLinkText(userID int64, arg string) string {
	settings, err := h.settings.UpdateLinkText(arg)
	if err != nil {
		if errors.Is(err, sharederrors.ErrEmptyText) {
			current := h.settings.Get()
			return fmt.Sprintf("Usage: /set_link_text <new link label>\n\nCurrent link label: %s", current.LinkText)
		}
		slog.Error("Failed to update link text", "error", err, "user_id", userID)
		return "❌ Failed to update link text"
	}

	slog.Info("Link text updated", "text", settings.LinkText, "user_id", userID)
	return fmt.Sprintf("✅ Link label updated to: %s", settings.LinkText)
}

func (h *Handler) execStatus() string {
	stats := h.pipeline.Snapshot()
	settings := h.settings.Get()

	return fmt.Sprintf(`📊 Bot status

🔧 Configuration:
• Watched channels: %d
• Detection text: %s
• Link label: %s

📈 Pipeline:
• Messages seen: %d
• Messages matched: %d
• Messages rewritten: %d
• Errors: %d

⚙️ Last settings update: %s`,
		h.channels.Count(), settings.DetectionText, settings.LinkText,
		stats.Seen, stats.Matched, stats.Rewritten, stats.Errors,
		settings.LastUpdated)
}

const helpText = `🤖 Channel link rewriter bot

🔧 Channel management:
• /add_channel <channel> - watch a channel
• /remove_channel <channel> - stop watching a channel
• /list_channels - show watched channels

📝 Text configuration:
• /set_text <text> - set the detection text
• /set_link_text <text> - set the rewritten-link label

📊 Monitoring:
• /status - show runtime status
• /help - show this message`
