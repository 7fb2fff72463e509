// Package notify posts newly logged entries to the community Discord
// channel. Announcements are best-effort: a failure is logged and never
// blocks the submission.
package notify

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/SBleeyouk/deepfake-daily/internal/entry"
	"github.com/SBleeyouk/deepfake-daily/pkg/logger"
)

// Announcer publishes entry announcements.
type Announcer interface {
	AnnounceEntry(e *entry.Entry)
	Close() error
}

// DiscordAnnouncer posts to a fixed channel via a bot session.
type DiscordAnnouncer struct {
	session   *discordgo.Session
	channelID string
	logger    *zap.Logger
}

// NewDiscordAnnouncer opens a bot session. Returns an error when the token
// is rejected; callers treat announcements as optional and fall back to
// NoopAnnouncer.
func NewDiscordAnnouncer(token, channelID string) (*DiscordAnnouncer, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("open discord session: %w", err)
	}
	return &DiscordAnnouncer{
		session:   session,
		channelID: channelID,
		logger:    logger.Get(),
	}, nil
}

// AnnounceEntry posts a short summary of a freshly logged entry.
func (a *DiscordAnnouncer) AnnounceEntry(e *entry.Entry) {
	var b strings.Builder
	fmt.Fprintf(&b, "**New %s logged:** %s", e.Category, e.Title)
	if len(e.Tags) > 0 {
		fmt.Fprintf(&b, "\nTags: %s", strings.Join(e.Tags, ", "))
	}
	if e.AttachmentURL != "" {
		fmt.Fprintf(&b, "\n<%s>", e.AttachmentURL)
	}

	if _, err := a.session.ChannelMessageSend(a.channelID, b.String()); err != nil {
		a.logger.Warn("Failed to announce entry",
			zap.String("entry_id", e.ID),
			zap.Error(err),
		)
	}
}

// Close shuts down the bot session.
func (a *DiscordAnnouncer) Close() error {
	return a.session.Close()
}

// NoopAnnouncer is used when no bot token is configured.
type NoopAnnouncer struct{}

func (NoopAnnouncer) AnnounceEntry(*entry.Entry) {}
func (NoopAnnouncer) Close() error               { return nil }
