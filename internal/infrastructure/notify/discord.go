package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"randohub/internal/domain"
	"randohub/internal/ports/output"
)

var _ output.Notifier = (*DiscordSender)(nil)

const embedColor = 0x2E8B57

// ChannelMessenger is the part of *discordgo.Session used to post messages.
type ChannelMessenger interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordSender mirrors notifications into a staff channel. It never
// replaces email delivery.
type DiscordSender struct {
	session   ChannelMessenger
	channelID string
	renderer  *Renderer
}

func NewDiscordSender(session ChannelMessenger, channelID string, renderer *Renderer) *DiscordSender {
	return &DiscordSender{session: session, channelID: channelID, renderer: renderer}
}

// NewDiscordSession opens a bot session for token. Only the REST API is used,
// so no gateway connection is made.
func NewDiscordSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return s, nil
}

func (s *DiscordSender) Send(ctx context.Context, to string, kind domain.TemplateKind, payload output.Payload) error {
	subject, _ := s.renderer.Render(kind, payload)
	embed := buildNotificationEmbed(s.renderer.Mirror(to, subject), kind, payload)
	if _, err := s.session.ChannelMessageSendEmbed(s.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord mirror %s: %w", kind, err)
	}
	return nil
}

// buildNotificationEmbed never carries verification codes.
func buildNotificationEmbed(title string, kind domain.TemplateKind, payload output.Payload) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  title,
		Color:  embedColor,
		Footer: &discordgo.MessageEmbedFooter{Text: string(kind)},
	}
	if kind == domain.TemplateVerificationCode {
		return embed
	}
	if name, ok := payload["EventName"].(string); ok && name != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Sortie", Value: name, Inline: true})
	}
	if loc, ok := payload["Location"].(string); ok && loc != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Lieu", Value: loc, Inline: true})
	}
	return embed
}
