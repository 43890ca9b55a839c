package bot

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/beer-league/faqbot/src/discord"
	"github.com/beer-league/faqbot/src/logging"
)

const (
	msgNoChannelSet   = "No FAQ channel set yet. An admin needs to run `/setchannel` first."
	msgGenericFailure = "Sorry, I ran into an error. Try again in a moment."
	msgRateLimited    = "I'm answering a lot of questions right now. Give it a minute and try again."
	msgEmptyQuestion  = "Ask me a question about the Beer League rulebook!"
)

// Interaction and message handlers each run on their own goroutine (discordgo
// dispatches every event asynchronously), so a slow model call never blocks
// the gateway or other in-flight questions.

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case discord.CommandAsk:
		b.handleAsk(s, i)
	case discord.CommandSetChannel:
		b.handleSetChannel(s, i)
	}
}

func (b *Bot) handleAsk(s *discordgo.Session, i *discordgo.InteractionCreate) {
	faqChannel := b.channelID()
	if faqChannel == "" {
		respondEphemeral(s, i, msgNoChannelSet)
		return
	}
	if i.ChannelID != faqChannel {
		respondEphemeral(s, i, fmt.Sprintf("I only answer questions in %s!", channelMention(faqChannel)))
		return
	}

	question := strings.TrimSpace(i.ApplicationCommandData().Options[0].StringValue())
	if question == "" {
		respondEphemeral(s, i, msgEmptyQuestion)
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Printf("Failed to defer /ask response: %v", err)
		return
	}

	b.recent.Add(interactionUser(i), question)

	answer, err := b.answers.Ask(b.ctx, question)
	if err != nil {
		log.Printf("Model API error: %v", err)
		followUp(s, i, failureMessage(err))
		return
	}

	for idx, chunk := range discord.SplitMessage(answer, discord.SafeChunkLen) {
		if idx == 0 {
			followUp(s, i, chunk)
			continue
		}
		if _, err := s.ChannelMessageSend(i.ChannelID, chunk); err != nil {
			log.Printf("Failed to send answer chunk: %v", err)
			return
		}
	}
}

func (b *Bot) handleSetChannel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.setChannelID(i.ChannelID)
	log.Printf("FAQ channel set to %s by %s", i.ChannelID, interactionUser(i))

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "This channel is now the Beer FAQ channel! Use `/ask` or @mention me here to ask questions about the rulebook.",
		},
	})
	if err != nil {
		log.Printf("Failed to respond to /setchannel: %v", err)
	}
}

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.Bot || s.State.User == nil {
		return
	}
	if !mentionsUser(m, s.State.User.ID) {
		return
	}

	faqChannel := b.channelID()
	if faqChannel == "" {
		b.reply(s, m, msgNoChannelSet)
		return
	}
	if m.ChannelID != faqChannel {
		b.reply(s, m, fmt.Sprintf("I only answer questions in %s!", channelMention(faqChannel)))
		return
	}

	question := stripMention(m.Content, s.State.User.ID)
	if question == "" {
		b.reply(s, m, msgEmptyQuestion)
		return
	}

	if err := s.ChannelTyping(m.ChannelID); err != nil {
		log.Printf("Failed to send typing indicator: %v", err)
	}

	b.recent.Add(m.Author.Username, question)

	answer, err := b.answers.Ask(b.ctx, question)
	if err != nil {
		log.Printf("Model API error: %v", err)
		b.reply(s, m, failureMessage(err))
		return
	}

	for _, chunk := range discord.SplitMessage(answer, discord.SafeChunkLen) {
		if !b.reply(s, m, chunk) {
			return
		}
	}
}

func (b *Bot) reply(s *discordgo.Session, m *discordgo.MessageCreate, content string) bool {
	_, err := s.ChannelMessageSendReply(m.ChannelID, content, m.Reference())
	if err != nil {
		log.Printf("Failed to send reply: %v", err)
		return false
	}
	return true
}

func failureMessage(err error) string {
	if logging.IsRateLimit(err) {
		return msgRateLimited
	}
	return msgGenericFailure
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Failed to send ephemeral response: %v", err)
	}
}

func followUp(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
	})
	if err != nil {
		log.Printf("Failed to send follow-up: %v", err)
	}
}

func interactionUser(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.Username
	}
	if i.User != nil {
		return i.User.Username
	}
	return "unknown"
}

func mentionsUser(m *discordgo.MessageCreate, userID string) bool {
	for _, u := range m.Mentions {
		if u.ID == userID {
			return true
		}
	}
	return false
}

func stripMention(content, userID string) string {
	content = strings.ReplaceAll(content, fmt.Sprintf("<@%s>", userID), "")
	content = strings.ReplaceAll(content, fmt.Sprintf("<@!%s>", userID), "")
	return strings.TrimSpace(content)
}
