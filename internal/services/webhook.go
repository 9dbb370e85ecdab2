package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vipcrm/vipcrm/internal/config"
	"github.com/vipcrm/vipcrm/internal/models"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Footer      *DiscordFooter        `json:"footer,omitempty"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	ColorBlue = 3447003 // #3498DB

	Username = "VIP CRM"
)

// Notifier posts interaction summaries to the configured chat webhooks.
// A zero Notifier is disabled.
type Notifier struct {
	DiscordURL string
	SlackURL   string
	Client     *http.Client
}

func NewNotifier(cfg config.WebhookConfig) *Notifier {
	return &Notifier{
		DiscordURL: cfg.DiscordURL,
		SlackURL:   cfg.SlackURL,
		Client:     &http.Client{Timeout: cfg.Timeout},
	}
}

func (n *Notifier) Enabled() bool {
	return n != nil && (n.DiscordURL != "" || n.SlackURL != "")
}

// InteractionLogged describes a freshly created interaction.
type InteractionLogged struct {
	Client      models.VIPClient
	Interaction models.Interaction
	Author      string
}

// SendInteractionLogged posts to every configured webhook. A failing target
// does not stop the others; all failures are returned together.
func (n *Notifier) SendInteractionLogged(event InteractionLogged) error {
	if !n.Enabled() {
		return nil
	}

	var discordErr, slackErr error

	if n.DiscordURL != "" {
		if err := n.post(n.DiscordURL, discordInteractionLogged(event)); err != nil {
			discordErr = fmt.Errorf("discord: %w", err)
		}
	}

	if n.SlackURL != "" {
		if err := n.post(n.SlackURL, slackInteractionLogged(event)); err != nil {
			slackErr = fmt.Errorf("slack: %w", err)
		}
	}

	return errors.Join(discordErr, slackErr)
}

func interactionFields(event InteractionLogged) (channel, author string) {
	channel = event.Interaction.ChannelLabel()
	if channel == "" {
		channel = "Not specified"
	}

	author = event.Author
	if author == "" {
		author = "Unknown"
	}

	return channel, author
}

func discordInteractionLogged(event InteractionLogged) DiscordWebhookRequest {
	channel, author := interactionFields(event)

	return DiscordWebhookRequest{
		Username: Username,
		Embeds: []DiscordEmbed{
			{
				Title:       "New interaction logged",
				Description: fmt.Sprintf("**%s**: %s", event.Client.FullName, event.Interaction.Description),
				Color:       ColorBlue,
				Fields: []DiscordWebhookField{
					{Name: "Client", Value: event.Client.FullName, Inline: true},
					{Name: "Type", Value: event.Interaction.Type.Label(), Inline: true},
					{Name: "Channel", Value: channel, Inline: true},
					{Name: "Date", Value: event.Interaction.Day().Format("2006-01-02"), Inline: true},
					{Name: "Logged by", Value: author, Inline: true},
				},
				Footer: &DiscordFooter{
					Text: fmt.Sprintf("Client status: %s", event.Client.Status.Label()),
				},
				Timestamp: time.Now().Format(time.RFC3339),
			},
		},
	}
}

func slackInteractionLogged(event InteractionLogged) SlackWebhookRequest {
	channel, author := interactionFields(event)

	return SlackWebhookRequest{
		Username:  Username,
		IconEmoji: ":handshake:",
		Text:      fmt.Sprintf("*New interaction with %s*", event.Client.FullName),
		Attachments: []SlackAttachment{
			{
				Color: "#3498DB",
				Title: event.Interaction.Type.Label(),
				Text:  event.Interaction.Description,
				Fields: []SlackField{
					{Title: "Channel", Value: channel, Short: true},
					{Title: "Date", Value: event.Interaction.Day().Format("2006-01-02"), Short: true},
					{Title: "Logged by", Value: author, Short: true},
					{Title: "Client status", Value: event.Client.Status.Label(), Short: true},
				},
				Footer:    Username,
				Timestamp: time.Now().Unix(),
			},
		},
	}
}

func (n *Notifier) post(webhookURL string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
