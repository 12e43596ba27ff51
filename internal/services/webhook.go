package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pedrodese/taskManager/internal/models"
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
	ColorGreen = 65280 // #00FF00 - Task completed

	WebhookUsername = "Task Manager"
)

// NotifyTaskCompleted sends a completion notification to the configured
// webhook, if any. WEBHOOK_TYPE selects the payload format (discord or
// slack); unset means discord.
func NotifyTaskCompleted(task models.Task) error {
	webhookURL := os.Getenv("WEBHOOK_URL")
	if webhookURL == "" {
		return nil
	}

	if os.Getenv("WEBHOOK_TYPE") == "slack" {
		if err := sendSlackTaskCompleted(webhookURL, task); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
		return nil
	}

	if err := sendDiscordTaskCompleted(webhookURL, task); err != nil {
		return fmt.Errorf("discord: %w", err)
	}

	return nil
}

func sendDiscordTaskCompleted(webhookURL string, task models.Task) error {
	completedAt := "Unknown"
	if task.CompletedAt != nil {
		completedAt = task.CompletedAt.Format("2006-01-02 15:04:05 UTC")
	}

	payload := DiscordWebhookRequest{
		Username: WebhookUsername,
		Embeds: []DiscordEmbed{
			{
				Title:       "✅ **TASK COMPLETED**",
				Description: fmt.Sprintf("**%s** has been completed.", task.Title),
				Color:       ColorGreen,
				Fields: []DiscordWebhookField{
					{Name: "📝 Task", Value: task.Title, Inline: true},
					{Name: "👤 Owner", Value: task.User.Name, Inline: true},
					{Name: "🧩 Subtasks", Value: fmt.Sprintf("%d", len(task.Subtasks)), Inline: true},
					{Name: "🏁 Completed At", Value: completedAt, Inline: true},
				},
				Footer: &DiscordFooter{
					Text: fmt.Sprintf("Owner: %s | Task Manager", task.User.Email),
				},
				Timestamp: time.Now().Format(time.RFC3339),
			},
		},
	}

	return sendDiscordWebhook(webhookURL, payload)
}

func sendSlackTaskCompleted(webhookURL string, task models.Task) error {
	completedAt := "Unknown"
	if task.CompletedAt != nil {
		completedAt = task.CompletedAt.Format("2006-01-02 15:04:05 UTC")
	}

	payload := SlackWebhookRequest{
		Username:  WebhookUsername,
		IconEmoji: ":white_check_mark:",
		Text:      ":white_check_mark: *TASK COMPLETED*",
		Attachments: []SlackAttachment{
			{
				Color: "good",
				Title: fmt.Sprintf("Task '%s' has been completed", task.Title),
				Text:  task.Description,
				Fields: []SlackField{
					{Title: "Task", Value: task.Title, Short: true},
					{Title: "Owner", Value: task.User.Name, Short: true},
					{Title: "Subtasks", Value: fmt.Sprintf("%d", len(task.Subtasks)), Short: true},
					{Title: "Completed At", Value: completedAt, Short: true},
				},
				Footer:    "Task Manager",
				Timestamp: time.Now().Unix(),
			},
		},
	}

	return sendSlackWebhook(webhookURL, payload)
}

func sendDiscordWebhook(webhookURL string, payload DiscordWebhookRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	return postWebhook(webhookURL, body)
}

func sendSlackWebhook(webhookURL string, payload SlackWebhookRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	return postWebhook(webhookURL, body)
}

func postWebhook(webhookURL string, body []byte) error {
	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Post(webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
