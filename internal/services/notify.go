package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// LeadNotifier posts a webhook message whenever a visitor leaves a
// contact request, so new leads surface in the team channel without
// anyone polling the admin panel.
type LeadNotifier struct {
	webhookURL string
	client     *http.Client
}

type webhookMessage struct {
	Blocks []block `json:"blocks"`
}

type block struct {
	Type   string  `json:"type"`
	Text   *text   `json:"text,omitempty"`
	Fields []*text `json:"fields,omitempty"`
}

type text struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

func NewLeadNotifier(webhookURL string) *LeadNotifier {
	return &LeadNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{},
	}
}

// SendLeadAlert notifies the channel about a new contact request. With
// no webhook configured it is a no-op; callers never fail on it.
func (n *LeadNotifier) SendLeadAlert(name, number string) error {
	if n.webhookURL == "" {
		return nil
	}

	message := webhookMessage{
		Blocks: []block{
			{
				Type: "header",
				Text: &text{Type: "plain_text", Text: "New contact request", Emoji: true},
			},
			{
				Type: "section",
				Fields: []*text{
					{Type: "mrkdwn", Text: fmt.Sprintf("*Name:*\n%s", name)},
					{Type: "mrkdwn", Text: fmt.Sprintf("*Number:*\n%s", number)},
				},
			},
		},
	}

	return n.sendMessage(message)
}

func (n *LeadNotifier) sendMessage(message webhookMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal webhook message: %w", err)
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
