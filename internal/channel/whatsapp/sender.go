package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/viniciusalbino/autoAtendeAI/internal/reply"
)

const (
	DefaultBaseURL    = "https://graph.facebook.com"
	DefaultAPIVersion = "v17.0"

	maxButtons     = 3
	maxButtonTitle = 20
	maxBodyText    = 1024
	maxCaption     = 1024
)

type Config struct {
	Token         string
	PhoneNumberID string
	APIVersion    string
	BaseURL       string
}

// APIError is a non-2xx answer from the Graph API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("whatsapp: api status %d: %s", e.Status, e.Body)
}

// Client sends reply units through the WhatsApp Cloud API.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient returns a Client. A nil httpClient gets a 30s timeout client.
func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg, http: httpClient, logger: logger}
}

// Send delivers units to the recipient in order, stopping at the first failure.
func (c *Client) Send(ctx context.Context, to string, units []reply.Unit) error {
	for _, u := range units {
		if err := c.sendOne(ctx, buildMessage(to, u)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) sendOne(ctx context.Context, msg outboundMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("whatsapp: marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s/messages", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.APIVersion, c.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("whatsapp: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}
	c.logger.Debug("whatsapp message sent", zap.String("to", msg.To), zap.String("type", msg.Type))
	return nil
}

type outboundMessage struct {
	MessagingProduct string          `json:"messaging_product"`
	RecipientType    string          `json:"recipient_type"`
	To               string          `json:"to"`
	Type             string          `json:"type"`
	Text             *outText        `json:"text,omitempty"`
	Image            *outImage       `json:"image,omitempty"`
	Interactive      *outInteractive `json:"interactive,omitempty"`
}

type outText struct {
	Body string `json:"body"`
}

type outImage struct {
	Link    string `json:"link"`
	Caption string `json:"caption,omitempty"`
}

type outInteractive struct {
	Type   string     `json:"type"`
	Header *outHeader `json:"header,omitempty"`
	Body   outText    `json:"body"`
	Action outAction  `json:"action"`
}

type outHeader struct {
	Type  string    `json:"type"`
	Image *outImage `json:"image,omitempty"`
}

type outAction struct {
	Buttons []outButton `json:"buttons"`
}

type outButton struct {
	Type  string         `json:"type"`
	Reply outButtonReply `json:"reply"`
}

type outButtonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// buildMessage picks the message type: interactive buttons when the unit has actions,
// an image with caption when it has an image, plain text otherwise.
func buildMessage(to string, u reply.Unit) outboundMessage {
	msg := outboundMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               recipient(to),
	}
	switch {
	case len(u.Actions) > 0:
		msg.Type = "interactive"
		in := &outInteractive{Type: "button", Body: outText{Body: truncate(u.Text, maxBodyText)}}
		if u.Image != "" {
			in.Header = &outHeader{Type: "image", Image: &outImage{Link: u.Image}}
		}
		for i, a := range u.Actions {
			if i == maxButtons {
				break
			}
			in.Action.Buttons = append(in.Action.Buttons, outButton{
				Type:  "reply",
				Reply: outButtonReply{ID: a.ID, Title: truncate(a.Label, maxButtonTitle)},
			})
		}
		msg.Interactive = in
	case u.Image != "":
		msg.Type = "image"
		msg.Image = &outImage{Link: u.Image, Caption: truncate(u.Text, maxCaption)}
	default:
		msg.Type = "text"
		msg.Text = &outText{Body: u.Text}
	}
	return msg
}

func recipient(to string) string {
	to = strings.TrimPrefix(strings.TrimSpace(to), "whatsapp:")
	return strings.TrimPrefix(to, "+")
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
