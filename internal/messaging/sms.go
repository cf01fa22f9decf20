package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/yshymko/peredai/internal/model"
)

// SMSConfig configures the HTTP SMS gateway channel.
type SMSConfig struct {
	GatewayURL string `mapstructure:"gateway_url" json:"gateway_url"`
	AuthToken  string `mapstructure:"auth_token" json:"auth_token"`
	FromNumber string `mapstructure:"from_number" json:"from_number"`
}

// SMSChannel delivers daily portions through a JSON-over-HTTP SMS gateway.
type SMSChannel struct {
	cfg    SMSConfig
	client *http.Client
	log    *zap.Logger
}

func NewSMSChannel(cfg SMSConfig, log *zap.Logger) *SMSChannel {
	return &SMSChannel{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

func (c *SMSChannel) Method() model.DeliveryMethod { return model.DeliverySMS }

func (c *SMSChannel) Deliver(ctx context.Context, user *model.User, textTitle string, sentences []string, indices []int) (bool, error) {
	if user.Phone == "" {
		return false, fmt.Errorf("%w: user %q has no phone number", model.ErrInvalidUserContact, user.ID)
	}

	payload, err := json.Marshal(struct {
		From string `json:"from"`
		To   string `json:"to"`
		Body string `json:"body"`
	}{
		From: c.cfg.FromNumber,
		To:   user.Phone,
		Body: FormatSMSBody(textTitle, sentences),
	})
	if err != nil {
		return false, fmt.Errorf("failed to encode sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("failed to create sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AuthToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("sms delivery failed",
			zap.String("user_id", user.ID),
			zap.String("recipient", user.Phone),
			zap.Error(err))
		return false, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("sms gateway rejected message",
			zap.String("user_id", user.ID),
			zap.String("recipient", user.Phone),
			zap.Int("status", resp.StatusCode))
		return false, nil
	}

	c.log.Info("sms sent",
		zap.String("user_id", user.ID),
		zap.String("recipient", user.Phone),
		zap.Int("sentences", len(sentences)))
	return true, nil
}
