package messaging

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/yshymko/peredai/internal/model"
)

// EmailConfig configures the SMTP channel.
type EmailConfig struct {
	Host     string `mapstructure:"host" json:"host"`
	Port     int    `mapstructure:"port" json:"port"`
	Username string `mapstructure:"username" json:"username"`
	Password string `mapstructure:"password" json:"password"`
	From     string `mapstructure:"from" json:"from"`
	ReplyTo  string `mapstructure:"reply_to" json:"reply_to"`
}

// sendMailFunc matches smtp.SendMail; injected so tests can capture the
// outbound message without a live SMTP server.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailChannel delivers daily portions over SMTP.
type EmailChannel struct {
	cfg      EmailConfig
	sendMail sendMailFunc
	log      *zap.Logger
}

func NewEmailChannel(cfg EmailConfig, log *zap.Logger) *EmailChannel {
	return &EmailChannel{cfg: cfg, sendMail: smtp.SendMail, log: log}
}

func (c *EmailChannel) Method() model.DeliveryMethod { return model.DeliveryEmail }

func (c *EmailChannel) Deliver(ctx context.Context, user *model.User, textTitle string, sentences []string, indices []int) (bool, error) {
	if user.Email == "" {
		return false, fmt.Errorf("%w: user %q has no email address", model.ErrInvalidUserContact, user.ID)
	}

	subject := Subject(textTitle)
	body := FormatEmailBody(textTitle, sentences, indices)
	msg := c.buildMessage(user.Email, subject, body)

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	var auth smtp.Auth
	if c.cfg.Username != "" {
		auth = smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	}

	if err := c.sendMail(addr, auth, c.cfg.From, []string{user.Email}, msg); err != nil {
		c.log.Warn("email delivery failed",
			zap.String("user_id", user.ID),
			zap.String("recipient", user.Email),
			zap.Error(err))
		return false, nil
	}

	c.log.Info("email sent",
		zap.String("user_id", user.ID),
		zap.String("recipient", user.Email),
		zap.String("subject", subject),
		zap.Int("sentences", len(sentences)))
	return true, nil
}

func (c *EmailChannel) buildMessage(to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", c.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	if c.cfg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", c.cfg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
