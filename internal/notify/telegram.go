package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"golang.org/x/time/rate"

	"inspection-service/internal/logging"
	"inspection-service/internal/metrics"
	"inspection-service/internal/models"
)

// TelegramChannel posts the formatted closure block to a fixed chat.
type TelegramChannel struct {
	token   string
	chatID  int64
	limiter *rate.Limiter
	backoff Backoff
	logger  *logging.Logger
}

func NewTelegramChannel(token string, chatID int64, ratePerSecond int, logger *logging.Logger) *TelegramChannel {
	if ratePerSecond < 1 {
		ratePerSecond = 1
	}
	return &TelegramChannel{
		token:   token,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Limit(float64(ratePerSecond)), ratePerSecond),
		backoff: Backoff{MaxAttempts: 3, Delay: time.Second},
		logger:  logger,
	}
}

func (c *TelegramChannel) Name() string { return "telegram" }

func (c *TelegramChannel) Update(notice models.ClosureNotice) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.NotifyFailuresTotal.WithLabelValues(c.Name()).Inc()
		c.logger.Errorf("Telegram rate limit wait failed: %v", err)
		return
	}

	text := FormatNotice(notice)
	err := c.backoff.Run(c.logger, func() error {
		b, err := bot.New(c.token)
		if err != nil {
			return fmt.Errorf("failed to initialize Telegram bot: %w", err)
		}
		params := &bot.SendMessageParams{
			ChatID: c.chatID,
			Text:   text,
		}
		if _, err := b.SendMessage(ctx, params); err != nil {
			return fmt.Errorf("failed to send Telegram message to chat_id %d: %w", c.chatID, err)
		}
		return nil
	})
	if err != nil {
		metrics.NotifyFailuresTotal.WithLabelValues(c.Name()).Inc()
		c.logger.Errorf("Telegram notification failed: %v", err)
		return
	}
	c.logger.Infof("Closure notice posted to Telegram chat %d", c.chatID)
}
