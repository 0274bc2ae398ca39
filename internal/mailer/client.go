// Package mailer calls the hosted email function (order confirmation,
// password reset, weekly security digest).
package mailer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var ErrDisabled = errors.New("email function not configured")

const TemplateOrderConfirmation = "order_confirmation"

type Message struct {
	Template string `json:"template"`
	To       string `json:"to"`
	Data     any    `json:"data,omitempty"`
}

type Client struct {
	http    *resty.Client
	url     string
	enabled bool
	timeout time.Duration
	log     *zap.Logger
	wg      sync.WaitGroup
}

func New(url, key string, timeout time.Duration, log *zap.Logger) *Client {
	c := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if key != "" {
		c.SetAuthToken(key)
	}
	return &Client{http: c, url: url, enabled: url != "", timeout: timeout, log: log}
}

func (c *Client) Send(ctx context.Context, msg Message) error {
	if !c.enabled {
		return ErrDisabled
	}
	resp, err := c.http.R().SetContext(ctx).SetBody(msg).Post(c.url)
	if err != nil {
		return fmt.Errorf("email %s: %w", msg.Template, err)
	}
	if resp.IsError() {
		return fmt.Errorf("email %s: status %d", msg.Template, resp.StatusCode())
	}
	return nil
}

// Fire sends in the background; failures are logged and never reach the
// caller.
func (c *Client) Fire(msg Message) {
	if !c.enabled {
		c.log.Debug("email skipped, function not configured", zap.String("template", msg.Template))
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if err := c.Send(ctx, msg); err != nil {
			c.log.Warn("email failed", zap.String("template", msg.Template), zap.Error(err))
		}
	}()
}

// Wait blocks until every fired email has finished.
func (c *Client) Wait() { c.wg.Wait() }
