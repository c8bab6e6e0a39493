// Package notify sends driver alerts over SMS.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// TwilioConfig holds the gateway account settings.
type TwilioConfig struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	FromNumber string
	Timeout    time.Duration
}

type twilioMessage struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type twilioError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TwilioNotifier sends SMS through the Twilio Messages API.
type TwilioNotifier struct {
	httpClient *resty.Client
	cfg        TwilioConfig
	logger     *zap.Logger
}

func NewTwilioNotifier(cfg TwilioConfig, logger *zap.Logger) *TwilioNotifier {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetBasicAuth(cfg.AccountSID, cfg.AuthToken).
		SetHeader("Accept", "application/json")

	return &TwilioNotifier{httpClient: client, cfg: cfg, logger: logger}
}

// Send delivers message to phoneNumber, given without the leading "+".
// There is no retry; the caller decides what a failure means.
func (n *TwilioNotifier) Send(ctx context.Context, phoneNumber, message string) error {
	to := "+" + strings.TrimPrefix(strings.TrimSpace(phoneNumber), "+")

	var result twilioMessage
	var apiErr twilioError
	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"To":   to,
			"From": n.cfg.FromNumber,
			"Body": message,
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post(fmt.Sprintf("/2010-04-01/Accounts/%s/Messages.json", n.cfg.AccountSID))
	if err != nil {
		return fmt.Errorf("sms request failed: %w", err)
	}
	if resp.IsError() {
		if apiErr.Message != "" {
			return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode(), apiErr.Message)
		}
		return fmt.Errorf("sms gateway returned %d", resp.StatusCode())
	}

	n.logger.Info("SMS sent", zap.String("to", to), zap.String("sid", result.SID))
	return nil
}
