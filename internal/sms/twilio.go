// internal/sms/twilio.go
package sms

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const twilioBaseURL = "https://api.twilio.com/2010-04-01"

// TwilioSender sends SMS through the Twilio Messages REST API.
type TwilioSender struct {
	client     *resty.Client
	accountSID string
	from       string
}

type twilioError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewTwilioSender builds a sender for the given account. Returns nil if the
// credentials are not configured, so the caller can treat SMS as unavailable.
func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	if accountSID == "" || authToken == "" {
		return nil
	}
	client := resty.New().
		SetBaseURL(twilioBaseURL).
		SetBasicAuth(accountSID, authToken).
		SetTimeout(15 * time.Second)

	return &TwilioSender{
		client:     client,
		accountSID: accountSID,
		from:       from,
	}
}

func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	var apiErr twilioError

	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"To":   to,
			"From": s.from,
			"Body": body,
		}).
		SetError(&apiErr).
		Post(fmt.Sprintf("/Accounts/%s/Messages.json", s.accountSID))
	if err != nil {
		return fmt.Errorf("twilio request: %w", err)
	}
	if resp.IsError() {
		if apiErr.Message != "" {
			return fmt.Errorf("twilio: %s (code %d)", apiErr.Message, apiErr.Code)
		}
		return fmt.Errorf("twilio: unexpected status %s", resp.Status())
	}
	return nil
}
