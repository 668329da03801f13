// internal/sms/mock.go
package sms

import (
	"context"
	"fmt"
	"math/rand"
)

// MockSender simulates delivery with a 90% success rate. Useful for local
// development without Twilio credentials.
type MockSender struct{}

func (MockSender) Send(_ context.Context, to, _ string) error {
	if rand.Float64() < 0.9 {
		return nil
	}
	return fmt.Errorf("mock send to %s failed", to)
}
