// internal/sms/sender.go
package sms

import "context"

// Sender delivers a single SMS to an E.164 number. Implementations report
// delivery failure through the returned error; the caller owns all
// bookkeeping around the attempt.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}
