package notification

import "context"

// EmailSender delivers outbound email. Delivery is best-effort everywhere it
// is used: callers log failures and move on, they never roll anything back.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}
