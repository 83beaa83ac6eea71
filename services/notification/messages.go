package notification

import (
	"fmt"

	"agentlinker/models"
)

const showingTimeLayout = "Monday, January 2 at 3:04 PM"

// ConfirmationEmail composes the booking confirmation sent to the client
// right after a showing request is persisted.
func ConfirmationEmail(b models.Booking, agentName string) (subject, htmlBody, textBody string) {
	when := b.ScheduledAt.Format(showingTimeLayout)
	subject = fmt.Sprintf("Showing request received — %s", when)

	where := b.Location
	if where == "" {
		where = "to be confirmed"
	}

	textBody = fmt.Sprintf(
		"Hi %s,\n\nYour showing request with %s for %s has been received and is pending confirmation.\nLocation: %s\n\nYou will get another email once the agent confirms.\n",
		b.ClientName, agentName, when, where,
	)
	htmlBody = fmt.Sprintf(
		"<p>Hi %s,</p><p>Your showing request with <strong>%s</strong> for <strong>%s</strong> has been received and is pending confirmation.</p><p>Location: %s</p><p>You will get another email once the agent confirms.</p>",
		b.ClientName, agentName, when, where,
	)
	return subject, htmlBody, textBody
}

// ConfirmedEmail composes the email sent when the agent confirms a showing.
func ConfirmedEmail(b models.Booking, agentName string) (subject, htmlBody, textBody string) {
	when := b.ScheduledAt.Format(showingTimeLayout)
	subject = fmt.Sprintf("Showing confirmed — %s", when)

	textBody = fmt.Sprintf(
		"Hi %s,\n\n%s has confirmed your showing for %s.\n\nSee you there!\n",
		b.ClientName, agentName, when,
	)
	htmlBody = fmt.Sprintf(
		"<p>Hi %s,</p><p><strong>%s</strong> has confirmed your showing for <strong>%s</strong>.</p><p>See you there!</p>",
		b.ClientName, agentName, when,
	)
	return subject, htmlBody, textBody
}

// ReminderEmail composes the reminder sent shortly before a confirmed showing.
func ReminderEmail(p models.ReminderPayload) (subject, htmlBody, textBody string) {
	subject = "Reminder: your showing is coming up"
	where := p.Location
	if where == "" {
		where = "the agreed location"
	}

	textBody = fmt.Sprintf(
		"Hi %s,\n\nThis is a reminder for your showing at %s, meeting at %s.\n",
		p.ClientName, p.ScheduledAt, where,
	)
	htmlBody = fmt.Sprintf(
		"<p>Hi %s,</p><p>This is a reminder for your showing at <strong>%s</strong>, meeting at %s.</p>",
		p.ClientName, p.ScheduledAt, where,
	)
	return subject, htmlBody, textBody
}
