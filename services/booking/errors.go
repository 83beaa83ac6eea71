package booking

import "fmt"

// Error codes surfaced by the booking flow.
const (
	CodeValidation   = "validation"
	CodeInvalidState = "invalidState"
	CodeSessionGone  = "sessionNotFound"
	CodeSlotTaken    = "slotTaken"
)

// FlowError represents a user-correctable failure in the booking flow.
type FlowError struct {
	Code    string
	Message string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &FlowError{Code: CodeValidation, Message: msg}
}

func NewStateError(msg string) error {
	return &FlowError{Code: CodeInvalidState, Message: msg}
}

// ErrSessionNotFound is returned when a draft session is missing or expired.
var ErrSessionNotFound = &FlowError{
	Code:    CodeSessionGone,
	Message: "booking session not found or expired",
}

// ErrSlotTaken is returned by the submission-time conflict re-check when the
// requested span overlaps an existing non-cancelled booking.
var ErrSlotTaken = &FlowError{
	Code:    CodeSlotTaken,
	Message: "the selected slot is no longer available",
}
