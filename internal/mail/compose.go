package mail

import (
	"fmt"

	"github.com/assessmentinc/submission-relay/internal/event"
)

// Outcome subjects. The wording is part of the submitter-facing contract.
const (
	SubjectSuccess        = "Submission Received Successfully"
	SubjectNoContent      = "Submission Failed - Empty File"
	SubjectInvalidURL     = "Submission Failed - Invalid URL"
	SubjectMaxAttempts    = "Submission Failed - max attempts reached"
	SubjectDeadlinePassed = "Submission Failed - Deadline Passed"
	SubjectError          = "Submission Error"
)

// ComposeSuccess builds the email sent once a submission landed in
// durable storage. The body carries the destination path.
func ComposeSuccess(descriptor event.SubmissionDescriptor, storagePath string) (subject string, body string) {
	text := "We are happy to notify you that your assignment submission has been received and accepted." +
		"\n\nSubmission Path  - " + storagePath
	return SubjectSuccess, wrap(descriptor, text)
}

// ComposeRejection builds the email for a submission the notifier
// already rejected upstream.
func ComposeRejection(descriptor event.SubmissionDescriptor) (subject string, body string) {
	switch descriptor.Status {
	case event.StatusNoContent:
		subject = SubjectNoContent
		body = "Your Submission could not be accepted as the file does not have any content"
	case event.StatusInvalidURL:
		subject = SubjectInvalidURL
		body = "Your Submission could not be accepted as the URL submitted does not contain a valid zip file"
	case event.StatusMaxAttempts:
		subject = SubjectMaxAttempts
		body = "Your Submission could not be accepted as you have reached maximum number of attempts"
	case event.StatusDeadlinePassed:
		subject = SubjectDeadlinePassed
		body = "Your Submission could not be accepted as the deadline has passed"
	default:
		return ComposeError(descriptor)
	}
	return subject, wrap(descriptor, body)
}

// ComposeError builds the generic processing-error email.
func ComposeError(descriptor event.SubmissionDescriptor) (subject string, body string) {
	text := "There was an error with your submission. Please ensure the URL is correct and the content is not empty."
	return SubjectError, wrap(descriptor, text)
}

// wrap puts the outcome text into the common greeting and signature.
func wrap(descriptor event.SubmissionDescriptor, text string) string {
	return fmt.Sprintf("Hello %s %s,"+
		"\n\n"+
		"Your submission with assignment ID %s has been processed"+
		"\n"+
		"%s"+
		"\n"+
		"Attempt  - %d"+
		"\n\n"+
		"Regards,"+
		"\n"+
		"Team Assessment Inc.",
		descriptor.FirstName, descriptor.LastName, descriptor.AssignmentID, text, descriptor.Attempt)
}
