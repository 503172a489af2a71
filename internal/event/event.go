package event

import (
	"encoding/json"
	"fmt"

	validator "gopkg.in/go-playground/validator.v9"
)

// Submission statuses carried by the notifier. Anything else is rejected
// with an unknown-status error.
const (
	StatusSuccess        = "SUCCESS"
	StatusNoContent      = "NO_CONTENT"
	StatusInvalidURL     = "INVALID_URL"
	StatusMaxAttempts    = "MAX_ATTEMPTS"
	StatusDeadlinePassed = "DEADLINE_PASSED"
)

// SNSEvent is the Lambda-style envelope delivered by an SNS trigger.
type SNSEvent struct {
	Records []SNSRecord `json:"Records"`
}

type SNSRecord struct {
	EventSource string    `json:"EventSource"`
	Sns         SNSEntity `json:"Sns"`
}

type SNSEntity struct {
	Type      string `json:"Type"`
	MessageID string `json:"MessageId"`
	TopicArn  string `json:"TopicArn"`
	Message   string `json:"Message"`
	Timestamp string `json:"Timestamp"`
}

// HTTPEnvelope is the document SNS posts to an HTTP(S) subscription.
type HTTPEnvelope struct {
	Type         string `json:"Type"`
	MessageID    string `json:"MessageId"`
	TopicArn     string `json:"TopicArn"`
	Message      string `json:"Message"`
	SubscribeURL string `json:"SubscribeURL"`
	Timestamp    string `json:"Timestamp"`
}

// SubmissionDescriptor is the submission message carried inside the
// notification. Field names are the notifier's contract.
type SubmissionDescriptor struct {
	Status        string `json:"status" validate:"required"`
	SubmissionURL string `json:"submissionUrl" validate:"required"`
	UserEmail     string `json:"userEmail" validate:"required,email"`
	AssignmentID  string `json:"assignmentId" validate:"required"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Attempt       int    `json:"attempt"`
	Timestamp     string `json:"timestamp"`
}

var validate = validator.New()

// ParseNotification decodes a notification payload into a submission
// descriptor. Both Lambda-style SNS envelopes and bare submission
// messages are accepted.
func ParseNotification(payload []byte) (SubmissionDescriptor, error) {
	message := payload

	var envelope SNSEvent
	if err := json.Unmarshal(payload, &envelope); err == nil && len(envelope.Records) > 0 {
		message = []byte(envelope.Records[0].Sns.Message)
	}

	return ParseMessage(message)
}

// ParseMessage decodes a bare submission message.
func ParseMessage(message []byte) (descriptor SubmissionDescriptor, err error) {
	if err = json.Unmarshal(message, &descriptor); err != nil {
		return descriptor, fmt.Errorf("decode submission message: %w", err)
	}
	if err = validate.Struct(descriptor); err != nil {
		return descriptor, fmt.Errorf("validate submission message: %w", err)
	}
	return descriptor, nil
}

// KnownStatus reports whether the notifier status is part of the contract.
func KnownStatus(status string) bool {
	switch status {
	case StatusSuccess, StatusNoContent, StatusInvalidURL, StatusMaxAttempts, StatusDeadlinePassed:
		return true
	}
	return false
}

// Rejected reports whether the submission was already rejected upstream,
// in which case only the outcome email is owed.
func (d SubmissionDescriptor) Rejected() bool {
	return KnownStatus(d.Status) && d.Status != StatusSuccess
}
