package relay

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/assessmentinc/submission-relay/internal/event"
	"github.com/assessmentinc/submission-relay/internal/mail"
)

// Terminal invocation states.
const (
	StateSuccess = "SUCCESS"
	StateFailed  = "FAILED"
)

// AuditRecord is the durable record written once a submission has been
// relocated to object storage.
type AuditRecord struct {
	ID            string `json:"id" dynamodbav:"Id"`
	UserEmail     string `json:"userEmail" dynamodbav:"UserEmail"`
	AssignmentID  string `json:"assignmentId" dynamodbav:"AssignmentId"`
	SubmissionURL string `json:"submissionUrl" dynamodbav:"SubmissionUrl"`
	FilePath      string `json:"filePath" dynamodbav:"FilePath"`
	Timestamp     string `json:"timestamp" dynamodbav:"Timestamp"`
}

// Outcome describes the terminal result of one handled notification.
type Outcome struct {
	InvocationID string                     `json:"invocationId"`
	Descriptor   event.SubmissionDescriptor `json:"descriptor"`
	State        string                     `json:"state"`
	FailedStep   Step                       `json:"failedStep,omitempty"`
	StoragePath  string                     `json:"storagePath,omitempty"`
	EmailSent    bool                       `json:"emailSent"`
	HandledAt    time.Time                  `json:"handledAt"`
}

// ServiceParams collects the collaborators of a relay service.
type ServiceParams struct {
	Workdir   string
	Fetcher   Fetcher
	Extractor Extractor
	Objects   ObjectStore
	Audits    AuditStore
	Mailer    MailSender
	Journal   Journal
	Now       func() time.Time
}

// Service relays one submission notification at a time: parse, fetch,
// extract, relocate, record, notify. There is no retry and no
// deduplication, every notification is handled independently.
type Service struct {
	workdir   string
	fetcher   Fetcher
	extractor Extractor
	objects   ObjectStore
	audits    AuditStore
	mailer    MailSender
	journal   Journal
	now       func() time.Time
}

// NewService returns a relay service instance.
func NewService(params ServiceParams) *Service {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		workdir:   params.Workdir,
		fetcher:   params.Fetcher,
		extractor: params.Extractor,
		objects:   params.Objects,
		audits:    params.Audits,
		mailer:    params.Mailer,
		journal:   params.Journal,
		now:       now,
	}
}

// Handle processes one notification payload end to end and journals the
// terminal outcome.
func (s *Service) Handle(ctx context.Context, payload []byte) (Outcome, error) {
	outcome, err := s.process(ctx, payload)
	if s.journal != nil {
		if journalErr := s.journal.RecordOutcome(outcome); journalErr != nil {
			log.Printf("failed to journal invocation %s: %v\n", outcome.InvocationID, journalErr)
		}
	}
	return outcome, err
}

func (s *Service) process(ctx context.Context, payload []byte) (outcome Outcome, err error) {
	handledAt := s.now()
	outcome = Outcome{
		InvocationID: generateInvocationID(handledAt),
		State:        StateFailed,
		HandledAt:    handledAt,
	}

	descriptor, err := event.ParseNotification(payload)
	if err != nil {
		// No verified recipient, so no email can be addressed
		log.Printf("malformed notification payload: %v\n", err)
		outcome.FailedStep = StepParse
		return outcome, stepErr(StepParse, err)
	}
	outcome.Descriptor = descriptor

	if descriptor.Rejected() {
		subject, body := mail.ComposeRejection(descriptor)
		if err = s.mailer.Send(descriptor.UserEmail, subject, body); err != nil {
			outcome.FailedStep = StepNotify
			log.Printf("failed to send rejection email to %s: %v\n", descriptor.UserEmail, err)
			return outcome, stepErr(StepNotify, err)
		}
		outcome.EmailSent = true
		outcome.State = StateSuccess
		return outcome, nil
	}

	if !event.KnownStatus(descriptor.Status) {
		err = fmt.Errorf("unknown submission status %q", descriptor.Status)
		log.Println(err.Error())
		outcome.FailedStep = StepParse
		outcome.EmailSent = s.notifyFailure(descriptor)
		return outcome, stepErr(StepParse, err)
	}

	archive, err := s.fetcher.Fetch(ctx, descriptor.SubmissionURL)
	if err != nil {
		log.Printf("failed to fetch submission %s: %v\n", descriptor.SubmissionURL, err)
		outcome.FailedStep = StepFetch
		outcome.EmailSent = s.notifyFailure(descriptor)
		return outcome, stepErr(StepFetch, err)
	}

	extractDir := filepath.Join(s.workdir, outcome.InvocationID)
	if err = os.MkdirAll(extractDir, 0755); err != nil {
		outcome.FailedStep = StepExtract
		outcome.EmailSent = s.notifyFailure(descriptor)
		return outcome, stepErr(StepExtract, err)
	}
	// The extraction dir is ephemeral, cleanup is best effort
	defer os.RemoveAll(extractDir)

	files, err := s.extractor.Extract(archive, extractDir)
	if err != nil {
		log.Printf("failed to extract submission archive: %v\n", err)
		outcome.FailedStep = StepExtract
		outcome.EmailSent = s.notifyFailure(descriptor)
		return outcome, stepErr(StepExtract, err)
	}

	stamp := handledAt.Format("20060102150405")
	storagePath := fmt.Sprintf("%s/%s/submission_%d_%s",
		descriptor.UserEmail, descriptor.AssignmentID, descriptor.Attempt, stamp)

	for _, file := range files {
		var content []byte
		content, err = os.ReadFile(filepath.Join(extractDir, file))
		if err == nil {
			err = s.objects.Put(ctx, storagePath+"/"+file, content)
		}
		if err != nil {
			// Files already uploaded before the failure are left in place
			log.Printf("failed to relocate %s: %v\n", file, err)
			outcome.FailedStep = StepRelocate
			outcome.EmailSent = s.notifyFailure(descriptor)
			return outcome, stepErr(StepRelocate, err)
		}
	}
	outcome.StoragePath = storagePath

	record := AuditRecord{
		ID:            descriptor.UserEmail + "#" + descriptor.AssignmentID + "#" + stamp,
		UserEmail:     descriptor.UserEmail,
		AssignmentID:  descriptor.AssignmentID,
		SubmissionURL: descriptor.SubmissionURL,
		FilePath:      storagePath,
		Timestamp:     stamp,
	}
	if err = s.audits.Record(ctx, record); err != nil {
		// The relocation stands and the success email is still owed
		log.Printf("failed to write audit record %s: %v\n", record.ID, err)
		outcome.FailedStep = StepRecord
	}

	subject, body := mail.ComposeSuccess(descriptor, storagePath)
	if err = s.mailer.Send(descriptor.UserEmail, subject, body); err != nil {
		log.Printf("failed to send success email to %s: %v\n", descriptor.UserEmail, err)
		outcome.FailedStep = StepNotify
		return outcome, stepErr(StepNotify, err)
	}
	outcome.EmailSent = true
	outcome.State = StateSuccess

	return outcome, nil
}

// notifyFailure sends the generic processing-error email. Delivery is
// best effort, a send failure here only gets logged.
func (s *Service) notifyFailure(descriptor event.SubmissionDescriptor) bool {
	subject, body := mail.ComposeError(descriptor)
	if err := s.mailer.Send(descriptor.UserEmail, subject, body); err != nil {
		log.Printf("failed to send failure email to %s: %v\n", descriptor.UserEmail, err)
		return false
	}
	return true
}

func generateInvocationID(timestamp time.Time) string {
	return timestamp.Format("2006-01-02-150405") + "_" + uuid.New().String()
}
