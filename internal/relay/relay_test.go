package relay

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)

func validPayload() []byte {
	return []byte(`{
		"status": "SUCCESS",
		"submissionUrl": "https://example.com/submission.zip",
		"userEmail": "student@example.com",
		"assignmentId": "hw-1",
		"first_name": "Ada",
		"last_name": "Lovelace",
		"attempt": 2
	}`)
}

func snsEnvelope(message string) []byte {
	return []byte(fmt.Sprintf(`{"Records":[{"EventSource":"aws:sns","Sns":{"Type":"Notification","Message":%q}}]}`, message))
}

type testMocks struct {
	fetcher   *FetcherMock
	extractor *ExtractorMock
	objects   *ObjectStoreMock
	audits    *AuditStoreMock
	mailer    *MailSenderMock
}

func newTestService(t *testing.T) (*Service, *testMocks) {
	t.Helper()

	mocks := &testMocks{
		fetcher: &FetcherMock{
			FetchFunc: func(ctx context.Context, url string) ([]byte, error) {
				return []byte("zip-bytes"), nil
			},
		},
		extractor: &ExtractorMock{
			ExtractFunc: func(archive []byte, dir string) ([]string, error) {
				for _, name := range []string{"a.txt", "b.txt"} {
					if err := os.WriteFile(filepath.Join(dir, name), []byte("content of "+name), 0644); err != nil {
						return nil, err
					}
				}
				return []string{"a.txt", "b.txt"}, nil
			},
		},
		objects: &ObjectStoreMock{
			PutFunc: func(ctx context.Context, key string, body []byte) error { return nil },
		},
		audits: &AuditStoreMock{
			RecordFunc: func(ctx context.Context, record AuditRecord) error { return nil },
		},
		mailer: &MailSenderMock{
			SendFunc: func(to, subject, body string) error { return nil },
		},
	}

	service := NewService(ServiceParams{
		Workdir:   t.TempDir(),
		Fetcher:   mocks.fetcher,
		Extractor: mocks.extractor,
		Objects:   mocks.objects,
		Audits:    mocks.audits,
		Mailer:    mocks.mailer,
		Now:       func() time.Time { return testTime },
	})
	return service, mocks
}

func TestService_HandleSuccess(t *testing.T) {
	service, mocks := newTestService(t)

	outcome, err := service.Handle(context.Background(), validPayload())
	require.NoError(t, err)

	assert.Equal(t, StateSuccess, outcome.State)
	assert.True(t, outcome.EmailSent)
	assert.Equal(t, "student@example.com/hw-1/submission_2_20240307150405", outcome.StoragePath)

	require.Len(t, mocks.fetcher.FetchCalls(), 1)
	assert.Equal(t, "https://example.com/submission.zip", mocks.fetcher.FetchCalls()[0].URL)

	puts := mocks.objects.PutCalls()
	require.Len(t, puts, 2)
	assert.Equal(t, outcome.StoragePath+"/a.txt", puts[0].Key)
	assert.Equal(t, outcome.StoragePath+"/b.txt", puts[1].Key)
	assert.Equal(t, []byte("content of a.txt"), puts[0].Body)

	records := mocks.audits.RecordCalls()
	require.Len(t, records, 1)
	record := records[0].Record
	assert.Equal(t, "student@example.com#hw-1#20240307150405", record.ID)
	assert.Equal(t, "student@example.com", record.UserEmail)
	assert.Equal(t, "hw-1", record.AssignmentID)
	assert.Equal(t, "https://example.com/submission.zip", record.SubmissionURL)
	assert.Equal(t, outcome.StoragePath, record.FilePath)
	assert.Equal(t, "20240307150405", record.Timestamp)

	sends := mocks.mailer.SendCalls()
	require.Len(t, sends, 1)
	assert.Equal(t, "student@example.com", sends[0].To)
	assert.Equal(t, "Submission Received Successfully", sends[0].Subject)
	assert.Contains(t, sends[0].Body, outcome.StoragePath)
	assert.Contains(t, sends[0].Body, "Hello Ada Lovelace")
}

func TestService_HandleSNSEnvelope(t *testing.T) {
	service, mocks := newTestService(t)

	payload := snsEnvelope(string(validPayload()))
	outcome, err := service.Handle(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, StateSuccess, outcome.State)
	assert.Len(t, mocks.fetcher.FetchCalls(), 1)
}

func TestService_HandleMalformedPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "not json",
			payload: "not-json",
		},
		{
			name:    "missing assignment id",
			payload: `{"status":"SUCCESS","submissionUrl":"https://example.com/s.zip","userEmail":"student@example.com"}`,
		},
		{
			name:    "invalid email",
			payload: `{"status":"SUCCESS","submissionUrl":"https://example.com/s.zip","userEmail":"nope","assignmentId":"hw-1"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mocks := newTestService(t)

			outcome, err := service.Handle(context.Background(), []byte(tt.payload))
			require.Error(t, err)

			step, ok := FailedStep(err)
			require.True(t, ok)
			assert.Equal(t, StepParse, step)
			assert.Equal(t, StateFailed, outcome.State)

			// No verified recipient, so no email at all
			assert.Empty(t, mocks.mailer.SendCalls())
			assert.Empty(t, mocks.fetcher.FetchCalls())
			assert.Empty(t, mocks.audits.RecordCalls())
		})
	}
}

func TestService_HandleFetchError(t *testing.T) {
	service, mocks := newTestService(t)
	mocks.fetcher.FetchFunc = func(ctx context.Context, url string) ([]byte, error) {
		return nil, errors.New("connection refused")
	}

	outcome, err := service.Handle(context.Background(), validPayload())
	require.Error(t, err)

	step, _ := FailedStep(err)
	assert.Equal(t, StepFetch, step)
	assert.Equal(t, StateFailed, outcome.State)
	assert.True(t, outcome.EmailSent)

	// Failure email only, no audit record
	sends := mocks.mailer.SendCalls()
	require.Len(t, sends, 1)
	assert.Equal(t, "Submission Error", sends[0].Subject)
	assert.Empty(t, mocks.audits.RecordCalls())
	assert.Empty(t, mocks.objects.PutCalls())
}

func TestService_HandleExtractionError(t *testing.T) {
	service, mocks := newTestService(t)
	mocks.extractor.ExtractFunc = func(archive []byte, dir string) ([]string, error) {
		return nil, errors.New("not a zip file")
	}

	outcome, err := service.Handle(context.Background(), validPayload())
	require.Error(t, err)

	step, _ := FailedStep(err)
	assert.Equal(t, StepExtract, step)
	assert.Equal(t, StateFailed, outcome.State)
	require.Len(t, mocks.mailer.SendCalls(), 1)
	assert.Empty(t, mocks.audits.RecordCalls())
}

func TestService_HandleStorageError(t *testing.T) {
	service, mocks := newTestService(t)
	mocks.objects.PutFunc = func(ctx context.Context, key string, body []byte) error {
		if len(mocks.objects.PutCalls()) > 1 {
			return errors.New("upload failed")
		}
		return nil
	}

	outcome, err := service.Handle(context.Background(), validPayload())
	require.Error(t, err)

	step, _ := FailedStep(err)
	assert.Equal(t, StepRelocate, step)
	assert.Equal(t, StateFailed, outcome.State)

	// The first upload stays, nothing is rolled back
	assert.Len(t, mocks.objects.PutCalls(), 2)
	assert.Empty(t, mocks.audits.RecordCalls())
	require.Len(t, mocks.mailer.SendCalls(), 1)
	assert.Equal(t, "Submission Error", mocks.mailer.SendCalls()[0].Subject)
}

func TestService_HandleRecordError(t *testing.T) {
	service, mocks := newTestService(t)
	mocks.audits.RecordFunc = func(ctx context.Context, record AuditRecord) error {
		return errors.New("table unavailable")
	}

	outcome, err := service.Handle(context.Background(), validPayload())
	require.NoError(t, err)

	// The relocation stands and the success email is still sent
	assert.Equal(t, StateSuccess, outcome.State)
	assert.Equal(t, StepRecord, outcome.FailedStep)
	sends := mocks.mailer.SendCalls()
	require.Len(t, sends, 1)
	assert.Equal(t, "Submission Received Successfully", sends[0].Subject)
}

func TestService_HandleNotificationError(t *testing.T) {
	service, mocks := newTestService(t)
	mocks.mailer.SendFunc = func(to, subject, body string) error {
		return errors.New("smtp unavailable")
	}

	outcome, err := service.Handle(context.Background(), validPayload())
	require.Error(t, err)

	step, _ := FailedStep(err)
	assert.Equal(t, StepNotify, step)
	assert.Equal(t, StateFailed, outcome.State)
	assert.False(t, outcome.EmailSent)

	// Relocation and audit record already happened
	assert.Len(t, mocks.objects.PutCalls(), 2)
	assert.Len(t, mocks.audits.RecordCalls(), 1)
}

func TestService_HandleRejectedStatus(t *testing.T) {
	tests := []struct {
		status      string
		wantSubject string
	}{
		{status: "NO_CONTENT", wantSubject: "Submission Failed - Empty File"},
		{status: "INVALID_URL", wantSubject: "Submission Failed - Invalid URL"},
		{status: "MAX_ATTEMPTS", wantSubject: "Submission Failed - max attempts reached"},
		{status: "DEADLINE_PASSED", wantSubject: "Submission Failed - Deadline Passed"},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			service, mocks := newTestService(t)

			payload := []byte(fmt.Sprintf(
				`{"status":%q,"submissionUrl":"https://example.com/s.zip","userEmail":"student@example.com","assignmentId":"hw-1","attempt":1}`,
				tt.status))
			outcome, err := service.Handle(context.Background(), payload)
			require.NoError(t, err)

			assert.Equal(t, StateSuccess, outcome.State)
			assert.True(t, outcome.EmailSent)
			assert.Empty(t, outcome.StoragePath)

			// Rejection email only, the pipeline never runs
			sends := mocks.mailer.SendCalls()
			require.Len(t, sends, 1)
			assert.Equal(t, tt.wantSubject, sends[0].Subject)
			assert.Empty(t, mocks.fetcher.FetchCalls())
			assert.Empty(t, mocks.audits.RecordCalls())
		})
	}
}

func TestService_HandleUnknownStatus(t *testing.T) {
	service, mocks := newTestService(t)

	payload := []byte(`{"status":"WAT","submissionUrl":"https://example.com/s.zip","userEmail":"student@example.com","assignmentId":"hw-1"}`)
	outcome, err := service.Handle(context.Background(), payload)
	require.Error(t, err)

	assert.Equal(t, StateFailed, outcome.State)
	require.Len(t, mocks.mailer.SendCalls(), 1)
	assert.Equal(t, "Submission Error", mocks.mailer.SendCalls()[0].Subject)
	assert.Empty(t, mocks.fetcher.FetchCalls())
}

func TestService_HandleTwiceNoDeduplication(t *testing.T) {
	service, mocks := newTestService(t)

	_, err := service.Handle(context.Background(), validPayload())
	require.NoError(t, err)
	_, err = service.Handle(context.Background(), validPayload())
	require.NoError(t, err)

	assert.Len(t, mocks.audits.RecordCalls(), 2)
	assert.Len(t, mocks.mailer.SendCalls(), 2)
}

func TestService_HandleCleansExtractionDir(t *testing.T) {
	service, mocks := newTestService(t)

	var extractDir string
	inner := mocks.extractor.ExtractFunc
	mocks.extractor.ExtractFunc = func(archive []byte, dir string) ([]string, error) {
		extractDir = dir
		return inner(archive, dir)
	}

	_, err := service.Handle(context.Background(), validPayload())
	require.NoError(t, err)

	require.NotEmpty(t, extractDir)
	_, statErr := os.Stat(extractDir)
	assert.True(t, os.IsNotExist(statErr))
}

type journalRecorder struct {
	outcomes []Outcome
	err      error
}

func (j *journalRecorder) RecordOutcome(outcome Outcome) error {
	j.outcomes = append(j.outcomes, outcome)
	return j.err
}

func TestService_HandleJournalsOutcome(t *testing.T) {
	service, _ := newTestService(t)
	journal := &journalRecorder{}
	service.journal = journal

	outcome, err := service.Handle(context.Background(), validPayload())
	require.NoError(t, err)

	require.Len(t, journal.outcomes, 1)
	assert.Equal(t, outcome.InvocationID, journal.outcomes[0].InvocationID)
	assert.Equal(t, StateSuccess, journal.outcomes[0].State)
}

func TestService_HandleJournalFailureDoesNotFailInvocation(t *testing.T) {
	service, _ := newTestService(t)
	service.journal = &journalRecorder{err: errors.New("disk full")}

	outcome, err := service.Handle(context.Background(), validPayload())
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, outcome.State)
}

func TestFailedStep(t *testing.T) {
	step, ok := FailedStep(stepErr(StepFetch, errors.New("boom")))
	assert.True(t, ok)
	assert.Equal(t, StepFetch, step)

	_, ok = FailedStep(errors.New("plain"))
	assert.False(t, ok)
}
