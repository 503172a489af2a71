package relay

import "context"

//go:generate moq -out ports_moq.go . Fetcher Extractor ObjectStore AuditStore MailSender

// Fetcher downloads a submission archive.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Extractor decompresses an archive into dir and returns the relative
// paths of the extracted files.
type Extractor interface {
	Extract(archive []byte, dir string) ([]string, error)
}

// ObjectStore uploads bytes to durable object storage.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte) error
}

// AuditStore persists audit records to the durable table.
type AuditStore interface {
	Record(ctx context.Context, record AuditRecord) error
}

// MailSender delivers outcome emails.
type MailSender interface {
	Send(to string, subject string, body string) error
}

// Journal keeps local operational history of handled notifications.
// Journal failures never fail an invocation.
type Journal interface {
	RecordOutcome(outcome Outcome) error
}
