package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/urfave/cli"

	"github.com/assessmentinc/submission-relay/internal/archive"
	"github.com/assessmentinc/submission-relay/internal/audit"
	"github.com/assessmentinc/submission-relay/internal/config"
	"github.com/assessmentinc/submission-relay/internal/fetch"
	"github.com/assessmentinc/submission-relay/internal/mail"
	"github.com/assessmentinc/submission-relay/internal/notification"
	"github.com/assessmentinc/submission-relay/internal/objstore"
	"github.com/assessmentinc/submission-relay/internal/relay"
	"github.com/assessmentinc/submission-relay/internal/storage"
)

var (
	app     *cli.App
	version string

	relayConfig config.RelayConfig

	relayService    *relay.Service
	invocationStore *storage.InvocationStore
)

// journalAdapter bridges the relay service to the SQLite journal.
type journalAdapter struct {
	store *storage.InvocationStore
}

func (j journalAdapter) RecordOutcome(outcome relay.Outcome) error {
	return j.store.RecordInvocation(storage.InvocationInfo{
		InvocationID:  outcome.InvocationID,
		UserEmail:     outcome.Descriptor.UserEmail,
		AssignmentID:  outcome.Descriptor.AssignmentID,
		SubmissionURL: outcome.Descriptor.SubmissionURL,
		Status:        outcome.Descriptor.Status,
		Attempt:       outcome.Descriptor.Attempt,
		State:         outcome.State,
		FailedStep:    string(outcome.FailedStep),
		StoragePath:   outcome.StoragePath,
		EmailSent:     outcome.EmailSent,
		HandledAt:     outcome.HandledAt,
	})
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var err error
	relayConfig, err = config.LoadConfig()
	if err != nil {
		log.Fatalln(err)
	}

	// Prepare workdir
	err = os.MkdirAll(relayConfig.Workdir, 0755)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println(relayConfig.Workdir)

	objects, err := objstore.NewS3Store(relayConfig.Storage)
	if err != nil {
		log.Fatalln(err)
	}

	audits, err := audit.NewDynamoStore(relayConfig.Audit)
	if err != nil {
		log.Fatalln(err)
	}

	db, err := storage.NewDB(relayConfig.DatabasePath)
	if err != nil {
		log.Fatalln(err)
	}
	invocationStore = storage.NewInvocationStore(db, 1000)

	relayService = relay.NewService(relay.ServiceParams{
		Workdir:   relayConfig.Workdir,
		Fetcher:   fetch.NewClient(fetch.DefaultTimeout),
		Extractor: archive.NewZipExtractor(),
		Objects:   objects,
		Audits:    audits,
		Mailer:    mail.NewSender(relayConfig.Mail),
		Journal:   journalAdapter{store: invocationStore},
	})

	app = cli.NewApp()
	app.Name = "submission-relay"
	app.Usage = "assignment submission relay"
	app.Author = "Assessment Inc."
	app.Version = version

	app.Commands = []cli.Command{
		{
			Name:  "handle",
			Usage: "process a single notification payload and exit",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "payload",
					Usage: "path to the payload file, stdin when omitted",
				},
			},
			Action: handleOnce,
		},
	}

	app.Action = func(c *cli.Context) error {
		serve()
		return nil
	}
	app.Run(os.Args)
}

// handleOnce is the platform-invoked mode: one payload, one exit code.
func handleOnce(c *cli.Context) error {
	payload, err := readPayload(c.String("payload"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	outcome, err := relayService.Handle(context.Background(), payload)
	notification.SendOutcomeNotification(relayConfig.WebhookURL, outcome)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	log.Printf("invocation %s completed: %s\n", outcome.InvocationID, outcome.State)
	return nil
}

func readPayload(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func serve() {
	// APIs
	http.HandleFunc("/api/v1/notifications", NotificationHandler)
	http.HandleFunc("/api/v1/invocations", InvocationsHandler)
	http.HandleFunc("/api/v1/version", VersionHandler)

	port := os.Getenv("PORT")
	if len(port) < 1 {
		port = "8080"
	}
	log.Println("submission-relay now live on port " + port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}
