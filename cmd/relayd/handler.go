package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/assessmentinc/submission-relay/internal/event"
	"github.com/assessmentinc/submission-relay/internal/notification"
	"github.com/assessmentinc/submission-relay/internal/relay"
	"github.com/assessmentinc/submission-relay/pkg/httputil"
)

// NotificationHandler accepts SNS HTTP subscription deliveries as well
// as bare submission messages.
func NotificationHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.ResponseError("method not allowed", http.StatusMethodNotAllowed, w)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.ResponseError("Can't read request body", http.StatusBadRequest, w)
		return
	}
	defer r.Body.Close()

	payload := body
	switch r.Header.Get("x-amz-sns-message-type") {
	case "SubscriptionConfirmation":
		confirmSubscription(body)
		w.WriteHeader(http.StatusOK)
		return
	case "Notification":
		var envelope event.HTTPEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			httputil.ResponseError("Can't decode notification envelope", http.StatusBadRequest, w)
			return
		}
		payload = []byte(envelope.Message)
	}

	outcome, err := relayService.Handle(r.Context(), payload)
	notification.SendOutcomeNotification(relayConfig.WebhookURL, outcome)
	if err != nil {
		step, _ := relay.FailedStep(err)
		status := http.StatusInternalServerError
		if step == relay.StepParse {
			status = http.StatusBadRequest
		}
		httputil.ResponseError(err.Error(), status, w)
		return
	}

	httputil.ResponseJSON(outcome, http.StatusOK, w)
}

// confirmSubscription completes the SNS subscription handshake by
// visiting the SubscribeURL.
func confirmSubscription(body []byte) {
	var envelope event.HTTPEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.Printf("Can't decode subscription confirmation: %v\n", err)
		return
	}
	if envelope.SubscribeURL == "" {
		log.Println("Subscription confirmation without SubscribeURL")
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(envelope.SubscribeURL)
	if err != nil {
		log.Printf("Failed to confirm subscription: %v\n", err)
		return
	}
	resp.Body.Close()
	log.Printf("Confirmed subscription to %s\n", envelope.TopicArn)
}

// InvocationsHandler serves journaled invocations, one by id or the
// most recent ones.
func InvocationsHandler(w http.ResponseWriter, r *http.Request) {
	keys, ok := r.URL.Query()["id"]
	if ok && len(keys[0]) > 0 {
		invocation, err := invocationStore.GetInvocation(keys[0])
		if err != nil {
			httputil.ResponseError(err.Error(), http.StatusNotFound, w)
			return
		}
		httputil.ResponseJSON(invocation, http.StatusOK, w)
		return
	}

	invocations, err := invocationStore.GetRecentInvocations(20)
	if err != nil {
		httputil.ResponseError("Can't list invocations", http.StatusInternalServerError, w)
		return
	}
	httputil.ResponseJSON(invocations, http.StatusOK, w)
}

func VersionHandler(w http.ResponseWriter, r *http.Request) {
	httputil.ResponseJSON(map[string]string{"version": version}, http.StatusOK, w)
}
