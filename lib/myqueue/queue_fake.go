package myqueue

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/MarcGrol/delivecrous/lib/myhttpclient"
	"github.com/MarcGrol/delivecrous/lib/mylog"
)

// fakeTaskQueue mimics Cloud Tasks for local development by calling the webhook of the local webserver
type fakeTaskQueue struct {
	baseURL string
	delay   time.Duration
	sender  myhttpclient.HTTPSender
	logger  mylog.Logger
}

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newFakeQueue
	}
}

func newFakeQueue(c context.Context) (TaskQueuer, func(), error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return newFakeQueueFor(fmt.Sprintf("http://localhost:%s", port), publicationDelay), func() {}, nil
}

func newFakeQueueFor(baseURL string, delay time.Duration) *fakeTaskQueue {
	return &fakeTaskQueue{
		baseURL: baseURL,
		delay:   delay,
		sender:  myhttpclient.New(),
		logger:  mylog.New("queue"),
	}
}

func (q *fakeTaskQueue) Enqueue(c context.Context, task Task) error {
	// The enqueuing transaction must be committed before the webhook can see its effects
	c = context.WithoutCancel(c)
	go func() {
		time.Sleep(q.delay)

		status, _, err := q.sender.Send(c, http.MethodPut, q.baseURL+task.WebhookURLPath, task.Payload)
		if err != nil {
			q.logger.Log(c, task.UID, mylog.SeverityWarn, "Error triggering task %s: %s", task.UID, err)
			return
		}
		if status >= http.StatusMultipleChoices {
			q.logger.Log(c, task.UID, mylog.SeverityWarn, "Task %s was rejected with status %d", task.UID, status)
		}
	}()

	return nil
}
