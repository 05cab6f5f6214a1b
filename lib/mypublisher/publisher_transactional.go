package mypublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/delivecrous/lib/mycontext"
	"github.com/MarcGrol/delivecrous/lib/myerrors"
	"github.com/MarcGrol/delivecrous/lib/myevents"
	"github.com/MarcGrol/delivecrous/lib/myhttp"
	"github.com/MarcGrol/delivecrous/lib/mylog"
	"github.com/MarcGrol/delivecrous/lib/mypubsub"
	"github.com/MarcGrol/delivecrous/lib/myqueue"
	"github.com/MarcGrol/delivecrous/lib/mystore"
	"github.com/MarcGrol/delivecrous/lib/mytime"
)

type transactionalPublisher struct {
	outbox    mystore.Store[myevents.EventEnvelope]
	queue     myqueue.TaskQueuer
	enveloper enveloper
	pubsub    mypubsub.PubSub
	logger    mylog.Logger
}

func New(c context.Context, pubsub mypubsub.PubSub, queue myqueue.TaskQueuer, nower mytime.Nower) (*transactionalPublisher, func(), error) {
	store, storeCleanup, err := mystore.New[myevents.EventEnvelope](c)
	if err != nil {
		return nil, nil, err
	}

	return newTransactionalPublisher(store, pubsub, queue, nower), storeCleanup, nil
}

func newTransactionalPublisher(outbox mystore.Store[myevents.EventEnvelope], pubsub mypubsub.PubSub, queue myqueue.TaskQueuer, nower mytime.Nower) *transactionalPublisher {
	return &transactionalPublisher{
		outbox:    outbox,
		queue:     queue,
		enveloper: newEnveloper(nower),
		pubsub:    pubsub,
		logger:    mylog.New("publisher"),
	}
}

func (p *transactionalPublisher) RegisterEndpoints(c context.Context, router *mux.Router) {
	// Cloud Tasks calls this endpoint once for every enqueued publication trigger
	router.HandleFunc("/api/pubsub/{topic}/{uid}", p.processTriggerPage()).Methods("PUT")
}

func (p *transactionalPublisher) CreateTopic(c context.Context, topicName string) error {
	return p.pubsub.CreateTopic(c, topicName)
}

// Publish stores the event in the outbox using the transaction found in the context (if any)
// and schedules its actual publication.
func (p *transactionalPublisher) Publish(c context.Context, topic string, event myevents.Event) error {
	envelope, err := p.enveloper.do(topic, event)
	if err != nil {
		return fmt.Errorf("error creating envelope: %s", err)
	}

	err = p.outbox.Put(c, envelope.UID, envelope)
	if err != nil {
		return fmt.Errorf("error storing envelope: %w", err)
	}

	err = p.queue.Enqueue(c, myqueue.Task{
		UID:            envelope.UID,
		WebhookURLPath: fmt.Sprintf("/api/pubsub/%s/%s", envelope.Topic, envelope.UID),
		Payload:        []byte{},
	})
	if err != nil {
		return fmt.Errorf("error queueing publication-trigger %s: %w", envelope.UID, err)
	}

	p.logger.Log(c, envelope.AggregateUID, mylog.SeverityInfo, "Enqueued event %s", envelope.String())

	return nil
}

func (p *transactionalPublisher) processTriggerPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(p.logger)

		topicName := mux.Vars(r)["topic"]
		eventUID := mux.Vars(r)["uid"]

		published, err := p.processTrigger(c, topicName, eventUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: fmt.Sprintf("Successfully published %d events", published),
		})
	}
}

func (p *transactionalPublisher) processTrigger(c context.Context, topicName string, uid string) (int, error) {
	p.logger.Log(c, uid, mylog.SeverityInfo, "Publication triggered for event %s on topic %s", uid, topicName)

	published := 0
	err := p.outbox.RunInTransaction(c, func(c context.Context) error {
		published = 0

		// fetch all envelopes that are not yet published
		envelopes, err := p.outbox.Query(c, []mystore.Filter{{Field: "Published", Compare: "=", Value: false}}, "CreatedAt")
		if err != nil {
			return fmt.Errorf("error fetching envelopes: %w", err)
		}

		for _, envelope := range envelopes {
			jsonBytes, err := json.Marshal(envelope)
			if err != nil {
				return fmt.Errorf("error serializing event: %s", err)
			}

			err = p.pubsub.Publish(c, envelope.Topic, string(jsonBytes))
			if err != nil {
				return fmt.Errorf("error publishing event %s: %w", envelope.String(), err)
			}

			// mark as published
			envelope.Published = true
			err = p.outbox.Put(c, envelope.UID, envelope)
			if err != nil {
				return fmt.Errorf("error storing envelope: %w", err)
			}
			published++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return published, nil
}
