package mypublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/delivecrous/lib/myevents"
	"github.com/MarcGrol/delivecrous/lib/mypubsub"
	"github.com/MarcGrol/delivecrous/lib/myqueue"
	"github.com/MarcGrol/delivecrous/lib/mystore"
	"github.com/MarcGrol/delivecrous/lib/mytime"
)

type somethingHappened struct {
	UID string
}

func (e somethingHappened) GetEventTypeName() string {
	return "something.happened"
}

func (e somethingHappened) GetAggregateName() string {
	return e.UID
}

func TestTransactionalPublisher(t *testing.T) {

	t.Run("Publish stores envelope and enqueues trigger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, _, outbox, queue, _, nower, sut := setup(ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, task myqueue.Task) error {
			assert.Equal(t, fmt.Sprintf("/api/pubsub/something/%s", task.UID), task.WebhookURLPath)
			return nil
		})

		// when
		err := sut.Publish(c, "something", somethingHappened{UID: "123"})

		// then
		assert.NoError(t, err)
		envelopes, err := outbox.List(c)
		assert.NoError(t, err)
		assert.Len(t, envelopes, 1)
		assert.Equal(t, "something", envelopes[0].Topic)
		assert.Equal(t, "123", envelopes[0].AggregateUID)
		assert.Equal(t, "something.happened", envelopes[0].EventTypeName)
		assert.Equal(t, `{"UID":"123"}`, envelopes[0].EventPayload)
		assert.Equal(t, mytime.ExampleTime, envelopes[0].CreatedAt)
		assert.False(t, envelopes[0].Published)
	})

	t.Run("Publish same event twice is idempotent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, _, outbox, queue, _, nower, sut := setup(ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime).Times(2)
		queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		// when
		assert.NoError(t, sut.Publish(c, "something", somethingHappened{UID: "123"}))
		assert.NoError(t, sut.Publish(c, "something", somethingHappened{UID: "123"}))

		// then
		envelopes, err := outbox.List(c)
		assert.NoError(t, err)
		assert.Len(t, envelopes, 1)
	})

	t.Run("Publish fails when queue fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, _, _, queue, _, nower, sut := setup(ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(fmt.Errorf("queue unavailable"))

		// when
		err := sut.Publish(c, "something", somethingHappened{UID: "123"})

		// then
		assert.Error(t, err)
	})

	t.Run("Trigger publishes pending envelopes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, outbox, _, pubsub, _, _ := setup(ctrl)

		// given
		outbox.Put(c, "e1", myevents.EventEnvelope{UID: "e1", Topic: "something", CreatedAt: mytime.ExampleTime, EventPayload: "{}"})
		outbox.Put(c, "e2", myevents.EventEnvelope{UID: "e2", Topic: "something", Published: true})
		pubsub.EXPECT().Publish(gomock.Any(), "something", gomock.Any()).DoAndReturn(func(c context.Context, topic string, data string) error {
			envelope := myevents.EventEnvelope{}
			assert.NoError(t, json.Unmarshal([]byte(data), &envelope))
			assert.Equal(t, "e1", envelope.UID)
			return nil
		})

		// when
		request, err := http.NewRequest(http.MethodPut, "/api/pubsub/something/e1", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "Successfully published 1 events")
		envelope, found, err := outbox.Get(c, "e1")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.True(t, envelope.Published)
	})

	t.Run("Trigger fails when pubsub fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, outbox, _, pubsub, _, _ := setup(ctrl)

		// given
		outbox.Put(c, "e1", myevents.EventEnvelope{UID: "e1", Topic: "something"})
		pubsub.EXPECT().Publish(gomock.Any(), "something", gomock.Any()).Return(fmt.Errorf("pubsub unavailable"))

		// when
		request, err := http.NewRequest(http.MethodPut, "/api/pubsub/something/e1", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 500, response.Code)
		envelope, _, _ := outbox.Get(c, "e1")
		assert.False(t, envelope.Published)
	})
}

func setup(ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[myevents.EventEnvelope], *myqueue.MockTaskQueuer, *mypubsub.MockPubSub, *mytime.MockNower, *transactionalPublisher) {
	c := context.TODO()
	outbox, _, _ := mystore.NewInMemoryStore[myevents.EventEnvelope](c)
	queue := myqueue.NewMockTaskQueuer(ctrl)
	pubsub := mypubsub.NewMockPubSub(ctrl)
	nower := mytime.NewMockNower(ctrl)

	sut := newTransactionalPublisher(outbox, pubsub, queue, nower)
	router := mux.NewRouter()
	sut.RegisterEndpoints(c, router)

	return c, router, outbox, queue, pubsub, nower, sut
}
