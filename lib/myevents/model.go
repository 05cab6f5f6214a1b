package myevents

import "time"

// EventEnvelope is the outbox record of one domain event, e.g. a dish added to a basket.
// Its UID is a checksum of the content so re-publishing the same event is idempotent.
type EventEnvelope struct {
	UID       string
	CreatedAt time.Time
	// Topic groups events of one aggregate type, like "basket"
	Topic string
	// AggregateUID identifies the basket (or other aggregate) the event is about
	AggregateUID  string
	EventTypeName string
	EventPayload  string `datastore:",noindex"`
	Published     bool
}

func (e EventEnvelope) String() string {
	return e.Topic + "." + e.EventTypeName + "." + e.AggregateUID
}

// Event is implemented by the payloads in the basketevents package
type Event interface {
	GetEventTypeName() string
	GetAggregateName() string
}
