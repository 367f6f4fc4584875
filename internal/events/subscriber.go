package events

import (
	"encoding/json"
	"fmt"
)

// Subscriber receives events from the event bus.
type Subscriber interface {
	// Subscribe delivers messages on the returned channel.
	// Call the returned cancel function to unsubscribe and close the channel.
	Subscribe(topic string) (<-chan Message, func(), error)
	Close() error
}

// Message is a raw event as received from the bus.
type Message struct {
	Topic string
	Key   string // from KeyHeader; empty when the publisher sent none
	Data  []byte
}

// Decode unmarshals the message payload into the event type for its topic.
func (m Message) Decode() (any, error) {
	var ev any
	switch m.Topic {
	case TopicCompanyCreated:
		ev = &CompanyCreated{}
	case TopicCompanyUpdated:
		ev = &CompanyUpdated{}
	case TopicCompanyDeleted:
		ev = &CompanyDeleted{}
	case TopicJobCreated:
		ev = &JobCreated{}
	case TopicJobUpdated:
		ev = &JobUpdated{}
	case TopicJobDeleted:
		ev = &JobDeleted{}
	default:
		return nil, fmt.Errorf("unknown topic %q", m.Topic)
	}
	if err := json.Unmarshal(m.Data, ev); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", m.Topic, err)
	}
	return ev, nil
}
