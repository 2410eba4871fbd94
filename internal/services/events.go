package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

// EventPublisher publishes file lifecycle events. A nil publisher (no broker
// configured) is valid and drops everything.
type EventPublisher struct {
	nc *nats.Conn
}

func ConnectEvents(url string) (*EventPublisher, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	log.Println("Connected to NATS at", url)
	return &EventPublisher{nc: nc}, nil
}

// Publish marshals the event and sends it on the subject. Failures are
// logged, never surfaced: eventing must not break an upload.
func (p *EventPublisher) Publish(subject string, event map[string]any) {
	if p == nil || p.nc == nil || !p.nc.IsConnected() {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("warning: failed to marshal %s event: %v", subject, err)
		return
	}
	if err := p.nc.Publish(subject, payload); err != nil {
		log.Printf("warning: failed to publish %s event: %v", subject, err)
	}
}

func (p *EventPublisher) Close() {
	if p != nil && p.nc != nil && p.nc.IsConnected() {
		p.nc.Close()
	}
}
