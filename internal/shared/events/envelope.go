package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// SpecVersion is the CloudEvents spec version stamped on every envelope.
	SpecVersion = "1.0"

	// ContentTypeJSON is the only data content type produced or consumed here.
	ContentTypeJSON = "application/json"
)

// Envelope is the wire-level wrapper used for every message on the resource
// topic, inbound and outbound alike. The shape of Data is keyed by EventType.
type Envelope struct {
	EventType       string          `json:"eventType"`
	SpecVersion     string          `json:"specversion"`
	Source          string          `json:"source"`
	ID              string          `json:"id"`
	Time            time.Time       `json:"time"`
	DataContentType string          `json:"datacontenttype"`
	Data            json.RawMessage `json:"data"`
	CorrelationID   string          `json:"correlationid,omitempty"`
	TenantID        string          `json:"tenantid,omitempty"`
}

// New builds an envelope around payload, generating the envelope id and
// stamping the fixed protocol metadata.
func New(eventType string, source string, now time.Time, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Envelope{
		EventType:       eventType,
		SpecVersion:     SpecVersion,
		Source:          source,
		ID:              uuid.NewString(),
		Time:            now,
		DataContentType: ContentTypeJSON,
		Data:            data,
	}, nil
}

// DecodeData unmarshals the envelope payload into out.
func (e Envelope) DecodeData(out any) error {
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", e.EventType, err)
	}
	return nil
}
