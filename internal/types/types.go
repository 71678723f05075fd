package types

import (
	"encoding/json"
	"time"
)

// WatchRecord is the flattened form of a watch event kept by the recording
// layer: the event classification, the identity fields pulled out of the
// object for indexed lookups, and the raw object for everything else.
type WatchRecord struct {
	Resource   string          `json:"resource"`
	EventType  string          `json:"event_type"`
	UID        string          `json:"uid"`
	Kind       string          `json:"kind"`
	Namespace  string          `json:"namespace"`
	Name       string          `json:"name"`
	Version    string          `json:"version"`
	ReceivedAt time.Time       `json:"received_at"`
	Object     json.RawMessage `json:"object,omitempty"`
}

// FromObject builds a WatchRecord from a raw event object, extracting the
// standard Kubernetes identity fields when present. Objects without metadata
// still produce a record; the identity fields are simply empty.
func FromObject(resource, eventType string, object json.RawMessage) WatchRecord {
	var meta struct {
		Kind     string `json:"kind"`
		Metadata struct {
			UID             string `json:"uid"`
			Name            string `json:"name"`
			Namespace       string `json:"namespace"`
			ResourceVersion string `json:"resourceVersion"`
		} `json:"metadata"`
	}
	// Best effort: a record is still worth keeping when the object does not
	// parse as a Kubernetes resource.
	_ = json.Unmarshal(object, &meta)

	return WatchRecord{
		Resource:   resource,
		EventType:  eventType,
		UID:        meta.Metadata.UID,
		Kind:       meta.Kind,
		Namespace:  meta.Metadata.Namespace,
		Name:       meta.Metadata.Name,
		Version:    meta.Metadata.ResourceVersion,
		ReceivedAt: time.Now(),
		Object:     object,
	}
}
