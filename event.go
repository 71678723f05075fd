package kubewatch

import (
	"k8s.io/apimachinery/pkg/watch"
)

// EventType classifies a change reported by the watch endpoint. The
// vocabulary is apimachinery's: ADDED, MODIFIED, DELETED, BOOKMARK, ERROR.
type EventType = watch.EventType

const (
	Added    = watch.Added
	Modified = watch.Modified
	Deleted  = watch.Deleted
	Bookmark = watch.Bookmark
	Error    = watch.Error
)

// Event is one decoded record from a watch stream. T is the shape the
// object field is decoded into: a concrete API type such as corev1.Pod, or
// map[string]any / json.RawMessage for dynamic consumption.
type Event[T any] struct {
	Type   EventType `json:"type"`
	Object T         `json:"object"`
}
