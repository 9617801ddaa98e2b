package store

import "github.com/smk-kristen-pedan/order-tracker/models"

// EventKind names the mutation that produced a ChangeEvent
type EventKind string

const (
	EventAdded     EventKind = "added"
	EventProgress  EventKind = "progress"
	EventCompleted EventKind = "completed"
	EventUpdated   EventKind = "updated"
	EventDeleted   EventKind = "deleted"
)

// ChangeEvent is delivered to listeners after every effective mutation
type ChangeEvent struct {
	Kind    EventKind
	OrderID string
	Orders  []models.Order // snapshot of the whole collection after the change
}

// Listener is called synchronously after the store releases its lock.
// Events arrive in mutation order. A listener may read the store but must
// not mutate it.
type Listener func(ChangeEvent)
