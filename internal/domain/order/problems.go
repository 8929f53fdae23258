package order

import (
	"sort"
	"time"
)

// EventType is one step in an order's lifecycle timeline.
type EventType string

const (
	EventCreated         EventType = "created"
	EventCourierAssigned EventType = "courier_assigned"
	EventPickedUp        EventType = "picked_up"
	EventDelivered       EventType = "delivered"
	EventCancelled       EventType = "cancelled"
)

// Event is a single timestamped lifecycle event.
type Event struct {
	Type       EventType
	OccurredAt time.Time
}

// Problem is a derived SLA-breach flag. Problems are computed from the
// timeline on read, never stored.
type Problem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	ProblemCourierUnassigned    = "COURIER_UNASSIGNED"
	ProblemLatePickup           = "LATE_PICKUP"
	ProblemLateDelivery         = "LATE_DELIVERY"
	ProblemCancelledAfterPickup = "CANCELLED_AFTER_PICKUP"
)

// Thresholds holds the SLA windows the rules compare against.
type Thresholds struct {
	AssignWithin  time.Duration
	PickupWithin  time.Duration
	DeliverWithin time.Duration
}

// DeriveProblems walks an order's event timeline and returns every SLA flag
// that holds at the given instant. The rules mirror the preview pipeline's
// spirit: each flag is an explicit, explainable derivation from recorded
// state, with no mutation.
func DeriveProblems(events []Event, now time.Time, th Thresholds) []Problem {
	byType := make(map[EventType]time.Time, len(events))
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].OccurredAt.Before(sorted[j].OccurredAt)
	})
	for _, e := range sorted {
		if _, seen := byType[e.Type]; !seen {
			byType[e.Type] = e.OccurredAt
		}
	}

	created, hasCreated := byType[EventCreated]
	if !hasCreated {
		return nil
	}

	var problems []Problem

	_, hasAssigned := byType[EventCourierAssigned]
	cancelled, hasCancelled := byType[EventCancelled]
	pickedUp, hasPickedUp := byType[EventPickedUp]
	delivered, hasDelivered := byType[EventDelivered]

	if !hasAssigned && !hasCancelled && now.Sub(created) > th.AssignWithin {
		problems = append(problems, Problem{
			Code:    ProblemCourierUnassigned,
			Message: "no courier assigned within " + th.AssignWithin.String(),
		})
	}

	switch {
	case hasPickedUp && pickedUp.Sub(created) > th.PickupWithin:
		problems = append(problems, Problem{
			Code:    ProblemLatePickup,
			Message: "picked up " + pickedUp.Sub(created).String() + " after creation",
		})
	case !hasPickedUp && !hasCancelled && now.Sub(created) > th.PickupWithin:
		problems = append(problems, Problem{
			Code:    ProblemLatePickup,
			Message: "not picked up within " + th.PickupWithin.String(),
		})
	}

	if hasPickedUp {
		switch {
		case hasDelivered && delivered.Sub(pickedUp) > th.DeliverWithin:
			problems = append(problems, Problem{
				Code:    ProblemLateDelivery,
				Message: "delivered " + delivered.Sub(pickedUp).String() + " after pickup",
			})
		case !hasDelivered && !hasCancelled && now.Sub(pickedUp) > th.DeliverWithin:
			problems = append(problems, Problem{
				Code:    ProblemLateDelivery,
				Message: "not delivered within " + th.DeliverWithin.String() + " of pickup",
			})
		}
	}

	if hasCancelled && hasPickedUp && cancelled.After(pickedUp) {
		problems = append(problems, Problem{
			Code:    ProblemCancelledAfterPickup,
			Message: "order cancelled after courier pickup",
		})
	}

	return problems
}
