package booking

import "uslugi/internal/domain"

// Actor is the role a user plays on one specific booking.
type Actor string

const (
	ActorProvider Actor = "provider"
	ActorClient   Actor = "client"
)

type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionReject   Action = "reject"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
	ActionReview   Action = "review"
)

type transitionKey struct {
	from   domain.BookingStatus
	actor  Actor
	action Action
}

// transitions is the full lifecycle table. Anything not listed is an
// invalid transition; cancelled and reviewed are terminal.
var transitions = map[transitionKey]domain.BookingStatus{
	{domain.BookingPending, ActorProvider, ActionConfirm}:    domain.BookingConfirmed,
	{domain.BookingPending, ActorProvider, ActionReject}:     domain.BookingCancelled,
	{domain.BookingConfirmed, ActorProvider, ActionCancel}:   domain.BookingCancelled,
	{domain.BookingConfirmed, ActorProvider, ActionComplete}: domain.BookingCompleted,
	{domain.BookingPending, ActorClient, ActionCancel}:       domain.BookingCancelled,
	{domain.BookingConfirmed, ActorClient, ActionCancel}:     domain.BookingCancelled,
	{domain.BookingCompleted, ActorClient, ActionReview}:     domain.BookingReviewed,
}

// Transition resolves the next status for (status, actor, action), or
// ErrInvalidTransition when the table has no entry.
func Transition(from domain.BookingStatus, actor Actor, action Action) (domain.BookingStatus, error) {
	to, ok := transitions[transitionKey{from, actor, action}]
	if !ok {
		return "", ErrInvalidTransition
	}
	return to, nil
}

// AllowedActions lists the actions an actor may take from a status, used
// by clients to decide which controls to offer.
func AllowedActions(from domain.BookingStatus, actor Actor) []Action {
	var out []Action
	for _, a := range []Action{ActionConfirm, ActionReject, ActionCancel, ActionComplete, ActionReview} {
		if _, ok := transitions[transitionKey{from, actor, a}]; ok {
			out = append(out, a)
		}
	}
	return out
}
