package liststate

import (
	"context"
	"time"
)

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, title, message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, title, message string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, title, message string) bool {
	return f(ctx, title, message)
}

// Notifier shows fire-and-forget messages to the user.
type Notifier interface {
	NotifySuccess(ctx context.Context, message string)
	NotifyError(ctx context.Context, message string)
}

// Observer receives load and toggle outcomes, typically for metrics.
type Observer interface {
	ObserveLoad(list string, took time.Duration, err error)
	ObserveToggle(list, column, outcome string)
}

// Toggle outcomes reported to Observer.
const (
	OutcomeDeclined = "declined"
	OutcomeSuccess  = "success"
	OutcomeFailed   = "failed"
)

type discardNotifier struct{}

func (discardNotifier) NotifySuccess(context.Context, string) {}
func (discardNotifier) NotifyError(context.Context, string)   {}

type nopObserver struct{}

func (nopObserver) ObserveLoad(string, time.Duration, error) {}
func (nopObserver) ObserveToggle(string, string, string)     {}

// CallOption overrides collaborators for a single call.
type CallOption func(*call)

type call struct {
	confirmer Confirmer
	notifier  Notifier
}

// WithConfirmer answers the toggle prompt with c for this call.
func WithConfirmer(c Confirmer) CallOption {
	return func(cl *call) {
		if c != nil {
			cl.confirmer = c
		}
	}
}

// WithNotifier routes notifications of this call to n.
func WithNotifier(n Notifier) CallOption {
	return func(cl *call) {
		if n != nil {
			cl.notifier = n
		}
	}
}

func (c *Controller[R]) newCall(opts []CallOption) *call {
	cl := &call{confirmer: c.cfg.Confirmer, notifier: c.cfg.Notifier}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}
