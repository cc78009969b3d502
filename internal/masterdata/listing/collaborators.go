package listing

import (
	"context"
	"strings"

	"github.com/odyssey-erp/hrportal/internal/liststate"
	"github.com/odyssey-erp/hrportal/internal/shared"
)

// ConfirmField is the form field that answers a toggle prompt.
const ConfirmField = "confirm"

// FlashNotifier turns controller notifications into session flash messages.
// Inline drops errors for pages that render the load failure themselves.
type FlashNotifier struct {
	Session *shared.Session
	Inline  bool
}

// NotifySuccess queues a success flash.
func (n FlashNotifier) NotifySuccess(_ context.Context, message string) {
	n.add("success", message)
}

// NotifyError queues an error flash.
func (n FlashNotifier) NotifyError(_ context.Context, message string) {
	if n.Inline {
		return
	}
	n.add("error", message)
}

func (n FlashNotifier) add(kind, message string) {
	if n.Session == nil || strings.TrimSpace(message) == "" {
		return
	}
	n.Session.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
}

// FormConfirmer answers the toggle prompt from a submitted form. The prompt was
// already shown on the previous page, so only "ya" counts as consent.
type FormConfirmer string

// Confirm implements liststate.Confirmer.
func (f FormConfirmer) Confirm(context.Context, string, string) bool {
	return strings.EqualFold(strings.TrimSpace(string(f)), "ya")
}

var (
	_ liststate.Notifier  = FlashNotifier{}
	_ liststate.Confirmer = FormConfirmer("")
)
