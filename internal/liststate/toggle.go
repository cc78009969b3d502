package liststate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/odyssey-erp/hrportal/internal/shared"
)

// StatusColumn is the toggle column of the binary Aktif/Tidak Aktif status.
const StatusColumn = "status"

// ErrUnknownToggle is returned for a column without a Toggle spec.
var ErrUnknownToggle = errors.New("Kolom toggle tidak dikenali.")

// Toggle describes how one binary column of a record is flipped on the server.
type Toggle[R any] struct {
	Title   string
	Message func(r R, next string) string
	Current func(R) string
	Flip    func(string) string
	Write   func(ctx context.Context, r R, next string) error
	Success string
	Failure string
}

// Prompt is the confirmation shown before a toggle is committed.
type Prompt struct {
	Column  string
	Title   string
	Message string
	Current string
	Next    string
}

// FlipStatus flips Aktif to Tidak Aktif and anything else to Aktif.
func FlipStatus(current string) string {
	if current == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

// FlipFlag flips a 0/1 flag; anything other than "1" counts as 0.
func FlipFlag(current string) string {
	if current == "1" {
		return "0"
	}
	return "1"
}

// Prompt computes the confirmation for toggling column of record id.
func (c *Controller[R]) Prompt(id, column string) (Prompt, error) {
	spec, ok := c.cfg.Toggles[column]
	if !ok {
		return Prompt{}, ErrUnknownToggle
	}
	r, found := c.Find(id)
	if !found {
		return Prompt{}, fmt.Errorf("%s %s: %w", c.cfg.Name, id, shared.ErrEmptyResult)
	}
	return c.prompt(spec, column, r), nil
}

func (c *Controller[R]) prompt(spec Toggle[R], column string, r R) Prompt {
	current := spec.Current(r)
	flip := spec.Flip
	if flip == nil {
		flip = FlipStatus
	}
	next := flip(current)
	p := Prompt{Column: column, Title: spec.Title, Current: current, Next: next}
	if spec.Message != nil {
		p.Message = spec.Message(r, next)
	} else {
		p.Message = fmt.Sprintf("Ubah status menjadi %q?", next)
	}
	return p
}

// ToggleStatus flips the binary status of record id.
func (c *Controller[R]) ToggleStatus(ctx context.Context, id string, opts ...CallOption) error {
	return c.Toggle(ctx, id, StatusColumn, opts...)
}

// Toggle flips column of record id. Nothing changes locally before the server
// acknowledges the write; on success the dataset is reloaded with the current
// ViewState. A declined confirmation returns shared.ErrToggleDeclined and sends
// nothing.
func (c *Controller[R]) Toggle(ctx context.Context, id, column string, opts ...CallOption) error {
	call := c.newCall(opts)
	spec, ok := c.cfg.Toggles[column]
	if !ok {
		call.notifier.NotifyError(ctx, ErrUnknownToggle.Error())
		return ErrUnknownToggle
	}
	r, found := c.Find(id)
	if !found {
		err := fmt.Errorf("%s %s: %w", c.cfg.Name, id, shared.ErrEmptyResult)
		call.notifier.NotifyError(ctx, shared.UserMessage(err, ""))
		return err
	}

	p := c.prompt(spec, column, r)
	if call.confirmer == nil || !call.confirmer.Confirm(ctx, p.Title, p.Message) {
		c.cfg.Observer.ObserveToggle(c.cfg.Name, column, OutcomeDeclined)
		return shared.ErrToggleDeclined
	}

	if err := spec.Write(ctx, r, p.Next); err != nil {
		c.cfg.Observer.ObserveToggle(c.cfg.Name, column, OutcomeFailed)
		c.cfg.Logger.Warn("toggle failed",
			slog.String("list", c.cfg.Name),
			slog.String("id", id),
			slog.String("column", column),
			slog.Any("error", err))
		call.notifier.NotifyError(ctx, shared.UserMessage(err, spec.Failure))
		return err
	}

	c.cfg.Observer.ObserveToggle(c.cfg.Name, column, OutcomeSuccess)
	call.notifier.NotifySuccess(ctx, spec.Success)
	if err := c.Load(ctx, opts...); err != nil {
		c.cfg.Logger.Warn("reload after toggle", slog.String("list", c.cfg.Name), slog.Any("error", err))
	}
	return nil
}
