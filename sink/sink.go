// Package sink delivers finished traceback errors somewhere durable: JSON
// files on disk or a structured log. A sink is the terminal consumer of an
// error; it renders or serializes the value and never modifies it.
package sink

import (
	"context"
	"errors"

	traceback "github.com/xgx-io/xgx-traceback"
)

// Handler consumes a traceback error.
type Handler interface {
	Handle(ctx context.Context, err *traceback.Error) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, err *traceback.Error) error

// Handle calls f(ctx, err).
func (f HandlerFunc) Handle(ctx context.Context, err *traceback.Error) error {
	return f(ctx, err)
}

type multi []Handler

// Multi returns a Handler that passes each error to every handler in order.
// All handlers run; their failures are joined.
func Multi(handlers ...Handler) Handler {
	out := make(multi, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

func (m multi) Handle(ctx context.Context, err *traceback.Error) error {
	var errs []error
	for _, h := range m {
		if herr := h.Handle(ctx, err); herr != nil {
			errs = append(errs, herr)
		}
	}
	return errors.Join(errs...)
}

// Report hands every traceback found in err's graph to h, outermost first.
// An err that carries no traceback is started as one at the caller, so
// nothing reported is lost. A nil err is a no-op.
func Report(ctx context.Context, h Handler, err error) error {
	if err == nil {
		return nil
	}
	tbs := traceback.Collect(err)
	if len(tbs) == 0 {
		tbs = []*traceback.Error{traceback.WrapSkip(err, err.Error(), 1)}
	}
	var errs []error
	for _, tb := range tbs {
		if herr := h.Handle(ctx, tb); herr != nil {
			errs = append(errs, herr)
		}
	}
	return errors.Join(errs...)
}
