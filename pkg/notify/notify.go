// Package notify carries user-facing outcome messages out of operations that
// report success as a bool.
package notify

import (
	"context"
	"net/http"
	"sync"

	apperrors "room-inventory/pkg/errors"
)

type Kind string

const (
	KindSuccess      Kind = "success"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindError        Kind = "error"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notification struct {
	Kind    Kind   `json:"kind"`
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// StatusCode is the HTTP status a controller answers with for n.
func (n Notification) StatusCode() int {
	switch n.Kind {
	case KindSuccess:
		return http.StatusOK
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func Success(title, message string) Notification {
	return Notification{Kind: KindSuccess, Level: LevelSuccess, Title: title, Message: message}
}

// FromError classifies err and keeps only its public message.
func FromError(title string, err error) Notification {
	n := Notification{Title: title, Message: apperrors.PublicMessage(err)}
	switch apperrors.HTTPStatus(err) {
	case http.StatusBadRequest:
		n.Kind, n.Level = KindValidation, LevelWarning
	case http.StatusUnauthorized:
		n.Kind, n.Level = KindUnauthorized, LevelWarning
	case http.StatusForbidden:
		n.Kind, n.Level = KindForbidden, LevelWarning
	case http.StatusNotFound:
		n.Kind, n.Level = KindNotFound, LevelWarning
	case http.StatusConflict:
		n.Kind, n.Level = KindConflict, LevelWarning
	default:
		n.Kind, n.Level = KindError, LevelError
	}
	return n
}

// Notifier delivers a notification to the user who triggered it.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

type multi []Notifier

func (m multi) Notify(ctx context.Context, n Notification) {
	for _, notifier := range m {
		notifier.Notify(ctx, n)
	}
}

// Multi fans a notification out to every non-nil notifier.
func Multi(notifiers ...Notifier) Notifier {
	out := make(multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Recorder keeps the notifications raised while serving one request.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

type recorderKey struct{}

// WithRecorder attaches a fresh Recorder to ctx.
func WithRecorder(ctx context.Context) (context.Context, *Recorder) {
	rec := &Recorder{}
	return context.WithValue(ctx, recorderKey{}, rec), rec
}

// Record stores n in the request's Recorder, if one is attached.
func Record(ctx context.Context, n Notification) {
	if rec, ok := ctx.Value(recorderKey{}).(*Recorder); ok {
		rec.Notify(ctx, n)
	}
}
