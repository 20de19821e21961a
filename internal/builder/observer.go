package builder

import (
	"log/slog"
	"sync/atomic"
)

// Translator identifies which translator degraded a value.
type Translator int

const (
	TranslatorFilter Translator = iota
	TranslatorSelector
)

// String returns the translator name.
func (t Translator) String() string {
	switch t {
	case TranslatorFilter:
		return "filter"
	case TranslatorSelector:
		return "selector"
	default:
		return "unknown"
	}
}

// DegradedValue describes a text value stored untranslated because its
// translator failed.
type DegradedValue struct {
	EntityID    string
	AttributeID string
	Translator  Translator
	Text        string
	Err         error
}

// Observer receives degraded values.
type Observer interface {
	OnDegraded(DegradedValue)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(DegradedValue)

// OnDegraded implements Observer.
func (f ObserverFunc) OnDegraded(d DegradedValue) {
	f(d)
}

// LogObserver logs each degraded value at warn level.
type LogObserver struct {
	Logger *slog.Logger
}

// OnDegraded implements Observer.
func (o LogObserver) OnDegraded(d DegradedValue) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("value kept untranslated",
		"entity", d.EntityID,
		"attribute", d.AttributeID,
		"translator", d.Translator.String(),
		"error", d.Err)
}

// CountingObserver counts degraded values and forwards them to Next.
type CountingObserver struct {
	Next  Observer
	count atomic.Int64
}

// OnDegraded implements Observer.
func (o *CountingObserver) OnDegraded(d DegradedValue) {
	o.count.Add(1)
	if o.Next != nil {
		o.Next.OnDegraded(d)
	}
}

// Count returns the number of degraded values seen.
func (o *CountingObserver) Count() int64 {
	return o.count.Load()
}
