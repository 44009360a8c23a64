package hda

import (
	"context"
	"time"

	"github.com/renholt/sidecodec-core/internal/component"
)

// Logger defines the logging interface used by the Controller.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Controller is the audio controller's side-codec coordinator. It owns
// the component registry and dispatches stream and platform events to
// every bound amplifier.
type Controller struct {
	registry *component.Registry
	logger   Logger
	sinks    []EventSink
	now      func() time.Time
}

// New creates a Controller with an empty registry.
//
// Parameters:
//   - logger: Structured logger; nil falls back to a no-op logger
//   - sinks: Event sinks notified of every dispatched action
func New(logger Logger, sinks ...EventSink) *Controller {
	if logger == nil {
		logger = noopLogger{}
	}
	registry := component.NewRegistry()
	registry.SetLogger(logger)

	return &Controller{
		registry: registry,
		logger:   logger,
		sinks:    sinks,
		now:      time.Now,
	}
}

// Registry returns the component registry amplifier drivers bind into.
func (c *Controller) Registry() *component.Registry {
	return c.registry
}

// DispatchPCMAction delivers a PCM stream lifecycle action to every
// bound slot.
//
// Per slot the order is pre-playback, playback, post-playback; nil hooks
// are skipped. Hooks run on a snapshot taken under one lock acquisition,
// so a concurrent unbind cannot clear a hook mid-dispatch and hooks never
// run with the registry mutex held.
func (c *Controller) DispatchPCMAction(ctx context.Context, action component.Action) {
	slots := c.registry.Snapshot()

	for i := range slots {
		comp := slots[i]
		if !comp.Bound() {
			continue
		}

		if comp.Hooks.PrePlayback != nil {
			comp.Hooks.PrePlayback(action)
		}
		if comp.Hooks.Playback != nil {
			comp.Hooks.Playback(action)
		}
		if comp.Hooks.PostPlayback != nil {
			comp.Hooks.PostPlayback(action)
		}

		c.logger.Debug("pcm action dispatched",
			"slot", i,
			"device", comp.Name,
			"action", action.String(),
		)
		c.emit(ctx, Event{
			Kind:   EventPCMAction,
			Slot:   i,
			Device: comp.Name,
			Action: action,
			At:     c.now(),
		})
	}
}

// NotifyPlatform fans a platform (ACPI) notification value out to every
// bound slot that opted in to notifications.
func (c *Controller) NotifyPlatform(ctx context.Context, value uint32) {
	slots := c.registry.Snapshot()

	for i := range slots {
		comp := slots[i]
		if !comp.Bound() || !comp.Hooks.NotifySupported || comp.Hooks.Notify == nil {
			continue
		}

		comp.Hooks.Notify(value)
		c.logger.Debug("platform notification delivered",
			"slot", i,
			"device", comp.Name,
			"value", value,
		)
		c.emit(ctx, Event{
			Kind:        EventPlatformNotify,
			Slot:        i,
			Device:      comp.Name,
			NotifyValue: value,
			At:          c.now(),
		})
	}
}

// emit delivers an event to every sink, best-effort.
func (c *Controller) emit(ctx context.Context, ev Event) {
	for _, sink := range c.sinks {
		if err := sink.RecordAmpEvent(ctx, ev); err != nil {
			c.logger.Warn("event sink rejected amp event",
				"kind", ev.Kind,
				"slot", ev.Slot,
				"error", err,
			)
		}
	}
}
