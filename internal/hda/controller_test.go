package hda

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/renholt/sidecodec-core/internal/component"
)

// recordingSink captures emitted events and can be told to fail.
type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingSink) RecordAmpEvent(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) recorded() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

type hookCall struct {
	slot  int
	phase string
}

func TestDispatchPCMAction_OrderAndSkips(t *testing.T) {
	sink := &recordingSink{}
	ctrl := New(nil, sink)

	var calls []hookCall
	record := func(slot int, phase string) component.Hook {
		return func(component.Action) {
			calls = append(calls, hookCall{slot, phase})
		}
	}

	// Slot 0 has the full hook set, slot 2 only the main hook, slot 1 and
	// 3 stay empty.
	if err := ctrl.Registry().Bind(0, "dev0", "amp.0", component.Hooks{
		PrePlayback:  record(0, "pre"),
		Playback:     record(0, "main"),
		PostPlayback: record(0, "post"),
	}); err != nil {
		t.Fatalf("Bind(0) error = %v", err)
	}
	if err := ctrl.Registry().Bind(2, "dev2", "amp.2", component.Hooks{
		Playback: record(2, "main"),
	}); err != nil {
		t.Fatalf("Bind(2) error = %v", err)
	}

	ctrl.DispatchPCMAction(context.Background(), component.ActionOpen)

	want := []hookCall{
		{0, "pre"}, {0, "main"}, {0, "post"},
		{2, "main"},
	}
	if len(calls) != len(want) {
		t.Fatalf("hook calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call[%d] = %v, want %v", i, calls[i], want[i])
		}
	}

	events := sink.recorded()
	if len(events) != 2 {
		t.Fatalf("emitted %d events, want 2", len(events))
	}
	if events[0].Kind != EventPCMAction || events[0].Slot != 0 || events[0].Device != "amp.0" {
		t.Errorf("event[0] = %+v, want pcm_action for slot 0", events[0])
	}
	if events[1].Slot != 2 || events[1].Action != component.ActionOpen {
		t.Errorf("event[1] = %+v, want open action for slot 2", events[1])
	}
	if events[0].At.IsZero() {
		t.Error("event timestamp not set")
	}
}

func TestDispatchPCMAction_EmptyRegistryEmitsNothing(t *testing.T) {
	sink := &recordingSink{}
	ctrl := New(nil, sink)

	ctrl.DispatchPCMAction(context.Background(), component.ActionClose)

	if events := sink.recorded(); len(events) != 0 {
		t.Errorf("empty registry emitted events: %v", events)
	}
}

func TestDispatchPCMAction_UnbindDuringHook(t *testing.T) {
	ctrl := New(nil)

	// The hook unbinds its own slot mid-dispatch. Dispatch works on a
	// snapshot, so this must neither deadlock nor skip the call.
	called := false
	if err := ctrl.Registry().Bind(1, "dev1", "amp.1", component.Hooks{
		Playback: func(component.Action) {
			called = true
			ctrl.Registry().Unbind(1, "dev1")
		},
	}); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	ctrl.DispatchPCMAction(context.Background(), component.ActionClose)

	if !called {
		t.Error("playback hook not invoked")
	}
	if ctrl.Registry().BoundCount() != 0 {
		t.Error("slot still bound after hook unbound it")
	}
}

func TestNotifyPlatform_OnlyOptedInSlots(t *testing.T) {
	sink := &recordingSink{}
	ctrl := New(nil, sink)

	var got []uint32
	if err := ctrl.Registry().Bind(0, "dev0", "amp.0", component.Hooks{
		Notify:          func(v uint32) { got = append(got, v) },
		NotifySupported: true,
	}); err != nil {
		t.Fatalf("Bind(0) error = %v", err)
	}
	// Bound but not opted in.
	if err := ctrl.Registry().Bind(1, "dev1", "amp.1", component.Hooks{
		Notify: func(uint32) { t.Error("notify delivered without opt-in") },
	}); err != nil {
		t.Fatalf("Bind(1) error = %v", err)
	}

	ctrl.NotifyPlatform(context.Background(), 0x81)

	if len(got) != 1 || got[0] != 0x81 {
		t.Errorf("notify values = %v, want [0x81]", got)
	}
	events := sink.recorded()
	if len(events) != 1 || events[0].Kind != EventPlatformNotify || events[0].NotifyValue != 0x81 {
		t.Errorf("events = %+v, want single platform_notify with value 0x81", events)
	}
}

func TestEmit_SinkFailureDoesNotStopDispatch(t *testing.T) {
	failing := &recordingSink{err: errors.New("sink down")}
	healthy := &recordingSink{}
	ctrl := New(nil, failing, healthy)

	if err := ctrl.Registry().Bind(0, "dev0", "amp.0", component.Hooks{
		Playback: func(component.Action) {},
	}); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	ctrl.DispatchPCMAction(context.Background(), component.ActionOpen)

	if events := healthy.recorded(); len(events) != 1 {
		t.Errorf("healthy sink saw %d events, want 1", len(events))
	}
}
