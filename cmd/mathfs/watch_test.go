// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// fakeNext serves 2, 3, 5, 7, ... and counts its calls.
type fakeNext struct {
	primes []int64
	calls  int
	err    error
}

func (f *fakeNext) next(context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	value := f.primes[f.calls%len(f.primes)]
	f.calls++
	return value, nil
}

func newFake() *fakeNext {
	return &fakeNext{primes: []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43}}
}

func keyPress(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

// step applies message and runs the returned command once, as the
// bubbletea runtime would, returning the new model and the command's
// message (nil if there was no command).
func step(t *testing.T, model watchModel, message tea.Msg) (watchModel, tea.Msg) {
	t.Helper()
	updated, cmd := model.Update(message)
	result := updated.(watchModel)
	if cmd == nil {
		return result, nil
	}
	return result, cmd()
}

func isQuit(message tea.Msg) bool {
	_, ok := message.(tea.QuitMsg)
	return ok
}

func TestWatchInitFetches(t *testing.T) {
	fake := newFake()
	model := newWatchModel(fake.next, "/tmp/mathfs.sock", time.Millisecond, 0)

	cmd := model.Init()
	if cmd == nil {
		t.Fatal("Init returned no command")
	}
	message, ok := cmd().(primeMsg)
	if !ok {
		t.Fatalf("Init command produced %T, want primeMsg", message)
	}
	if message.value != 2 || message.err != nil {
		t.Errorf("first fetch = %+v, want value 2", message)
	}
}

func TestWatchStreamsUntilLimit(t *testing.T) {
	fake := newFake()
	model := newWatchModel(fake.next, "/tmp/mathfs.sock", time.Millisecond, 3)

	message := model.Init()()
	for range 10 {
		var next tea.Msg
		model, next = step(t, model, message)
		if isQuit(next) {
			break
		}
		// A result schedules a tick; the tick schedules a fetch.
		if _, ok := next.(tickMsg); !ok {
			t.Fatalf("after result got %T, want tickMsg", next)
		}
		model, message = step(t, model, next)
	}

	if model.received != 3 {
		t.Errorf("received = %d, want 3", model.received)
	}
	if got := model.recent; len(got) != 3 || got[0] != 2 || got[2] != 5 {
		t.Errorf("recent = %v, want [2 3 5]", got)
	}
	if fake.calls != 3 {
		t.Errorf("next called %d times, want 3", fake.calls)
	}
}

func TestWatchKeepsRecentRows(t *testing.T) {
	model := newWatchModel(newFake().next, "", time.Millisecond, 0)
	for value := range int64(visibleRows + 5) {
		model, _ = step(t, model, primeMsg{value: value})
	}
	if len(model.recent) != visibleRows {
		t.Fatalf("recent has %d rows, want %d", len(model.recent), visibleRows)
	}
	if model.recent[visibleRows-1] != visibleRows+4 {
		t.Errorf("last row = %d, want %d", model.recent[visibleRows-1], visibleRows+4)
	}
}

func TestWatchPauseStopsStream(t *testing.T) {
	fake := newFake()
	model := newWatchModel(fake.next, "", time.Millisecond, 0)

	model, _ = step(t, model, primeMsg{value: 2})
	pendingTick := tickMsg{generation: model.generation}

	model, message := step(t, model, keyPress("p"))
	if !model.paused || message != nil {
		t.Fatalf("after pause: paused=%v, message=%v", model.paused, message)
	}

	// The tick scheduled before the pause is stale.
	if _, message = step(t, model, pendingTick); message != nil {
		t.Errorf("stale tick produced %T, want nothing", message)
	}

	// Stepping while paused fetches exactly one prime and schedules
	// nothing further.
	model, message = step(t, model, keyPress("n"))
	if _, ok := message.(primeMsg); !ok {
		t.Fatalf("step produced %T, want primeMsg", message)
	}
	model, message = step(t, model, message)
	if message != nil {
		t.Errorf("result while paused scheduled %T, want nothing", message)
	}

	// Resuming fetches immediately.
	model, message = step(t, model, keyPress("p"))
	if model.paused {
		t.Error("still paused after second press")
	}
	if _, ok := message.(primeMsg); !ok {
		t.Errorf("resume produced %T, want primeMsg", message)
	}
}

func TestWatchStepIgnoredWhileRunning(t *testing.T) {
	fake := newFake()
	model := newWatchModel(fake.next, "", time.Millisecond, 0)

	if _, message := step(t, model, keyPress("n")); message != nil {
		t.Errorf("step while running produced %T, want nothing", message)
	}
	if fake.calls != 0 {
		t.Errorf("next called %d times, want 0", fake.calls)
	}
}

func TestWatchQuitKey(t *testing.T) {
	model := newWatchModel(newFake().next, "", time.Millisecond, 0)
	if _, message := step(t, model, keyPress("q")); !isQuit(message) {
		t.Errorf("q produced %T, want tea.QuitMsg", message)
	}
	if _, message := step(t, model, tea.KeyMsg{Type: tea.KeyCtrlC}); !isQuit(message) {
		t.Errorf("ctrl+c produced %T, want tea.QuitMsg", message)
	}
}

func TestWatchErrorQuits(t *testing.T) {
	fake := &fakeNext{err: errors.New("connection refused")}
	model := newWatchModel(fake.next, "", time.Millisecond, 0)

	model, message := step(t, model, model.Init()())
	if !isQuit(message) {
		t.Errorf("error result produced %T, want tea.QuitMsg", message)
	}
	if model.err == nil || !strings.Contains(model.View(), "connection refused") {
		t.Errorf("view does not show the error:\n%s", model.View())
	}
}

func TestWatchView(t *testing.T) {
	model := newWatchModel(newFake().next, "/run/user/1000/mathfs.sock", 250*time.Millisecond, 0)
	if view := model.View(); !strings.Contains(view, "waiting for mathfsd") {
		t.Errorf("empty view missing waiting line:\n%s", view)
	}

	for _, value := range []int64{89, 97} {
		model, _ = step(t, model, primeMsg{value: value})
	}
	view := model.View()
	for _, want := range []string{"/run/user/1000/mathfs.sock", "89", "97", "+8", "served 2", "250ms", "running", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestWatchViewFitsWidth(t *testing.T) {
	model := newWatchModel(newFake().next, "/run/user/1000/a/very/long/socket/path/mathfs.sock", time.Second, 0)
	model, _ = step(t, model, primeMsg{value: 9223372036854775783})
	model, _ = step(t, model, tea.WindowSizeMsg{Width: 16, Height: 10})

	for _, line := range strings.Split(model.View(), "\n") {
		if width := ansi.StringWidth(line); width > 16 {
			t.Errorf("line %q is %d cells wide, want at most 16", line, width)
		}
	}
}
