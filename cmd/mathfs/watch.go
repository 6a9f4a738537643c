// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/pflag"
)

// visibleRows is how many of the most recent primes the view keeps.
const visibleRows = 12

// fetchTimeout bounds one next call made by the view.
const fetchTimeout = 5 * time.Second

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	latestStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

func runWatch(ctx context.Context, args []string, stdout io.Writer) error {
	var conn connection
	var interval time.Duration
	var limit int
	flagSet := pflag.NewFlagSet("mathfs watch", pflag.ContinueOnError)
	conn.addFlags(flagSet)
	flagSet.DurationVar(&interval, "interval", 500*time.Millisecond, "delay between reads")
	flagSet.IntVar(&limit, "count", 0, "stop after this many primes (0: until quit)")
	if help, err := parseFlags(flagSet, args); help || err != nil {
		return err
	}
	if interval <= 0 {
		return usageError("--interval must be positive, got %s", interval)
	}

	client := conn.client()
	model := newWatchModel(client.Next, conn.socketPath, interval, limit)
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(stdout))
	final, err := program.Run()
	if err != nil {
		return err
	}
	if watched, ok := final.(watchModel); ok && watched.err != nil {
		return conn.diagnose(watched.err)
	}
	return nil
}

// primeMsg carries the result of one next call. generation is the
// model's generation when the call was issued.
type primeMsg struct {
	value      int64
	err        error
	generation int
}

// tickMsg schedules the next call of a running stream.
type tickMsg struct {
	generation int
}

// watchModel streams primes from the daemon at a fixed interval.
//
// Pausing bumps generation, so ticks and results of calls issued
// before the pause do not restart the stream: at most one stream of
// calls is in flight.
type watchModel struct {
	next     func(context.Context) (int64, error)
	socket   string
	keys     watchKeyMap
	interval time.Duration
	limit    int

	recent     []int64
	received   int
	paused     bool
	generation int
	err        error

	// width is the terminal width; zero until the first resize.
	width int
}

func newWatchModel(next func(context.Context) (int64, error), socket string, interval time.Duration, limit int) watchModel {
	return watchModel{
		next:     next,
		socket:   socket,
		keys:     defaultWatchKeyMap,
		interval: interval,
		limit:    limit,
	}
}

func (model watchModel) Init() tea.Cmd {
	return model.fetch()
}

func (model watchModel) fetch() tea.Cmd {
	next := model.next
	generation := model.generation
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		value, err := next(ctx)
		return primeMsg{value: value, err: err, generation: generation}
	}
}

func (model watchModel) tick() tea.Cmd {
	generation := model.generation
	return tea.Tick(model.interval, func(time.Time) tea.Msg {
		return tickMsg{generation: generation}
	})
}

func (model watchModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit
		case key.Matches(message, model.keys.Pause):
			model.paused = !model.paused
			model.generation++
			if !model.paused {
				return model, model.fetch()
			}
		case key.Matches(message, model.keys.Step):
			if model.paused {
				return model, model.fetch()
			}
		}
		return model, nil

	case primeMsg:
		if message.err != nil {
			model.err = message.err
			return model, tea.Quit
		}
		model.recent = append(model.recent, message.value)
		if len(model.recent) > visibleRows {
			model.recent = model.recent[len(model.recent)-visibleRows:]
		}
		model.received++
		if model.limit > 0 && model.received >= model.limit {
			return model, tea.Quit
		}
		if model.paused || message.generation != model.generation {
			return model, nil
		}
		return model, model.tick()

	case tea.WindowSizeMsg:
		model.width = message.Width
		return model, nil

	case tickMsg:
		if model.paused || message.generation != model.generation {
			return model, nil
		}
		return model, model.fetch()
	}
	return model, nil
}

func (model watchModel) View() string {
	var builder strings.Builder
	builder.WriteString(titleStyle.Render("mathfs watch"))
	builder.WriteString(faintStyle.Render("  " + model.socket))
	builder.WriteString("\n\n")

	for index, value := range model.recent {
		line := fmt.Sprintf("%20d", value)
		if index == len(model.recent)-1 {
			builder.WriteString(latestStyle.Render("> " + line))
		} else {
			builder.WriteString(valueStyle.Render("  " + line))
		}
		if index > 0 {
			builder.WriteString(faintStyle.Render(fmt.Sprintf("  +%d", value-model.recent[index-1])))
		}
		builder.WriteString("\n")
	}
	if len(model.recent) == 0 {
		builder.WriteString(faintStyle.Render("  waiting for mathfsd...") + "\n")
	}

	state := "running"
	if model.paused {
		state = "paused"
	}
	builder.WriteString("\n")
	builder.WriteString(faintStyle.Render(fmt.Sprintf("served %d · every %s · %s", model.received, model.interval, state)))
	builder.WriteString("\n")

	if model.err != nil {
		builder.WriteString(errorStyle.Render("error: "+model.err.Error()) + "\n")
	}

	var help []string
	for _, binding := range model.keys.bindings() {
		help = append(help, binding.Help().Key+" "+binding.Help().Desc)
	}
	builder.WriteString(faintStyle.Render(strings.Join(help, " • ")))
	builder.WriteString("\n")
	return model.fit(builder.String())
}

// fit truncates each line of view to the terminal width, keeping
// styling escapes intact.
func (model watchModel) fit(view string) string {
	if model.width <= 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	for index, line := range lines {
		lines[index] = ansi.Truncate(line, model.width, "…")
	}
	return strings.Join(lines, "\n")
}
