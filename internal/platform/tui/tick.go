// Package tui provides the Bubble Tea integration for Pulse Runner.
// It handles the terminal UI loop, input mapping, replay browsing and the
// SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// frameClock measures the real time between ticks. Bubble Tea delivers
// ticks late under load, so the simulation is advanced by the measured
// delta rather than the nominal interval.
type frameClock struct {
	last    time.Time
	nominal float64
}

func newFrameClock(tickRate int) frameClock {
	return frameClock{nominal: tickInterval(tickRate).Seconds()}
}

// delta returns the seconds since the previous tick. The first tick
// reports the nominal interval.
func (c *frameClock) delta(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return c.nominal
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	return dt
}

// reset forgets the previous tick, e.g. after a restart.
func (c *frameClock) reset() {
	c.last = time.Time{}
}
