package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pulse-runner/internal/core"
	"github.com/vovakirdan/pulse-runner/internal/replay"
	"github.com/vovakirdan/pulse-runner/internal/runner"
)

// playbackSpeeds are the frames applied per tick at each speed step.
var playbackSpeeds = []int{1, 2, 4, 8}

// ReplayModel plays a recorded run back, one recorded frame per tick.
type ReplayModel struct {
	replay     *replay.Replay
	playback   *replay.Playback
	screen     *core.Screen
	tickRate   int
	speed      int // Index into playbackSpeeds
	paused     bool
	quitting   bool
	backToMenu bool
	exitOnBack bool
}

// NewReplayModel prepares playback of r.
func NewReplayModel(r *replay.Replay, cfg core.RuntimeConfig) (ReplayModel, error) {
	pb, err := replay.NewPlayback(r)
	if err != nil {
		return ReplayModel{}, err
	}
	pb.Game().SetOverlay(runner.OverlayReplay)

	return ReplayModel{
		replay:   r,
		playback: pb,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		tickRate: cfg.TickRate,
	}, nil
}

// Init starts the tick loop.
func (m ReplayModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "esc", "b":
			m.backToMenu = true
			if m.exitOnBack {
				return m, tea.Quit
			}
		case " ", "p":
			m.paused = !m.paused
		case "right", "l", "+":
			m.speed = min(m.speed+1, len(playbackSpeeds)-1)
		case "left", "h", "-":
			m.speed = max(m.speed-1, 0)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if m.quitting || m.backToMenu {
			return m, nil
		}
		if !m.paused {
			for i := 0; i < playbackSpeeds[m.speed]; i++ {
				if _, ok := m.playback.Next(); !ok {
					break
				}
			}
		}
		return m, tickCmd(m.tickRate)
	}

	return m, nil
}

// View renders the replayed game with a status line.
func (m ReplayModel) View() string {
	if m.quitting {
		return ""
	}

	m.playback.Game().Render(m.screen)

	status := fmt.Sprintf("%s  x%d  %d/%d",
		m.replay.ID.String()[:8], playbackSpeeds[m.speed], m.playback.Position(), len(m.replay.Frames))
	switch {
	case m.playback.Done():
		status = "END  " + status
	case m.paused:
		status = "PAUSED  " + status
	}
	m.screen.DrawTextColored(m.screen.Width()-len(status)-1, m.screen.Height()-1, status, core.ColorBrightYellow)

	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m ReplayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back.
func (m ReplayModel) BackToMenu() bool {
	return m.backToMenu
}

// RunReplay plays r back in its own program. The boolean reports whether
// the viewer asked to go back rather than quit.
func RunReplay(r *replay.Replay, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model, err := NewReplayModel(r, cfg)
	if err != nil {
		return false, err
	}
	model.exitOnBack = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	rm, ok := final.(ReplayModel)
	if !ok {
		return false, nil
	}
	return rm.BackToMenu(), nil
}
