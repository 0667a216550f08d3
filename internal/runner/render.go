package runner

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/pulse-runner/internal/config"
	"github.com/vovakirdan/pulse-runner/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar      = '◉'
	EnemyChar       = '■'
	HazardChar      = '▲'
	CollectibleChar = '●'
	TunnelChar      = '·'
	LaneChar        = '─'
	BarFull         = '█'
	BarEmpty        = '░'
	ProgressFull    = '━'
	ProgressEmpty   = '─'
)

// Layout constants, in rows
const (
	hudRows    = 2 // HUD text + progress bar
	footerRows = 1
	minWidth   = 32
)

// Overlay selects a message drawn on top of the playfield.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayPaused
	OverlayRunOver
	OverlayReplay
)

// Renderer draws snapshots into a screen buffer. It scales world units to
// cells, so the simulation is independent of the terminal size.
type Renderer struct {
	world config.WorldConfig
}

// NewRenderer creates a renderer for the given world.
func NewRenderer(cfg config.RunnerConfig) Renderer {
	return Renderer{world: cfg.World}
}

// layout holds the cell geometry of one frame.
type layout struct {
	w, h     int
	top      int // First playfield row
	laneRows int
	lanes    int
	scaleX   float64
}

func (r Renderer) layout(dst *core.Screen, lanes int) (layout, bool) {
	l := layout{
		w:      dst.Width(),
		h:      dst.Height(),
		top:    hudRows,
		lanes:  lanes,
		scaleX: float64(dst.Width()) / r.world.Width,
	}
	fieldRows := l.h - hudRows - footerRows
	if l.w < minWidth || lanes < 1 || fieldRows < lanes {
		return l, false
	}
	l.laneRows = fieldRows / lanes
	return l, true
}

func (l layout) col(x float64) int {
	return int(math.Floor(x * l.scaleX))
}

func (l layout) laneCentre(lane int) int {
	return l.top + lane*l.laneRows + l.laneRows/2
}

// rowForY maps a world y to a playfield row.
func (l layout) rowForY(y, worldH float64) int {
	return l.top + int(y/worldH*float64(l.laneRows*l.lanes))
}

// Draw renders the whole frame: tunnel, lanes, collectibles, hazards,
// enemies, player, HUD and the optional overlay.
func (r Renderer) Draw(dst *core.Screen, snap Snapshot, overlay Overlay) {
	dst.Clear()

	l, ok := r.layout(dst, snap.Lanes)
	if !ok {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	r.drawTunnel(dst, l, snap.Run.Distance)
	r.drawLanes(dst, l)
	for _, c := range snap.Collectibles {
		dst.SetColored(l.col(c.X), l.laneCentre(c.Lane), CollectibleChar, core.ColorBrightGreen)
	}
	for _, h := range snap.Hazards {
		drawSpan(dst, l, h, HazardChar, core.ColorOrange)
	}
	for _, e := range snap.Enemies {
		drawSpan(dst, l, e, EnemyChar, core.ColorRed)
	}
	r.drawPlayer(dst, l, snap)
	r.drawHUD(dst, l, snap)
	drawFooter(dst, l, overlay)

	switch overlay {
	case OverlayPaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case OverlayRunOver:
		drawCenteredMessage(dst, "RUN OVER", "Score: "+FormatScore(snap.Run.Score)+"  |  R restart  Esc menu")
	}
}

// drawTunnel scatters dots over the lanes. The pattern shifts with distance
// so the tunnel appears to scroll.
func (r Renderer) drawTunnel(dst *core.Screen, l layout, distance float64) {
	shift := int(distance * 4)
	for y := l.top; y < l.top+l.laneRows*l.lanes; y++ {
		for x := 1; x < l.w-1; x++ {
			if (x+shift+y)%6 == 0 {
				dst.SetColored(x, y, TunnelChar, core.ColorTunnel)
			}
		}
	}
}

// drawLanes draws a separator on the last row of every lane but the last.
// Lanes a single row tall get no separators.
func (r Renderer) drawLanes(dst *core.Screen, l layout) {
	if l.laneRows < 2 {
		return
	}
	for i := 1; i < l.lanes; i++ {
		y := l.top + i*l.laneRows - 1
		dst.DrawHLine(1, y, l.w-2, LaneChar, core.ColorGray)
	}
}

func drawSpan(dst *core.Screen, l layout, e Entity, ch rune, c core.Color) {
	span := e.Span()
	from, to := l.col(span.Min), l.col(span.Max)
	if to <= from {
		to = from + 1
	}
	y := l.laneCentre(e.Lane)
	for x := from; x < to; x++ {
		dst.SetColored(x, y, ch, c)
	}
}

func (r Renderer) drawPlayer(dst *core.Screen, l layout, snap Snapshot) {
	x := l.col(snap.Player.X)
	y := l.rowForY(snap.Player.Y, r.world.Height)
	if snap.PulseActive {
		dst.SetColored(x-1, y, '(', core.ColorOrange)
		dst.SetColored(x, y, PlayerChar, core.ColorOrange)
		dst.SetColored(x+1, y, ')', core.ColorOrange)
		return
	}
	dst.SetColored(x, y, PlayerChar, core.ColorSlate)
}

// drawHUD writes score, combo, distance and the pulse meter on row 0 and
// the goal progress bar on row 1.
func (r Renderer) drawHUD(dst *core.Screen, l layout, snap Snapshot) {
	hud := NewHUD(snap)

	x := 1
	x = writeText(dst, x, 0, "SCORE ", core.ColorGray)
	x = writeText(dst, x, 0, hud.Score, core.ColorBrightWhite)
	x = writeText(dst, x, 0, "  "+hud.Combo, core.ColorBrightYellow)
	writeText(dst, x, 0, "  "+hud.Distance, core.ColorWhite)

	const meter = 10
	if snap.PulseActive {
		label := "PULSE "
		px := l.w - meter - utf8.RuneCountInString(label) - 1
		px = writeText(dst, px, 0, label, core.ColorOrange)
		filled := int(math.Ceil(snap.PulseFill * meter))
		writeText(dst, px, 0, strings.Repeat(string(BarFull), filled), core.ColorOrange)
		writeText(dst, px+filled, 0, strings.Repeat(string(BarEmpty), meter-filled), core.ColorGray)
	} else {
		label := "PULSE charging"
		writeText(dst, l.w-utf8.RuneCountInString(label)-1, 0, label, core.ColorGray)
	}

	barW := l.w - 2
	filled := int(math.Floor(hud.Progress * float64(barW)))
	dst.DrawHLine(1, 1, filled, ProgressFull, core.ColorBrightGreen)
	dst.DrawHLine(1+filled, 1, barW-filled, ProgressEmpty, core.ColorGray)
}

func drawFooter(dst *core.Screen, l layout, overlay Overlay) {
	hint := "↑/↓ lane  space pulse  p pause  esc menu  q quit"
	if overlay == OverlayReplay {
		hint = "REPLAY  space pause  esc back  q quit"
	}
	writeText(dst, 1, l.h-1, hint, core.ColorGray)
}

// writeText draws text and returns the column after it.
func writeText(dst *core.Screen, x, y int, text string, c core.Color) int {
	dst.DrawTextColored(x, y, text, c)
	return x + utf8.RuneCountInString(text)
}

func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleW := utf8.RuneCountInString(title)
	subtitleW := utf8.RuneCountInString(subtitle)

	boxW := core.Max(titleW, subtitleW) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-titleW)/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawText(boxX+(boxW-subtitleW)/2, boxY+3, subtitle)
}
