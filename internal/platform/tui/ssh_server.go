package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/pulse-runner/internal/core"
	"github.com/vovakirdan/pulse-runner/internal/registry"
	"github.com/vovakirdan/pulse-runner/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.pulserun/host_key.
	HostKeyPath string

	// DBPath is the path to the replay database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int

	// Logger receives server and session logs. Defaults to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.pulserun/replays.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server that hosts one independent session
// per connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "pulserun-ssh",
		})
	}

	// Sessions still work without storage; their replays are just not kept.
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open replay database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.closeStore()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".pulserun", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	opts := Options{
		Store:  s.store,
		Logger: s.logger.With("user", sshSession.User()),
		User:   sshSession.User(),
	}

	return NewSessionModel(opts, cfg), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithFilter(finishOnQuit),
	}
}

// finishOnQuit saves the active run when the program is told to quit from
// outside, e.g. when the SSH client disconnects. QuitMsg never reaches
// Update, so the model cannot do this itself.
func finishOnQuit(m tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.QuitMsg); ok {
		if sm, ok := m.(SessionModel); ok {
			sm.Finish()
		}
	}
	return msg
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		started := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", remoteHost(sshSession.RemoteAddr()),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", remoteHost(sshSession.RemoteAddr()),
			"duration", time.Since(started).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.closeStore()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// remoteHost strips the port from a remote address for logging.
func remoteHost(addr net.Addr) string {
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}

// sessionScreen identifies what a session currently shows.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenBrowser
	screenReplay
)

// SessionModel manages a full session: menu, games, the replay browser and
// replay playback. It is the top-level model of SSH sessions.
type SessionModel struct {
	opts     Options
	config   core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	game     *GameModel
	browser  *ReplayBrowserModel
	replay   *ReplayModel
	status   string // Shown on the menu after a failed action
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts Options, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(cfg),
	}
}

// Finish saves the recording of a run still in progress, if any.
func (m SessionModel) Finish() {
	if m.game != nil {
		m.game.finishRun()
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenBrowser:
		return m.updateBrowser(msg)
	case screenReplay:
		return m.updateReplay(msg)
	default:
		return m.updateMenu(msg)
	}
}

// toMenu returns to a fresh menu.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.game, m.browser, m.replay = nil, nil, nil
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsReplays() {
		browser := NewReplayBrowserModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.browser = &browser
		m.screen = screenBrowser
		m.status = ""
		return m, browser.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := registry.Create(selected.GameID)
		if err != nil {
			m.opts.logger().Error("cannot create game", "game", selected.GameID, "error", err)
			m.status = err.Error()
			return m.toMenu()
		}

		m.config = m.menu.Config()
		gm := NewGameModel(game, m.opts, m.config)
		m.game = &gm
		m.screen = screenGame
		m.status = ""
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(GameModel); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.toMenu()
	}

	return m, cmd
}

// updateBrowser handles updates in the replay browser.
func (m SessionModel) updateBrowser(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.browser.Update(msg)
	if bm, ok := newModel.(ReplayBrowserModel); ok {
		m.browser = &bm
	}

	switch {
	case m.browser.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.browser.IsGoingBack():
		return m.toMenu()
	case m.browser.Chosen() != "":
		return m.startReplay(m.browser.Chosen())
	}

	return m, cmd
}

// startReplay loads a replay and switches to playback.
func (m SessionModel) startReplay(id string) (tea.Model, tea.Cmd) {
	fail := func(err error) (tea.Model, tea.Cmd) {
		m.opts.logger().Error("cannot play replay", "id", id, "error", err)
		next, cmd := m.toMenu()
		sm := next.(SessionModel)
		sm.status = "could not play replay " + id
		return sm, cmd
	}

	if m.opts.Store == nil {
		return fail(errors.New("replay storage is unavailable"))
	}
	r, err := m.opts.Store.LoadReplay(id)
	if err != nil {
		return fail(err)
	}
	rm, err := NewReplayModel(r, m.config)
	if err != nil {
		return fail(err)
	}

	m.replay = &rm
	m.screen = screenReplay
	return m, rm.Init()
}

// updateReplay handles updates during playback.
func (m SessionModel) updateReplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.replay.Update(msg)
	if rm, ok := newModel.(ReplayModel); ok {
		m.replay = &rm
	}

	if m.replay.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.replay.BackToMenu() {
		browser := NewReplayBrowserModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.browser = &browser
		m.replay = nil
		m.screen = screenBrowser
		return m, nil
	}

	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenBrowser:
		return m.browser.View()
	case screenReplay:
		return m.replay.View()
	}

	view := m.menu.View()
	if m.status != "" {
		view += "\n" + centerText(m.status, m.config.ScreenW)
	}
	return view
}
