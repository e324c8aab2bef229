package sim

// LobbyMessageKind identifies the out-of-band messages exchanged before a
// multiplayer match starts. The transport that carried them is not the
// simulation's concern.
type LobbyMessageKind string

const (
	LobbyReady     LobbyMessageKind = "ready"
	LobbyCountdown LobbyMessageKind = "countdown"
	LobbyStart     LobbyMessageKind = "start"
)

// LobbyMessage is one pre-match message from a peer or the host.
type LobbyMessage struct {
	Kind      LobbyMessageKind
	Peer      string
	Countdown int
	Seed      int64
}

// Lobby resolves ready/countdown/start negotiation entirely before the
// match loop starts. Once Started reports true the agreed seed feeds the
// match configuration and the lobby is done.
type Lobby struct {
	ready     map[string]bool
	expected  int
	countdown int
	seed      int64
	started   bool
}

// NewLobby creates a lobby waiting for the given number of peers.
func NewLobby(expectedPeers int) *Lobby {
	if expectedPeers < 1 {
		expectedPeers = 1
	}
	return &Lobby{
		ready:    make(map[string]bool),
		expected: expectedPeers,
	}
}

// Handle applies one lobby message. Messages after start are ignored.
func (l *Lobby) Handle(msg LobbyMessage) {
	if l == nil || l.started {
		return
	}
	switch msg.Kind {
	case LobbyReady:
		if msg.Peer != "" {
			l.ready[msg.Peer] = true
		}
	case LobbyCountdown:
		if msg.Countdown >= 0 {
			l.countdown = msg.Countdown
		}
	case LobbyStart:
		l.seed = msg.Seed
		l.started = true
	}
}

// AllReady reports whether every expected peer has sent ready.
func (l *Lobby) AllReady() bool {
	return l != nil && len(l.ready) >= l.expected
}

// Countdown returns the last announced countdown value.
func (l *Lobby) Countdown() int {
	if l == nil {
		return 0
	}
	return l.countdown
}

// Started reports whether the start message has arrived.
func (l *Lobby) Started() bool {
	return l != nil && l.started
}

// Seed returns the agreed match seed, valid once Started is true.
func (l *Lobby) Seed() int64 {
	if l == nil {
		return 0
	}
	return l.seed
}
