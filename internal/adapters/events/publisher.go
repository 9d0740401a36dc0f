package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/core/store"
	"github.com/nats-io/nats.go"
)

// SubjectPrefix is prepended to the slice id: "cyberdash.threats", "cyberdash.auth", ...
const SubjectPrefix = "cyberdash."

// SliceChange is the payload published after every applied action.
type SliceChange struct {
	Action    string        `json:"action"`
	Slice     store.SliceID `json:"slice"`
	Items     int           `json:"items"`
	Loading   bool          `json:"loading"`
	Error     string        `json:"error,omitempty"`
	Origin    store.Origin  `json:"origin,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// conn is the part of *nats.Conn the publisher needs.
type conn interface {
	Publish(subj string, data []byte) error
	IsConnected() bool
	Close()
}

// Publisher mirrors store changes onto NATS subjects.
type Publisher struct {
	conn   conn
	logger *slog.Logger
	now    func() time.Time
}

// NewPublisher connects to natsURL with retry and reconnect enabled.
func NewPublisher(natsURL string, logger *slog.Logger) (*Publisher, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name("cyberdash"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	p := newPublisher(nc, logger)
	p.logger.Info("Connected to NATS", "url", natsURL)
	return p, nil
}

func newPublisher(c conn, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{conn: c, logger: logger.With("component", "events"), now: time.Now}
}

// Attach subscribes to st and returns the unsubscribe func.
func (p *Publisher) Attach(st *store.Store) func() {
	return st.Subscribe(func(a store.Action, s store.State) {
		if err := p.Publish(a, s); err != nil {
			p.logger.Warn("Failed to publish slice change", "action", store.Name(a), "error", err)
		}
	})
}

// Publish sends one SliceChange for a.
func (p *Publisher) Publish(a store.Action, s store.State) error {
	change := Describe(a, s, p.now())
	data, err := json.Marshal(change)
	if err != nil {
		return err
	}
	return p.conn.Publish(SubjectPrefix+string(change.Slice), data)
}

// IsConnected reports the connection state.
func (p *Publisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}

func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
		p.logger.Info("Disconnected from NATS")
	}
}

// Describe summarizes the slice a touched in s.
func Describe(a store.Action, s store.State, now time.Time) SliceChange {
	c := SliceChange{Action: store.Name(a), Slice: a.Slice(), Timestamp: now}
	switch a.Slice() {
	case store.SliceThreats:
		fill(&c, s.Threats)
	case store.SliceNetwork:
		fill(&c, s.Network)
	case store.SliceSIEM:
		fill(&c, s.SIEM)
	case store.SliceReports:
		fill(&c, s.Reports)
	case store.SliceThreatMap:
		fill(&c, s.ThreatMap)
	case store.SliceAuth:
		c.Loading = s.Auth.Loading
		c.Error = s.Auth.Error
	case store.SliceUI:
		c.Loading = s.UI.Loading
	}
	return c
}

func fill[T store.Entity](c *SliceChange, col store.Collection[T]) {
	c.Items = len(col.Items)
	c.Loading = col.Loading
	c.Error = col.Error
	c.Origin = col.Origin
}
