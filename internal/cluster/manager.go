// Package cluster provides gossip-based membership for multi-node cloak
// deployments.
//
// Nodes discover each other over Serf's SWIM protocol: joining any live
// member is enough to learn the full topology, and failure detection spreads
// epidemically without a central coordinator. The daemon runs one Manager
// when clustering is enabled; single-node deployments skip it entirely.
//
// Use odd-numbered clusters (3, 5, 7) in production so name-conflict
// resolution and partition recovery have a clear majority.
package cluster

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/hashicorp/serf/serf"

	"github.com/cloak-dev/cloak/internal/logging"
)

// Member describes a node in the cluster as seen by the local gossip layer.
type Member struct {
	Name     string            `json:"name"`
	Address  string            `json:"address"`
	Status   string            `json:"status"`
	Tags     map[string]string `json:"tags"`
	LastSeen time.Time         `json:"lastSeen"`
}

// Manager owns the local Serf instance and tracks cluster membership.
type Manager struct {
	config *Config
	serf   *serf.Serf

	eventCh    chan serf.Event
	shutdownCh chan struct{}
	wg         sync.WaitGroup

	mu      sync.RWMutex
	members map[string]*Member
}

// NewManager creates a Manager from the given config without touching the
// network. Start brings the gossip layer up.
func NewManager(config *Config) (*Manager, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Manager{
		config:     config,
		eventCh:    make(chan serf.Event, config.EventBufferSize),
		shutdownCh: make(chan struct{}),
		members:    make(map[string]*Member),
	}, nil
}

// Start creates the Serf instance, binds the gossip port, and begins
// processing membership events.
func (m *Manager) Start() error {
	logging.Info("Starting cluster membership for node %s", m.config.NodeName)

	serfConfig := serf.DefaultConfig()

	// Route or silence serf internals before Init so memberlist inherits the
	// same output.
	if m.config.LogLevel == "ERROR" {
		serfConfig.LogOutput = io.Discard
		serfConfig.MemberlistConfig.LogOutput = io.Discard
	} else {
		w := logging.NewLevelWriter("DEBUG", "serf")
		serfConfig.LogOutput = w
		serfConfig.MemberlistConfig.LogOutput = w
	}

	serfConfig.Init()
	serfConfig.NodeName = m.config.NodeName
	serfConfig.MemberlistConfig.BindAddr = m.config.BindAddr
	serfConfig.MemberlistConfig.BindPort = m.config.BindPort
	serfConfig.EventCh = m.eventCh
	for k, v := range m.config.Tags {
		serfConfig.Tags[k] = v
	}

	s, err := serf.Create(serfConfig)
	if err != nil {
		return fmt.Errorf("failed to create serf instance: %w", err)
	}
	m.serf = s

	m.wg.Add(1)
	go m.processEvents()

	m.trackMember(s.LocalMember())

	logging.Success("Cluster membership started on %s:%d", m.config.BindAddr, m.config.BindPort)
	return nil
}

// Join attempts to join an existing cluster via one or more seed addresses.
// Serf tries each address until one succeeds, so multiple seeds give fault
// tolerance during bootstrap.
func (m *Manager) Join(addresses []string) error {
	if len(addresses) == 0 {
		return fmt.Errorf("no join addresses provided")
	}

	logging.Info("Joining cluster via %v", addresses)
	n, err := m.serf.Join(addresses, true)
	if err != nil {
		return fmt.Errorf("failed to join cluster: %w", err)
	}
	logging.Success("Joined cluster, contacted %d node(s)", n)
	return nil
}

// Members returns a snapshot of the known cluster members.
func (m *Manager) Members() []Member {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Member, 0, len(m.members))
	for _, member := range m.members {
		out = append(out, *member)
	}
	return out
}

// Shutdown leaves the cluster gracefully and stops event processing.
func (m *Manager) Shutdown() error {
	if m.serf == nil {
		return nil
	}

	if err := m.serf.Leave(); err != nil {
		logging.Warn("Error leaving cluster: %v", err)
	}
	if err := m.serf.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown serf: %w", err)
	}

	close(m.shutdownCh)
	m.wg.Wait()
	return nil
}

// processEvents consumes membership events until shutdown, keeping the local
// member table current.
func (m *Manager) processEvents() {
	defer m.wg.Done()

	for {
		select {
		case <-m.shutdownCh:
			return
		case event, ok := <-m.eventCh:
			if !ok {
				return
			}
			me, isMemberEvent := event.(serf.MemberEvent)
			if !isMemberEvent {
				continue
			}
			for _, member := range me.Members {
				switch me.EventType() {
				case serf.EventMemberJoin:
					logging.Info("Cluster member joined: %s (%s)", member.Name, member.Addr)
					m.trackMember(member)
				case serf.EventMemberLeave, serf.EventMemberFailed, serf.EventMemberReap:
					logging.Warn("Cluster member %s: %s", me.EventType(), member.Name)
					m.trackMember(member)
				case serf.EventMemberUpdate:
					m.trackMember(member)
				}
			}
		}
	}
}

func (m *Manager) trackMember(member serf.Member) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.members[member.Name] = &Member{
		Name:     member.Name,
		Address:  fmt.Sprintf("%s:%d", member.Addr, member.Port),
		Status:   member.Status.String(),
		Tags:     member.Tags,
		LastSeen: time.Now(),
	}
}
