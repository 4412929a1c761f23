package stats

import (
	"fmt"
	"os"

	"github.com/oomph-ac/motion/oerror"
	"github.com/sasha-s/go-deadlock"
	"github.com/zeebo/xxh3"
)

// Manager holds the ordered profiles of an entity and the active one.
type Manager struct {
	profiles []*Stats
	current  int
	// fingerprints holds the content hash of the file each profile was last loaded from.
	fingerprints map[int]uint64

	mu deadlock.RWMutex
}

// NewManager returns a manager whose first profile is active.
func NewManager(profiles ...Stats) (*Manager, error) {
	if len(profiles) == 0 {
		return nil, oerror.ErrNoProfiles
	}
	m := &Manager{fingerprints: make(map[int]uint64)}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.Name, err)
		}
		m.profiles = append(m.profiles, &p)
	}
	return m, nil
}

// Current returns the active profile. The returned value must be treated as read-only.
func (m *Manager) Current() *Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profiles[m.current]
}

// Index returns the index of the active profile.
func (m *Manager) Index() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Len returns the number of profiles.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.profiles)
}

// Change activates the profile at index to. Out of range indices are ignored.
func (m *Manager) Change(to int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if to < 0 || to >= len(m.profiles) || to == m.current {
		return
	}
	m.current = to
}

// Reload re-reads the active profile from path. Files whose content did not change since the
// last reload are skipped and reported as unchanged.
func (m *Manager) Reload(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("error reading stats: %w", err)
	}
	sum := xxh3.Hash(data)

	m.mu.RLock()
	idx := m.current
	prev, seen := m.fingerprints[idx]
	m.mu.RUnlock()
	if seen && prev == sum {
		return false, nil
	}

	s, err := Decode(path, data)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s.Name == "" {
		s.Name = m.profiles[idx].Name
	}
	m.profiles[idx] = &s
	m.fingerprints[idx] = sum
	return true, nil
}
