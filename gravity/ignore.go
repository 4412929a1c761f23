package gravity

import "github.com/google/uuid"

// ignoreSet is a time-stamped set of colliders a field skips until their entry expires.
type ignoreSet struct {
	until map[uuid.UUID]float32
}

func newIgnoreSet() *ignoreSet {
	return &ignoreSet{until: make(map[uuid.UUID]float32)}
}

// add keeps the original expiry when the collider is still ignored.
func (s *ignoreSet) add(id uuid.UUID, now, until float32) {
	if s.contains(id, now) {
		return
	}
	s.until[id] = until
}

func (s *ignoreSet) contains(id uuid.UUID, now float32) bool {
	until, ok := s.until[id]
	return ok && now < until
}

func (s *ignoreSet) expire(now float32) {
	for id, until := range s.until {
		if now >= until {
			delete(s.until, id)
		}
	}
}

func (s *ignoreSet) clear() {
	clear(s.until)
}

func (s *ignoreSet) len() int {
	return len(s.until)
}
