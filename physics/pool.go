package physics

import (
	"sync"

	"github.com/google/uuid"
)

// query holds the deduplicated broadphase candidates of a single query.
type query struct {
	seen       map[*Collider]struct{}
	candidates []*Collider
}

var queryPool = sync.Pool{
	New: func() any {
		return &query{seen: make(map[*Collider]struct{}, 16)}
	},
}

func newQuery() *query {
	return queryPool.Get().(*query)
}

func putQuery(q *query) {
	q.reset()
	queryPool.Put(q)
}

func (q *query) reset() {
	clear(q.seen)
	clear(q.candidates)
	q.candidates = q.candidates[:0]
}

func (q *query) add(c *Collider) {
	if _, ok := q.seen[c]; ok {
		return
	}
	q.seen[c] = struct{}{}
	q.candidates = append(q.candidates, c)
}

func (q *query) addAll(list []*Collider) {
	for _, c := range list {
		q.add(c)
	}
}

func (q *query) addLarge(m map[uuid.UUID]*Collider) {
	for _, c := range m {
		q.add(c)
	}
}
