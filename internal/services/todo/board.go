package todo

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/promphitak-p/praweena/internal/models"
)

// State is the in-memory picture of one property's board
type State struct {
	PropertyID   uuid.UUID
	Todos        []*models.Todo
	Dependencies []models.TodoDependency
	Version      int64
}

func (s *State) clone() *State {
	out := &State{
		PropertyID:   s.PropertyID,
		Todos:        make([]*models.Todo, len(s.Todos)),
		Dependencies: make([]models.TodoDependency, len(s.Dependencies)),
		Version:      s.Version,
	}
	for i, t := range s.Todos {
		c := *t
		out.Todos[i] = &c
	}
	copy(out.Dependencies, s.Dependencies)
	return out
}

// Find returns the todo with the given id, or nil
func (s *State) Find(id uuid.UUID) *models.Todo {
	for _, t := range s.Todos {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Group returns the todos sharing key
func (s *State) Group(key models.GroupKey) []*models.Todo {
	var out []*models.Todo
	for _, t := range s.Todos {
		if t.Group() == key {
			out = append(out, t)
		}
	}
	return out
}

// Board holds the last confirmed state of each loaded property and applies
// mutations optimistically: readers see a change as soon as it is applied,
// and a failed persist restores the previous snapshot.
//
// Each property has a generation that every write bumps. A load records the
// generation before reading the store and Set discards the result when a
// write happened in between, so a read never caches data older than a
// committed write.
type Board struct {
	mu       sync.RWMutex
	states   map[uuid.UUID]*State
	gens     map[uuid.UUID]uint64
	writers  map[uuid.UUID]*sync.Mutex
	writerMu sync.Mutex
}

// NewBoard creates an empty board
func NewBoard() *Board {
	return &Board{
		states:  make(map[uuid.UUID]*State),
		gens:    make(map[uuid.UUID]uint64),
		writers: make(map[uuid.UUID]*sync.Mutex),
	}
}

// Get returns a copy of the property's state
func (b *Board) Get(propertyID uuid.UUID) (State, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.states[propertyID]
	if !ok {
		return State{}, false
	}
	return *s.clone(), true
}

// Generation returns the property's write generation. Pass it to Set
// together with the data loaded after this call.
func (b *Board) Generation(propertyID uuid.UUID) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.gens[propertyID]
}

// Set caches freshly loaded state unless a write bumped the property's
// generation since gen was read. It reports whether the state was stored.
func (b *Board) Set(state State, gen uint64) bool {
	s := state.clone()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gens[s.PropertyID] != gen {
		return false
	}
	if prev, ok := b.states[s.PropertyID]; ok {
		s.Version = prev.Version + 1
	}
	b.states[s.PropertyID] = s
	return true
}

// Invalidate drops the property's state so the next read reloads it
func (b *Board) Invalidate(propertyID uuid.UUID) {
	b.mu.Lock()
	delete(b.states, propertyID)
	b.gens[propertyID]++
	b.mu.Unlock()
}

func (b *Board) writer(propertyID uuid.UUID) *sync.Mutex {
	b.writerMu.Lock()
	defer b.writerMu.Unlock()
	m, ok := b.writers[propertyID]
	if !ok {
		m = &sync.Mutex{}
		b.writers[propertyID] = m
	}
	return m
}

// Update applies mutate to the property's state, then calls persist. When
// persist fails the state is rolled back and its error returned. Writers of
// the same property are serialised; readers are never blocked by persist.
// A property that is not loaded is only persisted and stays unloaded.
func (b *Board) Update(ctx context.Context, propertyID uuid.UUID, mutate func(*State) error, persist func(context.Context) error) error {
	w := b.writer(propertyID)
	w.Lock()
	defer w.Unlock()

	b.mu.Lock()
	current, ok := b.states[propertyID]
	if !ok {
		b.gens[propertyID]++
		b.mu.Unlock()
		return persist(ctx)
	}
	snapshot := current.clone()
	next := current.clone()
	if err := mutate(next); err != nil {
		b.mu.Unlock()
		return err
	}
	next.Version = snapshot.Version + 1
	b.states[propertyID] = next
	b.gens[propertyID]++
	b.mu.Unlock()

	if err := persist(ctx); err != nil {
		b.mu.Lock()
		// Only restore when nothing replaced the optimistic state meanwhile
		if b.states[propertyID] == next {
			b.states[propertyID] = snapshot
		}
		b.mu.Unlock()
		return err
	}
	return nil
}
