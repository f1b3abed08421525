package cart

import "sync"

// Listener is notified with a snapshot of the new state after every mutation.
type Listener func(State)

// Store is the explicit session-scoped state container for carts: one State
// per authenticated session, mutated only through the operations below.
// Every operation is a single atomic state replacement followed by listener
// notification. Carts live in memory only: they are created empty on first
// use, cleared on checkout or on an explicit clear, and gone after restart.
type Store struct {
	mutex        sync.Mutex
	carts        map[string]State
	listeners    map[string]map[int]Listener
	nextListener int
}

func NewStore() *Store {
	return &Store{
		carts:     map[string]State{},
		listeners: map[string]map[int]Listener{},
	}
}

// Subscribe registers a listener for the given session and returns its
// unsubscribe func.
func (s *Store) Subscribe(sessionUID string, listener Listener) func() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.listeners[sessionUID] == nil {
		s.listeners[sessionUID] = map[int]Listener{}
	}
	id := s.nextListener
	s.nextListener++
	s.listeners[sessionUID][id] = listener

	return func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()
		delete(s.listeners[sessionUID], id)
	}
}

// Snapshot returns a read-only copy of the current state for the session.
func (s *Store) Snapshot(sessionUID string) State {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return snapshotOf(s.stateOf(sessionUID))
}

func (s *Store) AddItem(sessionUID string, item FoodItem, quantity int, instructions string) State {
	return s.mutate(sessionUID, func(state State) State {
		return state.withItemAdded(item, quantity, instructions)
	})
}

func (s *Store) RemoveItem(sessionUID string, foodItemUID string) State {
	return s.mutate(sessionUID, func(state State) State {
		return state.withItemRemoved(foodItemUID)
	})
}

func (s *Store) UpdateQuantity(sessionUID string, foodItemUID string, quantity int) State {
	return s.mutate(sessionUID, func(state State) State {
		return state.withQuantity(foodItemUID, quantity)
	})
}

func (s *Store) UpdateInstructions(sessionUID string, foodItemUID string, instructions string) State {
	return s.mutate(sessionUID, func(state State) State {
		return state.withInstructions(foodItemUID, instructions)
	})
}

func (s *Store) Clear(sessionUID string) State {
	return s.mutate(sessionUID, func(State) State {
		return emptyState()
	})
}

func (s *Store) mutate(sessionUID string, f func(State) State) State {
	s.mutex.Lock()

	newState := f(s.stateOf(sessionUID))
	s.carts[sessionUID] = newState

	listeners := make([]Listener, 0, len(s.listeners[sessionUID]))
	for _, l := range s.listeners[sessionUID] {
		listeners = append(listeners, l)
	}

	s.mutex.Unlock()

	// Notify outside the lock so that listeners may call back into the store
	snapshot := snapshotOf(newState)
	for _, l := range listeners {
		l(snapshot)
	}

	return snapshot
}

func (s *Store) stateOf(sessionUID string) State {
	state, exists := s.carts[sessionUID]
	if !exists {
		state = emptyState()
	}
	return state
}

// snapshotOf copies the line slice so that callers can never mutate the
// state held by the store. The FoodItem snapshots inside are treated as
// immutable values and are shared.
func snapshotOf(state State) State {
	lines := make([]Line, len(state.Lines))
	copy(lines, state.Lines)
	state.Lines = lines
	return state
}
