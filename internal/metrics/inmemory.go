package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered uint64
	LoginSuccesses  uint64
	LoginFailures   uint64
	UsersDeleted    uint64
	TodosCreated    uint64
	TodosCompleted  uint64
	TodosDeleted    uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered uint64
	loginSuccesses  uint64
	loginFailures   uint64
	usersDeleted    uint64
	todosCreated    uint64
	todosCompleted  uint64
	todosDeleted    uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered: atomic.LoadUint64(&m.usersRegistered),
		LoginSuccesses:  atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:   atomic.LoadUint64(&m.loginFailures),
		UsersDeleted:    atomic.LoadUint64(&m.usersDeleted),
		TodosCreated:    atomic.LoadUint64(&m.todosCreated),
		TodosCompleted:  atomic.LoadUint64(&m.todosCompleted),
		TodosDeleted:    atomic.LoadUint64(&m.todosDeleted),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncLoginSuccess increments the successful login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncUserDeleted increments the user deletion counter.
func (m *InMemoryRecorder) IncUserDeleted() {
	atomic.AddUint64(&m.usersDeleted, 1)
}

// IncTodoCreated increments the todo creation counter.
func (m *InMemoryRecorder) IncTodoCreated() {
	atomic.AddUint64(&m.todosCreated, 1)
}

// IncTodoCompleted increments the todo completion counter.
func (m *InMemoryRecorder) IncTodoCompleted() {
	atomic.AddUint64(&m.todosCompleted, 1)
}

// IncTodoDeleted increments the todo deletion counter.
func (m *InMemoryRecorder) IncTodoDeleted() {
	atomic.AddUint64(&m.todosDeleted, 1)
}
