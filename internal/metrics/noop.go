package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncLoginSuccess is a no-op.
func (n *NoopRecorder) IncLoginSuccess() {}

// IncLoginFailure is a no-op.
func (n *NoopRecorder) IncLoginFailure() {}

// IncUserDeleted is a no-op.
func (n *NoopRecorder) IncUserDeleted() {}

// IncTodoCreated is a no-op.
func (n *NoopRecorder) IncTodoCreated() {}

// IncTodoCompleted is a no-op.
func (n *NoopRecorder) IncTodoCompleted() {}

// IncTodoDeleted is a no-op.
func (n *NoopRecorder) IncTodoDeleted() {}
