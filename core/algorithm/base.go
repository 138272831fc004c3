package algorithm

// Base tracks the lifecycle flags common to every algorithm module.
// Modules embed it the way estimators embed a base state.
type Base struct {
	initialized bool
	complete    bool
}

// IsInitialized reports whether Init has seeded the module with data.
func (b *Base) IsInitialized() bool {
	return b.initialized
}

// SetInitialized marks the module as holding a dataset.
func (b *Base) SetInitialized() {
	b.initialized = true
}

// IsComplete reports whether the algorithm has run to completion.
func (b *Base) IsComplete() bool {
	return b.complete
}

// SetComplete marks the algorithm as finished.
func (b *Base) SetComplete() {
	b.complete = true
}

// ResetProgress clears the completion flag but keeps the dataset flag,
// matching the Reset contract (derived state goes, points stay).
func (b *Base) ResetProgress() {
	b.complete = false
}

// ClearState returns the module to the idle state.
func (b *Base) ClearState() {
	b.initialized = false
	b.complete = false
}
