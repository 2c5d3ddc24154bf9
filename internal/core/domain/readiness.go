package domain

// Readiness gates whether an image gets a source at all. Once ready it stays ready.
type Readiness struct {
	ready bool
}

// Evaluate marks the image ready when lazy loading is off or the element is in the viewport. It returns true
// only for the call that performed the transition.
func (r *Readiness) Evaluate(lazy, inViewport bool) bool {
	if r.ready {
		return false
	}
	if lazy && !inViewport {
		return false
	}

	r.ready = true
	return true
}

func (r *Readiness) Ready() bool {
	return r.ready
}
