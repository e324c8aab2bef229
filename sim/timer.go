package sim

// Window is a start+duration time window measured in match seconds. The zero
// value is inactive. Stun windows, ability effects, and similar transient
// records all share this shape; owners sweep Expired once per tick and call
// Clear exactly once.
type Window struct {
	Start    float64
	Duration float64
	Active   bool
}

// Begin activates the window at now for the given duration.
func (w *Window) Begin(now, duration float64) {
	if w == nil {
		return
	}
	w.Start = now
	w.Duration = duration
	w.Active = true
}

// Expired reports whether an active window has run out at now.
func (w *Window) Expired(now float64) bool {
	if w == nil || !w.Active {
		return false
	}
	return now >= w.Start+w.Duration
}

// Remaining returns seconds left, or zero when inactive or expired.
func (w *Window) Remaining(now float64) float64 {
	if w == nil || !w.Active {
		return 0
	}
	left := w.Start + w.Duration - now
	if left < 0 {
		return 0
	}
	return left
}

// Clear deactivates the window.
func (w *Window) Clear() {
	if w == nil {
		return
	}
	w.Active = false
}
