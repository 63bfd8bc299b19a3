// Package scroll animates the scroll offset of the reading surface.
//
// An Animator runs at most one eased animation at a time. Each request takes
// a fresh token; frames scheduled by an earlier request see a stale token and
// stop, so two runs never drive the surface concurrently. Progress is derived
// from the wall-clock time handed to each frame, not from a frame count, so
// dropped or late frames only reduce smoothness.
package scroll

import "time"

const (
	// DefaultDuration is the length of one scroll animation.
	DefaultDuration = 650 * time.Millisecond

	// DefaultLeadLines is how many lines of context are kept above a
	// highlighted line when it is scrolled into place.
	DefaultLeadLines = 2
)

// Surface is the scrollable container. Clamping the offset to the
// scrollable range is the surface's responsibility.
type Surface interface {
	ScrollOffset() float64
	SetScrollOffset(offset float64)
}

// Clock supplies the start time of an animation.
type Clock interface {
	Now() time.Time
}

// SystemClock is a Clock backed by time.Now.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// Scheduler runs a callback on a future frame with that frame's timestamp.
// Callbacks must run on the same goroutine that issues requests.
type Scheduler interface {
	RequestFrame(fn func(now time.Time))
}

// Geometry locates display lines inside the scroll container.
type Geometry interface {
	LineTop(index int) (float64, bool)
	LineHeight() float64
}

// Animator drives eased scroll animations on a Surface.
type Animator struct {
	surface   Surface
	scheduler Scheduler
	clock     Clock
	duration  time.Duration
	leadLines float64

	token  uint64
	active bool
	target float64
}

// NewAnimator creates an animator. A non-positive duration makes every
// animation complete on its first frame.
func NewAnimator(surface Surface, scheduler Scheduler, clock Clock, duration time.Duration) *Animator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Animator{
		surface:   surface,
		scheduler: scheduler,
		clock:     clock,
		duration:  duration,
		leadLines: DefaultLeadLines,
	}
}

// SetLeadLines sets how many lines are kept above a line scrolled into place.
func (a *Animator) SetLeadLines(n float64) {
	if n < 0 {
		n = 0
	}
	a.leadLines = n
}

// Duration returns the animation length.
func (a *Animator) Duration() time.Duration {
	return a.duration
}

// Active reports whether an animation is in flight.
func (a *Animator) Active() bool {
	return a.active
}

// Target returns the target of the in-flight animation.
func (a *Animator) Target() (float64, bool) {
	return a.target, a.active
}

// Cancel stops the in-flight animation, leaving the offset where it is.
func (a *Animator) Cancel() {
	a.token++
	a.active = false
}

// AnimateTo starts an animation from the current offset to target,
// superseding any animation in flight. It returns immediately; the offset
// changes on scheduled frames.
func (a *Animator) AnimateTo(target float64) {
	a.token++
	token := a.token

	start := a.surface.ScrollOffset()
	delta := target - start
	startTime := a.clock.Now()

	a.active = true
	a.target = target

	var step func(now time.Time)
	step = func(now time.Time) {
		if token != a.token {
			return
		}

		progress := a.progress(now.Sub(startTime))
		if progress >= 1 {
			a.surface.SetScrollOffset(target)
			a.active = false
			return
		}

		a.surface.SetScrollOffset(start + delta*EaseInOutQuad(progress))
		a.scheduler.RequestFrame(step)
	}

	a.scheduler.RequestFrame(step)
}

func (a *Animator) progress(elapsed time.Duration) float64 {
	if a.duration <= 0 {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return min(1, float64(elapsed)/float64(a.duration))
}

// PlacementTarget returns the offset that shows line index with the lead
// lines of context above it.
func (a *Animator) PlacementTarget(geom Geometry, index int) (float64, bool) {
	top, ok := geom.LineTop(index)
	if !ok {
		return 0, false
	}
	return max(0, top-geom.LineHeight()*a.leadLines), true
}

// ScrollHighlightIntoPlace animates so that line index sits below the lead
// lines. Unknown indices are ignored.
func (a *Animator) ScrollHighlightIntoPlace(geom Geometry, index int) {
	target, ok := a.PlacementTarget(geom, index)
	if !ok {
		return
	}
	a.AnimateTo(target)
}

// EaseInOutQuad is the symmetric quadratic ease for t in [0, 1].
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}
