package wheel

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/go-drift/luckywheel/pkg/animation"
	"github.com/go-drift/luckywheel/pkg/errors"
)

// Option configures a Wheel at construction.
type Option func(*Wheel)

// WithScheduler drives the wheel from s instead of a private FrameLoop.
func WithScheduler(s animation.FrameScheduler) Option {
	return func(w *Wheel) {
		if s != nil {
			w.sched = s
		}
	}
}

// WithContext sets the parent context of the asset preload. Cancelling it
// abandons the preload the same way Dispose does.
func WithContext(ctx context.Context) Option {
	return func(w *Wheel) {
		if ctx != nil {
			w.ctx = ctx
		}
	}
}

// deceleration is the snapshot taken when a wheel leaves Constant.
type deceleration struct {
	start  time.Time
	from   float64
	target float64
}

// PhaseListener observes phase transitions.
type PhaseListener func(from, to Phase)

// State is a point-in-time copy of a wheel's animation state.
type State struct {
	Phase    Phase
	Angle    float64
	Prize    int
	PrizeSet bool
	Started  time.Time
	// Target is the resting angle of the current deceleration, or zero
	// outside PhaseDecelerating.
	Target float64
}

// Wheel is the spin state machine. It advances one tick per frame of its
// FrameScheduler and paints the resulting angle through its Painter.
//
// Play and Stop may be called from any goroutine. Ticks, paints and the
// OnFinished callback run on the goroutine that pumps the scheduler.
type Wheel struct {
	mu sync.Mutex

	id      string
	cfg     Config
	geom    Geometry
	painter Painter
	sched   animation.FrameScheduler
	ctx     context.Context
	cancel  context.CancelFunc

	phase    Phase
	prize    int
	prizeSet bool
	start    time.Time
	angle    float64
	decel    *deceleration
	finished bool // at rest, completion not delivered yet

	frame    animation.FrameHandle
	repaint  animation.FrameHandle
	disposed bool

	listeners    map[int]PhaseListener
	nextListener int
}

// New builds a wheel from cfg, mounts painter and paints the resting
// position. Zero Config fields take their defaults. If painter is a
// Preloader its preload starts immediately and one repaint frame is
// requested when it settles.
func New(cfg Config, painter Painter, opts ...Option) (*Wheel, error) {
	const op = "wheel.New"
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.New(op, errors.KindSetup, err)
	}
	if painter == nil {
		return nil, errors.New(op, errors.KindSetup, fmt.Errorf("wheel: nil painter"))
	}
	w := &Wheel{
		id:      uuid.NewString(),
		cfg:     cfg,
		painter: painter,
		ctx:     context.Background(),
	}
	w.cfg.Segments = append([]Segment(nil), cfg.Segments...)
	for _, opt := range opts {
		opt(w)
	}
	if w.sched == nil {
		w.sched = animation.NewFrameLoop()
	}
	w.geom = Geometry{N: len(w.cfg.Segments), Origin: OriginOf(painter)}

	if err := painter.Mount(w.cfg.Segments); err != nil {
		e := errors.New(op, errors.KindSetup, err)
		e.Wheel = w.id
		return nil, e
	}
	w.reset()
	w.paint(w.angle)

	if p, ok := painter.(Preloader); ok {
		ctx, cancel := context.WithCancel(w.ctx)
		w.cancel = cancel
		var once sync.Once
		p.Preload(ctx, func() { once.Do(w.preloaded) })
	}
	return w, nil
}

// ID returns the unique identifier of this wheel instance.
func (w *Wheel) ID() string { return w.id }

// Config returns the merged configuration. The segment slice is shared and
// must not be modified.
func (w *Wheel) Config() Config { return w.cfg }

// Geometry returns the angular layout.
func (w *Wheel) Geometry() Geometry { return w.geom }

// Scheduler returns the scheduler driving the wheel. Without
// WithScheduler it is a *animation.FrameLoop the caller must pump.
func (w *Wheel) Scheduler() animation.FrameScheduler { return w.sched }

// Phase returns the current phase.
func (w *Wheel) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Angle returns the current rotation in degrees.
func (w *Wheel) Angle() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.angle
}

// State returns a snapshot of the animation state.
func (w *Wheel) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := State{
		Phase:    w.phase,
		Angle:    w.angle,
		Prize:    w.prize,
		PrizeSet: w.prizeSet,
		Started:  w.start,
	}
	if w.decel != nil {
		s.Target = w.decel.target - w.geom.HalfSector()
	}
	return s
}

// SegmentAt returns the index of the segment under the pointer at angle.
func (w *Wheel) SegmentAt(angle float64) int {
	return w.geom.SegmentAt(angle)
}

// Segment returns the segment currently under the pointer.
func (w *Wheel) Segment() Segment {
	return w.cfg.Segments[w.geom.SegmentAt(w.Angle())]
}

// AddPhaseListener registers fn for phase transitions and returns a
// function that removes it. Listeners run without the wheel lock held.
func (w *Wheel) AddPhaseListener(fn PhaseListener) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.listeners == nil {
		w.listeners = make(map[int]PhaseListener)
	}
	id := w.nextListener
	w.nextListener++
	w.listeners[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.listeners, id)
	}
}

// Play starts a spin cycle. It does nothing unless the wheel is idle. If
// the previous cycle has come to rest but its OnFinished has not run yet,
// Play delivers it first, on the calling goroutine.
func (w *Wheel) Play() {
	w.mu.Lock()
	if w.disposed || w.phase != PhaseIdle {
		Logger().Debug("play ignored", "wheel", w.id, "phase", w.phase, "disposed", w.disposed)
		w.mu.Unlock()
		return
	}
	if w.finished {
		// The previous cycle's terminal frame has not run yet.
		w.sched.CancelFrame(w.frame)
		w.frame = 0
		finish := w.takeFinished()
		w.mu.Unlock()
		finish()
		w.mu.Lock()
		if w.disposed || w.phase != PhaseIdle {
			w.mu.Unlock()
			return
		}
	}
	w.reset()
	w.start = animation.Now()
	w.phase = PhaseAccelerating
	if w.frame == 0 {
		w.frame = w.sched.RequestFrame(w.tick)
	}
	listeners := w.snapshotListeners()
	w.mu.Unlock()

	Logger().Debug("play", "wheel", w.id)
	notify(listeners, PhaseIdle, PhaseAccelerating)
}

// Stop asks the wheel to come to rest on segment index. A negative index
// means "no prize" and lands on a segment boundary. Only the first Stop of
// a cycle counts; Stop on an idle wheel is ignored. During acceleration
// the request is held until cruising speed is reached.
func (w *Wheel) Stop(index int) {
	w.mu.Lock()
	if w.disposed || w.phase == PhaseIdle || w.prizeSet {
		Logger().Debug("stop ignored", "wheel", w.id, "phase", w.phase, "index", index)
		w.mu.Unlock()
		return
	}
	w.prize, w.prizeSet = index, true
	var listeners []PhaseListener
	if w.phase == PhaseConstant {
		w.beginDeceleration(animation.Now())
		listeners = w.snapshotListeners()
	}
	w.mu.Unlock()

	Logger().Debug("stop", "wheel", w.id, "index", index)
	notify(listeners, PhaseConstant, PhaseDecelerating)
}

// Repaint requests one frame that paints the current angle without
// advancing the animation. Repeated requests before that frame coalesce.
func (w *Wheel) Repaint() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return ErrDisposed
	}
	if w.repaint == 0 {
		w.repaint = w.sched.RequestFrame(w.repaintFrame)
	}
	return nil
}

// Dispose cancels pending frames and any preload in flight. A disposed
// wheel ignores Play and Stop and never calls OnFinished again.
func (w *Wheel) Dispose() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed {
		return
	}
	w.disposed = true
	w.sched.CancelFrame(w.frame)
	w.sched.CancelFrame(w.repaint)
	w.frame, w.repaint = 0, 0
	if w.cancel != nil {
		w.cancel()
	}
}

// reset restores every per-cycle field. Callers hold w.mu.
func (w *Wheel) reset() {
	w.phase = PhaseIdle
	w.prize, w.prizeSet = 0, false
	w.start = time.Time{}
	w.angle = w.geom.StartAngle()
	w.decel = nil
	w.finished = false
}

// beginDeceleration snapshots the landing target. Callers hold w.mu.
func (w *Wheel) beginDeceleration(now time.Time) {
	w.decel = &deceleration{
		start:  now,
		from:   w.angle,
		target: w.geom.Target(w.angle, w.prize),
	}
	w.phase = PhaseDecelerating
}

// advance runs one step of the state machine at now. Callers hold w.mu.
func (w *Wheel) advance(now time.Time) {
	speed := w.cfg.Speed
	switch w.phase {
	case PhaseAccelerating:
		elapsed := now.Sub(w.start)
		v := roundHalfUp(animation.EaseIn(float64(elapsed), 1, speed, float64(w.cfg.AccelerationDuration)))
		if v >= speed {
			v = speed
			w.phase = PhaseConstant
		}
		w.angle += v
	case PhaseConstant:
		w.angle += speed
		if w.prizeSet {
			w.beginDeceleration(now)
		}
	case PhaseDecelerating:
		d := w.decel
		half := w.geom.HalfSector()
		e := now.Sub(d.start)
		if e < w.cfg.DecelerationDuration {
			// rounding may pass a fractional rest angle; never run past it
			v := roundHalfUp(animation.EaseOut(float64(e), d.from, d.target-d.from-half, float64(w.cfg.DecelerationDuration)))
			w.angle = math.Min(v, d.target-half)
			return
		}
		w.angle = d.target - half
		w.decel = nil
		w.phase = PhaseIdle
		w.finished = true
	default:
		Logger().Warn("undefined phase", "wheel", w.id, "phase", w.phase)
		errors.Report(&errors.WheelError{
			Op:    "wheel.Wheel.tick",
			Kind:  errors.KindPhase,
			Wheel: w.id,
			Err:   fmt.Errorf("undefined phase %v", w.phase),
		})
	}
}

// tick is the frame callback of a running cycle.
func (w *Wheel) tick() {
	w.mu.Lock()
	w.frame = 0
	if w.disposed {
		w.mu.Unlock()
		return
	}
	if w.phase == PhaseIdle {
		if !w.finished {
			w.mu.Unlock()
			return
		}
		finish := w.takeFinished()
		w.mu.Unlock()
		finish()
		return
	}

	from := w.phase
	w.advance(animation.Now())
	to, angle := w.phase, w.angle
	var listeners []PhaseListener
	if from != to {
		listeners = w.snapshotListeners()
	}
	w.mu.Unlock()

	if from != to {
		Logger().Debug("phase", "wheel", w.id, "from", from, "to", to)
		notify(listeners, from, to)
	}
	w.paint(angle)

	w.mu.Lock()
	if !w.disposed && w.frame == 0 && (w.phase != PhaseIdle || w.finished) {
		w.frame = w.sched.RequestFrame(w.tick)
	}
	w.mu.Unlock()
}

// takeFinished clears the pending completion and returns a function that
// delivers it. Callers hold w.mu; the returned function must run without it.
func (w *Wheel) takeFinished() func() {
	w.finished = false
	cb, index, stopped := w.cfg.OnFinished, w.prize, w.prizeSet
	id := w.id
	return func() {
		Logger().Debug("finished", "wheel", id, "index", index, "stopped", stopped)
		if cb == nil {
			return
		}
		defer errors.Recover("wheel.Wheel.OnFinished")
		cb(index, stopped)
	}
}

func (w *Wheel) paint(angle float64) {
	defer errors.Recover("wheel.Wheel.paint")
	if err := w.painter.Paint(angle); err != nil {
		errors.Report(&errors.WheelError{
			Op:    "wheel.Wheel.paint",
			Kind:  errors.KindRender,
			Wheel: w.id,
			Err:   err,
		})
	}
}

func (w *Wheel) preloaded() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disposed || w.repaint != 0 {
		return
	}
	w.repaint = w.sched.RequestFrame(w.repaintFrame)
}

func (w *Wheel) repaintFrame() {
	w.mu.Lock()
	w.repaint = 0
	if w.disposed {
		w.mu.Unlock()
		return
	}
	angle := w.angle
	w.mu.Unlock()
	w.paint(angle)
}

// snapshotListeners copies the listener set. Callers hold w.mu.
func (w *Wheel) snapshotListeners() []PhaseListener {
	if len(w.listeners) == 0 {
		return nil
	}
	ids := make([]int, 0, len(w.listeners))
	for id := range w.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]PhaseListener, len(ids))
	for i, id := range ids {
		out[i] = w.listeners[id]
	}
	return out
}

func notify(listeners []PhaseListener, from, to Phase) {
	for _, fn := range listeners {
		func() {
			defer errors.Recover("wheel.Wheel.notify")
			fn(from, to)
		}()
	}
}
