// Package bench runs the cold versus hot page-touch benchmark.
package bench

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/xid"

	"github.com/wesleyorama2/pagelat/internal/logging"
	"github.com/wesleyorama2/pagelat/internal/order"
	"github.com/wesleyorama2/pagelat/internal/pagemem"
	"github.com/wesleyorama2/pagelat/internal/stats"
	"github.com/wesleyorama2/pagelat/internal/touch"
)

// ErrAlreadyRun is returned when Run is called on a used Engine.
var ErrAlreadyRun = errors.New("bench: engine has already run")

// Memory is a residency-controlled region.
type Memory interface {
	Bytes() []byte
	Pages() int
	Evict() error
	Release() error
}

// Allocator creates the region for a run.
type Allocator interface {
	Allocate(size int) (Memory, error)
}

// Timer times one touch of a page.
type Timer interface {
	TouchAndTime(mem []byte, page, pageSize int) time.Duration
}

// RegionAllocator allocates pagemem regions.
type RegionAllocator struct {
	// SkipVerify disables the mincore check after eviction.
	SkipVerify bool
}

// Allocate implements Allocator.
func (a RegionAllocator) Allocate(size int) (Memory, error) {
	var opts []pagemem.Option
	if a.SkipVerify {
		opts = append(opts, pagemem.WithoutVerification())
	}
	r, err := pagemem.Allocate(size, opts...)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Options supplies the engine's collaborators. Zero fields get defaults.
type Options struct {
	// PageSize overrides the platform page size (default: pagemem.PageSize).
	PageSize int

	// Allocator creates the region (default: RegionAllocator).
	Allocator Allocator

	// Timer times touches (default: touch.New with the system clock).
	Timer Timer

	// Faults reports fault counters (default: ThreadFaults).
	Faults FaultCounter

	// Logger receives warnings and debug records (default: discard).
	Logger *logging.Logger

	// SkipCalibration leaves Result.Clock empty.
	SkipCalibration bool
}

// PhaseResult holds one phase's measurements.
type PhaseResult struct {
	Summary     stats.Summary     `json:"summary" yaml:"summary"`
	Percentiles stats.Percentiles `json:"percentiles" yaml:"percentiles"`
	Faults      Faults            `json:"faults" yaml:"faults"`
	Elapsed     time.Duration     `json:"elapsed" yaml:"elapsed"`

	// Samples is the final sample set, indexed by visit position.
	Samples []int64 `json:"-" yaml:"-"`
}

// ClockInfo describes the timer the samples were taken with.
type ClockInfo struct {
	Resolution   time.Duration `json:"resolution" yaml:"resolution"`
	OverheadMin  time.Duration `json:"overheadMin" yaml:"overheadMin"`
	OverheadMean time.Duration `json:"overheadMean" yaml:"overheadMean"`
}

// Result is the outcome of a run: the cold/hot comparison pair plus the
// parameters needed to reproduce it.
type Result struct {
	RunID     string        `json:"runId" yaml:"runId"`
	StartTime time.Time     `json:"startTime" yaml:"startTime"`
	Duration  time.Duration `json:"duration" yaml:"duration"`

	SizeBytes int64      `json:"sizeBytes" yaml:"sizeBytes"`
	Pages     int        `json:"pages" yaml:"pages"`
	PageSize  int        `json:"pageSize" yaml:"pageSize"`
	Repeats   int        `json:"repeats" yaml:"repeats"`
	Order     order.Mode `json:"order" yaml:"order"`
	Seed      uint64     `json:"seed" yaml:"seed"`
	Policy    Policy     `json:"policy" yaml:"policy"`

	Cold PhaseResult `json:"cold" yaml:"cold"`
	Hot  PhaseResult `json:"hot" yaml:"hot"`

	// ResidencyHints counts evictions the kernel did not fully honor.
	ResidencyHints int       `json:"residencyHints" yaml:"residencyHints"`
	Clock          ClockInfo `json:"clock" yaml:"clock"`
}

// Engine drives one run through
// Idle -> Allocated -> ColdPhase -> HotPhase -> Reported -> Released.
//
// An Engine is single-use and not safe for concurrent use.
type Engine struct {
	cfg      Config
	pageSize int

	alloc           Allocator
	timer           Timer
	faults          FaultCounter
	logger          *logging.Logger
	skipCalibration bool

	state       State
	transitions []Transition
	hints       int
}

// NewEngine validates cfg and prepares an engine.
func NewEngine(cfg Config, opts Options) (*Engine, error) {
	pageSize := opts.PageSize
	if pageSize == 0 {
		ps, err := pagemem.PageSize()
		if err != nil {
			return nil, err
		}
		pageSize = ps
	}
	if err := cfg.Validate(pageSize); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:             cfg,
		pageSize:        pageSize,
		alloc:           opts.Allocator,
		timer:           opts.Timer,
		faults:          opts.Faults,
		logger:          opts.Logger,
		skipCalibration: opts.SkipCalibration,
	}
	if e.alloc == nil {
		e.alloc = RegionAllocator{SkipVerify: !cfg.VerifyEviction}
	}
	if e.timer == nil {
		e.timer = touch.New(nil)
	}
	if e.faults == nil {
		e.faults = ThreadFaults{}
	}
	if e.logger == nil {
		e.logger = logging.Nop()
	}
	e.transitions = []Transition{{State: StateIdle, Timestamp: time.Now()}}
	return e, nil
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Transitions returns every state entered so far, in order.
func (e *Engine) Transitions() []Transition {
	out := make([]Transition, len(e.transitions))
	copy(out, e.transitions)
	return out
}

func (e *Engine) enter(s State) {
	e.state = s
	e.transitions = append(e.transitions, Transition{State: s, Timestamp: time.Now()})
}

// Run executes the benchmark. The region is released on every path; a
// release failure is joined to the returned error. A non-nil Result may
// accompany an error if only the release failed.
func (e *Engine) Run() (res *Result, err error) {
	if e.state != StateIdle {
		return nil, ErrAlreadyRun
	}

	runID := xid.New().String()
	logger := e.logger.WithRun(runID)
	start := time.Now()
	pages := e.cfg.Pages(e.pageSize)

	var clock ClockInfo
	if !e.skipCalibration {
		clock = calibrate()
	}

	mem, err := e.alloc.Allocate(pages * e.pageSize)
	if err != nil {
		e.enter(StateReleased)
		return nil, fmt.Errorf("allocate %d pages: %w", pages, err)
	}
	defer func() {
		if rerr := mem.Release(); rerr != nil {
			err = multierror.Append(err, fmt.Errorf("release region: %w", rerr)).ErrorOrNil()
		}
		e.enter(StateReleased)
	}()
	if mem.Pages() < pages {
		return nil, fmt.Errorf("%w: allocator returned %d pages, need %d", pagemem.ErrOutOfMemory, mem.Pages(), pages)
	}

	seq := order.Generate(e.cfg.Order, pages, e.cfg.Seed)
	cold := newSampler(pages, e.cfg.Policy)
	hot := newSampler(pages, e.cfg.Policy)
	e.enter(StateAllocated)

	restore := quiesce()
	defer restore()

	coldFaults, coldElapsed, err := e.coldPhase(mem, seq, cold, logger)
	if err != nil {
		return nil, err
	}
	logger.LogPhase(StateColdPhase.String(), e.cfg.Repeats, coldElapsed, coldFaults.Minor)

	hotFaults, hotElapsed := e.hotPhase(mem, seq, hot)
	logger.LogPhase(StateHotPhase.String(), e.cfg.Repeats, hotElapsed, hotFaults.Minor)

	res = &Result{
		RunID:          runID,
		StartTime:      start,
		SizeBytes:      int64(pages) * int64(e.pageSize),
		Pages:          pages,
		PageSize:       e.pageSize,
		Repeats:        e.cfg.Repeats,
		Order:          e.cfg.Order,
		Seed:           e.cfg.Seed,
		Policy:         e.cfg.Policy,
		Cold:           cold.result(coldFaults, coldElapsed),
		Hot:            hot.result(hotFaults, hotElapsed),
		ResidencyHints: e.hints,
		Clock:          clock,
	}
	res.Duration = time.Since(start)
	e.enter(StateReported)

	return res, nil
}

// coldPhase evicts the region before every traversal, so each one starts
// from unmapped pages. No eviction follows the last traversal.
func (e *Engine) coldPhase(mem Memory, seq []int, s *sampler, logger *logging.Logger) (Faults, time.Duration, error) {
	e.enter(StateColdPhase)
	start := time.Now()
	before := e.readFaults(logger)

	if err := e.evict(mem, logger); err != nil {
		return Faults{}, 0, err
	}
	for r := 0; r < e.cfg.Repeats; r++ {
		e.traverse(mem.Bytes(), seq, s.samples)
		s.endRepeat()
		if r+1 < e.cfg.Repeats {
			if err := e.evict(mem, logger); err != nil {
				return Faults{}, 0, err
			}
		}
	}

	return e.readFaults(logger).Sub(before), time.Since(start), nil
}

// hotPhase repeats the traversal without eviction; pages are resident from
// the cold phase.
func (e *Engine) hotPhase(mem Memory, seq []int, s *sampler) (Faults, time.Duration) {
	e.enter(StateHotPhase)
	start := time.Now()
	before := e.readFaults(e.logger)

	for r := 0; r < e.cfg.Repeats; r++ {
		e.traverse(mem.Bytes(), seq, s.samples)
		s.endRepeat()
	}

	return e.readFaults(e.logger).Sub(before), time.Since(start)
}

func (e *Engine) traverse(mem []byte, seq []int, samples []int64) {
	for k, page := range seq {
		samples[k] = int64(e.timer.TouchAndTime(mem, page, e.pageSize))
	}
}

// evict treats a refused eviction as a warning and anything else as fatal.
func (e *Engine) evict(mem Memory, logger *logging.Logger) error {
	err := mem.Evict()
	if err == nil {
		return nil
	}
	if errors.Is(err, pagemem.ErrResidencyHint) {
		e.hints++
		logger.LogResidencyHint(StateColdPhase.String(), err)
		return nil
	}
	return fmt.Errorf("evict region: %w", err)
}

func (e *Engine) readFaults(logger *logging.Logger) Faults {
	f, err := e.faults.Faults()
	if err != nil {
		logger.Debug("fault counters unavailable", "error", err)
		return Faults{}
	}
	return f
}

// quiesce pins the goroutine to its thread and pauses the collector so
// runtime work stays out of the timed touches. The returned func undoes it.
func quiesce() func() {
	runtime.GC()
	runtime.LockOSThread()
	gcPercent := debug.SetGCPercent(-1)
	return func() {
		debug.SetGCPercent(gcPercent)
		runtime.UnlockOSThread()
	}
}

func calibrate() ClockInfo {
	var info ClockInfo
	if res, err := touch.Resolution(); err == nil {
		info.Resolution = res
	}
	info.OverheadMin, info.OverheadMean = touch.Overhead(nil, 10_000)
	return info
}

// sampler owns one phase's sample set and applies the retention policy.
type sampler struct {
	samples []int64
	policy  Policy
	pooled  stats.Summary
	dist    *stats.Distribution
}

func newSampler(pages int, policy Policy) *sampler {
	return &sampler{
		samples: make([]int64, pages),
		policy:  policy,
		dist:    stats.NewDistribution(),
	}
}

func (s *sampler) endRepeat() {
	if s.policy != PolicyPool {
		return
	}
	s.pooled = stats.Merge(s.pooled, stats.Summarize(s.samples))
	s.dist.Record(s.samples)
}

func (s *sampler) result(faults Faults, elapsed time.Duration) PhaseResult {
	summary := s.pooled
	if s.policy != PolicyPool {
		summary = stats.Summarize(s.samples)
		s.dist.Record(s.samples)
	}
	return PhaseResult{
		Summary:     summary,
		Percentiles: s.dist.Percentiles(),
		Faults:      faults,
		Elapsed:     elapsed,
		Samples:     s.samples,
	}
}
