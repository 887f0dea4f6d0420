// SPDX-License-Identifier: EPL-2.0

package rtsynth

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ik5/rtsynth/audio"
	"github.com/ik5/rtsynth/control"
	"github.com/ik5/rtsynth/graph"
)

// noCopy makes `go vet` report copies of the struct that embeds it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// FirstAutoID is the first node ID AddUnit hands out. Add commands passed to
// Send choose their own IDs and must stay below it.
const FirstAutoID graph.NodeID = 1 << 32

// Backend hosts a synthesis graph at a fixed sample rate and block size.
//
// It is used from two contexts. The control context edits the graph
// (AddUnit, Connect, SetParameter, ...) and applies those edits with Update.
// The real-time context calls SetInputChannel, ProcessBlock and
// OutputChannel once per block; none of those allocate, block or lock.
//
// A Backend is a unique resource: create it with New, hand the pointer to
// exactly one owner at a time and destroy it once with Close. Any call after
// Close panics.
type Backend struct {
	_ noCopy

	id         string
	sampleRate float64
	blockSize  int
	period     time.Duration

	channels *audio.ChannelSet
	commands *control.Queue[graph.Command]
	errs     *control.Queue[error]

	// graph is owned by the control context and guarded by updateMu.
	updateMu sync.Mutex
	graph    *graph.Graph

	schedule atomic.Pointer[graph.Schedule]
	nextID   atomic.Uint64

	destroyed atomic.Bool

	generation  atomic.Uint64
	lastProcess atomic.Int64
	maxProcess  atomic.Int64
	overruns    atomic.Uint64

	now    func() time.Time
	logger *slog.Logger
}

// New creates a backend with numInputs input and numOutputs output channels
// of blockSize samples each, and an empty graph. It is the only place the
// channel buffers are allocated. Invalid arguments are reported before any
// allocation.
func New(sampleRate float64, blockSize, numInputs, numOutputs int, opts ...Option) (*Backend, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}
	if numInputs < 0 || numOutputs < 0 {
		return nil, fmt.Errorf("%w: %d inputs, %d outputs", ErrInvalidChannelCount, numInputs, numOutputs)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	id := uuid.NewString()
	logger := cfg.logger.With(slog.String("backend_id", id))

	b := &Backend{
		id:         id,
		sampleRate: sampleRate,
		blockSize:  blockSize,
		period:     time.Duration(float64(blockSize) / sampleRate * float64(time.Second)),
		channels:   audio.NewChannelSet(blockSize, numInputs, numOutputs),
		commands:   control.NewQueue[graph.Command]("commands", cfg.commandCapacity, logger),
		errs:       control.NewQueue[error]("errors", cfg.errorCapacity, logger),
		now:        cfg.clock,
		logger:     logger,
	}
	b.graph = graph.New(sampleRate, blockSize, b.channels.InputSlices(), b.channels.OutputSlices())
	b.schedule.Store(b.graph.Compile())

	logger.Info("backend created",
		slog.Float64("sample_rate", sampleRate),
		slog.Int("block_size", blockSize),
		slog.Int("inputs", numInputs),
		slog.Int("outputs", numOutputs),
	)
	return b, nil
}

func (b *Backend) ID() string                 { return b.id }
func (b *Backend) SampleRate() float64        { return b.sampleRate }
func (b *Backend) BlockSize() int             { return b.blockSize }
func (b *Backend) NumInputs() int             { return b.channels.NumInputs() }
func (b *Backend) NumOutputs() int            { return b.channels.NumOutputs() }
func (b *Backend) BlockPeriod() time.Duration { return b.period }

// Alive reports whether Close has not been called yet. It is the only method
// that may be called on a closed backend.
func (b *Backend) Alive() bool { return !b.destroyed.Load() }

func (b *Backend) mustBeAlive() {
	if b.destroyed.Load() {
		panic(ErrDestroyed)
	}
}

// Close destroys the backend: the published graph is dropped and the buffers
// are released to the garbage collector. It must be called exactly once and
// never concurrently with ProcessBlock; a second call panics.
func (b *Backend) Close() {
	if !b.destroyed.CompareAndSwap(false, true) {
		panic(fmt.Errorf("%w: Close called twice", ErrDestroyed))
	}

	b.updateMu.Lock()
	defer b.updateMu.Unlock()

	b.schedule.Store(nil)
	nodes := b.graph.Len()
	b.graph = nil

	b.logger.Info("backend closed",
		slog.Int("nodes", nodes),
		slog.Uint64("blocks", b.generation.Load()),
		slog.Uint64("overruns", b.overruns.Load()),
	)
}

// Send queues a raw graph edit for the next Update. It never blocks; when the
// queue is full the edit is dropped and an error wrapping
// control.ErrQueueFull is returned. An Add with an ID at or above
// FirstAutoID is refused with graph.ErrInvalidNode.
func (b *Backend) Send(cmd graph.Command) error {
	b.mustBeAlive()

	if cmd.Op == graph.OpAdd && cmd.Node >= FirstAutoID {
		return fmt.Errorf("%w: %d is reserved for AddUnit", graph.ErrInvalidNode, cmd.Node)
	}
	return b.commands.Push(cmd)
}

// AddUnit queues the insertion of u and returns the ID it will have once
// applied. The ID can be used in further edits right away. IDs start at
// FirstAutoID and are never reused.
func (b *Backend) AddUnit(u graph.Unit) (graph.NodeID, error) {
	b.mustBeAlive()

	id := FirstAutoID + graph.NodeID(b.nextID.Add(1)-1)
	if err := b.commands.Push(graph.Add(id, u)); err != nil {
		return 0, err
	}
	return id, nil
}

// RemoveUnit queues the removal of a unit and all its connections.
func (b *Backend) RemoveUnit(id graph.NodeID) error {
	return b.Send(graph.Remove(id))
}

// Connect queues a connection. Use graph.Input and graph.Output for the
// backend's own channels and graph.Port for unit ports.
func (b *Backend) Connect(from, to graph.Endpoint) error {
	return b.Send(graph.Connect(from, to))
}

// Disconnect queues the removal of a connection.
func (b *Backend) Disconnect(from, to graph.Endpoint) error {
	return b.Send(graph.Disconnect(from, to))
}

// SetParameter queues a parameter change.
func (b *Backend) SetParameter(id graph.NodeID, name string, v float32) error {
	return b.Send(graph.SetParam(id, name, v))
}

// Update applies every edit queued before the call, in the order they were
// queued, and publishes the resulting graph for the real-time context. Edits
// that fail are skipped and reported through NextError. It returns the number
// of edits taken from the queue.
//
// Update belongs to the control context: it allocates, logs and takes a lock.
// It never touches the channel buffers.
func (b *Backend) Update() int {
	b.mustBeAlive()

	b.updateMu.Lock()
	defer b.updateMu.Unlock()

	if b.graph == nil {
		panic(ErrDestroyed)
	}

	failed := 0
	n := b.commands.Drain(func(cmd graph.Command) {
		if err := b.graph.Apply(cmd); err != nil {
			failed++
			b.report(fmt.Errorf("%s: %w", cmd, err))
		}
	})

	if b.graph.Dirty() {
		s := b.graph.Compile()
		b.schedule.Store(s)
		b.logger.Debug("graph published",
			slog.Int("nodes", s.Len()),
			slog.Int("applied", n-failed),
		)
	}

	if failed > 0 {
		b.logger.Warn("graph edits rejected", slog.Int("failed", failed), slog.Int("total", n))
	}
	return n
}

func (b *Backend) report(err error) {
	b.logger.Warn("graph edit failed", slog.Any("error", err))
	// A full error queue drops the newest error; Queue counts and logs it.
	_ = b.errs.Push(err)
}

// NextError returns the oldest unread edit failure, or nil when there is
// none.
func (b *Backend) NextError() error {
	b.mustBeAlive()

	err, ok := b.errs.Pop()
	if !ok {
		return nil
	}
	return err
}

// SetInputChannel copies samples into input channel index. It must be called
// before ProcessBlock in the same cycle. It panics if index is out of range
// or len(samples) differs from the block size.
func (b *Backend) SetInputChannel(index int, samples []float32) {
	b.mustBeAlive()
	b.channels.Input(index).CopyFrom(samples)
}

// ProcessBlock advances the graph by one block: every unit runs once and
// every output channel is overwritten with exactly BlockSize samples. It does
// not allocate, lock or wait, and it does not apply queued edits.
func (b *Backend) ProcessBlock() {
	b.mustBeAlive()

	start := b.now()
	if s := b.schedule.Load(); s != nil {
		s.Process()
	} else {
		b.channels.ClearOutputs()
	}
	elapsed := b.now().Sub(start)

	b.lastProcess.Store(int64(elapsed))
	if int64(elapsed) > b.maxProcess.Load() {
		b.maxProcess.Store(int64(elapsed))
	}
	if elapsed > b.period {
		b.overruns.Add(1)
	}
	b.generation.Add(1)
}

// OutputChannel returns a read-only view of output channel index. The view is
// valid until the next ProcessBlock and must be consumed before then. It
// panics if index is out of range.
func (b *Backend) OutputChannel(index int) audio.View {
	b.mustBeAlive()
	return b.channels.Output(index).View()
}

// Generation counts processed blocks; each ProcessBlock increments it.
func (b *Backend) Generation() uint64 {
	b.mustBeAlive()
	return b.generation.Load()
}

// Inspect snapshots the control-side graph, including edits applied by the
// last Update but not those still queued.
func (b *Backend) Inspect() graph.Inspection {
	b.mustBeAlive()

	b.updateMu.Lock()
	defer b.updateMu.Unlock()

	if b.graph == nil {
		panic(ErrDestroyed)
	}
	return b.graph.Inspect()
}
