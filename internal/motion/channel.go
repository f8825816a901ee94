package motion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// errStaleEcho means another command was dispatched between submit and
// result readback; the caller's result code is gone.
var errStaleEcho = errors.New("status echo is stale")

// Board is the single-slot command channel between the non-real-time
// producer and the per-tick consumer. It is a seqlock: the producer
// bumps head, writes the record, then publishes tail = head. The
// consumer reads tail before copying the record and re-checks head
// after, so any write overlapping the copy leaves head ahead of the
// loaded tail and the copy is discarded; the same slot is retried next
// cycle. That collision is an expected outcome, not a fault.
//
// The contract requires exactly one producer. The producer must not
// begin a new write until it has observed the consumer commit
// (Status.Tail == Status.Head) for the previous command.
type Board struct {
	head atomic.Uint32
	cmd  Command
	tail atomic.Uint32
}

// Post publishes a command. Producer side only.
func (b *Board) Post(cmd Command) {
	b.head.Add(1)
	b.cmd = cmd
	b.tail.Store(b.head.Load())
}

// snapshot copies the current record. ok is false for a torn read.
// Consumer side only; wait-free. The post-counter (tail) is loaded
// before the copy and the pre-counter (head) after it: a Post that
// begins, or even completes, while the copy is in flight bumps head
// past the loaded tail, so the possibly mixed record is never accepted.
func (b *Board) snapshot() (cmd Command, ok bool) {
	t := b.tail.Load()
	cmd = b.cmd
	if b.head.Load() != t {
		return Command{}, false
	}
	return cmd, true
}

// Producer serializes supervisor submissions into the board. It assigns
// sequence numbers, waits for the consumer's commit of the previous
// command before writing, and optionally waits for the echo of its own
// command so callers get the result code back. All waiting happens on
// the producer side; the real-time consumer never blocks.
type Producer struct {
	mu    sync.Mutex
	board *Board
	ctl   *Controller
	seq   uint32

	// Poll granularity while waiting for the consumer tick.
	pollEvery time.Duration
}

// NewProducer returns a producer bound to the controller's board.
func NewProducer(ctl *Controller) *Producer {
	return &Producer{
		board:     ctl.Board(),
		ctl:       ctl,
		pollEvery: time.Millisecond,
	}
}

// Submit posts cmd and waits for the dispatcher to apply it, returning
// the assigned sequence number and the echoed result code. The sequence
// number in cmd is overwritten.
func (p *Producer) Submit(ctx context.Context, cmd Command) (uint32, ResultCode, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Wait until the previous command is fully applied before reusing
	// the slot.
	if err := p.waitApplied(ctx, p.seq); err != nil {
		return 0, ResultOk, err
	}

	p.seq++
	cmd.Seq = p.seq
	p.board.Post(cmd)

	if err := p.waitApplied(ctx, p.seq); err != nil {
		return p.seq, ResultOk, err
	}
	res, err := p.ctl.ResultFor(p.seq)
	return p.seq, res, err
}

// waitApplied polls until the consumer has echoed seq and committed its
// status counters.
func (p *Producer) waitApplied(ctx context.Context, seq uint32) error {
	if seq == 0 {
		return nil
	}
	ticker := time.NewTicker(p.pollEvery)
	defer ticker.Stop()
	for {
		if p.ctl.applied(seq) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("command %d not applied: %w", seq, ctx.Err())
		case <-ticker.C:
		}
	}
}
