package tetris

import (
	"context"
	"time"
)

// Driver runs a session on its own goroutine: gravity from a ticker and
// moves handed over through Send, applied one at a time. It stops when the
// context is cancelled or the game ends.
type Driver struct {
	interval time.Duration
	session  Session
	observe  func(Session)
	moves    chan moveRequest
	done     chan struct{}
}

type moveRequest struct {
	move    Move
	applied chan struct{}
}

// NewDriver creates a driver for s. A non-positive interval disables gravity,
// leaving the session to advance only through Send. observe, if not nil, is
// called on the driver goroutine with the initial session and after every move.
func NewDriver(s Session, interval time.Duration, observe func(Session)) *Driver {
	return &Driver{
		interval: interval,
		session:  s,
		observe:  observe,
		moves:    make(chan moveRequest),
		done:     make(chan struct{}),
	}
}

// Run drives the session until ctx is cancelled or the game is over and
// returns the final session. It must be called exactly once.
func (d *Driver) Run(ctx context.Context) Session {
	defer close(d.done)

	var tick <-chan time.Time
	if d.interval > 0 {
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	d.publish()
	for !d.session.GameOver() {
		select {
		case <-ctx.Done():
			return d.session
		case <-tick:
			d.apply(MoveTick)
		case req := <-d.moves:
			d.apply(req.move)
			close(req.applied)
		}
	}
	return d.session
}

// Send applies m and returns once it has taken effect.
// Returns false if the driver stopped or ctx ended first.
func (d *Driver) Send(ctx context.Context, m Move) bool {
	req := moveRequest{move: m, applied: make(chan struct{})}
	select {
	case d.moves <- req:
	case <-d.done:
		return false
	case <-ctx.Done():
		return false
	}
	<-req.applied
	return true
}

// Done is closed when Run returns.
func (d *Driver) Done() <-chan struct{} {
	return d.done
}

func (d *Driver) apply(m Move) {
	d.session = m.Apply(d.session)
	d.publish()
}

func (d *Driver) publish() {
	if d.observe != nil {
		d.observe(d.session)
	}
}
