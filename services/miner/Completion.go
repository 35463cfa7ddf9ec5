package miner

import (
	"context"
	"sync"

	"github.com/bsv-blockchain/teranode-consensus/errors"
	"github.com/bsv-blockchain/teranode-consensus/model"
)

// Completion is the sending half of a round. Only the first Send has an
// effect, after which the channel is closed.
type Completion struct {
	once sync.Once
	ch   chan *model.Proof
}

func newCompletion() (*Completion, <-chan *model.Proof) {
	c := &Completion{
		ch: make(chan *model.Proof, 1),
	}

	return c, c.ch
}

// Send delivers proof to the receiver and closes the channel. It returns false
// if the round was already completed.
func (c *Completion) Send(proof *model.Proof) bool {
	sent := false

	c.once.Do(func() {
		if proof != nil {
			c.ch <- proof
		}

		close(c.ch)

		sent = true
	})

	return sent
}

// Abandon completes the round without a proof.
func (c *Completion) Abandon() bool {
	return c.Send(nil)
}

// WaitForProof blocks until the round completes and returns its proof, nil
// when the round was abandoned. Only ctx ending is an error.
func WaitForProof(ctx context.Context, rx <-chan *model.Proof) (*model.Proof, error) {
	select {
	case <-ctx.Done():
		return nil, errors.NewContextCanceledError("[WaitForProof] stopped waiting for proof", ctx.Err())
	case proof := <-rx:
		return proof, nil
	}
}
