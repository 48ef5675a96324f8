package lz4mt

// emissionGate enforces ascending-index emission order across a sequence
// of concurrently-running block tasks without serializing their compress
// or decompress phase: each task depends on its predecessor for emission
// only, not for work. The producer threads one gate through the pipeline,
// handing each task the previous task's "done" channel to wait on and a
// fresh one of its own to close when it finishes emitting. No shared
// slice or mutex needed, since the producer already visits blocks in
// order.
type emissionGate struct {
	prev chan struct{}
}

// next returns the channel the next-dispatched task should wait on
// (nil for the very first block) and advances the gate to a fresh
// channel for that task to close when done.
func (g *emissionGate) next() (wait chan struct{}, done chan struct{}) {
	wait = g.prev
	done = make(chan struct{})
	g.prev = done
	return wait, done
}

// awaitPredecessor blocks until the predecessor's done channel closes.
// Safe to call with a nil channel (first block never waits).
func awaitPredecessor(wait chan struct{}) {
	if wait != nil {
		<-wait
	}
}
