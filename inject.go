package ornament

// syntheticKind selects what a queued synthetic input does.
type syntheticKind uint8

const (
	injectLandmarks syntheticKind = iota
	injectToggle
	injectPoll
)

// syntheticInput is one queued input, consumed by the next Update.
type syntheticInput struct {
	kind syntheticKind
	hand []Landmark
}

// InjectLandmarks queues a detection snapshot. A nil or short snapshot
// simulates a frame with no hand. The snapshot is consumed on the next
// Update, one queued input per frame.
func (s *Scene) InjectLandmarks(hand []Landmark) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.injectQueue = append(s.injectQueue, syntheticInput{kind: injectLandmarks, hand: hand})
}

// InjectHand is a convenience that queues SyntheticHand(x, y, pinch, open).
func (s *Scene) InjectHand(x, y, pinch float64, open bool) {
	s.InjectLandmarks(SyntheticHand(x, y, pinch, open))
}

// InjectToggle queues a pointer toggle.
func (s *Scene) InjectToggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.injectQueue = append(s.injectQueue, syntheticInput{kind: injectToggle})
}

// InjectPoll queues a gesture edge-detection step, letting scripted runs
// poll on frame boundaries instead of wall-clock time.
func (s *Scene) InjectPoll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.injectQueue = append(s.injectQueue, syntheticInput{kind: injectPoll})
}

// Pending returns the number of queued synthetic inputs.
func (s *Scene) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.injectQueue)
}

// processInjectedInput pops one input from the queue and applies it.
// Returns true if an input was consumed. Called with s.mu held.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	in := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue[len(s.injectQueue)-1] = syntheticInput{}
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch in.kind {
	case injectLandmarks:
		s.submitLocked(in.hand)
	case injectToggle:
		s.toggleLocked()
	case injectPoll:
		s.mode.Poll(s.hand)
	}
	return true
}
