package ornament

import (
	"encoding/json"
	"fmt"
)

// Script actions.
const (
	actionToggle = "toggle" // pointer click
	actionHand   = "hand"   // SyntheticHand(x, y, pinch, open)
	actionLost   = "lost"   // detection frame with no hand
	actionPoll   = "poll"   // one gesture edge-detection step
	actionWait   = "wait"   // idle for frames Updates
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Pinch  float64 `json:"pinch,omitempty"`
	Open   bool    `json:"open,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// input returns the synthetic input a step queues. Wait steps and unknown
// actions queue nothing.
func (st testStep) input() (syntheticInput, bool) {
	switch st.Action {
	case actionToggle:
		return syntheticInput{kind: injectToggle}, true
	case actionHand:
		return syntheticInput{kind: injectLandmarks, hand: SyntheticHand(st.X, st.Y, st.Pinch, st.Open)}, true
	case actionLost:
		return syntheticInput{kind: injectLandmarks}, true
	case actionPoll:
		return syntheticInput{kind: injectPoll}, true
	}
	return syntheticInput{}, false
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner replays a scripted session of clicks, hand snapshots and
// gesture polls across frames. Attach to a Scene via SetTestRunner.
//
// Actions: "toggle", "hand" (x, y, pinch, open), "lost", "poll" and
// "wait" (frames).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("ornament: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("ornament: parse test script: no steps")
	}
	for i, st := range script.Steps {
		if _, ok := st.input(); !ok && st.Action != actionWait {
			return nil, fmt.Errorf("ornament: parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before injected input is processed.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.testRunner = runner
}

// Done reports whether the script has run out and its last input has been
// applied.
func (r *TestRunner) Done() bool {
	return r.done
}

// step issues at most one scripted action per frame. Clicks, hands and polls
// travel through the inject queue, so a scripted pinch followed by a poll
// lands on consecutive Updates; the runner holds while the queue is busy.
// Called from Scene.Update with s.mu held.
func (r *TestRunner) step(s *Scene) {
	switch {
	case r.done, len(s.injectQueue) > 0:
		return
	case r.waitCount > 0:
		r.waitCount--
		return
	case r.cursor == len(r.steps):
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	if in, ok := st.input(); ok {
		s.injectQueue = append(s.injectQueue, in)
	} else if st.Frames > 1 {
		r.waitCount = st.Frames - 1 // this Update is the first idle frame
	}

	if r.cursor == len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
