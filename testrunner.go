package grasp

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Cursor int     `json:"cursor,omitempty"`
	Source string  `json:"source,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected cursor events across frames for automated
// gesture testing. Attach to a Scene via SetTestRunner.
//
// Supported actions: "click", "drag", "down", "move", "up", "hold" (press,
// keep still for the given frames, release), "wait", "log" and "screenshot"
// (captures the next drawn frame under the step's label). Steps take an
// optional "source" ("mouse", the default, or "touch") and "cursor" id; touch
// steps default to cursor 1.
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
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "drag", "down", "move", "up", "hold", "wait", "log", "screenshot":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		switch st.Source {
		case "", "mouse", "touch":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown source %q", i, st.Source)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before input is processed each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	id, source := mouseCursorID, SourceMouse
	if st.Source == "touch" {
		id, source = st.Cursor, SourceTouch
		if id == mouseCursorID {
			id = 1
		}
		if id > s.nextCursorID {
			s.nextCursorID = id
		}
	}

	switch st.Action {
	case "click":
		s.inject(id, source, st.X, st.Y, true, false)
		s.inject(id, source, st.X, st.Y, false, source == SourceTouch)
	case "drag":
		frames := max(st.Frames, 2)
		s.inject(id, source, st.FromX, st.FromY, true, false)
		steps := frames - 2
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps+1)
			s.inject(id, source, st.FromX+(st.ToX-st.FromX)*t, st.FromY+(st.ToY-st.FromY)*t, true, false)
		}
		s.inject(id, source, st.ToX, st.ToY, false, source == SourceTouch)
	case "down", "move":
		s.inject(id, source, st.X, st.Y, true, false)
	case "up":
		s.inject(id, source, st.X, st.Y, false, source == SourceTouch)
	case "hold":
		frames := max(st.Frames, 2)
		for i := 0; i < frames-1; i++ {
			s.inject(id, source, st.X, st.Y, true, false)
		}
		s.inject(id, source, st.X, st.Y, false, source == SourceTouch)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "log":
		Logger().Info("test script", "label", st.Label, "frame", s.frameTime)
	case "screenshot":
		s.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
