package grasp

import (
	"fmt"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, cursor events routed to nodes with an EntityID are
// forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries cursor event data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	EntityID uint32
	CursorID int
	Source   SourceMask
	GlobalX  float64
	GlobalY  float64
	LocalX   float64
	LocalY   float64
	SpeedX   float64
	SpeedY   float64
}

const defaultTPS = 60

// Scene is the top-level object that owns the node tree, cursor state, event
// capture and the per-frame scheduler. It is the host every gesture processor
// and widget runs against.
//
// Scene is not safe for concurrent use; everything runs on the game loop.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool

	// ClearColor fills the screen before the tree is drawn. The zero value
	// leaves the screen untouched.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes its PNG files.
	ScreenshotDir   string
	screenshotQueue []string

	// Frame scheduling
	frameTime     time.Duration
	frameDuration time.Duration
	frames        frameRegistry

	// Input state
	hostInput    bool
	captured     map[int]*Node
	cursors      map[int]*cursorState
	nextCursorID int
	touchCursors map[ebiten.TouchID]int
	touchBuf     []ebiten.TouchID
	hitBuf       []*Node
	injectQueue  []syntheticCursorEvent
	testRunner   *TestRunner
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	s := &Scene{
		root:          root,
		ScreenshotDir: "screenshots",
		frameDuration: time.Second / defaultTPS,
		hostInput:     true,
		captured:      make(map[int]*Node),
		cursors:       make(map[int]*cursorState),
		touchCursors:  make(map[ebiten.TouchID]int),
	}
	root.scene = s
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update advances the frame clock, processes input and runs frame handlers.
// Call it once per tick from the game's Update.
func (s *Scene) Update() {
	s.frameTime += s.frameDuration

	// Refresh world transforms first so hit testing and WorldToLocal see
	// this frame's positions.
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.runFrameHandlers()
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetHostInput enables or disables polling ebiten's mouse and touch state.
// Injected input is processed either way. Disable host input for headless
// runs driven entirely by injected events.
func (s *Scene) SetHostInput(enabled bool) {
	s.hostInput = enabled
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and tree depth, child count and capture leak warnings are
// logged through Logger.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

// ApplyConfig applies the scene-level settings of cfg: tick rate and debug
// mode.
func (s *Scene) ApplyConfig(cfg *Config) {
	if cfg.TPS > 0 {
		s.SetFrameDuration(time.Second / time.Duration(cfg.TPS))
	}
	s.SetDebugMode(cfg.Debug)
}

// --- Capture ---

// capture routes cursorID to n. Called through Node.SetEventCapture.
func (s *Scene) capture(cursorID int, n *Node) error {
	if cur, ok := s.captured[cursorID]; ok && cur != n {
		return fmt.Errorf("capture cursor %d on %s (held by %s): %w", cursorID, n, cur, ErrCaptureHeld)
	}
	s.captured[cursorID] = n
	return nil
}

// release ends n's capture of cursorID. Called through Node.ReleaseEventCapture.
func (s *Scene) release(cursorID int, n *Node) error {
	if cur, ok := s.captured[cursorID]; !ok || cur != n {
		return fmt.Errorf("release cursor %d on %s: %w", cursorID, n, ErrNoCapture)
	}
	delete(s.captured, cursorID)
	return nil
}

// releaseSubtree drops every capture held by n or its descendants and sends
// each former holder an EventCaptureLost, since the cursor's up can no longer
// reach it. Called when n leaves the tree.
func (s *Scene) releaseSubtree(n *Node) {
	var lost []lostCapture
	for id, c := range s.captured {
		if isAncestor(n, c) {
			lost = append(lost, lostCapture{id, c})
		}
	}
	if len(lost) == 0 {
		return
	}
	for _, l := range lost {
		delete(s.captured, l.cursorID)
	}
	slices.SortFunc(lost, func(a, b lostCapture) int { return a.cursorID - b.cursorID })
	for _, l := range lost {
		s.notifyCaptureLost(l.cursorID, l.node)
	}
}

type lostCapture struct {
	cursorID int
	node     *Node
}

// notifyCaptureLost delivers EventCaptureLost for cursorID to n only; it does
// not bubble and is not forwarded to the entity store.
func (s *Scene) notifyCaptureLost(cursorID int, n *Node) {
	ev := CursorEvent{Type: EventCaptureLost, CursorID: cursorID, Source: SourceMouse, Node: n}
	if cs := s.cursors[cursorID]; cs != nil {
		ev.Pos = cs.pos
		ev.Source = cs.source
	}
	Logger().Debug("capture lost", "cursor", cursorID, "node", n.String())
	if fn := n.handler(EventCaptureLost, ev.Source); fn != nil {
		fn(ev)
	}
}

// CapturedBy returns the node capturing cursorID, or nil.
func (s *Scene) CapturedBy(cursorID int) *Node {
	return s.captured[cursorID]
}

// PointerPosition returns the last known mouse position in world
// coordinates. It implements PointerTracker.
func (s *Scene) PointerPosition() (Vec2, bool) {
	cs, ok := s.cursors[mouseCursorID]
	if !ok {
		return Vec2{}, false
	}
	return cs.pos, true
}

// emitInteractionEvent forwards ev to the ECS bridge when the node it was
// routed to carries an EntityID.
func (s *Scene) emitInteractionEvent(ev CursorEvent, node *Node) {
	if s.store == nil || node == nil || node.EntityID == 0 {
		return
	}
	lx, ly := node.WorldToLocal(ev.Pos.X, ev.Pos.Y)
	s.store.EmitEvent(InteractionEvent{
		Type:     ev.Type,
		EntityID: node.EntityID,
		CursorID: ev.CursorID,
		Source:   ev.Source,
		GlobalX:  ev.Pos.X,
		GlobalY:  ev.Pos.Y,
		LocalX:   lx,
		LocalY:   ly,
		SpeedX:   ev.Speed.X,
		SpeedY:   ev.Speed.Y,
	})
}
