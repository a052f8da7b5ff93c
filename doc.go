// Package grasp is a gesture and widget layer for [Ebitengine] built on a
// small retained scene graph.
//
// It turns raw cursor events (mouse, touch contacts and hover tracking) into
// drag, hold and click interactions, and provides stateful Button, Checkbox
// and Radio widgets whose visual state is shown by toggling the opacity of
// child nodes.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := grasp.NewScene()
//	// ... add nodes, processors and widgets ...
//	grasp.Run(scene, grasp.RunConfig{
//		Title: "My Game", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Cursors, capture and dispatch
//
// Every pointer is a cursor with an integer id: the mouse is cursor 0 and
// each touch contact gets a fresh id for its lifetime. Events go to the node
// that has captured the cursor, or else to the topmost node under it, and
// bubble up through its ancestors. A node captures a cursor with
// [Node.SetEventCapture] so it keeps receiving that cursor's events after the
// cursor leaves it. A node removed from the tree loses its captures and
// receives [EventCaptureLost] for each, so gestures and buttons never wait
// for an up that cannot arrive.
//
// # Gestures
//
// [ManipulationProcessor] claims one cursor per gesture. [DragProcessor]
// reports offsets from the drag start and can coast with inertia after
// release. [HoldProcessor] reports long presses with a progress ramp.
// Processors depend only on the [CaptureTarget] and [FrameScheduler]
// interfaces, so they run against any host that provides them; [Scene] and
// [Node] are the in-repo host.
//
//	box := grasp.NewRect("box", 60, 60, grasp.Color{R: 0.3, G: 0.7, B: 1, A: 1})
//	scene.Root().AddChild(box)
//	grasp.NewDragProcessor(box, scene, grasp.DragOptions{
//		OnMove: func(_ *grasp.CursorEvent, offset grasp.Vec2) { ... },
//	})
//
// # Widgets
//
// A [Button] node has four visual children, one per [ButtonMode]. [Checkbox]
// and [Radio] add a fifth child shown while checked; [RadioGroup] keeps one
// radio of a set checked.
//
// # Testing
//
// [Scene.SetHostInput] turns off device polling, and the Inject methods and
// JSON scripts loaded with [LoadTestScript] feed synthetic cursor events one
// per frame, so interactions can be tested headlessly. A script's
// "screenshot" step saves the next drawn frame through [Scene.Screenshot].
//
// Within this package, tests of the host engine are plain table tests, while
// the gesture and widget suites use testify against fakes of the capability
// interfaces.
//
// Tunables such as drag friction and hold delays can live in a TOML file
// read with [LoadConfig].
//
// [Ebitengine]: https://ebitengine.org
package grasp
