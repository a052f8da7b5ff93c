package grasp

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// maxTweenFields is the most fields one TweenGroup drives (the four color
// channels).
const maxTweenFields = 4

// TweenGroup animates up to four float64 fields of a Node together. Drive it
// by hand with Update or hand it to Scene.Animate to run it on the frame
// scheduler. A group whose node has been disposed finishes immediately
// without writing.
type TweenGroup struct {
	tweens [maxTweenFields]*gween.Tween
	fields [maxTweenFields]*float64
	count  int
	target *Node

	// Done is set once every field has reached its end value.
	Done bool
	// OnDone, if set, runs once when the group finishes.
	OnDone func()
}

// tweenField pairs a node field with the value it animates to.
type tweenField struct {
	field *float64
	to    float64
}

func newTweenGroup(node *Node, duration float32, fn ease.TweenFunc, fields ...tweenField) *TweenGroup {
	if node == nil {
		panic("grasp: tween requires a node")
	}
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{count: len(fields), target: node}
	for i, f := range fields {
		g.tweens[i] = gween.New(float32(*f.field), float32(f.to), duration, fn)
		g.fields[i] = f.field
	}
	return g
}

// Update advances the group by dt seconds, writes the fields and marks the
// node dirty.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target.IsDisposed() {
		g.finish()
		return
	}
	done := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		done = done && finished
	}
	g.target.MarkDirty()
	if done {
		g.finish()
	}
}

func (g *TweenGroup) finish() {
	g.Done = true
	if g.OnDone != nil {
		g.OnDone()
	}
}

// TweenPosition animates node.X and node.Y to (toX, toY) over duration
// seconds.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		tweenField{&node.X, toX},
		tweenField{&node.Y, toY})
}

// TweenScale animates node.ScaleX and node.ScaleY.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		tweenField{&node.ScaleX, toSX},
		tweenField{&node.ScaleY, toSY})
}

// TweenColor animates all four channels of node.Color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		tweenField{&node.Color.R, to.R},
		tweenField{&node.Color.G, to.G},
		tweenField{&node.Color.B, to.B},
		tweenField{&node.Color.A, to.A})
}

// TweenAlpha animates node.Alpha, the opacity widgets toggle.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, tweenField{&node.Alpha, to})
}

// TweenRotation animates node.Rotation, in radians.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, tweenField{&node.Rotation, to})
}

// Animate runs g on the frame scheduler, advancing it by the frame duration
// every frame from the next one on. The handler clears itself when the group
// is done. The returned id can be passed to ClearInterval to stop early.
func (s *Scene) Animate(g *TweenGroup) FrameHandlerID {
	var id FrameHandlerID
	id = s.SetOnFrameHandler(func() {
		g.Update(float32(s.frameDuration.Seconds()))
		if g.Done {
			s.ClearInterval(id)
		}
	})
	return id
}
