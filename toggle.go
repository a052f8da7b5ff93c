package grasp

import "fmt"

// checkIndex is the child index of the check mark visual shown while a
// toggle is checked.
const checkIndex = numButtonModes

// toggle is the state shared by Checkbox and Radio: a Button plus a checked
// flag mirrored by the node's fifth child.
type toggle struct {
	button  *Button
	node    WidgetNode
	checked bool
}

func newToggle(kind string, node WidgetNode, pointer PointerTracker, onClick func(*Button), id any) toggle {
	if node == nil {
		panic(fmt.Sprintf("grasp: %s requires a node", kind))
	}
	if node.NumChildren() <= checkIndex {
		panic(fmt.Sprintf("grasp: %s node needs %d visual children, has %d", kind, checkIndex+1, node.NumChildren()))
	}
	t := toggle{node: node}
	t.setChecked(false)
	t.button = NewButton(node, pointer, onClick, id)
	return t
}

// Checked reports whether the toggle is checked.
func (t *toggle) Checked() bool {
	return t.checked
}

// SetChecked sets the checked state without firing the click callback.
func (t *toggle) SetChecked(checked bool) {
	t.setChecked(checked)
}

// Button returns the underlying button.
func (t *toggle) Button() *Button {
	return t.button
}

// ID returns the identifier given at construction.
func (t *toggle) ID() any {
	return t.button.ID()
}

// SetDisabled enables or disables the underlying button.
func (t *toggle) SetDisabled(disabled bool) {
	t.button.SetDisabled(disabled)
}

// Disabled reports whether the underlying button is disabled.
func (t *toggle) Disabled() bool {
	return t.button.Disabled()
}

// Close unregisters the underlying button.
func (t *toggle) Close() {
	t.button.Close()
}

func (t *toggle) setChecked(checked bool) {
	t.checked = checked
	if checked {
		t.node.VisualAt(checkIndex).SetOpacity(1)
	} else {
		t.node.VisualAt(checkIndex).SetOpacity(0)
	}
}

// Checkbox is a button that flips between checked and unchecked on every
// click. Its node needs the four button visuals plus a check mark visual at
// index 4.
type Checkbox struct {
	toggle
	onClick func(*Checkbox)
}

// NewCheckbox creates an unchecked checkbox on node. onClick runs after the
// state has flipped and may be nil.
// Panics if node has fewer than five children.
func NewCheckbox(node WidgetNode, pointer PointerTracker, onClick func(*Checkbox), id any) *Checkbox {
	c := &Checkbox{onClick: onClick}
	c.toggle = newToggle("checkbox", node, pointer, c.click, id)
	return c
}

func (c *Checkbox) click(*Button) {
	c.setChecked(!c.checked)
	if c.onClick != nil {
		c.onClick(c)
	}
}

// Radio is a button that checks itself when clicked and never unchecks itself
// by interaction; a RadioGroup (or the caller) unchecks it. Its node layout
// matches Checkbox.
type Radio struct {
	toggle
	onClick func(*Radio)
	group   *RadioGroup
}

// NewRadio creates an unchecked radio button on node. onClick runs after the
// radio has been checked and may be nil.
// Panics if node has fewer than five children.
func NewRadio(node WidgetNode, pointer PointerTracker, onClick func(*Radio), id any) *Radio {
	r := &Radio{onClick: onClick}
	r.toggle = newToggle("radio", node, pointer, r.click, id)
	return r
}

// SetChecked sets the checked state without firing the click callback. For
// a radio in a group, checking it selects it and unchecks the other members,
// and unchecking the selected radio leaves the group with no selection; the
// group's onChange runs in both cases.
func (r *Radio) SetChecked(checked bool) {
	switch {
	case r.group == nil:
		r.setChecked(checked)
	case checked:
		r.group.Select(r)
	case r.group.current == r:
		r.group.Select(nil)
	default:
		r.setChecked(false)
	}
}

// Group returns the group the radio belongs to, or nil.
func (r *Radio) Group() *RadioGroup {
	return r.group
}

func (r *Radio) click(*Button) {
	r.setChecked(true)
	if r.group != nil {
		r.group.selected(r)
	}
	if r.onClick != nil {
		r.onClick(r)
	}
}

// RadioGroup keeps at most one member radio checked.
type RadioGroup struct {
	radios   []*Radio
	current  *Radio
	onChange func(*Radio)
}

// NewRadioGroup creates an empty group. onChange runs whenever the checked
// member changes and may be nil.
func NewRadioGroup(onChange func(*Radio)) *RadioGroup {
	return &RadioGroup{onChange: onChange}
}

// Add makes r a member of the group. Panics if r already belongs to a group.
// If r is checked it becomes the selection and the other members are
// unchecked.
func (g *RadioGroup) Add(r *Radio) {
	if r.group != nil {
		panic("grasp: radio already belongs to a group")
	}
	r.group = g
	g.radios = append(g.radios, r)
	if r.checked {
		g.selected(r)
	}
}

// Radios returns the members in the order they were added. The returned
// slice MUST NOT be mutated by the caller.
func (g *RadioGroup) Radios() []*Radio {
	return g.radios
}

// Selected returns the checked member, or nil.
func (g *RadioGroup) Selected() *Radio {
	return g.current
}

// Select checks r and unchecks every other member, as if r had been clicked
// (r's own click callback does not run). Passing nil unchecks everything.
// Panics if r is not a member.
func (g *RadioGroup) Select(r *Radio) {
	if r != nil && r.group != g {
		panic("grasp: radio is not a member of this group")
	}
	if r != nil {
		r.setChecked(true)
	}
	g.selected(r)
}

func (g *RadioGroup) selected(r *Radio) {
	for _, other := range g.radios {
		if other != r && other.checked {
			other.setChecked(false)
		}
	}
	if g.current == r {
		return
	}
	g.current = r
	if g.onChange != nil {
		g.onChange(r)
	}
}
