package editor

import (
	"sort"
	"unicode"

	"golang.org/x/mobile/event/key"
)

// Shortcut describes a keyboard combination that triggers an action. A
// shortcut with a Rune matches the typed character, ignoring Shift; one
// without matches the key Code and exact modifiers.
type Shortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// Binding is a named action and the shortcuts bound to it.
type Binding struct {
	Name string
	Keys []Shortcut
}

// Keymap maps key presses to named actions.
type Keymap struct {
	actions map[string]func()
	keys    map[Shortcut]string
	order   []string
}

func NewKeymap() *Keymap {
	return &Keymap{actions: map[string]func(){}, keys: map[Shortcut]string{}}
}

// Register binds fn to name and the given shortcuts, replacing any earlier
// registration of name.
func (k *Keymap) Register(name string, fn func(), keys ...Shortcut) {
	k.Unregister(name)
	k.actions[name] = fn
	k.order = append(k.order, name)
	for _, sc := range keys {
		if sc.Rune != 0 {
			sc.Rune = unicode.ToLower(sc.Rune)
			sc.Modifiers &^= key.ModShift
			sc.Code = 0
		}
		k.keys[sc] = name
	}
}

// Unregister removes name and its shortcuts.
func (k *Keymap) Unregister(name string) {
	if _, ok := k.actions[name]; !ok {
		return
	}
	delete(k.actions, name)
	for sc, n := range k.keys {
		if n == name {
			delete(k.keys, sc)
		}
	}
	for i, n := range k.order {
		if n == name {
			k.order = append(k.order[:i], k.order[i+1:]...)
			break
		}
	}
}

// Reset unregisters every action.
func (k *Keymap) Reset() {
	for len(k.order) > 0 {
		k.Unregister(k.order[0])
	}
}

// Len returns the number of registered actions.
func (k *Keymap) Len() int { return len(k.actions) }

// Lookup returns the action bound to e, if any. Only presses match.
func (k *Keymap) Lookup(e key.Event) (string, bool) {
	if e.Direction == key.DirRelease {
		return "", false
	}
	if e.Rune > 0 {
		sc := Shortcut{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers &^ key.ModShift}
		if name, ok := k.keys[sc]; ok {
			return name, true
		}
	}
	name, ok := k.keys[Shortcut{Code: e.Code, Modifiers: e.Modifiers}]
	return name, ok
}

// Dispatch runs the action bound to e and reports whether one ran.
func (k *Keymap) Dispatch(e key.Event) bool {
	name, ok := k.Lookup(e)
	if !ok {
		return false
	}
	k.actions[name]()
	return true
}

// Bindings lists the registered actions in registration order.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.order))
	for _, name := range k.order {
		b := Binding{Name: name}
		for sc, n := range k.keys {
			if n == name {
				b.Keys = append(b.Keys, sc)
			}
		}
		sort.Slice(b.Keys, func(i, j int) bool {
			if b.Keys[i].Rune != b.Keys[j].Rune {
				return b.Keys[i].Rune < b.Keys[j].Rune
			}
			return b.Keys[i].Code < b.Keys[j].Code
		})
		out = append(out, b)
	}
	return out
}

// Actions the window can perform outside the controller.
type Actions struct {
	Save   func()
	Export func()
	Copy   func()
	Quit   func()
}

// RegisterDefaults binds the standard editing keys for c. Nil actions are
// skipped.
func RegisterDefaults(k *Keymap, c *Controller, a Actions) {
	k.Register("primary", func() { _, _ = c.Primary() }, Shortcut{Code: key.CodeReturnEnter})
	k.Register("undo", func() { c.Undo() },
		Shortcut{Code: key.CodeZ, Modifiers: key.ModControl},
		Shortcut{Code: key.CodeDeleteBackspace})
	k.Register("clear", c.ClearDraft, Shortcut{Code: key.CodeEscape})
	k.Register("next", func() { _ = c.SelectNext() }, Shortcut{Code: key.CodeTab})
	k.Register("previous", func() { _ = c.SelectPrev() }, Shortcut{Code: key.CodeTab, Modifiers: key.ModShift})
	k.Register("name", c.BeginName, Shortcut{Rune: 'n'})
	k.Register("grade-down", func() { c.StepGrade(-1) }, Shortcut{Rune: '['})
	k.Register("grade-up", func() { c.StepGrade(1) }, Shortcut{Rune: ']'})
	k.Register("zoom-in", func() { c.Zoom(ZoomStep) }, Shortcut{Rune: '+'}, Shortcut{Rune: '='})
	k.Register("zoom-out", func() { c.Zoom(1 / ZoomStep) }, Shortcut{Rune: '-'})
	k.Register("reset-view", c.ResetView, Shortcut{Rune: '0'})
	k.Register("pan-left", func() { c.Pan(PanStep, 0) }, Shortcut{Code: key.CodeLeftArrow})
	k.Register("pan-right", func() { c.Pan(-PanStep, 0) }, Shortcut{Code: key.CodeRightArrow})
	k.Register("pan-up", func() { c.Pan(0, PanStep) }, Shortcut{Code: key.CodeUpArrow})
	k.Register("pan-down", func() { c.Pan(0, -PanStep) }, Shortcut{Code: key.CodeDownArrow})
	if a.Save != nil {
		k.Register("save", a.Save, Shortcut{Code: key.CodeS, Modifiers: key.ModControl})
	}
	if a.Export != nil {
		k.Register("export", a.Export, Shortcut{Code: key.CodeE, Modifiers: key.ModControl})
	}
	if a.Copy != nil {
		k.Register("copy", a.Copy, Shortcut{Code: key.CodeC, Modifiers: key.ModControl})
	}
	if a.Quit != nil {
		k.Register("quit", a.Quit, Shortcut{Rune: 'q'})
	}
}

// HandleTyping routes e to the name field while c is typing. It reports
// whether e was consumed.
func HandleTyping(c *Controller, e key.Event) bool {
	if !c.Typing() {
		return false
	}
	if e.Direction == key.DirRelease {
		return true
	}
	switch e.Code {
	case key.CodeReturnEnter:
		c.AcceptName()
	case key.CodeEscape:
		c.CancelName()
	case key.CodeDeleteBackspace:
		c.DeleteRune()
	default:
		if e.Rune > 0 && e.Modifiers&key.ModControl == 0 {
			c.TypeRune(e.Rune)
		}
	}
	return true
}
