package input

import (
	"fmt"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"rollcage/internal/control"
)

var namedKeys = map[string]int32{
	"Up":           rl.KeyUp,
	"Down":         rl.KeyDown,
	"Left":         rl.KeyLeft,
	"Right":        rl.KeyRight,
	"Space":        rl.KeySpace,
	"Enter":        rl.KeyEnter,
	"LeftShift":    rl.KeyLeftShift,
	"RightShift":   rl.KeyRightShift,
	"LeftControl":  rl.KeyLeftControl,
	"RightControl": rl.KeyRightControl,
}

// keyCode resolves a binding name: a single letter or digit, or one of namedKeys.
func keyCode(name string) (int32, error) {
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			return int32(c), nil
		case c >= 'a' && c <= 'z':
			return int32(c - 'a' + 'A'), nil
		}
	}
	if k, ok := namedKeys[name]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

type binding struct {
	key   control.Key
	codes []int32
}

// Keyboard turns raylib key events into presses and releases on a control.KeyState.
type Keyboard struct {
	bindings []binding
}

// NewKeyboard builds a keyboard from the bindings section of the tuning
// (control name to raylib key names).
func NewKeyboard(bindings map[string][]string) (*Keyboard, error) {
	names := make([]string, 0, len(bindings))
	for n := range bindings {
		names = append(names, n)
	}
	sort.Strings(names)

	kb := &Keyboard{}
	for _, n := range names {
		k, err := control.ParseKey(n)
		if err != nil {
			return nil, err
		}
		b := binding{key: k}
		for _, kn := range bindings[n] {
			code, err := keyCode(kn)
			if err != nil {
				return nil, fmt.Errorf("binding %s: %w", n, err)
			}
			b.codes = append(b.codes, code)
		}
		kb.bindings = append(kb.bindings, b)
	}
	return kb, nil
}

// Poll records every pressed and released binding into keys. A control counts as held while
// any of its keys is down.
func (kb *Keyboard) Poll(keys *control.KeyState) {
	for _, b := range kb.bindings {
		down := false
		for _, c := range b.codes {
			if rl.IsKeyDown(c) {
				down = true
				break
			}
		}
		if down {
			keys.Press(b.key)
		} else {
			keys.Release(b.key)
		}
	}
}
