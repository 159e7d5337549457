package control

import "fmt"

// Key is a logical driving input.
type Key int

const (
	Forward Key = iota
	Backward
	Left
	Right
	Brake

	numKeys
)

var keyNames = [numKeys]string{"forward", "backward", "left", "right", "brake"}

func (k Key) String() string {
	if k < 0 || k >= numKeys {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// Keys lists every logical key in order.
func Keys() []Key {
	return []Key{Forward, Backward, Left, Right, Brake}
}

// ParseKey returns the key named name (as written in the bindings section of the tuning file).
func ParseKey(name string) (Key, error) {
	for k, n := range keyNames {
		if n == name {
			return Key(k), nil
		}
	}
	return 0, fmt.Errorf("unknown control %q", name)
}

// KeyState is the latched "currently held" table. Press and Release record events as they
// arrive; the controller reads it once per tick.
type KeyState struct {
	held [numKeys]bool
}

func (s *KeyState) Press(k Key) {
	if k >= 0 && k < numKeys {
		s.held[k] = true
	}
}

func (s *KeyState) Release(k Key) {
	if k >= 0 && k < numKeys {
		s.held[k] = false
	}
}

// Held reports whether k is down.
func (s *KeyState) Held(k Key) bool {
	return k >= 0 && k < numKeys && s.held[k]
}

// Reset releases every key.
func (s *KeyState) Reset() {
	s.held = [numKeys]bool{}
}
