//go:build stub

package hotkey

type stubBinding struct{}

// NewToggleBinding returns a binding that registers nothing and never fires,
// for builds without a display server.
func NewToggleBinding() Binding {
	return stubBinding{}
}

func (stubBinding) Register() error { return nil }

func (stubBinding) Unregister() error { return nil }

func (stubBinding) Keydown() <-chan Event { return nil }
