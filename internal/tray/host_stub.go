//go:build stub

package tray

type stubHost struct{}

// NewSystrayHost returns a host that shows nothing; onReady still runs so the
// rest of the application starts normally.
func NewSystrayHost() Host {
	return stubHost{}
}

func (stubHost) Register(onReady func()) { onReady() }

func (stubHost) SetIcon([]byte) {}

func (stubHost) SetTooltip(string) {}

func (stubHost) AddItem(string, string) <-chan struct{} { return make(chan struct{}) }

func (stubHost) AddSeparator() {}

func (stubHost) WatchClicks(func(Event)) {}

func (stubHost) Quit() {}
