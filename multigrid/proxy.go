package multigrid

// Proxy draws geometry that covers every pixel of the current viewport
// through whatever program is in use. It is called once per pass.
type Proxy interface {
	Draw()
}

// ProxyFunc adapts a function to a Proxy.
type ProxyFunc func()

func (f ProxyFunc) Draw() {
	f()
}
