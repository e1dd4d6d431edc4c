package swarm

// Color is a flat RGB colour.
type Color struct {
	R, G, B uint8
}

var (
	White = Color{R: 255, G: 255, B: 255}
	Black = Color{}
)

// DrawRequest is one frame's worth of points. Points are in store order.
// Presenters must not modify Points or keep it after DrawPoints returns: the
// driver reuses the buffer on the next tick.
type DrawRequest struct {
	Points []Point
	Color  Color
	Size   int
}

// Presenter draws a batch of points. The call is synchronous.
type Presenter interface {
	DrawPoints(req DrawRequest)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(req DrawRequest)

func (f PresenterFunc) DrawPoints(req DrawRequest) { f(req) }
