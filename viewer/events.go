package viewer

import (
	"fmt"

	"TiledMandelbrot/canvas"
)

// Event is a pointer or window event sent by the page as JSON.
type Event struct {
	Type    string `json:"type"`
	X       int    `json:"x,omitempty"`
	Y       int    `json:"y,omitempty"`
	Delta   int    `json:"delta,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Threads int    `json:"threads,omitempty"`
}

// Message is a JSON reply to the page. Frames are sent separately as binary
// PNG messages.
type Message struct {
	Type    string  `json:"type"`
	Real    float64 `json:"real"`
	Imag    float64 `json:"imag"`
	Message string  `json:"message,omitempty"`
}

// apply feeds one event to the canvas. It returns an optional reply and
// whether the frame needs to be sent again.
func apply(c *canvas.Canvas, ev Event) (*Message, bool, error) {
	switch ev.Type {
	case "press":
		c.Press(ev.X, ev.Y)
		return nil, false, nil
	case "move":
		position, err := c.Move(ev.X, ev.Y)
		if err != nil {
			return nil, false, err
		}
		reply := &Message{Type: "position", Real: position.Real, Imag: position.Imag}
		return reply, c.Dragging(), nil
	case "release":
		dragging := c.Dragging()
		c.Release()
		return nil, dragging, nil
	case "wheel":
		if ev.Delta == 0 {
			return nil, false, nil
		}
		return nil, true, c.Wheel(ev.X, ev.Y, ev.Delta)
	case "resize":
		return nil, true, c.Resize(ev.Width, ev.Height)
	case "threads":
		return nil, true, c.SetThreads(ev.Threads)
	case "paint":
		return nil, true, nil
	default:
		return nil, false, fmt.Errorf("unknown event %q", ev.Type)
	}
}
