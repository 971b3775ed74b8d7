package viewer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"TiledMandelbrot/canvas"
	"TiledMandelbrot/coloring"
	"TiledMandelbrot/mandelbrot"
	"TiledMandelbrot/misc"
	"TiledMandelbrot/viewport"
	"TiledMandelbrot/worker"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

func newTestServer(t *testing.T, address string) *Server {
	t.Helper()
	ms := mandelbrot.Settings{MaxIterations: 40}
	if err := ms.Verify(); err != nil {
		t.Fatal(err)
	}
	seed := int64(5)
	col, err := coloring.NewSmoothColoring(coloring.Settings{Seed: &seed})
	if err != nil {
		t.Fatal(err)
	}
	c, err := canvas.New(canvas.Settings{Width: 41, Height: 21, Threads: 2}, worker.NewScheduler(mandelbrot.NewMandelbrot(ms), col))
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(address, c)
}

func decodeFrame(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	return img
}

func TestNewSettings(t *testing.T) {
	s, err := NewSettings("")
	if err != nil {
		t.Fatalf("NewSettings(\"\") error = %v", err)
	}
	if s.Width != 800 || s.Height != 533 || s.Threads < 1 || s.ServerAddress == "" {
		t.Errorf("NewSettings(\"\") = %+v", s)
	}
	if s.Viewport != viewport.Default() {
		t.Errorf("Viewport = %v, want %v", s.Viewport, viewport.Default())
	}
	if s.Mandelbrot.MaxIterations != mandelbrot.DefaultMaxIterations || s.Coloring.GradientSize != coloring.DefaultGradientSize {
		t.Errorf("nested defaults not filled: %+v %+v", s.Mandelbrot, s.Coloring)
	}

	dir := t.TempDir()
	file := filepath.Join(dir, "viewer.json")
	content := `{
		"ServerAddress": "localhost:9000",
		"Threads": 3,
		"Width": 320,
		"Height": 200,
		"Viewport": {"OffsetX": -1, "OffsetY": 0.5, "Width": 1, "Height": 1},
		"Mandelbrot": {"Evaluator": "scalar", "MaxIterations": 250},
		"Coloring": {"BaseColors": 6, "Seed": 17, "CloseLoop": true}
	}`
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err = NewSettings(file)
	if err != nil {
		t.Fatalf("NewSettings(file) error = %v", err)
	}
	if s.ServerAddress != "localhost:9000" || s.Threads != 3 || s.Width != 320 || s.Height != 200 {
		t.Errorf("NewSettings(file) = %+v", s)
	}
	if s.Mandelbrot.Evaluator != mandelbrot.Scalar || s.Mandelbrot.MaxIterations != 250 || s.Mandelbrot.BailOut != mandelbrot.DefaultBailOut {
		t.Errorf("Mandelbrot = %+v", s.Mandelbrot)
	}
	if s.Coloring.BaseColors != 6 || s.Coloring.Seed == nil || *s.Coloring.Seed != 17 || !s.Coloring.CloseLoop {
		t.Errorf("Coloring = %+v", s.Coloring)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"Coloring": {"BaseColors": 9, "GradientSize": 3}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSettings(bad); err == nil {
		t.Error("NewSettings(invalid gradient) error = nil")
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{"Threads": `), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSettings(broken); err == nil {
		t.Error("NewSettings(broken json) error = nil")
	}

	if _, err := NewSettings(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("NewSettings(missing) error = nil")
	}
}

func TestHandleIndex(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t, "").Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "/ws") {
		t.Error("index page does not open the websocket")
	}

	resp, err = http.Get(ts.URL + "/nothing")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /nothing status = %d, want 404", resp.StatusCode)
	}
}

func TestHandleFrame(t *testing.T) {
	s := newTestServer(t, "")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/frame.png")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", got)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := decodeFrame(t, data).Bounds(); b.Dx() != 41 || b.Dy() != 21 {
		t.Errorf("frame size = %dx%d, want 41x21", b.Dx(), b.Dy())
	}
	if got := s.FramesServed(); got != 1 {
		t.Errorf("FramesServed() = %d, want 1", got)
	}
}

func TestWebsocket(t *testing.T) {
	s := newTestServer(t, "")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.CloseNow()
	conn.SetReadLimit(1 << 22)

	readFrame := func() image.Image {
		t.Helper()
		typ, data, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if typ != websocket.MessageBinary {
			t.Fatalf("Read() type = %v, want binary, data %s", typ, data)
		}
		return decodeFrame(t, data)
	}
	readMessage := func() Message {
		t.Helper()
		typ, data, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if typ != websocket.MessageText {
			t.Fatalf("Read() type = %v, want text", typ)
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatal(err)
		}
		return msg
	}

	// A frame is pushed as soon as the page connects.
	readFrame()

	if err := wsjson.Write(ctx, conn, Event{Type: "move", X: 0, Y: 0}); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(); msg.Type != "position" || msg.Real != -2 || msg.Imag != 1 {
		t.Errorf("move reply = %+v, want position -2+1i", msg)
	}

	if err := wsjson.Write(ctx, conn, Event{Type: "wheel", X: 20, Y: 10, Delta: 200}); err != nil {
		t.Fatal(err)
	}
	readFrame()
	if got := s.canvas.Viewport(); got.Width != 1.5 || got.Height != 1 {
		t.Errorf("viewport after wheel = %v, want 1.5 x 1", got)
	}

	if err := wsjson.Write(ctx, conn, Event{Type: "resize", Width: 30, Height: 12}); err != nil {
		t.Fatal(err)
	}
	if b := readFrame().Bounds(); b.Dx() != 30 || b.Dy() != 12 {
		t.Errorf("frame after resize = %dx%d, want 30x12", b.Dx(), b.Dy())
	}

	if err := wsjson.Write(ctx, conn, Event{Type: "resize", Width: 1, Height: 12}); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(); msg.Type != "error" {
		t.Errorf("invalid resize reply = %+v, want error", msg)
	}

	if err := wsjson.Write(ctx, conn, Event{Type: "teleport"}); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(); msg.Type != "error" || !strings.Contains(msg.Message, "teleport") {
		t.Errorf("unknown event reply = %+v, want error", msg)
	}

	// Press sends nothing back; the drag redraws on move and release.
	if err := wsjson.Write(ctx, conn, Event{Type: "press", X: 10, Y: 5}); err != nil {
		t.Fatal(err)
	}
	if err := wsjson.Write(ctx, conn, Event{Type: "move", X: 5, Y: 5}); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(); msg.Type != "position" {
		t.Errorf("drag move reply = %+v, want position", msg)
	}
	if b := readFrame().Bounds(); b.Dx() != 30 || b.Dy() != 12 {
		t.Errorf("preview frame = %dx%d, want 30x12", b.Dx(), b.Dy())
	}
	if err := wsjson.Write(ctx, conn, Event{Type: "release"}); err != nil {
		t.Fatal(err)
	}
	readFrame()

	conn.Close(websocket.StatusNormalClosure, "")
}

func TestRunStop(t *testing.T) {
	port, err := misc.GetFreePort()
	if err != nil {
		t.Fatal(err)
	}
	s := newTestServer(t, fmt.Sprintf("localhost:%d", port))
	if err := s.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	resp, err := http.Get("http://" + s.Addr() + "/frame.png")
	if err != nil {
		t.Fatalf("GET /frame.png error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /frame.png status = %d", resp.StatusCode)
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if _, err := http.Get("http://" + s.Addr() + "/frame.png"); err == nil {
		t.Error("server still answering after Stop")
	}
}
