// Package viewer serves the canvas to a browser. The page receives rendered
// frames as binary PNG websocket messages and sends pointer events back as
// JSON.
package viewer

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"image/png"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"TiledMandelbrot/canvas"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

//go:embed index.html
var indexHTML []byte

const heartBeatInterval = 30 * time.Second

type Server struct {
	address      string
	canvas       *canvas.Canvas
	done         chan struct{}
	framesServed atomic.Int64
	listener     net.Listener
	mux          *http.ServeMux
	server       *http.Server
	wg           sync.WaitGroup

	Logger bslogger.Logger
}

func NewServer(address string, c *canvas.Canvas) *Server {
	s := &Server{
		address: address,
		canvas:  c,
		done:    make(chan struct{}),
		mux:     http.NewServeMux(),
		Logger:  bslogger.NewLogger("Viewer", bslogger.Normal, nil),
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /frame.png", s.handleFrame)
	s.mux.HandleFunc("/ws", s.handleWebsocket)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// Addr is the address the server is listening on, once Run has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.address
	}
	return s.listener.Addr().String()
}

func (s *Server) FramesServed() int64 {
	return s.framesServed.Load()
}

func (s *Server) Run() error {
	var err error
	s.listener, err = net.Listen("tcp", s.address)
	if err != nil {
		s.Logger.Errorf("Listening at address %s", s.address)
		return err
	}

	s.server = &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		if err := s.server.Serve(s.listener); !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Errorf("Error serving at address %s: %s", s.Addr(), err)
		}
	}()
	go s.heartBeat()

	s.Logger.Infof("Running viewer at http://%s", s.Addr())
	return nil
}

func (s *Server) Stop() error {
	close(s.done)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		s.Logger.Errorf("Shutting down viewer at address %s", s.Addr())
		return err
	}
	s.wg.Wait()
	s.Logger.Infof("Shut down viewer at address %s", s.Addr())
	return nil
}

func (s *Server) heartBeat() {
	defer s.wg.Done()
	ticker := time.NewTicker(heartBeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Logger.Infof("Frames [Served: %d] Viewport [%v]", s.FramesServed(), s.canvas.Viewport())
		case <-s.done:
			return
		}
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	frame, err := s.encodeFrame()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(frame)
}

func (s *Server) encodeFrame() ([]byte, error) {
	frame, err := s.canvas.Paint()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return nil, err
	}
	s.framesServed.Add(1)
	return buf.Bytes(), nil
}

func (s *Server) sendFrame(ctx context.Context, conn *websocket.Conn) error {
	frame, err := s.encodeFrame()
	if err != nil {
		return wsjson.Write(ctx, conn, Message{Type: "error", Message: err.Error()})
	}
	return conn.Write(ctx, websocket.MessageBinary, frame)
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.Logger.Warningf("Websocket upgrade from %s: %s", r.RemoteAddr, err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	s.Logger.Debugf("Viewer connected from %s", r.RemoteAddr)
	if err := s.sendFrame(ctx, conn); err != nil {
		return
	}

	for {
		var ev Event
		if err := wsjson.Read(ctx, conn, &ev); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				s.Logger.Debugf("Viewer %s disconnected", r.RemoteAddr)
			default:
				s.Logger.Debugf("Reading from viewer %s: %s", r.RemoteAddr, err)
			}
			return
		}

		reply, redraw, err := apply(s.canvas, ev)
		if err != nil {
			reply, redraw = &Message{Type: "error", Message: err.Error()}, false
		}
		if reply != nil {
			if err := wsjson.Write(ctx, conn, reply); err != nil {
				return
			}
		}
		if redraw {
			if err := s.sendFrame(ctx, conn); err != nil {
				return
			}
		}
	}
}
