package main

import (
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"dotglobe/config"
	"dotglobe/core"
)

// geometryFrame is sent once per connection: the retained dot positions,
// which stay fixed for the globe's lifetime.
type geometryFrame struct {
	Type     string       `json:"type"` // "geometry"
	Radius   float64      `json:"radius"`
	DotCount int          `json:"dotCount"`
	Dots     [][3]float64 `json:"dots"`
}

// stateFrame is broadcast on every tick: only the dots that differ from
// the inactive default, keyed by dot index.
type stateFrame struct {
	Type   string        `json:"type"` // "state"
	Active []dotStateMsg `json:"active"`
}

type dotStateMsg struct {
	Index int      `json:"index"`
	Color [3]uint8 `json:"color"`
}

// mutateMsg is what clients send: activation requests and/or a clear.
type mutateMsg struct {
	SetActive []activateMsg `json:"setActive,omitempty"`
	Clear     bool          `json:"clear,omitempty"`
}

type activateMsg struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Color string  `json:"color,omitempty"` // hex, optional
}

type errorFrame struct {
	Type  string `json:"type"` // "error"
	Error string `json:"error"`
}

// stateServer pushes dot-state frames to websocket clients and applies
// their mutation requests through the core's public operations. Writes to
// one connection serialize under a per-connection mutex since broadcasts
// and error replies come from different goroutines.
type stateServer struct {
	globe    *core.Globe
	interval time.Duration
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
}

func startServer(globe *core.Globe, settings config.ServerSettings) error {
	srv := &stateServer{
		globe:    globe,
		interval: time.Duration(settings.UpdateIntervalMs) * time.Millisecond,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:     slog.New(slog.NewTextHandler(os.Stderr, nil)),
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}

	go srv.broadcastLoop()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.handleWS)
	mux.Handle("/metrics", metricsHandler())

	srv.log.Info("state server listening", "addr", settings.Addr, "intervalMs", settings.UpdateIntervalMs)
	return http.ListenAndServe(settings.Addr, mux)
}

func (s *stateServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	connMu := &sync.Mutex{}
	s.mu.Lock()
	s.clients[conn] = connMu
	s.mu.Unlock()
	wsClients.Inc()
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		wsClients.Dec()
	}()

	s.log.Info("client connected", "remote", r.RemoteAddr)
	if err := s.sendGeometry(conn, connMu); err != nil {
		s.log.Warn("geometry send failed", "err", err)
		return
	}

	for {
		var msg mutateMsg
		if err := conn.ReadJSON(&msg); err != nil {
			s.log.Info("client disconnected", "remote", r.RemoteAddr, "err", err)
			return
		}
		if applyErr := s.apply(msg); applyErr != nil {
			connMu.Lock()
			conn.WriteJSON(errorFrame{Type: "error", Error: applyErr.Error()})
			connMu.Unlock()
		}
	}
}

// apply translates a client message into core operations.
func (s *stateServer) apply(msg mutateMsg) error {
	if msg.Clear {
		if err := s.globe.ClearActive(); err != nil {
			return err
		}
	}
	for _, a := range msg.SetActive {
		activateRequestsTotal.Inc()
		req := core.ActiveRequest{Lat: a.Lat, Lon: a.Lon}
		if a.Color != "" {
			r, g, b, err := config.ParseHexColor(a.Color)
			if err != nil {
				activateFailsTotal.Inc()
				return err
			}
			req.Color = &core.RGB{R: r, G: g, B: b}
		}
		if err := s.globe.SetActive([]core.ActiveRequest{req}); err != nil {
			activateFailsTotal.Inc()
			return err
		}
	}
	return nil
}

func (s *stateServer) sendGeometry(conn *websocket.Conn, connMu *sync.Mutex) error {
	points := s.globe.Points()
	frame := geometryFrame{
		Type:     "geometry",
		Radius:   s.globe.Config().Radius,
		DotCount: len(points),
		Dots:     make([][3]float64, len(points)),
	}
	for i, p := range points {
		frame.Dots[i] = [3]float64{p.X, p.Y, p.Z}
	}
	connMu.Lock()
	defer connMu.Unlock()
	return conn.WriteJSON(frame)
}

func (s *stateServer) broadcastLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for range ticker.C {
		start := time.Now()
		frame, err := s.buildStateFrame()
		if err != nil {
			s.log.Error("state snapshot failed", "err", err)
			continue
		}

		s.mu.RLock()
		conns := make(map[*websocket.Conn]*sync.Mutex, len(s.clients))
		for c, m := range s.clients {
			conns[c] = m
		}
		s.mu.RUnlock()
		if len(conns) == 0 {
			continue
		}

		var dead []*websocket.Conn
		for conn, connMu := range conns {
			connMu.Lock()
			err := conn.WriteJSON(frame)
			connMu.Unlock()
			if err != nil {
				dead = append(dead, conn)
			}
		}
		if len(dead) > 0 {
			s.mu.Lock()
			for _, conn := range dead {
				if _, ok := s.clients[conn]; ok {
					delete(s.clients, conn)
					wsClients.Dec()
					conn.Close()
				}
			}
			s.mu.Unlock()
		}
		broadcastDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	}
}

func (s *stateServer) buildStateFrame() (stateFrame, error) {
	states, err := s.globe.StateSnapshot()
	if err != nil {
		return stateFrame{}, err
	}
	frame := stateFrame{Type: "state", Active: []dotStateMsg{}}
	for i, st := range states {
		if st.Active {
			frame.Active = append(frame.Active, dotStateMsg{
				Index: i,
				Color: [3]uint8{st.Color.R, st.Color.G, st.Color.B},
			})
		}
	}
	activeDots.Set(float64(len(frame.Active)))
	return frame, nil
}
