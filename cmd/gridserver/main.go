// gridserver streams generated floors to WebSocket clients, tile by
// tile, so a browser viewer can watch a floor materialize.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lawnchairsociety/wavegrid/floor"
	"github.com/lawnchairsociety/wavegrid/internal/config"
	"github.com/lawnchairsociety/wavegrid/internal/logger"
)

// generateRequest is the client's opening message.
type generateRequest struct {
	World string `json:"world"`
	Floor int    `json:"floor"`
	Seed  int64  `json:"seed"`
}

// tileMessage is one streamed tile.
type tileMessage struct {
	Type  string   `json:"type"`
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Kind  string   `json:"kind"`
	Exits []string `json:"exits,omitempty"`
}

// doneMessage closes a stream.
type doneMessage struct {
	Type       string `json:"type"`
	Rooms      int    `json:"rooms"`
	StairsUp   string `json:"stairs_up,omitempty"`
	StairsDown string `json:"stairs_down,omitempty"`
}

// errorMessage reports a failed generation to the client.
type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type server struct {
	cfg      *config.Config
	upgrader websocket.Upgrader
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	addr := flag.String("addr", "", "Listen address (empty = from config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	cfg.Logging.ApplyEnvOverrides()
	if err := logger.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	if *addr == "" {
		*addr = cfg.Server.Addr
	}

	s := &server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return cfg.Server.IsOriginAllowed(r.Header.Get("Origin"), r.Host)
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Map server listening", "addr", *addr)
	if err := httpServer.ListenAndServe(); err != nil {
		logger.Errorf("Server stopped: %v", err)
		os.Exit(1)
	}
}

// handleWS upgrades the connection, reads one generate request, and
// streams the resulting floor back tile by tile.
func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Debugf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Bound request size so clients can't exhaust server memory.
	conn.SetReadLimit(s.cfg.Server.MaxMessageSize)

	var req generateRequest
	if err := conn.ReadJSON(&req); err != nil {
		logger.Debugf("Bad generate request: %v", err)
		return
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}
	if req.Floor <= 0 {
		req.Floor = 1
	}

	logger.Info("Generating for client", "world", req.World, "floor", req.Floor, "seed", req.Seed)

	gcfg := floor.DefaultConfig(req.Floor, req.Seed)
	if s.cfg.Generator.MinRooms > 0 {
		gcfg.MinRooms = s.cfg.Generator.MinRooms
	}
	if s.cfg.Generator.MaxRooms > 0 {
		gcfg.MaxRooms = s.cfg.Generator.MaxRooms
	}
	if s.cfg.Generator.GridSize > 0 {
		gcfg.GridSize = s.cfg.Generator.GridSize
	}

	generated, err := floor.NewGenerator(gcfg).Generate()
	if err != nil {
		writeJSON(conn, errorMessage{Type: "error", Error: err.Error()})
		return
	}

	for _, tile := range generated.Tiles {
		msg := tileMessage{
			Type: "tile",
			X:    tile.X,
			Y:    tile.Y,
			Kind: tile.Type.String(),
		}
		for _, dir := range floor.AllDirections() {
			if tile.HasExit(dir) {
				msg.Exits = append(msg.Exits, dir.String())
			}
		}
		if err := writeJSON(conn, msg); err != nil {
			logger.Debugf("Client went away mid-stream: %v", err)
			return
		}
	}

	done := doneMessage{Type: "done", Rooms: len(generated.Tiles)}
	if generated.StairsUp != nil {
		done.StairsUp = floor.RoomID(req.Floor, generated.StairsUp.X, generated.StairsUp.Y)
	}
	if generated.StairsDown != nil {
		done.StairsDown = floor.RoomID(req.Floor, generated.StairsDown.X, generated.StairsDown.Y)
	}
	writeJSON(conn, done)
}

func writeJSON(conn *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
