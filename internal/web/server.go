package web

import (
	"encoding/json"
	"fmt"
	stdlog "log"
	"net/http"
	"strconv"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/peterkuimelis/hsdeck/internal/deckstring"
	"github.com/peterkuimelis/hsdeck/internal/log"
	decknet "github.com/peterkuimelis/hsdeck/internal/net"
)

const (
	defaultQRSize = 256
	maxQRSize     = 1024
	maxBodyBytes  = 1 << 20
)

// Server is the hsdeck HTTP API server.
type Server struct {
	decksFile string
	handler   *decknet.Handler
	mux       *http.ServeMux
}

// NewServer creates a new web server backed by the library at decksFile.
func NewServer(decksFile string, logger log.EventLogger) (*Server, error) {
	s := &Server{
		decksFile: decksFile,
		handler:   &decknet.Handler{Source: "web", Logger: logger},
		mux:       http.NewServeMux(),
	}
	if f, err := readLibrary(decksFile); err != nil {
		stdlog.Printf("Warning: could not load deck library: %v", err)
	} else {
		s.handler.Catalog = f.Catalog()
		if logger != nil {
			logger.Log(log.NewLibraryLoadEvent("web", decksFile, len(f.Decks)))
		}
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	// Library
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("GET /api/decks/{n}", s.handleDeck)
	s.mux.HandleFunc("GET /api/decks/{n}/page", s.handleDeckPage)

	// Codec
	s.mux.HandleFunc("POST /api/decode", s.handleMessage(decknet.TypeDecode))
	s.mux.HandleFunc("POST /api/encode", s.handleMessage(decknet.TypeEncode))
	s.mux.HandleFunc("POST /api/page", s.handleMessage(decknet.TypePage))
	s.mux.HandleFunc("POST /api/render", s.handleMessage(decknet.TypeRender))
	s.mux.HandleFunc("GET /api/qr", s.handleQR)

	// WebSocket speaking the same protocol as the TCP server
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

// handleMessage answers a JSON request body as a protocol message of type t.
func (s *Server) handleMessage(t string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg decknet.ClientMessage
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&msg); err != nil {
			writeJSON(w, http.StatusBadRequest, decknet.ServerMessage{
				Type:  decknet.TypeError,
				Error: fmt.Sprintf("invalid request body: %v", err),
				Kind:  decknet.KindBadRequest,
			})
			return
		}
		msg.Type = t
		reply := s.handler.Handle(msg)
		writeJSON(w, statusFor(reply), reply)
	}
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("deckstring")
	if _, err := deckstring.Decode(code); err != nil {
		writeJSON(w, http.StatusBadRequest, decknet.ErrorMessage("", err))
		return
	}

	size := defaultQRSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxQRSize {
			http.Error(w, fmt.Sprintf("size must be between 1 and %d", maxQRSize), http.StatusBadRequest)
			return
		}
		size = n
	}

	png, err := qrcode.Encode(code, qrcode.Medium, size)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		stdlog.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	for {
		var msg decknet.ClientMessage
		if err := wsjson.Read(ctx, wsConn, &msg); err != nil {
			if websocket.CloseStatus(err) == -1 {
				stdlog.Printf("WebSocket read error: %v", err)
			}
			return
		}
		if err := wsjson.Write(ctx, wsConn, s.handler.Handle(msg)); err != nil {
			stdlog.Printf("WebSocket write error: %v", err)
			return
		}
	}
}

func statusFor(reply decknet.ServerMessage) int {
	if reply.Type == decknet.TypeError {
		return http.StatusBadRequest
	}
	return http.StatusOK
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
