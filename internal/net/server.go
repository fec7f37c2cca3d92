package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"sync"
)

// Server answers protocol requests from any number of TCP clients.
type Server struct {
	Addr    string // listen address, e.g. ":9000"
	Handler *Handler
}

// Run listens on s.Addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	stdlog.Printf("deck server listening on %s", ln.Addr())
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled. It closes ln and
// waits for open connections to finish before returning.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.serveConn(ctx, conn)
		}()
	}
}

// serveConn answers one request per JSON message until the client hangs up.
func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)
	for {
		var msg ClientMessage
		if err := dec.Decode(&msg); err != nil {
			var typeErr *json.UnmarshalTypeError
			var syntaxErr *json.SyntaxError
			switch {
			case errors.As(err, &typeErr):
				// The value was consumed; the stream is still usable.
				if err := enc.Encode(malformed(err)); err != nil {
					return
				}
				continue
			case errors.As(err, &syntaxErr):
				_ = enc.Encode(malformed(err))
			}
			return
		}
		if err := enc.Encode(s.Handler.Handle(msg)); err != nil {
			stdlog.Printf("write to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
}

func malformed(err error) ServerMessage {
	return ServerMessage{Type: TypeError, Error: fmt.Sprintf("malformed message: %v", err), Kind: KindBadRequest}
}
