package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Client sends protocol requests over a single connection.
type Client struct {
	mu   sync.Mutex
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
}

// Dial connects to a deck server.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return NewClient(conn), nil
}

// NewClient wraps an established connection.
func NewClient(conn net.Conn) *Client {
	return &Client{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
	}
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Do sends msg and waits for its reply. A request ID is generated when msg
// has none.
func (c *Client) Do(ctx context.Context, msg ClientMessage) (ServerMessage, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stop := context.AfterFunc(ctx, func() { c.conn.Close() })
	defer stop()

	if err := c.enc.Encode(msg); err != nil {
		return ServerMessage{}, fmt.Errorf("send %s: %w", msg.Type, err)
	}
	var reply ServerMessage
	if err := c.dec.Decode(&reply); err != nil {
		if ctx.Err() != nil {
			return ServerMessage{}, ctx.Err()
		}
		return ServerMessage{}, fmt.Errorf("read reply: %w", err)
	}
	if reply.ID != msg.ID {
		return ServerMessage{}, fmt.Errorf("reply id %q does not match request %q", reply.ID, msg.ID)
	}
	return reply, nil
}

// Decode asks the server to decode a deck string.
func (c *Client) Decode(ctx context.Context, code string) (*DeckView, error) {
	reply, err := c.Do(ctx, ClientMessage{Type: TypeDecode, DeckString: code})
	if err != nil {
		return nil, err
	}
	if reply.Type == TypeError {
		return nil, fmt.Errorf("%s: %s", reply.Kind, reply.Error)
	}
	return reply.Deck, nil
}

// Connect dials addr and runs the REPL on stdin and stdout.
func Connect(ctx context.Context, addr string, in io.Reader, out io.Writer) error {
	c, err := Dial(ctx, addr)
	if err != nil {
		return err
	}
	defer c.Close()

	fmt.Fprintf(out, "Connected to %s. Paste a deck string or page text; end pages with a blank line.\n", addr)
	return c.RunREPL(ctx, in, out)
}

// RunREPL reads deck strings, one per line, and prints the decoded decks.
// A line starting with "#" begins page text, which runs until a blank line.
func (c *Client) RunREPL(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	var page []string

	flushPage := func() error {
		if len(page) == 0 {
			return nil
		}
		text := strings.Join(page, "\n")
		page = page[:0]
		reply, err := c.Do(ctx, ClientMessage{Type: TypePage, Page: text})
		if err != nil {
			return err
		}
		c.renderReply(out, reply)
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case len(page) > 0 && line == "":
			if err := flushPage(); err != nil {
				return err
			}
		case len(page) > 0 || strings.HasPrefix(line, "#"):
			page = append(page, line)
		case line == "":
		default:
			reply, err := c.Do(ctx, ClientMessage{Type: TypeDecode, DeckString: line})
			if err != nil {
				return err
			}
			c.renderReply(out, reply)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return flushPage()
}

func (c *Client) renderReply(out io.Writer, reply ServerMessage) {
	switch {
	case reply.Type == TypeError:
		fmt.Fprintf(out, "error (%s): %s\n", reply.Kind, reply.Error)
	case reply.Deck != nil:
		fmt.Fprint(out, FormatDeck(reply.Deck))
	case reply.Type == TypePage:
		fmt.Fprintf(out, "%q: no deck string found\n", reply.Name)
	}
}

// FormatDeck formats a deck view as indented text.
func FormatDeck(v *DeckView) string {
	var sb strings.Builder
	name := v.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(&sb, "%s [%s] %d cards", name, v.Format, v.Size)
	if v.Fingerprint != "" {
		fmt.Fprintf(&sb, " %s", v.Fingerprint)
	}
	sb.WriteByte('\n')

	heroes := make([]string, len(v.Heroes))
	for i, h := range v.Heroes {
		heroes[i] = fmt.Sprint(h)
	}
	fmt.Fprintf(&sb, "  hero: %s\n", strings.Join(heroes, ", "))
	for _, card := range v.Cards {
		fmt.Fprintf(&sb, "  %dx %d\n", card.Count, card.ID)
	}
	return sb.String()
}
