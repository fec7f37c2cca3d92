package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/peterkuimelis/hsdeck/internal/log"
	decknet "github.com/peterkuimelis/hsdeck/internal/net"
)

const shamanDeckString = "AAECAdL6AwbkuAPczAOczgP1zgPi7AOXoAQM27gDmLkD4cwD/tED8NQDqN4Dqt4D4OwDre4DjZ8E+Z8E/p8EAA=="

func setupLibrary(t *testing.T) *log.MemoryLogger {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decks.yaml")
	content := "decks:\n  - name: Shaman\n    deckstring: " + shamanDeckString + "\n  - name: Broken\n    deckstring: AAEC\n" +
		"cards:\n  - id: 64850\n    name: Thrall\n    cost: 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	logger := log.NewMemoryLogger()
	SetLogger(logger)
	if err := SetDecksFile(path); err != nil {
		t.Fatalf("SetDecksFile: %v", err)
	}
	t.Cleanup(func() {
		SetLogger(nil)
		decksFile = ""
		handler.Catalog = nil
	})
	return logger
}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if len(res.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(res.Content))
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, not text", res.Content[0])
	}
	return text.Text, res.IsError
}

func TestDecodeTool(t *testing.T) {
	logger := setupLibrary(t)

	out, isErr := call(t, handleDecode, map[string]any{"deckstring": shamanDeckString})
	if isErr {
		t.Fatalf("unexpected tool error: %s", out)
	}
	var reply decknet.ServerMessage
	if err := json.Unmarshal([]byte(out), &reply); err != nil {
		t.Fatal(err)
	}
	if reply.Deck.Size != 30 || reply.Deck.Heroes[0] != 64850 {
		t.Errorf("unexpected deck %+v", reply.Deck)
	}
	if len(logger.EventsOfType(log.EventDecode)) != 1 {
		t.Error("decode was not logged")
	}

	out, isErr = call(t, handleDecode, map[string]any{"deckstring": "AAEC"})
	if !isErr || !strings.HasPrefix(out, "truncated:") {
		t.Errorf("got %q (error=%v)", out, isErr)
	}

	if _, isErr := call(t, handleDecode, map[string]any{}); !isErr {
		t.Error("missing deckstring should be a tool error")
	}
}

func TestEncodeTool(t *testing.T) {
	setupLibrary(t)

	out, isErr := call(t, handleEncode, map[string]any{"heroes": "7", "cards": "3:3 1", "format": "wild"})
	if isErr {
		t.Fatalf("tool error: %s", out)
	}
	var reply decknet.ServerMessage
	if err := json.Unmarshal([]byte(out), &reply); err != nil {
		t.Fatal(err)
	}
	if reply.DeckString != "AAEBAQcBAQABAwM=" {
		t.Errorf("deck string = %q", reply.DeckString)
	}

	for name, args := range map[string]map[string]any{
		"bad heroes": {"heroes": "x", "cards": "1"},
		"bad cards":  {"heroes": "7", "cards": "1:0"},
		"bad format": {"heroes": "7", "cards": "1", "format": "arena"},
		"no heroes":  {"heroes": "", "cards": "1"},
	} {
		if out, isErr := call(t, handleEncode, args); !isErr {
			t.Errorf("%s: expected tool error, got %s", name, out)
		}
	}
}

func TestReadPageTool(t *testing.T) {
	setupLibrary(t)
	page := "### Mazzo Sciamano2\n# Classe: Sciamano\n" + shamanDeckString + "\n"

	out, isErr := call(t, handleReadPage, map[string]any{"page": page, "capacity": float64(16)})
	if isErr {
		t.Fatalf("tool error: %s", out)
	}
	var reply decknet.ServerMessage
	if err := json.Unmarshal([]byte(out), &reply); err != nil {
		t.Fatal(err)
	}
	if reply.Name != "Mazzo Sciamano2" || reply.Deck == nil || reply.Deck.Name != "Mazzo Sciamano2" {
		t.Errorf("unexpected reply %+v", reply)
	}

	out, isErr = call(t, handleReadPage, map[string]any{"page": page, "capacity": float64(1 << 40)})
	if isErr || !strings.Contains(out, `"name":"Mazzo Sciamano2"`) {
		t.Errorf("huge capacity: %s (error=%v)", out, isErr)
	}

	if _, isErr := call(t, handleReadPage, map[string]any{"page": page, "capacity": float64(-1)}); !isErr {
		t.Error("negative capacity should be a tool error")
	}
}

func TestRenderPageTool(t *testing.T) {
	setupLibrary(t)
	out, isErr := call(t, handleRenderPage, map[string]any{"deckstring": shamanDeckString, "name": "Thrall Tempo"})
	if isErr {
		t.Fatalf("tool error: %s", out)
	}
	if !strings.HasPrefix(out, "### Thrall Tempo\n# Class: Thrall\n# Format: Standard\n") {
		t.Errorf("unexpected page:\n%s", out)
	}

	if _, isErr := call(t, handleRenderPage, map[string]any{"deckstring": "###"}); !isErr {
		t.Error("invalid deck string should be a tool error")
	}
}

func TestLibraryTools(t *testing.T) {
	setupLibrary(t)

	out, isErr := call(t, handleListDecks, nil)
	if isErr {
		t.Fatalf("tool error: %s", out)
	}
	var entries []struct {
		Number int               `json:"number"`
		Deck   *decknet.DeckView `json:"deck"`
		Error  string            `json:"error"`
	}
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Deck.Name != "Shaman" || entries[1].Error == "" {
		t.Errorf("unexpected entries %s", out)
	}

	out, isErr = call(t, handleGetDeck, map[string]any{"number": float64(1)})
	if isErr || !strings.Contains(out, `"name":"Shaman"`) {
		t.Errorf("get_deck 1: %s (error=%v)", out, isErr)
	}
	for _, n := range []float64{0, 2, 3} {
		if out, isErr := call(t, handleGetDeck, map[string]any{"number": n}); !isErr {
			t.Errorf("get_deck %v: expected tool error, got %s", n, out)
		}
	}
}
