package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/hsdeck/internal/deck"
	"github.com/peterkuimelis/hsdeck/internal/library"
	"github.com/peterkuimelis/hsdeck/internal/log"
	decknet "github.com/peterkuimelis/hsdeck/internal/net"
)

// decksFile is the path to the deck library YAML file, set by main.
var decksFile string

// handler answers the codec tools; one per stdio process.
var handler = &decknet.Handler{Source: "mcp"}

// SetDecksFile sets the path to the deck library YAML file and loads its
// card catalog for page rendering.
func SetDecksFile(path string) error {
	decksFile = path
	f, err := library.ReadFile(path)
	if err != nil {
		handler.Catalog = nil
		return err
	}
	handler.Catalog = f.Catalog()
	if handler.Logger != nil {
		handler.Logger.Log(log.NewLibraryLoadEvent("mcp", path, len(f.Decks)))
	}
	return nil
}

// SetLogger sets the event logger used by the tools.
func SetLogger(l log.EventLogger) {
	handler.Logger = l
}

// RegisterTools adds all deck tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(decodeTool(), handleDecode)
	s.AddTool(encodeTool(), handleEncode)
	s.AddTool(readPageTool(), handleReadPage)
	s.AddTool(renderPageTool(), handleRenderPage)
	s.AddTool(listDecksTool(), handleListDecks)
	s.AddTool(getDeckTool(), handleGetDeck)
}

// --- Tool definitions ---

func decodeTool() mcp.Tool {
	return mcp.NewTool("decode_deckstring",
		mcp.WithDescription("Decode a Hearthstone-style deck string into its format, hero and card list (card IDs with copy counts). "+
			"Returns the canonical deck string and a fingerprint when the deck is well formed."),
		mcp.WithString("deckstring", mcp.Required(), mcp.Description("The base64 deck string, e.g. AAECAdL6Aw...")),
	)
}

func encodeTool() mcp.Tool {
	return mcp.NewTool("encode_deckstring",
		mcp.WithDescription("Encode a deck into a deck string. Cards with the same ID are merged."),
		mcp.WithString("heroes", mcp.Required(), mcp.Description("Hero card IDs separated by spaces, normally exactly one (e.g. '64850')")),
		mcp.WithString("cards", mcp.Required(), mcp.Description("Cards as 'id:count' items separated by spaces (e.g. '56420:1 56411:2'); a bare id means one copy")),
		mcp.WithString("format", mcp.Description("Format name (Wild, Standard, Classic, Twist) or number. Defaults to Standard")),
	)
}

func readPageTool() mcp.Tool {
	return mcp.NewTool("read_page",
		mcp.WithDescription("Extract the deck name (first '###' line) and the deck string from shared deck page text, and decode the deck."),
		mcp.WithString("page", mcp.Required(), mcp.Description("The full multi-line page text")),
		mcp.WithNumber("capacity", mcp.Description("Name buffer size in bytes; the name is cut to capacity-1 bytes. 0 for no limit")),
	)
}

func renderPageTool() mcp.Tool {
	return mcp.NewTool("render_page",
		mcp.WithDescription("Render a deck string as shareable page text with a title, card list and the deck string. "+
			"Card names come from the library catalog when available."),
		mcp.WithString("deckstring", mcp.Required(), mcp.Description("The deck string to render")),
		mcp.WithString("name", mcp.Description("Deck name for the title line")),
	)
}

func listDecksTool() mcp.Tool {
	return mcp.NewTool("list_decks",
		mcp.WithDescription("List the decks in the deck library file. Read-only."),
	)
}

func getDeckTool() mcp.Tool {
	return mcp.NewTool("get_deck",
		mcp.WithDescription("Get one deck from the deck library by number, decoded."),
		mcp.WithNumber("number", mcp.Required(), mcp.Description("Deck number (1-indexed from the library)")),
	)
}

// --- Tool handlers ---

func handleDecode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code := request.GetString("deckstring", "")
	if strings.TrimSpace(code) == "" {
		return mcp.NewToolResultError("deckstring is required"), nil
	}
	return replyResult(handler.Handle(decknet.ClientMessage{Type: decknet.TypeDecode, DeckString: code})), nil
}

func handleEncode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	heroes, err := deck.ParseIDs(request.GetString("heroes", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid heroes: %v", err), nil
	}
	cards, err := deck.ParseCards(request.GetString("cards", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid cards: %v", err), nil
	}
	format := deck.FormatStandard
	if f := request.GetString("format", ""); f != "" {
		if format, err = deck.ParseFormat(f); err != nil {
			return mcp.NewToolResultErrorf("Invalid format: %v", err), nil
		}
	}

	d := &deck.Deck{Format: format, Heroes: heroes, Cards: cards}
	return replyResult(handler.Handle(decknet.ClientMessage{Type: decknet.TypeEncode, Deck: d})), nil
}

func handleReadPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	capacity := request.GetInt("capacity", 0)
	if capacity < 0 {
		return mcp.NewToolResultError("capacity must be >= 0"), nil
	}
	msg := decknet.ClientMessage{Type: decknet.TypePage, Page: request.GetString("page", ""), Capacity: capacity}
	return replyResult(handler.Handle(msg)), nil
}

func handleRenderPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	decoded := handler.Handle(decknet.ClientMessage{Type: decknet.TypeDecode, DeckString: request.GetString("deckstring", "")})
	if decoded.Type == decknet.TypeError {
		return replyResult(decoded), nil
	}
	d := decoded.Deck.Deck()
	d.Name = request.GetString("name", "")

	reply := handler.Handle(decknet.ClientMessage{Type: decknet.TypeRender, Deck: &d})
	if reply.Type == decknet.TypeError {
		return replyResult(reply), nil
	}
	return mcp.NewToolResultText(reply.Page), nil
}

func handleListDecks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f, err := library.ReadFile(decksFile)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to read deck library: %v", err), nil
	}

	type entry struct {
		Number int               `json:"number"`
		Deck   *decknet.DeckView `json:"deck,omitempty"`
		Error  string            `json:"error,omitempty"`
	}
	entries := []entry{}
	for i := range f.Decks {
		e := entry{Number: i + 1}
		if d, err := f.Resolve(i); err != nil {
			e.Error = err.Error()
		} else {
			e.Deck = decknet.BuildDeckView(d)
		}
		entries = append(entries, e)
	}
	return mcp.NewToolResultText(respondJSON(entries)), nil
}

func handleGetDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := request.GetInt("number", 0)
	if n < 1 {
		return mcp.NewToolResultError("number must be >= 1"), nil
	}
	d, err := library.DeckByNumber(decksFile, n)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load deck: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(decknet.BuildDeckView(d))), nil
}

// replyResult turns a protocol reply into a tool result; error replies
// become tool errors naming the error kind.
func replyResult(reply decknet.ServerMessage) *mcp.CallToolResult {
	if reply.Type == decknet.TypeError {
		return mcp.NewToolResultErrorf("%s: %s", reply.Kind, reply.Error)
	}
	return mcp.NewToolResultText(respondJSON(reply))
}

// respondJSON marshals v to a JSON string.
func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
