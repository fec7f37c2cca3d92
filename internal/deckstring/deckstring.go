// Package deckstring converts decks to and from deck strings: a versioned
// binary payload of varints wrapped in padded standard base64.
//
// Payload layout:
//
//	0x00                      reserved
//	varint version            currently 1
//	varint format
//	varint H, H x varint      heroes
//	varint S, S x varint      cards with one copy
//	varint D, D x varint      cards with two copies
//	varint M, M x (id, count) every other card
//
// Nothing may follow the last block.
package deckstring

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/peterkuimelis/hsdeck/internal/deck"
	"github.com/peterkuimelis/hsdeck/internal/varint"
)

// Version is the only payload version this package reads and writes.
const Version = 1

// Encode validates d and returns its deck string. Cards are written in
// ascending ID order within each block, so equal decks encode identically.
func Encode(d deck.Deck) (string, error) {
	payload, err := Marshal(d)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// Decode parses a deck string. Surrounding whitespace is ignored. The
// returned deck has no Name.
func Decode(s string) (deck.Deck, error) {
	payload, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return deck.Deck{}, errors.Wrap(ErrInvalidEncoding, err.Error())
	}
	return Unmarshal(payload)
}

// Marshal returns the binary payload for d.
func Marshal(d deck.Deck) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	var singles, doubles, many []deck.Card
	for _, c := range d.Sorted().Cards {
		switch c.Count {
		case 1:
			singles = append(singles, c)
		case 2:
			doubles = append(doubles, c)
		default:
			many = append(many, c)
		}
	}

	size := 1 + varint.Len(Version) + varint.Len(uint64(d.Format)) + varint.Len(uint64(len(d.Heroes)))
	for _, h := range d.Heroes {
		size += varint.Len(uint64(h))
	}
	for _, block := range [][]deck.Card{singles, doubles} {
		size += varint.Len(uint64(len(block)))
		for _, c := range block {
			size += varint.Len(uint64(c.ID))
		}
	}
	size += varint.Len(uint64(len(many)))
	for _, c := range many {
		size += varint.Len(uint64(c.ID)) + varint.Len(c.Count)
	}

	buf := make([]byte, 0, size)
	buf = append(buf, 0)
	buf = varint.Append(buf, Version)
	buf = varint.Append(buf, uint64(d.Format))

	buf = varint.Append(buf, uint64(len(d.Heroes)))
	for _, h := range d.Heroes {
		buf = varint.Append(buf, uint64(h))
	}

	for _, block := range [][]deck.Card{singles, doubles} {
		buf = varint.Append(buf, uint64(len(block)))
		for _, c := range block {
			buf = varint.Append(buf, uint64(c.ID))
		}
	}

	buf = varint.Append(buf, uint64(len(many)))
	for _, c := range many {
		buf = varint.Append(buf, uint64(c.ID))
		buf = varint.Append(buf, c.Count)
	}
	return buf, nil
}

// Unmarshal parses a binary payload. Card counts in the last block are
// returned as stored, including zero; cards repeated across blocks are kept
// as separate entries.
func Unmarshal(payload []byte) (deck.Deck, error) {
	r := reader{buf: payload}

	if len(payload) == 0 {
		return deck.Deck{}, errors.Wrap(ErrTruncated, "reserved byte")
	}
	if payload[0] != 0 {
		return deck.Deck{}, errors.Wrapf(ErrInvalidHeader, "got 0x%02x", payload[0])
	}
	r.pos = 1

	version := r.next("version")
	if r.err == nil && version != Version {
		return deck.Deck{}, errors.Wrapf(ErrUnsupportedVersion, "version %d", version)
	}

	var d deck.Deck
	d.Format = deck.Format(r.next("format"))

	heroes := r.length("hero count", 1)
	d.Heroes = make([]deck.CardID, 0, heroes)
	for i := 0; i < heroes && r.err == nil; i++ {
		d.Heroes = append(d.Heroes, deck.CardID(r.next("hero")))
	}

	for _, count := range []uint64{1, 2} {
		n := r.length("card count", 1)
		for i := 0; i < n && r.err == nil; i++ {
			d.Cards = append(d.Cards, deck.Card{ID: deck.CardID(r.next("card")), Count: count})
		}
	}

	n := r.length("n-of count", 2)
	for i := 0; i < n && r.err == nil; i++ {
		id := r.next("n-of card")
		count := r.next("n-of copies")
		d.Cards = append(d.Cards, deck.Card{ID: deck.CardID(id), Count: count})
	}

	if r.err != nil {
		return deck.Deck{}, r.err
	}
	if r.pos != len(payload) {
		return deck.Deck{}, errors.Wrapf(ErrTrailingData, "%d bytes", len(payload)-r.pos)
	}
	return d, nil
}

// Fingerprint returns a short hex identifier for the canonical payload of d:
// BLAKE2b-256 truncated to 10 bytes.
func Fingerprint(d deck.Deck) (string, error) {
	payload, err := Marshal(d)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:10]), nil
}

// reader walks a payload and keeps the first error it hits.
type reader struct {
	buf []byte
	pos int
	err error
}

func (r *reader) next(field string) uint64 {
	if r.err != nil {
		return 0
	}
	v, pos, err := varint.Read(r.buf, r.pos)
	if err != nil {
		r.err = errors.Wrap(err, field)
		return 0
	}
	r.pos = pos
	return v
}

// length reads an element count. Each element takes at least minBytes, so a
// count larger than the remaining input allows is reported as truncation.
func (r *reader) length(field string, minBytes int) int {
	n := r.next(field)
	if r.err != nil {
		return 0
	}
	remaining := uint64(len(r.buf) - r.pos)
	if n > remaining/uint64(minBytes) {
		r.err = errors.Wrapf(ErrTruncated, "%s %d exceeds remaining %d bytes", field, n, remaining)
		return 0
	}
	return int(n)
}
