package deckstring

import (
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/peterkuimelis/hsdeck/internal/deck"
	"github.com/peterkuimelis/hsdeck/internal/varint"
)

var (
	// ErrInvalidEncoding is returned when the string is not padded standard base64.
	ErrInvalidEncoding = pkgerrors.New("invalid base64 deck string")
	// ErrInvalidHeader is returned when the reserved first byte is not zero.
	ErrInvalidHeader = pkgerrors.New("reserved header byte is not zero")
	// ErrUnsupportedVersion is returned for any version other than Version.
	ErrUnsupportedVersion = pkgerrors.New("unsupported deck string version")
	// ErrTrailingData is returned when bytes remain after the last card block.
	ErrTrailingData = pkgerrors.New("trailing data after card blocks")

	// ErrTruncated is returned when the payload ends inside a field.
	ErrTruncated = varint.ErrTruncated
	// ErrOverflow is returned when a varint does not fit in 64 bits.
	ErrOverflow = varint.ErrOverflow
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrInvalidEncoding, "invalid_encoding"},
	{ErrInvalidHeader, "invalid_header"},
	{ErrUnsupportedVersion, "unsupported_version"},
	{ErrTruncated, "truncated"},
	{ErrOverflow, "overflow"},
	{ErrTrailingData, "trailing_data"},
	{deck.ErrNoHeroes, "no_heroes"},
	{deck.ErrInvalidCardCount, "invalid_card_count"},
	{deck.ErrDuplicateCard, "duplicate_card"},
}

// Kind returns a stable identifier for the codec error wrapped by err, or
// "unknown". It returns "" for a nil error.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "unknown"
}
