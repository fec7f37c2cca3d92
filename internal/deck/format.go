package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// Format identifies the play format a deck targets. Values are a contract
// with the game client and are carried through the codec untouched, so values
// without a name below are still valid.
type Format uint64

const (
	FormatUnknown Format = iota
	FormatWild
	FormatStandard
	FormatClassic
	FormatTwist
)

var formatNames = map[Format]string{
	FormatUnknown:  "Unknown",
	FormatWild:     "Wild",
	FormatStandard: "Standard",
	FormatClassic:  "Classic",
	FormatTwist:    "Twist",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", uint64(f))
}

// ParseFormat accepts a format name (case-insensitive), a Format(n) string
// as produced by String, or a bare number.
func ParseFormat(s string) (Format, error) {
	s = strings.TrimSpace(s)
	for f, name := range formatNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	num := s
	if inner, ok := strings.CutPrefix(s, "Format("); ok {
		num = strings.TrimSuffix(inner, ")")
	}
	n, err := strconv.ParseUint(num, 10, 64)
	if err != nil {
		return FormatUnknown, fmt.Errorf("unknown format %q", s)
	}
	return Format(n), nil
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
