package fits

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	props "github.com/goliatone/go-props"
)

// timeLayout is the FITS DATE value format.
const timeLayout = "2006-01-02T15:04:05.999999999"

// Encode writes h as FITS header cards followed by END, padded with spaces
// to a whole number of blocks.
func Encode(w io.Writer, h Header) error {
	cards, err := Cards(h)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	for _, card := range cards {
		buf.WriteString(card)
	}
	buf.WriteString(pad(endCard))
	if rem := buf.Len() % BlockSize; rem != 0 {
		buf.WriteString(strings.Repeat(" ", BlockSize-rem))
	}
	_, err = buf.WriteTo(w)
	return err
}

// Cards renders every entry of h as padded 80-column cards, without END.
func Cards(h Header) ([]string, error) {
	var cards []string
	for _, name := range h.OrderedNames() {
		value, err := h.Value(name)
		if err != nil {
			return nil, fmt.Errorf("fits: encode %q: %w", name, err)
		}
		comment, err := h.Comment(name)
		if err != nil {
			return nil, fmt.Errorf("fits: encode %q: %w", name, err)
		}
		for i := 0; i < value.Len(); i++ {
			if i > 0 {
				comment = ""
			}
			line, err := card(name, value.Kind(), value.Index(i), comment)
			if err != nil {
				return nil, err
			}
			cards = append(cards, line)
		}
	}
	return cards, nil
}

func card(name string, kind props.Kind, item any, comment string) (string, error) {
	if !printable(name) || !printable(comment) {
		return "", fmt.Errorf("%w: %q holds non-ASCII text", ErrInvalidCard, name)
	}
	if commentary[name] && kind == props.KindString {
		text := item.(string)
		if !printable(text) {
			return "", fmt.Errorf("%w: %q holds non-ASCII text", ErrInvalidCard, name)
		}
		return pad(truncate(fmt.Sprintf("%-8s%s", name, text))), nil
	}

	formatted, quoted, err := formatValue(name, kind, item)
	if err != nil {
		return "", err
	}

	var line string
	switch {
	case standardKeyword(name) && quoted:
		line = fmt.Sprintf("%-8s= %-20s", name, formatted)
	case standardKeyword(name):
		line = fmt.Sprintf("%-8s= %20s", name, formatted)
	default:
		line = fmt.Sprintf("%s %s = %s", hierarch, name, formatted)
	}
	if len(line) > CardSize {
		return "", fmt.Errorf("%w: %q", ErrCardTooLong, name)
	}
	if comment != "" {
		line = truncate(line + " / " + comment)
	}
	return pad(line), nil
}

func formatValue(name string, kind props.Kind, item any) (string, bool, error) {
	switch v := item.(type) {
	case bool:
		if v {
			return "T", false, nil
		}
		return "F", false, nil
	case int, int8, int16, int32, int64, uint32, uint64:
		return fmt.Sprint(v), false, nil
	case float32:
		return formatFloat(name, float64(v), 32)
	case float64:
		return formatFloat(name, v, 64)
	case string:
		if !printable(v) {
			return "", false, fmt.Errorf("%w: %q holds non-ASCII text", ErrInvalidCard, name)
		}
		return quote(v), true, nil
	case time.Time:
		return quote(v.UTC().Format(timeLayout)), true, nil
	}
	return "", false, fmt.Errorf("%w: %q is %s", ErrUnsupportedKind, name, kind)
}

func formatFloat(name string, v float64, bits int) (string, bool, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", false, fmt.Errorf("%w: %q is not finite", ErrInvalidCard, name)
	}
	s := strconv.FormatFloat(v, 'G', -1, bits)
	if !strings.ContainsAny(s, ".E") {
		s += ".0"
	}
	return s, false, nil
}

// quote wraps s in single quotes, doubling embedded quotes and padding the
// content to at least eight characters.
func quote(s string) string {
	escaped := strings.ReplaceAll(s, "'", "''")
	if len(escaped) < 8 {
		escaped += strings.Repeat(" ", 8-len(escaped))
	}
	return "'" + escaped + "'"
}

func truncate(line string) string {
	if len(line) > CardSize {
		return line[:CardSize]
	}
	return line
}

func pad(line string) string {
	return line + strings.Repeat(" ", CardSize-len(line))
}
