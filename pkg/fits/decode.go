package fits

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	props "github.com/goliatone/go-props"
)

// Decode reads cards from r up to the END card and returns them as a list.
// Repeated keywords are appended, undefined values are skipped and date
// strings stay strings.
func Decode(r io.Reader, opts ...props.Option) (*props.List, error) {
	list := props.NewList(opts...)
	buf := make([]byte, CardSize)
	for index := 0; ; index++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, ErrMissingEnd
			}
			return nil, fmt.Errorf("fits: read card %d: %w", index, err)
		}
		line := string(buf)
		if strings.TrimRight(line, " ") == endCard {
			return list, nil
		}
		if err := decodeCard(list, line); err != nil {
			return nil, fmt.Errorf("fits: card %d: %w", index, err)
		}
	}
}

func decodeCard(list *props.List, line string) error {
	keyword := strings.TrimRight(line[:8], " ")

	var name, field string
	switch {
	case keyword == hierarch:
		rest := line[8:]
		eq := strings.Index(rest, "=")
		if eq < 0 {
			return fmt.Errorf("%w: HIERARCH card without value", ErrInvalidCard)
		}
		name = strings.TrimSpace(rest[:eq])
		field = rest[eq+1:]
	case line[8:10] == "= ":
		name = keyword
		field = line[10:]
	case commentary[keyword]:
		return list.Add(keyword, strings.TrimRight(line[8:], " "))
	default:
		return nil
	}
	if name == "" {
		return fmt.Errorf("%w: empty keyword", ErrInvalidCard)
	}

	value, comment, ok, err := parseField(field)
	if err != nil {
		return fmt.Errorf("%q: %w", name, err)
	}
	if !ok {
		return nil
	}
	var entryOpts []props.EntryOption
	if comment != "" && !list.Exists(name) {
		entryOpts = append(entryOpts, props.WithComment(comment))
	}
	return list.Add(name, value, entryOpts...)
}

// parseField splits a value field into its value and comment. ok is false
// for an undefined value.
func parseField(field string) (value any, comment string, ok bool, err error) {
	field = strings.TrimLeft(field, " ")
	if strings.HasPrefix(field, "'") {
		text, rest, err := unquote(field)
		if err != nil {
			return nil, "", false, err
		}
		return text, commentOf(rest), true, nil
	}

	token, rest, _ := strings.Cut(field, "/")
	token = strings.TrimSpace(token)
	comment = strings.TrimSpace(rest)
	if token == "" {
		return nil, comment, false, nil
	}
	value, err = parseToken(token)
	if err != nil {
		return nil, "", false, err
	}
	return value, comment, true, nil
}

func parseToken(token string) (any, error) {
	switch token {
	case "T":
		return true, nil
	case "F":
		return false, nil
	}
	if i, err := strconv.ParseInt(token, 10, 64); err == nil {
		if int64(int(i)) == i {
			return int(i), nil
		}
		return i, nil
	}
	if u, err := strconv.ParseUint(token, 10, 64); err == nil {
		return u, nil
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(token, "D", "E"), 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: cannot parse value %q", ErrInvalidCard, token)
}

// unquote reads a quoted string starting at field[0]. Doubled quotes stand
// for one quote and trailing blanks are not significant.
func unquote(field string) (string, string, error) {
	var b strings.Builder
	for i := 1; i < len(field); i++ {
		if field[i] != '\'' {
			b.WriteByte(field[i])
			continue
		}
		if i+1 < len(field) && field[i+1] == '\'' {
			b.WriteByte('\'')
			i++
			continue
		}
		return strings.TrimRight(b.String(), " "), field[i+1:], nil
	}
	return "", "", fmt.Errorf("%w: unterminated string", ErrInvalidCard)
}

func commentOf(rest string) string {
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "/") {
		return ""
	}
	return strings.TrimSpace(rest[1:])
}
