package secretshare

import (
	"fmt"
	"strconv"
	"strings"
)

// EncodeShare renders a share as "<index>:<v1>,<v2>,...,<vL>", the plain-text
// form used to move shares through terminals, clipboards and JSON. The
// format carries no checksum; corruption is undetectable until
// reconstruction produces garbage.
func EncodeShare(s Share) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(s.Index))
	b.WriteByte(':')
	for i, v := range s.Values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// String renders the share in its text encoding.
func (s Share) String() string {
	return EncodeShare(s)
}

// DecodeShare parses the text encoding produced by EncodeShare. It returns
// ErrMalformedShare, wrapped with the offending text, for a missing colon,
// an empty value list, a non-integer token, or a non-positive index.
func DecodeShare(text string) (Share, error) {
	trimmed := strings.TrimSpace(text)
	idxPart, valPart, found := strings.Cut(trimmed, ":")
	if !found {
		return Share{}, fmt.Errorf("%w: %q: missing ':' separator", ErrMalformedShare, text)
	}
	index, err := strconv.Atoi(strings.TrimSpace(idxPart))
	if err != nil {
		return Share{}, fmt.Errorf("%w: %q: invalid index %q", ErrMalformedShare, text, idxPart)
	}
	if index < 1 {
		return Share{}, fmt.Errorf("%w: %q: index must be positive", ErrMalformedShare, text)
	}
	if strings.TrimSpace(valPart) == "" {
		return Share{}, fmt.Errorf("%w: %q: empty value list", ErrMalformedShare, text)
	}
	tokens := strings.Split(valPart, ",")
	values := make([]int, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return Share{}, fmt.Errorf("%w: %q: invalid value %q", ErrMalformedShare, text, tok)
		}
		values[i] = v
	}
	return Share{Index: index, Values: values}, nil
}

// EncodeShares renders shares one per line, the block form front ends
// collect shares in.
func EncodeShares(shares []Share) string {
	lines := make([]string, len(shares))
	for i, s := range shares {
		lines[i] = EncodeShare(s)
	}
	return strings.Join(lines, "\n")
}

// ParseShares decodes a newline-separated block of encoded shares, skipping
// blank lines. It requires at least one share and fails on the first
// malformed line.
func ParseShares(text string) ([]Share, error) {
	var shares []Share
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		s, err := DecodeShare(line)
		if err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}
	if len(shares) == 0 {
		return nil, ErrEmptyShareSet
	}
	return shares, nil
}
