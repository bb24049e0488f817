// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numparse

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ParseIntStrict parses a plain decimal int64 with an optional sign.
func ParseIntStrict(text string) (int64, error) {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, &Error{"ParseIntStrict", text, convErr(err)}
	}
	return v, nil
}

// ParseFloatStrict parses a float64 in Go syntax. NaN is rejected.
func ParseFloatStrict(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &Error{"ParseFloatStrict", text, convErr(err)}
	}
	if math.IsNaN(v) {
		return 0, &Error{"ParseFloatStrict", text, ErrSyntax}
	}
	return v, nil
}

// ParseIntLenient parses an integer, tolerating surrounding space,
// digit separators, a base prefix, SI and IEC suffixes, and floating
// point forms of integral values such as "1e6" or "12.0". Without a
// 0x, 0o or 0b prefix the integer is decimal, even with leading zeros.
func ParseIntLenient(text string) (int64, error) {
	s := strings.TrimSpace(text)
	if v, err := strconv.ParseInt(trimLeadingZeros(s), 0, 64); err == nil {
		return v, nil
	} else if errors.Is(err, strconv.ErrRange) {
		return 0, &Error{"ParseIntLenient", text, ErrRange}
	}
	f, err := parseNum(s)
	if err != nil {
		return 0, &Error{"ParseIntLenient", text, ErrSyntax}
	}
	n := FloatOf(f)
	if !n.IsIntegral() {
		if math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
			return 0, &Error{"ParseIntLenient", text, ErrRange}
		}
		return 0, &Error{"ParseIntLenient", text, ErrSyntax}
	}
	return int64(f), nil
}

// trimLeadingZeros drops the leading zeros of a decimal integer so
// that strconv does not read it as octal.
func trimLeadingZeros(s string) string {
	sign := ""
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		sign, s = s[:1], s[1:]
	}
	if len(s) < 2 || s[0] != '0' {
		return sign + s
	}
	switch s[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return sign + s
	}
	if s = strings.TrimLeft(s, "0"); s == "" {
		s = "0"
	}
	return sign + s
}

// ParseFloatLenient parses a float64, tolerating surrounding space,
// digit separators, the words "infinity" and "inf" in any case, and
// SI and IEC suffixes. NaN is rejected.
func ParseFloatLenient(text string) (float64, error) {
	s := strings.TrimSpace(text)
	switch strings.ToLower(strings.TrimLeft(s, "+-")) {
	case "inf", "infinity", "∞":
		if strings.HasPrefix(s, "-") {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	}
	v, err := parseNum(s)
	if err != nil {
		return 0, &Error{"ParseFloatLenient", text, err}
	}
	return v, nil
}

func convErr(err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return ErrRange
	}
	return ErrSyntax
}

const numPrefixes = `KMGTPEZY`

var numRe = regexp.MustCompile(`^([-+]?[0-9.]+)([k` + numPrefixes + `]i?)?[bB]?$`)

// parseNum is a fuzzy number parser. It supports common patterns,
// such as SI prefixes.
func parseNum(x string) (float64, error) {
	// Try parsing as a regular float. This also handles "_"
	// separators with a base prefix.
	v, err := strconv.ParseFloat(x, 64)
	if err == nil {
		if math.IsNaN(v) {
			return 0, ErrSyntax
		}
		return v, nil
	} else if errors.Is(err, strconv.ErrRange) {
		return 0, ErrRange
	}

	// Try a suffixed number.
	subs := numRe.FindStringSubmatch(strings.ReplaceAll(x, "_", ""))
	if subs != nil {
		v, err := strconv.ParseFloat(subs[1], 64)
		if err == nil {
			exp := 0
			if len(subs[2]) > 0 {
				pre := subs[2][0]
				if pre == 'k' {
					pre = 'K'
				}
				exp = 1 + strings.IndexByte(numPrefixes, pre)
			}
			iec := strings.HasSuffix(subs[2], "i")
			if iec {
				return v * math.Pow(1024, float64(exp)), nil
			}
			return v * math.Pow(1000, float64(exp)), nil
		}
	}

	return 0, ErrSyntax
}
