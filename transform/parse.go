// SPDX-License-Identifier: MIT

package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ParseK converts a loosely typed k (config value, flag, JSON number) into a
// cluster count. nil means "omitted" and yields DefaultK. Booleans,
// non-integral floats, non-numeric strings and values ≤ 0 fail with
// ErrInvalidParameter.
func ParseK(v any) (int, error) {
	var (
		k   int
		err error
	)
	switch t := v.(type) {
	case nil:
		return DefaultK, nil
	case bool:
		return 0, invalidK(v)
	case float64:
		k, err = integral(t)
	case float32:
		k, err = integral(float64(t))
	case string:
		k, err = strconv.Atoi(strings.TrimSpace(t))
	default:
		k, err = cast.ToIntE(v)
	}
	if err != nil || k <= 0 {
		return 0, invalidK(v)
	}
	return k, nil
}

func integral(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, strconv.ErrSyntax
	}
	return int(f), nil
}

func invalidK(v any) error {
	return fmt.Errorf("k=%#v must be a positive integer: %w", v, ErrInvalidParameter)
}
