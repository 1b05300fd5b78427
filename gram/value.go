package gram

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// Kind tags the target type of a switch or positional value. The kind
// table is closed at Build time: every kind referenced by the grammar is
// resolved to its ParseFunc during compilation so the matcher performs no
// dynamic lookup on the hot path.
type Kind string

const (
	KindString   Kind = "string"
	KindInt      Kind = "int"
	KindUint     Kind = "uint"
	KindFloat    Kind = "float"
	KindDuration Kind = "duration"

	// KindPath and KindBytes copy the raw argument verbatim and never
	// fail; they are the destinations for non-UTF-8 arguments.
	KindPath  Kind = "path"
	KindBytes Kind = "bytes"
)

// ParseFunc converts one raw argument into a typed value.
type ParseFunc func(raw string) (any, error)

// text wraps a parser with a UTF-8 validity check. Go argument strings
// carry arbitrary bytes; only textually parsed kinds reject them.
func text(fn ParseFunc) ParseFunc {
	return func(raw string) (any, error) {
		if !utf8.ValidString(raw) {
			return nil, fmt.Errorf("not valid UTF-8")
		}
		return fn(raw)
	}
}

func builtinKinds() map[Kind]ParseFunc {
	return map[Kind]ParseFunc{
		KindString: text(func(raw string) (any, error) {
			return raw, nil
		}),
		KindInt: text(func(raw string) (any, error) {
			v, err := strconv.ParseInt(raw, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("not an integer")
			}
			return v, nil
		}),
		KindUint: text(func(raw string) (any, error) {
			v, err := strconv.ParseUint(raw, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("not an unsigned integer")
			}
			return v, nil
		}),
		KindFloat: text(func(raw string) (any, error) {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("not a number")
			}
			return v, nil
		}),
		KindDuration: text(func(raw string) (any, error) {
			v, err := time.ParseDuration(raw)
			if err != nil {
				return nil, fmt.Errorf("not a duration")
			}
			return v, nil
		}),
		KindPath: func(raw string) (any, error) {
			return raw, nil
		},
		KindBytes: func(raw string) (any, error) {
			return []byte(raw), nil
		},
	}
}
