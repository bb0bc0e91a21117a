package decoders

import (
	"errors"
	"fmt"
	"time"

	"github.com/buger/jsonparser"
	"github.com/weiihann/decodebench/models"
)

var errMissingKey = errors.New("missing key")

// field maps one source key to a conversion into a field of T.
type field[T any] struct {
	key      string
	optional bool
	set      func(dst *T, value []byte, vt jsonparser.ValueType) error
}

// table is the declarative decoder of one record type: a list of
// fields walked once per object with jsonparser.ObjectEach.
type table[T any] struct {
	name   string
	fields []field[T]
	index  map[string]int
}

func newTable[T any](name string, fields ...field[T]) *table[T] {
	if len(fields) > 64 {
		panic(fmt.Sprintf("table %s: %d fields exceed the 64 field limit", name, len(fields)))
	}

	t := &table[T]{
		name:   name,
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}

	for i, f := range fields {
		if _, dup := t.index[f.key]; dup {
			panic(fmt.Sprintf("table %s: duplicate key %q", name, f.key))
		}

		t.index[f.key] = i
	}

	return t
}

// decode fills dst from the object in data. Unknown keys are skipped;
// absent required keys are an error.
func (t *table[T]) decode(data []byte, dst *T) error {
	var seen uint64

	err := jsonparser.ObjectEach(data, func(key, value []byte, vt jsonparser.ValueType, _ int) error {
		i, ok := t.index[string(key)]
		if !ok {
			return nil
		}

		f := &t.fields[i]

		if vt == jsonparser.Null {
			if f.optional {
				return nil
			}

			return fmt.Errorf("%s.%s: unexpected null", t.name, f.key)
		}

		seen |= 1 << i

		if err := f.set(dst, value, vt); err != nil {
			return fmt.Errorf("%s.%s: %w", t.name, f.key, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	for i, f := range t.fields {
		if !f.optional && seen&(1<<i) == 0 {
			return fmt.Errorf("%s.%s: %w", t.name, f.key, errMissingKey)
		}
	}

	return nil
}

func optional[T any](f field[T]) field[T] {
	f.optional = true
	return f
}

func parseString(value []byte, vt jsonparser.ValueType) (string, error) {
	if vt != jsonparser.String {
		return "", typeError(jsonparser.String, vt)
	}

	return jsonparser.ParseString(value)
}

func parseInt(value []byte, vt jsonparser.ValueType) (int, error) {
	if vt != jsonparser.Number {
		return 0, typeError(jsonparser.Number, vt)
	}

	n, err := jsonparser.ParseInt(value)

	return int(n), err
}

func strField[T any](key string, at func(*T) *string) field[T] {
	return field[T]{key: key, set: func(dst *T, value []byte, vt jsonparser.ValueType) error {
		s, err := parseString(value, vt)
		*at(dst) = s

		return err
	}}
}

func optStrField[T any](key string, at func(*T) **string) field[T] {
	return optional(field[T]{key: key, set: func(dst *T, value []byte, vt jsonparser.ValueType) error {
		s, err := parseString(value, vt)
		if err != nil {
			return err
		}

		*at(dst) = &s

		return nil
	}})
}

func intField[T any](key string, at func(*T) *int) field[T] {
	return field[T]{key: key, set: func(dst *T, value []byte, vt jsonparser.ValueType) error {
		n, err := parseInt(value, vt)
		*at(dst) = n

		return err
	}}
}

func optIntField[T any](key string, at func(*T) **int) field[T] {
	return optional(field[T]{key: key, set: func(dst *T, value []byte, vt jsonparser.ValueType) error {
		n, err := parseInt(value, vt)
		if err != nil {
			return err
		}

		*at(dst) = &n

		return nil
	}})
}

func boolField[T any](key string, at func(*T) *bool) field[T] {
	return field[T]{key: key, set: func(dst *T, value []byte, vt jsonparser.ValueType) error {
		if vt != jsonparser.Boolean {
			return typeError(jsonparser.Boolean, vt)
		}

		b, err := jsonparser.ParseBoolean(value)
		*at(dst) = b

		return err
	}}
}

func urlField[T any](key string, at func(*T) *models.URL) field[T] {
	return field[T]{key: key, set: func(dst *T, value []byte, vt jsonparser.ValueType) error {
		s, err := parseString(value, vt)
		if err != nil {
			return err
		}

		return at(dst).UnmarshalText([]byte(s))
	}}
}

func timeField[T any](opts *Options, key string, at func(*T) *time.Time) field[T] {
	return field[T]{key: key, set: func(dst *T, value []byte, vt jsonparser.ValueType) error {
		s, err := parseString(value, vt)
		if err != nil {
			return err
		}

		*at(dst), err = opts.parseTime(s)

		return err
	}}
}

func optTimeField[T any](opts *Options, key string, at func(*T) **time.Time) field[T] {
	return optional(field[T]{key: key, set: func(dst *T, value []byte, vt jsonparser.ValueType) error {
		s, err := parseString(value, vt)
		if err != nil {
			return err
		}

		t, err := opts.parseTime(s)
		if err != nil {
			return err
		}

		*at(dst) = &t

		return nil
	}})
}

func objectField[T, U any](key string, sub *table[U], at func(*T) *U) field[T] {
	return field[T]{key: key, set: func(dst *T, value []byte, vt jsonparser.ValueType) error {
		if vt != jsonparser.Object {
			return typeError(jsonparser.Object, vt)
		}

		return sub.decode(value, at(dst))
	}}
}

func optObjectField[T, U any](key string, sub *table[U], at func(*T) **U) field[T] {
	return optional(field[T]{key: key, set: func(dst *T, value []byte, vt jsonparser.ValueType) error {
		if vt != jsonparser.Object {
			return typeError(jsonparser.Object, vt)
		}

		u := new(U)
		if err := sub.decode(value, u); err != nil {
			return err
		}

		*at(dst) = u

		return nil
	}})
}

// listField decodes an array whose elements are converted by elem.
func listField[T, U any](
	key string,
	elem func(value []byte, vt jsonparser.ValueType) (U, error),
	at func(*T) *[]U,
) field[T] {
	return field[T]{key: key, set: func(dst *T, value []byte, vt jsonparser.ValueType) error {
		if vt != jsonparser.Array {
			return typeError(jsonparser.Array, vt)
		}

		list := at(dst)

		var elemErr error

		_, err := jsonparser.ArrayEach(value, func(v []byte, evt jsonparser.ValueType, _ int, err error) {
			if elemErr != nil {
				return
			}

			if err != nil {
				elemErr = err
				return
			}

			u, err := elem(v, evt)
			if err != nil {
				elemErr = fmt.Errorf("[%d]: %w", len(*list), err)
				return
			}

			*list = append(*list, u)
		})
		if err != nil {
			return err
		}

		return elemErr
	}}
}

// records adapts a table to a listField element converter.
func records[U any](sub *table[U]) func([]byte, jsonparser.ValueType) (U, error) {
	return func(value []byte, vt jsonparser.ValueType) (U, error) {
		var u U
		if vt != jsonparser.Object {
			return u, typeError(jsonparser.Object, vt)
		}

		err := sub.decode(value, &u)

		return u, err
	}
}
