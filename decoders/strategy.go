// Package decoders implements the decoding strategies compared by the
// benchmark suites. Every strategy turns the same payload into the same
// typed model from package models.
package decoders

import (
	"encoding/json"
	"time"

	"github.com/bytedance/sonic"
	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
	"github.com/weiihann/decodebench/models"
)

// Strategy names, in the order suites register them.
const (
	NameStdlib     = "encoding/json decoding"
	NameGoJSON     = "go-json decoding"
	NameJsoniter   = "jsoniter decoding"
	NameSonic      = "sonic decoding"
	NameJSONParser = "jsonparser decoding"
	NameFieldTable = "field table decoding"
)

// Options is the immutable conversion state shared by the strategies
// that convert scalars themselves. Build it once with DefaultOptions
// and pass it by pointer.
//
// Timestamps are always RFC 3339, the only layout time.Time accepts
// when the tag-based strategies decode it, so the layout is not
// configurable.
type Options struct {
	timeLayout string
}

// DefaultOptions returns RFC 3339 timestamps.
func DefaultOptions() *Options {
	return &Options{timeLayout: time.RFC3339}
}

func (o *Options) parseTime(s string) (time.Time, error) {
	if o == nil || o.timeLayout == "" {
		return time.Parse(time.RFC3339, s)
	}

	return time.Parse(o.timeLayout, s)
}

// Strategy is one named way of decoding a payload into M.
type Strategy[M any] struct {
	Name   string
	Decode func(payload []byte) (M, error)
}

// IndieAppStrategies returns every strategy for the naive payload.
func IndieAppStrategies(opts *Options) []Strategy[models.IndieApp] {
	tables := newTableSet(opts)
	parser := &jsonParser{opts: opts}

	return []Strategy[models.IndieApp]{
		{Name: NameStdlib, Decode: tagged[models.IndieApp](json.Unmarshal)},
		{Name: NameGoJSON, Decode: tagged[models.IndieApp](gojson.Unmarshal)},
		{Name: NameJsoniter, Decode: tagged[models.IndieApp](jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal)},
		{Name: NameSonic, Decode: tagged[models.IndieApp](sonic.ConfigStd.Unmarshal)},
		{Name: NameJSONParser, Decode: parser.IndieApp},
		{Name: NameFieldTable, Decode: tables.IndieApp},
	}
}

// EventStrategies returns every strategy for the GitHub events payload.
func EventStrategies(opts *Options) []Strategy[[]models.Event] {
	tables := newTableSet(opts)
	parser := &jsonParser{opts: opts}

	return []Strategy[[]models.Event]{
		{Name: NameStdlib, Decode: tagged[[]models.Event](json.Unmarshal)},
		{Name: NameGoJSON, Decode: tagged[[]models.Event](gojson.Unmarshal)},
		{Name: NameJsoniter, Decode: tagged[[]models.Event](jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal)},
		{Name: NameSonic, Decode: tagged[[]models.Event](sonic.ConfigStd.Unmarshal)},
		{Name: NameJSONParser, Decode: parser.Events},
		{Name: NameFieldTable, Decode: tables.Events},
	}
}

// tagged decodes through a struct-tag driven Unmarshal function.
func tagged[M any](unmarshal func([]byte, any) error) func([]byte) (M, error) {
	return func(payload []byte) (M, error) {
		var m M
		if err := unmarshal(payload, &m); err != nil {
			var zero M
			return zero, err
		}

		return m, nil
	}
}
