// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// Result holds the decoded value and the unified CUE value it came from.
// Unified is kept for callers that need what Go decoding loses, such as
// struct field order.
type Result[T any] struct {
	Value   T
	Unified cue.Value
}

// ParseAndDecode compiles schema, unifies the definition at schemaPath with
// data, validates the result and decodes it into T.
//
// data may be CUE or JSON; JSON is valid CUE.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*Result[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.maxFileSize > 0 && int64(len(data)) > o.maxFileSize {
		return nil, fmt.Errorf("%sinput size %d bytes exceeds maximum of %d bytes", prefix(o.filename), len(data), o.maxFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema, cue.Filename("schema.cue"))
	if err := schemaValue.Err(); err != nil {
		return nil, fmt.Errorf("internal error: compile schema: %w", err)
	}
	def := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("internal error: schema path %s: %w", schemaPath, err)
	}

	filename := o.filename
	if filename == "" {
		filename = "input.cue"
	}
	dataValue := ctx.CompileBytes(data, cue.Filename(filename))
	if err := dataValue.Err(); err != nil {
		return nil, fmt.Errorf("%sparse: %s", prefix(o.filename), details(err))
	}

	unified := def.Unify(dataValue)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return nil, fmt.Errorf("%svalidate: %s", prefix(o.filename), details(err))
	}

	var out T
	if err := unified.Decode(&out); err != nil {
		return nil, fmt.Errorf("%sdecode: %s", prefix(o.filename), details(err))
	}

	return &Result[T]{Value: out, Unified: unified}, nil
}

// ParseAndDecodeString is ParseAndDecode with a string schema.
func ParseAndDecodeString[T any](schema string, data []byte, schemaPath string, opts ...Option) (*Result[T], error) {
	return ParseAndDecode[T]([]byte(schema), data, schemaPath, opts...)
}

// details flattens a CUE error list into one message with positions.
func details(err error) string {
	return cueerrors.Details(err, nil)
}

func prefix(filename string) string {
	if filename == "" {
		return ""
	}
	return filename + ": "
}
