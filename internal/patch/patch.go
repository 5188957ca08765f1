// Package patch provides a JSON field wrapper that separates "absent"
// from "present but null". Plain pointer fields cannot express the
// difference, and partial updates need it: an absent field leaves the
// stored value alone while an explicit null clears it.
package patch

import (
	"encoding/json"

	"github.com/samber/mo"
)

// Field records whether the payload contained the field at all and,
// when it did, the value or an explicit null. The zero Field is
// "absent".
type Field[T any] struct {
	present bool
	value   mo.Option[T]
}

func Absent[T any]() Field[T] { return Field[T]{} }

func Null[T any]() Field[T] { return Field[T]{present: true, value: mo.None[T]()} }

func Set[T any](v T) Field[T] { return Field[T]{present: true, value: mo.Some(v)} }

// Present reports whether the field appeared in the payload.
func (f Field[T]) Present() bool { return f.present }

// Value is None for an explicit null.
func (f Field[T]) Value() mo.Option[T] { return f.value }

func (f Field[T]) Get() (T, bool) { return f.value.Get() }

// ApplyPtr merges the field onto a nullable destination: present null
// clears it, a present value replaces it, absent leaves it unchanged.
func (f Field[T]) ApplyPtr(dst **T) {
	if !f.present {
		return
	}
	if v, ok := f.value.Get(); ok {
		*dst = &v
	} else {
		*dst = nil
	}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	if string(data) == "null" {
		f.value = mo.None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.value = mo.Some(v)
	return nil
}
