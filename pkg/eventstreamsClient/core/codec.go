package core

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/goccy/go-json"
)

// Field describes how one struct field maps to the wire. The table for a type is
// built once from its `json` and `validate` tags and shared by MarshalModel,
// UnmarshalModel and ValidateStruct, so wire names such as "segment.index.bytes"
// live in exactly one place.
type Field struct {
	Name     string
	WireKey  string
	Required bool
	NonEmpty bool
	Index    []int
	Type     reflect.Type
}

var (
	fieldCache    sync.Map // reflect.Type -> []Field
	requiredCache sync.Map // reflect.Type -> bool

	marshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
)

// FieldsOf returns the descriptor table of a struct type in declaration order.
// Embedded structs without a json name are flattened.
func FieldsOf(t reflect.Type) []Field {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]Field)
	}
	fields := buildFields(t, nil)
	cached, _ := fieldCache.LoadOrStore(t, fields)
	return cached.([]Field)
}

func buildFields(t reflect.Type, prefix []int) []Field {
	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(append([]int{}, prefix...), i)

		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")

		if sf.Anonymous && name == "" && sf.Type.Kind() == reflect.Struct {
			fields = append(fields, buildFields(sf.Type, index)...)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}

		f := Field{
			Name:    sf.Name,
			WireKey: name,
			Index:   index,
			Type:    sf.Type,
		}
		for _, rule := range strings.Split(sf.Tag.Get("validate"), ",") {
			switch rule {
			case "required":
				f.Required = true
			case "nonempty":
				f.NonEmpty = true
			}
		}
		fields = append(fields, f)
	}
	return fields
}

// MarshalModel encodes v as JSON. Nil pointers, slices, maps and interfaces are
// left out of the object entirely; an empty but non-nil slice is kept.
func MarshalModel(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, rv reflect.Value) error {
	if !rv.IsValid() {
		buf.WriteString("null")
		return nil
	}
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			buf.WriteString("null")
			return nil
		}
		return encodeValue(buf, rv.Elem())
	case reflect.Struct:
		if rv.Type().Implements(marshalerType) || reflect.PointerTo(rv.Type()).Implements(marshalerType) {
			return encodeDefault(buf, rv)
		}
		return encodeStruct(buf, rv)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			buf.WriteString("null")
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return encodeDefault(buf, rv)
		}
		buf.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, rv.Index(i)); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return encodeDefault(buf, rv)
	}
}

func encodeStruct(buf *bytes.Buffer, rv reflect.Value) error {
	buf.WriteByte('{')
	first := true
	for _, f := range FieldsOf(rv.Type()) {
		fv := rv.FieldByIndex(f.Index)
		if isAbsent(fv) {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(f.WireKey)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err = encodeValue(buf, fv); err != nil {
			return fmt.Errorf("encoding %s.%s: %w", rv.Type().Name(), f.Name, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeDefault(buf *bytes.Buffer, rv reflect.Value) error {
	b, err := json.Marshal(rv.Interface())
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func isAbsent(fv reflect.Value) bool {
	switch fv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return fv.IsNil()
	}
	return false
}

// UnmarshalModel decodes data into v. Unknown keys are ignored, type mismatches
// fail, and every field tagged `validate:"required"` must be present and not null,
// at any nesting depth.
func UnmarshalModel(data []byte, v interface{}) error {
	t := reflect.TypeOf(v)
	if err := json.Unmarshal(data, v); err != nil {
		return &DecodeError{Model: modelName(t), Err: err}
	}
	if err := checkRequired(data, t, "$"); err != nil {
		return &DecodeError{Model: modelName(t), Err: err}
	}
	return nil
}

func checkRequired(raw []byte, t reflect.Type, path string) error {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if isNull(raw) || !hasRequired(t, map[reflect.Type]bool{}) {
		return nil
	}

	switch t.Kind() {
	case reflect.Struct:
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return err
		}
		for _, f := range FieldsOf(t) {
			val, ok := lookupKey(obj, f.WireKey)
			if !ok || isNull(val) {
				if f.Required {
					return &MissingFieldError{Model: t.Name(), Field: f.WireKey, Path: path + "." + f.WireKey}
				}
				continue
			}
			if err := checkRequired(val, f.Type, path+"."+f.WireKey); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		for i, item := range items {
			if err := checkRequired(item, t.Elem(), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// lookupKey finds key in obj the way the decoder matches struct fields: exact
// match first, then case-insensitive.
func lookupKey(obj map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	if val, ok := obj[key]; ok {
		return val, true
	}
	for k, val := range obj {
		if strings.EqualFold(k, key) {
			return val, true
		}
	}
	return nil, false
}

// hasRequired reports whether t, or anything reachable from it, carries a
// required field. seen guards self-referencing types.
func hasRequired(t reflect.Type, seen map[reflect.Type]bool) bool {
	for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || seen[t] {
		return false
	}
	if cached, ok := requiredCache.Load(t); ok {
		return cached.(bool)
	}
	seen[t] = true

	result := false
	for _, f := range FieldsOf(t) {
		if f.Required || hasRequired(f.Type, seen) {
			result = true
			break
		}
	}
	requiredCache.Store(t, result)
	return result
}

func isNull(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func modelName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Slice {
		return "[]" + modelName(t.Elem())
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}
