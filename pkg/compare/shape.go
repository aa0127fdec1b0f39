package compare

import "reflect"

// Shape is the structural category a value is classified into
// before comparison.
type Shape int

const (
	// Null is an absent value: untyped nil or a nil pointer,
	// interface, map, slice, func or chan.
	Null Shape = iota
	// Scalar is a bool, number, complex, func, chan or unsafe
	// pointer.
	Scalar
	// String is a character sequence. Strings are never
	// decomposed into per-character diffs.
	String
	// Sequence is a slice or array.
	Sequence
	// Map is a key to value associative container.
	Map
	// Set is a map whose element type is the empty struct.
	Set
	// Composite is a struct compared field by field.
	Composite
	// CustomEquatable is a value exposing Equal(T) bool or
	// Equals(T) bool. Structural traversal defers to it.
	CustomEquatable
)

// String returns the lower-case shape name.
func (s Shape) String() string {
	switch s {
	case Null:
		return "null"
	case Scalar:
		return "scalar"
	case String:
		return "string"
	case Sequence:
		return "sequence"
	case Map:
		return "map"
	case Set:
		return "set"
	case Composite:
		return "composite"
	case CustomEquatable:
		return "custom"
	default:
		return "unknown"
	}
}

// identity locates a referenced value. Two reference values with
// equal identities share storage.
type identity struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

func (id identity) valid() bool {
	return id.ptr != 0
}

// Info is the classification of one value. It carries the
// dereferenced value and, for CustomEquatable, the resolved
// equality method so callers never look it up twice.
type Info struct {
	Shape Shape
	Value reflect.Value

	id      identity
	equal   reflect.Value
	equalIn reflect.Type
}

// Type returns the dynamic type of the classified value, or nil
// for untyped nil.
func (i Info) Type() reflect.Type {
	if !i.Value.IsValid() {
		return nil
	}
	return i.Value.Type()
}

// Interface returns the classified value as an interface, or nil
// when it cannot be exposed.
func (i Info) Interface() any {
	return exposed(i.Value)
}

// Classify inspects v and returns its shape. It has no side
// effects.
func Classify(v any) Info {
	return classify(reflect.ValueOf(v))
}

func classify(v reflect.Value) Info {
	return classifyWith(v, true)
}

// classifyWith classifies v. When custom is false equality
// methods are ignored, which yields the structural shape of a
// CustomEquatable value.
func classifyWith(v reflect.Value, custom bool) Info {
	var id identity
	seen := map[uintptr]bool{}

	for {
		if !v.IsValid() {
			return Info{Shape: Null}
		}

		switch v.Kind() {
		case reflect.Interface:
			if v.IsNil() {
				return Info{Shape: Null, Value: v}
			}
			v = v.Elem()
			continue
		case reflect.Ptr, reflect.Map, reflect.Slice,
			reflect.Func, reflect.Chan:
			if v.IsNil() {
				return Info{Shape: Null, Value: v}
			}
		}

		if custom {
			if m, in, ok := equalityMethod(v); ok {
				if !id.valid() {
					id = identityOf(v)
				}
				return Info{
					Shape:   CustomEquatable,
					Value:   v,
					id:      id,
					equal:   m,
					equalIn: in,
				}
			}
		}

		if v.Kind() != reflect.Ptr {
			break
		}

		p := v.Pointer()
		if seen[p] {
			// A pointer chain leading back to itself has no
			// pointee to classify.
			return Info{Shape: Scalar, Value: v, id: identityOf(v)}
		}
		seen[p] = true
		if !id.valid() {
			id = identityOf(v)
		}
		v = v.Elem()
	}

	info := Info{Value: v, id: id}
	switch v.Kind() {
	case reflect.String:
		info.Shape = String
	case reflect.Slice, reflect.Array:
		info.Shape = Sequence
	case reflect.Map:
		if isSetElem(v.Type().Elem()) {
			info.Shape = Set
		} else {
			info.Shape = Map
		}
	case reflect.Struct:
		info.Shape = Composite
	default:
		info.Shape = Scalar
	}

	if !info.id.valid() {
		info.id = identityOf(v)
	}
	return info
}

func isSetElem(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.NumField() == 0
}

func identityOf(v reflect.Value) identity {
	switch v.Kind() {
	case reflect.Ptr, reflect.Map:
		return identity{ptr: v.Pointer(), typ: v.Type()}
	case reflect.Slice:
		return identity{ptr: v.Pointer(), typ: v.Type(), n: v.Len()}
	default:
		return identity{}
	}
}

var equalityMethodNames = []string{"Equal", "Equals"}

// equalityMethod looks for Equal(T) bool or Equals(T) bool where
// the parameter accepts the receiver's own type (or its pointee).
func equalityMethod(v reflect.Value) (reflect.Value, reflect.Type, bool) {
	if v.Kind() == reflect.Interface {
		return reflect.Value{}, nil, false
	}
	t := v.Type()
	for _, name := range equalityMethodNames {
		mt, ok := t.MethodByName(name)
		if !ok || !mt.IsExported() {
			continue
		}
		ft := mt.Type
		// Method types obtained from the type include the receiver.
		if ft.NumIn() != 2 || ft.NumOut() != 1 ||
			ft.Out(0).Kind() != reflect.Bool {
			continue
		}
		in := ft.In(1)
		if !acceptsOwnType(t, in) {
			continue
		}
		return v.MethodByName(name), in, true
	}
	return reflect.Value{}, nil, false
}

func acceptsOwnType(t, in reflect.Type) bool {
	if t.AssignableTo(in) {
		return true
	}
	return t.Kind() == reflect.Ptr && t.Elem().AssignableTo(in)
}

// exposed returns v as an interface when reflect allows it.
func exposed(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	return v.Interface()
}
