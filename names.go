package repr

import (
	"reflect"
	"strconv"
	"strings"
)

// typeName derives the display name of t. Named types use their bare name
// unless qualified is set; unnamed types use their literal form. Import paths
// inside type arguments are reduced to the package name.
func typeName(t reflect.Type, qualified bool) string {
	if t == nil {
		return "nil"
	}
	name := t.Name()
	if qualified || name == "" {
		name = t.String()
	}
	return trimImportPaths(name)
}

// trimImportPaths turns "Box[github.com/acme/geo.Point]" into "Box[geo.Point]".
func trimImportPaths(s string) string {
	if !strings.Contains(s, "/") {
		return s
	}
	out := make([]byte, 0, len(s))
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '/':
			out = out[:start]
		case strings.IndexByte("[], *()", c) >= 0:
			out = append(out, c)
			start = len(out)
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

// identity returns an opaque, process-local token for the storage behind v.
// It is only meaningful for the duration of a render call.
func identity(v reflect.Value) string {
	var addr uintptr
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Pointer, reflect.UnsafePointer, reflect.Slice:
		addr = v.Pointer()
	default:
		addr = addressable(v).UnsafeAddr()
	}
	return hex(addr)
}

func hex(addr uintptr) string {
	return "0x" + strconv.FormatUint(uint64(addr), 16)
}

// addressable returns v itself when it can be addressed, otherwise a copy
// that can.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c
}

// receiver returns v as an interface value whose method set includes the
// methods declared on *T.
func receiver(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		return v.Interface()
	}
	return addressable(v).Addr().Interface()
}

// method returns the named method bound to v, falling back to the pointer
// method set.
func method(v reflect.Value, name string) reflect.Value {
	if m := v.MethodByName(name); m.IsValid() {
		return m
	}
	return addressable(v).Addr().MethodByName(name)
}
