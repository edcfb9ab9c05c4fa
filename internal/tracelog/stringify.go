package tracelog

import "fmt"

// stringify renders a field value. A panic raised by the value's own
// formatting methods falls back to the %#v rendering.
func stringify(v any) (s string) {
	defer func() {
		if recover() != nil {
			s = debugString(v)
		}
	}()

	switch val := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return val
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func debugString(v any) (s string) {
	defer func() {
		if recover() != nil {
			s = fmt.Sprintf("<%T>", v)
		}
	}()
	return fmt.Sprintf("%#v", v)
}
