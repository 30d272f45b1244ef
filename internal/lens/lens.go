package lens

import "fmt"

// MissingFieldError reports a lens whose series is absent.
type MissingFieldError struct {
	Lens  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("lens %q: missing series %q", e.Lens, e.Field)
}

// Series returns the named series and whether it is present.
// Unknown field names report false.
func (l *Lens) Series(field string) ([]float64, bool) {
	var s []float64
	switch field {
	case FieldTemp:
		s = l.Temp
	case FieldPrecip:
		s = l.Precip
	case FieldAgri:
		s = l.Agri
	default:
		return nil, false
	}
	return s, s != nil
}

// Lengths returns the series lengths in reporting order.
func (l *Lens) Lengths() [3]int {
	return [3]int{len(l.Temp), len(l.Precip), len(l.Agri)}
}

// Validate fails on the first absent series, checked in reporting order.
func (l *Lens) Validate() error {
	for _, f := range Fields {
		if _, ok := l.Series(f); !ok {
			return &MissingFieldError{Lens: l.Name, Field: f}
		}
	}
	return nil
}

// Clone returns a deep copy. Absent series stay absent.
func (l *Lens) Clone() Lens {
	return Lens{
		Name:   l.Name,
		Temp:   cloneSeries(l.Temp),
		Precip: cloneSeries(l.Precip),
		Agri:   cloneSeries(l.Agri),
	}
}

func cloneSeries(s []float64) []float64 {
	if s == nil {
		return nil
	}
	out := make([]float64, len(s))
	copy(out, s)
	return out
}
