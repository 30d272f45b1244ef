package lens

// Series field names, in reporting order.
const (
	FieldTemp   = "temp"
	FieldPrecip = "precip"
	FieldAgri   = "agri"
)

// Fields lists the series of a lens in the order they are reported.
var Fields = []string{FieldTemp, FieldPrecip, FieldAgri}

// Manager defines the interface for the named lenses held by the application
type Manager interface {
	// Get returns a copy of the lens registered under name
	Get(name string) (Lens, bool)

	// Set registers or replaces a lens under its Name
	Set(l Lens)

	// Names returns the registered lens names in sorted order
	Names() []string
}

// Lens is a named view over three parallel numeric series.
// A nil series is absent; an empty non-nil series has length zero.
type Lens struct {
	Name   string    `json:"name,omitempty" yaml:"name,omitempty"`
	Temp   []float64 `json:"temp" yaml:"temp"`
	Precip []float64 `json:"precip" yaml:"precip"`
	Agri   []float64 `json:"agri" yaml:"agri"`
}
