package classifier

import "fmt"

// Destination is the backend a request is routed to.
type Destination int

const (
	// Proxy serves queries against tag-addressable recent state.
	Proxy Destination = iota
	// Tracer reconstructs historical state and traces execution.
	Tracer
)

// String returns the destination name as used in logs and metrics.
func (d Destination) String() string {
	switch d {
	case Proxy:
		return "proxy"
	case Tracer:
		return "tracer"
	default:
		return fmt.Sprintf("destination(%d)", int(d))
	}
}

// Path returns the named internal route of the destination.
func (d Destination) Path() string {
	return "/" + d.String()
}

// Destinations lists every destination, in declaration order.
func Destinations() []Destination {
	return []Destination{Proxy, Tracer}
}

// ParseDestination resolves a destination name.
func ParseDestination(name string) (Destination, error) {
	for _, d := range Destinations() {
		if d.String() == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown destination %q", name)
}
