// Package option provides generic functional options.
package option

type (
	// Option mutates a value of type O.
	Option[O any] func(*O)

	// Options is an ordered list of Option.
	Options[O any] []Option[O]
)

// New options instance.
func New[O any](opts []Option[O]) Options[O] {
	return opts
}

// Prepend adds options at the beginning of the list.
// Can be used for adding default options.
func (o Options[O]) Prepend(opts ...Option[O]) Options[O] {
	return append(opts, o...)
}

// Build applies the options to a copy of baseVal.
func (o Options[O]) Build(baseVal O) *O {
	for _, apply := range o {
		if apply != nil {
			apply(&baseVal)
		}
	}

	return &baseVal
}
