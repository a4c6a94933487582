// Package options provides the functional option type used by fixture constructors.
package options

// Option is applied to a value of type T while it is being constructed.
// Example:
// ```
//
//	type loggerOpt struct{ logger zerolog.Logger }
//	func (o *loggerOpt) Apply(f *Fixture) {
//		f.logger = o.logger
//	}
//	func (o *loggerOpt) OptionName() string {
//		return "logger"
//	}
//
// ```
type Option[T any] interface {
	Apply(*T)
	OptionName() string
}

// ApplyOptions applies opts to t in order. Nil options are ignored; a later option of the same name wins.
func ApplyOptions[T any](t *T, opts ...Option[T]) {
	for _, o := range opts {
		if o == nil {
			continue
		}
		o.Apply(t)
	}
}

// Func adapts a plain function into an Option.
func Func[T any](name string, fn func(*T)) Option[T] {
	return &funcOpt[T]{name: name, fn: fn}
}

type funcOpt[T any] struct {
	name string
	fn   func(*T)
}

func (o *funcOpt[T]) Apply(t *T) { o.fn(t) }

func (o *funcOpt[T]) OptionName() string { return o.name }
