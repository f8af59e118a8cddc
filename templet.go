// Package templet is the runtime contract for template models.
//
// A template model is a plain struct describing the parameters of some
// external object (its "output"). The model implements Template by
// providing a Define method that consumes the model by value and
// returns a fully constructed output. The templet code generator
// (cmd/templet) emits the rest: a default-state constructor and the
// construction protocol wired through this package.
//
// The construction protocol has two forms:
//
//   - Terminal form: Create runs Define, fires deferred hooks, and
//     returns the output directly.
//   - Continuation form: Build runs Define, fires deferred hooks, and
//     hands the output to a callback whose return value becomes the
//     result of the whole expression.
//
// Both forms consume the model by value. A model value is single-use:
// every invocation operates on its own copy, and deferred hooks
// registered on that copy fire exactly once, after Define and before
// any continuation observes the output.
package templet

// Template binds a template model to the one output type it
// constructs. Implemented once per model, on the value receiver.
type Template[O any] interface {
	// Define consumes the model and returns a fully constructed
	// output. It must be total over every field combination reachable
	// through the model's public fields; semantic validation of field
	// values belongs inside Define, not on its callers.
	Define() O
}

// Build is the continuation form of the construction protocol.
//
// It defines the output, fires any hooks registered on the model, then
// returns fn(output). Define, the hooks, and fn each run exactly once,
// in that order, synchronously on the calling goroutine.
func Build[O, A any](t Template[O], fn func(O) A) A {
	return fn(create(t))
}

// Create is the terminal form of the construction protocol: the
// continuation form instantiated with the identity continuation.
func Create[O any](t Template[O]) O {
	return create(t)
}

func create[O any](t Template[O]) O {
	out := t.Define()
	if ht, ok := any(t).(hookTaker[O]); ok {
		for _, fn := range ht.takeHooks() {
			fn(out)
		}
	}
	return out
}
