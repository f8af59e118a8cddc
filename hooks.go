package templet

// hookTaker is satisfied by any model that embeds Hooks. The method is
// unexported so only models carrying a templet-owned Hooks value can
// participate in hook firing.
type hookTaker[O any] interface {
	takeHooks() []func(O)
}

// Hooks carries deferred callbacks that fire once the embedding
// model's output has been defined. Embed it by value in a template
// model:
//
//	//templet:template output=*widget.Box
//	type BoxTemplate struct {
//		templet.Hooks[*widget.Box]
//		Padding int
//	}
//
// Hooks is the substrate for parent/child injection: a parent's
// Child() method returns a child model default state with an OnCreate
// callback pre-registered that attaches the built child to the parent.
type Hooks[O any] struct {
	deferred []func(O)
}

// OnCreate registers fn to run when the model's output is created.
// Hooks run in registration order, after Define and before any
// continuation observes the output. Each registered hook fires at most
// once per invocation of the construction protocol.
func (h *Hooks[O]) OnCreate(fn func(O)) {
	h.deferred = append(h.deferred, fn)
}

func (h Hooks[O]) takeHooks() []func(O) {
	return h.deferred
}
