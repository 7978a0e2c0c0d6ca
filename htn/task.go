package htn

// Kind tags the concrete variant behind the Task interface, standing in for
// the virtual-dispatch hierarchy a class-based HTN implementation would use.
type Kind int

const (
	KindPrimitive Kind = iota
	KindSelector
	KindSequence
	KindUtilitySelector
	KindGoapSequence
	KindSlot
	KindPausePlan
)

// String renders a Kind for debug traces and error messages.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindSelector:
		return "Selector"
	case KindSequence:
		return "Sequence"
	case KindUtilitySelector:
		return "UtilitySelector"
	case KindGoapSequence:
		return "GoapSequence"
	case KindSlot:
		return "Slot"
	case KindPausePlan:
		return "PausePlan"
	default:
		return "Unknown"
	}
}

// Task is the common interface over every node in a domain tree: primitive
// leaves, the four compound decomposer tags, Slots, and the PausePlan
// marker. Kind reports which concrete type is behind the interface so
// decomposition can dispatch without a type-switch on every call site.
type Task interface {
	Name() string
	Kind() Kind
	Parent() Task
	setParent(Task)
}

// isCompound reports whether a Kind decomposes into children, as opposed to
// being a primitive leaf, a Slot, or the PausePlan marker.
func isCompound(k Kind) bool {
	switch k {
	case KindSelector, KindSequence, KindUtilitySelector, KindGoapSequence:
		return true
	default:
		return false
	}
}

// baseTask carries the fields every Task variant shares: its debug name and
// a back-pointer to whatever compound task owns it (nil for a domain root).
type baseTask struct {
	name   string
	parent Task
}

func (t *baseTask) Name() string {
	return t.name
}

func (t *baseTask) Parent() Task {
	return t.parent
}

func (t *baseTask) setParent(p Task) {
	t.parent = p
}
