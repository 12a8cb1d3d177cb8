package grammar

import "fmt"

// ActionKind discriminates the Action variants. The zero value means the
// table has no entry.
type ActionKind uint8

const (
	NoAction ActionKind = iota
	ActionShift
	ActionShiftExtra
	ActionShiftRepeat
	ActionReduce
	ActionAccept
	ActionRecover
)

var actionKindNames = [...]string{
	NoAction:          "none",
	ActionShift:       "shift",
	ActionShiftExtra:  "shift-extra",
	ActionShiftRepeat: "shift-repeat",
	ActionReduce:      "reduce",
	ActionAccept:      "accept",
	ActionRecover:     "recover",
}

func (k ActionKind) String() string {
	if int(k) < len(actionKindNames) {
		return actionKindNames[k]
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(k))
}

// Action is one parse table entry. State is meaningful for shifts,
// Symbol and ChildCount for reductions.
type Action struct {
	Kind       ActionKind
	State      StateID
	Symbol     Symbol
	ChildCount uint8
}

func Shift(state StateID) Action {
	return Action{Kind: ActionShift, State: state}
}

func ShiftExtra() Action {
	return Action{Kind: ActionShiftExtra}
}

// ShiftRepeat reduces the left-recursive repeat production sym, which has
// childCount children on the stack, and then shifts the lookahead into state.
func ShiftRepeat(sym Symbol, childCount uint8, state StateID) Action {
	return Action{Kind: ActionShiftRepeat, Symbol: sym, ChildCount: childCount, State: state}
}

func Reduce(sym Symbol, childCount uint8) Action {
	return Action{Kind: ActionReduce, Symbol: sym, ChildCount: childCount}
}

func Accept() Action {
	return Action{Kind: ActionAccept}
}

func Recover() Action {
	return Action{Kind: ActionRecover}
}

// IsValid reports whether the action continues the parse, i.e. it is neither
// missing nor a recovery marker.
func (a Action) IsValid() bool {
	return a.Kind != NoAction && a.Kind != ActionRecover
}

// reduces reports whether the action pops a production off the stack.
func (a Action) reduces() bool {
	return a.Kind == ActionReduce || a.Kind == ActionShiftRepeat
}

func (a Action) String() string {
	switch a.Kind {
	case ActionShift:
		return fmt.Sprintf("shift(%d)", a.State)
	case ActionShiftRepeat:
		return fmt.Sprintf("shift-repeat(%d, %d, %d)", a.Symbol, a.ChildCount, a.State)
	case ActionReduce:
		return fmt.Sprintf("reduce(%d, %d)", a.Symbol, a.ChildCount)
	}
	return a.Kind.String()
}
