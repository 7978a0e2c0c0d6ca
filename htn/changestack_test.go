package htn

import "testing"

func TestChangeStackPushTop(t *testing.T) {
	cs := newChangeStack([]string{"hp"})

	if _, ok := cs.top("hp"); ok {
		t.Fatal("expected empty stack to have no top")
	}

	cs.push("hp", change{scope: ScopePlanOnly, value: 10})
	cs.push("hp", change{scope: ScopePermanent, value: 20})

	top, ok := cs.top("hp")
	if !ok || top.value != 20 {
		t.Errorf("expected top value 20, got %v ok=%v", top.value, ok)
	}
	if cs.depth("hp") != 2 {
		t.Errorf("expected depth 2, got %d", cs.depth("hp"))
	}
}

func TestChangeStackTrimTo(t *testing.T) {
	cs := newChangeStack([]string{"hp"})
	cs.push("hp", change{value: 1})
	cs.push("hp", change{value: 2})
	cs.push("hp", change{value: 3})

	cs.trimTo(map[string]int{"hp": 1})

	top, ok := cs.top("hp")
	if !ok || top.value != 1 {
		t.Errorf("expected trim to leave value 1 on top, got %v", top.value)
	}
}

func TestChangeStackTrimNonPermanent(t *testing.T) {
	cs := newChangeStack([]string{"hp"})
	cs.push("hp", change{scope: ScopePlanOnly, value: 1})
	cs.push("hp", change{scope: ScopePermanent, value: 2})
	cs.push("hp", change{scope: ScopePlanAndExecute, value: 3})

	cs.trimNonPermanent()

	if cs.depth("hp") != 1 {
		t.Fatalf("expected exactly one surviving entry, got %d", cs.depth("hp"))
	}
	top, _ := cs.top("hp")
	if top.value != 2 {
		t.Errorf("expected the surviving entry to be the Permanent one, got %v", top.value)
	}
}

func TestChangeStackClearAll(t *testing.T) {
	cs := newChangeStack([]string{"hp", "mp"})
	cs.push("hp", change{value: 1})
	cs.push("mp", change{value: 2})

	cs.clearAll()

	if cs.depth("hp") != 0 || cs.depth("mp") != 0 {
		t.Error("expected clearAll to empty every key")
	}
}
