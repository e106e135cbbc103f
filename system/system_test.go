package system

import (
	"slices"
	"strings"
	"testing"

	"github.com/lixenwraith/cadence/message"
	"github.com/lixenwraith/cadence/resource"
	"github.com/lixenwraith/cadence/state"
)

type position struct {
	X, Y int
}

type velocity struct {
	DX, DY int
}

type window struct {
	resource.Local
	Frames int
}

type bump struct {
	Amount int
}

func newTestState() *state.State {
	s := state.New()
	resource.Insert(s.Resources(), position{})
	resource.Insert(s.Resources(), velocity{DX: 1, DY: 2})
	resource.InsertLocal(s.LocalResources(), window{})
	message.Register[bump](s.Messages())
	return s
}

func integrate(pos ReM[position], vel Re[velocity]) {
	pos.Get().X += vel.Get().DX
	pos.Get().Y += vel.Get().DY
}

func TestFunc0Runs(t *testing.T) {
	calls := 0
	sys := Func0(func() { calls++ })

	if err := sys.Run(state.New()); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestFunc2MutatesResource(t *testing.T) {
	s := newTestState()
	sys := Func2(integrate)

	for i := 0; i < 3; i++ {
		if err := sys.Run(s); err != nil {
			t.Fatalf("Run %d error: %v", i, err)
		}
	}

	pos := resource.Fetch[position](s.Resources())
	if pos.X != 3 || pos.Y != 6 {
		t.Errorf("position = %+v, want {3 6}", *pos)
	}
}

func TestMissingResourceSkips(t *testing.T) {
	s := state.New()
	resource.Insert(s.Resources(), position{})

	calls := 0
	sys := Func2(func(pos ReM[position], vel Re[velocity]) { calls++ })

	for i := 0; i < 5; i++ {
		err := sys.Run(s)
		if !IsMissing(err) {
			t.Fatalf("Run %d: expected missing skip, got %v", i, err)
		}
	}
	if calls != 0 {
		t.Errorf("System ran %d times without its resource", calls)
	}

	resource.Insert(s.Resources(), velocity{DX: 1})
	if err := sys.Run(s); err != nil {
		t.Fatalf("Run after insert: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d after insert, want 1", calls)
	}
}

func TestMissingMessageTypeSkips(t *testing.T) {
	s := state.New()
	calls := 0
	sys := Func1(func(m Msg[bump]) { calls++ })

	if err := sys.Run(s); !IsMissing(err) {
		t.Errorf("Expected missing skip, got %v", err)
	}
	if calls != 0 {
		t.Errorf("calls = %d", calls)
	}
}

func TestMissingLocalResourceSkips(t *testing.T) {
	s := state.New()
	sys := Func1(func(w LoReM[window]) { t.Error("must not run") })

	if err := sys.Run(s); !IsMissing(err) {
		t.Errorf("Expected missing skip, got %v", err)
	}
}

func TestAliasingConflictSkips(t *testing.T) {
	s := newTestState()

	tests := []struct {
		name string
		sys  System
	}{
		{"exclusive and shared same resource", Func2(func(a ReM[position], b Re[position]) { t.Error("must not run") })},
		{"two exclusive same resource", Func2(func(a ReM[position], b ReM[position]) { t.Error("must not run") })},
		{"resource all with single", Func2(func(all ReAll, p Re[position]) { t.Error("must not run") })},
		{"local exclusive and shared", Func2(func(a LoReM[window], b LoRe[window]) { t.Error("must not run") })},
		{"local all with single", Func2(func(a LoRe[window], all LoReAll) { t.Error("must not run") })},
		{"message exclusive and shared", Func2(func(a MsgM[bump], b Msg[bump]) { t.Error("must not run") })},
		{"message all with single", Func2(func(all MsgAll, b Msg[bump]) { t.Error("must not run") })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sys.Run(s)
			if !IsConflict(err) {
				t.Errorf("Expected aliasing conflict, got %v", err)
			}
		})
	}
}

func TestSharedBorrowsCoexist(t *testing.T) {
	s := newTestState()
	ran := false
	sys := Func3(func(a Re[position], b Re[position], c Msg[bump]) {
		ran = a.Get() == b.Get()
	})

	if err := sys.Run(s); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !ran {
		t.Error("Expected both shared handles to point at the same resource")
	}
}

func TestLedgerResetBetweenCalls(t *testing.T) {
	s := newTestState()
	sys := Func1(func(p ReM[position]) { p.Get().X++ })

	for i := 0; i < 3; i++ {
		if err := sys.Run(s); err != nil {
			t.Fatalf("Run %d error: %v", i, err)
		}
	}
	if got := resource.Fetch[position](s.Resources()).X; got != 3 {
		t.Errorf("X = %d, want 3", got)
	}
}

func TestMessageParams(t *testing.T) {
	s := newTestState()

	send := Func1(func(m MsgM[bump]) {
		m.Send(bump{Amount: 1})
		m.Send(bump{Amount: 2})
	})
	var seen []int
	read := Func1(func(m Msg[bump]) {
		for b := range m.IterPrevious() {
			seen = append(seen, b.Amount)
		}
	})
	swap := Func1(func(all MsgAll) { all.SwapAll() })

	if err := send.Run(s); err != nil {
		t.Fatal(err)
	}
	if err := swap.Run(s); err != nil {
		t.Fatal(err)
	}
	if err := read.Run(s); err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(seen, []int{1, 2}) {
		t.Errorf("seen = %v, want [1 2]", seen)
	}
}

func TestAllHandlesExposeStorages(t *testing.T) {
	s := newTestState()
	sys := Func3(func(re ReAll, lo LoReAll, msg MsgAll) {
		if re.Get() != s.Resources() || lo.Get() != s.LocalResources() || msg.Get() != s.Messages() {
			t.Error("All handles returned foreign storages")
		}
	})
	if err := sys.Run(s); err != nil {
		t.Fatal(err)
	}
}

func TestFunc8ResolvesEveryParam(t *testing.T) {
	s := newTestState()
	type a struct{ V int }
	type b struct{ V int }
	type c struct{ V int }
	resource.Insert(s.Resources(), a{1})
	resource.Insert(s.Resources(), b{2})
	resource.Insert(s.Resources(), c{3})

	sum := 0
	sys := Func8(func(p1 Re[a], p2 Re[b], p3 Re[c], p4 ReM[position], p5 Re[velocity], p6 LoReM[window], p7 MsgM[bump], p8 Re[a]) {
		sum = p1.Get().V + p2.Get().V + p3.Get().V
		p6.Get().Frames++
		p7.Send(bump{})
	})

	if err := sys.Run(s); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if sum != 6 {
		t.Errorf("sum = %d, want 6", sum)
	}
	if resource.FetchLocal[window](s.LocalResources()).Frames != 1 {
		t.Error("Local resource not mutated")
	}
}

func TestSystemNames(t *testing.T) {
	sys := Func2(integrate)
	if !strings.HasSuffix(sys.Name(), "integrate") {
		t.Errorf("Name = %q, want suffix integrate", sys.Name())
	}

	renamed := Named("physics", sys)
	if renamed.Name() != "physics" {
		t.Errorf("Named = %q", renamed.Name())
	}
	if err := renamed.Run(newTestState()); err != nil {
		t.Errorf("Named system did not delegate Run: %v", err)
	}
}
