package stage

import (
	"errors"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/cadence/core"
	"github.com/lixenwraith/cadence/resource"
	"github.com/lixenwraith/cadence/state"
	"github.com/lixenwraith/cadence/status"
	"github.com/lixenwraith/cadence/system"
)

type counter struct {
	N int
}

type trace struct {
	Order []string
}

func expectPanicKind(t *testing.T, kind core.Kind, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("Expected panic of kind %s", kind)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, &core.Error{Kind: kind}) {
			t.Fatalf("Panic = %v, want kind %s", r, kind)
		}
	}()
	fn()
}

func record(name string) system.System {
	return system.Named(name, system.Func1(func(tr system.ReM[trace]) {
		tr.Get().Order = append(tr.Get().Order, name)
	}))
}

func TestStageRunsInInsertionOrder(t *testing.T) {
	st := state.New()
	resource.Insert(st.Resources(), trace{})

	s := New("Update")
	for _, name := range []string{"a", "b", "c"} {
		s.AddSystem(record(name))
	}

	report := s.Run(st)
	if report.Ran != 3 {
		t.Errorf("Ran = %d, want 3", report.Ran)
	}
	got := resource.Fetch[trace](st.Resources()).Order
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Order = %v", got)
	}
	if !slices.Equal(s.Systems(), []string{"a", "b", "c"}) {
		t.Errorf("Systems = %v", s.Systems())
	}
}

func TestStageSkipsMissingAndConflicts(t *testing.T) {
	obs, logs := observer.New(zapcore.WarnLevel)
	core.SetLogger(zap.New(obs))
	defer core.SetLogger(nil)

	st := state.New()
	resource.Insert(st.Resources(), counter{})
	reg := status.NewRegistry()
	resource.Insert(st.Resources(), *reg)

	s := New("Update")
	s.AddSystem(system.Func1(func(c system.ReM[counter]) { c.Get().N++ }))
	s.AddSystem(system.Func1(func(tr system.Re[trace]) { t.Error("must not run without trace") }))
	s.AddSystem(system.Named("aliased", system.Func2(func(a system.ReM[counter], b system.Re[counter]) {
		t.Error("must not run with aliasing params")
	})))
	s.AddSystem(system.Func1(func(c system.ReM[counter]) { c.Get().N++ }))

	report := s.Run(st)
	want := RunReport{Ran: 2, Skipped: 1, Conflicts: 1}
	if report != want {
		t.Errorf("report = %+v, want %+v", report, want)
	}
	if got := resource.Fetch[counter](st.Resources()).N; got != 2 {
		t.Errorf("N = %d, want 2", got)
	}

	if logs.Len() != 1 {
		t.Fatalf("warn logs = %d, want 1", logs.Len())
	}
	entry := logs.All()[0]
	if entry.ContextMap()["system"] != "aliased" {
		t.Errorf("logged system = %v", entry.ContextMap()["system"])
	}

	stored := resource.Fetch[status.Registry](st.Resources())
	if stored.Count(status.SystemRan) != 2 || stored.Count(status.SystemSkipped) != 1 || stored.Count(status.SystemConflicts) != 1 {
		t.Errorf("counters = %v", stored.Snapshot())
	}
}

func TestStageFreeze(t *testing.T) {
	s := New("First")
	s.AddSystem(system.Func0(func() {}))
	s.Freeze()

	if !s.Frozen() {
		t.Error("Frozen = false after Freeze")
	}
	expectPanicKind(t, core.KindFrozenStage, func() {
		s.AddSystem(system.Func0(func() {}))
	})
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestStagesAddGet(t *testing.T) {
	stages := NewStages()
	update := New("Update")
	stages.Add(Update{}, update)

	got, ok := stages.Get(Update{})
	if !ok || got != update {
		t.Errorf("Get(Update) = %v, %v", got, ok)
	}
	if byID, ok := stages.GetByID(IDFor[Update]()); !ok || byID != update {
		t.Error("GetByID did not find Update")
	}
	if _, ok := stages.Get(PreUpdate{}); ok {
		t.Error("Get(PreUpdate) found a stage that was never added")
	}

	replacement := New("Update2")
	stages.Add(Update{}, replacement)
	if stages.MustGet(Update{}) != replacement {
		t.Error("Add did not overwrite")
	}
	if stages.Len() != 1 {
		t.Errorf("Len = %d, want 1", stages.Len())
	}
}

func TestStagesMustGetMissing(t *testing.T) {
	stages := NewStages()
	expectPanicKind(t, core.KindMissingStage, func() {
		stages.MustGet(FixedUpdate{})
	})
}

func TestStagesRunTagsOrder(t *testing.T) {
	st := state.New()
	resource.Insert(st.Resources(), trace{})

	stages := NewStages()
	for _, tag := range DefaultTags() {
		s := New(tag.StageName())
		s.AddSystem(record(tag.StageName()))
		stages.Add(tag, s)
	}

	report := stages.RunTags(st, MainTags...)
	if report.Ran != 4 {
		t.Errorf("Ran = %d, want 4", report.Ran)
	}
	got := resource.Fetch[trace](st.Resources()).Order
	want := []string{"First", "PreUpdate", "Update", "PostUpdate"}
	if !slices.Equal(got, want) {
		t.Errorf("Order = %v, want %v", got, want)
	}
}

func TestStagesFreezeAll(t *testing.T) {
	stages := NewStages()
	for _, tag := range DefaultTags() {
		stages.Add(tag, New(tag.StageName()))
	}
	stages.Freeze()

	for _, tag := range DefaultTags() {
		if !stages.MustGet(tag).Frozen() {
			t.Errorf("%s not frozen", tag.StageName())
		}
	}
}

func TestDefaultTagsDistinct(t *testing.T) {
	seen := make(map[ID]bool)
	for _, tag := range DefaultTags() {
		id := IDOf(tag)
		if seen[id] {
			t.Errorf("Duplicate tag %s", tag.StageName())
		}
		seen[id] = true
	}
	if len(seen) != 12 {
		t.Errorf("len = %d, want 12", len(seen))
	}
}
