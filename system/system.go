package system

import (
	"errors"
	"reflect"
	"runtime"
	"strings"

	"github.com/lixenwraith/cadence/core"
	"github.com/lixenwraith/cadence/state"
)

// System is a type-erased callable over the state
// Run returns nil when the function was invoked, or an error describing why it was skipped
type System interface {
	Name() string
	Run(s *state.State) error
}

// IsMissing reports a skip caused by an absent resource, local resource or message type
func IsMissing(err error) bool {
	return errors.Is(err, core.ErrMissingResource)
}

// IsConflict reports a skip caused by two params aliasing the same cell
func IsConflict(err error) bool {
	return errors.Is(err, core.ErrAliasingConflict)
}

// funcSystem adapts a plain function with injected params
// The ledger is owned by the system and reused across calls
type funcSystem struct {
	name   string
	ledger *Ledger
	call   func(r *resolver) error
}

func newFuncSystem(fn any, call func(r *resolver) error) *funcSystem {
	return &funcSystem{
		name:   funcName(fn),
		ledger: NewLedger(),
		call:   call,
	}
}

func (f *funcSystem) Name() string {
	return f.name
}

func (f *funcSystem) Run(s *state.State) error {
	f.ledger.Reset()
	r := resolver{state: s, ledger: f.ledger}
	return f.call(&r)
}

// named overrides the reported name of a system
type named struct {
	System
	name string
}

func (n named) Name() string {
	return n.name
}

// Named returns sys reporting name in logs and metrics
func Named(name string, sys System) System {
	return named{System: sys, name: name}
}

// funcName derives "pkg.func" from the function pointer
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "<nil>"
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return v.Type().String()
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
