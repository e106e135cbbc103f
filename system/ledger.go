package system

import (
	"reflect"

	"github.com/lixenwraith/cadence/core"
)

// Namespace identifies which storage a borrow targets
type Namespace uint8

const (
	NamespaceResource Namespace = iota
	NamespaceLocal
	NamespaceMessage
)

func (n Namespace) String() string {
	switch n {
	case NamespaceResource:
		return "resource"
	case NamespaceLocal:
		return "local"
	case NamespaceMessage:
		return "message"
	default:
		return "unknown"
	}
}

// Access is the borrow kind recorded in the ledger
type Access uint8

const (
	AccessShared Access = iota
	AccessExclusive
)

func (a Access) String() string {
	if a == AccessExclusive {
		return "exclusive"
	}
	return "shared"
}

// borrowKey with a nil typ covers the whole namespace (the All handles)
type borrowKey struct {
	ns  Namespace
	typ reflect.Type
}

// Ledger records outstanding borrows for one system call
// Shared borrows of the same cell coexist; any exclusive borrow excludes every other borrow of that cell,
// and a namespace-wide borrow overlaps every cell in the namespace
type Ledger struct {
	borrows map[borrowKey]Access
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		borrows: make(map[borrowKey]Access),
	}
}

// Reset releases all borrows; called at the start of every system call
func (l *Ledger) Reset() {
	clear(l.borrows)
}

// Len returns the number of recorded borrows
func (l *Ledger) Len() int {
	return len(l.borrows)
}

// Acquire records a borrow of a single type
func (l *Ledger) Acquire(ns Namespace, typ reflect.Type, access Access) error {
	if held, ok := l.borrows[borrowKey{ns: ns}]; ok && conflicts(held, access) {
		return conflictError(ns, typ, access, held)
	}

	key := borrowKey{ns: ns, typ: typ}
	if held, ok := l.borrows[key]; ok {
		if conflicts(held, access) {
			return conflictError(ns, typ, access, held)
		}
		return nil
	}

	l.borrows[key] = access
	return nil
}

// AcquireAll records a borrow of an entire namespace
func (l *Ledger) AcquireAll(ns Namespace, access Access) error {
	for key, held := range l.borrows {
		if key.ns == ns && conflicts(held, access) {
			return conflictError(ns, key.typ, access, held)
		}
	}

	key := borrowKey{ns: ns}
	if held, ok := l.borrows[key]; !ok || held < access {
		l.borrows[key] = access
	}
	return nil
}

func conflicts(held, requested Access) bool {
	return held == AccessExclusive || requested == AccessExclusive
}

func conflictError(ns Namespace, typ reflect.Type, requested, held Access) error {
	name := "*"
	if typ != nil {
		name = typ.String()
	}
	return core.NewError(core.KindAliasingConflict, name,
		"%s %s borrow overlaps an outstanding %s borrow", requested, ns, held)
}
