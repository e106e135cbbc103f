package system

import (
	"iter"

	"github.com/lixenwraith/cadence/core"
	"github.com/lixenwraith/cadence/message"
	"github.com/lixenwraith/cadence/resource"
	"github.com/lixenwraith/cadence/state"
)

// Param is a capability wrapper a system function can declare
// The set is closed: only the wrappers in this package implement it
type Param interface {
	resolve(r *resolver) error
}

// resolver binds params for one system call
type resolver struct {
	state  *state.State
	ledger *Ledger
}

func (r *resolver) resolveAll(params ...Param) error {
	for _, p := range params {
		if err := p.resolve(r); err != nil {
			return err
		}
	}
	return nil
}

func missing(ns Namespace, typeName string) error {
	return core.NewError(core.KindMissingResource, typeName, "%s not available for system parameter", ns)
}

// === Resources ===

// Re is a shared borrow of resource T; the pointee must not be mutated
type Re[T any] struct {
	value *T
}

// Get returns the borrowed resource
func (p Re[T]) Get() *T { return p.value }

func (p *Re[T]) resolve(r *resolver) error {
	key := resource.TypeKey[T]()
	v, ok := resource.Get[T](r.state.Resources())
	if !ok {
		return missing(NamespaceResource, key.String())
	}
	if err := r.ledger.Acquire(NamespaceResource, key, AccessShared); err != nil {
		return err
	}
	p.value = v
	return nil
}

// ReM is an exclusive borrow of resource T
type ReM[T any] struct {
	value *T
}

// Get returns the borrowed resource for mutation
func (p ReM[T]) Get() *T { return p.value }

func (p *ReM[T]) resolve(r *resolver) error {
	key := resource.TypeKey[T]()
	v, ok := resource.Get[T](r.state.Resources())
	if !ok {
		return missing(NamespaceResource, key.String())
	}
	if err := r.ledger.Acquire(NamespaceResource, key, AccessExclusive); err != nil {
		return err
	}
	p.value = v
	return nil
}

// ReAll is an exclusive borrow of the whole shared resource namespace
type ReAll struct {
	storage *resource.Storage
}

// Get returns the resource storage
func (p ReAll) Get() *resource.Storage { return p.storage }

func (p *ReAll) resolve(r *resolver) error {
	if err := r.ledger.AcquireAll(NamespaceResource, AccessExclusive); err != nil {
		return err
	}
	p.storage = r.state.Resources()
	return nil
}

// === Local resources ===

// LoRe is a shared borrow of local resource T
type LoRe[T resource.LocalResource] struct {
	value *T
}

// Get returns the borrowed local resource
func (p LoRe[T]) Get() *T { return p.value }

func (p *LoRe[T]) resolve(r *resolver) error {
	key := resource.TypeKey[T]()
	v, ok := resource.GetLocal[T](r.state.LocalResources())
	if !ok {
		return missing(NamespaceLocal, key.String())
	}
	if err := r.ledger.Acquire(NamespaceLocal, key, AccessShared); err != nil {
		return err
	}
	p.value = v
	return nil
}

// LoReM is an exclusive borrow of local resource T
type LoReM[T resource.LocalResource] struct {
	value *T
}

// Get returns the borrowed local resource for mutation
func (p LoReM[T]) Get() *T { return p.value }

func (p *LoReM[T]) resolve(r *resolver) error {
	key := resource.TypeKey[T]()
	v, ok := resource.GetLocal[T](r.state.LocalResources())
	if !ok {
		return missing(NamespaceLocal, key.String())
	}
	if err := r.ledger.Acquire(NamespaceLocal, key, AccessExclusive); err != nil {
		return err
	}
	p.value = v
	return nil
}

// LoReAll is an exclusive borrow of the whole local namespace
type LoReAll struct {
	storage *resource.LocalStorage
}

// Get returns the local storage
func (p LoReAll) Get() *resource.LocalStorage { return p.storage }

func (p *LoReAll) resolve(r *resolver) error {
	if err := r.ledger.AcquireAll(NamespaceLocal, AccessExclusive); err != nil {
		return err
	}
	p.storage = r.state.LocalResources()
	return nil
}

// === Messages ===

// Msg is a read-only borrow of message queue T
type Msg[T any] struct {
	queue *message.Messages[T]
}

// IterCurrent yields messages sent so far this tick
func (p Msg[T]) IterCurrent() iter.Seq[T] { return p.queue.IterCurrent() }

// IterPrevious yields last tick's messages
func (p Msg[T]) IterPrevious() iter.Seq[T] { return p.queue.IterPrevious() }

// LenCurrent returns the number of messages sent so far this tick
func (p Msg[T]) LenCurrent() int { return p.queue.LenCurrent() }

// LenPrevious returns the number of last tick's messages
func (p Msg[T]) LenPrevious() int { return p.queue.LenPrevious() }

func (p *Msg[T]) resolve(r *resolver) error {
	key := message.TypeKey[T]()
	q, ok := message.Get[T](r.state.Messages())
	if !ok {
		return missing(NamespaceMessage, key.String())
	}
	if err := r.ledger.Acquire(NamespaceMessage, key, AccessShared); err != nil {
		return err
	}
	p.queue = q
	return nil
}

// MsgM is an exclusive borrow of message queue T; it can send
type MsgM[T any] struct {
	queue *message.Messages[T]
}

// Send appends to the current generation
func (p MsgM[T]) Send(msg T) message.ID[T] { return p.queue.Send(msg) }

// IterCurrent yields messages sent so far this tick
func (p MsgM[T]) IterCurrent() iter.Seq[T] { return p.queue.IterCurrent() }

// IterPrevious yields last tick's messages
func (p MsgM[T]) IterPrevious() iter.Seq[T] { return p.queue.IterPrevious() }

// Get returns the underlying queue
func (p MsgM[T]) Get() *message.Messages[T] { return p.queue }

func (p *MsgM[T]) resolve(r *resolver) error {
	key := message.TypeKey[T]()
	q, ok := message.Get[T](r.state.Messages())
	if !ok {
		return missing(NamespaceMessage, key.String())
	}
	if err := r.ledger.Acquire(NamespaceMessage, key, AccessExclusive); err != nil {
		return err
	}
	p.queue = q
	return nil
}

// MsgAll is an exclusive borrow of every message queue
type MsgAll struct {
	storage *message.Storage
}

// Get returns the message storage
func (p MsgAll) Get() *message.Storage { return p.storage }

// SwapAll advances every queue by one generation
func (p MsgAll) SwapAll() { p.storage.SwapAll() }

func (p *MsgAll) resolve(r *resolver) error {
	if err := r.ledger.AcquireAll(NamespaceMessage, AccessExclusive); err != nil {
		return err
	}
	p.storage = r.state.Messages()
	return nil
}
