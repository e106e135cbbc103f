// Package system turns plain functions into runnable systems with injected parameters.
//
// A system function declares what it borrows through its parameter types:
//
//	Re[T]    shared resource         ReM[T]    exclusive resource
//	LoRe[T]  shared local resource   LoReM[T]  exclusive local resource
//	Msg[T]   read-only messages      MsgM[T]   messages, can send
//	ReAll    every resource          LoReAll   every local resource
//	MsgAll   every message queue
//
// FuncN wraps a function with N such parameters:
//
//	func move(pos system.ReM[Position], dt system.Re[clock.MonotonicTime]) { ... }
//	app.AddSystem(stage.FixedUpdate{}, system.Func2(move))
//
// Before each call every parameter is resolved against the state. When a
// resource or message type is absent the call is skipped for that tick and
// Run reports it through IsMissing; systems can therefore be registered
// before the plugin that inserts their resources has finished setup.
//
// Resolution goes through a per-call Ledger. Two parameters that would alias
// the same cell with at least one exclusive borrow (ReM[T] with Re[T], or
// ReAll with anything in the resource namespace) never both resolve; the
// call is skipped and Run reports IsConflict.
package system
