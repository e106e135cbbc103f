// Package message implements typed, double-buffered message queues.
//
// Each registered type owns a Messages queue with two generations. Send
// appends to the current generation; once per external tick SwapAll freezes
// current into previous and starts a fresh current. Readers that iterate
// previous see the same complete set for the whole tick, regardless of where
// in the tick they run.
//
//	message.Register[Collision](store)
//	message.Send(store, Collision{A: 1, B: 2})
//	store.SwapAll()
//	for c := range message.Fetch[Collision](store).IterPrevious() {
//	    ...
//	}
package message
