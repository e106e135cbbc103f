// Package resource provides typed singleton storage keyed by Go type identity.
//
// Two namespaces exist. Storage holds shared resources that any system may
// borrow. LocalStorage holds thread-affine values (terminal screens, audio
// devices, clocks backed by OS handles) that must stay on the goroutine that
// drives the app. Local types opt in by embedding the Local marker:
//
//	type Screen struct {
//	    resource.Local
//	    Handle tcell.Screen
//	}
//
//	resource.InsertLocal(locals, Screen{Handle: s})
//	scr := resource.FetchLocal[Screen](locals)
//
// The local functions only accept marked types, and Storage refuses marked
// values, so a local value can never be published into the shared namespace.
//
// Values are boxed once on insert; Get and Fetch return a pointer to the
// stored value, which stays valid until the type is removed or replaced.
package resource
