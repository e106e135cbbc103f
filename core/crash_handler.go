package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"

	"go.uber.org/zap"
)

// CrashHandler receives the recovered value of a panicking background goroutine
type CrashHandler func(r any)

var crashHandler atomic.Pointer[CrashHandler]

// SetCrashHandler installs the handler invoked by Go on panic
// Plugins owning terminal or device state install one to restore it before exit
func SetCrashHandler(h CrashHandler) {
	if h == nil {
		crashHandler.Store(nil)
		return
	}
	crashHandler.Store(&h)
}

// HandleCrash routes a recovered panic to the installed handler, or logs and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if h := crashHandler.Load(); h != nil {
		(*h)(r)
		return
	}

	Logger().Error("background task crashed",
		zap.Any("panic", r),
		zap.ByteString("stack", debug.Stack()))
	_ = Logger().Sync()

	fmt.Fprintf(os.Stderr, "\nCRASH DETECTED: %v\nStack Trace:\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery
// Async plugin work (device creation, file loading) is started through here, never with a bare 'go'
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
