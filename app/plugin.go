package app

import "fmt"

// Plugin registers stages, systems, schedulers and resources against an App
// Build is called synchronously from AddPlugins
type Plugin interface {
	Build(a *App)
}

// Initializer is implemented by plugins that finish asynchronously
// The app stays in PhaseWaitingForPlugins until every Initializer reports true
type Initializer interface {
	IsInitialized(a *App) bool
}

// PostInitializer is called once, in registration order, after every plugin is ready
type PostInitializer interface {
	PostInitialization(a *App)
}

// PluginFunc adapts a function to Plugin
type PluginFunc func(a *App)

func (f PluginFunc) Build(a *App) { f(a) }

// pluginName identifies a plugin in logs
func pluginName(p Plugin) string {
	if n, ok := p.(fmt.Stringer); ok {
		return n.String()
	}
	return fmt.Sprintf("%T", p)
}
