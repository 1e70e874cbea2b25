package config

import "sync"

// ViewSettings holds viewer configuration read by the render loop.
type ViewSettings struct {
	mu           sync.RWMutex
	exaggeration float32 // vertical scale applied in the model matrix
	wireframe    bool
}

var globalViewSettings = &ViewSettings{
	exaggeration: 1.0,
}

// GetExaggeration returns the current vertical exaggeration factor.
func GetExaggeration() float32 {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.exaggeration
}

// SetExaggeration sets the vertical exaggeration factor.
func SetExaggeration(f float32) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()

	// Clamp to reasonable values
	if f < 0.1 {
		f = 0.1
	}
	if f > 10 {
		f = 10
	}

	globalViewSettings.exaggeration = f
}

// GetWireframe returns whether wireframe rendering is enabled.
func GetWireframe() bool {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.wireframe
}

// ToggleWireframe flips wireframe rendering and returns the new state.
func ToggleWireframe() bool {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()
	globalViewSettings.wireframe = !globalViewSettings.wireframe
	return globalViewSettings.wireframe
}
