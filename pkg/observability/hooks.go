// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; nothing is recorded
// unless main registers an implementation at startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnCardStart(ctx, deck, name)
//	// ... composite the card ...
//	observability.Render().OnCardComplete(ctx, deck, name, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from card rendering.
type RenderHooks interface {
	// Deck events
	OnDeckStart(ctx context.Context, deck string, cards int)
	OnDeckComplete(ctx context.Context, deck string, rendered int, duration time.Duration, err error)

	// Card events
	OnCardStart(ctx context.Context, deck, card string)
	OnCardComplete(ctx context.Context, deck, card string, duration time.Duration, err error)

	// OnRegionSkipped records a template region left out of a card.
	OnRegionSkipped(ctx context.Context, card, region, reason string)
}

// =============================================================================
// Sheet Hooks
// =============================================================================

// SheetHooks receives events from sheet packing and page writing.
type SheetHooks interface {
	OnPackComplete(ctx context.Context, cards, pages, skipped int)
	OnWriteComplete(ctx context.Context, path string, pages int, duration time.Duration, err error)
}

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events for files written to disk.
type ExportHooks interface {
	// OnFileWritten records a completed artifact write.
	OnFileWritten(ctx context.Context, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnDeckStart(context.Context, string, int)                             {}
func (NoopRenderHooks) OnDeckComplete(context.Context, string, int, time.Duration, error)    {}
func (NoopRenderHooks) OnCardStart(context.Context, string, string)                          {}
func (NoopRenderHooks) OnCardComplete(context.Context, string, string, time.Duration, error) {}
func (NoopRenderHooks) OnRegionSkipped(context.Context, string, string, string)              {}

// NoopSheetHooks is a no-op implementation of SheetHooks.
type NoopSheetHooks struct{}

func (NoopSheetHooks) OnPackComplete(context.Context, int, int, int)                      {}
func (NoopSheetHooks) OnWriteComplete(context.Context, string, int, time.Duration, error) {}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnFileWritten(context.Context, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	sheetHooks  SheetHooks  = NoopSheetHooks{}
	exportHooks ExportHooks = NoopExportHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetSheetHooks registers custom sheet hooks.
func SetSheetHooks(h SheetHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sheetHooks = h
	}
}

// SetExportHooks registers custom export hooks.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Sheet returns the registered sheet hooks.
func Sheet() SheetHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sheetHooks
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	sheetHooks = NoopSheetHooks{}
	exportHooks = NoopExportHooks{}
}
