package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnDeckStart(_ context.Context, deck string, cards int) {
	h.logger.Debug("rendering deck", "deck", deck, "cards", cards)
}

func (h logHooks) OnDeckComplete(_ context.Context, deck string, rendered int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("deck failed", "deck", deck, "rendered", rendered, "err", err)
		return
	}
	h.logger.Debug("deck done", "deck", deck, "rendered", rendered, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnCardStart(context.Context, string, string) {}

func (h logHooks) OnCardComplete(_ context.Context, _, card string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("card failed", "card", card, "err", err)
		return
	}
	h.logger.Debug("card rendered", "card", card, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnRegionSkipped(_ context.Context, card, region, reason string) {
	h.logger.Warn("skipped region", "card", card, "region", region, "reason", reason)
}

func (h logHooks) OnPackComplete(_ context.Context, cards, pages, skipped int) {
	h.logger.Debug("packed sheet", "cards", cards, "pages", pages, "skipped", skipped)
}

func (h logHooks) OnWriteComplete(_ context.Context, path string, pages int, d time.Duration, err error) {
	h.logger.Debug("pdf written", "path", path, "pages", pages, "duration", d.Round(time.Millisecond), "err", err)
}

func (h logHooks) OnFileWritten(_ context.Context, path string, err error) {
	if err != nil {
		h.logger.Debug("write failed", "path", path, "err", err)
	}
}
