package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline and render events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnUnitStart(_ context.Context, unit string) {
	h.logger.Debug("unit started", "unit", unit)
}

func (h *logHooks) OnStageComplete(_ context.Context, unit, stage string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("stage failed", "unit", unit, "stage", stage, "duration", d, "err", err)
		return
	}
	h.logger.Debug("stage complete", "unit", unit, "stage", stage, "duration", d)
}

func (h *logHooks) OnUnitComplete(_ context.Context, unit string, d time.Duration, err error) {
	h.logger.Debug("unit complete", "unit", unit, "duration", d, "failed", err != nil)
}

func (h *logHooks) OnRenderStart(_ context.Context, unit string, formats []string) {
	h.logger.Debug("rendering", "unit", unit, "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, unit string, formats []string, d time.Duration, err error) {
	h.logger.Debug("rendered", "unit", unit, "formats", formats, "duration", d, "failed", err != nil)
}
