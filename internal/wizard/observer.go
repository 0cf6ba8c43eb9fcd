package wizard

import (
	"github.com/jonathan/resuexpress/internal/navigation"
	"github.com/jonathan/resuexpress/internal/types"
)

// Observer is notified of every change a UI needs to redraw. Callbacks run
// synchronously while the session is locked and must not call back into it.
type Observer interface {
	PreviewRendered(templateKey, html string)
	ListChanged(section types.Section, records []types.Record)
	StepChanged(view navigation.StepView)
	TemplateChanged(key string)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) PreviewRendered(string, string) {}
func (NopObserver) ListChanged(types.Section, []types.Record) {}
func (NopObserver) StepChanged(navigation.StepView) {}
func (NopObserver) TemplateChanged(string) {}
