package notify

import (
	"context"
	"fmt"

	"github.com/BrunoTulio/logr"
)

// MultiNotifier fans one event out to every configured sink and applies the
// per-category enable switches.
type MultiNotifier struct {
	notifiers      []Notifier
	startEnabled   bool
	successEnabled bool
	errorEnabled   bool
	log            logr.Logger
}

func (m *MultiNotifier) AddNotifier(notifier Notifier) {
	m.notifiers = append(m.notifiers, notifier)
}

func (m *MultiNotifier) enabled(t EventType) bool {
	switch t {
	case EventStart, EventSkippedOverlap:
		return m.startEnabled
	case EventSuccess:
		return m.successEnabled
	case EventFailure, EventPartialFailure:
		return m.errorEnabled
	default:
		return false
	}
}

func (m *MultiNotifier) Notify(ctx context.Context, ev Event) error {
	if !m.enabled(ev.Type) || len(m.notifiers) == 0 {
		return nil
	}

	var errs []error

	for _, notifier := range m.notifiers {
		if err := notifier.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
			m.log.Warnf("Notifier send failed (%s): %v", ev.Type, err)
		}
	}

	if len(errs) == len(m.notifiers) {
		return fmt.Errorf("all notifiers failed: %v", errs)
	}
	return nil
}

func NewMultiNotifier(
	enableStart bool,
	enableSuccess bool,
	enableError bool,
	log logr.Logger,
) *MultiNotifier {
	return &MultiNotifier{
		startEnabled:   enableStart,
		successEnabled: enableSuccess,
		errorEnabled:   enableError,
		log:            log,
	}
}
