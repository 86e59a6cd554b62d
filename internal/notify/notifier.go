package notify

import "context"

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Emit delivers ev in the background. Runs never block on, retry, or fail
// because of notification delivery; sink errors are logged inside the
// notifier itself.
func Emit(n Notifier, ev Event) {
	if n == nil {
		return
	}
	go func() {
		_ = n.Notify(context.Background(), ev)
	}()
}
