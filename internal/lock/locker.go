package lock

type Locker interface {
	TryAcquire() (bool, error)
	Release() error
	Path() string
}
