package migration

// Locker serializes the migration operations. Import, rollback and sweep
// mutate the whole inventory and must never run concurrently; the postgres
// implementation backs this with an advisory lock so the guarantee holds
// across processes.
type Locker interface {
	// TryLock acquires the migration lock without blocking. It returns false
	// when another run already holds it.
	TryLock() (bool, error)
	Unlock() error
}
