package out

// ProgressObserver receives the computed progression after each Stats call.
type ProgressObserver interface {
	ObserveProgress(streak, totalXP int)
}
