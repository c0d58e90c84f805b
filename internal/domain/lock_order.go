package domain

// LockOrder returns the two account numbers in the fixed global locking
// order. Every transfer locks accounts in this order, which prevents
// circular wait between two transfers moving funds in opposite directions
// between the same pair. The function is independent of the storage
// engine's locking primitive.
func LockOrder(a, b string) (first, second string) {
	if a <= b {
		return a, b
	}
	return b, a
}
