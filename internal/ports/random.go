package ports

// Random is the source the selector draws from. *math/rand/v2.Rand
// satisfies it.
type Random interface {
	IntN(n int) int
}
