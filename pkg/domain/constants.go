package domain

const (
	// Blank is the symbol the tape is padded with when the head moves past its right end.
	Blank = "_"

	// DefaultMaxDepth is the depth bound used when a caller does not provide one.
	DefaultMaxDepth = 10
)
