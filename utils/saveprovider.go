package utils

// ResourceSource describes where a parsed resource came from.
type ResourceSource interface {
	Name() string
	Size() int64
}
