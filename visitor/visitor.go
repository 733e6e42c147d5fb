package visitor

// Visitor visits (key, element) pairs of a container.
// If the callback returns (false, nil), the visit stops.
// If the callback returns an error, the visit stops and returns that error.
type Visitor[K comparable, E any] func(func(key K, element E) (bool, error)) error
