package app

// firstOrNil unwraps the list-shaped responses of the upstream API: a pointer
// to the first element, or nil when the list is empty.
func firstOrNil[T any](items []T) *T {
	if len(items) == 0 {
		return nil
	}
	return &items[0]
}
