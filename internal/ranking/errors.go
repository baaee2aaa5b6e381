package ranking

// EmptyCatalogError is returned when there are no roles to rank
type EmptyCatalogError struct{}

func (e *EmptyCatalogError) Error() string {
	return "no roles available: role catalog is empty"
}
