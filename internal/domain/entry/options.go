package entry

// ListOptions provides filtering options for chronological entry listings.
type ListOptions struct {
	ProjectName string
	Statuses    []Status
	Priorities  []Priority
	Limit       int
	Offset      int
}
