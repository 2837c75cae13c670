package domain

// Airport is a node of the flight network.
// MinConnectionMinutes is nil when the dataset leaves it unspecified; the
// network default applies in that case.
type Airport struct {
	Code                 string
	Name                 string
	Location             Coordinates
	MinConnectionMinutes *int
}
