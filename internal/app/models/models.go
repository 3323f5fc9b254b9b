package models

// Destination types offered by the registration form. The list is advisory;
// any non-blank value is stored.
const (
	DestinationUniversity = "university"
	DestinationCollege    = "college"
	DestinationWork       = "work"
	DestinationAbroad     = "abroad"
	DestinationOther      = "other"
)
