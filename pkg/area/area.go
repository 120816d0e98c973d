package area

// Area is a role-slot within a ministry, e.g. "Sound" or "Projection".
// MinServants and MaxServants are capacity hints shown to admins while
// assembling a schedule; they are not enforced on assignment.
type Area struct {
	Id          int
	MinistryId  int
	Name        string
	MinServants int
	// MaxServants is nil when the area accepts an unlimited number of servants.
	MaxServants *int
	OrderIndex  int
	IsActive    bool
}
