package servant

// Servant is a volunteer bound to exactly one area at a time.
// Deactivation is a soft delete so past assignments keep their reference.
type Servant struct {
	Id       int
	AreaId   int
	Name     string
	Email    string
	Phone    string
	IsLeader bool
	IsActive bool
}
