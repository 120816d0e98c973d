package environment

// Environment is a bookable room or space in the church building.
type Environment struct {
	Id          int
	Name        string
	Description string
	Capacity    int
	IsActive    bool
}
