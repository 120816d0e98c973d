package ministry

// Ministry is an organizational unit of the church (e.g. worship, media).
// It owns areas, which in turn own the servant roster.
type Ministry struct {
	Id       int
	Name     string
	Color    string
	IsActive bool
}
