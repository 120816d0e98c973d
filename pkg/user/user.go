package user

// User is a staff account: a ministry admin or church office member
// operating the back-office screens.
type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Email       string
}
