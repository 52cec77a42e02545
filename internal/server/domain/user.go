package domain

// User is a credential record. The Password field holds the stored-hash
// form once the user has been persisted; records are created on signup and
// never mutated in place.
type User struct {
	Email       Email
	Password    Password
	Requires2FA bool
}

func NewUser(email Email, password Password, requires2FA bool) *User {
	return &User{Email: email, Password: password, Requires2FA: requires2FA}
}
