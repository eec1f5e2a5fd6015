package models

// UserProfile merges the users and image documents with the session's
// identity fields. Email and Phone are read-only.
type UserProfile struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	PhotoURL  string
}

// DisplayName joins first and last name.
func (p UserProfile) DisplayName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}
