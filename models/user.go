package models

// User is the claim set the identity provider attaches to a verified token.
// The service never stores users locally.
type User struct {
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	SubjectID string   `json:"subject_id"`
	Roles     []string `json:"roles"`
}

func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
