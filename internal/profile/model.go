package profile

import "strings"

// User is the technician profile served by GET /user and replaced wholesale
// by PUT /user.
type User struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ValidationError("name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return ValidationError("email is required")
	}
	if strings.TrimSpace(u.Address) == "" {
		return ValidationError("address is required")
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string { return string(e) }
