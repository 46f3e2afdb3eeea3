package model

// User is the signed-in workspace user. Credentials are never stored.
type User struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// UserPatch is a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	Name   *string
	Email  *string
	Avatar *string
}
