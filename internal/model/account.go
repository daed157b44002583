package model

// Account is a registered user. The password is stored exactly as given and
// every mutating endpoint trusts the client-supplied username; the trust
// model is inherited from the system this one replaces and the client depends
// on it staying that way.
type Account struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
