package models

// Credentials identify the caller of an authenticated endpoint. The bearer
// token subject is the household key, there are no user roles.
type Credentials struct {
	HouseholdKey string
}
