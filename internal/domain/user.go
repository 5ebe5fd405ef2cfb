package domain

import "time"

// UserRole enumerates supported roles.
type UserRole string

const (
	UserRoleDonor UserRole = "donor"
	UserRoleAdmin UserRole = "admin"
)

// ValidRole reports whether the value is a known role.
func ValidRole(r UserRole) bool {
	return r == UserRoleDonor || r == UserRoleAdmin
}

// UserStatus enumerates account lifecycle states.
type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// ValidStatus reports whether the value is a known lifecycle state.
func ValidStatus(s UserStatus) bool {
	return s == UserStatusActive || s == UserStatusBlocked
}

// User represents a platform account. Email is the sole identity key;
// there is no surrogate id.
type User struct {
	Email      string     `bson:"email" json:"email"`
	Name       string     `bson:"name" json:"name"`
	Role       UserRole   `bson:"role" json:"role"`
	Status     UserStatus `bson:"status" json:"status"`
	BloodGroup string     `bson:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`
	Division   string     `bson:"division,omitempty" json:"division,omitempty"`
	District   string     `bson:"district,omitempty" json:"district,omitempty"`
	Upazila    string     `bson:"upazila,omitempty" json:"upazila,omitempty"`
	Avatar     string     `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// IsAdmin reports whether the user may reach admin-gated routes.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// UserProfile carries the fields a caller may change through the general
// profile paths. Role and status deliberately have no place here; they
// move only through their dedicated admin routes.
type UserProfile struct {
	Name       string `json:"name"`
	BloodGroup string `json:"bloodGroup"`
	Division   string `json:"division"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
	Avatar     string `json:"avatar"`
}

// DonorFilter narrows the public donor listing. Zero-value fields are
// ignored; role=donor and status=active are always applied.
type DonorFilter struct {
	BloodGroup string
	Division   string
	District   string
}
