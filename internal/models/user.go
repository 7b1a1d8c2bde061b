// Package models defines the identity records shared across authgate:
// the authoritative remote record and its local shadow row.
package models

// UserRecord is the authoritative identity data for one user, produced only
// by the remote authority. After decoding, every field is present; fields
// the authority left unset carry their zero value, so callers can rely on
// the full field set without nil checks.
type UserRecord struct {
	ID          uint32   `json:"id"`
	NationalID  string   `json:"national_id"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Username    string   `json:"username"`
	Service     string   `json:"service"`
	SubServices []string `json:"sub_services"`
	Roles       []string `json:"roles"`
	Departments []string `json:"departments"`
	Image       string   `json:"image"`
	IsVerified  bool     `json:"is_verified"`
	IsStaff     bool     `json:"is_staff"`
	IsSuperuser bool     `json:"is_superuser"`
}

// ShadowUser is the locally persisted copy of a remote user. The persisted
// columns are the struct fields up to and including IsSuperuser; everything
// after that is refreshed from the authority on read and carried in memory
// only. The id space is owned by the authority.
type ShadowUser struct {
	ID          uint32
	NationalID  string
	Username    string
	Email       string
	Phone       string
	FirstName   string
	LastName    string
	IsStaff     bool
	IsSuperuser bool

	// Remote-only fields, never persisted.
	Service     string
	SubServices []string
	Roles       []string
	Departments []string
	Image       string
	IsVerified  bool
}
