package entity

import "time"

type Role string

const (
	RoleAuthor     Role = "author"
	RoleSuperAdmin Role = "superadmin"
)

type Author struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (a *Author) Ref() AuthorRef {
	return AuthorRef{
		ID:           a.ID,
		Name:         a.Name,
		ProfileImage: a.ProfileImage,
	}
}

// Viewer is the caller of a read or write. The zero value is an anonymous
// reader.
type Viewer struct {
	ID   string
	Role Role
}

func (v Viewer) Anonymous() bool {
	return v.ID == ""
}

func (v Viewer) IsSuperAdmin() bool {
	return v.Role == RoleSuperAdmin
}

// CanEdit reports whether the viewer owns posts of authorID or is a superadmin.
func (v Viewer) CanEdit(authorID string) bool {
	if v.Anonymous() {
		return false
	}
	return v.IsSuperAdmin() || v.ID == authorID
}
