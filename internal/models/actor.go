package models

import "strings"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleClient Role = "client"
)

const ClientCommentAuthor = "Cliente"

// Actor is the user performing an operation. It is always passed in
// explicitly; nothing in the service layer reads session state.
type Actor struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	ClientID string `json:"cliente_id"`
	Name     string `json:"nome"`
}

func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin", "administrador":
		return RoleAdmin
	case "staff", "equipe", "social_media", "designer":
		return RoleStaff
	default:
		return RoleClient
	}
}

func (a Actor) IsStaff() bool {
	return a.Role == RoleAdmin || a.Role == RoleStaff
}

// CanView reports whether the actor may read entities owned by clientID.
func (a Actor) CanView(clientID string) bool {
	if a.IsStaff() {
		return true
	}
	return a.ClientID != "" && a.ClientID == clientID
}

// CanDecide reports whether the actor may approve or reject on behalf of
// clientID. Staff other than admins cannot.
func (a Actor) CanDecide(clientID string) bool {
	if a.Role == RoleAdmin {
		return true
	}
	return a.Role == RoleClient && a.ClientID != "" && a.ClientID == clientID
}

func (a Actor) CommentAuthor() string {
	if a.Role == RoleClient {
		return ClientCommentAuthor
	}
	if a.Name != "" {
		return a.Name
	}
	return "Equipe"
}
