package domain

import "time"

// Роли участников команды
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Team представляет группу пользователей (команду)
type Team struct {
	TeamID      string       `json:"team_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	OwnerID     string       `json:"owner_id"`
	CreatedAt   time.Time    `json:"created_at"`
	Members     []TeamMember `json:"members,omitempty"`
}

// TeamMember представляет пользователя в составе команды
type TeamMember struct {
	UserRef
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// HasMember проверяет, состоит ли пользователь в команде
func (t *Team) HasMember(userID string) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
