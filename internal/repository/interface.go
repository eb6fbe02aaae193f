package repository

import (
	"context"

	"github.com/aidar/payteams/internal/domain"
)

// UserRepository определяет методы для работы с данными пользователей
type UserRepository interface {
	// Create сохраняет нового пользователя
	Create(ctx context.Context, user *domain.User) error

	// GetByID получает пользователя по ID
	GetByID(ctx context.Context, userID string) (*domain.User, error)

	// GetByEmail получает пользователя по email (вместе с хешем пароля)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List возвращает всех пользователей
	List(ctx context.Context) ([]*domain.User, error)

	// ListNotInTeam возвращает пользователей, которые еще не состоят в команде
	ListNotInTeam(ctx context.Context, teamID string) ([]*domain.User, error)
}

// TeamRepository определяет методы для работы с данными команд
type TeamRepository interface {
	// Create создает команду и добавляет владельца участником
	Create(ctx context.Context, team *domain.Team) error

	// GetByID получает команду со всеми участниками
	GetByID(ctx context.Context, teamID string) (*domain.Team, error)

	// ListByMember возвращает команды, в которых состоит пользователь
	ListByMember(ctx context.Context, userID string) ([]*domain.Team, error)

	// Delete удаляет команду
	Delete(ctx context.Context, teamID string) error

	// AddMember добавляет пользователя в команду
	AddMember(ctx context.Context, teamID, userID, role string) error

	// RemoveMember удаляет пользователя из команды
	RemoveMember(ctx context.Context, teamID, userID string) error

	// IsMember проверяет, состоит ли пользователь в команде
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
}

// ProjectRepository определяет методы для работы с проектами и назначенными командами
type ProjectRepository interface {
	// Create создает проект
	Create(ctx context.Context, project *domain.Project) error

	// GetByID получает проект по ID
	GetByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListAccessible возвращает проекты, которыми владеет пользователь или
	// к которым у него есть доступ через назначенную команду
	ListAccessible(ctx context.Context, userID string) ([]*domain.Project, error)

	// Update применяет частичное обновление и возвращает проект
	Update(ctx context.Context, projectID string, upd domain.ProjectUpdate) (*domain.Project, error)

	// Delete удаляет проект вместе с зависимыми записями
	Delete(ctx context.Context, projectID string) error

	// IsCollaborator проверяет, владеет ли пользователь проектом или состоит в назначенной команде
	IsCollaborator(ctx context.Context, projectID, userID string) (bool, error)

	// AssignTeam назначает команду на проект
	AssignTeam(ctx context.Context, projectID, teamID string) error

	// UnassignTeam снимает команду с проекта
	UnassignTeam(ctx context.Context, projectID, teamID string) error

	// IsTeamAssigned проверяет, назначена ли команда на проект
	IsTeamAssigned(ctx context.Context, projectID, teamID string) (bool, error)

	// AssignedTeams возвращает команды проекта
	AssignedTeams(ctx context.Context, projectID string) ([]*domain.Team, error)

	// UnassignedTeams возвращает команды пользователя, еще не назначенные на проект
	UnassignedTeams(ctx context.Context, projectID, userID string) ([]*domain.Team, error)
}

// PricingRepository определяет методы для работы со ставками участников
type PricingRepository interface {
	// ListByProject возвращает ставки проекта вместе с профилями и названиями команд
	ListByProject(ctx context.Context, projectID string) ([]domain.PricingAssignment, error)

	// Upsert создает или обновляет ставку для (project, team, user)
	Upsert(ctx context.Context, p *domain.PricingAssignment) error

	// Delete удаляет ставку
	Delete(ctx context.Context, projectID, teamID, userID string) error
}

// PayinRepository определяет методы для работы с поступлениями
type PayinRepository interface {
	// ListByProject возвращает поступления проекта, новые первыми
	ListByProject(ctx context.Context, projectID string) ([]domain.Payin, error)

	// GetByID получает поступление проекта
	GetByID(ctx context.Context, projectID, payinID string) (*domain.Payin, error)

	// Create сохраняет поступление
	Create(ctx context.Context, p *domain.Payin) error

	// Update сохраняет изменяемые поля поступления
	Update(ctx context.Context, p *domain.Payin) error

	// Delete удаляет поступление
	Delete(ctx context.Context, projectID, payinID string) error
}

// PayoutRepository определяет методы для работы с выплатами
type PayoutRepository interface {
	// ListByProject возвращает выплаты проекта вместе со строками участников
	ListByProject(ctx context.Context, projectID string) ([]domain.Payout, error)

	// GetByID получает выплату проекта со строками участников
	GetByID(ctx context.Context, projectID, payoutID string) (*domain.Payout, error)

	// Create сохраняет выплату и ее строки в одной транзакции
	Create(ctx context.Context, p *domain.Payout) error

	// UpdateStatus меняет статус выплаты
	UpdateStatus(ctx context.Context, projectID, payoutID string, status domain.PayoutStatus) error

	// Delete удаляет выплату вместе со строками
	Delete(ctx context.Context, projectID, payoutID string) error
}
