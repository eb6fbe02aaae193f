package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/aidar/payteams/internal/domain"
)

// fakeStore keeps every table in memory; each fake repository views one part of it
type fakeStore struct {
	users        map[string]*domain.User
	teams        map[string]*domain.Team
	projects     map[string]*domain.Project
	projectTeams map[string][]string
	pricing      []domain.PricingAssignment
	payins       []domain.Payin
	payouts      []domain.Payout

	failPricing error
	failPayins  error
	failPayouts error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        map[string]*domain.User{},
		teams:        map[string]*domain.Team{},
		projects:     map[string]*domain.Project{},
		projectTeams: map[string][]string{},
	}
}

func (s *fakeStore) addUser(id, name string) domain.UserRef {
	s.users[id] = &domain.User{UserID: id, Name: name, Email: id + "@example.com"}
	return s.users[id].Ref()
}

func (s *fakeStore) addTeam(id, ownerID string, memberIDs ...string) {
	team := &domain.Team{TeamID: id, Name: "team " + id, OwnerID: ownerID}
	team.Members = append(team.Members, domain.TeamMember{UserRef: s.users[ownerID].Ref(), Role: domain.RoleOwner})
	for _, m := range memberIDs {
		team.Members = append(team.Members, domain.TeamMember{UserRef: s.users[m].Ref(), Role: domain.RoleMember})
	}
	s.teams[id] = team
}

func (s *fakeStore) addProject(id, ownerID string) *domain.Project {
	p := &domain.Project{ProjectID: id, Name: "project " + id, Currency: "USD", Status: domain.ProjectActive, OwnerID: ownerID}
	s.projects[id] = p
	return p
}

func (s *fakeStore) userRepo() *fakeUserRepo       { return &fakeUserRepo{s} }
func (s *fakeStore) teamRepo() *fakeTeamRepo       { return &fakeTeamRepo{s} }
func (s *fakeStore) projectRepo() *fakeProjectRepo { return &fakeProjectRepo{s} }
func (s *fakeStore) pricingRepo() *fakePricingRepo { return &fakePricingRepo{s} }
func (s *fakeStore) payinRepo() *fakePayinRepo     { return &fakePayinRepo{s} }
func (s *fakeStore) payoutRepo() *fakePayoutRepo   { return &fakePayoutRepo{s} }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailExists
		}
	}
	user.CreatedAt = time.Now()
	cp := *user
	r.s.users[user.UserID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID string) (*domain.User, error) {
	u, ok := r.s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	users := []*domain.User{}
	for _, u := range r.s.users {
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
	return users, nil
}

func (r *fakeUserRepo) ListNotInTeam(ctx context.Context, teamID string) ([]*domain.User, error) {
	all, _ := r.List(ctx)
	team := r.s.teams[teamID]
	users := []*domain.User{}
	for _, u := range all {
		if team == nil || !team.HasMember(u.UserID) {
			users = append(users, u)
		}
	}
	return users, nil
}

type fakeTeamRepo struct{ s *fakeStore }

func (r *fakeTeamRepo) Create(_ context.Context, team *domain.Team) error {
	owner, ok := r.s.users[team.OwnerID]
	if !ok {
		return domain.ErrUserNotFound
	}
	cp := *team
	cp.Members = []domain.TeamMember{{UserRef: owner.Ref(), Role: domain.RoleOwner}}
	r.s.teams[team.TeamID] = &cp
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, teamID string) (*domain.Team, error) {
	t, ok := r.s.teams[teamID]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	cp := *t
	cp.Members = append([]domain.TeamMember{}, t.Members...)
	return &cp, nil
}

func (r *fakeTeamRepo) ListByMember(_ context.Context, userID string) ([]*domain.Team, error) {
	teams := []*domain.Team{}
	for _, t := range r.s.teams {
		if t.HasMember(userID) {
			cp := *t
			teams = append(teams, &cp)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].TeamID < teams[j].TeamID })
	return teams, nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, teamID string) error {
	if _, ok := r.s.teams[teamID]; !ok {
		return domain.ErrTeamNotFound
	}
	delete(r.s.teams, teamID)
	return nil
}

func (r *fakeTeamRepo) AddMember(_ context.Context, teamID, userID, role string) error {
	t, ok := r.s.teams[teamID]
	if !ok {
		return domain.ErrTeamNotFound
	}
	if t.HasMember(userID) {
		return domain.ErrAlreadyMember
	}
	t.Members = append(t.Members, domain.TeamMember{UserRef: r.s.users[userID].Ref(), Role: role})
	return nil
}

func (r *fakeTeamRepo) RemoveMember(_ context.Context, teamID, userID string) error {
	t, ok := r.s.teams[teamID]
	if !ok {
		return domain.ErrTeamNotFound
	}
	for i, m := range t.Members {
		if m.UserID == userID {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *fakeTeamRepo) IsMember(_ context.Context, teamID, userID string) (bool, error) {
	t, ok := r.s.teams[teamID]
	return ok && t.HasMember(userID), nil
}

type fakeProjectRepo struct{ s *fakeStore }

func (r *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	cp := *project
	r.s.projects[project.ProjectID] = &cp
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, projectID string) (*domain.Project, error) {
	p, ok := r.s.projects[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) ListAccessible(ctx context.Context, userID string) ([]*domain.Project, error) {
	projects := []*domain.Project{}
	for id, p := range r.s.projects {
		if ok, _ := r.IsCollaborator(ctx, id, userID); ok {
			cp := *p
			projects = append(projects, &cp)
		}
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ProjectID < projects[j].ProjectID })
	return projects, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, projectID string, upd domain.ProjectUpdate) (*domain.Project, error) {
	p, ok := r.s.projects[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.ClearBudget {
		p.Budget = nil
	} else if upd.Budget != nil {
		b := *upd.Budget
		p.Budget = &b
	}
	if upd.Currency != nil {
		p.Currency = *upd.Currency
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, projectID string) error {
	if _, ok := r.s.projects[projectID]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.s.projects, projectID)
	return nil
}

func (r *fakeProjectRepo) IsCollaborator(_ context.Context, projectID, userID string) (bool, error) {
	p, ok := r.s.projects[projectID]
	if !ok {
		return false, nil
	}
	if p.OwnerID == userID {
		return true, nil
	}
	for _, teamID := range r.s.projectTeams[projectID] {
		if t, ok := r.s.teams[teamID]; ok && t.HasMember(userID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProjectRepo) AssignTeam(ctx context.Context, projectID, teamID string) error {
	if ok, _ := r.IsTeamAssigned(ctx, projectID, teamID); ok {
		return domain.ErrTeamAlreadyAssigned
	}
	if _, ok := r.s.teams[teamID]; !ok {
		return domain.ErrTeamNotFound
	}
	r.s.projectTeams[projectID] = append(r.s.projectTeams[projectID], teamID)
	return nil
}

func (r *fakeProjectRepo) UnassignTeam(_ context.Context, projectID, teamID string) error {
	ids := r.s.projectTeams[projectID]
	for i, id := range ids {
		if id == teamID {
			r.s.projectTeams[projectID] = append(ids[:i], ids[i+1:]...)
			kept := r.s.pricing[:0]
			for _, p := range r.s.pricing {
				if !(p.ProjectID == projectID && p.TeamID == teamID) {
					kept = append(kept, p)
				}
			}
			r.s.pricing = kept
			return nil
		}
	}
	return domain.ErrTeamNotFound
}

func (r *fakeProjectRepo) IsTeamAssigned(_ context.Context, projectID, teamID string) (bool, error) {
	for _, id := range r.s.projectTeams[projectID] {
		if id == teamID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProjectRepo) AssignedTeams(_ context.Context, projectID string) ([]*domain.Team, error) {
	teams := []*domain.Team{}
	for _, id := range r.s.projectTeams[projectID] {
		cp := *r.s.teams[id]
		teams = append(teams, &cp)
	}
	return teams, nil
}

func (r *fakeProjectRepo) UnassignedTeams(ctx context.Context, projectID, userID string) ([]*domain.Team, error) {
	teams := []*domain.Team{}
	mine, _ := (&fakeTeamRepo{r.s}).ListByMember(ctx, userID)
	for _, t := range mine {
		if ok, _ := r.IsTeamAssigned(ctx, projectID, t.TeamID); !ok {
			teams = append(teams, t)
		}
	}
	return teams, nil
}

type fakePricingRepo struct{ s *fakeStore }

func (r *fakePricingRepo) ListByProject(_ context.Context, projectID string) ([]domain.PricingAssignment, error) {
	if r.s.failPricing != nil {
		return nil, r.s.failPricing
	}
	rows := []domain.PricingAssignment{}
	for _, p := range r.s.pricing {
		if p.ProjectID == projectID {
			rows = append(rows, p)
		}
	}
	return rows, nil
}

func (r *fakePricingRepo) Upsert(_ context.Context, p *domain.PricingAssignment) error {
	row := *p
	row.User = r.s.users[p.User.UserID].Ref()
	row.TeamName = r.s.teams[p.TeamID].Name
	for i, existing := range r.s.pricing {
		if existing.ProjectID == p.ProjectID && existing.TeamID == p.TeamID && existing.User.UserID == p.User.UserID {
			r.s.pricing[i] = row
			return nil
		}
	}
	r.s.pricing = append(r.s.pricing, row)
	return nil
}

func (r *fakePricingRepo) Delete(_ context.Context, projectID, teamID, userID string) error {
	for i, p := range r.s.pricing {
		if p.ProjectID == projectID && p.TeamID == teamID && p.User.UserID == userID {
			r.s.pricing = append(r.s.pricing[:i], r.s.pricing[i+1:]...)
			return nil
		}
	}
	return domain.ErrPricingNotFound
}

type fakePayinRepo struct{ s *fakeStore }

func (r *fakePayinRepo) ListByProject(_ context.Context, projectID string) ([]domain.Payin, error) {
	if r.s.failPayins != nil {
		return nil, r.s.failPayins
	}
	rows := []domain.Payin{}
	for _, p := range r.s.payins {
		if p.ProjectID == projectID {
			rows = append(rows, p)
		}
	}
	return rows, nil
}

func (r *fakePayinRepo) GetByID(_ context.Context, projectID, payinID string) (*domain.Payin, error) {
	for _, p := range r.s.payins {
		if p.ProjectID == projectID && p.PayinID == payinID {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrPayinNotFound
}

func (r *fakePayinRepo) Create(_ context.Context, p *domain.Payin) error {
	row := *p
	row.Creator = r.s.users[p.Creator.UserID].Ref()
	r.s.payins = append(r.s.payins, row)
	return nil
}

func (r *fakePayinRepo) Update(_ context.Context, p *domain.Payin) error {
	for i, existing := range r.s.payins {
		if existing.ProjectID == p.ProjectID && existing.PayinID == p.PayinID {
			r.s.payins[i] = *p
			return nil
		}
	}
	return domain.ErrPayinNotFound
}

func (r *fakePayinRepo) Delete(_ context.Context, projectID, payinID string) error {
	for i, p := range r.s.payins {
		if p.ProjectID == projectID && p.PayinID == payinID {
			r.s.payins = append(r.s.payins[:i], r.s.payins[i+1:]...)
			return nil
		}
	}
	return domain.ErrPayinNotFound
}

type fakePayoutRepo struct{ s *fakeStore }

var errFakeWrite = errors.New("write failed")

func (r *fakePayoutRepo) ListByProject(_ context.Context, projectID string) ([]domain.Payout, error) {
	if r.s.failPayouts != nil {
		return nil, r.s.failPayouts
	}
	rows := []domain.Payout{}
	for _, p := range r.s.payouts {
		if p.ProjectID == projectID {
			rows = append(rows, p)
		}
	}
	return rows, nil
}

func (r *fakePayoutRepo) GetByID(_ context.Context, projectID, payoutID string) (*domain.Payout, error) {
	for _, p := range r.s.payouts {
		if p.ProjectID == projectID && p.PayoutID == payoutID {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrPayoutNotFound
}

func (r *fakePayoutRepo) Create(_ context.Context, p *domain.Payout) error {
	if r.s.failPayouts != nil {
		return errFakeWrite
	}
	row := *p
	row.Creator = r.s.users[p.Creator.UserID].Ref()
	row.Members = make([]domain.PayoutMember, len(p.Members))
	for i, m := range p.Members {
		u, ok := r.s.users[m.User.UserID]
		if !ok {
			return domain.ErrUserNotFound
		}
		m.PayoutID = p.PayoutID
		m.User = u.Ref()
		row.Members[i] = m
	}
	r.s.payouts = append(r.s.payouts, row)
	return nil
}

func (r *fakePayoutRepo) UpdateStatus(_ context.Context, projectID, payoutID string, status domain.PayoutStatus) error {
	for i, p := range r.s.payouts {
		if p.ProjectID == projectID && p.PayoutID == payoutID {
			r.s.payouts[i].Status = status
			return nil
		}
	}
	return domain.ErrPayoutNotFound
}

func (r *fakePayoutRepo) Delete(_ context.Context, projectID, payoutID string) error {
	for i, p := range r.s.payouts {
		if p.ProjectID == projectID && p.PayoutID == payoutID {
			r.s.payouts = append(r.s.payouts[:i], r.s.payouts[i+1:]...)
			return nil
		}
	}
	return domain.ErrPayoutNotFound
}
