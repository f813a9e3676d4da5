package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/99minutos/user-accounts/internal/core/domain"
)

type stubUserRoleRepo struct {
	roles []domain.UserRole
	err   error

	findByUsersCalls [][]uuid.UUID
	deletedFor       []uuid.UUID
}

func (r *stubUserRoleRepo) FindByUsers(_ context.Context, ids []uuid.UUID) ([]domain.UserRole, error) {
	r.findByUsersCalls = append(r.findByUsersCalls, ids)
	if r.err != nil {
		return nil, r.err
	}
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []domain.UserRole
	for _, role := range r.roles {
		if want[role.ID] {
			out = append(out, role)
		}
	}
	return out, nil
}

func (r *stubUserRoleRepo) FindByUser(ctx context.Context, id uuid.UUID) ([]domain.UserRole, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.UserRole
	for _, role := range r.roles {
		if role.ID == id {
			out = append(out, role)
		}
	}
	return out, nil
}

func (r *stubUserRoleRepo) Add(_ context.Context, role domain.UserRole) error {
	for _, existing := range r.roles {
		if existing == role {
			return nil
		}
	}
	r.roles = append(r.roles, role)
	return nil
}

func (r *stubUserRoleRepo) DeleteByUser(_ context.Context, id uuid.UUID) error {
	r.deletedFor = append(r.deletedFor, id)
	kept := r.roles[:0]
	for _, role := range r.roles {
		if role.ID != id {
			kept = append(kept, role)
		}
	}
	r.roles = kept
	return nil
}

func membership(id uuid.UUID, name string) domain.UserRole {
	return domain.UserRole{UserRef: domain.UserRef{ID: id}, RoleName: name}
}

func TestUserRoleService_GetRoles_GroupsByUser(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	repo := &stubUserRoleRepo{roles: []domain.UserRole{
		membership(a, domain.RoleAdmin),
		membership(a, domain.RoleUser),
		membership(b, domain.RoleUser),
		membership(c, domain.RoleAdmin),
	}}
	svc := NewUserRoleService(repo)

	got, err := svc.GetRoles(context.Background(), []domain.UserIdentity{
		domain.UserRef{ID: a},
		&domain.User{ID: b},
		domain.UserRef{ID: a},
	})
	if err != nil {
		t.Fatalf("GetRoles: %v", err)
	}
	if len(repo.findByUsersCalls) != 1 {
		t.Fatalf("expected one repository call, got %d", len(repo.findByUsersCalls))
	}
	if len(repo.findByUsersCalls[0]) != 2 {
		t.Fatalf("expected duplicate ids collapsed, got %v", repo.findByUsersCalls[0])
	}
	if len(got[a]) != 2 || len(got[b]) != 1 {
		t.Fatalf("unexpected grouping: %+v", got)
	}
	if _, ok := got[c]; ok {
		t.Fatalf("roles of unrequested user leaked into result")
	}
}

func TestUserRoleService_GetRoles_EmptyInputSkipsStore(t *testing.T) {
	repo := &stubUserRoleRepo{}
	svc := NewUserRoleService(repo)

	got, err := svc.GetRoles(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty map, got %#v", got)
	}
	if len(repo.findByUsersCalls) != 0 {
		t.Fatalf("expected no repository call")
	}
}

func TestUserRoleService_GetRoleNames(t *testing.T) {
	id := uuid.New()
	repo := &stubUserRoleRepo{roles: []domain.UserRole{membership(id, domain.RoleAdmin)}}
	svc := NewUserRoleService(repo)

	names, err := svc.GetRoleNames(context.Background(), domain.UserRef{ID: id})
	if err != nil {
		t.Fatalf("GetRoleNames: %v", err)
	}
	if len(names) != 1 || names[0] != domain.RoleAdmin {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestUserRoleService_AddRole_NormalizesName(t *testing.T) {
	id := uuid.New()
	repo := &stubUserRoleRepo{}
	svc := NewUserRoleService(repo)

	if err := svc.AddRole(context.Background(), domain.UserRef{ID: id}, "  Admin "); err != nil {
		t.Fatalf("AddRole: %v", err)
	}
	if err := svc.AddRole(context.Background(), domain.UserRef{ID: id}, "admin"); err != nil {
		t.Fatalf("AddRole: %v", err)
	}
	if len(repo.roles) != 1 || repo.roles[0].RoleName != domain.RoleAdmin {
		t.Fatalf("unexpected memberships: %+v", repo.roles)
	}
}

func TestUserRoleService_DeleteRoles(t *testing.T) {
	id := uuid.New()
	repo := &stubUserRoleRepo{roles: []domain.UserRole{membership(id, domain.RoleUser)}}
	svc := NewUserRoleService(repo)

	if err := svc.DeleteRoles(context.Background(), &domain.User{ID: id}); err != nil {
		t.Fatalf("DeleteRoles: %v", err)
	}
	if len(repo.deletedFor) != 1 || repo.deletedFor[0] != id {
		t.Fatalf("unexpected delete calls: %v", repo.deletedFor)
	}
	if len(repo.roles) != 0 {
		t.Fatalf("expected memberships removed")
	}
}

func TestUserRoleService_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("timeout")
	svc := NewUserRoleService(&stubUserRoleRepo{err: storeErr})

	if _, err := svc.GetRoles(context.Background(), []domain.UserIdentity{domain.UserRef{ID: uuid.New()}}); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}
