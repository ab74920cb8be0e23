package service

import (
	"context"
	"errors"
	"testing"

	"github.com/brightcart/storefront-api/internal/core/domain"
)

func TestDirectory_FindByID_MissingUser(t *testing.T) {
	dir := NewDirectoryService(newStubUserRepo())

	profile, err := dir.FindByID(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("expected nil error for missing user, got %v", err)
	}
	if profile != nil {
		t.Fatalf("expected nil profile, got %+v", profile)
	}
}

func TestDirectory_FindByID_ExcludesPasswordHash(t *testing.T) {
	repo := newStubUserRepo()
	created, _ := repo.Create(context.Background(), &domain.User{
		Email:        "a@example.com",
		PasswordHash: "hash",
		Active:       true,
		Roles:        []string{domain.RoleUser},
	})
	dir := NewDirectoryService(repo)

	profile, err := dir.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if profile == nil || profile.ID != created.ID || len(profile.Roles) != 1 {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestDirectory_Validate(t *testing.T) {
	dir := NewDirectoryService(newStubUserRepo())

	if _, err := dir.Validate(nil); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for nil profile, got %v", err)
	}

	if _, err := dir.Validate(&domain.UserProfile{ID: "u1", Active: false}); !errors.Is(err, domain.ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}

	principal, err := dir.Validate(&domain.UserProfile{
		ID:     "u1",
		Active: true,
		Roles:  []string{domain.RoleAdmin, domain.RoleUser},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !principal.IsAdmin || principal.IsModerator {
		t.Fatalf("unexpected derived flags: %+v", principal)
	}
}

func TestDirectory_HasRole_MissingUserIsFalse(t *testing.T) {
	dir := NewDirectoryService(newStubUserRepo())

	has, err := dir.HasRole(context.Background(), "ghost", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("expected no error for missing user, got %v", err)
	}
	if has {
		t.Fatalf("missing user must hold no roles")
	}
}

func TestDirectory_HasAnyRole_SeesFreshGrants(t *testing.T) {
	repo := newStubUserRepo()
	created, _ := repo.Create(context.Background(), &domain.User{
		Email:  "b@example.com",
		Active: true,
		Roles:  []string{domain.RoleUser},
	})
	dir := NewDirectoryService(repo)
	ctx := context.Background()

	has, err := dir.HasAnyRole(ctx, created.ID, domain.RoleAdmin, domain.RoleModerator)
	if err != nil || has {
		t.Fatalf("expected no elevated role yet, got has=%v err=%v", has, err)
	}

	// A grant is visible on the next query without any re-login.
	if err := repo.GrantRole(ctx, created.ID, domain.RoleModerator); err != nil {
		t.Fatalf("GrantRole: %v", err)
	}
	has, err = dir.HasAnyRole(ctx, created.ID, domain.RoleAdmin, domain.RoleModerator)
	if err != nil || !has {
		t.Fatalf("expected fresh grant to be visible, got has=%v err=%v", has, err)
	}
}
