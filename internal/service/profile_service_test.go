package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kblucke1/jolene-therapy-app-adnmfw/internal/domain"
)

type profileFixture struct {
	userRepo *fakeUserRepo
	storage  *fakeFileStorage
	svc      ProfileService
}

func newProfileFixture() *profileFixture {
	f := &profileFixture{
		userRepo: newFakeUserRepo(),
		storage:  newFakeFileStorage(),
	}
	f.svc = NewProfileService(f.userRepo, f.storage)
	return f
}

func seedAdmin(repo *fakeUserRepo, name, email string) domain.User {
	id := primitive.NewObjectID()
	user := domain.User{ID: id, Name: name, Email: email, Role: domain.RoleAdmin}
	repo.users[id] = user
	return user
}

func TestUpdateProfile(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	admin := seedAdmin(f.userRepo, "Jolene", "jolene@example.com")

	updated, err := f.svc.UpdateProfile(ctx, admin.ID, "Dr. Jolene", "Jolene Therapy")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Dr. Jolene" || updated.PracticeName != "Jolene Therapy" {
		t.Errorf("updated = %+v", updated)
	}

	stored := f.userRepo.users[admin.ID]
	if stored.Name != "Dr. Jolene" || stored.PracticeName != "Jolene Therapy" {
		t.Errorf("profile edit not persisted: %+v", stored)
	}

	// An empty name leaves the existing one alone.
	kept, err := f.svc.UpdateProfile(ctx, admin.ID, "", "Jolene Therapy")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if kept.Name != "Dr. Jolene" {
		t.Errorf("empty name overwrote the existing one: %q", kept.Name)
	}
}

func TestUpdateProfilePracticeNameAdminOnly(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	client := seedClient(f.userRepo, "Alice", "alice@example.com")

	if _, err := f.svc.UpdateProfile(ctx, client.ID, "Alice S.", "Not A Practice"); !errors.Is(err, ErrNotAdminAccount) {
		t.Errorf("client practice name: err = %v, want ErrNotAdminAccount", err)
	}
	// The rejected update must not have touched the record.
	if stored := f.userRepo.users[client.ID]; stored.Name != "Alice" {
		t.Errorf("rejected update changed the record: %+v", stored)
	}

	// A plain name edit still works for clients.
	updated, err := f.svc.UpdateProfile(ctx, client.ID, "Alice S.", "")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Alice S." || updated.PracticeName != "" {
		t.Errorf("updated = %+v", updated)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	f := newProfileFixture()

	if _, err := f.svc.UpdateProfile(context.Background(), primitive.NewObjectID(), "x", ""); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUploadAvatar(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	client := seedClient(f.userRepo, "Alice", "alice@example.com")

	first, err := f.svc.UploadAvatar(ctx, client.ID, "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("UploadAvatar: %v", err)
	}
	if first.AvatarURL == "" || !strings.Contains(first.AvatarURL, "avatars/"+client.ID.Hex()) {
		t.Errorf("AvatarURL = %q", first.AvatarURL)
	}
	if stored := f.userRepo.users[client.ID]; stored.AvatarURL != first.AvatarURL {
		t.Errorf("avatar not persisted")
	}

	// A second upload replaces the URL.
	second, err := f.svc.UploadAvatar(ctx, client.ID, "image/jpeg", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("second UploadAvatar: %v", err)
	}
	if second.AvatarURL == first.AvatarURL {
		t.Errorf("avatar URL not replaced on re-upload")
	}
}

func TestUploadLogoAdminOnly(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	admin := seedAdmin(f.userRepo, "Jolene", "jolene@example.com")
	client := seedClient(f.userRepo, "Alice", "alice@example.com")

	updated, err := f.svc.UploadLogo(ctx, admin.ID, "image/png", strings.NewReader("logo-bytes"))
	if err != nil {
		t.Fatalf("UploadLogo: %v", err)
	}
	if updated.LogoURL == "" || !strings.Contains(updated.LogoURL, "logos/"+admin.ID.Hex()) {
		t.Errorf("LogoURL = %q", updated.LogoURL)
	}

	if _, err := f.svc.UploadLogo(ctx, client.ID, "image/png", strings.NewReader("x")); !errors.Is(err, ErrNotAdminAccount) {
		t.Errorf("client logo: err = %v, want ErrNotAdminAccount", err)
	}
	// The rejected upload never reached storage.
	if len(f.storage.uploads) != 1 {
		t.Errorf("uploads = %v, want only the admin logo", f.storage.uploads)
	}
}

func TestUploadAvatarRejectsNonImage(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	client := seedClient(f.userRepo, "Alice", "alice@example.com")

	if _, err := f.svc.UploadAvatar(ctx, client.ID, "application/pdf", strings.NewReader("x")); !errors.Is(err, ErrInvalidImageType) {
		t.Errorf("err = %v, want ErrInvalidImageType", err)
	}
	if len(f.storage.uploads) != 0 {
		t.Errorf("rejected image reached storage")
	}
}

func TestUploadAvatarFailureLeavesProfileUnchanged(t *testing.T) {
	f := newProfileFixture()
	ctx := context.Background()
	client := seedClient(f.userRepo, "Alice", "alice@example.com")
	f.storage.failUpload = true

	_, err := f.svc.UploadAvatar(ctx, client.ID, "image/png", strings.NewReader("x"))
	if !errors.Is(err, ErrImageUploadFailed) {
		t.Fatalf("err = %v, want ErrImageUploadFailed", err)
	}
	if stored := f.userRepo.users[client.ID]; stored.AvatarURL != "" {
		t.Errorf("failed upload still set AvatarURL: %q", stored.AvatarURL)
	}
}
