package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/connectsphere/backend/internal/models"
	"github.com/connectsphere/backend/internal/store"
)

// UserService owns user accounts and profiles
type UserService interface {
	// Register creates an account; duplicate emails and names are conflicts.
	Register(ctx context.Context, req models.RegisterRequest) (models.UserView, error)
	// Authenticate verifies credentials and returns the account.
	Authenticate(ctx context.Context, req models.LoginRequest) (models.UserView, error)
	Get(ctx context.Context, id int) (models.UserView, error)
	GetByName(ctx context.Context, name string) (models.UserView, error)
	// Search matches users by name substring, case-insensitively.
	Search(ctx context.Context, query string, limit int) ([]models.UserView, error)
	UpdateProfile(ctx context.Context, id int, req models.UpdateProfileRequest) (models.UserView, error)
	// Stats aggregates approved follower/following counts, post count and
	// total likes received.
	Stats(ctx context.Context, id int) (models.UserStats, error)
	// SuggestUsernames proposes free name variations for a taken base name.
	SuggestUsernames(ctx context.Context, base string, count int) ([]string, error)
	// IsAdmin reports the admin capability of the typed user record.
	IsAdmin(ctx context.Context, id int) (bool, error)
}

type userService struct {
	store       store.Store
	adminEmails []string
	log         *zap.Logger
}

// NewUserService creates a UserService
func NewUserService(st store.Store, adminEmails []string, logger *zap.Logger) UserService {
	return &userService{store: st, adminEmails: adminEmails, log: logger}
}

func (s *userService) Register(ctx context.Context, req models.RegisterRequest) (models.UserView, error) {
	if err := validateRequest(&req); err != nil {
		return models.UserView{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.UserView{}, fmt.Errorf("hash password: %w", err)
	}
	var view models.UserView
	err = s.store.Update(ctx, func(snap *store.Snapshot) error {
		if snap.UserByEmail(req.Email) != nil {
			return conflictf("email %s is taken", req.Email)
		}
		name := strings.TrimSpace(req.Name)
		if snap.UserByName(name) != nil {
			return conflictf("name %s is taken", name)
		}
		snap.Counters.Users++
		user := models.User{
			ID:           snap.Counters.Users,
			Email:        req.Email,
			Name:         name,
			Bio:          "",
			Theme:        "light",
			FavoriteTags: []string{},
			PasswordHash: string(hash),
			CreatedAt:    time.Now().UTC(),
		}
		snap.Users = append(snap.Users, user)
		view = user.View()
		return nil
	})
	return view, err
}

func (s *userService) Authenticate(ctx context.Context, req models.LoginRequest) (models.UserView, error) {
	if err := validateRequest(&req); err != nil {
		return models.UserView{}, err
	}
	var view models.UserView
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		user := snap.UserByEmail(req.Email)
		if user == nil {
			return forbiddenf("unknown email or wrong password")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			return forbiddenf("unknown email or wrong password")
		}
		view = user.View()
		return nil
	})
	return view, err
}

func (s *userService) Get(ctx context.Context, id int) (models.UserView, error) {
	var view models.UserView
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		user := snap.UserByID(id)
		if user == nil {
			return notFoundf("user %d", id)
		}
		view = user.View()
		return nil
	})
	return view, err
}

func (s *userService) GetByName(ctx context.Context, name string) (models.UserView, error) {
	var view models.UserView
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		user := snap.UserByName(name)
		if user == nil {
			return notFoundf("user %s", name)
		}
		view = user.View()
		return nil
	})
	return view, err
}

func (s *userService) Search(ctx context.Context, query string, limit int) ([]models.UserView, error) {
	normalized := strings.ToLower(strings.TrimSpace(query))
	views := []models.UserView{}
	if normalized == "" {
		return views, nil
	}
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		for i := range snap.Users {
			if !strings.Contains(strings.ToLower(snap.Users[i].Name), normalized) {
				continue
			}
			views = append(views, snap.Users[i].View())
			if len(views) == limit {
				break
			}
		}
		return nil
	})
	return views, err
}

func (s *userService) UpdateProfile(ctx context.Context, id int, req models.UpdateProfileRequest) (models.UserView, error) {
	if err := validateRequest(&req); err != nil {
		return models.UserView{}, err
	}
	var view models.UserView
	err := s.store.Update(ctx, func(snap *store.Snapshot) error {
		user := snap.UserByID(id)
		if user == nil {
			return notFoundf("user %d", id)
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if other := snap.UserByName(name); other != nil && other.ID != id {
				return conflictf("name %s is taken", name)
			}
			user.Name = name
		}
		if req.Bio != nil {
			user.Bio = *req.Bio
		}
		if req.Theme != nil {
			user.Theme = *req.Theme
		}
		if req.FavoriteTags != nil {
			user.FavoriteTags = models.SanitizeTags(req.FavoriteTags)
		}
		if req.AvatarURL != nil {
			user.AvatarURL = req.AvatarURL
		}
		if req.IsPrivate != nil {
			user.IsPrivate = *req.IsPrivate
		}
		view = user.View()
		return nil
	})
	return view, err
}

func (s *userService) Stats(ctx context.Context, id int) (models.UserStats, error) {
	var stats models.UserStats
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		if snap.UserByID(id) == nil {
			return notFoundf("user %d", id)
		}
		postIDs := make(map[int]struct{})
		for i := range snap.Posts {
			if snap.Posts[i].UserID == id {
				postIDs[snap.Posts[i].ID] = struct{}{}
			}
		}
		for i := range snap.Likes {
			if _, ok := postIDs[snap.Likes[i].PostID]; ok {
				stats.TotalLikes++
			}
		}
		stats.PostCount = len(postIDs)
		stats.FollowerCount = snap.ApprovedFollowerCount(id)
		stats.FollowingCount = snap.ApprovedFollowingCount(id)
		return nil
	})
	return stats, err
}

func (s *userService) SuggestUsernames(ctx context.Context, base string, count int) ([]string, error) {
	if count <= 0 {
		count = 5
	}
	base = strings.Join(strings.Fields(strings.TrimSpace(base)), "_")
	if base == "" {
		return nil, invalidf("empty base name")
	}
	var suggestions []string
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		taken := make(map[string]struct{}, len(snap.Users))
		for i := range snap.Users {
			taken[strings.ToLower(snap.Users[i].Name)] = struct{}{}
		}
		tryCandidate := func(candidate string) {
			if len(suggestions) >= count {
				return
			}
			if _, ok := taken[strings.ToLower(candidate)]; !ok {
				taken[strings.ToLower(candidate)] = struct{}{}
				suggestions = append(suggestions, candidate)
			}
		}
		for i := 1; len(suggestions) < count && i <= 999; i++ {
			tryCandidate(fmt.Sprintf("%s%d", base, i))
		}
		for i := 1; len(suggestions) < count && i <= 999; i++ {
			tryCandidate(fmt.Sprintf("%s_%d", base, i))
		}
		for i := 0; len(suggestions) < count && i < 10; i++ {
			tryCandidate(fmt.Sprintf("%s_%d", base, rand.Intn(10000)))
		}
		return nil
	})
	return suggestions, err
}

func (s *userService) IsAdmin(ctx context.Context, id int) (bool, error) {
	var admin bool
	err := s.store.View(ctx, func(snap *store.Snapshot) error {
		admin = isAdminUser(snap, id, s.adminEmails)
		return nil
	})
	return admin, err
}
