package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/nhle/humanai-workspace/internal/kv"
	"github.com/nhle/humanai-workspace/internal/logging"
	"github.com/nhle/humanai-workspace/internal/model"
	"github.com/nhle/humanai-workspace/internal/store"
)

var (
	// ErrNotLoggedIn is returned when no user is signed in.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrMissingCredentials is returned by Login when email or password is empty.
	ErrMissingCredentials = errors.New("email and password are required")
)

func (w *Workspace) loadUser(ctx context.Context) error {
	raw, err := w.storage.Get(ctx, store.KeyUser)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.Email == "" {
		w.log.Warn("discarding malformed user", zap.Error(err))
		return nil
	}
	w.user = &u
	return nil
}

func (w *Workspace) saveUser(ctx context.Context, u model.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshaling user: %w", err)
	}
	if err := w.storage.Set(ctx, store.KeyUser, string(data)); err != nil {
		return fmt.Errorf("persisting user: %w", err)
	}
	w.user = &u
	return nil
}

// Login signs in with any non-empty email and password. The password is
// checked for presence only and never stored. An empty name defaults to
// the local part of email.
func (w *Workspace) Login(ctx context.Context, email, password, name string) (model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.User{}, ErrMissingCredentials
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	u := model.User{Name: name, Email: email, Avatar: Initials(name)}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.saveUser(ctx, u); err != nil {
		return model.User{}, err
	}
	w.log.Info("logged in", logging.Email("email", email))
	return u, nil
}

// CurrentUser returns the signed-in user.
func (w *Workspace) CurrentUser() (model.User, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.user == nil {
		return model.User{}, ErrNotLoggedIn
	}
	return *w.user, nil
}

// UpdateUser applies patch to the signed-in user.
func (w *Workspace) UpdateUser(ctx context.Context, patch model.UserPatch) (model.User, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.user == nil {
		return model.User{}, ErrNotLoggedIn
	}
	u := *w.user
	if patch.Name != nil {
		u.Name = strings.TrimSpace(*patch.Name)
		if patch.Avatar == nil {
			u.Avatar = Initials(u.Name)
		}
	}
	if patch.Email != nil {
		if strings.TrimSpace(*patch.Email) == "" {
			return model.User{}, ErrMissingCredentials
		}
		u.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if err := w.saveUser(ctx, u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Logout forgets the signed-in user. It is a no-op when nobody is signed in.
func (w *Workspace) Logout(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.storage.Remove(ctx, store.KeyUser); err != nil {
		return fmt.Errorf("removing user: %w", err)
	}
	w.user = nil
	return nil
}

// Initials returns the first two letters of name in upper case, or "US"
// when name has none.
func Initials(name string) string {
	var out []rune
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out = append(out, unicode.ToUpper(r))
			if len(out) == 2 {
				break
			}
		}
	}
	if len(out) == 0 {
		return "US"
	}
	return string(out)
}

func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
