package mockapi

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/octabyte/bm-gateway/enums"
	"github.com/octabyte/bm-gateway/models"
)

var (
	errNotFound           = errors.New("not found")
	errEmailTaken         = errors.New("email already registered")
	errInvalidCredentials = errors.New("invalid email or password")
)

type account struct {
	profile models.UserProfile
	hash    []byte
}

type refreshGrant struct {
	userID  string
	expires time.Time
}

// store keeps everything in memory. Lists keep insertion order.
type store struct {
	mu   sync.RWMutex
	cost int

	accounts map[string]*account
	emails   map[string]string
	grants   map[string]refreshGrant

	projects []models.Project
	payments []models.Payment
	notices  []models.Notice
	banners  []models.Banner
	funds    []models.FundEntry
}

func newStore(cost int) *store {
	return &store{
		cost:     cost,
		accounts: make(map[string]*account),
		emails:   make(map[string]string),
		grants:   make(map[string]refreshGrant),
	}
}

func (s *store) createUser(name, email, phone, password string, role enums.Role) (models.UserProfile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.UserProfile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, ok := s.emails[key]; ok {
		return models.UserProfile{}, errEmailTaken
	}

	profile := models.UserProfile{
		ID:               uuid.NewString(),
		Name:             name,
		Email:            email,
		Phone:            phone,
		Role:             role,
		Status:           enums.UserStatusActive,
		MembershipStatus: enums.MembershipStatusPending,
	}
	if role != enums.RoleUser {
		profile.MembershipStatus = enums.MembershipStatusApproved
	}
	s.accounts[profile.ID] = &account{profile: profile, hash: hash}
	s.emails[key] = profile.ID
	return profile, nil
}

func (s *store) authenticate(email, password string) (models.UserProfile, error) {
	s.mu.RLock()
	acc, ok := s.accounts[s.emails[strings.ToLower(email)]]
	s.mu.RUnlock()
	if !ok {
		return models.UserProfile{}, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return models.UserProfile{}, errInvalidCredentials
	}
	return acc.profile, nil
}

func (s *store) user(id string) (models.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[id]
	if !ok {
		return models.UserProfile{}, false
	}
	return acc.profile, true
}

func (s *store) users() []models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.UserProfile, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, acc.profile)
	}
	return out
}

func (s *store) updateUser(id string, fn func(*models.UserProfile)) (models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return models.UserProfile{}, errNotFound
	}
	fn(&acc.profile)
	return acc.profile, nil
}

func (s *store) grant(userID string, ttl time.Duration) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.grants[token] = refreshGrant{userID: userID, expires: time.Now().Add(ttl)}
	s.mu.Unlock()
	return token
}

// rotate consumes a refresh token and returns its owner.
func (s *store) rotate(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.grants[token]
	delete(s.grants, token)
	if !ok || time.Now().After(g.expires) {
		return "", false
	}
	if _, ok := s.accounts[g.userID]; !ok {
		return "", false
	}
	return g.userID, true
}

func (s *store) revoke(token string) {
	s.mu.Lock()
	delete(s.grants, token)
	s.mu.Unlock()
}

func (s *store) revokeAll() {
	s.mu.Lock()
	s.grants = make(map[string]refreshGrant)
	s.mu.Unlock()
}
