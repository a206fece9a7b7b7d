package service

import (
	"context"
	"time"

	"github.com/MKhiriev/fitgrit/internal/store"
	"github.com/MKhiriev/fitgrit/models"
)

// memUserRepository is an in-memory store.UserRepository for service tests.
type memUserRepository struct {
	users map[string]models.User
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: make(map[string]models.User)}
}

func (m *memUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	for _, existing := range m.users {
		if existing.Email == store.NormalizeEmail(user.Email) {
			return models.User{}, store.ErrEmailAlreadyExists
		}
	}

	user.Email = store.NormalizeEmail(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	user.Version = 1
	m.users[user.ID] = user

	return user, nil
}

func (m *memUserRepository) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	email = store.NormalizeEmail(email)
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *memUserRepository) GetUser(_ context.Context, userID string) (models.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return models.User{}, store.ErrNoUserWasFound
	}
	return user, nil
}

func (m *memUserRepository) SaveUser(_ context.Context, user models.User) error {
	user.UpdatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

// memSessionRepository is an in-memory store.SessionRepository.
type memSessionRepository struct {
	sessions map[string]models.Session
}

func newMemSessionRepository() *memSessionRepository {
	return &memSessionRepository{sessions: make(map[string]models.Session)}
}

func (m *memSessionRepository) CreateSession(_ context.Context, session models.Session) error {
	m.sessions[session.ID] = session
	return nil
}

func (m *memSessionRepository) GetSession(_ context.Context, sessionID string) (models.Session, error) {
	session, ok := m.sessions[sessionID]
	if !ok {
		return models.Session{}, store.ErrNoSessionWasFound
	}
	return session, nil
}

func (m *memSessionRepository) DeleteSession(_ context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

func (m *memSessionRepository) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	deleted := 0
	for id, session := range m.sessions {
		if session.IsExpired(now) {
			delete(m.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

// memLogRepository is an in-memory store.LogRepository. Entries are returned
// newest-first like the real repository.
type memLogRepository struct {
	entries map[string][]models.LogEntry // userID/category -> entries
	nextID  int
}

func newMemLogRepository() *memLogRepository {
	return &memLogRepository{entries: make(map[string][]models.LogEntry)}
}

func (m *memLogRepository) key(userID, category string) string {
	return userID + "/" + category
}

func (m *memLogRepository) ListEntries(_ context.Context, userID, category string, date string, limit int) ([]models.LogEntry, error) {
	var result []models.LogEntry
	for _, entry := range m.entries[m.key(userID, category)] {
		if date == "" || entry.Date == date {
			result = append(result, entry)
		}
	}

	// newest first by date
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].Date > result[i].Date {
				result[i], result[j] = result[j], result[i]
			}
		}
	}

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *memLogRepository) AddEntry(_ context.Context, userID, category string, entry models.LogEntry) (models.LogEntry, error) {
	m.nextID++
	entry.ID = string(rune('a' + m.nextID))
	entry.Timestamp = time.Now()
	if entry.Date == "" {
		entry.Date = entry.Timestamp.Format(time.DateOnly)
	}

	k := m.key(userID, category)
	m.entries[k] = append(m.entries[k], entry)
	return entry, nil
}

func (m *memLogRepository) DeleteEntry(_ context.Context, userID, category, entryID string) error {
	k := m.key(userID, category)
	entries := m.entries[k]
	remaining := entries[:0:0]
	for _, entry := range entries {
		if entry.ID != entryID {
			remaining = append(remaining, entry)
		}
	}

	if len(remaining) == len(entries) {
		return store.ErrEntryNotFound
	}

	m.entries[k] = remaining
	return nil
}
