package services

import (
	"testing"

	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/memory"
	"golang.org/x/crypto/bcrypt"
)

func fastHash(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.MinCost)
	return string(b), err
}

func newUserService(t *testing.T) (*UserService, *memory.RepositoryManager) {
	t.Helper()
	m := memory.NewRepositoryManager()
	s := NewUserService(nil, m)
	s.hashPassword = fastHash
	return s, m
}

func ptr[T any](v T) *T { return &v }
