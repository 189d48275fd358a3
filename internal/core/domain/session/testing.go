package session

import (
	"context"
	"fmt"
	"resetme/internal/core/domain/resettoken"
	"sync"
)

type FakeTokenStore struct {
	Tokens      map[ID]resettoken.Token
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeTokenStore() *FakeTokenStore {
	return &FakeTokenStore{Tokens: make(map[ID]resettoken.Token)}
}

func (s *FakeTokenStore) Put(ctx context.Context, id ID, t resettoken.Token) error {
	if s.ReturnError {
		return fmt.Errorf("could not put token for session %s", id)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Tokens[id] = t
	return nil
}

func (s *FakeTokenStore) Get(ctx context.Context, id ID) (resettoken.Token, bool, error) {
	if s.ReturnError {
		return "", false, fmt.Errorf("could not get token for session %s", id)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	t, ok := s.Tokens[id]
	return t, ok, nil
}

func (s *FakeTokenStore) Clear(ctx context.Context, id ID) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.Tokens, id)
	return nil
}

type FakeFlashStore struct {
	Flashes     map[ID][]Flash
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeFlashStore() *FakeFlashStore {
	return &FakeFlashStore{Flashes: make(map[ID][]Flash)}
}

func (s *FakeFlashStore) Add(ctx context.Context, id ID, f Flash) error {
	if s.ReturnError {
		return fmt.Errorf("could not add flash for session %s", id)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Flashes[id] = append(s.Flashes[id], f)
	return nil
}

func (s *FakeFlashStore) Pop(ctx context.Context, id ID) ([]Flash, error) {
	if s.ReturnError {
		return nil, fmt.Errorf("could not pop flashes for session %s", id)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	flashes := s.Flashes[id]
	delete(s.Flashes, id)
	return flashes, nil
}
