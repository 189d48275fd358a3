package sessionstore

import (
	"context"
	"resetme/internal/core/domain/resettoken"
	"resetme/internal/core/domain/session"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v9"
	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	store *Redis
}

func (s *testSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.store = NewRedis(client, time.Hour)
}

func TestSessionStore(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestTokenSlot() {
	sessionID := session.ID("aaa-bbb")

	_, ok, err := s.store.Get(context.Background(), sessionID)
	s.Nil(err)
	s.False(ok)

	err = s.store.Put(context.Background(), sessionID, resettoken.Token("test-token"))
	s.Nil(err)

	token, ok, err := s.store.Get(context.Background(), sessionID)
	s.Nil(err)
	s.True(ok)
	s.Equal(resettoken.Token("test-token"), token)

	_, ok, err = s.store.Get(context.Background(), session.ID("other"))
	s.Nil(err)
	s.False(ok)
}

func (s *testSuite) TestPutOverwrites() {
	sessionID := session.ID("aaa-bbb")

	s.Nil(s.store.Put(context.Background(), sessionID, resettoken.Token("first")))
	s.Nil(s.store.Put(context.Background(), sessionID, resettoken.Token("second")))

	token, ok, err := s.store.Get(context.Background(), sessionID)
	s.Nil(err)
	s.True(ok)
	s.Equal(resettoken.Token("second"), token)
}

func (s *testSuite) TestClear() {
	sessionID := session.ID("aaa-bbb")

	s.Nil(s.store.Put(context.Background(), sessionID, resettoken.Token("test-token")))
	s.Nil(s.store.Clear(context.Background(), sessionID))

	_, ok, err := s.store.Get(context.Background(), sessionID)
	s.Nil(err)
	s.False(ok)

	s.Nil(s.store.Clear(context.Background(), sessionID))
}

func (s *testSuite) TestTokenSlotExpires() {
	sessionID := session.ID("aaa-bbb")

	s.Nil(s.store.Put(context.Background(), sessionID, resettoken.Token("test-token")))
	s.mini.FastForward(2 * time.Hour)

	_, ok, err := s.store.Get(context.Background(), sessionID)
	s.Nil(err)
	s.False(ok)
}

func (s *testSuite) TestFlashes() {
	sessionID := session.ID("aaa-bbb")

	flashes, err := s.store.Pop(context.Background(), sessionID)
	s.Nil(err)
	s.Len(flashes, 0)

	first := session.Flash{Category: session.FlashError, Message: "something went wrong"}
	second := session.Flash{Category: session.FlashSuccess, Message: "done"}
	s.Nil(s.store.Add(context.Background(), sessionID, first))
	s.Nil(s.store.Add(context.Background(), sessionID, second))

	flashes, err = s.store.Pop(context.Background(), sessionID)
	s.Nil(err)
	s.Equal([]session.Flash{first, second}, flashes)

	flashes, err = s.store.Pop(context.Background(), sessionID)
	s.Nil(err)
	s.Len(flashes, 0)
}

func (s *testSuite) TestFlashesAreScopedToSession() {
	s.Nil(s.store.Add(
		context.Background(),
		session.ID("aaa"),
		session.Flash{Category: session.FlashError, Message: "for aaa"},
	))

	flashes, err := s.store.Pop(context.Background(), session.ID("bbb"))
	s.Nil(err)
	s.Len(flashes, 0)
}
