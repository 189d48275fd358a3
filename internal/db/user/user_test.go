package user

import (
	"context"
	"errors"
	c "resetme/internal/core/domain/common"
	"resetme/internal/core/domain/user"
	"resetme/internal/db"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	PASSWORD_HASH = "test-password-hash"
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUserRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestCreateSuccess() {
	input := user.CreateUserInput{
		Email:        c.Email(EMAIL),
		PasswordHash: user.PasswordHash(PASSWORD_HASH),
		CreatedAt:    NOW,
	}
	u, err := suite.repo.Create(context.Background(), input)

	assert := suite.Require()
	assert.Nil(err)
	assert.NotEqual(user.ID(0), u.ID)
	assert.Equal(input.Email, u.Email)
	assert.Equal(input.PasswordHash, u.PasswordHash)
	assert.True(input.CreatedAt.Equal(u.CreatedAt))
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	input := user.CreateUserInput{
		Email:        c.Email(EMAIL),
		PasswordHash: user.PasswordHash(PASSWORD_HASH),
		CreatedAt:    NOW,
	}
	_, err := suite.repo.Create(context.Background(), input)

	assert := suite.Require()
	assert.Nil(err)

	_, err = suite.repo.Create(context.Background(), input)
	assert.True(errors.Is(err, user.ErrEmailAlreadyExists))
}

func (suite *testSuite) TestGetByID() {
	created := suite.createUser(EMAIL)

	u, err := suite.repo.GetByID(context.Background(), created.ID)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, u.ID)
	assert.Equal(created.Email, u.Email)

	_, err = suite.repo.GetByID(context.Background(), created.ID+1)
	assert.True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *testSuite) TestGetByEmail() {
	created := suite.createUser(EMAIL)

	u, err := suite.repo.GetByEmail(context.Background(), c.Email(EMAIL))

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, u.ID)

	_, err = suite.repo.GetByEmail(context.Background(), c.Email("other@test.test"))
	assert.True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *testSuite) TestSetPassword() {
	created := suite.createUser(EMAIL)

	err := suite.repo.SetPassword(context.Background(), created.ID, user.PasswordHash("new-password-hash"))

	assert := suite.Require()
	assert.Nil(err)

	u, err := suite.repo.GetByID(context.Background(), created.ID)
	assert.Nil(err)
	assert.Equal(user.PasswordHash("new-password-hash"), u.PasswordHash)

	err = suite.repo.SetPassword(context.Background(), created.ID+1, user.PasswordHash("x"))
	assert.True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *testSuite) createUser(email string) user.User {
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email:        c.Email(email),
		PasswordHash: user.PasswordHash(PASSWORD_HASH),
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	return u
}
