package characterdraft_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	characterdraft "github.com/KirkDiggler/rpg-charbuilder/internal/repositories/character_draft"
)

type RedisFailureTestSuite struct {
	suite.Suite
	mock redismock.ClientMock
	repo characterdraft.Repository
	ctx  context.Context
}

func (s *RedisFailureTestSuite) SetupTest() {
	client, mock := redismock.NewClientMock()
	s.mock = mock

	repo, err := characterdraft.NewRedis(&characterdraft.Config{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisFailureTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RedisFailureTestSuite) TestCreateActiveLookupFails() {
	s.mock.ExpectGet("charbuilder:active").SetErr(stderrors.New("connection refused"))

	_, err := s.repo.Create(s.ctx, characterdraft.CreateInput{Draft: testDraft("draft_1")})
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to read active draft")
	s.Contains(err.Error(), "connection refused")
}

func (s *RedisFailureTestSuite) TestGetActiveLookupFails() {
	s.mock.ExpectGet("charbuilder:active").SetErr(stderrors.New("timeout"))

	_, err := s.repo.GetActive(s.ctx)
	s.Require().Error(err)
	s.False(errors.IsNotFound(err))
}

func (s *RedisFailureTestSuite) TestGetActiveDanglingPointer() {
	s.mock.ExpectGet("charbuilder:active").SetVal("draft_7")
	s.mock.ExpectGet("charbuilder:draft:draft_7").RedisNil()

	_, err := s.repo.GetActive(s.ctx)
	s.True(errors.IsNotFound(err))
}

func (s *RedisFailureTestSuite) TestUpdateExistenceCheckFails() {
	s.mock.ExpectExists("charbuilder:draft:draft_1").SetErr(stderrors.New("timeout"))

	_, err := s.repo.Update(s.ctx, characterdraft.UpdateInput{Draft: testDraft("draft_1")})
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to check draft existence")
}

func (s *RedisFailureTestSuite) TestDeleteActiveLookupFails() {
	s.mock.ExpectExists("charbuilder:draft:draft_1").SetVal(1)
	s.mock.ExpectGet("charbuilder:active").SetErr(stderrors.New("timeout"))

	_, err := s.repo.Delete(s.ctx, characterdraft.DeleteInput{ID: "draft_1"})
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to read active draft")
}

func TestRedisFailureTestSuite(t *testing.T) {
	suite.Run(t, new(RedisFailureTestSuite))
}
