package usecase

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/account"
	mAccount "github.com/aurabay/goapi/domain/account/mocks"
)

var (
	mockCtx = ctx.Background()
	address = domain.Address("aura1qqx5zt7sg3mqyrg9s6t2dkmjknqzj3dvxwwgnl")
)

type AccountTestSuite struct {
	suite.Suite

	repo *mAccount.Repo
	im   account.Usecase
}

func (s *AccountTestSuite) SetupTest() {
	s.repo = &mAccount.Repo{}
	s.im = New(&AccountUseCaseCfg{Repo: s.repo})
}

func (s *AccountTestSuite) TestGetReturnsStoredAccount() {
	stored := &account.Account{Address: address}
	s.repo.On("Get", mock.Anything, address).Return(stored, nil)

	a, err := s.im.Get(mockCtx, address)
	s.NoError(err)
	s.Equal(stored, a)
}

func (s *AccountTestSuite) TestGetUnknownAddress() {
	s.repo.On("Get", mock.Anything, address).Return(nil, domain.ErrNotFound)

	_, err := s.im.Get(mockCtx, address)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *AccountTestSuite) TestCreateInsertsNewAccount() {
	s.repo.On("Get", mock.Anything, address).Return(nil, domain.ErrNotFound)
	s.repo.On("Insert", mock.Anything, mock.MatchedBy(func(a *account.Account) bool {
		return a.Address == address && !a.CreatedAt.IsZero()
	})).Return(nil)

	a, err := s.im.Create(mockCtx, address)
	s.NoError(err)
	s.Equal(address, a.Address)
	s.repo.AssertExpectations(s.T())
}

func (s *AccountTestSuite) TestCreateIsIdempotent() {
	stored := &account.Account{Address: address}
	s.repo.On("Get", mock.Anything, address).Return(stored, nil)

	a, err := s.im.Create(mockCtx, address)
	s.NoError(err)
	s.Equal(stored, a)
	s.repo.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func TestAccountTestSuite(t *testing.T) {
	suite.Run(t, new(AccountTestSuite))
}
