package usecase

import (
	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/domain"
)

type impl struct {
	repo domain.PayTokenRepo
}

func New(repo domain.PayTokenRepo) domain.PayTokenUseCase {
	return &impl{repo}
}

func (im *impl) Get(c ctx.Ctx) (*domain.PayToken, error) {
	return im.repo.Get(c)
}

func (im *impl) Set(c ctx.Ctx, payToken *domain.PayToken) error {
	return im.repo.Set(c, payToken)
}
