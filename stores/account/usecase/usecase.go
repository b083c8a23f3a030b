package usecase

import (
	"time"

	"github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/log"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/account"
)

type AccountUseCaseCfg struct {
	Repo account.Repo
}

type impl struct {
	repo account.Repo
}

// New creates account usecase
func New(cfg *AccountUseCaseCfg) account.Usecase {
	return &impl{
		repo: cfg.Repo,
	}
}

func (im *impl) Get(c ctx.Ctx, address domain.Address) (*account.Account, error) {
	a, err := im.repo.Get(c, address)
	if err != nil {
		if err != domain.ErrNotFound {
			c.WithFields(log.Fields{
				"address": address,
				"err":     err,
			}).Error("repo.Get failed")
		}
		return nil, err
	}
	return a, nil
}

// Create inserts the account if it does not exist yet. Issuing a token
// for a known address returns the stored record untouched.
func (im *impl) Create(c ctx.Ctx, address domain.Address) (*account.Account, error) {
	a, err := im.repo.Get(c, address)
	if err == nil {
		return a, nil
	}
	if err != domain.ErrNotFound {
		return nil, err
	}

	now := time.Now()
	a = &account.Account{
		Address:   address.ToLower(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := im.repo.Insert(c, a); err != nil {
		c.WithFields(log.Fields{
			"address": address,
			"err":     err,
		}).Error("repo.Insert failed")
		return nil, err
	}
	return a, nil
}
