package chain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/xerrors"

	bCtx "github.com/aurabay/goapi/base/ctx"
	"github.com/aurabay/goapi/base/log"
	"github.com/aurabay/goapi/domain"
	"github.com/aurabay/goapi/domain/keys"
	"github.com/aurabay/goapi/domain/nft"
	"github.com/aurabay/goapi/domain/token"
	"github.com/aurabay/goapi/service/cache"
	"github.com/aurabay/goapi/service/cache/provider/primitive"
)

func NewClient(cfg *ClientCfg) Client {
	return &client{
		lcdUrl:  cfg.LcdUrl,
		client:  cfg.HttpClient,
		timeout: cfg.Timeout,
		royaltyCache: cache.New(cache.ServiceConfig{
			Ttl:   10 * time.Minute,
			Pfx:   keys.PfxRoyalty,
			Cache: primitive.NewPrimitive(keys.PfxRoyalty, 4),
		}),
	}
}

type client struct {
	lcdUrl  string
	client  http.Client
	timeout time.Duration
	// royaltyCache remembers whether a collection implements the
	// royalty extension. Royalty amounts depend on the sale price and
	// are always queried fresh.
	royaltyCache cache.Service
}

func (c *client) LatestBlock(ctx bCtx.Ctx) (domain.BlockInfo, error) {
	u := fmt.Sprintf("%s/cosmos/base/tendermint/v1beta1/blocks/latest", c.lcdUrl)
	data, err := c.get(ctx, u)
	if err != nil {
		ctx.WithFields(log.Fields{"url": u, "err": err}).Error("c.get failed")
		return domain.BlockInfo{}, err
	}
	resp := blockResponse{}
	if err := json.Unmarshal(data, &resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return domain.BlockInfo{}, err
	}
	height, err := strconv.ParseUint(resp.Block.Header.Height, 10, 64)
	if err != nil {
		ctx.WithField("err", err).Error("parse block height failed")
		return domain.BlockInfo{}, err
	}
	return domain.BlockInfo{
		Height: height,
		Time:   resp.Block.Header.Time.UTC(),
	}, nil
}

func (c *client) OwnerOf(ctx bCtx.Ctx, contract domain.Address, tokenId domain.TokenId) (domain.Address, error) {
	query := map[string]interface{}{
		"owner_of": map[string]interface{}{
			"token_id": tokenId.String(),
		},
	}
	resp := ownerOfResponse{}
	if err := c.smartQuery(ctx, contract, query, &resp); err != nil {
		return domain.EmptyAddress, err
	}
	return domain.Address(resp.Owner), nil
}

func (c *client) HasNeverExpiringApproval(ctx bCtx.Ctx, contract domain.Address, tokenId domain.TokenId, operator domain.Address) (bool, error) {
	query := map[string]interface{}{
		"approval": map[string]interface{}{
			"token_id":        tokenId.String(),
			"spender":         operator.ToLowerStr(),
			"include_expired": false,
		},
	}
	resp := approvalResponse{}
	if err := c.smartQuery(ctx, contract, query, &resp); err != nil {
		// the contract answers a missing approval with a query error
		return false, nil
	}
	if resp.Approval == nil {
		return false, nil
	}
	return resp.Approval.Expires.isNever(), nil
}

func (c *client) RoyaltyInfo(ctx bCtx.Ctx, contract domain.Address, tokenId domain.TokenId, salePrice string) (*nft.RoyaltyInfo, error) {
	supported, err := c.checkRoyalties(ctx, contract)
	if err != nil {
		return nil, err
	}
	if !supported {
		return nil, domain.ErrNotFound
	}

	query := map[string]interface{}{
		"extension": map[string]interface{}{
			"msg": map[string]interface{}{
				"royalty_info": map[string]interface{}{
					"token_id":   tokenId.String(),
					"sale_price": salePrice,
				},
			},
		},
	}
	resp := royaltyInfoResponse{}
	if err := c.smartQuery(ctx, contract, query, &resp); err != nil {
		return nil, err
	}
	return &nft.RoyaltyInfo{
		Address: domain.Address(resp.Address),
		Amount:  resp.RoyaltyAmount,
	}, nil
}

// checkRoyalties asks whether the collection implements the cw2981
// extension, cached per contract
func (c *client) checkRoyalties(ctx bCtx.Ctx, contract domain.Address) (bool, error) {
	key := keys.RedisKey("check", contract.ToLowerStr())
	resp := checkRoyaltiesResponse{}
	err := c.royaltyCache.GetByFunc(ctx, key, &resp, func() (interface{}, error) {
		query := map[string]interface{}{
			"extension": map[string]interface{}{
				"msg": map[string]interface{}{
					"check_royalties": map[string]interface{}{},
				},
			},
		}
		res := &checkRoyaltiesResponse{}
		if err := c.smartQuery(ctx, contract, query, res); err != nil {
			// contracts without the extension reject the query
			return &checkRoyaltiesResponse{RoyaltyPayments: false}, nil
		}
		return res, nil
	})
	if err != nil {
		return false, err
	}
	return resp.RoyaltyPayments, nil
}

func (c *client) Allowance(ctx bCtx.Ctx, contract, owner, spender domain.Address) (*token.Allowance, error) {
	query := map[string]interface{}{
		"allowance": map[string]interface{}{
			"owner":   owner.ToLowerStr(),
			"spender": spender.ToLowerStr(),
		},
	}
	resp := allowanceResponse{}
	if err := c.smartQuery(ctx, contract, query, &resp); err != nil {
		return nil, err
	}
	expires, err := resp.Expires.toDomain()
	if err != nil {
		return nil, err
	}
	return &token.Allowance{
		Amount:  resp.Allowance,
		Expires: expires,
	}, nil
}

func (c *client) BankBalance(ctx bCtx.Ctx, owner domain.Address, denom domain.Denom) (string, error) {
	params := url.Values{
		"denom": {denom.String()},
	}
	u := fmt.Sprintf("%s/cosmos/bank/v1beta1/balances/%s/by_denom?%s", c.lcdUrl, owner.ToLowerStr(), params.Encode())
	data, err := c.get(ctx, u)
	if err != nil {
		ctx.WithFields(log.Fields{"url": u, "err": err}).Error("c.get failed")
		return "", err
	}
	resp := balanceResponse{}
	if err := json.Unmarshal(data, &resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return "", err
	}
	if resp.Balance.Amount == "" {
		return "0", nil
	}
	return resp.Balance.Amount, nil
}

// smartQuery runs a cosmwasm smart query against the contract and
// decodes the `data` payload into result
func (c *client) smartQuery(ctx bCtx.Ctx, contract domain.Address, query interface{}, result interface{}) error {
	raw, err := json.Marshal(query)
	if err != nil {
		return err
	}
	encoded := base64.StdEncoding.EncodeToString(raw)
	u := fmt.Sprintf("%s/cosmwasm/wasm/v1/contract/%s/smart/%s", c.lcdUrl, contract.ToLowerStr(), url.PathEscape(encoded))

	data, err := c.get(ctx, u)
	if err != nil {
		ctx.WithFields(log.Fields{
			"contract": contract,
			"err":      err,
		}).Error("c.get failed")
		return err
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(data, &envelope); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return err
	}
	if len(envelope.Data) == 0 {
		return ErrEmptyResponse
	}
	return json.Unmarshal(envelope.Data, result)
}

func (c *client) get(ctx bCtx.Ctx, url string) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, xerrors.Errorf("lcd returned status %d: %w", resp.StatusCode, ErrStatusCodeNotOk)
	}
	return ioutil.ReadAll(resp.Body)
}
