package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/quantatel/quantatel-go/internal/domain/model"
	apperrors "github.com/quantatel/quantatel-go/internal/errors"
)

// breachEnvelope matches GET /api/v1/hibp/account/{account}/breaches.
type breachEnvelope struct {
	Data struct {
		Breaches []model.Breach `json:"breaches"`
	} `json:"data"`
}

// passwordCheckRequest is the POST /api/v1/hibp/password/check request body.
type passwordCheckRequest struct {
	Password string `json:"password"`
}

// passwordCheckEnvelope matches the password check response.
type passwordCheckEnvelope struct {
	Data model.PasswordCheck `json:"data"`
}

// AccountBreaches returns the known breaches for an account (email address).
func (c *Client) AccountBreaches(ctx context.Context, account string) ([]model.Breach, error) {
	account = strings.TrimSpace(account)
	if account == "" {
		return nil, apperrors.ValidationField("account", "account is required")
	}

	path := "/api/v1/hibp/account/" + url.PathEscape(account) + "/breaches"
	var envelope breachEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Breaches, nil
}

// CheckPassword reports how many breach corpuses contain the given password.
func (c *Client) CheckPassword(ctx context.Context, password string) (*model.PasswordCheck, error) {
	if password == "" {
		return nil, apperrors.ValidationField("password", "password is required")
	}

	var envelope passwordCheckEnvelope
	err := c.do(
		ctx,
		http.MethodPost,
		"/api/v1/hibp/password/check",
		nil,
		passwordCheckRequest{Password: password},
		&envelope,
	)
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}
