// Package sessions orchestrates the account lifecycle: signup, login with
// optional 2FA, challenge verification, token verification, and logout.
// It is the only layer allowed to collapse store-level failures into the
// generic rejections the public boundary exposes.
package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authcore/internal/common"
	"github.com/dmitrijs2005/authcore/internal/secret"
	"github.com/dmitrijs2005/authcore/internal/server/auth"
	"github.com/dmitrijs2005/authcore/internal/server/domain"
	"github.com/dmitrijs2005/authcore/internal/server/email"
	"github.com/dmitrijs2005/authcore/internal/server/twofacodes"
	"github.com/dmitrijs2005/authcore/internal/server/users"
)

const twoFAEmailSubject = "Your 2FA Code"

// LoginResult is the outcome of a successful first login factor. Exactly
// one branch is populated: a session token when the account has no second
// factor, or the attempt id of a freshly issued challenge when it does.
// The code itself travels only by email, never in the result.
type LoginResult struct {
	Requires2FA    bool
	Token          secret.String
	LoginAttemptID domain.LoginAttemptID
}

type Service struct {
	users  users.Repository
	tokens *auth.Service
	codes  twofacodes.Store
	sender email.Sender
}

func NewService(users users.Repository, tokens *auth.Service, codes twofacodes.Store, sender email.Sender) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		codes:  codes,
		sender: sender,
	}
}

// Signup registers a new account. It fails with common.ErrorAlreadyExists
// when the email is taken; signup is not idempotent even for an identical
// password.
func (s *Service) Signup(ctx context.Context, user *domain.User) error {
	return s.users.Add(ctx, user)
}

// Login verifies the first factor. Unknown email and wrong password are
// deliberately indistinguishable to the caller. For 2FA accounts a fresh
// challenge replaces any pending one and the code is emailed; no token is
// issued until the challenge is answered.
func (s *Service) Login(ctx context.Context, emailAddr domain.Email, password domain.Password) (*LoginResult, error) {
	user, err := s.users.Validate(ctx, emailAddr, password)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorIncorrectCredentials) {
			return nil, common.ErrorIncorrectCredentials
		}
		return nil, err
	}

	if !user.Requires2FA {
		token, err := s.tokens.Issue(ctx, user.Email.String())
		if err != nil {
			return nil, err
		}
		return &LoginResult{Token: token}, nil
	}

	id, code, err := s.codes.Create(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Your 2FA code is: %s", code.Expose())
	if err := s.sender.Send(ctx, user.Email, twoFAEmailSubject, body); err != nil {
		// The stored challenge stays live; it expires on its own TTL.
		return nil, fmt.Errorf("%w: delivering 2FA code: %w", common.ErrorInternal, err)
	}

	return &LoginResult{Requires2FA: true, LoginAttemptID: id}, nil
}

// Verify2FA spends the pending challenge and, on an exact match of both
// attempt id and code, issues a session token. A missing, expired, or
// already-spent challenge and a value mismatch all surface as one generic
// credential rejection.
func (s *Service) Verify2FA(ctx context.Context, emailAddr domain.Email, id domain.LoginAttemptID, code domain.TwoFACode) (secret.String, error) {
	if err := s.codes.Consume(ctx, emailAddr, id, code); err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorIncorrectCredentials) {
			return secret.String{}, common.ErrorIncorrectCredentials
		}
		return secret.String{}, err
	}

	return s.tokens.Issue(ctx, emailAddr.String())
}

// VerifyToken checks a bearer token and returns the account email it was
// issued for.
func (s *Service) VerifyToken(ctx context.Context, token string) (string, error) {
	return s.tokens.Validate(ctx, token)
}

// Logout revokes a session token. The token must still verify: an
// expired, malformed, or already-revoked token is rejected rather than
// silently accepted.
func (s *Service) Logout(ctx context.Context, token string) error {
	if _, err := s.tokens.Validate(ctx, token); err != nil {
		return err
	}

	return s.tokens.Revoke(ctx, token)
}
