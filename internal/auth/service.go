package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgAuth "github.com/olsam100/lendsqr-admin-api/pkg/auth"
	"github.com/olsam100/lendsqr-admin-api/pkg/auth/session"
	"github.com/olsam100/lendsqr-admin-api/pkg/config"
	pkgerrors "github.com/olsam100/lendsqr-admin-api/pkg/errors"
	"github.com/olsam100/lendsqr-admin-api/pkg/logger"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
//
// The dashboard is a demo surface: there is no credential store, so any
// syntactically valid email/password pair opens a session. The token and
// session machinery behind it is real, which is what the rest of the API
// authenticates against.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, accessID string) error
}

type service struct {
	session sessionManager
	jwtCfg  config.JWTConfig
	logg    *logger.Logger
	now     func() time.Time
}

type sessionManager interface {
	Save(ctx context.Context, accessID, email string) error
	Revoke(ctx context.Context, accessID string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	Logger         *logger.Logger
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		session: params.SessionManager,
		jwtCfg:  params.JWTConfig,
		logg:    params.Logger,
		now:     time.Now,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := checkCredentialShape(email, req.Password); err != nil {
		return nil, err
	}

	accessID := session.NewAccessID()
	now := s.now()

	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		Email: email,
		JTI:   accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	if err := s.session.Save(ctx, accessID, email); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist session")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithOperator(ctx, email), "operator logged in")
	}

	return &LoginResponse{
		AccessToken: token,
		Email:       email,
		ExpiresAt:   now.Add(s.jwtCfg.SessionTTL()),
	}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if accessID == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// checkCredentialShape applies the credential rules: a plausible email and a
// password of at least six characters. Request decoding already validates
// the same rules; this keeps the service safe when called directly.
func checkCredentialShape(email, password string) error {
	if email == "" || !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if len(password) < 6 {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return nil
}
