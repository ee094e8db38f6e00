package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rizkypratama/go-blog-api/internal/domain/entity"
	repo "github.com/rizkypratama/go-blog-api/internal/domain/repository"
	"github.com/rizkypratama/go-blog-api/pkg/helpers"
	"github.com/rizkypratama/go-blog-api/pkg/mailer"
)

// AuthService answers login requests: it verifies credentials against the
// user store and mints a signed access token.
type AuthService struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
}

func NewAuthService(repo repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailEnabled bool) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Logger: logger, Pub: pub, MailEnabled: mailEnabled}
}

// LoginResult is what a successful login hands back to the boundary.
type LoginResult struct {
	UserID    int64
	Username  string
	Token     string
	ExpiresAt time.Time
}

// Authenticate verifies username/password. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.Repo.GetByUsername(username)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and issues an access token bound to the user id.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return nil, err
	}

	s.notifyLogin(ctx, u)

	return &LoginResult{UserID: u.ID, Username: u.Username, Token: token, ExpiresAt: exp}, nil
}

// notifyLogin queues a login notification email. Best effort: a broker or
// mail outage must not fail the login itself.
func (s *AuthService) notifyLogin(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled || u.Email == "" {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Kind:     mailer.JobLoginNotification,
		Username: u.Username,
		At:       time.Now().UTC(),
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("queue login notification failed")
	}
}
