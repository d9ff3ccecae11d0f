package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/fitxp/internal/calendar"
	"github.com/2beens/fitxp/internal/docstore"
	"github.com/2beens/fitxp/internal/profile"
	"github.com/2beens/fitxp/internal/telemetry/tracing"
	"github.com/2beens/fitxp/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL        = 24 * 7 * time.Hour
	MinPasswordLength = 6

	sessionKeyPrefix = "fitxp-session||"
	tokensSetKey     = "fitxp-sessions"
	tokenIssuer      = "fitxp"
)

var (
	ErrInvalidRegistration = errors.New("invalid registration")
	ErrUserExists          = errors.New("username already exists")
	ErrWrongCredentials    = errors.New("wrong credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrSessionExpired      = errors.New("session expired")
)

type ProfileProvisioner interface {
	Ensure(ctx context.Context, userID string) (*profile.Profile, error)
}

// Claims are carried by the bearer token. The session id points at the
// redis session, so a token dies with its session on logout.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type LoginResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Service struct {
	users       *userRepo
	redisClient *redis.Client
	checker     Checker
	profiles    ProfileProvisioner
	jwtSecret   []byte
	ttl         time.Duration
	clock       calendar.Clock
	// ability to inject random string generator func for session ids (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(
	store docstore.Store,
	redisClient *redis.Client,
	profiles ProfileProvisioner,
	jwtSecret string,
	ttl time.Duration,
	clock calendar.Clock,
) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		users:          &userRepo{store: store},
		redisClient:    redisClient,
		checker:        NewLoginChecker(ttl, redisClient, clock),
		profiles:       profiles,
		jwtSecret:      []byte(jwtSecret),
		ttl:            ttl,
		clock:          clock,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Register creates the user and provisions a default profile for it.
func (s *Service) Register(ctx context.Context, reg Registration) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if normalizeUsername(reg.Username) == "" {
		return nil, fmt.Errorf("%w: username empty", ErrInvalidRegistration)
	}
	if len(reg.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidRegistration, MinPasswordLength)
	}
	if reg.Password != reg.PasswordConfirm {
		return nil, fmt.Errorf("%w: passwords do not match", ErrInvalidRegistration)
	}

	existing, err := s.users.getByUsername(ctx, reg.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	passwordHash, err := pkg.HashPassword(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.create(ctx, reg.Username, passwordHash)
	if err != nil {
		return nil, err
	}

	if _, err := s.profiles.Ensure(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("provision profile: %w", err)
	}

	log.Debugf("auth: registered new user [%s]", user.ID)
	return user, nil
}

func (s *Service) Login(ctx context.Context, creds Credentials) (_ *LoginResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := s.users.getByUsername(ctx, creds.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		log.Tracef("[username] failed login attempt for user: %s", creds.Username)
		return nil, ErrWrongCredentials
	}
	if !pkg.CheckPasswordHash(creds.Password, user.PasswordHash) {
		log.Tracef("[password] failed login attempt for user: %s", creds.Username)
		return nil, ErrWrongCredentials
	}

	resp, err := s.newSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	resp.Username = user.Username
	return resp, nil
}

// Authenticate verifies the bearer token and its session, and returns the user id.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", err
	}

	isLogged, err := s.checker.IsLogged(ctx, claims.SessionID)
	if err != nil {
		return "", fmt.Errorf("check session: %w", err)
	}
	if !isLogged {
		return "", ErrSessionExpired
	}
	return claims.Subject, nil
}

// Logout drops the session behind token. It reports false if there was none.
func (s *Service) Logout(ctx context.Context, token string) (bool, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return false, err
	}
	return s.dropSession(ctx, claims.SessionID)
}

// Refresh swaps a live token for a new one with a fresh session.
func (s *Service) Refresh(ctx context.Context, token string) (_ *LoginResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.refresh")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	userID, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if _, err := s.Logout(ctx, token); err != nil {
		return nil, err
	}
	return s.newSession(ctx, userID)
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old.
// It returns the number of removed sessions.
func (s *Service) ScanAndClean(ctx context.Context) int {
	cmd := s.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("auth service, scan and clean, get sessions: %s", err)
		return 0
	}

	sessionIDs := cmd.Val()
	if len(sessionIDs) == 0 {
		log.Debugln("auth service, scan and clean abort, no sessions")
		return 0
	}

	log.Debugf("auth service, scan and clean [%d sessions] start ...", len(sessionIDs))
	var toRemove []string
	for _, sessionID := range sessionIDs {
		cmd := s.redisClient.Get(ctx, sessionKeyPrefix+sessionID)
		if err := cmd.Err(); err != nil {
			if errors.Is(err, redis.Nil) {
				toRemove = append(toRemove, sessionID)
				continue
			}
			log.Errorf("auth service, scan and clean session %s: %s", sessionID, err)
			continue
		}

		createdAtUnix, err := strconv.ParseInt(cmd.Val(), 10, 64)
		if err != nil {
			log.Errorf("auth service, scan and clean session %s: %s", sessionID, err)
			continue
		}

		if s.clock.Now().Sub(time.Unix(createdAtUnix, 0)) > s.ttl {
			toRemove = append(toRemove, sessionID)
		}
	}

	removed := 0
	for _, sessionID := range toRemove {
		if err := s.redisClient.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
			log.Errorf("auth service, clean session %s: %s", sessionID, err)
			continue
		}
		if err := s.redisClient.SRem(ctx, tokensSetKey, sessionID).Err(); err != nil {
			log.Errorf("auth service, clean session %s: %s", sessionID, err)
			continue
		}
		removed++
	}

	log.Debugf("auth service, scan and clean done, removed %d sessions", removed)
	return removed
}

func (s *Service) newSession(ctx context.Context, userID string) (*LoginResponse, error) {
	sessionID, err := s.RandStringFunc(35)
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	now := s.clock.Now()
	if err := s.redisClient.Set(ctx, sessionKeyPrefix+sessionID, now.Unix(), 0).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	// add session to the set of sessions
	if err := s.redisClient.SAdd(ctx, tokensSetKey, sessionID).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	expiresAt := now.Add(s.ttl)
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &LoginResponse{
		Token:     signed,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *Service) dropSession(ctx context.Context, sessionID string) (bool, error) {
	sessionKey := sessionKeyPrefix + sessionID
	if err := s.redisClient.Get(ctx, sessionKey).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := s.redisClient.Del(ctx, sessionKey).Err(); err != nil {
		return false, err
	}
	// remove session from the set of sessions
	if err := s.redisClient.SRem(ctx, tokensSetKey, sessionID).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) parseToken(token string) (*Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing", ErrInvalidToken)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.SessionID == "" {
		return nil, fmt.Errorf("%w: bad claims", ErrInvalidToken)
	}
	return claims, nil
}
