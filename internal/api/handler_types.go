package api

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/terraincognita07/dailybrew/internal/i18n"
	"github.com/terraincognita07/dailybrew/internal/services"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

// Services bundles the operations the HTTP layer exposes.
type Services struct {
	Users   *services.UserService
	Drinks  *services.DrinkService
	Intakes *services.IntakeService
	Limits  *services.LimitService
	Status  *services.StatusService
	History *services.HistoryService
	Export  *services.ExportService
	Live    *services.LiveService
}

type Options struct {
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	I18n         *i18n.Manager
	Log          *zap.Logger
}

type Handler struct {
	services     Services
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	log          *zap.Logger
	loginLimiter *attemptLimiter
	now          func() time.Time
}

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

type credentialsInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type drinkPayload struct {
	Name               string `json:"name"`
	CaffeinePerServing int    `json:"caffeine_per_serving"`
	ServingSize        int    `json:"serving_size"`
	Icon               string `json:"icon"`
}

type intakePayload struct {
	DrinkID   uint       `json:"drink_id"`
	Servings  *float64   `json:"servings"`
	Timestamp *time.Time `json:"timestamp"`
}

type limitPayload struct {
	Amount int `json:"amount"`
}

func NewHandler(deps Services, options Options) (*Handler, error) {
	if len(options.SecretKey) == 0 {
		return nil, errors.New("secret key is required")
	}
	if options.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if options.Location == nil {
		options.Location = time.Local
	}
	if options.Log == nil {
		options.Log = zap.NewNop()
	}

	return &Handler{
		services:     deps,
		secretKey:    []byte(options.SecretKey),
		location:     options.Location,
		cookieSecure: options.CookieSecure,
		i18n:         options.I18n,
		log:          options.Log.Named("api"),
		loginLimiter: newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		now:          time.Now,
	}, nil
}
