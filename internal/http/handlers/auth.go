package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"cagnotte/internal/domain"
	"cagnotte/internal/middleware"
	"cagnotte/internal/phone"
)

const (
	tokenIssuer   = "cagnotte"
	tokenAudience = "cagnotte-clients"

	minPasswordLength = 6
)

type registerRequest struct {
	PhoneNumber     string `json:"phone_number"`
	Name            string `json:"name"`
	Country         string `json:"country"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Country == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Country selection is required.")
		return
	}
	country, ok := a.Countries.Lookup(req.Country)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "Invalid country code.")
		return
	}
	normalized, err := phone.Normalize(req.PhoneNumber, country.Code)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "Invalid phone number format for the selected country.")
		return
	}
	if len(req.Password) < minPasswordLength {
		a.error(w, http.StatusBadRequest, "bad_request", "Password must be at least 6 characters.")
		return
	}
	if req.Password != req.ConfirmPassword {
		a.error(w, http.StatusBadRequest, "bad_request", "Passwords do not match.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.Logger.Error().Err(err).Msg("hash password failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register user")
		return
	}

	user := &domain.User{
		ID:           domain.NewID(),
		PhoneNumber:  normalized,
		Name:         req.Name,
		Country:      country.Code,
		PasswordHash: string(hash),
		Balance:      a.Cfg.InitialBalance,
		IsActive:     true,
	}
	if err := a.Users.Create(r.Context(), user); err != nil {
		if errors.Is(err, domain.ErrPhoneTaken) {
			a.error(w, http.StatusConflict, "conflict", "Phone number already registered.")
			return
		}
		a.Logger.Error().Err(err).Msg("create user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register user")
		return
	}

	a.json(w, http.StatusCreated, map[string]string{"message": "User registered successfully!"})
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// loginResponse has fixed fields; no dynamic renaming of token keys.
type loginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         userPayload `json:"user"`
}

type userPayload struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	PhoneNumber string          `json:"phoneNumber"`
	Solde       decimal.Decimal `json:"solde"`
}

func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.PhoneNumber == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "phone_number and password are required")
		return
	}

	user, err := a.Users.GetByPhone(r.Context(), req.PhoneNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}
		a.Logger.Error().Err(err).Msg("load user failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to authenticate")
		return
	}
	if !user.IsActive {
		a.error(w, http.StatusUnauthorized, "unauthorized", "account is disabled")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}

	access, refresh, err := a.issueTokens(user.ID)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign tokens failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign tokens")
		return
	}

	a.json(w, http.StatusOK, loginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User: userPayload{
			ID:          user.ID,
			Name:        user.Name,
			PhoneNumber: user.PhoneNumber,
			Solde:       user.Balance,
		},
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (a *App) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "refresh_token required")
		return
	}

	claims, err := a.verifyRefreshToken(r, req.RefreshToken)
	if err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid refresh token")
		return
	}

	access, err := middleware.SignJWT(a.Cfg.JWTSecret, middleware.TokenClaims{
		Sub:      claims.Sub,
		Typ:      middleware.TokenTypeAccess,
		Exp:      time.Now().Add(a.Cfg.AccessTokenTTL).Unix(),
		Issuer:   tokenIssuer,
		Audience: tokenAudience,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign access token failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}

	a.json(w, http.StatusOK, map[string]string{"access_token": access})
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout revokes the presented refresh token. Access tokens stay valid until
// they expire; only the refresh path is cut.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "refresh_token required")
		return
	}

	claims, err := a.verifyRefreshToken(r, req.RefreshToken)
	if err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid refresh token")
		return
	}
	if claims.Sub != a.currentUserID(r) {
		a.error(w, http.StatusForbidden, "forbidden", "refresh token belongs to another user")
		return
	}

	if err := a.Tokens.Revoke(r.Context(), claims.JTI, time.Unix(claims.Exp, 0)); err != nil {
		a.Logger.Error().Err(err).Msg("revoke token failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to logout")
		return
	}

	w.WriteHeader(http.StatusResetContent)
}

func (a *App) issueTokens(userID string) (access, refresh string, err error) {
	now := time.Now()
	access, err = middleware.SignJWT(a.Cfg.JWTSecret, middleware.TokenClaims{
		Sub:      userID,
		Typ:      middleware.TokenTypeAccess,
		Exp:      now.Add(a.Cfg.AccessTokenTTL).Unix(),
		Issuer:   tokenIssuer,
		Audience: tokenAudience,
	})
	if err != nil {
		return "", "", err
	}
	refresh, err = middleware.SignJWT(a.Cfg.JWTSecret, middleware.TokenClaims{
		Sub:      userID,
		Typ:      middleware.TokenTypeRefresh,
		JTI:      uuid.NewString(),
		Exp:      now.Add(a.Cfg.RefreshTokenTTL).Unix(),
		Issuer:   tokenIssuer,
		Audience: tokenAudience,
	})
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (a *App) verifyRefreshToken(r *http.Request, token string) (*middleware.TokenClaims, error) {
	claims, err := middleware.VerifyJWT(a.Cfg.JWTSecret, token)
	if err != nil {
		return nil, err
	}
	if claims.Typ != middleware.TokenTypeRefresh || claims.JTI == "" {
		return nil, middleware.ErrInvalidToken
	}
	revoked, err := a.Tokens.IsRevoked(r.Context(), claims.JTI)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, middleware.ErrInvalidToken
	}
	return claims, nil
}
