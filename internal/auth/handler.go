package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/almatbakh/staff-api/internal/httputil"
	"go.uber.org/zap"
)

// Handler serves the session lifecycle endpoints: sign-in, refresh, logout.
type Handler struct {
	Codec    *Codec
	Store    SessionStore
	Verifier CredentialVerifier
	Log      *zap.SugaredLogger
}

func NewHandler(codec *Codec, store SessionStore, verifier CredentialVerifier, log *zap.SugaredLogger) *Handler {
	return &Handler{Codec: codec, Store: store, Verifier: verifier, Log: log}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	IsAdmin      bool   `json:"isAdmin"`
	Success      bool   `json:"success"`
	Message      string `json:"message"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Success      bool   `json:"success"`
	Message      string `json:"message"`
}

// SignIn validates the submitted pair against the configured identities and
// on success mints a token pair and records the refresh token. The failure
// response is identical whichever field was wrong.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "Bad Request")
		return
	}

	isAdmin, ok := h.Verifier.Verify(req.Email, req.Password)
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	access, refresh, err := h.Codec.MintPair(isAdmin)
	if err != nil {
		h.Log.Errorw("mint token pair", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if err := h.Store.Put(r.Context(), refresh); err != nil {
		h.Log.Errorw("store refresh token", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	httputil.JSON(w, http.StatusOK, signInResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		IsAdmin:      isAdmin,
		Success:      true,
		Message:      "Signed in successfully",
	})
}

// Refresh rotates a refresh token: verify, look up, re-mint with the decoded
// role, then replace the stored value. The conditional replace guarantees a
// concurrently consumed token loses here with ErrSessionNotFound.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	oldToken, err := BearerToken(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "Bad Request")
		return
	}

	claims, err := h.Codec.Verify(oldToken, KindRefresh)
	switch {
	case errors.Is(err, ErrTokenExpired):
		httputil.Error(w, http.StatusUnauthorized, "Refresh token expired")
		return
	case err != nil:
		httputil.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	if _, err := h.Store.FindByToken(r.Context(), oldToken); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			httputil.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		h.Log.Errorw("look up refresh token", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	// The role comes from the old token's claims; there is no user table to
	// re-derive it from, and privilege must not change mid-session.
	access, refresh, err := h.Codec.MintPair(claims.IsAdmin)
	if err != nil {
		h.Log.Errorw("mint token pair", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if err := h.Store.Replace(r.Context(), oldToken, refresh); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			httputil.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		h.Log.Errorw("rotate refresh token", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	httputil.JSON(w, http.StatusOK, refreshResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Success:      true,
		Message:      "refreshed successfully",
	})
}

// Logout deletes the refresh token by value. The token is not verified: one
// that fails signature checks is still safe to delete, and deleting an
// absent token reports success since the end state is the same.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := BearerToken(r)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "Bad Request")
		return
	}
	if err := h.Store.Delete(r.Context(), token); err != nil {
		h.Log.Errorw("delete refresh token", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
