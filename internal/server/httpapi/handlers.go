package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type logoutRequest struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type verifyResponse struct {
	Message string       `json:"message"`
	Decoded *auth.Claims `json:"decoded"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" || req.Role == "" {
		writeBadRequest(w, "Username, password, and role are required")
		return
	}

	if _, err := s.auth.Register(r.Context(), req.Username, req.Password, req.Role); err != nil {
		writeServiceError(w, err, messages{
			common.ErrorAlreadyExists: "Username already exists",
			common.ErrorInternal:      "Error registering user",
		})
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeBadRequest(w, "Username and password are required")
		return
	}

	token, err := s.auth.Login(r.Context(), req.Username, req.Password, originAddress(r))
	if err != nil {
		writeServiceError(w, err, messages{
			common.ErrInvalidCredentials: "Invalid credentials",
			common.ErrorInternal:         "Error logging in",
		})
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Message: "Login successful", Token: token})
}

// handleVerify accepts the token as a bearer header or a ?token= parameter.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	token, present := bearerToken(r)
	if !present {
		token = r.URL.Query().Get("token")
		if token == "" {
			writeBadRequest(w, msgHeaderRequired)
			return
		}
	}
	if token == "" {
		writeBadRequest(w, msgBearerMissing)
		return
	}

	claims, err := s.auth.VerifyPresented(r.Context(), token)
	if err != nil {
		writeServiceError(w, err, messages{
			common.ErrInvalidToken: "Invalid or expired token",
			common.ErrorInternal:   "Error verifying token",
		})
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{Message: "Token is valid", Decoded: claims})
}

// handleLogout accepts the token as a bearer header or a {"token": ...} body.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, present := bearerToken(r)
	if !present {
		var req logoutRequest
		if err := decodeJSON(r, &req); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}
		if req.Token == "" {
			writeBadRequest(w, msgHeaderRequired)
			return
		}
		token = req.Token
	}
	if token == "" {
		writeBadRequest(w, msgBearerMissing)
		return
	}

	if err := s.auth.Logout(r.Context(), token); err != nil {
		writeServiceError(w, err, messages{
			common.ErrorNotFound: "Token not found or already logged out",
			common.ErrorInternal: "Error logging out",
		})
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Logout successful"})
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	token, _ := bearerToken(r)

	if _, err := s.auth.RequireAdmin(r.Context(), token); err != nil {
		writeServiceError(w, err, messages{
			common.ErrUnauthenticated: "No token provided",
			common.ErrInvalidToken:    "Invalid or expired token",
			common.ErrForbidden:       "Access denied: Admins only",
			common.ErrorInternal:      "Error checking access",
		})
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Welcome to the admin panel"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn(r.Context(), "health check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "store unreachable")
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
