package handlers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"foodapp/internal/database"
	"foodapp/internal/middleware"
	"foodapp/internal/models"
	"foodapp/internal/notifier"
)

// AuthConfig carries the session and account-token settings.
type AuthConfig struct {
	Secret          string
	TokenTTL        time.Duration
	CookieSecure    bool
	VerificationTTL time.Duration
	ResetTTL        time.Duration
	FrontendURL     string
}

type SignupRequest struct {
	Fullname string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Contact  string `json:"contact" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailRequest struct {
	VerificationCode string `json:"verificationCode" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func Signup(users database.UserRepository, mailer notifier.Mailer, cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/v1/user/signup"
		defer handlePanic(c, route)

		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := requestContext(c)
		defer cancel()

		if _, err := users.FindByEmail(ctx, email); err == nil {
			respondWithError(c, http.StatusBadRequest, route, "User already exist with this email")
			return
		} else if !errors.Is(err, database.ErrNotFound) {
			log.Println("[AUTH] [ERROR] signup lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] signup password hash failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		code, err := generateVerificationCode()
		if err != nil {
			log.Println("[AUTH] [ERROR] verification code generation failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		now := time.Now()
		expires := now.Add(cfg.VerificationTTL)
		user := &models.User{
			Fullname:                   strings.TrimSpace(req.Fullname),
			Email:                      email,
			PasswordHash:               string(hash),
			Contact:                    strings.TrimSpace(req.Contact),
			VerificationToken:          code,
			VerificationTokenExpiresAt: &expires,
			CreatedAt:                  now,
			UpdatedAt:                  now,
		}
		if err := users.Create(ctx, user); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				respondWithError(c, http.StatusBadRequest, route, "User already exist with this email")
				return
			}
			log.Println("[AUTH] [ERROR] signup insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		if err := setSessionCookie(c, user, cfg); err != nil {
			log.Println("[AUTH] [ERROR] signup token generation failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "token generation failed")
			return
		}

		if err := mailer.Send(ctx, notifier.VerificationEmail(user.Email, code)); err != nil {
			log.Println("[AUTH] [ERROR] verification email failed:", err)
		}

		log.Println("[AUTH] [INFO] user registered:", email)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Account created successfully",
			"user":    user,
		})
	}
}

func Login(users database.UserRepository, cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/v1/user/login"
		defer handlePanic(c, route)

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := users.FindByEmail(ctx, email)
		if errors.Is(err, database.ErrNotFound) {
			respondWithError(c, http.StatusBadRequest, route, "Incorrect email or password")
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] login lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials for user")
			respondWithError(c, http.StatusBadRequest, route, "Incorrect email or password")
			return
		}

		now := time.Now()
		user.LastLogin = &now
		user.UpdatedAt = now
		if err := users.Update(ctx, user); err != nil {
			log.Println("[AUTH] [ERROR] login lastLogin update failed:", err)
		}

		if err := setSessionCookie(c, user, cfg); err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "token generation failed")
			return
		}

		log.Println("[AUTH] [INFO] user login succeeded:", user.Email)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": fmt.Sprintf("Welcome back %s", user.Fullname),
			"user":    user,
		})
	}
}

func Logout(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(middleware.TokenCookie, "", -1, "/", "", cfg.CookieSecure, true)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully."})
	}
}

func VerifyEmail(users database.UserRepository, mailer notifier.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/v1/user/verify-email"
		defer handlePanic(c, route)

		var req VerifyEmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		now := time.Now()
		user, err := users.FindByVerificationToken(ctx, strings.TrimSpace(req.VerificationCode), now)
		if errors.Is(err, database.ErrNotFound) {
			respondWithError(c, http.StatusBadRequest, route, "Invalid or expired verification token")
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] verification lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		user.IsVerified = true
		user.VerificationToken = ""
		user.VerificationTokenExpiresAt = nil
		user.UpdatedAt = now
		if err := users.Update(ctx, user); err != nil {
			log.Println("[AUTH] [ERROR] verification update failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		if err := mailer.Send(ctx, notifier.WelcomeEmail(user.Email, user.Fullname)); err != nil {
			log.Println("[AUTH] [ERROR] welcome email failed:", err)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Email verified successfully.",
			"user":    user,
		})
	}
}

func ForgotPassword(users database.UserRepository, mailer notifier.Mailer, cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/v1/user/forgot-password"
		defer handlePanic(c, route)

		var req ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		user, err := users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
		if errors.Is(err, database.ErrNotFound) {
			respondWithError(c, http.StatusBadRequest, route, "User doesn't exist")
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] forgot-password lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		token, err := generateResetToken()
		if err != nil {
			log.Println("[AUTH] [ERROR] reset token generation failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		now := time.Now()
		expires := now.Add(cfg.ResetTTL)
		user.ResetPasswordTokenHash = hashToken(token)
		user.ResetPasswordTokenExpiresAt = &expires
		user.UpdatedAt = now
		if err := users.Update(ctx, user); err != nil {
			log.Println("[AUTH] [ERROR] reset token store failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		resetURL := cfg.FrontendURL + "/resetpassword/" + token
		if err := mailer.Send(ctx, notifier.PasswordResetEmail(user.Email, resetURL)); err != nil {
			log.Println("[AUTH] [ERROR] reset email failed:", err)
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset link sent to your email"})
	}
}

func ResetPassword(users database.UserRepository, mailer notifier.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/v1/user/reset-password/:token"
		defer handlePanic(c, route)

		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		now := time.Now()
		user, err := users.FindByResetTokenHash(ctx, hashToken(strings.TrimSpace(c.Param("token"))), now)
		if errors.Is(err, database.ErrNotFound) {
			respondWithError(c, http.StatusBadRequest, route, "Invalid or expired reset token")
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] reset lookup failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] reset password hash failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		user.PasswordHash = string(hash)
		user.ResetPasswordTokenHash = ""
		user.ResetPasswordTokenExpiresAt = nil
		user.UpdatedAt = now
		if err := users.Update(ctx, user); err != nil {
			log.Println("[AUTH] [ERROR] reset password update failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "internal server error")
			return
		}

		if err := mailer.Send(ctx, notifier.PasswordResetSuccessEmail(user.Email)); err != nil {
			log.Println("[AUTH] [ERROR] reset success email failed:", err)
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successfully."})
	}
}

func setSessionCookie(c *gin.Context, user *models.User, cfg AuthConfig) error {
	token, err := middleware.IssueToken(user.ID, cfg.Secret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookie, token, int(cfg.TokenTTL.Seconds()), "/", "", cfg.CookieSecure, true)
	return nil
}

func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, 40)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
