package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"staffms/config"
	"staffms/database"
	"staffms/internal/app/http/middleware"
	"staffms/internal/domain/organizations"
	"staffms/internal/domain/plans"
	"staffms/internal/domain/users"
	"staffms/internal/infra/mail"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Handler struct {
	Catalog *plans.Catalog
	Mailer  mail.Mailer
	Log     *slog.Logger
}

func NewHandler(catalog *plans.Catalog, mailer mail.Mailer, log *slog.Logger) *Handler {
	return &Handler{Catalog: catalog, Mailer: mailer, Log: log}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func isEmailValid(email string) bool {
	return emailPattern.MatchString(email)
}

func generateToken() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

type registerInput struct {
	OrganizationName string `json:"organization_name" binding:"required"`
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required"`
	Plan             string `json:"plan"`
}

// Register creates an organization and its owner account. Organizations always
// start on the starter plan; a paid plan in the request is returned as
// requested_plan and only applied once its checkout is paid.
func (h *Handler) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input.Plan = strings.ToLower(strings.TrimSpace(input.Plan))
	if input.Plan == "" {
		input.Plan = plans.TierStarter
	}
	if !h.Catalog.Has(input.Plan) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan", "plans": h.Catalog.Keys()})
		return
	}
	if !isPasswordStrong(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters long and contain both letters and numbers"})
		return
	}
	if !isEmailValid(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	hashed := string(hashedPassword)

	user := users.User{
		Name:         input.Name,
		Email:        strings.ToLower(input.Email),
		Password:     &hashed,
		AuthProvider: "local",
		Role:         users.RoleOwner,
		IsVerified:   false,
	}

	org, err := createOrganizationWithOwner(database.DB, input.OrganizationName, &user)
	if err != nil {
		h.Log.Warn("registration failed", "email", user.Email, "error", err)
		c.JSON(http.StatusConflict, gin.H{"error": "Email may already exist"})
		return
	}

	token, err := generateToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create verification token"})
		return
	}
	verif := users.VerificationToken{
		UserID:    user.ID,
		Token:     token,
		Type:      users.TokenEmailVerification,
		ExpiresAt: time.Now().Add(48 * time.Hour),
	}
	if err := database.DB.Create(&verif).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create verification token"})
		return
	}

	subject, body := mail.VerificationEmail(config.APP_URL, token)
	if err := h.Mailer.Send(c.Request.Context(), user.Name, user.Email, subject, body); err != nil {
		h.Log.Error("verification email failed", "email", user.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification email"})
		return
	}

	h.Log.Info("organization registered", "organization_id", org.ID, "plan", org.SubscriptionPlan, "requested_plan", input.Plan)
	resp := gin.H{
		"message":         "Organization registered successfully. Please check your email to verify your account.",
		"organization_id": org.ID,
		"slug":            org.Slug,
		"plan":            org.SubscriptionPlan,
	}
	if input.Plan != org.SubscriptionPlan {
		resp["requested_plan"] = input.Plan
		resp["checkout_required"] = true
	}
	c.JSON(http.StatusCreated, resp)
}

// newOrganization builds an unsaved organization on the starter plan. Paid
// plans are applied by the Stripe webhook after checkout.
func newOrganization(name string) organizations.Organization {
	return organizations.Organization{
		Name:             name,
		Slug:             organizations.PendingSlug(uuid.NewString()),
		SubscriptionPlan: plans.TierStarter,
		Status:           organizations.StatusActive,
		WorkDays:         []int64{1, 2, 3, 4, 5},
	}
}

// createOrganizationWithOwner inserts the organization and its owner in one
// transaction and finalizes the slug once the organization has an ID.
func createOrganizationWithOwner(db *gorm.DB, orgName string, owner *users.User) (*organizations.Organization, error) {
	org := newOrganization(orgName)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&org).Error; err != nil {
			return err
		}
		owner.OrganizationID = &org.ID
		if err := tx.Create(owner).Error; err != nil {
			return err
		}
		if err := tx.Model(&organizations.Organization{}).
			Where("id = ?", org.ID).
			Update("owner_id", owner.ID).Error; err != nil {
			return err
		}
		org.OwnerID = &owner.ID
		_, err := organizations.EnsureSlug(tx, &org)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	err := database.DB.Where("email = ?", strings.ToLower(input.Email)).First(&user).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !user.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Please verify your email before logging in"})
		return
	}
	if user.Password == nil || *user.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This account uses Google sign-in"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokenString, err := issueAppJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	setSessionCookie(c, tokenString)
	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}

// Logout clears the browser session cookie. Bearer tokens simply expire.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var t users.VerificationToken
	if err := database.DB.
		Where("token = ? AND type = ?", token, users.TokenEmailVerification).
		First(&t).Error; err != nil || t.ExpiresAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", t.UserID).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}
	database.DB.Delete(&t)

	c.Redirect(http.StatusTemporaryRedirect, config.APP_URL+"/signin")
}

func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return
	}

	const generic = "If your email exists, you'll receive a reset link."

	var user users.User
	if err := database.DB.Where("email = ?", strings.ToLower(body.Email)).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"message": generic})
		return
	}

	database.DB.Where("user_id = ? AND type = ?", user.ID, users.TokenPasswordReset).Delete(&users.VerificationToken{})

	token, err := generateToken()
	if err != nil {
		h.Log.Error("reset token failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusOK, gin.H{"message": generic})
		return
	}
	reset := users.VerificationToken{
		UserID:    user.ID,
		Token:     token,
		Type:      users.TokenPasswordReset,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if err := database.DB.Create(&reset).Error; err != nil {
		h.Log.Error("store reset token failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusOK, gin.H{"message": generic})
		return
	}

	subject, msg := mail.PasswordResetEmail(config.APP_URL, token)
	if err := h.Mailer.Send(c.Request.Context(), user.Name, user.Email, subject, msg); err != nil {
		h.Log.Error("reset email failed", "user_id", user.ID, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": generic})
}

// ResetPassword consumes a password_reset or invitation token.
func (h *Handler) ResetPassword(c *gin.Context) {
	var body struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !isPasswordStrong(body.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters with letters and numbers"})
		return
	}

	var reset users.VerificationToken
	err := database.DB.
		Where("token = ? AND type IN ?", body.Token, []string{users.TokenPasswordReset, users.TokenInvitation}).
		First(&reset).Error
	if err != nil || reset.ExpiresAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	// Accepting an invitation also proves the email address.
	if err := database.DB.Model(&users.User{}).Where("id = ?", reset.UserID).Updates(map[string]interface{}{
		"password":    string(hashed),
		"is_verified": true,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	database.DB.Delete(&reset)

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if !isPasswordStrong(body.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be at least 8 characters with letters and numbers"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	if user.Password == nil || *user.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "This account does not have a password. Sign in with Google or set a password first.",
		})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(body.OldPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is incorrect"})
		return
	}

	hashedNew, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	database.DB.Model(&user).Update("password", string(hashedNew))

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
