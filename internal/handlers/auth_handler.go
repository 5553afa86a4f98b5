package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"stylefeed/internal/middleware"
	"stylefeed/internal/services"
)

// AuthHandler handles HTTP requests for phone+OTP authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, session fiber.Handler) {
	user := router.Group("/user")
	user.Post("/phone-auth", h.HandlePhoneAuth)
	user.Post("/verify", h.HandleVerify)
	user.Get("/check-session", session, h.HandleCheckSession)
	user.Post("/logout", session, h.HandleLogout)
}

// PhoneAuthRequest is the request body for requesting an OTP.
type PhoneAuthRequest struct {
	Phone string `json:"phone" validate:"required,min=7,max=16"`
}

// HandlePhoneAuth finds or creates the user for a phone number and sends a
// fresh OTP.
func (h *AuthHandler) HandlePhoneAuth(c *fiber.Ctx) error {
	var req PhoneAuthRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	existing, err := h.authService.RequestOTP(req.Phone)
	if err != nil {
		return respondError(c, err)
	}
	message := "OTP sent to new user"
	if existing {
		message = "OTP sent to existing user"
	}
	return c.JSON(fiber.Map{
		"message": message,
		"otpSent": true,
	})
}

// VerifyRequest is the request body for OTP verification.
type VerifyRequest struct {
	Phone string `json:"phone" validate:"required"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// HandleVerify checks the OTP and issues a session token.
func (h *AuthHandler) HandleVerify(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	token, user, err := h.authService.VerifyOTP(req.Phone, req.OTP)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Phone number verified successfully",
		"token":   token,
		"user":    user,
	})
}

// HandleCheckSession reports whether the presented session is active.
func (h *AuthHandler) HandleCheckSession(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":         "Session active",
		"isAuthenticated": true,
		"userId":          middleware.UserID(c),
	})
}

// HandleLogout revokes the presented session token.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	token, _ := c.Locals("session_token").(string)
	if err := h.authService.RevokeToken(token); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
