package handler

import (
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
)

// Generate2FASecretHandler issues a new TOTP secret for enrolment. The
// secret only takes effect once the user confirms a valid code via
// Enable2FAHandler.
func Generate2FASecretHandler(c *gin.Context) {
	userID, _ := c.Get("user_id")

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "LeapAI",
		AccountName: userID.(string),
	})
	if err != nil {
		utils.InternalError(c, "Failed to generate 2FA secret")
		return
	}

	utils.Success(c, gin.H{
		"secret":      key.Secret(),
		"otpauth_url": key.URL(),
	})
}

func Enable2FAHandler(c *gin.Context) {
	var req struct {
		Secret string `json:"secret" binding:"required"`
		Code   string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	userID, _ := c.Get("user_id")
	userRepo := repository.GetUserRepo(utils.MongoClient)

	user, err := userRepo.FindUser(c.Request.Context(), userID.(string))
	if err != nil || user == nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}
	if user.TwoFactorEnabled {
		utils.BadRequest(c, "2FA is already enabled")
		return
	}

	if !totp.Validate(req.Code, req.Secret) {
		utils.BadRequest(c, "Invalid 2FA code")
		return
	}

	recoveryCodes, err := utils.GenerateRecoveryCodes()
	if err != nil {
		utils.InternalError(c, "Failed to generate recovery codes")
		return
	}

	hashedCodes := utils.HashRecoveryCodes(recoveryCodes)
	if err := userRepo.Enable2FAWithRecoveryCodes(c.Request.Context(), userID.(string), req.Secret, hashedCodes); err != nil {
		utils.InternalError(c, "Failed to enable 2FA")
		return
	}

	utils.Success(c, gin.H{
		"message":        "2FA enabled successfully",
		"recovery_codes": recoveryCodes, // plain text, shown once
		"warning":        "Save these recovery codes securely. They will not be shown again.",
	})
}

func Disable2FAHandler(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	userID, _ := c.Get("user_id")
	userRepo := repository.GetUserRepo(utils.MongoClient)

	user, err := userRepo.FindUser(c.Request.Context(), userID.(string))
	if err != nil || user == nil {
		utils.InternalError(c, "Failed to fetch user")
		return
	}
	if !user.TwoFactorEnabled {
		utils.BadRequest(c, "2FA is not enabled")
		return
	}

	if !totp.Validate(req.Code, user.TwoFactorSecret) {
		utils.BadRequest(c, "Invalid 2FA code")
		return
	}

	if err := userRepo.Disable2FA(c.Request.Context(), userID.(string)); err != nil {
		utils.InternalError(c, "Failed to disable 2FA")
		return
	}

	utils.Success(c, gin.H{"message": "2FA disabled"})
}

// UseRecoveryCodeHandler lets a user who lost their authenticator finish a
// 2FA login with a one-time recovery code.
func UseRecoveryCodeHandler(c *gin.Context, sessionRepo *repository.SessionRepo) {
	var req struct {
		Username     string `json:"username" binding:"required"`
		Password     string `json:"password" binding:"required"`
		RecoveryCode string `json:"recovery_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	userRepo := repository.GetUserRepo(utils.MongoClient)
	user, err := userRepo.FindUserByUsername(c.Request.Context(), req.Username)
	if err != nil || user == nil {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	ok, err := services.VerifyPassword(user.Password, req.Password)
	if err != nil || !ok {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	consumed, err := userRepo.ConsumeRecoveryCode(c.Request.Context(), user.UserID, utils.HashString(req.RecoveryCode))
	if err != nil {
		utils.InternalError(c, "Failed to verify recovery code")
		return
	}
	if !consumed {
		utils.TrackAuthAttempt("failure", "recovery_code")
		utils.Unauthorized(c, "Invalid recovery code")
		return
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	utils.TrackAuthAttempt("success", "recovery_code")
	utils.Success(c, gin.H{
		"token":   token,
		"refresh": refreshToken,
		"warning": "Recovery code consumed. Consider re-enrolling 2FA.",
	})
}
