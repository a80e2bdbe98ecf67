package middleware

import (
	"time"

	"main/model"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

const sessionInactivityTimeout = 48 * time.Hour

func SessionMiddleware(sessionRepo *repository.SessionRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie("session_id")
		if err != nil {
			c.Next()
			return
		}

		session, err := sessionRepo.GetSession(sessionID)
		if err != nil || !session.IsActive {
			c.SetCookie("session_id", "", -1, "/", "", true, true)
			c.Next()
			return
		}

		if time.Since(session.LastActivityAt) > sessionInactivityTimeout {
			session.IsActive = false
			sessionRepo.UpdateSession(session)
			c.SetCookie("session_id", "", -1, "/", "", true, true)
			c.Next()
			return
		}

		session.LastActivityAt = time.Now()
		sessionRepo.UpdateSession(session)

		c.Set("session", session)
		c.Next()
	}
}

// CreateSession records a new session for a logged-in user and sets the
// session cookie
func CreateSession(c *gin.Context, userID string, sessionRepo *repository.SessionRepo) (*model.Session, error) {
	userAgent := c.Request.UserAgent()
	browser, os, device := utils.ParseUserAgent(userAgent)

	now := time.Now()
	session := &model.Session{
		SessionID:      utils.GenerateID(),
		UserID:         userID,
		DisplayName:    utils.GenerateSessionName(userAgent),
		DeviceInfo:     browser + " / " + os + " / " + device,
		IPAddress:      c.ClientIP(),
		CreatedAt:      now,
		ExpiresAt:      now.Add(utils.GetEnvAsDuration("SESSION_DURATION", 720*time.Hour)),
		LastActivityAt: now,
		IsActive:       true,
	}

	if err := sessionRepo.CreateSession(session); err != nil {
		return nil, err
	}

	c.SetCookie("session_id", session.SessionID, int(time.Until(session.ExpiresAt).Seconds()), "/", "", true, true)
	return session, nil
}
