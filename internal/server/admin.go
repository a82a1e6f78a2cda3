package server

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const adminCookie = "admin_token"

// adminAuth holds the login credentials and the session token handed out
// on a successful login. The token changes on every restart.
type adminAuth struct {
	username     string
	password     string
	passwordHash string
	token        string
}

func newAdminAuth(creds AdminCredentials, log *slog.Logger) *adminAuth {
	a := &adminAuth{
		username:     creds.Username,
		password:     creds.Password,
		passwordHash: creds.PasswordHash,
		token:        generateAdminToken(),
	}
	if a.username == "" {
		a.username = "admin"
	}

	log.Info("admin access available", "path", "/admin/login")
	if a.password == "" && a.passwordHash == "" {
		log.Warn("admin login disabled: set ADMIN_PASSWORD_HASH or ADMIN_PASSWORD")
	}
	log.Info("privacy: visitor tracking enabled with hashed IP addresses")
	return a
}

func generateAdminToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate admin token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// check reports whether the credentials match. With neither a hash nor a
// password configured nobody can log in.
func (a *adminAuth) check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1

	var passOK bool
	switch {
	case a.passwordHash != "":
		passOK = bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)) == nil
	case a.password != "":
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	}
	return userOK && passOK
}

func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", s.page("privacy"))
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", s.page("admin login"))
	})

	r.POST("/admin/login", func(c *gin.Context) {
		log := loggerFrom(c)
		client := s.visits.HashIP(c.ClientIP())

		if !s.admin.check(c.PostForm("username"), c.PostForm("password")) {
			log.Warn("failed admin login attempt", "client", client)
			data := s.page("admin login")
			data["error"] = "Invalid credentials"
			c.HTML(http.StatusUnauthorized, "admin-login.html", data)
			return
		}

		c.SetCookie(adminCookie, s.admin.token, 3600*24, "/admin", "", false, true)
		log.Info("admin login successful", "client", client)
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		loggerFrom(c).Info("admin logout", "client", s.visits.HashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.admin.middleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.visits.Stats(c.Request.Context())
		if err != nil {
			s.serverError(c, "Failed to load statistics", err)
			return
		}
		data := s.page("dashboard")
		data["stats"] = stats
		c.HTML(http.StatusOK, "admin-dashboard.html", data)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.visits.Recent(c.Request.Context(), 200)
		if err != nil {
			s.serverError(c, "Failed to load visitors", err)
			return
		}
		data := s.page("visitors")
		data["visitors"] = visitors
		c.HTML(http.StatusOK, "admin-visitors.html", data)
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.visits.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.visits.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		loggerFrom(c).Info("admin stats exported", "client", s.visits.HashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := s.visits.Cleanup(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		loggerFrom(c).Info("privacy cleanup", "removed", n)
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
	})
}
