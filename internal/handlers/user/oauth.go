package user

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/facebook"
	"github.com/markbates/goth/providers/google"

	"lotus_back_end/internal/database"
	"lotus_back_end/internal/models"
	"lotus_back_end/internal/utils"
)

// GET /api/auth/:provider
func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	redirectURL := c.Query("redirect_url")
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	callbackURL := baseURL + "/api/auth/" + provider + "/callback"

	switch provider {
	case "google":
		goth.UseProviders(google.New(
			os.Getenv("GOOGLE_CLIENT_ID"),
			os.Getenv("GOOGLE_CLIENT_SECRET"),
			callbackURL,
		))
	case "facebook":
		goth.UseProviders(facebook.New(
			os.Getenv("FACEBOOK_CLIENT_ID"),
			os.Getenv("FACEBOOK_CLIENT_SECRET"),
			callbackURL,
		))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provider non supporté"})
		return
	}

	ctx := context.Background()
	state := generateRandomState()
	if redirectURL != "" {
		_ = database.Redis.Set(ctx, "oauth_redirect:"+state, redirectURL, 10*time.Minute).Err()
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	q.Set("state", state)
	c.Request.URL.RawQuery = q.Encode()
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

func generateRandomState() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

// GET /api/auth/:provider/callback
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := findOrCreateOAuthUser(provider, gothUser.UserID, gothUser.Email, gothUser.Name)
	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	redirectToFrontend(c, token, c.Query("state"))
}

func findOrCreateOAuthUser(provider, providerID, email, name string) models.User {
	session, err := database.GetUsersSession()
	if err != nil {
		log.Printf("❌ Session users indisponible: %v", err)
		return models.User{Email: email, Name: name}
	}

	var user models.User

	// 1️⃣ Recherche par email (table miroir)
	err = session.Query(`SELECT email, user_id, password, name, role, provider FROM users_by_email WHERE email = ?`,
		email).Scan(&user.Email, &user.ID, &user.Password, &user.Name, &user.Role, &user.Provider)
	if err == nil {
		// Compte existant: fusion du provider
		if user.Provider != provider {
			_ = session.Query(`UPDATE users SET provider = ?, provider_id = ?, updated_at = ? WHERE user_id = ?`,
				provider, providerID, time.Now(), user.ID).Exec()
			log.Printf("🔄 Compte existant fusionné avec provider %s : %s", provider, email)
		}
		return user
	}

	// 2️⃣ Création d'un nouvel utilisateur OAuth
	now := time.Now()
	user = models.User{
		ID:         gocql.TimeUUID().String(),
		Email:      email,
		Name:       name,
		Role:       "customer",
		Provider:   provider,
		ProviderID: providerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_ = session.Query(`INSERT INTO users (user_id, email, password, name, role, provider, provider_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, "", user.Name, user.Role, user.Provider, user.ProviderID,
		user.CreatedAt, user.UpdatedAt).Exec()
	_ = session.Query(`INSERT INTO users_by_email (email, user_id, password, name, role, provider)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.Email, user.ID, "", user.Name, user.Role, user.Provider).Exec()

	log.Printf("🆕 Utilisateur OAuth créé (%s) : %s", provider, email)
	return user
}

func redirectToFrontend(c *gin.Context, token, state string) {
	ctx := context.Background()

	redirectURI, _ := database.Redis.Get(ctx, "oauth_redirect:"+state).Result()
	_, _ = database.Redis.Del(ctx, "oauth_redirect:"+state).Result()

	if redirectURI == "" {
		redirectURI = os.Getenv("FRONTEND_URL")
		if redirectURI == "" {
			redirectURI = "http://localhost:5173"
		}
	}

	allowed := strings.Split(os.Getenv("ALLOWED_REDIRECT_ORIGINS"), ",")
	if len(allowed) == 1 && allowed[0] == "" {
		allowed = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	valid := false
	for _, o := range allowed {
		if o != "" && strings.HasPrefix(redirectURI, o) {
			valid = true
			break
		}
	}
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Redirect url non autorisé"})
		return
	}

	sep := "?"
	if strings.Contains(redirectURI, "?") {
		sep = "&"
	}
	c.Redirect(http.StatusTemporaryRedirect, redirectURI+sep+"token="+url.QueryEscape(token))
}
