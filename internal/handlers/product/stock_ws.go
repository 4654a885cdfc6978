package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"lotus_back_end/internal/database"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// StockAlertWebSocket diffuse en temps réel les alertes stock bas aux admins
// connectés. Chaque connexion s'abonne au canal Redis des alertes.
func StockAlertWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, LowStockChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Alertes stock activées",
	})

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var alert LowStockAlert
			if err := json.Unmarshal([]byte(msg.Payload), &alert); err != nil {
				continue
			}

			if err := conn.WriteJSON(map[string]interface{}{
				"type":  "low_stock",
				"alert": alert,
			}); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
