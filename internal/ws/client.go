package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/apierror"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/middleware"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin is irrelevant, access is validated via JWT
	},
}

// Client is a single panel connection subscribed to one role channel.
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	canal string
	send  chan []byte
}

// ReadPump discards inbound frames; panels never send application messages,
// the loop only exists to detect disconnects and answer pings.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("canal", c.canal).Msg("ws: conexion cerrada")
			}
			break
		}
	}
}

// WritePump pumps hub messages to the connection and keeps it alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Coalesce queued messages into the same frame
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// puedeSuscribir: cada rol ve su propio canal; admin ve cualquiera.
func puedeSuscribir(rol, canal string) bool {
	if rol == "admin" {
		return true
	}
	return rol == canal
}

// ServeWS upgrades GET /v1/ws?canal=cocina&token=JWT. The token travels as a
// query param because browsers cannot set headers on WebSocket handshakes.
func ServeWS(hub *Hub, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}

		claims, err := middleware.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
			return
		}

		canal := c.Query("canal")
		switch canal {
		case CanalCocina, CanalMesero, CanalRecepcion:
		default:
			c.JSON(http.StatusBadRequest, apierror.New("Canal invalido"))
			return
		}

		if !puedeSuscribir(claims.Rol, canal) {
			c.JSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn().Err(err).Msg("ws: upgrade fallido")
			return
		}

		client := &Client{
			hub:   hub,
			conn:  conn,
			canal: canal,
			send:  make(chan []byte, 256),
		}
		client.hub.register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}
