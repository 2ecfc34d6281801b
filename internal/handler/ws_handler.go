package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/campusgrid/registrar/internal/response"
	"github.com/campusgrid/registrar/internal/service"
	ws "github.com/campusgrid/registrar/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allow-list permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams live seat counts for a section over WebSocket.
type WSHandler struct {
	hub               *ws.SeatHub
	enrollmentService *service.EnrollmentService
	log               zerolog.Logger
	upgrader          websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *ws.SeatHub, enrollmentService *service.EnrollmentService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		hub:               hub,
		enrollmentService: enrollmentService,
		log:               log.With().Str("component", "ws_handler").Logger(),
		upgrader:          buildUpgrader(allowedOrigins),
	}
}

// SectionSeatStream godoc
// WS /ws/v1/sections/:id/seats
// Upgrades to WebSocket, sends the current seat counts once, then pushes
// an update after every admission or withdrawal in the section.
func (h *WSHandler) SectionSeatStream(c *gin.Context) {
	sectionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || sectionID <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	// Verify the section exists before upgrading.
	capacity, enrolled, err := h.enrollmentService.Seats(c.Request.Context(), sectionID)
	if err != nil {
		failFromError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int64("section_id", sectionID).Logger()
	wsLog.Info().Msg("seat stream connected")

	updates, cancel := h.hub.Subscribe(sectionID)
	defer cancel()

	// Detect client disconnect; inbound payloads are ignored.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	initial := ws.SeatUpdate{
		Event:     ws.EventSeats,
		SectionID: sectionID,
		Capacity:  capacity,
		Enrolled:  enrolled,
		Remaining: capacity - enrolled,
	}
	if err := writeUpdate(conn, initial); err != nil {
		return
	}

	for {
		select {
		case update := <-updates:
			if err := writeUpdate(conn, update); err != nil {
				wsLog.Debug().Err(err).Msg("seat stream write failed")
				return
			}
		case <-closed:
			wsLog.Info().Msg("seat stream disconnected")
			return
		}
	}
}

func writeUpdate(conn *websocket.Conn, update ws.SeatUpdate) error {
	if err := conn.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
		return err
	}
	return conn.WriteJSON(update)
}
