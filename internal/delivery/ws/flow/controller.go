package ws_flow

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	http_common "github.com/humanbelnik/popchoice/internal/delivery/http/common"
	"github.com/humanbelnik/popchoice/internal/service/wizard"
	usecase_flow "github.com/humanbelnik/popchoice/internal/usecase/flow"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type FlowReader interface {
	Get(ctx context.Context, id string) (*wizard.Flow, error)
}

type Controller struct {
	flows  FlowReader
	hub    *Hub
	logger zerolog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger zerolog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(flows FlowReader, hub *Hub, opts ...ControllerOption) *Controller {
	c := &Controller{
		flows:  flows,
		hub:    hub,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/flows/:flow_id/ws", c.watch)
}

// watch streams flow snapshots. The socket is registered before the snapshot
// is read, so no change can fall between the two.
func (c *Controller) watch(ctx *gin.Context) {
	flowID := ctx.Param("flow_id")

	if _, err := c.flows.Get(ctx.Request.Context(), flowID); err != nil {
		if errors.Is(err, usecase_flow.ErrFlowNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
			return
		}
		c.logger.Error().Err(err).Str("flow_id", flowID).Msg("failed to load flow for websocket")
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error().Err(err).Str("flow_id", flowID).Msg("failed to upgrade to websocket")
		return
	}

	client := &Client{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		flowID: flowID,
	}
	c.hub.Register(client)

	go c.hub.readLoop(client)
	go c.hub.writeLoop(client)

	f, err := c.flows.Get(context.WithoutCancel(ctx.Request.Context()), flowID)
	if err != nil {
		c.logger.Warn().Err(err).Str("flow_id", flowID).Msg("flow gone before snapshot")
		c.hub.Remove(client)
		return
	}
	snapshot, err := json.Marshal(Event{Type: EventFlowSnapshot, Payload: f.View()})
	if err != nil {
		c.logger.Error().Err(err).Str("flow_id", flowID).Msg("failed to encode snapshot")
		c.hub.Remove(client)
		return
	}
	c.hub.deliver(client, snapshot)
}
