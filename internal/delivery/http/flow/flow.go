package http_flow

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/popchoice/internal/delivery/http/common"
	"github.com/humanbelnik/popchoice/internal/model"
	"github.com/humanbelnik/popchoice/internal/service/wizard"
	usecase_flow "github.com/humanbelnik/popchoice/internal/usecase/flow"
	"github.com/rs/zerolog"
)

type Controller struct {
	usecase *usecase_flow.Usecase
	logger  zerolog.Logger
}

type Option func(*Controller)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(usecase *usecase_flow.Usecase, opts ...Option) *Controller {
	c := &Controller{
		usecase: usecase,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	flows := router.Group("/flows")
	{
		flows.POST("", c.start)
		flows.GET("/:flow_id", c.get)
		flows.DELETE("/:flow_id", c.delete)
		flows.POST("/:flow_id/setup", c.setup)
		flows.PATCH("/:flow_id/form", c.patchForm)
		flows.POST("/:flow_id/form/era", c.selectEra)
		flows.POST("/:flow_id/form/moods/:mood", c.toggleMood)
		flows.POST("/:flow_id/answers", c.submitAnswer)
		flows.POST("/:flow_id/next", c.next)
		flows.POST("/:flow_id/restart", c.restart)
	}
}

func (c *Controller) start(ctx *gin.Context) {
	f, err := c.usecase.Start(ctx)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, f.View())
}

func (c *Controller) get(ctx *gin.Context) {
	f, err := c.usecase.Get(ctx, ctx.Param("flow_id"))
	c.respond(ctx, f, err)
}

func (c *Controller) delete(ctx *gin.Context) {
	if err := c.usecase.Delete(ctx, ctx.Param("flow_id")); err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *Controller) setup(ctx *gin.Context) {
	var req SetupRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, err)
		return
	}

	f, err := c.usecase.SubmitSetup(ctx, ctx.Param("flow_id"), string(req.GroupSize), req.TimeAvailable)
	c.respond(ctx, f, err)
}

func (c *Controller) patchForm(ctx *gin.Context) {
	var req FormPatchDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, err)
		return
	}

	f, err := c.usecase.EditForm(ctx, ctx.Param("flow_id"), req.apply)
	c.respond(ctx, f, err)
}

func (c *Controller) selectEra(ctx *gin.Context) {
	var req EraRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.badRequest(ctx, err)
		return
	}

	f, err := c.usecase.EditForm(ctx, ctx.Param("flow_id"), func(form *wizard.PreferenceForm) error {
		return form.SelectEra(model.Era(req.Era))
	})
	c.respond(ctx, f, err)
}

func (c *Controller) toggleMood(ctx *gin.Context) {
	mood := model.Mood(ctx.Param("mood"))
	f, err := c.usecase.EditForm(ctx, ctx.Param("flow_id"), func(form *wizard.PreferenceForm) error {
		return form.ToggleMood(mood)
	})
	c.respond(ctx, f, err)
}

func (c *Controller) submitAnswer(ctx *gin.Context) {
	f, err := c.usecase.SubmitAnswer(ctx, ctx.Param("flow_id"))
	c.respond(ctx, f, err)
}

func (c *Controller) next(ctx *gin.Context) {
	f, err := c.usecase.Next(ctx, ctx.Param("flow_id"))
	c.respond(ctx, f, err)
}

func (c *Controller) restart(ctx *gin.Context) {
	f, err := c.usecase.Restart(ctx, ctx.Param("flow_id"))
	c.respond(ctx, f, err)
}

func (c *Controller) respond(ctx *gin.Context, f *wizard.Flow, err error) {
	if err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, f.View())
}

func (c *Controller) badRequest(ctx *gin.Context, err error) {
	c.logger.Debug().Err(err).Str("path", ctx.FullPath()).Msg("invalid request body")
	ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
		Message: "invalid request format",
	})
}

func (c *Controller) fail(ctx *gin.Context, err error) {
	status, resp := errorResponse(err)
	if status >= http.StatusInternalServerError {
		c.logger.Error().Err(err).Str("flow_id", ctx.Param("flow_id")).Msg("flow request failed")
	} else {
		c.logger.Debug().Err(err).Str("flow_id", ctx.Param("flow_id")).Msg("flow request rejected")
	}
	ctx.JSON(status, resp)
}

func errorResponse(err error) (int, http_common.ErrorResponse) {
	var vErr *wizard.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusUnprocessableEntity, http_common.ErrorResponse{Message: vErr.Reason, Field: vErr.Field}
	case errors.Is(err, usecase_flow.ErrFlowNotFound):
		return http.StatusNotFound, http_common.ErrorResponse{Message: "not found"}
	case errors.Is(err, wizard.ErrInvalidStage),
		errors.Is(err, wizard.ErrCollectionComplete),
		errors.Is(err, wizard.ErrNoNextRecommendation),
		errors.Is(err, wizard.ErrRestartUnavailable):
		return http.StatusConflict, http_common.ErrorResponse{Message: err.Error()}
	case errors.Is(err, usecase_flow.ErrRecommendationFailed):
		return http.StatusBadGateway, http_common.ErrorResponse{Message: "could not fetch recommendations, please try again"}
	default:
		return http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"}
	}
}
