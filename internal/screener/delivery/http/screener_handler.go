package http

import (
	"net/http"
	"strconv"

	"golang-swing-screener/internal/screener/dto"
	"golang-swing-screener/internal/screener/repository"
	"golang-swing-screener/internal/screener/service"
	"golang-swing-screener/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ScreenerHandler handles HTTP requests for screener tables and runs.
type ScreenerHandler struct {
	screenerService service.ScreenerService
	signalRepo      repository.ScreenerSignalRepository
	logger          *logger.Logger
}

// NewScreenerHandler creates a new ScreenerHandler.
func NewScreenerHandler(screenerService service.ScreenerService, signalRepo repository.ScreenerSignalRepository, logger *logger.Logger) *ScreenerHandler {
	return &ScreenerHandler{screenerService: screenerService, signalRepo: signalRepo, logger: logger}
}

// RegisterRoutes registers the screener routes to the Echo group.
func (h *ScreenerHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/tables/swing", h.GetSwingTable)
	g.GET("/tables/positional", h.GetPositionalTable)
	g.GET("/tables/near-miss", h.GetNearMissTable)
	g.GET("/metadata", h.GetMetadata)
	g.GET("/signals", h.GetSignals)
	g.POST("/runs", h.TriggerRun)
}

func (h *ScreenerHandler) latest(c echo.Context) (*dto.ScreenerResult, error) {
	result, err := h.screenerService.Latest(c.Request().Context())
	if err != nil {
		return nil, c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	}
	return result, nil
}

// GetSwingTable godoc
// @Summary Get the swing table
// @Description Returns the locked swing candidates table from the latest run
// @Tags tables
// @Produce json
// @Success 200 {object} dto.Table
// @Failure 404 {object} dto.ErrorResponse
// @Router /tables/swing [get]
func (h *ScreenerHandler) GetSwingTable(c echo.Context) error {
	result, err := h.latest(c)
	if result == nil {
		return err
	}
	return c.JSON(http.StatusOK, result.Swing)
}

// GetPositionalTable godoc
// @Summary Get the positional table
// @Description Returns the locked positional opportunities table from the latest run
// @Tags tables
// @Produce json
// @Success 200 {object} dto.Table
// @Failure 404 {object} dto.ErrorResponse
// @Router /tables/positional [get]
func (h *ScreenerHandler) GetPositionalTable(c echo.Context) error {
	result, err := h.latest(c)
	if result == nil {
		return err
	}
	return c.JSON(http.StatusOK, result.Positional)
}

// GetNearMissTable godoc
// @Summary Get the near-miss table
// @Description Returns the locked near-miss swing table from the latest run
// @Tags tables
// @Produce json
// @Success 200 {object} dto.Table
// @Failure 404 {object} dto.ErrorResponse
// @Router /tables/near-miss [get]
func (h *ScreenerHandler) GetNearMissTable(c echo.Context) error {
	result, err := h.latest(c)
	if result == nil {
		return err
	}
	return c.JSON(http.StatusOK, result.NearMiss)
}

// GetMetadata godoc
// @Summary Get run metadata
// @Description Returns source, run identifier, version tag, market session and mood for the latest run
// @Tags runs
// @Produce json
// @Success 200 {object} dto.RunMetadata
// @Failure 404 {object} dto.ErrorResponse
// @Router /metadata [get]
func (h *ScreenerHandler) GetMetadata(c echo.Context) error {
	result, err := h.latest(c)
	if result == nil {
		return err
	}
	return c.JSON(http.StatusOK, result.Metadata)
}

// GetSignals godoc
// @Summary Get recent Early Expansion signals
// @Description Returns the most recently persisted Early Expansion alerts
// @Tags signals
// @Produce json
// @Param limit query int false "Maximum number of signals" default(50)
// @Success 200 {array} entity.ScreenerSignal
// @Failure 500 {object} dto.ErrorResponse
// @Router /signals [get]
func (h *ScreenerHandler) GetSignals(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
		}
		limit = parsed
	}

	signals, err := h.signalRepo.GetLatest(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("Failed to get screener signals", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, signals)
}

// TriggerRun godoc
// @Summary Trigger a screener run
// @Description Runs the full pipeline on a fresh snapshot and returns the result
// @Tags runs
// @Produce json
// @Success 201 {object} dto.ScreenerResult
// @Failure 502 {object} dto.ErrorResponse
// @Router /runs [post]
func (h *ScreenerHandler) TriggerRun(c echo.Context) error {
	result, err := h.screenerService.Run(c.Request().Context())
	if err != nil {
		h.logger.Error("Manual screener run failed", logger.ErrorField(err))
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, result)
}
