package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cryptopulse/internal/domain/dto"
	"github.com/guttosm/cryptopulse/internal/service"
)

// Handler provides HTTP handlers for the crypto statistics endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Interact with the service layer
//   - Translate service results into response DTOs
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	svc service.CryptoService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.CryptoService) *Handler {
	return &Handler{svc: svc}
}

const dateLayout = "2006-01-02"

// parseDateRange reads the optional date_from / date_to query parameters.
// Both are YYYY-MM-DD; an inverted range is rejected before it reaches the
// service layer.
func parseDateRange(c *gin.Context) (from *time.Time, to *time.Time, ok bool) {
	if s := c.Query("date_from"); s != "" {
		parsed, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid date_from format, expected YYYY-MM-DD", err))
			return nil, nil, false
		}
		from = &parsed
	}
	if s := c.Query("date_to"); s != "" {
		parsed, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid date_to format, expected YYYY-MM-DD", err))
			return nil, nil, false
		}
		to = &parsed
	}
	if from != nil && to != nil && from.After(*to) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("date_from must not be after date_to", nil))
		return nil, nil, false
	}
	return from, to, true
}

// GetNormalizedRanges handles GET /api/v1/cryptos/normalized-range requests.
//
// GetNormalizedRanges godoc
// @Summary      Ranked normalized price ranges
// @Description  Returns all symbols observed in the window, ranked descending by (max-min)/min
// @Tags         cryptos
// @Produce      json
// @Param        date_from  query     string  false  "Start date (inclusive) in YYYY-MM-DD" example(2022-01-01)
// @Param        date_to    query     string  false  "End date (exclusive) in YYYY-MM-DD" example(2022-02-01)
// @Success      200        {array}   dto.NormalizedRangeResponse  "Success"
// @Failure      400        {object}  dto.ErrorResponse            "Bad Request"
// @Failure      500        {object}  dto.ErrorResponse            "Internal Error"
// @Router       /api/v1/cryptos/normalized-range [get]
func (h *Handler) GetNormalizedRanges(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	ranked, err := h.svc.NormalizedRanges(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to compute normalized ranges", err))
		return
	}

	resp := make([]dto.NormalizedRangeResponse, 0, len(ranked))
	for _, r := range ranked {
		resp = append(resp, dto.NormalizedRangeResponse{Symbol: r.Symbol, NormalizedPrice: r.NormalizedPrice})
	}
	c.JSON(http.StatusOK, resp)
}

// GetHighestNormalizedRange handles GET /api/v1/cryptos/normalized-range/highest requests.
//
// GetHighestNormalizedRange godoc
// @Summary      Highest normalized range for a day
// @Description  Returns the symbol with the highest normalized range for the given day
// @Tags         cryptos
// @Produce      json
// @Param        date  query     string  true  "Day in YYYY-MM-DD" example(2022-01-01)
// @Success      200   {object}  dto.NormalizedRangeResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse            "Bad Request"
// @Failure      404   {object}  dto.ErrorResponse            "Not Found"
// @Failure      500   {object}  dto.ErrorResponse            "Internal Error"
// @Router       /api/v1/cryptos/normalized-range/highest [get]
func (h *Handler) GetHighestNormalizedRange(c *gin.Context) {
	s := c.Query("date")
	if s == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("date is required", nil))
		return
	}
	day, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid date format, expected YYYY-MM-DD", err))
		return
	}

	highest, err := h.svc.HighestNormalizedRange(c.Request.Context(), day)
	if err != nil {
		if errors.Is(err, service.ErrEmptyResult) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("no price data for the given day", err))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to compute highest normalized range", err))
		return
	}

	c.JSON(http.StatusOK, dto.NormalizedRangeResponse{Symbol: highest.Symbol, NormalizedPrice: highest.NormalizedPrice})
}

// GetStatistics handles GET /api/v1/cryptos/:symbol/statistics requests.
//
// GetStatistics godoc
// @Summary      Price statistics for one symbol
// @Description  Returns min, max, oldest and newest price for the symbol over the window
// @Tags         cryptos
// @Produce      json
// @Param        symbol     path      string  true   "Crypto symbol (case-insensitive)" example(BTC)
// @Param        date_from  query     string  false  "Start date (inclusive) in YYYY-MM-DD" example(2022-01-01)
// @Param        date_to    query     string  false  "End date (exclusive) in YYYY-MM-DD" example(2022-02-01)
// @Success      200        {object}  dto.StatisticResponse  "Success"
// @Failure      400        {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404        {object}  dto.ErrorResponse      "Not Found"
// @Failure      500        {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/cryptos/{symbol}/statistics [get]
func (h *Handler) GetStatistics(c *gin.Context) {
	symbol := c.Param("symbol")
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	stat, err := h.svc.StatisticsForSymbol(c.Request.Context(), symbol, from, to)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedSymbol) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("symbol not supported in the requested window", err))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to compute statistics", err))
		return
	}

	c.JSON(http.StatusOK, dto.StatisticResponse{
		Symbol: stat.Symbol,
		Min:    stat.Min,
		Max:    stat.Max,
		Oldest: stat.Oldest,
		Newest: stat.Newest,
	})
}
