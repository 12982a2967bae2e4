package handlers

import (
	"net/http"
	"strconv"

	"smart_plant/internal/models"
	"smart_plant/internal/service"

	"github.com/gin-gonic/gin"
)

// AddEntryRequest is one sensor sample as posted by the device. All values are percentages.
type AddEntryRequest struct {
	SoilMoisture   *int `json:"soil_moisture" binding:"required" example:"42"`
	LightIntensity *int `json:"light_intensity" binding:"required" example:"63"`
	WaterLevel     *int `json:"water_level" binding:"required" example:"80"`
}

type addEntryResponse struct {
	Status     int    `json:"status"`
	Response   string `json:"response"`
	EntryCount int    `json:"entry_count"`
}

type actuatorResponse struct {
	Status int `json:"status"`
	models.ActuatorState
}

type dashboardResponse struct {
	Status int `json:"status"`
	models.Dashboard
}

type statisticsResponse struct {
	Status int            `json:"status"`
	Days   int            `json:"days"`
	Graphs []models.Graph `json:"graphs"`
}

// @Summary      Welcome
// @Tags         system
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       / [get]
func (h *Handler) welcome(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{
		Status:   http.StatusOK,
		Response: "Smart plant API. Please visit " + docsURL + " for API documentation",
	})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Add a sensor reading
// @Tags         device
// @Accept       json
// @Produce      json
// @Param        Plant-Id  header  string           true  "Plant identifier"
// @Param        body      body    AddEntryRequest  true  "Reading payload"
// @Success      200  {object}  addEntryResponse
// @Failure      400  {object}  statusResponse
// @Failure      500  {object}  statusResponse
// @Router       /AddEntry [post]
func (h *Handler) addEntry(c *gin.Context) {
	var req AddEntryRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	plantID := plantIDFrom(c)

	count, err := h.services.Ingest(c.Request.Context(), plantID, service.ReadingInput{
		SoilMoisture:   *req.SoilMoisture,
		LightIntensity: *req.LightIntensity,
		WaterLevel:     *req.WaterLevel,
	})
	if err != nil {
		h.respondError(c, err, "reading_ingest_failed", "plant_id", plantID)
		return
	}
	c.JSON(http.StatusOK, addEntryResponse{Status: http.StatusOK, Response: msgEntryAdded, EntryCount: count})
}

// @Summary      Actuator state for the device
// @Description  The active override wins; otherwise the state is derived from the latest reading.
// @Tags         device
// @Produce      json
// @Param        Plant-Id  header  string  true  "Plant identifier"
// @Success      200  {object}  actuatorResponse
// @Failure      400  {object}  statusResponse
// @Failure      500  {object}  statusResponse
// @Router       /ActuatorData [get]
func (h *Handler) actuatorData(c *gin.Context) {
	plantID := plantIDFrom(c)
	st, err := h.services.Resolve(c.Request.Context(), plantID)
	if err != nil {
		h.respondError(c, err, "actuator_resolve_failed", "plant_id", plantID)
		return
	}
	c.JSON(http.StatusOK, actuatorResponse{Status: http.StatusOK, ActuatorState: st})
}

// @Summary      Dashboard snapshot for the app
// @Tags         app
// @Produce      json
// @Param        Plant-Id  header  string  true  "Plant identifier"
// @Success      200  {object}  dashboardResponse
// @Failure      400  {object}  statusResponse
// @Failure      500  {object}  statusResponse
// @Router       /AppBasicData [get]
func (h *Handler) appBasicData(c *gin.Context) {
	plantID := plantIDFrom(c)
	d, err := h.services.Snapshot(c.Request.Context(), plantID)
	if err != nil {
		h.respondError(c, err, "dashboard_snapshot_failed", "plant_id", plantID)
		return
	}
	c.JSON(http.StatusOK, dashboardResponse{Status: http.StatusOK, Dashboard: d})
}

// @Summary      Daily statistics
// @Description  Per-day averages for the last N days, today included. Days without readings are zero.
// @Tags         app
// @Produce      json
// @Param        Plant-Id  header  string  true   "Plant identifier"
// @Param        days      query   int     false  "Window length in days"  example(7)
// @Success      200  {object}  statisticsResponse
// @Failure      400  {object}  statusResponse
// @Failure      500  {object}  statusResponse
// @Router       /StatisticalData [get]
func (h *Handler) statisticalData(c *gin.Context) {
	days := 0
	if qs := c.Query("days"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid 'days'; expected an integer")
			return
		}
		days = n
	}
	plantID := plantIDFrom(c)

	graphs, err := h.services.Graphs(c.Request.Context(), plantID, days)
	if err != nil {
		h.respondError(c, err, "statistics_failed", "plant_id", plantID, "days", days)
		return
	}
	if len(graphs) > 0 {
		days = len(graphs[0].Points)
	}
	c.JSON(http.StatusOK, statisticsResponse{Status: http.StatusOK, Days: days, Graphs: graphs})
}
