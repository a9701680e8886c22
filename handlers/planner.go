// Package handlers exposes the planner over HTTP: the public API on gin and
// the operator endpoints on gorilla/mux.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ahmed2003-Rav/Egypt-Map/data"
	"github.com/Ahmed2003-Rav/Egypt-Map/events"
	"github.com/Ahmed2003-Rav/Egypt-Map/geo"
	"github.com/Ahmed2003-Rav/Egypt-Map/models"
	"github.com/Ahmed2003-Rav/Egypt-Map/network"
	"github.com/Ahmed2003-Rav/Egypt-Map/routing"
	"github.com/Ahmed2003-Rav/Egypt-Map/signals"
	"github.com/Ahmed2003-Rav/Egypt-Map/storage"
	"github.com/Ahmed2003-Rav/Egypt-Map/transit"
	"github.com/Ahmed2003-Rav/Egypt-Map/utils"
)

const (
	KindNetwork    = "network"
	KindShortest   = "shortest_path"
	KindAlternate  = "alternate_routes"
	KindEmergency  = "emergency_route"
	KindTraffic    = "traffic_analysis"
	KindTransport  = "transport"
	KindSignals    = "signals"
	maxHistorySize = 200
)

type PlannerHandler struct {
	store        *data.Store
	archive      storage.Archive
	dispatcher   events.Dispatcher
	historyLimit int
}

func NewPlannerHandler(store *data.Store, archive storage.Archive, dispatcher events.Dispatcher, historyLimit int) *PlannerHandler {
	if archive == nil {
		archive = storage.NewMemoryArchive(maxHistorySize)
	}
	if dispatcher == nil {
		dispatcher = events.NopDispatcher{}
	}
	if historyLimit <= 0 {
		historyLimit = 20
	}
	return &PlannerHandler{
		store:        store,
		archive:      archive,
		dispatcher:   dispatcher,
		historyLimit: historyLimit,
	}
}

func (h *PlannerHandler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api")
	api.GET("/road_network", h.RoadNetwork)
	api.GET("/road_network/geojson", h.RoadNetworkGeoJSON)
	api.POST("/optimize_network", h.OptimizeNetwork)
	api.POST("/shortest_path", h.ShortestPath)
	api.POST("/alternate_routes", h.AlternateRoutes)
	api.POST("/emergency_route", h.EmergencyRoute)
	api.POST("/traffic_analysis", h.TrafficAnalysis)
	api.POST("/optimize_transport", h.OptimizeTransport)
	api.POST("/optimize_signals", h.OptimizeSignals)
	api.GET("/history", h.History)

	r.GET("/health", h.Health)
}

func (h *PlannerHandler) RoadNetwork(c *gin.Context) {
	ds := h.store.Current()
	c.JSON(http.StatusOK, models.RoadNetworkResponse{
		Neighborhoods:  nonNil(ds.Neighborhoods),
		Facilities:     nonNil(ds.Facilities),
		ExistingRoads:  nonNil(ds.ExistingRoads),
		PotentialRoads: nonNil(ds.PotentialRoads),
	})
}

func (h *PlannerHandler) RoadNetworkGeoJSON(c *gin.Context) {
	ds := h.store.Current()
	fc := geo.NetworkFeatures(ds.Locations(), ds.ExistingRoads, ds.PotentialRoads)
	body, err := fc.MarshalJSON()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/geo+json", body)
}

func (h *PlannerHandler) OptimizeNetwork(c *gin.Context) {
	log.Println("=== Received network optimization request ===")
	started := time.Now()

	var req models.NetworkRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	prioritize := true
	if req.PrioritizePopulation != nil {
		prioritize = *req.PrioritizePopulation
	}

	res, err := network.NewOptimizer(h.store.Current()).Optimize(req.Algorithm, prioritize)
	if err != nil {
		fail(c, err)
		return
	}
	log.Println(network.Describe(res))

	h.record(c, KindNetwork, req, res, started)
	c.JSON(http.StatusOK, res)
}

func (h *PlannerHandler) ShortestPath(c *gin.Context) {
	started := time.Now()
	var req models.RouteRequest
	tod, ok := bindRoute(c, &req)
	if !ok {
		return
	}
	log.Printf("Shortest path %s -> %s (%s), %d closed roads", req.Start, req.End, tod, len(req.ClosedRoads))

	route, err := routing.NewPathFinder(h.store.Current()).ShortestPath(req.Start, req.End, tod, req.ClosedRoads)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, KindShortest, req, route, started)
	c.JSON(http.StatusOK, route)
}

func (h *PlannerHandler) AlternateRoutes(c *gin.Context) {
	started := time.Now()
	var req models.RouteRequest
	tod, ok := bindRoute(c, &req)
	if !ok {
		return
	}

	res, err := routing.NewPathFinder(h.store.Current()).AlternateRoutes(req.Start, req.End, tod, req.ClosedRoads, req.Count)
	if err != nil {
		fail(c, err)
		return
	}
	log.Printf("Found %d routes %s -> %s, congestion reduction %.1f%%", len(res.Routes), req.Start, req.End, res.CongestionReduction)

	h.record(c, KindAlternate, req, res, started)
	c.JSON(http.StatusOK, res)
}

// EmergencyRoute also forwards the route to dispatch. A dispatch failure is
// logged and the route is still returned.
func (h *PlannerHandler) EmergencyRoute(c *gin.Context) {
	log.Println("=== Received emergency route request ===")
	started := time.Now()

	var req models.RouteRequest
	tod, ok := bindRoute(c, &req)
	if !ok {
		return
	}

	ds := h.store.Current()
	route, err := routing.NewPathFinder(ds).EmergencyRoute(req.Start, req.End, tod)
	if err != nil {
		fail(c, err)
		return
	}
	log.Printf("Emergency route %s -> %s: %.1f km, %.1f min", req.Start, req.End, route.Distance, route.Time)

	msg := models.EmergencyDispatch{
		RequestID: requestID(c),
		Start:     req.Start,
		End:       req.End,
		Hospital:  ds.LocationName(req.End),
		TimeOfDay: tod,
		Route:     route,
		IssuedAt:  time.Now().UTC(),
	}
	if err := h.dispatcher.PublishEmergencyRoute(c.Request.Context(), msg); err != nil {
		log.Printf("ERROR: failed to dispatch emergency route: %v", err)
	}

	h.record(c, KindEmergency, req, route, started)
	c.JSON(http.StatusOK, route)
	log.Println("=== Emergency route request completed ===")
}

func (h *PlannerHandler) TrafficAnalysis(c *gin.Context) {
	started := time.Now()
	var req models.TrafficAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tod, err := utils.ParseTimeOfDay(req.TimeOfDay)
	if err != nil {
		fail(c, err)
		return
	}

	res, err := routing.NewPathFinder(h.store.Current()).AnalyzeTraffic(req.Location, tod)
	if err != nil {
		fail(c, err)
		return
	}

	h.record(c, KindTraffic, req, res, started)
	c.JSON(http.StatusOK, res)
}

func (h *PlannerHandler) OptimizeTransport(c *gin.Context) {
	log.Println("=== Received transport optimization request ===")
	started := time.Now()

	res := transit.NewOptimizer(h.store.Current()).Optimize()
	log.Printf("Transport plan: %d trains, %d buses, improvement %.1f%%",
		res.Data.Resources.TotalMetroTrains, res.Data.Resources.TotalBuses, res.Data.Improvement.Total*100)

	h.record(c, KindTransport, nil, res, started)
	c.JSON(http.StatusOK, res)
}

func (h *PlannerHandler) OptimizeSignals(c *gin.Context) {
	started := time.Now()
	var req models.SignalRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	tod, err := utils.ParseTimeOfDay(req.TimeOfDay)
	if err != nil {
		fail(c, err)
		return
	}

	plans, err := signals.NewOptimizer(h.store.Current()).Optimize(req.Intersections, tod)
	if err != nil {
		fail(c, err)
		return
	}
	log.Printf("Timed %d intersections for %s", len(plans), tod)

	h.record(c, KindSignals, req, plans, started)
	c.JSON(http.StatusOK, plans)
}

// History lists archived runs, newest first. ?kind= filters, ?limit= caps.
func (h *PlannerHandler) History(c *gin.Context) {
	limit := h.historyLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistorySize)
	}

	runs, err := h.archive.Recent(c.Request.Context(), c.Query("kind"), limit)
	if err != nil {
		log.Printf("ERROR: failed to read history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

func (h *PlannerHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "dataset_version": h.store.Version()})
}

// record archives a finished run. Failures never reach the client.
func (h *PlannerHandler) record(c *gin.Context, kind string, req, resp any, started time.Time) {
	run := models.PlanRun{
		ID:         uuid.NewString(),
		Kind:       kind,
		RequestID:  requestID(c),
		DurationMs: time.Since(started).Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	var err error
	if req != nil {
		if run.Request, err = json.Marshal(req); err != nil {
			log.Printf("ERROR: failed to encode %s request for archive: %v", kind, err)
			return
		}
	}
	if run.Response, err = json.Marshal(resp); err != nil {
		log.Printf("ERROR: failed to encode %s response for archive: %v", kind, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 2*time.Second)
	defer cancel()
	if err := h.archive.Record(ctx, run); err != nil {
		log.Printf("ERROR: failed to archive %s run: %v", kind, err)
	}
}

func bindRoute(c *gin.Context, req *models.RouteRequest) (models.TimeOfDay, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Printf("ERROR: Failed to parse request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	tod, err := utils.ParseTimeOfDay(req.TimeOfDay)
	if err != nil {
		fail(c, err)
		return "", false
	}
	return tod, true
}

// bindOptionalJSON accepts an empty body as the zero request.
func bindOptionalJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
