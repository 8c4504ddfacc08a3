package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/cors"
	"go.uber.org/zap"

	planner "sampling-planner"
)

// PlanRequest is the body of POST /plan. Planar algorithms ignore the Z
// components of start, goal and bounds.
type PlanRequest struct {
	Algorithm    string                  `json:"algorithm"`           // prm, rrt or rrt3d
	Start        planner.Configuration3D `json:"start"`
	Goal         planner.Configuration3D `json:"goal"`
	Bounds       planner.Bounds3D        `json:"bounds"`
	PRM          *planner.PRMConfig      `json:"prm,omitempty"`
	RRT          *planner.RRTConfig      `json:"rrt,omitempty"`
	RRT3D        *planner.RRT3DConfig    `json:"rrt3d,omitempty"`
	Obstacles    json.RawMessage         `json:"obstacles,omitempty"` // tagged obstacle records
	GeoJSON      json.RawMessage         `json:"geojson,omitempty"`   // feature collection
	Seed         *int64                  `json:"seed,omitempty"`
	IncludeGraph bool                    `json:"includeGraph,omitempty"`
}

// PlanResponse is the result of POST /plan.
type PlanResponse struct {
	Success        bool           `json:"success"`
	Message        string         `json:"message,omitempty"`
	Path           [][]float64    `json:"path"`
	PathLength     float64        `json:"pathLength,omitempty"`
	NumNodes       int            `json:"numNodes"`
	PlanningTimeMs float64        `json:"planningTimeMs"`
	Edges          [][2][]float64 `json:"edges,omitempty"`
}

// maxRequestBytes caps the size of a POST /plan body.
const maxRequestBytes = 4 << 20

// limits bounds the planning work a single request may ask for.
type limits struct {
	MaxSamples    int // PRM numSamples
	MaxIterations int // RRT and RRT-3D maxIterations
}

func defaultLimits() limits {
	return limits{MaxSamples: 20000, MaxIterations: 50000}
}

// check rejects per-request configurations above the service limits.
func (l limits) check(req PlanRequest) error {
	if req.PRM != nil && req.PRM.NumSamples > l.MaxSamples {
		return errors.Errorf("numSamples %d exceeds the service limit of %d", req.PRM.NumSamples, l.MaxSamples)
	}
	if req.RRT != nil && req.RRT.MaxIterations > l.MaxIterations {
		return errors.Errorf("maxIterations %d exceeds the service limit of %d", req.RRT.MaxIterations, l.MaxIterations)
	}
	if req.RRT3D != nil && req.RRT3D.MaxIterations > l.MaxIterations {
		return errors.Errorf("maxIterations %d exceeds the service limit of %d", req.RRT3D.MaxIterations, l.MaxIterations)
	}
	return nil
}

type server struct {
	logger    *zap.SugaredLogger
	obstacles []planner.Obstacle // used when a request carries none
	limits    limits
	plans     atomic.Int64
}

func newServer(logger *zap.SugaredLogger, obstacles []planner.Obstacle, lim limits) *server {
	return &server{logger: logger, obstacles: obstacles, limits: lim}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/plan", s.planHandler)
	mux.HandleFunc("/health", s.healthHandler)

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)
}

// POST /plan - Plan a path with the requested algorithm
func (s *server) planHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("📍 Plan request received")

	if r.Method != http.MethodPost {
		s.logger.Warnf("❌ Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PlanRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warnf("❌ Invalid request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.limits.check(req); err != nil {
		s.logger.Warnf("❌ Request over limits: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	obstacles, err := s.requestObstacles(req)
	if err != nil {
		s.logger.Warnf("❌ Invalid obstacles: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.logger.Infof("   Algorithm: %s, obstacles: %d", req.Algorithm, len(obstacles))
	s.logger.Infof("   Start: (%.3f, %.3f, %.3f)", req.Start.X, req.Start.Y, req.Start.Z)
	s.logger.Infof("   Goal:  (%.3f, %.3f, %.3f)", req.Goal.X, req.Goal.Y, req.Goal.Z)

	opts := []planner.Option{planner.WithLogger(s.logger.Named(req.Algorithm))}
	if req.Seed != nil {
		opts = append(opts, planner.WithSeed(*req.Seed))
	}

	var resp *PlanResponse
	switch strings.ToLower(req.Algorithm) {
	case "prm", "":
		resp, err = planPRM(req, obstacles, opts)
	case "rrt":
		resp, err = planRRT(req, obstacles, opts)
	case "rrt3d":
		if len(obstacles) > 0 {
			s.logger.Warn("⚠️  rrt3d has no obstacle model; obstacles are ignored")
		}
		resp, err = planRRT3D(req, opts)
	default:
		err = errors.Errorf("unknown algorithm %q", req.Algorithm)
	}
	if err != nil {
		s.logger.Warnf("❌ Planner rejected request: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.plans.Add(1)

	if resp.Success {
		s.logger.Infof("✅ Path found with %d waypoints (length %.3f, %d nodes, %.2f ms)",
			len(resp.Path), resp.PathLength, resp.NumNodes, resp.PlanningTimeMs)
	} else {
		resp.Message = "No path found within the planning budget"
		s.logger.Infof("❌ No path found (%d nodes, %.2f ms)", resp.NumNodes, resp.PlanningTimeMs)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /health - Health check endpoint
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "ready",
		"defaultObstacles": len(s.obstacles),
		"plansServed":      s.plans.Load(),
	})
}

func (s *server) requestObstacles(req PlanRequest) ([]planner.Obstacle, error) {
	if len(req.Obstacles) == 0 && len(req.GeoJSON) == 0 {
		return s.obstacles, nil
	}
	var obstacles []planner.Obstacle
	if len(req.Obstacles) > 0 {
		decoded, err := planner.DecodeObstacles(req.Obstacles)
		if err != nil {
			return nil, err
		}
		obstacles = append(obstacles, decoded...)
	}
	if len(req.GeoJSON) > 0 {
		parsed, err := planner.ParseGeoJSONObstacles(req.GeoJSON)
		if err != nil {
			return nil, err
		}
		obstacles = append(obstacles, parsed...)
	}
	return obstacles, nil
}

func planar(c planner.Configuration3D) planner.Configuration {
	return planner.NewConfiguration(c.X, c.Y)
}

func planarBounds(b planner.Bounds3D) planner.Bounds {
	return planner.Bounds{X: b.X, Y: b.Y}
}

func planPRM(req PlanRequest, obstacles []planner.Obstacle, opts []planner.Option) (*PlanResponse, error) {
	cfg := planner.DefaultPRMConfig()
	if req.PRM != nil {
		cfg = *req.PRM
	}
	p, err := planner.NewPRMPlanner(planar(req.Start), planar(req.Goal), planarBounds(req.Bounds), cfg, opts...)
	if err != nil {
		return nil, err
	}
	p.SetObstacles(obstacles)
	resp := planarResponse(p.Plan(), p.Path(), p.NumNodes(), p.PlanningTime())
	if req.IncludeGraph {
		resp.Edges = segmentCoords(p.EdgeSegments())
	}
	return resp, nil
}

func planRRT(req PlanRequest, obstacles []planner.Obstacle, opts []planner.Option) (*PlanResponse, error) {
	cfg := planner.DefaultRRTConfig()
	if req.RRT != nil {
		cfg = *req.RRT
	}
	p, err := planner.NewRRTPlanner(planar(req.Start), planar(req.Goal), planarBounds(req.Bounds), cfg, opts...)
	if err != nil {
		return nil, err
	}
	p.SetObstacles(obstacles)
	resp := planarResponse(p.Plan(), p.Path(), p.NumNodes(), p.PlanningTime())
	if req.IncludeGraph {
		resp.Edges = segmentCoords(p.EdgeSegments())
	}
	return resp, nil
}

func planRRT3D(req PlanRequest, opts []planner.Option) (*PlanResponse, error) {
	cfg := planner.DefaultRRT3DConfig()
	if req.RRT3D != nil {
		cfg = *req.RRT3D
	}
	p, err := planner.NewRRT3DPlanner(req.Start, req.Goal, req.Bounds, cfg, opts...)
	if err != nil {
		return nil, err
	}
	res := p.Plan()
	resp := &PlanResponse{
		Success:        res.Success,
		Path:           make([][]float64, 0, len(res.Path)),
		PathLength:     planner.PathLength3D(res.Path),
		NumNodes:       len(res.Nodes),
		PlanningTimeMs: milliseconds(res.Time),
	}
	for _, c := range res.Path {
		resp.Path = append(resp.Path, c.Coords())
	}
	if req.IncludeGraph {
		for _, e := range p.Edges() {
			resp.Edges = append(resp.Edges, [2][]float64{res.Nodes[e.From].Coords(), res.Nodes[e.To].Coords()})
		}
	}
	return resp, nil
}

func planarResponse(success bool, path []planner.Configuration, numNodes int, elapsed time.Duration) *PlanResponse {
	resp := &PlanResponse{
		Success:        success,
		Path:           make([][]float64, 0, len(path)),
		PathLength:     planner.PathLength(path),
		NumNodes:       numNodes,
		PlanningTimeMs: milliseconds(elapsed),
	}
	for _, c := range path {
		resp.Path = append(resp.Path, c.Coords())
	}
	return resp
}

func segmentCoords(segments [][2]planner.Configuration) [][2][]float64 {
	lines := make([][2][]float64, 0, len(segments))
	for _, s := range segments {
		lines = append(lines, [2][]float64{s[0].Coords(), s[1].Coords()})
	}
	return lines
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
