// Package planner computes collision-free paths between two points in a
// bounded continuous space with sampling-based planners.
//
// PRMPlanner builds a probabilistic roadmap (rejection-sampled free-space
// nodes joined to their k nearest collision-free neighbors) and extracts
// the shortest start-to-goal route with Dijkstra. RRTPlanner grows a
// goal-biased rapidly-exploring random tree with bounded steering.
// RRT3DPlanner grows the same kind of tree in three dimensions without an
// obstacle model.
//
// The planar planners consult a CollisionChecker. ObstacleField is the
// bundled checker for circle, rectangle and polygon obstacles; any other
// implementation can be installed with WithCollisionChecker.
//
// Planners are single-goroutine objects: each owns its random source and
// its roadmap or tree, which is rebuilt on every Plan call.
package planner
