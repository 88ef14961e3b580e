// Package steer implements steering behaviors for autonomous agents.
//
// A behavior turns the current state of its owner (and usually a target) into a
// requested linear and angular [Acceleration]. Behaviors never integrate that
// acceleration; applying it to velocity and position is the host loop's job.
//
// Primitive behaviors:
//
//   - [Seek], [Flee], [Arrive], [Pursue], [Evade], [MatchVelocity]
//   - [ReachOrientation], [Face], [LookWhereYouAreGoing], [Wander]
//
// Compound and group behaviors:
//
//   - [BlendedSteering]: weighted sum clamped to the limiter
//   - [PrioritySteering]: first child above an epsilon wins
//   - [CollisionAvoidance], [Separation], [Cohesion], [Alignment] over a [Proximity]
//
// Navigation:
//
//   - [FollowPath] along a [LinePath]
//   - [RaycastObstacleAvoidance] with a [RayConfiguration]
//   - [Jump]: run-up and ballistic takeoff
//
// Every behavior is generic over the vector type, so the same code serves
// *vec.Vec2 and *vec.Vec3 owners.
//
// # Usage
//
//	out := steer.NewAcceleration(vec.New2(0, 0))
//	arrive := steer.NewArrive[*vec.Vec2](agent, target)
//	arrive.DecelerationRadius = 5
//	for tick := range ticks {
//	    arrive.CalculateSteering(out)
//	    host.Apply(agent, out)
//	}
//
// # Determinism
//
// Nothing in this package reads a clock. Behaviors that depend on elapsed time
// or frame identity ([Wander], [RadiusProximity], [FieldOfViewProximity]) take a
// [Timepiece] supplied by the host. Instances are single-threaded and keep
// scratch vectors between calls.
package steer
