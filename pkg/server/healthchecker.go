package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// HealthFunc adapts a plain function to HealthChecker.
type HealthFunc func(ctx context.Context) bool

func (f HealthFunc) Healthy(ctx context.Context) bool {
	return f(ctx)
}

// AllHealthy reports healthy only when every checker does.
func AllHealthy(checkers ...HealthChecker) HealthChecker {
	return HealthFunc(func(ctx context.Context) bool {
		for _, c := range checkers {
			if c == nil || !c.Healthy(ctx) {
				return false
			}
		}
		return true
	})
}
