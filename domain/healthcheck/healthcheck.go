package healthcheck

import (
	"github.com/phoenix-escrow/goapi/base/ctx"
)

// HealthCheckRepo represent the healthcheck's repository contract
type HealthCheckRepo interface {
	PingDB(ctx ctx.Ctx) error
}

// HealthCheckUsecase represent the healthcheck's usecase contract
type HealthCheckUsecase interface {
	Check(ctx ctx.Ctx) error
}
