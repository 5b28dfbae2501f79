package usecase

import (
	"context"
	"net/http"
	"time"

	"videotube/internal/repo/persistent"
	"videotube/pkg/apperror"
	"videotube/pkg/logger"
)

type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type HealthUseCase interface {
	Check(ctx context.Context) (*HealthStatus, error)
}

type healthUseCase struct {
	healthRepo persistent.HealthRepository
	timeout    time.Duration
	logger     *logger.Logger
}

func NewHealthUseCase(healthRepo persistent.HealthRepository, logger *logger.Logger) HealthUseCase {
	return &healthUseCase{healthRepo: healthRepo, timeout: 2 * time.Second, logger: logger}
}

func (uc *healthUseCase) Check(ctx context.Context) (*HealthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if err := uc.healthRepo.Ping(ctx); err != nil {
		uc.logger.Error("Health check failed: %v", err)
		return nil, apperror.New(http.StatusServiceUnavailable, "database unavailable")
	}
	return &HealthStatus{Status: "ok", Database: "up"}, nil
}
