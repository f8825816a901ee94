package interfaces

import (
    "context"

    "github.com/d2inventory/motioncore/internal/config"
    "github.com/d2inventory/motioncore/internal/motion"
    "github.com/d2inventory/motioncore/internal/storage"
)

// SystemStatus represents the current system state
type SystemStatus struct {
    State       string `json:"state"`
    MotionMode  string `json:"motion_mode"`
    Profile     string `json:"profile,omitempty"`
    ActiveAxes  int    `json:"active_axes"`
    StorageUp   bool   `json:"storage_up"`
    Diagnostics int    `json:"diagnostics_pending"`
}

type LifecycleManager interface {
    Config() *config.Config
    Storage() *storage.PostgresClient
    Producer() *motion.Producer
    Controller() *motion.Controller
    GetCurrentStatus() SystemStatus
    ApplyProfile(name string) error
    Shutdown(ctx context.Context) error
}
