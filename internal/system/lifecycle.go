package system

import (
    "context"
    "fmt"
    "sync"
    "time"

    "github.com/d2inventory/motioncore/internal/api/rest"
    "github.com/d2inventory/motioncore/internal/api/websocket"
    "github.com/d2inventory/motioncore/internal/auth"
    "github.com/d2inventory/motioncore/internal/config"
    "github.com/d2inventory/motioncore/internal/interfaces"
    "github.com/d2inventory/motioncore/internal/kinematics"
    "github.com/d2inventory/motioncore/internal/motion"
    "github.com/d2inventory/motioncore/internal/planner"
    "github.com/d2inventory/motioncore/internal/profiles"
    "github.com/d2inventory/motioncore/internal/storage"
    "go.uber.org/zap"
)

type LifecycleManager struct {
    config      *config.Config
    storage     *storage.PostgresClient
    logger      *zap.Logger
    authService *auth.AuthService

    controller *motion.Controller
    producer   *motion.Producer
    loop       *motion.Loop
    loader     *profiles.ProfileLoader

    restServer *rest.Server
    wsHub      *websocket.Hub

    activeProfile string

    stateMu      sync.RWMutex
    currentState SystemState

    loopCancel context.CancelFunc
    loopDone   chan struct{}

    shutdownChan chan struct{}
    shutdownOnce sync.Once
}

// statusProvider adapts the controller snapshot to the websocket hub.
type statusProvider struct {
    ctl *motion.Controller
}

func (p statusProvider) GetStatus() any {
    return p.ctl.Snapshot()
}

func NewLifecycleManager(cfg *config.Config, logger *zap.Logger) (*LifecycleManager, error) {
    kin, err := buildKinematics(cfg.Motion.Kinematics)
    if err != nil {
        return nil, err
    }

    coordQueue := planner.NewFIFO(cfg.Motion.CoordQueueSize)
    var freeQueues [motion.MaxAxis]planner.Queue
    for i := range freeQueues {
        freeQueues[i] = planner.NewFIFO(cfg.Motion.FreeQueueSize)
    }

    motionCfg := motion.DefaultConfig()
    motionCfg.Debug = int32(cfg.Motion.Debug)

    controller := motion.NewController(logger, motionCfg, kin, coordQueue, freeQueues)
    producer := motion.NewProducer(controller)
    loop := motion.NewLoop(controller, cfg.Motion.CyclePeriod, logger)

    loader, err := profiles.NewProfileLoader(cfg.Profiles.SearchPaths)
    if err != nil {
        return nil, fmt.Errorf("failed to create profile loader: %w", err)
    }

    lm := &LifecycleManager{
        config:       cfg,
        logger:       logger,
        authService:  auth.NewAuthService(cfg.Auth, logger),
        controller:   controller,
        producer:     producer,
        loop:         loop,
        loader:       loader,
        wsHub:        websocket.NewHub(logger),
        currentState: StateInitializing,
        loopDone:     make(chan struct{}),
        shutdownChan: make(chan struct{}),
    }

    return lm, nil
}

func buildKinematics(name string) (kinematics.Kinematics, error) {
    switch name {
    case "", "trivial", "identity":
        return kinematics.Trivial{}, nil
    default:
        return nil, fmt.Errorf("unknown kinematics %q", name)
    }
}

// Start starts the entire system
func (lm *LifecycleManager) Start() error {
    lm.logger.Info("Starting motioncore")

    lm.setState(StateInitializing)

    // Audit storage is optional: the controller must come up even when
    // the database is down.
    if lm.config.Database.Enabled {
        store, err := storage.NewPostgresClient(lm.config.Database)
        if err != nil {
            lm.logger.Warn("Audit storage unavailable, continuing without it", zap.Error(err))
        } else {
            lm.storage = store
        }
    }

    // Control loop first so the profile activation commands below have a
    // consumer.
    loopCtx, cancel := context.WithCancel(context.Background())
    lm.loopCancel = cancel
    go func() {
        defer close(lm.loopDone)
        lm.loop.Run(loopCtx)
    }()

    go lm.wsHub.Run()
    lm.wsHub.SetMotionStatusProvider(statusProvider{ctl: lm.controller})
    go lm.broadcastLoop(loopCtx)

    if lm.config.Profiles.Profile != "" {
        if err := lm.ApplyProfile(lm.config.Profiles.Profile); err != nil {
            lm.setError(err)
            return fmt.Errorf("failed to apply startup profile: %w", err)
        }
    }

    if err := lm.startRESTServer(); err != nil {
        lm.setError(fmt.Errorf("failed to start REST API: %w", err))
        return err
    }

    lm.setState(StateRunning)

    lm.logger.Info("System started successfully",
        zap.Int("http_port", lm.config.Server.HTTPPort),
        zap.Duration("cycle_period", lm.config.Motion.CyclePeriod),
        zap.String("profile", lm.activeProfile))

    return nil
}

// broadcastLoop pushes status snapshots and diagnostics to websocket
// clients at the configured interval.
func (lm *LifecycleManager) broadcastLoop(ctx context.Context) {
    interval := lm.config.Motion.StatusInterval
    if interval <= 0 {
        interval = 100 * time.Millisecond
    }
    ticker := time.NewTicker(interval)
    defer ticker.Stop()

    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            lm.wsHub.Broadcast(websocket.NewMotionStatusMessage(lm.controller.Snapshot()))

            for _, d := range lm.controller.Reporter().Drain() {
                lm.wsHub.Broadcast(websocket.NewDiagnosticMessage(d.Message, d.Time))
                if lm.storage != nil {
                    persistCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
                    if err := lm.storage.LogDiagnostic(persistCtx, d.Message, d.Time); err != nil {
                        lm.logger.Warn("Failed to persist diagnostic", zap.Error(err))
                    }
                    cancel()
                }
            }
        }
    }
}

// ApplyProfile loads a machine profile and feeds it to the dispatcher
// as configuration commands, so axis limits change through the same
// channel as everything else.
func (lm *LifecycleManager) ApplyProfile(name string) error {
    profile, err := lm.loader.Load(name)
    if err != nil {
        return err
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    cmds := profileCommands(profile)
    for _, cmd := range cmds {
        if _, _, err := lm.producer.Submit(ctx, cmd); err != nil {
            return fmt.Errorf("profile %s: command %s not applied: %w", name, cmd.Kind, err)
        }
    }

    lm.activeProfile = name
    lm.logger.Info("Machine profile applied",
        zap.String("profile", name),
        zap.Int("axes", len(profile.Axes)))

    if lm.storage != nil {
        persistCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        cfg := lm.controller.Config()
        if err := lm.storage.SaveProfileSnapshot(persistCtx, name, int(cfg.Generation), profile); err != nil {
            lm.logger.Warn("Failed to persist profile snapshot", zap.Error(err))
        }
    }

    return nil
}

// profileCommands flattens a profile into dispatcher commands.
func profileCommands(p *profiles.MachineProfile) []motion.Command {
    cmds := []motion.Command{
        {Kind: motion.KindSetNumAxes, Axis: int32(len(p.Axes))},
        {Kind: motion.KindSetVelLimit, Vel: p.VelLimit},
    }

    for i, ax := range p.Axes {
        axis := int32(i)
        cmds = append(cmds,
            motion.Command{Kind: motion.KindActivateAxis, Axis: axis},
            motion.Command{Kind: motion.KindSetPositionLimits, Axis: axis, MinLimit: ax.MinLimit, MaxLimit: ax.MaxLimit},
            motion.Command{Kind: motion.KindSetAxisVelLimit, Axis: axis, Vel: ax.MaxVel},
            motion.Command{Kind: motion.KindSetMaxFerror, Axis: axis, MaxFerror: ax.MaxFerror},
            motion.Command{Kind: motion.KindSetMinFerror, Axis: axis, MinFerror: ax.MinFerror},
            motion.Command{Kind: motion.KindSetHomingVel, Axis: axis, Vel: ax.HomingVel},
            motion.Command{Kind: motion.KindSetHomeOffset, Axis: axis, Offset: ax.HomeOffset},
        )
    }

    for i := len(p.Axes); i < motion.MaxAxis; i++ {
        cmds = append(cmds, motion.Command{Kind: motion.KindDeactivateAxis, Axis: int32(i)})
    }

    return cmds
}

// Shutdown gracefully shuts down the system
func (lm *LifecycleManager) Shutdown(ctx context.Context) error {
    var shutdownErr error

    lm.shutdownOnce.Do(func() {
        lm.logger.Info("Shutting down system")

        lm.setState(StateStopping)

        shutdownErr = lm.gracefulShutdown(ctx)

        lm.setState(StateStopped)

        close(lm.shutdownChan)
    })

    return shutdownErr
}

func (lm *LifecycleManager) gracefulShutdown(ctx context.Context) error {
    // REST first so no new commands arrive while the loop drains.
    if lm.restServer != nil {
        shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
        defer cancel()
        if err := lm.restServer.Shutdown(shutdownCtx); err != nil {
            lm.logger.Warn("REST shutdown failed", zap.Error(err))
        }
    }

    if lm.loopCancel != nil {
        lm.loopCancel()
        select {
        case <-lm.loopDone:
        case <-ctx.Done():
            lm.logger.Warn("Shutdown timeout, control loop still running")
            return fmt.Errorf("shutdown timeout exceeded")
        }
    }

    if lm.storage != nil {
        lm.storage.Close()
    }

    lm.logger.Info("Graceful shutdown completed")
    return nil
}

func (lm *LifecycleManager) startRESTServer() error {
    lm.restServer = rest.NewServer(lm.config, lm, lm.logger, lm.wsHub, lm.authService)
    return lm.restServer.Start()
}

func (lm *LifecycleManager) setState(state SystemState) {
    lm.stateMu.Lock()
    defer lm.stateMu.Unlock()
    if state == lm.currentState {
        return
    }
    if err := ValidateTransition(lm.currentState, state); err != nil {
        lm.logger.Warn("State transition rejected", zap.Error(err))
        return
    }
    lm.currentState = state
}

func (lm *LifecycleManager) setError(err error) {
    lm.stateMu.Lock()
    defer lm.stateMu.Unlock()
    lm.logger.Error("System entering error state", zap.Error(err))
    lm.currentState = StateError
}

// GetCurrentStatus returns current system status (Interface implementation)
func (lm *LifecycleManager) GetCurrentStatus() interfaces.SystemStatus {
    lm.stateMu.RLock()
    state := lm.currentState
    lm.stateMu.RUnlock()

    snap := lm.controller.Snapshot()
    active := 0
    for _, ax := range snap.Axes {
        if ax.Flags.Active {
            active++
        }
    }

    return interfaces.SystemStatus{
        State:       state.String(),
        MotionMode:  snap.Mode,
        Profile:     lm.activeProfile,
        ActiveAxes:  active,
        StorageUp:   lm.storage != nil,
        Diagnostics: lm.controller.Reporter().Pending(),
    }
}

// Done returns a channel closed when shutdown completes.
func (lm *LifecycleManager) Done() <-chan struct{} {
    return lm.shutdownChan
}

// Producer returns the command producer
func (lm *LifecycleManager) Producer() *motion.Producer {
    return lm.producer
}

// Controller returns the motion controller
func (lm *LifecycleManager) Controller() *motion.Controller {
    return lm.controller
}

// Storage returns the storage client
func (lm *LifecycleManager) Storage() *storage.PostgresClient {
    return lm.storage
}

// Config returns the configuration
func (lm *LifecycleManager) Config() *config.Config {
    return lm.config
}
