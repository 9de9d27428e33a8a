package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/starforge/sim/internal/config"
	"github.com/starforge/sim/internal/core/event"
	coresys "github.com/starforge/sim/internal/core/system"
	"github.com/starforge/sim/internal/data"
	"github.com/starforge/sim/internal/effect"
	"github.com/starforge/sim/internal/particle"
	"github.com/starforge/sim/internal/persist"
	"github.com/starforge/sim/internal/scripting"
	"github.com/starforge/sim/internal/sim"
	simsys "github.com/starforge/sim/internal/system"
	"github.com/starforge/sim/internal/vmath"
	"github.com/starforge/sim/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/starforged.toml"
	if p := os.Getenv("STARFORGE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting", zap.String("server", cfg.Server.Name))

	// 3. Optional Postgres for effect telemetry
	var telemetryRepo *persist.TelemetryRepo
	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		telemetryRepo = persist.NewTelemetryRepo(db)
		log.Info("telemetry database ready")
	}

	// 4. Load effect definitions and curve scripts
	effectTable, err := data.LoadEffectTable(cfg.Effects.DefinitionsFile)
	if err != nil {
		return fmt.Errorf("effect definitions: %w", err)
	}
	log.Info("effect definitions loaded",
		zap.String("file", cfg.Effects.DefinitionsFile),
		zap.Int("count", effectTable.Len()))

	curves, err := scripting.NewEngine(cfg.Scripting.CurvesDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer curves.Close()

	// 5. Build the simulation
	bus := event.NewBus()
	clock := sim.NewClock()
	ws := world.NewState(bus, log)
	particles := particle.NewTable(cfg.Simulation.MaxParticles)

	manager := effect.NewManager(particles, bus, log, cfg.Effects.KeepInvalidUntilFinished)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	manager.RegisterTable(effectTable, curves, rng)

	// A destroyed entity invalidates its anchored sources mid-frame;
	// prune them as soon as the event is delivered.
	event.Subscribe(bus, func(ev event.EntityDestroyed) {
		if n := manager.PruneInvalid(); n > 0 {
			log.Debug("pruned sources for destroyed entity",
				zap.Uint32("slot", ev.ID.Index()), zap.Int("count", n))
		}
	})
	event.Subscribe(bus, func(ev event.SourceExpired) {
		log.Debug("source expired",
			zap.String("effect", ev.Effect),
			zap.Uint64("processed", ev.Processed),
			zap.Bool("invalid", ev.Invalid))
	})

	// 6. Register systems in phase order
	runner := coresys.NewRunner()
	runner.Register(simsys.NewEventSystem(bus))
	runner.Register(simsys.NewPhysicsSystem(ws))
	runner.Register(simsys.NewEffectSystem(manager, clock, log))
	runner.Register(simsys.NewParticleSystem(particles, ws, clock))
	telemetry := simsys.NewTelemetrySystem(manager, clock, telemetryRepo, cfg.Telemetry.FlushIntervalTicks, log)
	if cfg.Telemetry.Enabled || telemetryRepo != nil {
		runner.Register(telemetry)
	}
	runner.Register(simsys.NewCleanupSystem(ws))

	if cfg.Simulation.Demo {
		spawnDemoScene(ws, manager, effectTable, clock, log)
	}

	// 7. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	log.Info("simulation loop started", zap.Duration("tick", cfg.Simulation.TickRate))

	for {
		select {
		case <-ticker.C:
			clock.Advance(cfg.Simulation.TickRate)
			runner.Tick(cfg.Simulation.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			telemetry.Flush()
			log.Info("stopped")
			return nil
		}
	}
}

// spawnDemoScene puts one moving ship in the world and triggers every
// defined effect on it, so a bare checkout shows particles flowing.
func spawnDemoScene(ws *world.State, manager *effect.Manager, tbl *data.EffectTable, clock *sim.Clock, log *zap.Logger) {
	frame := vmath.FrameFromForward(vmath.Vec3{X: 1})
	ship := ws.SpawnShip(vmath.Vec3{}, frame, vmath.Vec3{X: 30})

	tbl.Each(func(tpl *data.EffectTemplate) {
		_, err := manager.Trigger(clock.Now(), tpl.Name, func(s *particle.Source) {
			s.Origin().MoveToEntity(ws, ship, vmath.Vec3{})
			s.Orientation().SetFromMatrix(frame)
		})
		if err != nil {
			log.Warn("demo trigger failed", zap.String("effect", tpl.Name), zap.Error(err))
		}
	})
	log.Info("demo scene spawned", zap.Int("effects", tbl.Len()))
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
