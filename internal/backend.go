package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/emcfan/internal/api"
	"github.com/markusressel/emcfan/internal/configuration"
	"github.com/markusressel/emcfan/internal/controller"
	"github.com/markusressel/emcfan/internal/curves"
	"github.com/markusressel/emcfan/internal/fans"
	"github.com/markusressel/emcfan/internal/sensors"
	"github.com/markusressel/emcfan/internal/statistics"
	"github.com/markusressel/emcfan/internal/ui"
	"github.com/oklog/run"
)

const shutdownTimeout = 5 * time.Second

// Objects are the components of a running daemon
type Objects struct {
	Sensor     sensors.Sensor
	Fan        fans.Fan
	Curve      *curves.LinearSpeedCurve
	Controller controller.FanController
}

func RunDaemon() {
	if os.Geteuid() != 0 && configuration.CurrentConfig.Fan.Emc2301 != nil {
		ui.Warning("Not running as root, access to the i2c bus might be denied")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := Run(ctx, configuration.CurrentConfig)
	if err != nil {
		ui.Fatal("%v", err)
	}
	ui.Info("Done.")
}

// InitializeObjects creates all components described by the given configuration
func InitializeObjects(config configuration.Configuration) (*Objects, error) {
	if err := configuration.ValidateConfig(&config); err != nil {
		return nil, err
	}

	sensor, err := sensors.NewSensor(config.Sensor)
	if err != nil {
		return nil, fmt.Errorf("unable to process sensor configuration: %w", err)
	}

	curve, err := curves.NewSpeedCurve(config.Curve)
	if err != nil {
		return nil, fmt.Errorf("unable to process curve configuration: %w", err)
	}

	fan, err := fans.NewFan(config.Fan)
	if err != nil {
		return nil, fmt.Errorf("unable to process fan configuration: %w", err)
	}

	if chipLagsBehind(config) {
		settings := fans.NewEmc2301Settings(config.Fan.Emc2301)
		ui.Warning("Controller interval %s is shorter than the chip update interval %s, the fan will lag behind the curve",
			config.Controller.Interval, settings.UpdateIntervalDuration())
	}

	fanController := controller.NewFanController(sensor, fan, curve, controller.NewConfig(config.Controller))

	return &Objects{
		Sensor:     sensor,
		Fan:        fan,
		Curve:      curve,
		Controller: fanController,
	}, nil
}

// chipLagsBehind reports whether the chip ramps slower than the controller writes new values
func chipLagsBehind(config configuration.Configuration) bool {
	settings := fans.NewEmc2301Settings(config.Fan.Emc2301)
	return settings.RampControl && config.Controller.Interval < settings.UpdateIntervalDuration()
}

// Run controls the fan until ctx is cancelled or the controller gives up
func Run(ctx context.Context, config configuration.Configuration) error {
	objects, err := InitializeObjects(config)
	if err != nil {
		return err
	}
	defer func() {
		if err := objects.Fan.Close(); err != nil {
			ui.Warning("Error closing fan %s: %v", objects.Fan.GetId(), err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g run.Group
	{
		g.Add(func() error {
			<-ctx.Done()
			return nil
		}, func(err error) {
			cancel()
		})
	}
	{
		// === fan controller
		fanController := objects.Controller
		g.Add(func() error {
			err := fanController.Run(ctx)
			ui.Info("Fan controller for fan %s stopped.", objects.Fan.GetId())
			return err
		}, func(err error) {
			cancel()
		})
	}
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		registerCollectors(objects)
		addr := fmt.Sprintf(":%d", config.Statistics.Port)
		addServer(&g, "statistics", api.CreateMetricsServer(), addr)
	}
	if config.Api.Enabled {
		// === REST API
		rest := api.CreateRestService(api.Dependencies{
			Controller: objects.Controller,
			Curve:      objects.Curve,
			Sensor:     objects.Sensor,
		})
		addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)
		addServer(&g, "api", rest, addr)
	}

	return g.Run()
}

func registerCollectors(objects *Objects) {
	statistics.Register(statistics.NewSensorCollector([]sensors.Sensor{objects.Sensor}))
	statistics.Register(statistics.NewFanCollector([]controller.FanController{objects.Controller}))
	statistics.Register(statistics.NewCurveCollector(map[string]curves.SpeedCurve{objects.Fan.GetId(): objects.Curve}))
	statistics.Register(statistics.NewControllerCollector([]controller.FanController{objects.Controller}))
}

func addServer(g *run.Group, name string, server *echo.Echo, addr string) {
	g.Add(func() error {
		ui.Info("Starting %s server on %s", name, addr)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("cannot start %s server: %w", name, err)
		}
		return nil
	}, func(err error) {
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		} else {
			ui.Info("%s server stopped.", name)
		}
	})
}
