package app

import (
	"errors"

	"github.com/tawseel-next/internal/config"
	"github.com/tawseel-next/internal/provider"
	"github.com/tawseel-next/internal/router"
	"github.com/tawseel-next/internal/worker"
)

// BuildRunner wires the container and the services selected by mode
func BuildRunner(cfg *config.Config, mode string) (*Runner, *provider.Container, error) {
	if cfg == nil {
		return nil, nil, errors.New("config is nil")
	}
	switch mode {
	case ModeAll, ModeAPI, ModeWorker:
	default:
		return nil, nil, errors.New("unknown mode: " + mode)
	}

	container := provider.NewContainer(cfg)

	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine))
	}

	// in "all" mode a disabled queue only drops the worker
	if mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled) {
		workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
		if err != nil {
			container.Close()
			return nil, nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		container.Close()
		return nil, nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), container, nil
}

// Run application entry point
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, container, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := bootstrapAccounts(container, opts); err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}

// bootstrapAccounts re-syncs casbin roles from users and creates the first admin
func bootstrapAccounts(container *provider.Container, opts Options) error {
	if err := container.UserService.SyncAllRoles(); err != nil {
		return err
	}
	if opts.AdminEmail == "" || opts.AdminPassword == "" {
		return nil
	}
	user, created, err := container.UserService.EnsureAdmin(opts.AdminEmail, opts.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		opts.Logger.Warnw("default_admin_created", "email", user.Email, "password_hidden", true)
	}
	return nil
}
