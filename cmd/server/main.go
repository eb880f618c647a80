package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/tawseel-next/internal/app"
	"github.com/tawseel-next/internal/config"
	"github.com/tawseel-next/internal/logger"
	"github.com/tawseel-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"
)

func main() {
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "run mode: all (default), api, worker")
	flag.Parse()

	printStartupBanner(mode)

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if isWeakSecret(cfg.JWT.SecretKey) {
		if cfg.Server.Mode == "release" {
			stdLog.Fatalf("jwt secret is weak or still the default, set a strong random secret")
		}
		stdLog.Printf("warning: jwt secret is weak or still the default")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("database init failed: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("database migration failed: %v", err)
	}

	adminEmail := os.Getenv("TW_DEFAULT_ADMIN_EMAIL")
	adminPassword := os.Getenv("TW_DEFAULT_ADMIN_PASSWORD")
	if adminPassword == "" && cfg.Server.Mode != "release" {
		adminPassword = "admin123"
		if adminEmail == "" {
			adminEmail = "admin@tawseel.local"
		}
	}
	if adminPassword == "" {
		stdLog.Printf("warning: TW_DEFAULT_ADMIN_PASSWORD not set, skipping default admin")
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:        cfg,
		Logger:        logger.S(),
		Signals:       []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:          mode,
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
	}); err != nil {
		stdLog.Fatalf("server exited: %v", err)
	}
}

func printStartupBanner(mode string) {
	fmt.Println(ansiCyan + "████████╗ █████╗ ██╗    ██╗███████╗███████╗███████╗██╗     " + ansiReset)
	fmt.Println(ansiCyan + "╚══██╔══╝██╔══██╗██║    ██║██╔════╝██╔════╝██╔════╝██║     " + ansiReset)
	fmt.Println(ansiCyan + "   ██║   ███████║██║ █╗ ██║███████╗█████╗  █████╗  ██║     " + ansiReset)
	fmt.Println(ansiCyan + "   ██║   ██╔══██║██║███╗██║╚════██║██╔══╝  ██╔══╝  ██║     " + ansiReset)
	fmt.Println(ansiCyan + "   ██║   ██║  ██║╚███╔███╔╝███████║███████╗███████╗███████╗" + ansiReset)
	fmt.Println(ansiCyan + "   ╚═╝   ╚═╝  ╚═╝ ╚══╝╚══╝ ╚══════╝╚══════╝╚══════╝╚══════╝" + ansiReset)
	fmt.Println(ansiBold + "Tawseel courier back-office" + ansiReset + ansiDim + "  mode=" + mode + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	return strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key")
}
