package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/maekabu-office/internal/app"
	"github.com/maekabu-office/internal/config"
	"github.com/maekabu-office/internal/logger"
	"github.com/maekabu-office/internal/models"

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
	flag.StringVar(&mode, "mode", app.ModeAll, "起動モード: all (既定), api, worker")
	flag.Parse()

	printStartupBanner(mode)

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := cfg.Validate(); err != nil {
		stdLog.Fatalf("設定が不足しています: %v", err)
	}
	if isWeakSecret(cfg.Session.Secret) {
		if cfg.Server.IsRelease() {
			stdLog.Fatalf("セッション秘密鍵が弱いか既定値のままです。本番環境では十分に長いランダム値を設定してください")
		}
		stdLog.Printf("警告: セッション秘密鍵が弱いか既定値のままです")
	}

	db, err := models.OpenDB(cfg.Database.Driver, cfg.Database.URL, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, !cfg.Server.IsRelease())
	if err != nil {
		stdLog.Fatalf("DB 接続に失敗しました: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		stdLog.Fatalf("マイグレーションに失敗しました: %v", err)
	}

	defaultNumber := os.Getenv("MK_DEFAULT_EMPLOYEE_NUMBER")
	defaultPassword := os.Getenv("MK_DEFAULT_EMPLOYEE_PASSWORD")
	if cfg.Server.IsRelease() && defaultPassword == "" {
		stdLog.Printf("警告: MK_DEFAULT_EMPLOYEE_PASSWORD が未設定のため初期社員の作成を省略しました")
	} else if err := models.InitDefaultEmployee(db, defaultNumber, defaultPassword, cfg.Company.DefaultDepartment); err != nil {
		stdLog.Printf("警告: 初期社員の作成に失敗しました: %v", err)
	}

	if cfg.Server.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		DB:      db,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("サービスが異常終了しました: %v", err)
	}
}

func printStartupBanner(mode string) {
	fmt.Println(ansiCyan + ansiBold + "maekabu-office back office API" + ansiReset)
	fmt.Println(ansiDim + "mode: " + mode + ansiReset)
	fmt.Println(ansiDim + strings.Repeat("-", 40) + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	return strings.Contains(normalized, "change-me") || strings.Contains(normalized, "your-secret")
}
