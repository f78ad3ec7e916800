package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kayod-erp/timekeeping-backend-go/internal/config"
	appHTTP "github.com/kayod-erp/timekeeping-backend-go/internal/handler/http"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/database"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/jobs"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/sse"
	"github.com/kayod-erp/timekeeping-backend-go/internal/repository/postgresql"
	cutoffService "github.com/kayod-erp/timekeeping-backend-go/internal/service/cutoff"
	timekeepingService "github.com/kayod-erp/timekeeping-backend-go/internal/service/timekeeping"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.Timekeeping.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone: ", cfg.Timekeeping.Timezone)
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, int32(cfg.Database.MaxConns))
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	punchRepo := postgresql.NewPunchRepository(db)
	logRepo := postgresql.NewLogRepository(db)
	dailyRepo := postgresql.NewDailyRepository(db)
	overrideRepo := postgresql.NewOverrideRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	cutoffRepo := postgresql.NewCutoffRepository(db)
	payrollGroupRepo := postgresql.NewPayrollGroupRepository(db)
	leaveChecker := postgresql.NewLeaveChecker(db)
	overtimeFilings := postgresql.NewOvertimeFilingSource(db)

	shiftResolver := timekeepingService.NewShiftResolver(shiftRepo)
	holidayResolver := timekeepingService.NewHolidayResolver(holidayRepo)
	recomputer := timekeepingService.NewRecomputer(
		punchRepo,
		logRepo,
		dailyRepo,
		overrideRepo,
		shiftResolver,
		holidayResolver,
		payrollGroupRepo,
		leaveChecker,
		overtimeFilings,
		loc,
	)

	timekeepingSvc := timekeepingService.NewTimekeepingService(
		punchRepo,
		logRepo,
		dailyRepo,
		overrideRepo,
		holidayRepo,
		recomputer,
		loc,
	)
	cutoffSvc := cutoffService.NewCutoffService(cutoffRepo, dailyRepo, overrideRepo)

	hub := sse.NewHub()
	bulkRunner := jobs.NewBulkRecomputeRunner(timekeepingSvc, cutoffRepo, hub, cfg.Timekeeping.BulkWorkers)

	scheduler := jobs.NewScheduler()
	scheduler.AddJob("nightly-sweep", time.Hour, func(ctx context.Context) error {
		now := time.Now().In(loc)
		if now.Hour() != cfg.Timekeeping.NightlySweepHour {
			return nil
		}
		return sweepYesterday(ctx, db, timekeepingSvc, loc)
	})
	scheduler.Start()
	defer scheduler.Stop()

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)

	timekeepingHandler := appHTTP.NewTimekeepingHandler(timekeepingSvc)
	cutoffHandler := appHTTP.NewCutoffHandler(cutoffSvc, bulkRunner, hub)

	router := appHTTP.NewRouter(tokenAuth, cfg.App.Env, timekeepingHandler, cutoffHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server running on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
