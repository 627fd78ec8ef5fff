package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/campushub/timetabler/internal/config"
	"github.com/campushub/timetabler/internal/csvio"
	"github.com/campushub/timetabler/internal/report"
	"github.com/campushub/timetabler/internal/scheduler"
	"github.com/campushub/timetabler/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "optional config file (yaml/toml/json)")
	printOut := flag.Bool("print", false, "print the schedule to stdout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, *printOut, log); err != nil {
		log.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, printOut bool, log *zap.Logger) error {
	courses, batches, err := csvio.LoadCourses(cfg.CoursesFile, ',')
	if err != nil {
		return err
	}
	rooms, err := csvio.LoadClassrooms(cfg.ClassroomsFile, ',')
	if err != nil {
		return err
	}
	professors, err := csvio.LoadProfessors(cfg.ProfessorsFile, ',')
	if err != nil {
		return err
	}
	log.Info("input loaded",
		zap.Int("courses", len(courses)),
		zap.Int("classrooms", len(rooms)),
		zap.Int("professors", len(professors)),
		zap.Int("batches", len(batches)))

	engineCfg := cfg.Engine()
	problem, err := scheduler.NewProblem(courses, rooms, professors, batches, engineCfg.Grid)
	if err != nil {
		return err
	}
	log.Info("problem built", zap.Int("sessions", len(problem.Sessions)))

	sol := scheduler.Solve(context.Background(), problem, engineCfg, log)

	valid, reportText := scheduler.Validate(problem, sol)
	fmt.Print(reportText)
	if !valid {
		fmt.Println("Schedule has hard-constraint shortfalls, see diagnostics above.")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.ExportFile), 0o755); err != nil {
		return err
	}
	if err := csvio.ExportSchedule(sol, cfg.ExportFile); err != nil {
		return err
	}
	pdfPath := filepath.Join(cfg.ReportDir, "timetable_"+sol.RunID+".pdf")
	if err := report.WriteBatchReport(sol, engineCfg.Grid, pdfPath); err != nil {
		log.Warn("pdf report skipped", zap.Error(err))
	}
	if printOut {
		csvio.PrintSchedule(sol)
	}

	fmt.Printf("Status:   %s\n", sol.Status)
	fmt.Printf("Placed:   %d/%d sessions\n", sol.PlacedCount(), len(problem.Sessions))
	fmt.Printf("Relaxed:  %d\n", len(sol.Relaxed))
	fmt.Printf("Unplaced: %d\n", len(sol.Unplaced))
	fmt.Printf("Score:    %.2f\n", sol.Score)
	fmt.Printf("Export:   %s\n", cfg.ExportFile)
	return nil
}
