package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/timetabler/internal/config"
	"github.com/campushub/timetabler/internal/csvio"
	"github.com/campushub/timetabler/internal/scheduler"
)

const (
	uploadDir    = "db"
	generatedDir = "db/generated"
)

type server struct {
	cfg *config.Config
	log *zap.Logger
}

func (s *server) handleListSchedules(ctx *gin.Context) {
	files, err := os.ReadDir(generatedDir)
	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"scheduleIds": []string{}})
		return
	}
	ids := []string{}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if id, ok := strings.CutSuffix(file.Name(), "-schedule.csv"); ok {
			ids = append(ids, id)
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"scheduleIds": ids})
}

func (s *server) handleGetSchedule(ctx *gin.Context) {
	id := ctx.Param("id")
	content, err := os.ReadFile(filepath.Join(generatedDir, id+"-schedule.csv"))
	if err != nil {
		ctx.Status(http.StatusNotFound)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": string(content)})
}

// handlePostSchedule accepts the three CSV inputs as multipart files, solves,
// and returns the id the result can be fetched under.
func (s *server) handlePostSchedule(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}
	for _, field := range []string{"courses", "classrooms", "professors"} {
		if len(form.File[field]) == 0 {
			ctx.String(http.StatusBadRequest, "missing file %q", field)
			return
		}
	}

	id := uuid.NewString()
	if err := os.MkdirAll(generatedDir, 0o755); err != nil {
		ctx.Status(http.StatusInternalServerError)
		return
	}
	paths := make(map[string]string, 3)
	for _, field := range []string{"courses", "classrooms", "professors"} {
		file := form.File[field][0]
		path := filepath.Join(uploadDir, id+"-"+field+".csv")
		if err := ctx.SaveUploadedFile(file, path); err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		paths[field] = path
	}

	courses, batches, err := csvio.LoadCourses(paths["courses"], ',')
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}
	rooms, err := csvio.LoadClassrooms(paths["classrooms"], ',')
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}
	professors, err := csvio.LoadProfessors(paths["professors"], ',')
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}

	engineCfg := s.cfg.Engine()
	problem, err := scheduler.NewProblem(courses, rooms, professors, batches, engineCfg.Grid)
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}

	sol := scheduler.Solve(ctx.Request.Context(), problem, engineCfg, s.log)
	exportPath := filepath.Join(generatedDir, id+"-schedule.csv")
	if err := csvio.ExportSchedule(sol, exportPath); err != nil {
		s.log.Error("export failed", zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":       id,
		"runId":    sol.RunID,
		"status":   sol.Status.String(),
		"placed":   sol.PlacedCount(),
		"relaxed":  len(sol.Relaxed),
		"unplaced": len(sol.Unplaced),
		"score":    sol.Score,
	})
}

// handleSolve accepts a JSON problem document and returns the schedule rows
// inline, without touching the filesystem.
func (s *server) handleSolve(ctx *gin.Context) {
	problem, engineCfg, err := decodeProblem(ctx, s.cfg)
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}
	sol := scheduler.Solve(ctx.Request.Context(), problem, engineCfg, s.log)
	ctx.JSON(http.StatusOK, gin.H{
		"runId":    sol.RunID,
		"status":   sol.Status.String(),
		"score":    sol.Score,
		"placed":   sol.PlacedCount(),
		"relaxed":  len(sol.Relaxed),
		"unplaced": len(sol.Unplaced),
		"rows":     sol.Rows(),
	})
}
