package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"

	"github.com/campushub/timetabler/internal/config"
	"github.com/campushub/timetabler/internal/scheduler"
	"github.com/campushub/timetabler/pkg/model"
)

// problemDocument is the JSON body of POST /solve.
type problemDocument struct {
	Grid       gridDoc     `mapstructure:"grid"`
	Courses    []courseDoc `mapstructure:"courses"`
	Classrooms []roomDoc   `mapstructure:"classrooms"`
	Professors []profDoc   `mapstructure:"professors"`
}

type gridDoc struct {
	Days            int `mapstructure:"days"`
	PeriodsPerDay   int `mapstructure:"periodsPerDay"`
	BreakPeriod     int `mapstructure:"breakPeriod"`
	LabBlockPeriods int `mapstructure:"labBlockPeriods"`
}

type courseDoc struct {
	Code             string            `mapstructure:"code"`
	Name             string            `mapstructure:"name"`
	Hours            ltpscDoc          `mapstructure:"hours"`
	Professor        string            `mapstructure:"professor"`
	ProfessorByBatch map[string]string `mapstructure:"professorByBatch"`
	Batches          []string          `mapstructure:"batches"`
	StudentsByBatch  map[string]int    `mapstructure:"studentsByBatch"`
	Semester         int               `mapstructure:"semester"`
	RoomType         string            `mapstructure:"roomType"`
	Term             string            `mapstructure:"term"`
	ElectiveGroup    string            `mapstructure:"electiveGroup"`
}

type ltpscDoc struct {
	Lecture   int `mapstructure:"lecture"`
	Tutorial  int `mapstructure:"tutorial"`
	Practical int `mapstructure:"practical"`
	SelfStudy int `mapstructure:"selfStudy"`
	Credits   int `mapstructure:"credits"`
}

type roomDoc struct {
	Code           string   `mapstructure:"code"`
	Type           string   `mapstructure:"type"`
	Capacity       int      `mapstructure:"capacity"`
	AllowedBatches []string `mapstructure:"allowedBatches"`
}

type profDoc struct {
	Name           string   `mapstructure:"name"`
	MaxHoursPerDay int      `mapstructure:"maxHoursPerDay"`
	BusyDays       []int    `mapstructure:"busyDays"`
	PreferredSlots []int    `mapstructure:"preferredSlots"`
	Courses        []string `mapstructure:"courses"`
}

// decodeProblem binds the request body and normalizes it into the engine's
// typed problem. Grid fields left at zero fall back to the configured grid.
func decodeProblem(ctx *gin.Context, cfg *config.Config) (*scheduler.Problem, scheduler.Config, error) {
	engineCfg := cfg.Engine()

	var raw map[string]any
	if err := ctx.BindJSON(&raw); err != nil {
		return nil, engineCfg, fmt.Errorf("parse body: %w", err)
	}
	var doc problemDocument
	if err := mapstructure.Decode(raw, &doc); err != nil {
		return nil, engineCfg, fmt.Errorf("decode problem document: %w", err)
	}

	if doc.Grid.Days > 0 {
		engineCfg.Grid = model.Grid{
			Days:            doc.Grid.Days,
			PeriodsPerDay:   doc.Grid.PeriodsPerDay,
			BreakPeriod:     doc.Grid.BreakPeriod,
			LabBlockPeriods: doc.Grid.LabBlockPeriods,
		}
	}

	batchSizes := make(map[string]int)
	courses := lo.Map(doc.Courses, func(c courseDoc, _ int) *model.Course {
		roomType := model.RoomType(c.RoomType)
		if roomType == "" {
			roomType = model.RoomLecture
		}
		for _, batch := range c.Batches {
			size := model.DefaultBatchSize
			if n, ok := c.StudentsByBatch[batch]; ok {
				size = n
			}
			batchSizes[batch] = max(batchSizes[batch], size)
		}
		return &model.Course{
			Code:     c.Code,
			Name:     c.Name,
			Semester: c.Semester,
			Hours: model.LTPSC{
				Lecture:   c.Hours.Lecture,
				Tutorial:  c.Hours.Tutorial,
				Practical: c.Hours.Practical,
				SelfStudy: c.Hours.SelfStudy,
				Credits:   c.Hours.Credits,
			},
			RoomType:         roomType,
			Professor:        c.Professor,
			ProfessorByBatch: c.ProfessorByBatch,
			Batches:          c.Batches,
			StudentsByBatch:  c.StudentsByBatch,
			Term:             model.ParseTerm(c.Term),
			ElectiveGroup:    c.ElectiveGroup,
		}
	})

	rooms := lo.Map(doc.Classrooms, func(r roomDoc, _ int) *model.Classroom {
		return &model.Classroom{
			Code:           r.Code,
			Type:           model.RoomType(r.Type),
			Capacity:       r.Capacity,
			AllowedBatches: r.AllowedBatches,
		}
	})

	professors := lo.Map(doc.Professors, func(p profDoc, _ int) *model.Professor {
		return &model.Professor{
			Name:           p.Name,
			MaxHoursPerDay: p.MaxHoursPerDay,
			BusyDays:       p.BusyDays,
			PreferredSlots: p.PreferredSlots,
			Courses:        p.Courses,
		}
	})

	batches := make([]*model.Batch, 0, len(batchSizes))
	for id, size := range batchSizes {
		batches = append(batches, &model.Batch{ID: id, Students: size})
	}

	problem, err := scheduler.NewProblem(courses, rooms, professors, batches, engineCfg.Grid)
	return problem, engineCfg, err
}
