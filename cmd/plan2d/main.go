// Package main contains a command to plan a 2D trajectory through a voxel map and
// render the result to an image.
package main

import (
	"context"
	"image/png"
	"os"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/tlin442/motion-primitive-library/motionplan"
	"github.com/tlin442/motion-primitive-library/render"
	"github.com/tlin442/motion-primitive-library/voxelmap"
)

var logger = golog.NewDevelopmentLogger("plan2d")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	MapFile string `flag:"0,required,usage=path to YAML voxel map"`
	Out     string `flag:"out,default=output.png,usage=output image path"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) (err error) {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}

	grid, err := voxelmap.ReadFile(argsParsed.MapFile)
	if err != nil {
		return err
	}

	start := motionplan.Waypoint{
		Pos:  r3.Vector{X: 2.5, Y: -3.5},
		Mask: motionplan.UsePos | motionplan.UseVel,
	}
	goal := motionplan.Waypoint{
		Pos:  r3.Vector{X: 37, Y: 2.5},
		Mask: start.Mask,
	}

	const uMax = 0.5
	cfg := motionplan.DefaultPlannerConfig()
	cfg.VMax = 1.0
	cfg.AMax = 1.0
	cfg.JMax = 1.0
	cfg.UMax = uMax
	cfg.W = 10
	cfg.ControlSet = motionplan.ControlGrid2D(uMax, uMax)
	cfg.Tol = motionplan.Tolerance{Pos: 0.2, Vel: 0.1, Acc: 1}

	planner, err := motionplan.NewPlanner(cfg, grid, logger)
	if err != nil {
		return err
	}

	planStart := time.Now()
	traj, planErr := planner.Plan(ctx, start, goal)
	logger.Infof("planning took %s, expanded %d states", time.Since(planStart), len(planner.CloseSet()))

	var path []r3.Vector
	if planErr != nil {
		// still render the close set for post-mortem inspection
		logger.Errorw("planning failed", "error", planErr)
	} else {
		total := traj.TotalTime()
		logger.Infof("total time %.3f", total)
		logger.Infof("J(0)=%.3f J(1)=%.3f J(2)=%.3f J(3)=%.3f", traj.J(0), traj.J(1), traj.J(2), traj.J(3))
		const numSamples = 100
		for i := 0; i <= numSamples; i++ {
			t := total * float64(i) / numSamples
			path = append(path, traj.Evaluate(t).Pos)
		}
	}

	img := render.Draw(grid, render.Result{
		Start:    start.Pos,
		Goal:     goal.Pos,
		CloseSet: planner.CloseSet(),
		Path:     path,
	}, render.Options{})

	out, err := os.Create(argsParsed.Out)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, out.Close())
	}()
	if err := png.Encode(out, img); err != nil {
		return err
	}
	logger.Infof("wrote %s", argsParsed.Out)
	return planErr
}
