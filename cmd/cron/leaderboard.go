package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"starbyte/internal/datastore"
	"starbyte/internal/services"
)

const leaderboardPageSize = 100

type LeaderboardJob struct {
	Leaderboard *services.ServiceLeaderboard
	Db          *bun.DB
}

func NewLeaderboardJob(leaderboard *services.ServiceLeaderboard, db *bun.DB) *LeaderboardJob {
	return &LeaderboardJob{
		Leaderboard: leaderboard,
		Db:          db,
	}
}

func (j *LeaderboardJob) Start(cronRunner *cron.Cron) {
	timeline, err := datastore.GetConfigByKey(context.Background(), j.Db, services.CONFIG_CRONJOB_TIME_LEADERBOARD)
	if err != nil {
		zap.L().Error("load leaderboard schedule", zap.Error(err))
		return
	}

	if timeline == nil || timeline.Value == "" {
		zap.L().Warn("No timeline found", zap.String("key", services.CONFIG_CRONJOB_TIME_LEADERBOARD))
		return
	}

	_, err = cronRunner.AddFunc(timeline.Value, j.runScheduledTask)
	if err != nil {
		zap.L().Error("schedule leaderboard rebuild", zap.String("cron", timeline.Value), zap.Error(err))
		return
	}
	zap.L().Info("Leaderboard cronjob scheduled", zap.String("cron", timeline.Value))

	// warm the board right away instead of waiting for the first tick
	j.runScheduledTask()
}

func (j *LeaderboardJob) runScheduledTask() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	total, err := j.Leaderboard.RebuildStardustLeaderboard(ctx, leaderboardPageSize)
	if err != nil {
		zap.L().Error("rebuild stardust leaderboard", zap.Int("loaded", total), zap.Error(err))
		return
	}
	zap.L().Info("Stardust leaderboard rebuilt", zap.Int("stars", total), zap.Duration("took", time.Since(start)))
}
