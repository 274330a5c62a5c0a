package cron

import (
	"log"

	"github.com/robfig/cron/v3"

	"storefront.GO/config"
)

// StartCron schedules the jobs from config.CronJobs plus everything added
// through Register, then starts the scheduler.
func StartCron() *cron.Cron {
	c := cron.New()
	addJob := func(name, schedule string, run func(...string)) {
		if _, err := c.AddFunc(schedule, func() { run() }); err != nil {
			log.Fatalf("Failed to register job %s: %v", name, err)
		}
	}
	for name, cronJob := range config.CronJobs {
		addJob(name, cronJob.Schedule, cronJob.Job)
	}
	for name, j := range Jobs() {
		addJob(name, j.Schedule, j.Run)
	}
	c.Start()
	return c
}
