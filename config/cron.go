package config

import (
	"storefront.GO/cron/jobs"
)

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	"cartprunejob":   {Schedule: "@every 1h", Job: jobs.CartPruneJob},
	"productfeedjob": {Schedule: "0 * * * *", Job: jobs.ProductFeedJob},
	// Add more jobs here
}
