package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs holds statically configured jobs. Packages with their own
// dependencies register through the cron registry instead.
var CronJobs = map[string]CronJob{
	// Add more jobs here
}
