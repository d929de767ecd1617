package cron_config

type Config struct {
	// Heartbeat check, every minute
	CronScheduleHeartbeat string `env:"CRON_SCHEDULE_HEARTBEAT" envDefault:"0 * * * * *"`
	// Integration connection health check, every 15 minutes
	CronScheduleConnectionCheck string `env:"CRON_SCHEDULE_CONNECTION_CHECK" envDefault:"0 */15 * * * *"`
}
