package cron

import (
	"context"
	"os"
	"sync"

	"github.com/caarlos0/env/v6"
	cronv3 "github.com/robfig/cron/v3"

	"github.com/coldreach/inboxstack/interfaces"
	cron_config "github.com/coldreach/inboxstack/internal/cron/config"
	"github.com/coldreach/inboxstack/internal/enum"
	"github.com/coldreach/inboxstack/internal/logger"
	"github.com/coldreach/inboxstack/internal/tracing"
)

// GroupInboxstack is the group for inboxstack related jobs
const GroupInboxstack = "inboxstack"

// LOCK MANAGEMENT
var jobLocks = struct {
	sync.Mutex
	locks map[string]*sync.Mutex
}{
	locks: map[string]*sync.Mutex{
		GroupInboxstack: new(sync.Mutex),
	},
}

type CronManager struct {
	log         logger.Logger
	cron        *cronv3.Cron
	stopCh      chan struct{}
	jobIDs      map[string]cronv3.EntryID
	inbox       interfaces.InboxService
	credentials interfaces.CredentialRepository
}

func NewCronManager(log logger.Logger, inbox interfaces.InboxService, credentials interfaces.CredentialRepository) *CronManager {
	return &CronManager{
		log:         log,
		stopCh:      make(chan struct{}),
		jobIDs:      make(map[string]cronv3.EntryID),
		inbox:       inbox,
		credentials: credentials,
	}
}

// Stop gracefully stops the cron manager
func (cm *CronManager) Stop() {
	if cm.cron != nil {
		cm.log.Info("Stopping cron manager")
		ctx := cm.cron.Stop()
		// Wait for jobs to finish
		<-ctx.Done()
	}
	close(cm.stopCh)
}

// registerJobs adds all cron jobs to the scheduler
func (cm *CronManager) registerJobs(c *cronv3.Cron) {
	// Load cron config from environment variables
	var cronConfig cron_config.Config
	if err := env.Parse(&cronConfig); err != nil {
		cm.log.Fatalf("Failed to parse cron config from environment: %v", err)
	}

	// Register heartbeat job
	if cronConfig.CronScheduleHeartbeat != "" {
		podName := os.Getenv("POD_NAME")
		if podName == "" {
			podName = "local"
		}
		id, err := c.AddFunc(cronConfig.CronScheduleHeartbeat, func() {
			defer tracing.RecoverAndLogToJaeger(cm.log)
			cm.log.Infof("Cron heartbeat from pod: %s", podName)
		})
		if err != nil {
			cm.log.Fatalf("Could not add heartbeat cron job: %v", err)
		}
		cm.jobIDs["heartbeat"] = id
		cm.log.Infof("Registered heartbeat job with schedule: %s", cronConfig.CronScheduleHeartbeat)
	}

	// Add integration connection health check job
	if cronConfig.CronScheduleConnectionCheck != "" {
		id, err := c.AddFunc(cronConfig.CronScheduleConnectionCheck, func() {
			defer tracing.RecoverAndLogToJaeger(cm.log)
			jobLocks.locks[GroupInboxstack].Lock()
			defer jobLocks.locks[GroupInboxstack].Unlock()
			cm.checkIntegrationConnections()
		})
		if err != nil {
			cm.log.Fatalf("Could not add connection check cron job: %v", err)
		}
		cm.jobIDs["connection_check"] = id
		cm.log.Infof("Registered connection check job with schedule: %s", cronConfig.CronScheduleConnectionCheck)
	}
}

// StartCron initializes and starts the cron scheduler
func (cm *CronManager) StartCron() {
	cm.log.Info("Starting cron manager")
	// Create a new cron with seconds field enabled and panic recovery
	cronOptions := []cronv3.Option{
		cronv3.WithSeconds(),
		cronv3.WithChain(
			cronv3.SkipIfStillRunning(cronv3.DefaultLogger),
			cronv3.Recover(cronv3.DefaultLogger),
		),
	}
	c := cronv3.New(cronOptions...)
	cm.registerJobs(c)
	c.Start()
	cm.cron = c
}

// checkIntegrationConnections probes each active credential and records the
// outcome so status endpoints can report stale integrations without opening
// a connection themselves.
func (cm *CronManager) checkIntegrationConnections() {
	cm.log.Info("Running integration connection check")

	ctx := context.Background()

	span, ctx := tracing.StartTracerSpan(ctx, "CronManager.checkIntegrationConnections")
	defer span.Finish()
	tracing.TagComponentCronJob(span)

	credentials, err := cm.credentials.GetActiveCredentials(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		cm.log.Errorf("Failed to load active credentials: %v", err)
		return
	}

	for _, credential := range credentials {
		status := enum.ConnectionActive
		errorMessage := ""
		if err := cm.inbox.CheckConnection(ctx, credential); err != nil {
			status = enum.ConnectionNotActive
			errorMessage = err.Error()
			cm.log.Warnf("Connection check failed for %s: %v", credential.EmailAddress, err)
		}

		if err := cm.credentials.UpdateConnectionStatus(ctx, credential.ID, status, errorMessage); err != nil {
			tracing.TraceErr(span, err)
			cm.log.Errorf("Failed to update connection status for %s: %v", credential.ID, err)
		}
	}

	cm.log.Infof("Completed connection check for %d integrations", len(credentials))
}
