// Package scheduler wraps robfig/cron for periodic export runs.
package scheduler
