package main

import (
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/ticketing-services/ticketing-backend/pkg/config"
	"github.com/ticketing-services/ticketing-backend/pkg/jobs"
)

type jobFunc func([]string)

func loadJobs() map[string]jobFunc {
	return map[string]jobFunc{
		"close-resolved-tickets": jobs.CloseResolvedTickets,
		"purge-orphaned-users":   jobs.PurgeOrphanedUsers,
	}
}

func usage() {
	jobNames := make([]string, 0, len(loadJobs()))
	for name := range loadJobs() {
		jobNames = append(jobNames, name)
	}
	sort.Strings(jobNames)
	log.Warn().Msgf("Usage: go run cmd/jobs/main.go  $JOB_NAME\n  (Possible jobs: %v)", strings.Join(jobNames, ", "))
	os.Exit(-1)
}

func main() {
	config.Load()
	config.ConfigureLogging()
	args := os.Args
	if args == nil || len(args) < 2 {
		usage()
	}
	job, ok := loadJobs()[args[1]]
	if ok {
		job(args[2:])
	} else {
		usage()
	}
}
