// Copyright 2026 Earth Care Network Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cron

import (
	"time"

	"github.com/earthcare/network/pkg/log"
	"github.com/earthcare/network/pkg/metrics"
	"github.com/robfig/cron"
)

// Job is a named unit of scheduled work.
type Job func() error

// Scheduler wraps robfig/cron with per-job run and error counters.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// AddJob schedules a named job. The spec uses the 6-field cron format
// (seconds first), e.g. "0 */5 * * * *" for every five minutes.
func (s *Scheduler) AddJob(spec, name string, job Job) error {
	return s.cron.AddFunc(spec, func() {
		start := time.Now()
		metrics.CronJobRunsTotal.WithLabelValues(name).Inc()

		if err := job(); err != nil {
			metrics.CronJobErrorsTotal.WithLabelValues(name).Inc()
			log.Errorw("cron job failed", "job", name, "error", err)
			return
		}
		log.Debugw("cron job finished", "job", name, "elapsed", time.Since(start))
	})
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
