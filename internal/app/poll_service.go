// internal/app/poll_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/domain/notification"

	"github.com/sirupsen/logrus"
)

const failureMessagePrefix = "Сбой в работе программы: "

// Fetcher returns the decoded homework-status payload for changes since an epoch second.
type Fetcher interface {
	Fetch(ctx context.Context, since int64) (any, error)
}

// PollService runs poll cycles and owns the since-cursor. RunCycle must not be called
// concurrently; the scheduler serialises it.
type PollService struct {
	fetcher  Fetcher
	checker  ResponseChecker
	notifier Notifier
	logger   *logrus.Entry
	now      func() time.Time

	cursor int64
}

// PollOption configures a PollService.
type PollOption func(*PollService)

// WithClock replaces the wall clock used for the cursor.
func WithClock(now func() time.Time) PollOption {
	return func(s *PollService) {
		s.now = now
	}
}

// NewPollService starts the cursor lookback before now.
func NewPollService(
	fetcher Fetcher,
	checker ResponseChecker,
	notifier Notifier,
	lookback time.Duration,
	logger *logrus.Entry,
	opts ...PollOption,
) *PollService {
	s := &PollService{
		fetcher:  fetcher,
		checker:  checker,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cursor = s.now().Add(-lookback).Unix()
	return s
}

// Cursor returns the lower bound of the next fetch window in epoch seconds.
func (s *PollService) Cursor() int64 {
	return s.cursor
}

// RunCycle performs one fetch, validate, map and notify pass. It never returns an
// error: failures are logged and, except for network faults, reported to the chat.
// The cursor advances to now whatever the outcome, so records of a failed batch are
// not retried.
func (s *PollService) RunCycle(ctx context.Context) {
	log := s.logger.WithField("from_date", s.cursor)
	log.Debug("Poll cycle started")

	sent, err := s.poll(ctx)
	if err != nil {
		s.handleError(ctx, log, err)
	} else {
		log.WithField("sent", sent).Info("Poll cycle finished")
	}

	s.cursor = s.now().Unix()
}

func (s *PollService) poll(ctx context.Context) (int, error) {
	raw, err := s.fetcher.Fetch(ctx, s.cursor)
	if err != nil {
		return 0, fmt.Errorf("fetch homework statuses: %w", err)
	}

	homeworks, err := s.checker.Check(raw)
	if err != nil {
		return 0, err
	}
	if len(homeworks) == 0 {
		s.logger.Debug("Новые статусы отсутствуют")
	}

	for i, hw := range homeworks {
		message, err := ParseStatus(hw)
		if err != nil {
			return i, err
		}
		s.notifier.Notify(ctx, notification.KindStatusChange, message)
	}
	return len(homeworks), nil
}

func (s *PollService) handleError(ctx context.Context, log *logrus.Entry, err error) {
	kind := homework.KindOf(err)
	log = log.WithField("error_kind", kind.String()).WithError(err)

	switch kind {
	case homework.KindNetwork:
		// Logged by the API client; the next tick is the retry.
		log.Warn("Poll cycle skipped after network failure")
		return
	case homework.KindUpstream, homework.KindSchema, homework.KindUnknownStatus:
		log.Error("Poll cycle failed")
	default:
		log.Error("Poll cycle failed with unexpected error")
	}
	s.notifier.Notify(ctx, notification.KindFailure, failureMessage(err))
}

func failureMessage(err error) string {
	return failureMessagePrefix + err.Error()
}
