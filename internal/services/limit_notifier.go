package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/terraincognita07/dailybrew/internal/models"
)

const DefaultNotifierSchedule = "*/15 * * * *"

// LimitAlert announces that a user's intake for a day crossed a threshold.
type LimitAlert struct {
	UserID   uint
	UserName string
	Day      string
	Level    StatusLevel
	Status   CaffeineStatus
}

func (alert LimitAlert) Message() string {
	percent := int(alert.Status.FractionOfLimit * 100)
	if alert.Level == StatusLevelExceeded {
		return fmt.Sprintf("DailyBrew: %s, you are over your daily caffeine limit on %s: %d of %d mg (%d%%).",
			alert.UserName, alert.Day, alert.Status.CurrentAmount, alert.Status.LimitAmount, percent)
	}
	return fmt.Sprintf("DailyBrew: %s, you are close to your daily caffeine limit on %s: %d of %d mg (%d%%).",
		alert.UserName, alert.Day, alert.Status.CurrentAmount, alert.Status.LimitAmount, percent)
}

type AlertSender interface {
	Name() string
	Send(ctx context.Context, alert LimitAlert) error
}

type NotifierUserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

type DayStatusReader interface {
	ForDay(ctx context.Context, userID uint, day time.Time) (CaffeineStatus, error)
}

// LimitNotifier periodically checks every user's status for today and sends
// one alert per user, day and level.
type LimitNotifier struct {
	users    NotifierUserLister
	status   DayStatusReader
	senders  []AlertSender
	location *time.Location
	log      *zap.Logger
	now      func() time.Time

	mu   sync.Mutex
	sent map[string]string
}

func NewLimitNotifier(users NotifierUserLister, status DayStatusReader, location *time.Location, log *zap.Logger, senders ...AlertSender) *LimitNotifier {
	if location == nil {
		location = time.Local
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &LimitNotifier{
		users:    users,
		status:   status,
		senders:  senders,
		location: location,
		log:      log,
		now:      time.Now,
		sent:     make(map[string]string),
	}
}

// Start schedules Run on the cron schedule until ctx is done.
func (notifier *LimitNotifier) Start(ctx context.Context, schedule string) error {
	if schedule == "" {
		schedule = DefaultNotifierSchedule
	}

	scheduler := cron.New(cron.WithLocation(notifier.location))
	if _, err := scheduler.AddFunc(schedule, func() {
		notifier.Run(ctx)
	}); err != nil {
		return fmt.Errorf("schedule limit notifier %q: %w", schedule, err)
	}
	scheduler.Start()
	notifier.log.Info("limit notifier started", zap.String("schedule", schedule), zap.Int("senders", len(notifier.senders)))

	go func() {
		<-ctx.Done()
		<-scheduler.Stop().Done()
	}()
	return nil
}

// Run performs one check and returns the alerts it sent.
func (notifier *LimitNotifier) Run(ctx context.Context) []LimitAlert {
	users, err := notifier.users.List(ctx)
	if err != nil {
		notifier.log.Error("limit notifier: list users failed", zap.Error(err))
		return nil
	}

	today := DateAtLocation(notifier.now(), notifier.location)
	dayKey := today.Format(dayLayout)
	sent := make([]LimitAlert, 0)

	for _, user := range users {
		status, err := notifier.status.ForDay(ctx, user.ID, today)
		if err != nil {
			notifier.log.Error("limit notifier: status failed", zap.Uint("user_id", user.ID), zap.Error(err))
			continue
		}

		level := status.Level()
		if level == StatusLevelOK {
			continue
		}
		if !notifier.markSent(user.ID, dayKey, level) {
			continue
		}

		alert := LimitAlert{
			UserID:   user.ID,
			UserName: user.Name,
			Day:      dayKey,
			Level:    level,
			Status:   status,
		}
		for _, sender := range notifier.senders {
			if err := sender.Send(ctx, alert); err != nil {
				notifier.log.Warn("limit notifier: send failed",
					zap.String("sender", sender.Name()),
					zap.Uint("user_id", user.ID),
					zap.Error(err),
				)
			}
		}
		sent = append(sent, alert)
	}
	return sent
}

func (notifier *LimitNotifier) markSent(userID uint, day string, level StatusLevel) bool {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	for key, sentDay := range notifier.sent {
		if sentDay != day {
			delete(notifier.sent, key)
		}
	}

	key := fmt.Sprintf("%d:%s:%s", userID, day, level)
	if _, ok := notifier.sent[key]; ok {
		return false
	}
	notifier.sent[key] = day
	return true
}
