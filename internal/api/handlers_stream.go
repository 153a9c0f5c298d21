package api

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terraincognita07/dailybrew/internal/events"
	"github.com/terraincognita07/dailybrew/internal/services"
)

const (
	streamHeartbeatInterval = 20 * time.Second
	minRolloverWait         = 10 * time.Millisecond
)

// streamRequest is everything the event pump needs once the fiber context is
// gone.
type streamRequest struct {
	id       string
	userID   uint
	day      time.Time
	since    *time.Time
	language string
	// followToday moves day forward at local midnight when no date was given.
	followToday bool
}

// Stream serves the live read models as server-sent events. Each of status,
// weekly, breakdown and logs is sent once on connect and again whenever the
// underlying records change. A since query adds a total event. Without a date
// query the day-scoped events switch to the new day at local midnight.
func (handler *Handler) Stream(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	day, err := handler.requestDay(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	request := streamRequest{
		id:          uuid.NewString(),
		userID:      user.ID,
		day:         day,
		language:    currentLanguage(c),
		followToday: strings.TrimSpace(c.Query("date")) == "",
	}
	if raw := c.Query("since"); raw != "" {
		since, err := services.ParseInstant(raw)
		if err != nil {
			return handler.respondServiceError(c, err)
		}
		request.since = &since
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		handler.log.Debug("stream opened", zap.String("stream_id", request.id), zap.Uint("user_id", request.userID))
		err := handler.pumpEvents(ctx, w, request)
		handler.log.Debug("stream closed", zap.String("stream_id", request.id), zap.Error(err))
	})
	return nil
}

// dayStreams are the live queries scoped to one calendar day.
type dayStreams struct {
	cancel    context.CancelFunc
	status    <-chan events.Snapshot[services.CaffeineStatus]
	weekly    <-chan events.Snapshot[[]services.DayAmount]
	breakdown <-chan events.Snapshot[services.DailyBreakdown]
}

func (handler *Handler) watchDay(ctx context.Context, request streamRequest) dayStreams {
	dayCtx, cancel := context.WithCancel(ctx)
	live := handler.services.Live
	return dayStreams{
		cancel:    cancel,
		status:    live.WatchStatus(dayCtx, request.userID, request.day),
		weekly:    live.WatchWeekly(dayCtx, request.userID, request.day, handler.i18n.Weekdays(request.language)),
		breakdown: live.WatchBreakdown(dayCtx, request.userID, request.day),
	}
}

// untilNextDay is the wait from now until the local midnight after day.
func (handler *Handler) untilNextDay(day time.Time) time.Duration {
	next := services.DateAtLocation(day, handler.location).AddDate(0, 0, 1)
	wait := next.Sub(handler.now())
	if wait < minRolloverWait {
		return minRolloverWait
	}
	return wait
}

// pumpEvents writes events until ctx is done or a write fails, which is how
// a disconnected client shows up.
func (handler *Handler) pumpEvents(ctx context.Context, w *bufio.Writer, request streamRequest) error {
	live := handler.services.Live
	streams := handler.watchDay(ctx, request)
	defer func() { streams.cancel() }()
	logs := live.WatchLogs(ctx, request.userID)
	var total <-chan events.Snapshot[int]
	if request.since != nil {
		total = live.WatchTotalSince(ctx, request.userID, *request.since)
	}

	heartbeat := time.NewTicker(streamHeartbeatInterval)
	defer heartbeat.Stop()

	var (
		rolloverTimer *time.Timer
		rollover      <-chan time.Time
	)
	if request.followToday {
		rolloverTimer = time.NewTimer(handler.untilNextDay(request.day))
		defer rolloverTimer.Stop()
		rollover = rolloverTimer.C
	}

	sequence := 0
	send := func(event string, payload any, err error) error {
		sequence++
		if err != nil {
			handler.log.Warn("stream query failed", zap.String("stream_id", request.id), zap.String("event", event), zap.Error(err))
			payload = fiber.Map{"error": "internal", "source": event}
			event = "error"
		}
		return writeEvent(w, fmt.Sprintf("%s-%d", request.id, sequence), event, payload)
	}

	for {
		var err error
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-heartbeat.C:
			err = writeComment(w, "ping")
		case <-rollover:
			if today := services.DateAtLocation(handler.now(), handler.location); !today.Equal(request.day) {
				streams.cancel()
				request.day = today
				streams = handler.watchDay(ctx, request)
				handler.log.Debug("stream day rolled over", zap.String("stream_id", request.id), zap.Time("day", today))
			}
			rolloverTimer.Reset(handler.untilNextDay(request.day))
		case snapshot, ok := <-streams.status:
			if !ok {
				return ctx.Err()
			}
			err = send("status", handler.newStatusResponse(request.day, snapshot.Value, request.language), snapshot.Err)
		case snapshot, ok := <-streams.weekly:
			if !ok {
				return ctx.Err()
			}
			err = send("weekly", newDayAmountResponses(snapshot.Value), snapshot.Err)
		case snapshot, ok := <-streams.breakdown:
			if !ok {
				return ctx.Err()
			}
			err = send("breakdown", newBreakdownResponse(snapshot.Value), snapshot.Err)
		case snapshot, ok := <-logs:
			if !ok {
				return ctx.Err()
			}
			err = send("logs", logsOrEmpty(snapshot), snapshot.Err)
		case snapshot, ok := <-total:
			if !ok {
				return ctx.Err()
			}
			err = send("total", totalSinceResponse{Since: request.since.Format(time.RFC3339), Amount: snapshot.Value}, snapshot.Err)
		}
		if err != nil {
			return err
		}
	}
}

func logsOrEmpty(snapshot events.Snapshot[[]services.LogEntry]) []services.LogEntry {
	if snapshot.Value == nil {
		return []services.LogEntry{}
	}
	return snapshot.Value
}

func writeEvent(w *bufio.Writer, id string, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event, err)
	}
	if _, err := fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", id, event, data); err != nil {
		return err
	}
	return w.Flush()
}

func writeComment(w *bufio.Writer, comment string) error {
	if _, err := fmt.Fprintf(w, ": %s\n\n", comment); err != nil {
		return err
	}
	return w.Flush()
}
