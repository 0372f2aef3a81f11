package audit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartRetention prunes entries older than days once a day, starting now.
// The caller owns the returned scheduler and must shut it down.
func StartRetention(logger *Logger, days int) (gocron.Scheduler, error) {
	if days <= 0 {
		return nil, fmt.Errorf("audit retention: days must be positive, got %d", days)
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			before := time.Now().AddDate(0, 0, -days)
			n, err := logger.Prune(ctx, before)
			if err != nil {
				log.Printf("audit retention failed: %v", err)
				return
			}
			if n > 0 {
				log.Printf("audit retention removed %d entries older than %s", n, before.Format(time.DateOnly))
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}

	s.Start()
	return s, nil
}
