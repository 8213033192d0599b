package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"servify/config"
	"servify/services/booking"

	"github.com/hibiken/asynq"
)

const TypeLeaseRelease = "lease:release"

// leaseReleasePayload identifies the lease a sweep task should drop.
type leaseReleasePayload struct {
	SlotID    string `json:"slotId"`
	SessionID string `json:"sessionId"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// LeaseSweeper enqueues delayed lease-release tasks. It backs up the
// in-process hold countdown: if the process owning a hold dies, the task
// still clears the lease shortly after the hold would have expired.
type LeaseSweeper struct {
	client *asynq.Client
}

func NewLeaseSweeper() *LeaseSweeper {
	return &LeaseSweeper{client: asynq.NewClient(redisOpts())}
}

func (s *LeaseSweeper) ScheduleLeaseRelease(slotID, sessionID string, after time.Duration) error {
	payload, err := json.Marshal(leaseReleasePayload{SlotID: slotID, SessionID: sessionID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeLeaseRelease, payload)
	_, err = s.client.Enqueue(task, asynq.ProcessIn(after))
	return err
}

// InitLeaseWorker runs the async worker in background.
func InitLeaseWorker(leaser booking.SlotLeaser) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeLeaseRelease, handleLeaseRelease(leaser))

	go func() {
		log.Println("[LeaseWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[LeaseWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[LeaseWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleLeaseRelease(leaser booking.SlotLeaser) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p leaseReleasePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[LeaseWorker] invalid payload: %v", err)
			return err
		}
		// Release is owner-checked, so a lease re-acquired by another
		// session after expiry is untouched.
		if err := leaser.Release(ctx, p.SlotID, p.SessionID); err != nil {
			log.Printf("[LeaseWorker] failed to release lease for slot %s: %v", p.SlotID, err)
			return err
		}
		return nil
	}
}
