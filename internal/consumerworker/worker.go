package consumerworker

import (
	"context"
	"encoding/json"

	"github.com/wb-go/wbf/zlog"

	"github.com/cecepns/trailrun/internal/dto"
	"github.com/cecepns/trailrun/internal/mailer"
	"github.com/cecepns/trailrun/internal/rabbit"
	"github.com/cecepns/trailrun/internal/repo"
)

// Reader consumes registration lifecycle notifications and sends the
// matching email. The email is best-effort: a send failure is logged, acked
// and never retried.
type Reader struct {
	RMQ    *rabbit.Client
	repo   repo.Repository
	mail   *mailer.Mailer
	done   chan struct{}
	cancel context.CancelFunc
}

func NewReader(rmq *rabbit.Client, repo repo.Repository, mail *mailer.Mailer) *Reader {
	return &Reader{
		RMQ:  rmq,
		repo: repo,
		mail: mail,
		done: make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("notification reader started")

	go func() {
		defer close(r.done)

		handler := func(body []byte) error {
			var msg dto.RegistrationNotification
			if err := json.Unmarshal(body, &msg); err != nil {
				zlog.Logger.Error().
					Err(err).
					Msgf("Failed to unmarshal message: %s", string(body))
				return err
			}

			zlog.Logger.Info().
				Int64("registration_id", msg.RegistrationID).
				Int64("event_id", msg.EventID).
				Str("status", msg.Status).
				Msg("received registration notification")

			user, err := r.repo.GetUserByID(cctx, msg.UserID)
			if err != nil {
				zlog.Logger.Error().
					Err(err).
					Int64("user_id", msg.UserID).
					Msg("Failed to get user from DB in worker")
				return nil
			}

			event, err := r.repo.GetEventByID(cctx, msg.EventID)
			if err != nil {
				zlog.Logger.Error().
					Err(err).
					Int64("event_id", msg.EventID).
					Msg("Failed to get event from DB in worker")
				return nil
			}

			if err := r.mail.SendStatusEmail(event.Title, msg.Status, user.Email, user.Name); err != nil {
				zlog.Logger.Warn().
					Err(err).
					Msg("Failed to send notification e-mail")
			}

			return nil
		}

		if err := r.RMQ.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("Failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("notification reader stopped by context")
	}()
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
