// Package ingest subscribes to the judge's Redis result channels and
// forwards judged runs to the scoreboard service. Malformed or
// incomplete messages are logged and dropped, never fatal: one broken
// judge must not take the scoreboard down.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aojudge/standings"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Channel names are fixed by the judge. Regular problems report on
// one channel, dual-task problems on the other.
const (
	ChannelResults       = "judge:results"
	ChannelAnigmaResults = "anigma:results"
)

// Sink receives decoded runs. *board.API is the production sink.
type Sink interface {
	IngestRun(ctx context.Context, contestID int, run *standings.Run) *standings.StatusError
}

type Listener struct {
	client *redis.Client
	sink   Sink
}

func New(addr, password string, db int, sink Sink) (*Listener, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	return &Listener{client: client, sink: sink}, nil
}

func (l *Listener) Close() error {
	return l.client.Close()
}

// runMessage is the judge's wire format on both result channels.
type runMessage struct {
	ID        int `json:"id"`
	ContestID int `json:"contest_id"`
	TeamID    int `json:"team_id"`
	ProblemID int `json:"problem_id"`

	// Time is in seconds from contest start.
	Time int64 `json:"time"`

	Verdict string          `json:"verdict"`
	Score   decimal.Decimal `json:"score"`

	TaskType     *int `json:"task_type,omitempty"`
	EditDistance *int `json:"edit_distance,omitempty"`
}

func (m runMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.Required),
		validation.Field(&m.ContestID, validation.Required),
		validation.Field(&m.TeamID, validation.Required),
		validation.Field(&m.ProblemID, validation.Required),
		validation.Field(&m.Time, validation.Min(int64(0))),
		validation.Field(&m.Verdict, validation.Required),
		validation.Field(&m.TaskType, validation.In(standings.TaskOne, standings.TaskTwo)),
	)
}

func (m *runMessage) toRun(pbType standings.ProblemType) *standings.Run {
	return &standings.Run{
		ID:           m.ID,
		TeamID:       m.TeamID,
		ProblemID:    m.ProblemID,
		Time:         m.Time,
		Outcome:      standings.OutcomeFromVerdict(m.Verdict),
		Score:        m.Score,
		ProblemType:  pbType,
		TaskType:     m.TaskType,
		EditDistance: m.EditDistance,
	}
}

// Run consumes both result channels until ctx ends. The go-redis
// subscription reconnects on its own, so the loop only has to drain.
func (l *Listener) Run(ctx context.Context) error {
	sub := l.client.Subscribe(ctx, ChannelResults, ChannelAnigmaResults)
	defer sub.Close()

	slog.InfoContext(ctx, "Listening for judge results",
		slog.String("channels", ChannelResults+", "+ChannelAnigmaResults))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			l.handleMessage(ctx, msg)
		}
	}
}

func (l *Listener) handleMessage(ctx context.Context, msg *redis.Message) {
	var m runMessage
	if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
		slog.WarnContext(ctx, "Dropping undecodable judge message",
			slog.Any("err", err), slog.String("channel", msg.Channel))
		return
	}
	if err := m.Validate(); err != nil {
		slog.WarnContext(ctx, "Dropping invalid judge message",
			slog.Any("err", err), slog.Int("run_id", m.ID))
		return
	}

	pbType := standings.ProblemTypeICPC
	if msg.Channel == ChannelAnigmaResults {
		pbType = standings.ProblemTypeScoreBased
	}
	if err := l.sink.IngestRun(ctx, m.ContestID, m.toRun(pbType)); err != nil {
		slog.WarnContext(ctx, "Couldn't ingest run",
			slog.Any("err", err), slog.Int("run_id", m.ID))
	}
}
