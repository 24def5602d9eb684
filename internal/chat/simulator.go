package chat

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/parleyhq/chat-engine/internal/domain"
	"github.com/parleyhq/chat-engine/internal/logger"
)

// SimulatorConfig holds the tunables of the activity simulator. Delay ranges
// are half-open: a delay is drawn uniformly from [Min, Max).
type SimulatorConfig struct {
	TypingProbability float64
	ReplyDelayMin     time.Duration
	ReplyDelayMax     time.Duration
	TriggerDelayMin   time.Duration
	TriggerDelayMax   time.Duration
}

func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		TypingProbability: 0.3,
		ReplyDelayMin:     1000 * time.Millisecond,
		ReplyDelayMax:     3000 * time.Millisecond,
		TriggerDelayMin:   1000 * time.Millisecond,
		TriggerDelayMax:   4000 * time.Millisecond,
	}
}

// Simulator stands in for a live multi-user feed: it produces synthetic peer
// typing activity and canned replies on timers. Triggers never chain into
// further triggers; only user-authored sends schedule new ones.
type Simulator struct {
	cfg     SimulatorConfig
	session *Session
	sched   *Scheduler
	replies []string
	log     zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

func newSimulator(cfg SimulatorConfig, session *Session, sched *Scheduler, replies []string, rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{
		cfg:     cfg,
		session: session,
		sched:   sched,
		replies: replies,
		log:     logger.Module("simulator"),
		rng:     rng,
	}
}

// ScheduleTrigger arms exactly one future trigger. Each scheduled trigger
// gets its own key so independent ones never replace each other.
func (s *Simulator) ScheduleTrigger() {
	delay := s.randDelay(s.cfg.TriggerDelayMin, s.cfg.TriggerDelayMax)
	s.sched.Schedule(taskKindTrigger, uuid.NewString(), delay, s.Trigger)
}

// Trigger runs one round of the decision procedure: pick a random online peer
// and, with the configured probability, start their typing indicator and
// schedule a canned reply into the room that is current right now.
func (s *Simulator) Trigger() {
	room, current, roster := s.session.simulationState()
	if room == nil || current == nil {
		return
	}

	var candidates []*domain.User
	for _, u := range roster {
		if u.ID != current.ID && u.IsOnline {
			candidates = append(candidates, u)
		}
	}
	if len(candidates) == 0 {
		return
	}

	peer := candidates[s.randIndex(len(candidates))]

	if s.randFloat() >= s.cfg.TypingProbability {
		return
	}

	s.session.SetTyping(peer.ID, true)

	reply := s.replies[s.randIndex(len(s.replies))]
	delay := s.randDelay(s.cfg.ReplyDelayMin, s.cfg.ReplyDelayMax)

	s.log.Debug().Str("user", peer.Username).Str("room", room.ID).Dur("delay", delay).Msg("peer reply scheduled")

	// The room is captured at trigger time; the reply lands there even if the
	// user switches rooms in the meantime.
	s.sched.Schedule(taskKindReply, uuid.NewString(), delay, func() {
		msg := domain.NewTextMessage(peer, room.ID, reply, false)
		s.session.deliverSimulated(msg)
	})
}

func (s *Simulator) randFloat() float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64()
}

func (s *Simulator) randIndex(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}

func (s *Simulator) randDelay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return min + time.Duration(s.rng.Int63n(int64(max-min)))
}
