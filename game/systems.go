package game

import (
	"github.com/plus3/rainbowdrop/engine"
	"github.com/plus3/rainbowdrop/piece"
	"go.uber.org/zap"
)

// pieceSystem advances the falling piece once per frame at the current fall
// interval and hands landings to the cascade resolver.
type pieceSystem struct {
	session *Session
}

func (ps *pieceSystem) Execute(frame *engine.UpdateFrame) {
	s := ps.session
	if s.over {
		return
	}

	ev := s.piece.Tick(frame.Now, s.score.FallInterval())
	switch ev.Kind {
	case piece.Spawned:
		s.log.Debug("spawned",
			zap.Int("x", ev.At.X),
			zap.Stringer("block", ev.Block),
		)
	case piece.Landed:
		s.log.Debug("landed",
			zap.Int("x", ev.At.X),
			zap.Int("y", ev.At.Y),
			zap.Stringer("block", ev.Block),
		)
		frame.Commands.Defer(s.cascade.Trigger)
	case piece.Ended:
		s.end(frame.Now)
	}
}
