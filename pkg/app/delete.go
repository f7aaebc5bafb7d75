package app

import (
	"context"
	"strings"

	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/journal"
	"tableflip.dev/daybook/pkg/log"
)

// DeleteModes lists the modes that make sense for id. A single mode means
// no choice is needed.
func (s *Service) DeleteModes(id string) ([]journal.Mode, error) {
	it, _, err := s.Locate(id)
	if err != nil {
		return nil, err
	}
	if s.journals[it.Kind()].Footprint(it).Len() <= 1 {
		return []journal.Mode{journal.ModeSingle}, nil
	}
	return journal.Modes(), nil
}

// Delete removes id according to mode. An empty mode means single when the
// group occupies one date and ErrModeRequired otherwise. rangeArg is only
// read in range mode.
func (s *Service) Delete(ctx context.Context, id string, mode journal.Mode, rangeArg string) (journal.Report, error) {
	if err := ctx.Err(); err != nil {
		return journal.Report{}, err
	}
	it, _, err := s.Locate(id)
	if err != nil {
		return journal.Report{}, err
	}
	j := s.journals[it.Kind()]

	if mode == "" {
		if j.Footprint(it).Len() > 1 {
			return journal.Report{}, ErrModeRequired
		}
		mode = journal.ModeSingle
	}

	var within *datekey.Range
	if mode == journal.ModeRange {
		r, err := datekey.ParseRange(rangeArg)
		if err != nil {
			return journal.Report{}, journal.Invalid("range", strings.TrimSpace(rangeArg), err)
		}
		within = &r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rep, err := j.Delete(it, mode, within)
	if err != nil || rep.Removed == 0 {
		return rep, err
	}
	log.Debug("deleted items", "id", id, "mode", mode, "removed", rep.Removed)
	return rep, s.saveJournal(it.Kind())
}
