package domain

// SeatSelection tracks the seats a buyer has toggled on against one immutable
// availability snapshot. Toggling is symmetric per seat identity: selecting a
// selected seat deselects it. The exposed selection is always recomputed from
// the snapshot by ID, never a separately mutated copy, so callers see the
// authoritative seat records.
type SeatSelection struct {
	snapshot []SeatAvailability
	byID     map[string]SeatAvailability
	selected []string
}

func NewSeatSelection(snapshot []SeatAvailability) *SeatSelection {
	byID := make(map[string]SeatAvailability, len(snapshot))
	for _, av := range snapshot {
		byID[av.ID] = av
	}

	return &SeatSelection{
		snapshot: snapshot,
		byID:     byID,
	}
}

// Toggle flips the membership of one availability record. Unknown IDs and
// occupied seats are rejected, which keeps the invariant that the selection
// is a subset of the seats that were available at snapshot time.
func (s *SeatSelection) Toggle(availabilityID string) error {
	av, ok := s.byID[availabilityID]
	if !ok {
		return ErrSeatNotFound
	}

	if !av.Available() {
		return ErrSeatUnavailable
	}

	for i, id := range s.selected {
		if id == availabilityID {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return nil
		}
	}

	s.selected = append(s.selected, availabilityID)

	return nil
}

// Restore replays a previously persisted selection onto the snapshot. IDs
// that are unknown or no longer available are silently dropped; it returns
// the seats that could not be restored.
func (s *SeatSelection) Restore(ids []string) []SeatAvailability {
	var dropped []SeatAvailability

	for _, id := range ids {
		av, ok := s.byID[id]
		if !ok || !av.Available() {
			if ok {
				dropped = append(dropped, av)
			}
			continue
		}

		s.selected = append(s.selected, id)
	}

	return dropped
}

// SelectedIDs returns the selected availability IDs in the order the buyer
// picked them.
func (s *SeatSelection) SelectedIDs() []string {
	ids := make([]string, len(s.selected))
	copy(ids, s.selected)

	return ids
}

// Selected returns the selected availability records, in selection order.
func (s *SeatSelection) Selected() []SeatAvailability {
	seats := make([]SeatAvailability, 0, len(s.selected))

	for _, id := range s.selected {
		if av, ok := s.byID[id]; ok {
			seats = append(seats, av)
		}
	}

	return seats
}

func (s *SeatSelection) Count() int {
	return len(s.selected)
}
