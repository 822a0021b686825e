package pricing

// Allocation is the room and extra-bed requirement for a party.
type Allocation struct {
	Rooms     uint `json:"rooms"`
	ExtraBeds uint `json:"extra_beds"`
}

// AllocateRooms computes the minimum room count under double occupancy.
// Children without a bed are excluded entirely. Zero bed-occupying heads
// yields zero rooms; there are no error conditions here.
func AllocateRooms(p PartyComposition) Allocation {
	heads := p.BedOccupants()
	rooms := (heads + 1) / 2
	var extra uint
	if heads > rooms*2 {
		extra = heads - rooms*2
	}
	return Allocation{Rooms: rooms, ExtraBeds: extra}
}
