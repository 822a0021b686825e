package pricing

import "testing"

func TestAllocateRoomsDoubleOccupancy(t *testing.T) {
	cases := []struct {
		name      string
		party     PartyComposition
		rooms     uint
		extraBeds uint
	}{
		{"two adults one room", PartyComposition{Adults: 2}, 1, 0},
		{"three adults two rooms", PartyComposition{Adults: 3}, 2, 0},
		{"four adults two rooms", PartyComposition{Adults: 4}, 2, 0},
		{"single traveler", PartyComposition{Adults: 1}, 1, 0},
		{"child with bed counts", PartyComposition{Adults: 2, ChildrenWithBed: 1}, 2, 0},
		{"child without bed excluded", PartyComposition{Adults: 2, ChildrenWithoutBed: 3}, 1, 0},
		{"only children without bed", PartyComposition{ChildrenWithoutBed: 2}, 0, 0},
		{"empty party", PartyComposition{}, 0, 0},
	}
	for _, tc := range cases {
		got := AllocateRooms(tc.party)
		if got.Rooms != tc.rooms {
			t.Fatalf("%s: rooms = %d, want %d", tc.name, got.Rooms, tc.rooms)
		}
		if got.ExtraBeds != tc.extraBeds {
			t.Fatalf("%s: extra beds = %d, want %d", tc.name, got.ExtraBeds, tc.extraBeds)
		}
	}
}

func TestAllocateRoomsCapacityNeverExceeded(t *testing.T) {
	for adults := uint(0); adults <= 30; adults++ {
		for cwb := uint(0); cwb <= 5; cwb++ {
			p := PartyComposition{Adults: adults, ChildrenWithBed: cwb}
			a := AllocateRooms(p)
			if p.BedOccupants() > a.Rooms*2+a.ExtraBeds {
				t.Fatalf("party %+v not covered by %d rooms + %d extra beds", p, a.Rooms, a.ExtraBeds)
			}
			if p.BedOccupants() > 0 && a.Rooms == 0 {
				t.Fatalf("party %+v has bed occupants but zero rooms", p)
			}
		}
	}
}

func TestSelectVehicleBoundaries(t *testing.T) {
	cases := []struct {
		heads uint
		want  string
	}{
		{1, "Avanza"},
		{6, "Avanza"},
		{7, "Innova"},
		{8, "Innova"},
		{9, "ELF"},
		{15, "ELF"},
		{16, "Bus"},
		{25, "Bus"},
	}
	for _, tc := range cases {
		vc, err := SelectVehicle(nil, tc.heads)
		if err != nil {
			t.Fatalf("headcount %d: unexpected error %v", tc.heads, err)
		}
		if vc.Type != tc.want {
			t.Fatalf("headcount %d: got %s, want %s", tc.heads, vc.Type, tc.want)
		}
	}
}

func TestSelectVehicleOverCapacity(t *testing.T) {
	_, err := SelectVehicle(nil, 26)
	if err == nil {
		t.Fatal("expected capacity error for 26 heads")
	}
	if !IsCapacityExceeded(err) {
		t.Fatalf("expected CapacityExceededError, got %v", err)
	}
}

func TestSelectVehicleZeroHeadsSmallest(t *testing.T) {
	vc, err := SelectVehicle(nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vc.Type != "Avanza" {
		t.Fatalf("zero heads should select the smallest class, got %s", vc.Type)
	}
}
