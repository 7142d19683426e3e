package domain

// Participant is one connected client bound to exactly one room.
// Name is unique among the room's currently active participants only;
// it may be reused after its owner disconnects.
type Participant struct {
	ID         string // connection id
	Name       string
	RoomID     string
	LastReadID *int64 // nil until the first read receipt
}

// ReadState is the read-receipt view of a participant, broadcast to the
// room as part of every readUpdate.
type ReadState struct {
	Username   string `json:"username"`
	LastReadID *int64 `json:"lastReadId"`
}
