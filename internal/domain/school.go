package domain

// Represents a single school from the source roster.
// A School is an immutable input row; identity follows source row order and
// no uniqueness constraint is enforced on names or addresses.
type School struct {
	RowID           int
	Name            string
	Municipality    string
	Address         string
	Position        Coordinates
	MunicipalSeats  int
	MontessoriSeats int
	SupportSeats    int
}
