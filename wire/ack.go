package wire

// ackGapPair is one (gap, ack_range) varint pair from the wire, in the
// order they appear after the first-ACK-range varint.
type ackGapPair struct {
	Gap uint64
	Ack uint64
}

// reconstructAckRanges expands the differential wire encoding of an
// ACK frame's ranges into explicit ascending inclusive packet-number
// intervals, per spec.md §4.3:
//
//	P0 = largest; emit [P0-A0, P0]
//	Pi = S(i-1) - Gi - 2, where S(i-1) is the low bound of range i-1;
//	  emit [Pi-Ai, Pi]
//
// Ranges are reconstructed largest-first and returned smallest-first.
// Any negative computed bound fails frame_format.
func reconstructAckRanges(largest, firstAckRange uint64, pairs []ackGapPair) ([]AckRange, *ParseError) {
	if firstAckRange > largest {
		return nil, frameFormat("ack range %d exceeds largest_acked %d", firstAckRange, largest)
	}
	low := largest - firstAckRange
	descending := []AckRange{{Low: low, High: largest}}

	smallest := low
	for _, p := range pairs {
		// Pi = smallest - gap - 2
		if smallest < p.Gap+2 {
			return nil, frameFormat("ack gap %d underflows previous range floor %d", p.Gap, smallest)
		}
		pi := smallest - p.Gap - 2
		if p.Ack > pi {
			return nil, frameFormat("ack range %d exceeds computed packet number %d", p.Ack, pi)
		}
		loI := pi - p.Ack
		descending = append(descending, AckRange{Low: loI, High: pi})
		smallest = loI
	}

	ascending := make([]AckRange, len(descending))
	for i, r := range descending {
		ascending[len(descending)-1-i] = r
	}
	return ascending, nil
}
