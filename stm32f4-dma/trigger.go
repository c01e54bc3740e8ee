package dma

// Arm clears the stream's stale status bits and then enables it, starting
// the transfer. Clearing first keeps status left over from an earlier
// transfer from reaching the dispatcher as a new event.
func (s Stream) Arm() {
	s.mustValid()
	_, ifcr, shift := s.statusRegisters()
	ifcr.Set(_ISR_Field_Msk << shift)
	setBits(s.hw().CR, _SxCR_EN)
	logger().Debug("arm", "stream", s)
}

// Disarm disables the stream. A transfer in progress is aborted after the
// current data item and raises transfer complete.
func (s Stream) Disarm() {
	s.mustValid()
	clearBits(s.hw().CR, _SxCR_EN)
	logger().Debug("disarm", "stream", s)
}

// IsEnabled returns true if the stream's enable bit is set. The hardware
// clears it at the end of a non-circular transfer and on transfer errors.
func (s Stream) IsEnabled() bool {
	s.mustValid()
	return s.hw().CR.Get()&_SxCR_EN != 0
}
