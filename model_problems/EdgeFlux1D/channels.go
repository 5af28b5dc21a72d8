package EdgeFlux1D

import (
	"strings"

	"github.com/notargets/edgeflux/physics"
)

type Channel uint8

const (
	Anomalous Channel = iota
	ChargeExchange
	BulkViscosity
	OrbitLoss
	NumChannels
)

var channelNames = [NumChannels]string{"Gamma_an", "Gamma_cx", "Gamma_bulk", "Gamma_ol"}

func (ch Channel) String() string {
	if ch < NumChannels {
		return channelNames[ch]
	}
	return "Gamma_unknown"
}

// ChannelSet is a bit set of enabled channels.
type ChannelSet uint8

const AllChannels = ChannelSet(1<<NumChannels - 1)

func NewChannelSet(sw physics.ChannelSwitches) (s ChannelSet) {
	for ch, on := range [NumChannels]bool{sw.Anomalous, sw.ChargeExchange, sw.BulkViscosity, sw.OrbitLoss} {
		if on {
			s = s.With(Channel(ch))
		}
	}
	return
}

func (s ChannelSet) Has(ch Channel) bool           { return s&(1<<ch) != 0 }
func (s ChannelSet) With(ch Channel) ChannelSet    { return s | 1<<ch }
func (s ChannelSet) Without(ch Channel) ChannelSet { return s &^ (1 << ch) }

func (s ChannelSet) String() string {
	var names []string
	for ch := Anomalous; ch < NumChannels; ch++ {
		if s.Has(ch) {
			names = append(names, ch.String())
		}
	}
	return "{" + strings.Join(names, ", ") + "}"
}
