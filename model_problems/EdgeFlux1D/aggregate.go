package EdgeFlux1D

import (
	"github.com/notargets/edgeflux/utils"
)

// Aggregate sums the channels in fixed order. A disabled channel adds exactly zero.
func Aggregate(r *Result, enabled ChannelSet) (total []float64, err error) {
	var (
		K = len(r.Gamma[Anomalous])
	)
	total = make([]float64, K)
	for ch := Anomalous; ch < NumChannels; ch++ {
		on := enabled.Has(ch)
		for k := range total {
			var contribution float64
			if on {
				contribution = r.Gamma[ch][k]
			}
			total[k] += contribution
		}
	}
	if k := utils.FirstNonFinite(total); k >= 0 {
		err = &DomainViolation{Channel: "aggregate", Cell: k, Quantity: "Gamma_total", Value: total[k], Err: ErrNonFinite}
		total = nil
	}
	return
}
