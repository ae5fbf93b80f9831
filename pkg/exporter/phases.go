package exporter

// Progress checkpoints. The overall percentage is a fixed-phase estimate:
// batch creation spans 10-70 scaled by batch index, composition 70-90.
const (
	percentPreparing   = 5
	percentCapturing   = 10
	percentBatchBase   = 10
	percentBatchSpan   = 60
	percentComposeBase = 70
	percentComposeSpan = 20
	percentFinalizing  = 95
	percentDone        = 100
)

// batchPercent maps progress within batch index (ratio in [0,1]) of
// totalBatches onto the overall scale.
func batchPercent(index int, ratio float64, totalBatches int) int {
	if totalBatches <= 0 {
		return percentBatchBase
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	p := percentBatchBase + int((float64(index)+ratio)*percentBatchSpan/float64(totalBatches))
	if p > percentComposeBase {
		p = percentComposeBase
	}
	return p
}

// composePercent maps composition progress onto the overall scale.
func composePercent(ratio float64) int {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return percentComposeBase + int(ratio*percentComposeSpan)
}
