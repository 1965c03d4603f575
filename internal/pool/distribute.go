package pool

import "math/big"

const maxRateBps = 10000

var bpsDenominator = big.NewInt(maxRateBps)

// interestOwed computes floor(principal * rateBps / 10000) in a widened
// domain so the product cannot overflow before the division.
func interestOwed(principal, rateBps uint64) (uint64, error) {
	owed := new(big.Int).SetUint64(principal)
	owed.Mul(owed, new(big.Int).SetUint64(rateBps))
	owed.Div(owed, bpsDenominator)
	if !owed.IsUint64() {
		return 0, ErrAmountOverflow
	}
	return owed.Uint64(), nil
}

// totalOwed is principal plus interest, overflow-checked.
func totalOwed(principal, rateBps uint64) (uint64, error) {
	interest, err := interestOwed(principal, rateBps)
	if err != nil {
		return 0, err
	}
	sum := new(big.Int).SetUint64(principal)
	sum.Add(sum, new(big.Int).SetUint64(interest))
	if !sum.IsUint64() {
		return 0, ErrAmountOverflow
	}
	return sum.Uint64(), nil
}

// entitlement computes floor(contribution * totalRepayment / currentTotal).
// Since contribution never exceeds currentTotal the result fits in uint64.
func entitlement(contribution, totalRepayment, currentTotal uint64) uint64 {
	if currentTotal == 0 {
		return 0
	}
	share := new(big.Int).SetUint64(contribution)
	share.Mul(share, new(big.Int).SetUint64(totalRepayment))
	share.Div(share, new(big.Int).SetUint64(currentTotal))
	return share.Uint64()
}

// payout clamps an entitlement to what is still unclaimed, so the last
// claimant absorbs the rounding slack and total claims never exceed the
// repayment.
func payout(entitled, totalRepayment, totalClaimed uint64) uint64 {
	remaining := totalRepayment - totalClaimed
	if entitled > remaining {
		return remaining
	}
	return entitled
}
