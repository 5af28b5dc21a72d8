package utils

type EvalOp uint8

const (
	Equal EvalOp = iota
	Less
	Greater
	LessOrEqual
	GreaterOrEqual
)

func (op EvalOp) Compare(val, target float64) bool {
	switch op {
	case Equal:
		return val == target
	case Less:
		return val < target
	case Greater:
		return val > target
	case LessOrEqual:
		return val <= target
	case GreaterOrEqual:
		return val >= target
	}
	return false
}
