package mandel

import "fmt"

// Strategy selects how a Request is rendered.
type Strategy uint8

const (
	// StrategyParallel spreads rows over a worker pool. It is the zero value.
	StrategyParallel Strategy = iota
	// StrategySequential renders every row on the calling goroutine.
	StrategySequential
)

var strategyNames = [...]string{
	StrategyParallel:   "parallel",
	StrategySequential: "sequential",
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

func (s Strategy) valid() bool {
	return int(s) < len(strategyNames)
}

// ParseStrategy parses a strategy name. "mt" and "st" are accepted as
// shorthands for parallel and sequential.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "parallel", "mt":
		return StrategyParallel, nil
	case "sequential", "st":
		return StrategySequential, nil
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

func (s Strategy) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("marshal %s: unknown strategy", s)
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Set implements pflag.Value.
func (s *Strategy) Set(name string) error {
	return s.UnmarshalText([]byte(name))
}

// Type implements pflag.Value.
func (s *Strategy) Type() string {
	return "strategy"
}
