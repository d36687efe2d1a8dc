package trivia

import (
	"fmt"
	"math/rand/v2"
)

// Policy decides which unseen candidate a quiz round returns.
type Policy string

const (
	// PolicyRandom draws uniformly among unseen candidates.
	PolicyRandom Policy = "random"
	// PolicySequential returns the first unseen candidate in id order.
	PolicySequential Policy = "sequential"
)

// ParsePolicy validates a configured policy name.
func ParsePolicy(name string) (Policy, error) {
	switch p := Policy(name); p {
	case PolicyRandom, PolicySequential:
		return p, nil
	case "":
		return PolicyRandom, nil
	default:
		return "", fmt.Errorf("unknown quiz selection policy %q", name)
	}
}

// Selector picks the next quiz question from a candidate set.
type Selector struct {
	policy Policy
	intn   func(n int) int
}

// NewSelector builds a selector. intn must return a value in [0, n); nil uses math/rand/v2.
func NewSelector(policy Policy, intn func(n int) int) *Selector {
	if intn == nil {
		intn = rand.IntN
	}
	if policy == "" {
		policy = PolicyRandom
	}
	return &Selector{policy: policy, intn: intn}
}

// Next returns an unseen candidate and the history extended by its id. When the
// history is as long as the candidate set, or nothing unseen is left, it returns
// nil and an unchanged copy of the history.
func (s *Selector) Next(candidates []Question, previous []int32) (*Question, []int32) {
	history := make([]int32, 0, len(previous)+1)
	history = append(history, previous...)

	if len(previous) == len(candidates) {
		return nil, history
	}

	seen := make(map[int32]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	unseen := make([]int, 0, len(candidates))
	for i, q := range candidates {
		if _, ok := seen[q.ID]; ok {
			continue
		}
		unseen = append(unseen, i)
		if s.policy == PolicySequential {
			break
		}
	}
	if len(unseen) == 0 {
		return nil, history
	}

	pick := unseen[0]
	if s.policy == PolicyRandom {
		pick = unseen[s.intn(len(unseen))]
	}

	q := candidates[pick]
	return &q, append(history, q.ID)
}
