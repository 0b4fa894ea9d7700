// Package planner implements spec §4.3-§4.6: physics-constrained successor
// generation, an admissible heuristic, and an A* driver that searches for a
// minimal primitive-action sequence satisfying a goal.Goal. The driver
// generalises internal/game/pathfinding.go's Dijkstra (same "pop cheapest,
// relax neighbors" shape) from a fixed room graph to generated world
// states, and from Dijkstra to A* by adding the heuristic term.
package planner

import (
	"container/heap"

	"github.com/dekarrin/shrdlite/internal/goal"
	"github.com/dekarrin/shrdlite/internal/interpreter"
	"github.com/dekarrin/shrdlite/internal/shrdliteerr"
	"github.com/dekarrin/shrdlite/internal/world"
)

// DefaultMaxStates is the MAX_STATES ceiling of spec §4.6 when the caller
// does not supply one.
const DefaultMaxStates = 20000

// node is one entry in the open/closed bookkeeping: a search node per
// spec §3, plus its position in the open heap.
type node struct {
	key     string
	state   world.State
	gscore  int
	fscore  int
	action  Action
	message string
	parent  *node
	index   int
}

// openQueue is a container/heap.Interface min-heap ordered by fscore. This
// is the priority queue spec §9 requires (insert, extract-min, membership,
// decrease-key); membership and decrease-key are provided by the
// accompanying openIndex map in Plan, not by the heap itself.
type openQueue []*node

func (q openQueue) Len() int            { return len(q) }
func (q openQueue) Less(i, j int) bool  { return q[i].fscore < q[j].fscore }
func (q openQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}

func (q *openQueue) Push(x interface{}) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *openQueue) Pop() interface{} {
	old := *q
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.index = -1
	*q = old[:last]
	return n
}

// Plan implements spec §4.6: A* search over world states rooted at
// scene.Start, goal-tested by g, bounded by maxStates expansions (<= 0
// selects DefaultMaxStates). On success it returns the interleaved
// message/action-token transcript of spec §6 ("msg1,cmd1,msg2,cmd2,...");
// cmd tokens are already the lowercase wire strings ("l","r","p","d").
func Plan(scene world.Scene, g goal.Goal, maxStates int) ([]string, error) {
	if maxStates <= 0 {
		maxStates = DefaultMaxStates
	}

	start := scene.Start
	startKey := start.Key()

	h0, err := Heuristic(start, scene.Objects, g)
	if err != nil {
		return nil, err
	}

	open := &openQueue{}
	heap.Init(open)
	openIndex := make(map[string]*node)
	closed := make(map[string]bool)

	startNode := &node{key: startKey, state: start, gscore: 0, fscore: h0}
	heap.Push(open, startNode)
	openIndex[startKey] = startNode

	expanded := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		delete(openIndex, cur.key)
		if closed[cur.key] {
			continue
		}

		ok, err := g.Eval(cur.state, scene.Objects)
		if err != nil {
			return nil, err
		}
		if ok {
			return reconstruct(cur), nil
		}

		closed[cur.key] = true
		expanded++
		if expanded > maxStates {
			return nil, shrdliteerr.SearchLimitExceeded(maxStates)
		}

		for _, step := range Successors(cur.state, scene.Objects, cur.action) {
			childKey := step.State.Key()
			if closed[childKey] {
				continue
			}
			tentativeG := cur.gscore + 1

			if existing, inOpen := openIndex[childKey]; inOpen {
				if tentativeG < existing.gscore {
					h, err := Heuristic(step.State, scene.Objects, g)
					if err != nil {
						return nil, err
					}
					existing.gscore = tentativeG
					existing.fscore = tentativeG + h
					existing.state = step.State
					existing.action = step.Action
					existing.message = step.Message
					existing.parent = cur
					heap.Fix(open, existing.index)
				}
				continue
			}

			h, err := Heuristic(step.State, scene.Objects, g)
			if err != nil {
				return nil, err
			}
			child := &node{
				key:     childKey,
				state:   step.State,
				gscore:  tentativeG,
				fscore:  tentativeG + h,
				action:  step.Action,
				message: step.Message,
				parent:  cur,
			}
			heap.Push(open, child)
			openIndex[childKey] = child
		}
	}

	return nil, shrdliteerr.NoPath()
}

func reconstruct(goalNode *node) []string {
	var chain []*node
	for n := goalNode; n != nil && n.parent != nil; n = n.parent {
		chain = append(chain, n)
	}
	transcript := make([]string, 0, len(chain)*2)
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		transcript = append(transcript, n.message, string(n.action))
	}
	return transcript
}

// Planned pairs an interpreter.Result with the plan transcript found for
// its Goal, the Result ⊕ {plan} of spec §6.
type Planned struct {
	Result     interpreter.Result
	Transcript []string
}

// PlanAll plans for every Result in order, per spec §6's Planner contract
// (list<Result>, WorldState) -> list<Result ⊕ {plan}>. It stops at the
// first error, matching §7: "the Planner never catches search errors -
// they propagate to the caller."
func PlanAll(results []interpreter.Result, scene world.Scene, maxStates int) ([]Planned, error) {
	out := make([]Planned, len(results))
	for i, r := range results {
		transcript, err := Plan(scene, r.Goal, maxStates)
		if err != nil {
			return nil, err
		}
		out[i] = Planned{Result: r, Transcript: transcript}
	}
	return out, nil
}

// ActionTokens extracts just the cmd tokens from an interleaved transcript.
func ActionTokens(transcript []string) []string {
	var actions []string
	for i := 1; i < len(transcript); i += 2 {
		actions = append(actions, transcript[i])
	}
	return actions
}

// Messages extracts just the human-readable messages from an interleaved
// transcript.
func Messages(transcript []string) []string {
	var messages []string
	for i := 0; i < len(transcript); i += 2 {
		messages = append(messages, transcript[i])
	}
	return messages
}
