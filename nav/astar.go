package nav

import (
	"container/heap"
	"math"
)

// PathNode is a grid cell in an A* path.
type PathNode struct {
	X int
	Y int
}

// AStar finds a path from start to goal on a 4-way grid. isBlocked returns
// true for cells that cannot be traversed; the start cell is never tested.
// maxNodes bounds the number of expanded nodes.
func AStar(startX, startY, goalX, goalY, width, height int, isBlocked func(x, y int) bool, maxNodes int) []PathNode {
	if width <= 0 || height <= 0 {
		return nil
	}
	if startX == goalX && startY == goalY {
		return []PathNode{{X: startX, Y: startY}}
	}
	if goalX < 0 || goalY < 0 || goalX >= width || goalY >= height {
		return nil
	}
	if isBlocked != nil && isBlocked(goalX, goalY) {
		return nil
	}

	startIdx := startY*width + startX
	goalIdx := goalY*width + goalX

	open := &openSet{}
	heap.Push(open, openNode{idx: startIdx, f: heuristic(startX, startY, goalX, goalY)})

	cameFrom := make(map[int]int, 128)
	gScore := map[int]float64{startIdx: 0}
	closed := make(map[int]bool, 128)

	neighbors := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	iterations := 0
	for open.Len() > 0 && iterations < maxNodes {
		current := heap.Pop(open).(openNode)
		if closed[current.idx] {
			continue
		}
		closed[current.idx] = true
		iterations++

		if current.idx == goalIdx {
			return reconstructPath(cameFrom, current.idx, startIdx, width)
		}

		cx, cy := current.idx%width, current.idx/width
		for _, d := range neighbors {
			nx, ny := cx+d[0], cy+d[1]
			if nx < 0 || ny < 0 || nx >= width || ny >= height {
				continue
			}
			if isBlocked != nil && isBlocked(nx, ny) {
				continue
			}
			neighborIdx := ny*width + nx
			if closed[neighborIdx] {
				continue
			}
			tentative := gScore[current.idx] + 1
			if prev, seen := gScore[neighborIdx]; seen && tentative >= prev {
				continue
			}
			cameFrom[neighborIdx] = current.idx
			gScore[neighborIdx] = tentative
			heap.Push(open, openNode{idx: neighborIdx, f: tentative + heuristic(nx, ny, goalX, goalY)})
		}
	}

	return nil
}

func reconstructPath(cameFrom map[int]int, currentIdx, startIdx, width int) []PathNode {
	path := make([]PathNode, 0, 32)
	for {
		path = append(path, PathNode{X: currentIdx % width, Y: currentIdx / width})
		if currentIdx == startIdx {
			break
		}
		prev, ok := cameFrom[currentIdx]
		if !ok {
			return nil
		}
		currentIdx = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func heuristic(x1, y1, x2, y2 int) float64 {
	return math.Abs(float64(x1-x2)) + math.Abs(float64(y1-y2))
}

type openNode struct {
	idx int
	f   float64
}

// openSet is a min-heap on f. Stale duplicates are skipped on pop.
type openSet []openNode

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool { return o[i].f < o[j].f }

func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openSet) Push(x any) { *o = append(*o, x.(openNode)) }

func (o *openSet) Pop() any {
	old := *o
	n := old[len(old)-1]
	*o = old[:len(old)-1]
	return n
}
