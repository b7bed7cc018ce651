package batch

import (
	"fmt"
	"sync"

	wall "Rampart/internal/calc/wall"
)

type WallBatchInput struct {
	Items []wall.DesignInput `json:"items"`
}

type WallBatchResult struct {
	Results []wall.Outcome `json:"results"`
}

// CalculateWall runs every item of a batch. Runs are pure over their own
// input and share nothing mutable, so each gets its own goroutine. Item
// order is preserved; the first contract violation fails the whole batch.
func CalculateWall(in WallBatchInput, lim wall.Limits) (WallBatchResult, error) {
	if len(in.Items) == 0 {
		return WallBatchResult{}, fmt.Errorf("no items")
	}

	out := WallBatchResult{Results: make([]wall.Outcome, len(in.Items))}
	errs := make([]error, len(in.Items))

	var wg sync.WaitGroup
	for i, item := range in.Items {
		wg.Add(1)
		go func(i int, item wall.DesignInput) {
			defer wg.Done()
			out.Results[i], errs[i] = wall.Design(item, lim)
		}(i, item)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return WallBatchResult{}, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return out, nil
}
